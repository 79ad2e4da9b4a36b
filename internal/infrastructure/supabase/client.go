package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	domain "authapi/backend/internal/domain/auth"
)

const usersTable = "users"

// record is the wire shape of a users row in the PostgREST API.
type record struct {
	ID        string `json:"id,omitempty"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Client implements the credential store against a remote Supabase project's
// REST endpoint.
type Client struct {
	baseURL string
	key     string
	http    *http.Client
}

// NewClient constructs a client for the project at baseURL authenticated with
// the service key.
func NewClient(baseURL, key string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     key,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Ensure Client implements the CredentialStore interface.
var _ domain.CredentialStore = (*Client)(nil)

// FindByField returns users whose column equals the value.
func (c *Client) FindByField(ctx context.Context, field, value string) ([]domain.User, error) {
	return c.FindByFields(ctx, map[string]string{field: value})
}

// FindByFields returns users matching every filter at once.
func (c *Client) FindByFields(ctx context.Context, filters map[string]string) ([]domain.User, error) {
	query := url.Values{}
	query.Set("select", "*")
	for field, value := range filters {
		if !allowedField(field) {
			return nil, fmt.Errorf("unsupported filter field %q", field)
		}
		query.Set(field, "eq."+value)
	}

	body, err := c.do(ctx, http.MethodGet, query, nil)
	if err != nil {
		return nil, err
	}

	var records []record
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decoding store response: %w", err)
	}
	users := make([]domain.User, 0, len(records))
	for _, rec := range records {
		users = append(users, rec.toUser())
	}
	return users, nil
}

// Insert persists a new user and returns the stored representation.
func (c *Client) Insert(ctx context.Context, user domain.User) (domain.User, error) {
	payload, err := json.Marshal(record{
		Email:     user.Email,
		Password:  user.Password,
		Name:      user.Name,
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("encoding user: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, nil, payload)
	if err != nil {
		return domain.User{}, err
	}

	var records []record
	if err := json.Unmarshal(body, &records); err != nil {
		return domain.User{}, fmt.Errorf("decoding insert response: %w", err)
	}
	if len(records) == 0 {
		return domain.User{}, fmt.Errorf("store returned no inserted record")
	}
	return records[0].toUser(), nil
}

func (c *Client) do(ctx context.Context, method string, query url.Values, payload []byte) ([]byte, error) {
	endpoint := c.baseURL + "/rest/v1/" + usersTable
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("building store request: %w", err)
	}
	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("store request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading store response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("store responded %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

func (r record) toUser() domain.User {
	return domain.User{
		ID:        r.ID,
		Email:     r.Email,
		Name:      r.Name,
		Password:  r.Password,
		CreatedAt: parseTimestamp(r.CreatedAt),
	}
}

// parseTimestamp tolerates the timestamp renderings PostgREST emits; a zero
// time stands in for anything unparseable since created_at is informational.
func parseTimestamp(raw string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts
		}
	}
	return time.Time{}
}

func allowedField(field string) bool {
	switch field {
	case domain.FieldID, domain.FieldEmail, domain.FieldPassword, domain.FieldName:
		return true
	}
	return false
}
