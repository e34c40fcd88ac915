package contentstore

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

	"github.com/PuneetGOTO/business-website-sub000/internal/domain/entities/content"
)

const defaultRemoteTimeout = 15 * time.Second

// envelope is the response body shape of the content API.
type envelope struct {
	Success bool                       `json:"success"`
	Data    json.RawMessage            `json:"data,omitempty"`
	Message string                     `json:"message,omitempty"`
	Token   string                     `json:"token,omitempty"`
	User    map[string]json.RawMessage `json:"user,omitempty"`
}

// RemoteStore talks to a content API over HTTP. Reads are anonymous; writes
// send the bearer token.
type RemoteStore struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewRemoteStore builds a client for the API rooted at baseURL, e.g. http://localhost:8080/api.
func NewRemoteStore(baseURL, token string, client *http.Client) *RemoteStore {
	if client == nil {
		client = &http.Client{Timeout: defaultRemoteTimeout}
	}
	return &RemoteStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  client,
	}
}

// SetToken replaces the bearer token used for writes.
func (s *RemoteStore) SetToken(token string) {
	s.token = token
}

func (s *RemoteStore) Get(ctx context.Context, name string) (content.Section, bool, error) {
	if !content.IsKnownSection(name) {
		return nil, false, nil
	}

	status, env, err := s.do(ctx, http.MethodGet, "/content/"+url.PathEscape(name), nil, false)
	if err != nil {
		return nil, false, err
	}
	if status == http.StatusNotFound {
		return nil, false, nil
	}
	if status < 200 || status >= 300 || !env.Success {
		return nil, false, &BackendError{Status: status, Message: env.Message}
	}

	var data content.Section
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, false, fmt.Errorf("failed to decode section %s: %w", name, err)
		}
	}
	if data == nil {
		return nil, false, nil
	}
	return data, true, nil
}

func (s *RemoteStore) Set(ctx context.Context, name string, data content.Section) error {
	if err := checkSection(name); err != nil {
		return err
	}
	if data == nil {
		data = content.Section{}
	}

	status, env, err := s.do(ctx, http.MethodPut, "/content/"+url.PathEscape(name), data, true)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 || !env.Success {
		return &BackendError{Status: status, Message: env.Message}
	}
	return nil
}

// All fetches every saved section in one request.
func (s *RemoteStore) All(ctx context.Context) (map[string]content.Section, error) {
	status, env, err := s.do(ctx, http.MethodGet, "/content", nil, false)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 || !env.Success {
		return nil, &BackendError{Status: status, Message: env.Message}
	}

	out := map[string]content.Section{}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &out); err != nil {
			return nil, fmt.Errorf("failed to decode content map: %w", err)
		}
	}
	return out, nil
}

// Login exchanges credentials for a token and keeps it for later writes.
func (s *RemoteStore) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	status, env, err := s.do(ctx, http.MethodPost, "/auth/login", body, false)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK || !env.Success || env.Token == "" {
		return "", &BackendError{Status: status, Message: env.Message}
	}
	s.token = env.Token
	return env.Token, nil
}

// Do sends an authenticated JSON request to path and decodes the envelope's
// data field into out when out is non-nil.
func (s *RemoteStore) Do(ctx context.Context, method, path string, body, out any) error {
	status, env, err := s.do(ctx, method, path, body, true)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 || !env.Success {
		return &BackendError{Status: status, Message: env.Message}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return nil
}

func (s *RemoteStore) do(ctx context.Context, method, path string, body any, auth bool) (int, *envelope, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth && s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	env := &envelope{}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, env); err != nil {
			// Non-JSON error pages still surface their status.
			env.Message = strings.TrimSpace(string(raw))
			if len(env.Message) > 200 {
				env.Message = env.Message[:200]
			}
		}
	}
	return resp.StatusCode, env, nil
}
