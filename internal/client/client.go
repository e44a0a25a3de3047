package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"learning-hub/internal/model"
	"learning-hub/internal/store"

	"github.com/google/uuid"
)

// ErrUnauthorized is returned when the server rejects the credential.
var ErrUnauthorized = errors.New("unauthorized: log in again")

// TransportError means the API could not be reached or answered with
// something other than a known error.
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: unexpected status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Credential is the admin token. It is passed explicitly to every call
// that needs it.
type Credential struct {
	Token string
}

// Client talks to the hub REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the API rooted at baseURL (e.g. http://host/api).
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type errorBody struct {
	Message string   `json:"message"`
	Fields  []string `json:"fields"`
}

func (c *Client) do(ctx context.Context, op, method, path string, cred *Credential, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cred != nil {
		req.Header.Set("Authorization", "Bearer "+cred.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var eb errorBody
		json.NewDecoder(resp.Body).Decode(&eb)

		switch resp.StatusCode {
		case http.StatusBadRequest:
			if len(eb.Fields) > 0 {
				return &model.ValidationError{Fields: eb.Fields}
			}
			return fmt.Errorf("%s: %s", op, eb.Message)
		case http.StatusUnauthorized:
			return ErrUnauthorized
		case http.StatusNotFound:
			return fmt.Errorf("%s: %w", op, store.ErrNotFound)
		case http.StatusConflict:
			return fmt.Errorf("%s: %w", op, store.ErrConflict)
		default:
			return &TransportError{Op: op, Status: resp.StatusCode, Err: errors.New(eb.Message)}
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: op, Status: resp.StatusCode, Err: err}
	}
	return nil
}

func (c *Client) ListAll(ctx context.Context) ([]model.Article, error) {
	var articles []model.Article
	err := c.do(ctx, "list articles", "GET", "/articles", nil, nil, &articles)
	return articles, err
}

func (c *Client) GetBySlug(ctx context.Context, slug string) (*model.Article, error) {
	var a model.Article
	if err := c.do(ctx, "get article", "GET", "/articles/slug/"+url.PathEscape(slug), nil, nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) GetByID(ctx context.Context, id uuid.UUID) (*model.Article, error) {
	var a model.Article
	if err := c.do(ctx, "get article", "GET", "/articles/"+id.String(), nil, nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) Create(ctx context.Context, cred Credential, fields model.Fields) (*model.Article, error) {
	var a model.Article
	if err := c.do(ctx, "create article", "POST", "/articles", &cred, fields, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) Update(ctx context.Context, cred Credential, id uuid.UUID, fields model.Fields) (*model.Article, error) {
	var a model.Article
	if err := c.do(ctx, "update article", "PUT", "/articles/"+id.String(), &cred, fields, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) Delete(ctx context.Context, cred Credential, id uuid.UUID) error {
	return c.do(ctx, "delete article", "DELETE", "/articles/"+id.String(), &cred, nil, nil)
}

// Login exchanges admin credentials for a session token.
func (c *Client) Login(ctx context.Context, username, password string) (Credential, error) {
	var resp struct {
		Token string `json:"token"`
	}
	in := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, "login", "POST", "/auth/login", nil, in, &resp); err != nil {
		return Credential{}, err
	}
	return Credential{Token: resp.Token}, nil
}

// Import queues a URL import and returns the pending job.
func (c *Client) Import(ctx context.Context, cred Credential, rawURL, language, color string) (*model.ImportJob, error) {
	var job model.ImportJob
	in := map[string]string{"url": rawURL, "language": language, "color": color}
	if err := c.do(ctx, "import", "POST", "/imports", &cred, in, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (c *Client) GetImport(ctx context.Context, cred Credential, id uuid.UUID) (*model.ImportJob, error) {
	var job model.ImportJob
	if err := c.do(ctx, "get import", "GET", "/imports/"+id.String(), &cred, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}
