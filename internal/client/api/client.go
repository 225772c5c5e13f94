// Package api implements the HTTP client for the fileshare server API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/avlasov/fileshare/internal/common"
)

// ErrUnavailable means the server could not be reached at all, as opposed to
// the server answering with an application error.
var ErrUnavailable = errors.New("server unavailable")

// File mirrors the server's artifact representation. Content is only set by
// GetFile.
type File struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	Name       string    `json:"name"`
	Visibility string    `json:"visibility"`
	CreatedAt  time.Time `json:"created_at"`
	Content    string    `json:"content,omitempty"`
}

type credentialsRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type fileRequest struct {
	Name       string `json:"name"`
	Content    string `json:"content"`
	Visibility string `json:"visibility"`
}

// Client talks to the server API, keeping the bearer token for the session.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Authenticated reports whether a login or registration has succeeded.
func (c *Client) Authenticated() bool { return c.token != "" }

// Register creates an account and keeps the returned token.
func (c *Client) Register(ctx context.Context, login string, password []byte) error {
	var resp tokenResponse
	err := c.do(ctx, http.MethodPost, "/api/user/register",
		credentialsRequest{Login: login, Password: string(password)}, &resp)
	if err != nil {
		return err
	}
	c.token = resp.Token
	return nil
}

// Login verifies credentials and keeps the returned token.
func (c *Client) Login(ctx context.Context, login string, password []byte) error {
	var resp tokenResponse
	err := c.do(ctx, http.MethodPost, "/api/user/login",
		credentialsRequest{Login: login, Password: string(password)}, &resp)
	if err != nil {
		return err
	}
	c.token = resp.Token
	return nil
}

// ListFiles returns summaries of everything visible to the current user.
func (c *Client) ListFiles(ctx context.Context) ([]File, error) {
	var resp []File
	if err := c.do(ctx, http.MethodGet, "/api/files", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetFile fetches a single file with its content.
func (c *Client) GetFile(ctx context.Context, id string) (*File, error) {
	var resp File
	if err := c.do(ctx, http.MethodGet, "/api/files/"+id, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateFile stores a new file owned by the current user.
func (c *Client) CreateFile(ctx context.Context, name, content, visibility string) (*File, error) {
	var resp File
	err := c.do(ctx, http.MethodPost, "/api/files",
		fileRequest{Name: name, Content: content, Visibility: visibility}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteFile removes a file owned by the current user.
func (c *Client) DeleteFile(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/files/"+id, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return err
		}
	}
	return nil
}

func statusError(code int) error {
	switch code {
	case http.StatusBadRequest:
		return common.ErrorValidation
	case http.StatusUnauthorized:
		return common.ErrorUnauthorized
	case http.StatusForbidden:
		return common.ErrorForbidden
	case http.StatusNotFound:
		return common.ErrorNotFound
	case http.StatusConflict:
		return common.ErrorAlreadyExists
	default:
		return common.ErrorInternal
	}
}
