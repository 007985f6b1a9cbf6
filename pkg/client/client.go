// Package client is a Go client for the Taskboard API. It attaches the
// caller's bearer token to every request, unwraps the response envelope,
// and notifies the application when the server rejects its credentials
// so it can force a sign-out.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrUnauthorized is returned when the server answers 401. The
// configured unauthorized handler has already fired by the time callers
// see it.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a non-401 failure reported through the response envelope.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// TokenSource supplies the bearer token for a request. Returning an
// empty token sends the request unauthenticated.
type TokenSource func(ctx context.Context) (string, error)

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpc = hc }
}

// WithTokenSource sets the per-request token supplier.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.token = ts }
}

// WithUnauthorizedHandler registers a hook invoked on every 401
// response, before the call returns ErrUnauthorized. Applications use it
// to force a sign-out and resynchronize auth state.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

type Client struct {
	baseURL        string
	httpc          *http.Client
	token          TokenSource
	onUnauthorized func()
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Board mirrors the server's board resource.
type Board struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Todo mirrors the server's todo resource.
type Todo struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	BoardID     string    `json:"boardId"`
	OwnerID     string    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BoardStats is the per-board completion summary.
type BoardStats struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
	Pending   int64 `json:"pending"`
}

// BoardUpdate is a partial board update; nil fields are left unchanged.
type BoardUpdate struct {
	Name *string `json:"name,omitempty"`
}

// TodoUpdate is a partial todo update; nil fields are left unchanged.
type TodoUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	if c.token != nil {
		token, err := c.token(ctx)
		if err != nil {
			return fmt.Errorf("failed to get token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return ErrUnauthorized
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if !env.Success {
		return &APIError{Status: resp.StatusCode, Message: env.Error}
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode payload: %w", err)
		}
	}
	return nil
}

// Boards lists the caller's boards, newest first.
func (c *Client) Boards(ctx context.Context) ([]Board, error) {
	var boards []Board
	err := c.do(ctx, http.MethodGet, "/api/boards", nil, &boards)
	return boards, err
}

// CreateBoard creates a board with the given name.
func (c *Client) CreateBoard(ctx context.Context, name string) (*Board, error) {
	var board Board
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPost, "/api/boards", body, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

// UpdateBoard applies a partial update to a board.
func (c *Client) UpdateBoard(ctx context.Context, id string, update BoardUpdate) (*Board, error) {
	var board Board
	if err := c.do(ctx, http.MethodPut, "/api/boards/"+url.PathEscape(id), update, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

// DeleteBoard deletes a board and all of its todos.
func (c *Client) DeleteBoard(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/boards/"+url.PathEscape(id), nil, nil)
}

// BoardStats fetches the completion summary for a board.
func (c *Client) BoardStats(ctx context.Context, boardID string) (*BoardStats, error) {
	var stats BoardStats
	if err := c.do(ctx, http.MethodGet, "/api/boards/"+url.PathEscape(boardID)+"/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Todos lists the todos on a board, newest first. A status of "pending"
// or "completed" filters; any other value returns the full list.
func (c *Client) Todos(ctx context.Context, boardID, status string) ([]Todo, error) {
	path := "/api/boards/" + url.PathEscape(boardID) + "/todos"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var todos []Todo
	err := c.do(ctx, http.MethodGet, path, nil, &todos)
	return todos, err
}

// CreateTodo creates a todo on a board.
func (c *Client) CreateTodo(ctx context.Context, boardID, title, description string) (*Todo, error) {
	var todo Todo
	body := map[string]string{"title": title, "description": description}
	if err := c.do(ctx, http.MethodPost, "/api/boards/"+url.PathEscape(boardID)+"/todos", body, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

// UpdateTodo applies a partial update to a todo.
func (c *Client) UpdateTodo(ctx context.Context, id string, update TodoUpdate) (*Todo, error) {
	var todo Todo
	if err := c.do(ctx, http.MethodPut, "/api/todos/"+url.PathEscape(id), update, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

// DeleteTodo deletes a todo.
func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/todos/"+url.PathEscape(id), nil, nil)
}
