package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const (
	DefaultURL     = "https://dummyjson.com/todos"
	DefaultTimeout = 30 * time.Second
)

// RemoteTask is one demo item as served by the seed endpoint.
type RemoteTask struct {
	ID        int64  `json:"id"`
	Todo      string `json:"todo"`
	Completed bool   `json:"completed"`
	UserID    int64  `json:"userId"`
}

// Page is the response envelope. The list is published under "todos" by
// dummyjson and under "items" by some mirrors.
type Page struct {
	Todos []RemoteTask `json:"todos"`
	Items []RemoteTask `json:"items"`
	Total int          `json:"total"`
	Skip  int          `json:"skip"`
	Limit int          `json:"limit"`
}

func (p Page) Tasks() []RemoteTask {
	if p.Todos != nil {
		return p.Todos
	}
	return p.Items
}

type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default client. Apply WithTimeout after it to
// change the timeout of hc.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func NewClient(rawURL string, opts ...Option) *Client {
	if rawURL == "" {
		rawURL = DefaultURL
	}
	c := &Client{
		url:        rawURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchSeedTasks issues a single GET and returns the first page of demo tasks.
func (c *Client) FetchSeedTasks(ctx context.Context) ([]RemoteTask, error) {
	target, err := url.Parse(c.url)
	if err != nil {
		return nil, &NetworkError{URL: c.url, Err: fmt.Errorf("bad url: %w", err)}
	}
	if target.Scheme != "http" && target.Scheme != "https" || target.Host == "" {
		return nil, &NetworkError{URL: c.url, Err: errors.New("bad url: expected absolute http(s) url")}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, &NetworkError{URL: c.url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: c.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &NetworkError{URL: c.url, StatusCode: resp.StatusCode}
	}

	var page Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if page.Todos == nil && page.Items == nil {
		return nil, &DecodeError{Err: errors.New(`missing "todos" or "items" list`)}
	}

	tasks := page.Tasks()
	c.logger.Debug("fetched seed tasks",
		slog.String("url", c.url),
		slog.Int("count", len(tasks)),
		slog.Int("total", page.Total),
		slog.Duration("elapsed", time.Since(started)),
	)
	return tasks, nil
}
