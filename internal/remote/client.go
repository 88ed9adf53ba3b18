// Package remote talks to the HTTP task store: list, create and delete.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	applog "github.com/elpatron68/tasklist-web/internal/log"
)

const (
	// maxBodyBytes caps how much of a response body is read.
	maxBodyBytes = 4 << 20

	// errBodyPreview is the length of the body kept in a StatusError.
	errBodyPreview = 200

	requestIDHeader = "X-Request-Id"
)

// Recorder receives one call per outbound request. status is 0 when no
// response was received.
type Recorder interface {
	Record(requestID, method, path string, status int, err error)
}

// Client implements the task store contract over HTTP:
//
//	GET    {endpoint}       -> 200, JSON array of {id, name}
//	POST   {endpoint}       -> 2xx, body {name}
//	DELETE {endpoint}/{id}  -> 2xx
type Client struct {
	endpoint *url.URL
	http     *http.Client
	timeout  time.Duration
	recorder Recorder
	newID    func() string
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client (tests, proxies).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds every request. Zero keeps requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithRecorder(r Recorder) Option {
	return func(c *Client) { c.recorder = r }
}

// New creates a client for the tasks endpoint, e.g. http://localhost:3000/tasks.
func New(endpoint string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(endpoint))
	if err != nil {
		return nil, fmt.Errorf("invalid remote url %q: %w", endpoint, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid remote url %q: need http(s)://host/path", endpoint)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	c := &Client{
		endpoint: u,
		http:     &http.Client{},
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the normalized tasks URL.
func (c *Client) Endpoint() string { return c.endpoint.String() }

// List fetches all tasks in the order the store returns them.
func (c *Client) List(ctx context.Context) ([]Task, error) {
	target := c.endpoint.String()
	body, err := c.do(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	var tasks []Task
	if err := json.Unmarshal(body, &tasks); err != nil {
		return nil, &DecodeError{URL: target, Err: err}
	}
	if tasks == nil {
		// "null" decodes without error
		return nil, &DecodeError{URL: target, Err: errors.New("response is not a JSON array")}
	}
	return tasks, nil
}

// Create adds a task with the given name.
func (c *Client) Create(ctx context.Context, name string) error {
	payload, err := json.Marshal(createRequest{Name: name})
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodPost, c.endpoint.String(), payload)
	return err
}

// Delete removes the task with the given id.
func (c *Client) Delete(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, c.taskURL(id), nil)
	return err
}

func (c *Client) taskURL(id int64) string {
	u := *c.endpoint
	u.Path = c.endpoint.Path + "/" + strconv.FormatInt(id, 10)
	return u.String()
}

func (c *Client) do(ctx context.Context, method, target string, payload []byte) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	reqID := c.newID()
	c.applyHeaders(req, reqID, payload != nil)

	applog.Debugf("remote %s %s id=%s", method, target, reqID)
	resp, err := c.http.Do(req)
	if err != nil {
		nerr := &NetworkError{Method: method, URL: target, Err: err}
		c.record(reqID, method, req.URL.Path, 0, nerr)
		return nil, nerr
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		nerr := &NetworkError{Method: method, URL: target, Err: fmt.Errorf("read body: %w", err)}
		c.record(reqID, method, req.URL.Path, resp.StatusCode, nerr)
		return nil, nerr
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serr := &StatusError{
			Method: method,
			URL:    target,
			Code:   resp.StatusCode,
			Body:   truncate(strings.TrimSpace(string(data)), errBodyPreview),
		}
		c.record(reqID, method, req.URL.Path, resp.StatusCode, serr)
		return nil, serr
	}
	c.record(reqID, method, req.URL.Path, resp.StatusCode, nil)
	return data, nil
}

func (c *Client) applyHeaders(req *http.Request, reqID string, hasBody bool) {
	req.Header.Set("Accept", "application/json")
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	if reqID != "" {
		req.Header.Set(requestIDHeader, reqID)
	}
}

func (c *Client) record(reqID, method, path string, status int, err error) {
	if c.recorder == nil {
		return
	}
	c.recorder.Record(reqID, method, path, status, err)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
