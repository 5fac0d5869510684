// Package e2etest drives the JSON API of a running server the way a browser
// client would, cookies and CSRF tokens included.
package e2etest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/justinas/nosurf"
	"github.com/myrjola/adaptlearn/internal/errors"
	"github.com/myrjola/adaptlearn/internal/tracker"
)

type Client struct {
	client    *http.Client
	url       string
	csrfToken string
}

func NewClient(url string) (*Client, error) {
	jar, err := newUnsafeCookieJar()
	if err != nil {
		return nil, errors.Wrap(err, "create unsafe cookie jar")
	}
	return &Client{
		client: &http.Client{Jar: jar},
		url:    url,
	}, nil
}

// WaitForReady calls the specified endpoint until it gets a HTTP 200 Success
// response or until the context is cancelled or the 1-second timeout is reached.
func (c *Client) WaitForReady(ctx context.Context, urlPath string) error {
	timeout := 1 * time.Second
	startTime := time.Now()
	var (
		err  error
		req  *http.Request
		resp *http.Response
	)
	for {
		if req, err = http.NewRequestWithContext(
			ctx,
			http.MethodGet,
			c.url+urlPath,
			nil,
		); err != nil {
			return errors.Wrap(err, "create request")
		}

		if resp, err = c.client.Do(req); err == nil {
			if resp.StatusCode == http.StatusOK {
				if err = resp.Body.Close(); err != nil {
					return errors.Wrap(err, "close response body")
				}
				return nil
			}
			if err = resp.Body.Close(); err != nil {
				return errors.Wrap(err, "close response body")
			}
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "context cancelled")
		default:
			if time.Since(startTime) >= timeout {
				return errors.New("timeout waiting for endpoint to be ready")
			}
			time.Sleep(100 * time.Millisecond) //nolint:mnd // 100ms
		}
	}
}

// Login identifies the user by email and captures the CSRF token for
// subsequent requests.
func (c *Client) Login(ctx context.Context, email string) error {
	var response struct {
		Email     string `json:"email"`
		CSRFToken string `json:"csrfToken"`
	}
	if err := c.postJSON(ctx, "/api/login", map[string]string{"email": email}, &response); err != nil {
		return errors.Wrap(err, "login")
	}
	if response.CSRFToken == "" {
		return errors.New("login response missing CSRF token")
	}
	c.csrfToken = response.CSRFToken
	return nil
}

// State fetches the user's tracking snapshot.
func (c *Client) State(ctx context.Context) (tracker.Snapshot, error) {
	var snapshot tracker.Snapshot
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"/api/state", nil)
	if err != nil {
		return snapshot, errors.Wrap(err, "create request")
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return snapshot, errors.Wrap(err, "do request")
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return snapshot, errors.New(fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}
	if err = json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return snapshot, errors.Wrap(err, "decode snapshot")
	}
	return snapshot, nil
}

// Logout destroys the session.
func (c *Client) Logout(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/api/logout", nil)
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	req.Header.Set(nosurf.HeaderName, c.csrfToken)
	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "do request")
	}
	if err = resp.Body.Close(); err != nil {
		return errors.Wrap(err, "close response body")
	}
	if resp.StatusCode != http.StatusNoContent {
		return errors.New(fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}
	c.csrfToken = ""
	return nil
}

func (c *Client) postJSON(ctx context.Context, urlPath string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "marshal request body")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+urlPath, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.csrfToken != "" {
		req.Header.Set(nosurf.HeaderName, c.csrfToken)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "do request")
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return errors.New(fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, bodyBytes))
	}
	if out == nil {
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode response body")
	}
	return nil
}
