// Package appplatform talks to the DigitalOcean App Platform API
// (GET/PUT /v2/apps/{app_id}) with bearer-token authentication.
package appplatform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/mitchlabeetch/specsync/internal/appspec"
	"github.com/mitchlabeetch/specsync/internal/errs"
)

const DefaultBaseURL = "https://api.digitalocean.com"

var (
	ErrNetwork      = errors.New("appplatform: network error")
	ErrUnauthorized = errors.New("appplatform: unauthorized (401/403)")
	ErrNotFound     = errors.New("appplatform: app not found (404)")
	ErrAPIFailure   = errors.New("appplatform: unexpected api response")
	ErrDecodeFailed = errors.New("appplatform: decode failed")
	ErrRemote       = errors.New("appplatform: remote reported error")
)

type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient builds a client whose requests carry "Authorization: Bearer
// <token>" via an oauth2 static token source.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	c.http = oauth2.NewClient(context.Background(), ts)
	c.http.Timeout = c.timeout
	return c
}

func (c *Client) String() string {
	return "appplatform.Client{redacted}"
}

// GetApp fetches the app and returns its spec.
func (c *Client) GetApp(ctx context.Context, appID string) (*appspec.Spec, error) {
	body, err := c.do(ctx, http.MethodGet, appID, nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		App struct {
			Spec *appspec.Spec `json:"spec"`
		} `json:"app"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, errs.Wrap(ErrDecodeFailed, err)
	}
	if payload.App.Spec == nil {
		return nil, errs.WrapMsg(ErrDecodeFailed, "response has no app.spec")
	}
	return payload.App.Spec, nil
}

// UpdateApp replaces the app's spec. The platform starts a new deployment on
// its own once the update is accepted. Some validation failures come back
// with a 2xx status and an error payload, so the body is scanned for the
// "error" marker as well.
func (c *Client) UpdateApp(ctx context.Context, appID string, spec *appspec.Spec) error {
	payload, err := json.Marshal(struct {
		Spec *appspec.Spec `json:"spec"`
	}{Spec: spec})
	if err != nil {
		return errs.Wrap(ErrDecodeFailed, err)
	}

	body, err := c.do(ctx, http.MethodPut, appID, payload)
	if err != nil {
		return err
	}
	if strings.Contains(strings.ToLower(string(body)), "error") {
		return errs.WrapMsg(ErrRemote, string(body))
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, appID string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.appURL(appID), reqBody)
	if err != nil {
		return nil, errs.Wrap(ErrNetwork, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errs.Wrap(ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.Wrap(ErrNetwork, err)
	}
	if err := checkStatus(resp.StatusCode, body); err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) appURL(appID string) string {
	return c.baseURL + "/v2/apps/" + appID
}

func checkStatus(code int, body []byte) error {
	switch code {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return errs.WrapMsg(ErrAPIFailure, fmt.Sprintf("status %d: %s", code, body))
	}
}
