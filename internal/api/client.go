package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"
)

// Client talks to the job API. It is stateless apart from its configuration;
// every call fetches fresh state from the remote service.
type Client struct {
	cfg  *Config
	http *http.Client
	log  *logrus.Entry
}

// response is implemented by every endpoint envelope; validate runs after a
// successful JSON decode and reports missing required fields.
type response interface {
	validate() error
}

// New builds a Client from cfg. A nil httpClient gets a default transport
// honoring the configured connect and read timeouts.
func New(cfg *Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		dialer := &net.Dialer{Timeout: cfg.ConnectTimeout}
		httpClient = &http.Client{
			Timeout: cfg.ReadTimeout,
			Transport: &http.Transport{
				DialContext: dialer.DialContext,
			},
		}
	}
	return &Client{
		cfg:  cfg,
		http: httpClient,
		log:  logrus.WithField("component", "api"),
	}
}

// do builds a request, sends it with basic auth attached, and runs the
// result through the error classifier and the response validator. out is
// decoded in place on success.
func (c *Client) do(ctx context.Context, method, path string, body any, query url.Values, out response) error {
	key, secret, err := c.cfg.credentials()
	if err != nil {
		return err
	}

	reqURL := c.cfg.endpoint(path)
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(key, secret)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.WithFields(logrus.Fields{"method": method, "url": reqURL}).Debug("sending request")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WithFields(logrus.Fields{"method": method, "url": reqURL}).
			WithError(err).Warn("request failed")
		return fmt.Errorf("%s %s: %w", method, reqURL, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	// Transport-level classification comes first; validation only runs on
	// a passing status.
	if resp.StatusCode >= 400 {
		apiErr := classifyError(resp.StatusCode, http.StatusText(resp.StatusCode), reqURL, raw)
		c.log.WithFields(logrus.Fields{"status": resp.StatusCode, "url": reqURL}).
			Debug("request rejected")
		return apiErr
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &SchemaError{
			Endpoint: path,
			Fields:   map[string]string{"body": err.Error()},
		}
	}
	return out.validate()
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out response) error {
	return c.do(ctx, http.MethodGet, path, nil, query, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out response) error {
	return c.do(ctx, http.MethodPost, path, body, nil, out)
}
