package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Transport handles low-level HTTP and authentication against an attendlog
// server.
type Transport struct {
	BaseURL    string
	AuthToken  string
	HTTPClient *http.Client
}

func NewTransport(baseURL, token string) *Transport {
	return &Transport{
		BaseURL:    baseURL,
		AuthToken:  token,
		HTTPClient: &http.Client{},
	}
}

func (t *Transport) buildURL(path string, query map[string]string) string {
	u, _ := url.Parse(t.BaseURL + path)
	q := u.Query()
	for k, v := range query {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Post sends a JSON body and returns the raw response bytes. Non-2xx statuses
// come back as errors carrying the response body.
func (t *Transport) Post(ctx context.Context, path string, data any, query map[string]string) ([]byte, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.buildURL(path, query), bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if t.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.AuthToken)
	}

	resp, err := t.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("POST %s failed with status code %d: %s", path, resp.StatusCode, string(respBody))
	}
	return respBody, nil
}

// Get sends a GET request and returns the raw response.
func (t *Transport) Get(ctx context.Context, path string, query map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.buildURL(path, query), nil)
	if err != nil {
		return nil, err
	}
	if t.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.AuthToken)
	}
	return t.HTTPClient.Do(req)
}
