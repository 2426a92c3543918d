package main

import (
	"fmt"
	"io"
	"time"

	"github.com/go-resty/resty/v2"
)

// apiClient is a thin resty wrapper that prints response bodies verbatim.
type apiClient struct {
	http *resty.Client
}

func newClient(baseURL, token string) *apiClient {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)
	if token != "" {
		c.SetAuthToken(token)
	}
	return &apiClient{http: c}
}

func (c *apiClient) requireToken() error {
	if c.http.Token == "" {
		return fmt.Errorf("--token or MINDGARDEN_TOKEN required")
	}
	return nil
}

// do sends the request and copies a successful body to out.
func (c *apiClient) do(method, path string, body any, query map[string]string, out io.Writer) error {
	req := c.http.R().SetQueryParams(query)
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("http %d: %s", resp.StatusCode(), resp.String())
	}
	if len(resp.Body()) > 0 {
		_, err = fmt.Fprintln(out, resp.String())
	}
	return err
}
