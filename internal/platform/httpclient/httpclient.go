package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultTimeout = 10 * time.Second
)

// Client envuelve *resty.Client con helpers comunes para adapters.
type Client struct {
	R *resty.Client
}

// New crea un Client apuntando a baseURL con timeout razonable.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("httpclient: base url required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	r := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)
	return &Client{R: r}, nil
}

// HTTPError representa una respuesta no-2xx.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// File es una parte de archivo para requests multipart.
type File struct {
	Field       string
	Name        string
	ContentType string
	Reader      io.Reader
}

// Request describe una llamada. Si Form o File vienen, el body va como multipart.
type Request struct {
	Method  string
	Path    string
	Headers map[string]string
	Query   url.Values
	Form    map[string]string
	File    *File
}

// Do ejecuta el request y decodifica la respuesta JSON en out (opcional).
// Retorna *HTTPError si status no es 2xx.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	if c == nil || c.R == nil {
		return errors.New("httpclient: nil client")
	}

	r := c.R.R().SetContext(ctx)
	for k, v := range req.Headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		r.SetHeader(k, v)
	}
	if len(req.Query) > 0 {
		r.SetQueryParamsFromValues(req.Query)
	}
	if req.Form != nil || req.File != nil {
		r.SetMultipartFormData(req.Form)
		if f := req.File; f != nil {
			r.SetMultipartField(f.Field, f.Name, f.ContentType, f.Reader)
		}
	}

	resp, err := r.Execute(req.Method, req.Path)
	if err != nil {
		return fmt.Errorf("httpclient: do request: %w", err)
	}

	raw := resp.Body()
	if resp.IsError() || resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return &HTTPError{
			StatusCode: resp.StatusCode(),
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("httpclient: unmarshal json: %w", err)
	}
	return nil
}

// DoJSON es un atajo para requests sin body.
func (c *Client) DoJSON(ctx context.Context, method, path string, headers map[string]string, query url.Values, out any) error {
	return c.Do(ctx, Request{Method: method, Path: path, Headers: headers, Query: query}, out)
}
