package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"
)

// ResponseError is returned when the server answered with a non 2xx status.
// Data holds the response body, usually the error payload of the API.
type ResponseError struct {
	StatusCode int
	Data       json.RawMessage
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, strings.TrimSpace(string(e.Data)))
}

// TransportError is returned when no response was received.
type TransportError struct {
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	return e.Message
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// State is a snapshot of the request state of a Form.
type State struct {
	Data    json.RawMessage
	Errors  error
	Loading bool
}

// Form sends JSON requests to one API and keeps the state of the last request.
// It is safe for concurrent use, the state reflects the request that finished last.
type Form struct {
	token  string
	client *resty.Client

	mu      sync.Mutex
	data    json.RawMessage
	errors  error
	loading bool
}

// NewForm creates a form for baseURL. An empty token sends no Authorization header.
func NewForm(baseURL string, token string) *Form {
	return newForm(resty.New(), baseURL, token)
}

func NewFormWithClient(baseURL string, token string, httpClient *http.Client) *Form {
	return newForm(resty.NewWithClient(httpClient), baseURL, token)
}

func newForm(client *resty.Client, baseURL string, token string) *Form {
	client.
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	return &Form{
		token:  token,
		client: client,
	}
}

func (f *Form) Get(ctx context.Context, url string) (json.RawMessage, error) {
	return f.request(ctx, http.MethodGet, url, nil, true)
}

func (f *Form) Post(ctx context.Context, url string, body any) (json.RawMessage, error) {
	return f.request(ctx, http.MethodPost, url, body, true)
}

func (f *Form) Put(ctx context.Context, url string, body any) (json.RawMessage, error) {
	return f.request(ctx, http.MethodPut, url, body, true)
}

// Del sends a DELETE with a JSON body, an empty object if body is nil.
// The Authorization header is only sent with auth set.
func (f *Form) Del(ctx context.Context, endpoint string, body any, auth bool) (json.RawMessage, error) {
	if body == nil {
		body = map[string]any{}
	}
	return f.request(ctx, http.MethodDelete, endpoint, body, auth)
}

// Reset clears data and errors.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data = nil
	f.errors = nil
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return State{
		Data:    f.data,
		Errors:  f.errors,
		Loading: f.loading,
	}
}

func (f *Form) Data() json.RawMessage {
	return f.State().Data
}

func (f *Form) Errors() error {
	return f.State().Errors
}

func (f *Form) Loading() bool {
	return f.State().Loading
}

func (f *Form) request(ctx context.Context, method string, url string, body any, auth bool) (json.RawMessage, error) {
	f.mu.Lock()
	f.loading = true
	f.errors = nil
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.loading = false
		f.mu.Unlock()
	}()

	data, err := f.do(ctx, method, url, body, auth)
	f.mu.Lock()
	if err != nil {
		f.errors = err
	} else {
		f.data = data
	}
	f.mu.Unlock()

	return data, err
}

func (f *Form) do(ctx context.Context, method string, url string, body any, auth bool) (json.RawMessage, error) {
	var errorPayload json.RawMessage
	req := f.client.R().
		SetContext(ctx).
		SetError(&errorPayload)
	if body != nil {
		req.SetBody(body)
	}
	if auth && f.token != "" {
		req.SetAuthToken(f.token)
	}

	resp, err := req.Execute(method, url)
	if err != nil || resp == nil || resp.RawResponse == nil {
		if err == nil {
			err = fmt.Errorf("no response for %s %s", method, url)
		}
		return nil, &TransportError{Message: err.Error(), Err: err}
	}

	if resp.IsError() || !resp.IsSuccess() {
		data := errorPayload
		if len(data) == 0 {
			data = json.RawMessage(resp.Body())
		}
		return nil, &ResponseError{StatusCode: resp.StatusCode(), Data: data}
	}

	responseBody := resp.Body()
	if len(bytes.TrimSpace(responseBody)) == 0 {
		return json.RawMessage("null"), nil
	}
	return json.RawMessage(responseBody), nil
}
