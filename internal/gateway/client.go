package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// Observer receives the raw body of every successful response.
type Observer func(body []byte)

// Options carries the per-call inputs of Do.
type Options struct {
	Query   Query
	Body    any
	Headers map[string]string
}

// Client is the single path from the application to the REST backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *slog.Logger
	now        func() time.Time

	mu        sync.RWMutex
	observers []Observer
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(client *Client) {
		if httpClient != nil {
			client.httpClient = httpClient
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(client *Client) {
		if logger != nil {
			client.logger = logger
		}
	}
}

func WithObserver(observer Observer) Option {
	return func(client *Client) {
		if observer != nil {
			client.observers = append(client.observers, observer)
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(client *Client) {
		if now != nil {
			client.now = now
		}
	}
}

func New(baseURL string, tokens TokenSource, options ...Option) *Client {
	client := &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		tokens:     tokens,
		logger:     slog.Default(),
		now:        time.Now,
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// Observe registers an additional observer. Observers run synchronously, in
// registration order, after each successful call.
func (client *Client) Observe(observer Observer) {
	if observer == nil {
		return
	}
	client.mu.Lock()
	defer client.mu.Unlock()
	client.observers = append(client.observers, observer)
}

// Do performs route and decodes a 2xx body into out when out is non-nil.
func (client *Client) Do(ctx context.Context, route Route, options Options, out any) error {
	endpoint, ok := Lookup(route)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRoute, route)
	}

	token, err := client.resolveToken(ctx)
	if err != nil {
		client.logger.Error("api request failed", "route", string(route), "error", err)
		return err
	}

	target := BuildURL(client.baseURL, endpoint.Path, options.Query)
	var payload io.Reader
	if options.Body != nil {
		encoded, err := json.Marshal(options.Body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", route, err)
		}
		payload = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, endpoint.Method, target, payload)
	if err != nil {
		return fmt.Errorf("build %s request: %w", route, err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Authorization", "Bearer "+token)
	for key, value := range options.Headers {
		request.Header.Set(key, value)
	}

	started := client.now()
	client.logger.Debug("api request", "route", string(route), "method", endpoint.Method, "url", target)
	response, err := client.httpClient.Do(request)
	if err != nil {
		client.logger.Error("api request failed", "route", string(route), "error", err)
		return fmt.Errorf("%w: %w", ErrNoResponse, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		client.logger.Error("api request failed", "route", string(route), "error", err)
		return fmt.Errorf("%w: read body: %w", ErrNoResponse, err)
	}
	client.logger.Debug("api response", "route", string(route), "status", response.StatusCode, "duration", client.now().Sub(started))

	if response.StatusCode < 200 || response.StatusCode > 299 {
		httpErr := &HTTPError{Route: route, Status: response.StatusCode, Body: body}
		client.logger.Error("api request failed", "route", string(route), "status", response.StatusCode)
		return httpErr
	}

	client.notify(body)

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", route, err)
	}
	return nil
}

func (client *Client) resolveToken(ctx context.Context) (string, error) {
	if client.tokens == nil {
		return "", ErrAuthentication
	}
	token, err := client.tokens.AccessToken(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	if !usableToken(token, client.now()) {
		return "", ErrAuthentication
	}
	return token, nil
}

func (client *Client) notify(body []byte) {
	client.mu.RLock()
	observers := append([]Observer(nil), client.observers...)
	client.mu.RUnlock()

	for _, observer := range observers {
		observer(body)
	}
}
