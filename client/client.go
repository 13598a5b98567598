// Package client talks to the flashcards HTTP API.
package client

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

	"github.com/andrewpaige1/flashcards-api/models"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ListFlashcards(ctx context.Context, page, limit int) (*models.FlashcardPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var out models.FlashcardPage
	if err := c.do(ctx, http.MethodGet, "/api/flashcards?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateFlashcard(ctx context.Context, question, answer string) (*models.Flashcard, error) {
	body := map[string]string{"question": question, "answer": answer}

	var out struct {
		Data models.Flashcard `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/flashcards", body, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) DeleteFlashcard(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/api/flashcards/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *Client) RandomFlashcard(ctx context.Context) (*models.StudyFlashcard, error) {
	var out struct {
		Data models.StudyFlashcard `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/flashcards/study/random", nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func apiError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var body struct {
		Error json.RawMessage `json:"error"`
	}
	msg := http.StatusText(resp.StatusCode)
	if err := json.Unmarshal(raw, &body); err == nil && len(body.Error) > 0 {
		var s string
		if json.Unmarshal(body.Error, &s) == nil {
			msg = s
		} else {
			msg = string(body.Error)
		}
	}

	return &APIError{Status: resp.StatusCode, Message: msg}
}
