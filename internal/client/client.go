package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/example/miniblog/internal/config"
	"github.com/example/miniblog/internal/models"
)

// Client talks to the posts gateway. Every call returns an explicit result
// instead of the ambient {data, error} pair the hosted-store SDKs hand out.
type Client struct {
	baseURL string
	anonKey string
	http    *http.Client
}

func New(cfg *config.ClientConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		anonKey: cfg.AnonKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) ListPosts(ctx context.Context) ListResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/posts", nil)
	if err != nil {
		return ListResult{Err: &CallError{Message: err.Error(), Kind: "internal"}}
	}
	var posts []models.Post
	if cerr := c.do(req, &posts); cerr != nil {
		return ListResult{Err: cerr}
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return ListResult{Posts: posts}
}

func (c *Client) CreatePost(ctx context.Context, title, content, author string) CreateResult {
	body, err := json.Marshal(map[string]string{
		"title":   title,
		"content": content,
		"author":  author,
	})
	if err != nil {
		return CreateResult{Err: &CallError{Message: err.Error(), Kind: "internal"}}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/posts", bytes.NewReader(body))
	if err != nil {
		return CreateResult{Err: &CallError{Message: err.Error(), Kind: "internal"}}
	}
	req.Header.Set("Content-Type", "application/json")
	var post models.Post
	if cerr := c.do(req, &post); cerr != nil {
		return CreateResult{Err: cerr}
	}
	return CreateResult{Post: &post}
}

// do executes the request and decodes the success body into out. Transport
// failures are retryable; a non-2xx body is decoded into the gateway's
// structured error shape.
func (c *Client) do(req *http.Request, out interface{}) *CallError {
	req.Header.Set("Accept", "application/json")
	if c.anonKey != "" {
		req.Header.Set("apikey", c.anonKey)
	}
	res, err := c.http.Do(req)
	if err != nil {
		return &CallError{Message: err.Error(), Kind: "unavailable", Retryable: true}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var cerr CallError
		if err := json.NewDecoder(res.Body).Decode(&cerr); err != nil || cerr.Message == "" {
			cerr = CallError{Message: fmt.Sprintf("unexpected status %d", res.StatusCode), Kind: "internal"}
		}
		return &cerr
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return &CallError{Message: fmt.Sprintf("decode response: %v", err), Kind: "internal"}
	}
	return nil
}
