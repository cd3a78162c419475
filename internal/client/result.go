package client

import "github.com/example/miniblog/internal/models"

// CallError is the failure variant of an API call. It mirrors the gateway's
// failure payload, so a decoded error body round-trips without translation.
type CallError struct {
	Message   string `json:"error"`
	Kind      string `json:"kind"`
	Retryable bool   `json:"retryable"`
}

func (e *CallError) Error() string { return e.Message }

// ListResult is the outcome of a list-posts call: either Posts is populated
// or Err is non-nil, never both.
type ListResult struct {
	Posts []models.Post
	Err   *CallError
}

func (r ListResult) OK() bool { return r.Err == nil }

// CreateResult is the outcome of a create-post call.
type CreateResult struct {
	Post *models.Post
	Err  *CallError
}

func (r CreateResult) OK() bool { return r.Err == nil }
