package db

import (
	"context"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ErrorKind string

const (
	KindValidation  ErrorKind = "validation"
	KindConstraint  ErrorKind = "constraint"
	KindNotFound    ErrorKind = "not_found"
	KindUnavailable ErrorKind = "unavailable"
	KindInternal    ErrorKind = "internal"
)

// StoreError is the explicit form of the store's {data, error} pair: every
// failure carries a kind, a message, and whether a retry could succeed.
type StoreError struct {
	Kind      ErrorKind `json:"kind"`
	Message   string    `json:"message"`
	Retryable bool      `json:"retryable"`
}

func (e *StoreError) Error() string { return e.Message }

func NotFound(msg string) *StoreError {
	return &StoreError{Kind: KindNotFound, Message: msg}
}

func Invalid(msg string) *StoreError {
	return &StoreError{Kind: KindValidation, Message: msg}
}

// Classify maps an error coming out of the store layer onto a StoreError.
// The gorm postgres driver rides on pgx, so server errors surface as
// *pgconn.PgError; *pq.Error is handled too for code that talks lib/pq
// directly.
func Classify(err error) *StoreError {
	var se *StoreError
	if errors.As(err, &se) {
		return se
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &StoreError{Kind: KindNotFound, Message: "record not found"}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return classifySQLState(pgErr.Code, pgErr.Message)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return classifySQLState(string(pqErr.Code), pqErr.Message)
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return &StoreError{Kind: KindUnavailable, Message: err.Error(), Retryable: true}
	}

	return &StoreError{Kind: KindInternal, Message: err.Error()}
}

// SQLSTATE classes: 22 = data exception (e.g. 22001 value too long),
// 23 = integrity constraint violation, 08 = connection exception,
// 53 = insufficient resources, 57 = operator intervention (shutdown).
func classifySQLState(code, message string) *StoreError {
	class := code
	if len(class) > 2 {
		class = class[:2]
	}
	switch class {
	case "22", "23":
		return &StoreError{Kind: KindConstraint, Message: message}
	case "08", "53", "57":
		return &StoreError{Kind: KindUnavailable, Message: message, Retryable: true}
	}
	return &StoreError{Kind: KindInternal, Message: message}
}
