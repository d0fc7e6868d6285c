package scraper

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrTimeout means the page did not answer within the fetch timeout.
	ErrTimeout = errors.New("timeout")
	// ErrConnection covers dial, TLS and transport failures.
	ErrConnection = errors.New("connection error")
	// ErrHTTPStatus means the page answered with a non-2xx status.
	ErrHTTPStatus = errors.New("unexpected http status")
	// ErrNoSelector means no strategy reached the confidence threshold.
	ErrNoSelector = errors.New("no product selector matched")
)

// ErrorKind is the failure category reported in a ScrapeResult.
type ErrorKind string

const (
	KindNone       ErrorKind = ""
	KindTimeout    ErrorKind = "timeout"
	KindConnection ErrorKind = "connection"
	KindHTTPStatus ErrorKind = "http_status"
	KindNoSelector ErrorKind = "no_selector"
	KindOther      ErrorKind = "other"
)

// StatusError carries the status code of a rejected response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %d", ErrHTTPStatus, e.Code)
}

func (e *StatusError) Unwrap() error {
	return ErrHTTPStatus
}

// Classify maps an error to its ErrorKind.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, ErrHTTPStatus):
		return KindHTTPStatus
	case errors.Is(err, ErrConnection), errors.Is(err, context.Canceled):
		return KindConnection
	case errors.Is(err, ErrNoSelector):
		return KindNoSelector
	default:
		return KindOther
	}
}

// describe renders the human readable message stored in ScrapeResult.Error.
func describe(err error) string {
	switch Classify(err) {
	case KindTimeout:
		return "timeout: the page did not respond in time"
	case KindConnection:
		return fmt.Sprintf("connection error: %v", err)
	case KindHTTPStatus:
		return fmt.Sprintf("http error: %v", err)
	case KindNoSelector:
		return "no product list recognized on the page"
	default:
		return fmt.Sprintf("error: %v", err)
	}
}
