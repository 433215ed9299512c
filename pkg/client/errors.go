package client

import (
	"errors"
	"fmt"
)

// ErrorClass represents a classification of failed page requests.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx responses.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx responses.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassNetwork represents transport failures and timeouts.
	ErrorClassNetwork ErrorClass = "network"

	// ErrorClassUnexpected represents any other non-2xx status.
	ErrorClassUnexpected ErrorClass = "unexpected"
)

// ErrRequestFailed is matched by every *FetchError through errors.Is.
var ErrRequestFailed = errors.New("page request failed")

// FetchError describes a page request that did not produce a usable
// response.
type FetchError struct {
	URL        string
	StatusCode int
	ErrorClass ErrorClass
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s error fetching %s (status %d): %s: %v",
			e.ErrorClass, e.URL, e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("%s error fetching %s (status %d): %s",
		e.ErrorClass, e.URL, e.StatusCode, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrRequestFailed) true for any FetchError.
func (e *FetchError) Is(target error) bool {
	return target == ErrRequestFailed
}

// classifyStatus maps a non-2xx status code to its error class.
func classifyStatus(statusCode int) ErrorClass {
	switch {
	case statusCode >= 500:
		return ErrorClassServer
	case statusCode >= 400:
		return ErrorClassClient
	default:
		return ErrorClassUnexpected
	}
}
