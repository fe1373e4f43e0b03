// Package errors provides the curated set of failures the RPC layer hands
// back. Rather than speculating about all 40-ish HTTP failure statuses, this
// package only exposes the handful this codebase actually produces, each one
// carrying the HTTP status that best describes it. Should you need something
// beyond this, New() accepts any status you feel like generating.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// RPCError is an error that encodes a human-readable message as well as a
// status that corresponds to the closest HTTP status code. For instance if the
// failure was due to an inability to find a resource/record/etc, status would
// be 404.
//
// This type of error can be recognized by 'github.com/monadicstack/respond' in
// order to automatically send proper failures and statuses without extra lifting.
type RPCError struct {
	// HTTPStatus is the HTTP status code that most closely describes this error.
	HTTPStatus int `json:"status"`
	// Message is the human-readable error message.
	Message string `json:"message"`
}

// Error returns the underlying error message that describes this failure.
func (err RPCError) Error() string {
	return err.Message
}

// Status returns the most relevant HTTP status code to return for this error.
func (err RPCError) Status() int {
	return err.HTTPStatus
}

type errorWithStatus interface {
	Status() int
}

type errorWithStatusCode interface {
	StatusCode() int
}

// New creates an error that maps directly to an HTTP status so if your RPC
// call results in this error, it will result in the same 'status' in your
// HTTP response.
func New(status int, messageFormat string, args ...interface{}) RPCError {
	return RPCError{
		HTTPStatus: status,
		Message:    fmt.Sprintf(messageFormat, args...),
	}
}

// Status looks for either a Status() or StatusCode() method on the error to
// figure out the most appropriate HTTP status code for it. If the error has
// neither then we'll just assume that it is a 500 error.
func Status(err error) int {
	var errStatus errorWithStatus
	if errors.As(err, &errStatus) {
		return errStatus.Status()
	}

	var errStatusCode errorWithStatusCode
	if errors.As(err, &errStatusCode) {
		return errStatusCode.StatusCode()
	}

	return http.StatusInternalServerError
}

// Unexpected is a generic 500-style catch-all error for failures you don't
// know what to do with.
func Unexpected(messageFormat string, args ...interface{}) RPCError {
	return New(http.StatusInternalServerError, messageFormat, args...)
}

// IsUnexpected returns true if the underlying HTTP status code of 'err' is 500.
func IsUnexpected(err error) bool {
	return Status(err) == http.StatusInternalServerError
}

// BadRequest is a 400-style error that indicates that some aspect of the
// request was either ill-formed or failed validation.
func BadRequest(messageFormat string, args ...interface{}) RPCError {
	return New(http.StatusBadRequest, messageFormat, args...)
}

// IsBadRequest returns true if the underlying HTTP status code of 'err' is 400.
func IsBadRequest(err error) bool {
	return Status(err) == http.StatusBadRequest
}

// NotFound is a 404-style error that indicates that some record/resource
// could not be located.
func NotFound(messageFormat string, args ...interface{}) RPCError {
	return New(http.StatusNotFound, messageFormat, args...)
}

// IsNotFound returns true if the underlying HTTP status code of 'err' is 404.
func IsNotFound(err error) bool {
	return Status(err) == http.StatusNotFound
}

// Timeout is a 408-style error that indicates that some operation exceeded
// its allotted time/deadline.
func Timeout(messageFormat string, args ...interface{}) RPCError {
	return New(http.StatusRequestTimeout, messageFormat, args...)
}

// IsTimeout returns true if the underlying HTTP status code of 'err' is 408.
func IsTimeout(err error) bool {
	return Status(err) == http.StatusRequestTimeout
}

// Unavailable is a 503-style error that indicates that some aspect of the
// server/service is unavailable. This is what you get when a service never
// becomes ready during an availability wait.
func Unavailable(messageFormat string, args ...interface{}) RPCError {
	return New(http.StatusServiceUnavailable, messageFormat, args...)
}

// IsUnavailable returns true if the underlying HTTP status code of 'err' is 503.
func IsUnavailable(err error) bool {
	return Status(err) == http.StatusServiceUnavailable
}
