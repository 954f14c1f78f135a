// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ajax

import (
	"errors"
	"fmt"

	"github.com/gogama/ajax/request"
)

// Numeric error codes, for callers that need the codes used by the
// JavaScript tinyajax library. See Error.Code.
const (
	CodeNoXHR      = 1
	CodeTimeout    = 2
	CodeJSONDecode = 3
)

// A Kind identifies which of the possible failures ended a request.
type Kind int

const (
	// TransportUnavailable means no usable transport could be obtained,
	// so no request was sent.
	TransportUnavailable Kind = iota + 1
	// Timeout means no response arrived before the armed timeout
	// expired, and the request was aborted.
	Timeout
	// DecodeFailure means the response declared itself to be JSON but
	// could not be decoded. No response is delivered with this kind of
	// error.
	DecodeFailure
	// HTTPStatus means a response was received but its status is not a
	// success status. The response is delivered along with this kind of
	// error.
	HTTPStatus
)

var kindNames = []string{
	"",
	"TransportUnavailable",
	"Timeout",
	"DecodeFailure",
	"HTTPStatus",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if k < TransportUnavailable || k > HTTPStatus {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// An Error describes why a request failed. Exactly one Error, or none,
// results from each request.
type Error struct {
	// Kind identifies the failure.
	Kind Kind
	// Status is the HTTP status code. It is only set when Kind is
	// HTTPStatus, and may be zero if the request failed at the network
	// level.
	Status int
	// Method and URL identify the request.
	Method string
	URL    string
	// Err is the underlying cause, if any.
	Err error
}

func newError(p *request.Plan, k Kind, err error) *Error {
	return &Error{
		Kind:   k,
		Method: p.Method,
		URL:    p.URL,
		Err:    err,
	}
}

// Error returns a human-readable description of the failure.
func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case TransportUnavailable:
		msg = "no transport available"
	case Timeout:
		msg = "request timed out"
	case DecodeFailure:
		msg = "could not decode JSON response"
	case HTTPStatus:
		msg = fmt.Sprintf("HTTP status error %d", e.Status)
	default:
		msg = e.Kind.String()
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return fmt.Sprintf("ajax: %s %s: %s", e.Method, e.URL, msg)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Code returns CodeNoXHR, CodeTimeout or CodeJSONDecode for the
// corresponding kinds, and zero for HTTPStatus errors.
func (e *Error) Code() int {
	switch e.Kind {
	case TransportUnavailable:
		return CodeNoXHR
	case Timeout:
		return CodeTimeout
	case DecodeFailure:
		return CodeJSONDecode
	default:
		return 0
	}
}

// Timeout reports whether the request timed out.
func (e *Error) Timeout() bool {
	return e.Kind == Timeout
}

// KindOf returns the Kind of the first *Error in err's chain, or zero if
// there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
