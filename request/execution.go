// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"errors"
	"time"

	"github.com/gogama/ajax/xhr"
)

// An Execution represents the state of a single Plan dispatch.
//
// When a plan is dispatched, an Execution is created for it. The
// Execution is updated as the dispatch progresses and is handed to the
// event handlers installed in the client.
//
// Event handlers may set values on an Execution using its SetValue
// method and read them back using the Value method. However, they
// should treat the structure's exported fields as read-only.
type Execution struct {
	// Plan specifies the plan being dispatched. It is never nil.
	Plan *Plan
	// ID uniquely identifies the dispatch. It is assigned before the
	// BeforeExecutionStart event fires.
	ID string
	// Start is the start time of the dispatch. It is assigned a non-zero
	// value when the dispatch starts, and this value remains constant
	// thereafter.
	Start time.Time
	// End is the end time of the dispatch. It contains the zero value
	// until the dispatch ends, when it is set to the current time.
	End time.Time
	// Timeout is the timeout armed for the dispatch. Zero means no
	// timeout was armed.
	Timeout time.Duration
	// Transport is the transport carrying the request. It is nil until
	// a transport has been obtained, and remains nil if none was
	// available.
	Transport xhr.Transport
	// Response is the response to the request. It is nil until the
	// transport reaches its final ready state, and it remains nil if
	// the request timed out or its JSON response could not be decoded.
	Response *Response
	// Err is the error the dispatch ended with, if any.
	Err error

	data context.Context
}

// StatusCode returns the status code of the response, or 0 if there is
// no response.
func (e *Execution) StatusCode() int {
	if e.Response == nil {
		return 0
	}
	return e.Response.StatusCode
}

// Duration returns the duration of the execution.
//
// If the execution has not yet started, the duration is zero. If the
// execution has ended, the duration returned is equal to End minus
// Start. Otherwise, it is equal to the current time minus Start.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return time.Duration(0)
	} else if !e.Ended() {
		return time.Since(e.Start)
	}
	return e.End.Sub(e.Start)
}

// Started indicates whether the execution has started.
func (e *Execution) Started() bool {
	return !e.Start.IsZero()
}

// Ended indicates whether the execution has ended.
func (e *Execution) Ended() bool {
	return !e.End.IsZero()
}

// TimedOut indicates whether Err is a timeout error, meaning that the
// error, or an error it wraps, has a Timeout method returning true.
func (e *Execution) TimedOut() bool {
	var t interface{ Timeout() bool }
	return errors.As(e.Err, &t) && t.Timeout()
}

// SetValue allows event handlers to store arbitrary data in the
// execution.
//
// The key must follow the same rules as the key parameter in
// context.WithValue, namely it must not be nil, must be comparable,
// and should not be of a built-in type.
func (e *Execution) SetValue(key, value interface{}) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}
	e.data = context.WithValue(ctx, key, value)
}

// Value returns the data value associated with this execution for key,
// or nil if there is no value associated with key.
func (e *Execution) Value(key interface{}) interface{} {
	ctx := e.data
	if ctx == nil {
		return nil
	}
	return ctx.Value(key)
}
