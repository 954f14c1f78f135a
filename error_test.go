// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ajax

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gogama/ajax/request"
	"github.com/gogama/ajax/xhr"
	"github.com/stretchr/testify/assert"
)

func TestKind_String(t *testing.T) {
	assert.Equal(t, "TransportUnavailable", TransportUnavailable.String())
	assert.Equal(t, "Timeout", Timeout.String())
	assert.Equal(t, "DecodeFailure", DecodeFailure.String())
	assert.Equal(t, "HTTPStatus", HTTPStatus.String())
	assert.Equal(t, "Kind(0)", Kind(0).String())
	assert.Equal(t, "Kind(99)", Kind(99).String())
}

func TestError(t *testing.T) {
	p := &request.Plan{Method: "GET", URL: "/widgets"}
	cause := errors.New("bad thing")

	testCases := []struct {
		name    string
		err     *Error
		msg     string
		code    int
		timeout bool
	}{
		{
			name: "TransportUnavailable",
			err:  newError(p, TransportUnavailable, xhr.ErrUnavailable),
			msg:  "ajax: GET /widgets: no transport available: xhr: no transport available",
			code: CodeNoXHR,
		},
		{
			name:    "Timeout",
			err:     newError(p, Timeout, nil),
			msg:     "ajax: GET /widgets: request timed out",
			code:    CodeTimeout,
			timeout: true,
		},
		{
			name: "DecodeFailure",
			err:  newError(p, DecodeFailure, cause),
			msg:  "ajax: GET /widgets: could not decode JSON response: bad thing",
			code: CodeJSONDecode,
		},
		{
			name: "HTTPStatus",
			err:  &Error{Kind: HTTPStatus, Status: 503, Method: "GET", URL: "/widgets"},
			msg:  "ajax: GET /widgets: HTTP status error 503",
			code: 0,
		},
		{
			name: "unknown kind",
			err:  &Error{Kind: Kind(7), Method: "PUT", URL: "/x"},
			msg:  "ajax: PUT /x: Kind(7)",
			code: 0,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.EqualError(t, testCase.err, testCase.msg)
			assert.Equal(t, testCase.code, testCase.err.Code())
			assert.Equal(t, testCase.timeout, testCase.err.Timeout())
			assert.Equal(t, testCase.err.Kind, KindOf(testCase.err))
			assert.Equal(t, testCase.err.Kind, KindOf(fmt.Errorf("wrapped: %w", testCase.err)))
		})
	}

	t.Run("Unwrap", func(t *testing.T) {
		err := newError(p, DecodeFailure, cause)
		assert.Same(t, cause, err.Unwrap())
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("KindOf non-ajax error", func(t *testing.T) {
		assert.Equal(t, Kind(0), KindOf(nil))
		assert.Equal(t, Kind(0), KindOf(cause))
	})

	t.Run("codes", func(t *testing.T) {
		assert.Equal(t, 1, CodeNoXHR)
		assert.Equal(t, 2, CodeTimeout)
		assert.Equal(t, 3, CodeJSONDecode)
	})
}
