// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"encoding/json"
	"strings"

	"github.com/gogama/ajax/xhr"
	"github.com/tidwall/gjson"
)

// A Response is the outcome of a request whose transport reached its
// final ready state.
type Response struct {
	// Plan is the plan that produced the response.
	Plan *Plan
	// Transport is the transport that carried the request. It can be
	// used to read response headers.
	Transport xhr.Transport
	// StatusCode is the HTTP status code, or zero if the request failed
	// at the network level.
	StatusCode int
	// Text is the raw response body.
	Text string
	// Body is the decoded JSON value if the response was JSON, and
	// otherwise the same string as Text.
	//
	// Decoded JSON values have the types produced by encoding/json when
	// unmarshalling into an interface{}: map[string]interface{},
	// []interface{}, string, float64, bool, or nil.
	Body interface{}
}

// Header returns the named response header.
func (r *Response) Header(name string) string {
	if r.Transport == nil {
		return ""
	}
	return r.Transport.GetResponseHeader(name)
}

// Get searches the response text for the given gjson path, for example
// "items.0.name". A missing path yields a Result whose Exists method
// returns false.
func (r *Response) Get(path string) gjson.Result {
	return gjson.Get(r.Text, path)
}

// Decode unmarshals the response text as JSON into v.
func (r *Response) Decode(v interface{}) error {
	return json.Unmarshal([]byte(r.Text), v)
}

// StatusOK reports whether status indicates success: a non-zero status
// in the 2XX range, 304 (Not Modified), or 1223, which some old
// browsers report in place of 204.
func StatusOK(status int) bool {
	return status != 0 &&
		(status >= 200 && status < 300 || status == 304 || status == 1223)
}

// IsJSON reports whether a response content type declares JSON. The
// test is a case-sensitive substring match on "json".
func IsJSON(contentType string) bool {
	return strings.Contains(contentType, "json")
}

// ReadResponse reads the response from a transport which has reached
// its final ready state.
//
// If the response Content-type header declares JSON, the text is
// decoded and the result stored in Body. If decoding fails, the
// response is discarded and a nil Response is returned along with
// the decoding error.
func ReadResponse(p *Plan, t xhr.Transport) (*Response, error) {
	r := &Response{
		Plan:       p,
		Transport:  t,
		StatusCode: t.Status(),
		Text:       t.ResponseText(),
	}
	r.Body = r.Text

	if IsJSON(t.GetResponseHeader(ContentType)) {
		var v interface{}
		if err := json.Unmarshal([]byte(r.Text), &v); err != nil {
			return nil, err
		}
		r.Body = v
	}

	return r, nil
}
