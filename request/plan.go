// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/net/http/httpguts"
)

const (
	// ContentType is the request header key NewPlan consults and sets.
	// The match is exact: a caller wishing to override the default
	// content type must use this key, with this capitalization.
	ContentType = "Content-type"
	// FormEncoded is the default request content type.
	FormEncoded = "application/x-www-form-urlencoded"
)

// A Plan describes a single request for dispatch by a client.
//
// Plans are constructed fresh for each request by NewPlan. A client
// never modifies a plan, but a plan should not be shared between two
// in-flight requests.
type Plan struct {
	// Method specifies the HTTP method (GET, POST, PUT, DELETE, etc.).
	Method string
	// URL is the URL to open, including any query string NewPlan
	// appended from the request data.
	URL string
	// Header contains the request headers to be sent, keyed by the
	// exact header name given by the caller. It always contains a
	// ContentType entry.
	Header map[string]string
	// Body is the pre-encoded request body. It is nil if there is no
	// body to send, which is always the case for GET plans.
	Body []byte
	// Timeout, if positive, overrides the client's timeout policy for
	// this plan.
	Timeout time.Duration
}

// NewPlan returns a new Plan given a method, URL, optional request data
// and optional request headers.
//
// An empty method means GET. The data parameter may be nil, a
// pre-encoded string or []byte (sent as-is), or structured data of any
// type accepted by Encode. Structured data is form-encoded unless the
// method is not GET and the caller's Content-type header contains
// "json", in which case it is serialized as a JSON object.
//
// For GET plans, a non-empty payload is appended to the URL after a
// "?", or after a "&" if the URL already has a query string. The
// existing query string is left as it is.
//
// The header map is copied, never modified. If it has no non-empty
// Content-type entry, the copy gets one with the value FormEncoded.
func NewPlan(method, url string, data interface{}, header map[string]string) (*Plan, error) {
	if method == "" {
		method = "GET"
	}
	if !validMethod(method) {
		return nil, fmt.Errorf("ajax/request: invalid method %q", method)
	}

	h := make(map[string]string, len(header)+1)
	for k, v := range header {
		h[k] = v
	}

	var payload []byte
	if method != "GET" && strings.Contains(h[ContentType], "json") && structured(data) {
		b, err := EncodeJSON(data)
		if err != nil {
			return nil, err
		}
		payload = b
	} else {
		s, err := Encode(data)
		if err != nil {
			return nil, err
		}
		if s != "" {
			payload = []byte(s)
		}
	}

	if method == "GET" {
		if len(payload) > 0 {
			sep := "?"
			if strings.Contains(url, "?") {
				sep = "&"
			}
			url += sep + string(payload)
		}
		payload = nil
	}

	if h[ContentType] == "" {
		h[ContentType] = FormEncoded
	}

	return &Plan{
		Method: method,
		URL:    url,
		Header: h,
		Body:   payload,
	}, nil
}

// HeaderNames returns the plan's header names in sorted order.
func (p *Plan) HeaderNames() []string {
	names := make([]string, 0, len(p.Header))
	for k := range p.Header {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// WithTimeout returns a shallow copy of p with its timeout changed
// to d.
func (p *Plan) WithTimeout(d time.Duration) *Plan {
	p2 := new(Plan)
	*p2 = *p
	p2.Timeout = d
	return p2
}

func validMethod(method string) bool {
	return strings.IndexFunc(method, isNotToken) == -1
}

func isNotToken(r rune) bool {
	return !httpguts.IsTokenRune(r)
}
