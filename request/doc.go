// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the core types Plan (describes a request to
dispatch), Execution (describes the state of a Plan being dispatched)
and Response (describes the outcome of a completed dispatch).

The first core type is Plan. A Plan holds everything the dispatcher
sends: the method, the final URL (including any query string built from
request data), the request headers, and the pre-encoded request body.
Create a plan from a method, URL, request data and headers:

	p, err := request.NewPlan("POST", "https://example.com/items",
		request.Fields{}.Add("name", "widget").Add("count", 3), nil)
	...

NewPlan form-encodes request data, or JSON-encodes it when the caller's
Content-type header asks for JSON. For GET plans the encoded data is
appended to the URL as a query string and no body is sent.

The second core type is Execution, which represents the state of a
plan while it is dispatched. Execution is the input type for event
handlers installed in an ajax.Client. You will typically not allocate
Execution instances yourself.

The third core type is Response, which holds the status, response text
and (for JSON responses) the decoded body of a completed request.
*/
package request
