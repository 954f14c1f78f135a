// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package ajax provides a tiny request dispatcher in the style of the
browser XMLHttpRequest helpers: form-encoded request data, automatic
JSON response decoding, an optional timeout, and a small, closed set of
error kinds.

Create a Client to begin making requests.

	client := &ajax.Client{}
	resp, err := client.Get("https://www.example.com/search", &ajax.Options{
		Data: request.Fields{}.Add("q", "gophers").Add("page", 2),
	})
	...
	resp, err := client.Post("https://www.example.com/items", &ajax.Options{
		Data:   request.Fields{}.Add("name", "widget"),
		Header: map[string]string{"Content-type": "application/json"},
	})

Every failure is reported as an *Error whose Kind is one of
TransportUnavailable, Timeout, DecodeFailure or HTTPStatus. An HTTPStatus
error is returned together with the response so the body of an error
response may be inspected:

	resp, err := client.Get(url, nil)
	if ajax.KindOf(err) == ajax.HTTPStatus {
		log.Printf("status %d: %v", resp.StatusCode, resp.Body)
	}

To bound how long to wait for a server to respond, set a timeout policy
from package timeout, or a per-request timeout in Options. The timer is
cleared as soon as the transport reports progress, such as the arrival of
response headers:

	client := &ajax.Client{
		TimeoutPolicy: timeout.Fixed(10*time.Second),
	}

For control over how requests are carried, provide a transport factory
from package xhr. For example, to use a custom standard HTTP client:

	client := &ajax.Client{
		Transport: &xhr.HTTPFactory{Doer: &http.Client{}},
	}

Requests may also be dispatched asynchronously, either with a callback:

	client.Dispatch("PUT", url, &ajax.Options{
		OnComplete: func(resp *request.Response, err error) { ... },
	})

or with a channel that delivers exactly one Result:

	p, _ := request.NewPlan("DELETE", url, nil, nil)
	r := <-client.Go(p)

To hook into the details of the dispatch, install a handler into the
appropriate handler chain. Packages plugin/logging and plugin/metrics
provide ready-made handlers.
*/
package ajax
