// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package xhr defines the host transport used by the ajax request
dispatcher. A Transport is modeled on the browser XMLHttpRequest object:
it is opened, given request headers, sent, and then reports its progress
through ready-state change notifications until it reaches the final
state, Done, at which point the status, response text and response
headers may be read.

Transports are obtained from a Factory. The default factory,
DefaultFactory, produces transports backed by the Go standard HTTP
client:

	f := &xhr.HTTPFactory{
		Doer:     &http.Client{},
		Compress: true,
	}
	t, err := f.NewTransport()
	...

A Factory may refuse to produce a transport, for example when the host
environment has none. The Unavailable factory always refuses, and is
mainly useful in tests.
*/
package xhr
