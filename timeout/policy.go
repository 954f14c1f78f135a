// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"time"

	"github.com/gogama/ajax/request"
)

// A Policy defines a timeout policy which may be plugged into the
// request dispatcher (ajax.Client) to direct how long to wait for a
// request to complete before aborting it.
//
// Implementations of Policy must be safe for concurrent use by multiple
// goroutines.
type Policy interface {
	// Timeout returns the timeout to arm for the given plan. A return
	// value of zero (or less) means no timeout is armed and the
	// dispatch waits for the transport indefinitely.
	Timeout(p *request.Plan) time.Duration
}

// Disabled is a built-in timeout policy which never arms a timeout.
var Disabled Policy = Fixed(0)

// DefaultPolicy is the default timeout policy. No timeout is armed.
var DefaultPolicy = Disabled

// Fixed constructs a timeout policy that arms the same timeout for every
// plan. Fixed(0) is equivalent to Disabled.
func Fixed(d time.Duration) Policy {
	return fixed(d)
}

type fixed time.Duration

func (f fixed) Timeout(_ *request.Plan) time.Duration {
	return time.Duration(f)
}

// PolicyFunc is an adapter to allow the use of ordinary functions as
// timeout policies.
type PolicyFunc func(p *request.Plan) time.Duration

// Timeout calls f(p).
func (f PolicyFunc) Timeout(p *request.Plan) time.Duration {
	return f(p)
}

// ByMethod constructs a timeout policy that looks up the plan's method
// in m, falling back to the usual timeout for methods not in m.
func ByMethod(usual time.Duration, m map[string]time.Duration) Policy {
	c := make(map[string]time.Duration, len(m))
	for k, v := range m {
		c[k] = v
	}
	return PolicyFunc(func(p *request.Plan) time.Duration {
		if d, ok := c[p.Method]; ok {
			return d
		}
		return usual
	})
}
