// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package timeout defines policies for choosing the timeout armed on a
// request dispatch. A generic interface for timeout policies is
// provided, Policy, along with built-in policies and a policy
// generating function.
package timeout
