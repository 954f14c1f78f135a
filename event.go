// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ajax

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Client to extend it with custom
// functionality.
type Event int

const (
	// BeforeExecutionStart identifies the event that occurs before the
	// dispatch starts.
	//
	// When Client fires BeforeExecutionStart, the execution is non-nil
	// but the only fields that have been set are the plan and the ID.
	BeforeExecutionStart Event = iota
	// BeforeSend identifies the event that occurs after the transport
	// has been opened and given its request headers, but before the
	// request is sent.
	//
	// BeforeSend does not fire if no transport was available, or if
	// the transport refused to open.
	BeforeSend
	// AfterTimeout identifies the event that occurs after the timeout
	// expired and the transport was aborted.
	//
	// When Client fires AfterTimeout, the execution's error field is
	// set to an *Error of kind Timeout and its response field is nil.
	AfterTimeout
	// AfterResponse identifies the event that occurs after the
	// transport reached its final ready state and the response was
	// interpreted.
	//
	// When Client fires AfterResponse, the execution's response field
	// is set, unless the response could not be decoded, and the error
	// field is set if the status was not a success status or decoding
	// failed.
	//
	// Exactly one of AfterTimeout and AfterResponse fires for every
	// request that is sent.
	AfterResponse
	// AfterExecutionEnd identifies the event that occurs after the
	// dispatch ends, whatever its outcome.
	//
	// When Client fires AfterExecutionEnd, the execution's end time is
	// set and no further changes will be made to it.
	AfterExecutionEnd
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events types as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeExecutionStart",
	"BeforeSend",
	"AfterTimeout",
	"AfterResponse",
	"AfterExecutionEnd",
}

// Events returns a slice containing all events which can occur in a
// dispatch by Client, in the order in which they would occur.
func Events() []Event {
	return []Event{
		BeforeExecutionStart,
		BeforeSend,
		AfterTimeout,
		AfterResponse,
		AfterExecutionEnd,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
