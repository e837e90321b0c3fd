package resolve

import (
	"context"
	"errors"
	"net"
)

// NoRecordText is the outcome printed for addresses without a PTR record.
const NoRecordText = "No PTR Record Found"

// Result pairs a queried address with the outcome of its PTR lookup.
// Exactly one Result is produced per submitted address.
type Result struct {
	IP   net.IP
	Name string // resolved PTR name, empty when none was found
	Err  error  // non-nil for timeouts and resolver failures
}

// Outcome renders the lookup outcome as it appears in console and file
// output: the resolved name, "No PTR Record Found", "Timeout", or
// "Error: <description>".
func (r Result) Outcome() string {
	switch {
	case r.Name != "":
		return r.Name
	case r.Err == nil:
		return NoRecordText
	case errors.Is(r.Err, context.DeadlineExceeded):
		return "Timeout"
	default:
		return "Error: " + r.Err.Error()
	}
}
