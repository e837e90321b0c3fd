package resolve

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os/exec"
	"strings"
	"time"

	"nettools/internal/execx"
)

// DefaultTimeout bounds a single PTR query.
const DefaultTimeout = 5 * time.Second

// Resolver abstracts PTR lookups for testing.
type Resolver interface {
	// LookupAddr returns the PTR names for ip, or an empty slice when the
	// query succeeded but no record exists.
	LookupAddr(ctx context.Context, ip net.IP) ([]string, error)
}

// NslookupResolver resolves PTR records by invoking the external nslookup
// command against a fixed DNS server.
type NslookupResolver struct {
	Server  string
	Timeout time.Duration // per-lookup bound, DefaultTimeout when zero
	Cmd     execx.Commander
}

func NewNslookup(server string, cmd execx.Commander) *NslookupResolver {
	return &NslookupResolver{Server: server, Timeout: DefaultTimeout, Cmd: cmd}
}

func (r *NslookupResolver) LookupAddr(ctx context.Context, ip net.IP) ([]string, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := r.Cmd.Output(ctx, "nslookup", ip.String(), r.Server)
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, context.DeadlineExceeded
	}
	if err != nil {
		// nslookup exits non-zero when no record exists; only a failed
		// invocation (command missing, process killed) is a real error.
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("nslookup: %w", err)
		}
	}

	return parsePTRNames(out), nil
}

// parsePTRNames extracts hostnames from the "name = host." lines of an
// nslookup reply. Trailing root dots are stripped.
func parsePTRNames(reply []byte) []string {
	var names []string
	for _, line := range strings.Split(string(reply), "\n") {
		_, after, ok := strings.Cut(line, "name =")
		if !ok {
			continue
		}
		name := strings.TrimSuffix(strings.TrimSpace(after), ".")
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}
