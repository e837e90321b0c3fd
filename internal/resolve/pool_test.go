package resolve

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"
)

// fakeResolver implements Resolver for testing.
type fakeResolver struct {
	names map[string][]string
	errs  map[string]error
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{
		names: make(map[string][]string),
		errs:  make(map[string]error),
	}
}

func (f *fakeResolver) addName(ip string, names ...string) {
	f.names[ip] = names
}

func (f *fakeResolver) addError(ip string, err error) {
	f.errs[ip] = err
}

func (f *fakeResolver) LookupAddr(ctx context.Context, ip net.IP) ([]string, error) {
	if err, ok := f.errs[ip.String()]; ok {
		return nil, err
	}
	return f.names[ip.String()], nil
}

func TestRun(t *testing.T) {
	resolver := newFakeResolver()
	resolver.addName("192.168.1.1", "host1.example.com")
	resolver.addName("192.168.1.2", "host2.example.com")
	resolver.addError("192.168.1.3", context.DeadlineExceeded)
	resolver.addError("192.168.1.4", errors.New("connection refused"))

	targets := []net.IP{
		net.ParseIP("192.168.1.1"),
		net.ParseIP("192.168.1.2"),
		net.ParseIP("192.168.1.3"),
		net.ParseIP("192.168.1.4"),
		net.ParseIP("192.168.1.5"),
	}

	results := make(map[string]Result)
	for r := range Run(context.Background(), targets, 2, resolver) {
		results[r.IP.String()] = r
	}

	if len(results) != 5 {
		t.Fatalf("got %d results, want 5", len(results))
	}

	if got := results["192.168.1.1"].Outcome(); got != "host1.example.com" {
		t.Errorf("192.168.1.1 outcome = %q, want host1.example.com", got)
	}
	if got := results["192.168.1.3"].Outcome(); got != "Timeout" {
		t.Errorf("192.168.1.3 outcome = %q, want Timeout", got)
	}
	if got := results["192.168.1.4"].Outcome(); got != "Error: connection refused" {
		t.Errorf("192.168.1.4 outcome = %q, want Error: connection refused", got)
	}
	if got := results["192.168.1.5"].Outcome(); got != NoRecordText {
		t.Errorf("192.168.1.5 outcome = %q, want %q", got, NoRecordText)
	}
}

func TestRunFirstNameWins(t *testing.T) {
	resolver := newFakeResolver()
	resolver.addName("192.168.1.1", "first.example.com", "second.example.com")

	ip := net.ParseIP("192.168.1.1")
	result := lookup(context.Background(), ip, resolver)

	if result.Name != "first.example.com" {
		t.Errorf("Name = %q, want first.example.com", result.Name)
	}
}

func TestRunEveryTargetOnce(t *testing.T) {
	// More targets than workers; every submitted address yields a result.
	resolver := newFakeResolver()

	targets := make([]net.IP, 100)
	for i := 0; i < 100; i++ {
		targets[i] = net.IPv4(192, 168, 1, byte(i))
	}

	count := 0
	for range Run(context.Background(), targets, 10, resolver) {
		count++
	}

	if count != 100 {
		t.Errorf("got %d results, want 100", count)
	}
}

func TestRunDuplicatesResolvedIndependently(t *testing.T) {
	resolver := newFakeResolver()
	resolver.addName("10.0.0.1", "dup.example.com")

	ip := net.ParseIP("10.0.0.1")
	targets := []net.IP{ip, ip, ip}

	count := 0
	for r := range Run(context.Background(), targets, 2, resolver) {
		if r.Name != "dup.example.com" {
			t.Errorf("duplicate outcome = %q, want dup.example.com", r.Name)
		}
		count++
	}

	if count != 3 {
		t.Errorf("got %d results, want 3 (one per occurrence)", count)
	}
}

// gaugeResolver tracks how many lookups are in flight at once.
type gaugeResolver struct {
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (g *gaugeResolver) LookupAddr(ctx context.Context, ip net.IP) ([]string, error) {
	n := g.inFlight.Add(1)
	for {
		p := g.peak.Load()
		if n <= p || g.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(2 * time.Millisecond)
	g.inFlight.Add(-1)
	return nil, nil
}

func TestRunBoundsConcurrency(t *testing.T) {
	const workers = 4

	resolver := &gaugeResolver{}
	targets := make([]net.IP, 64)
	for i := range targets {
		targets[i] = net.IPv4(10, 0, 0, byte(i))
	}

	count := 0
	for range Run(context.Background(), targets, workers, resolver) {
		count++
	}

	if count != len(targets) {
		t.Errorf("got %d results, want %d", count, len(targets))
	}
	if peak := resolver.peak.Load(); peak > workers {
		t.Errorf("peak in-flight lookups = %d, want at most %d", peak, workers)
	}
}
