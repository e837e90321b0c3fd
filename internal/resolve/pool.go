package resolve

import (
	"context"
	"net"
	"sync"
)

// Run performs concurrent PTR lookups using a bounded worker pool. At most
// workers lookups are in flight at once; every submitted address yields
// exactly one Result, duplicates included. Results are sent to the
// returned channel as they complete; the channel is closed once all
// submitted lookups have finished.
func Run(ctx context.Context, targets []net.IP, workers int, resolver Resolver) <-chan Result {
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan net.IP, len(targets))
	results := make(chan Result, len(targets))

	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ip := range jobs {
				results <- lookup(ctx, ip, resolver)
			}
		}()
	}

	go func() {
		for _, ip := range targets {
			jobs <- ip
		}
		close(jobs)
	}()

	// Close results when all workers are done
	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// lookup performs a single PTR lookup and classifies the outcome.
func lookup(ctx context.Context, ip net.IP, resolver Resolver) Result {
	names, err := resolver.LookupAddr(ctx, ip)
	if err != nil {
		return Result{IP: ip, Err: err}
	}
	if len(names) == 0 {
		return Result{IP: ip}
	}
	// First record wins when multiple PTR names exist.
	return Result{IP: ip, Name: names[0]}
}
