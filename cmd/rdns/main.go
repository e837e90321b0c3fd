package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"nettools/internal/execx"
	"nettools/internal/iprange"
	"nettools/internal/output"
	"nettools/internal/resolve"
)

var (
	version = "dev"

	subnet     string
	cidr       string
	targetFile string
	dnsServer  string
	outputPath string
	threads    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rdns",
		Short: "Perform bulk reverse DNS lookups against a chosen DNS server",
		Long: `rdns expands an IP range and performs concurrent PTR lookups against
the given DNS server. Each lookup is delegated to nslookup with a fixed
5 second timeout.

Targets come from any combination of a sequential /24 (--subnet), a CIDR
block (--cidr) and a target file (--file). Target files contain one entry
per line, either a single IPv4 address or a CIDR block; invalid lines are
reported and skipped.

Results stream to stdout as address<TAB>outcome lines while lookups run,
and the complete set can additionally be saved with --output.

Examples:
  rdns -s 10.10.10 -d 8.8.8.8               # all hosts of 10.10.10.0/24
  rdns -r 192.0.2.0/28 -d 10.0.0.2          # expand a CIDR block
  rdns -f targets.txt -d 8.8.8.8 -t 50      # file input, 50 workers
  rdns -s 10.10.10 -d 8.8.8.8 -o out.tsv    # save results to a file`,
		Args: cobra.NoArgs,
		RunE: run,
	}

	rootCmd.Version = version

	rootCmd.Flags().StringVarP(&subnet, "subnet", "s", "", "3-octet subnet prefix (e.g. 10.10.10) expanded as a /24")
	rootCmd.Flags().StringVarP(&cidr, "cidr", "r", "", "CIDR block to expand (e.g. 192.0.2.0/28)")
	rootCmd.Flags().StringVarP(&targetFile, "file", "f", "", "file of addresses and/or CIDR blocks, one per line")
	rootCmd.Flags().StringVarP(&dnsServer, "dns", "d", "", "DNS server to query (required)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "file to save tab-separated results to")
	rootCmd.Flags().IntVarP(&threads, "threads", "t", 10, "number of concurrent lookups")
	cobra.CheckErr(rootCmd.MarkFlagRequired("dns"))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	// No target source is a no-op, not a failure.
	if subnet == "" && cidr == "" && targetFile == "" {
		log.Warn("nothing to do: provide --subnet, --cidr or --file")
		return cmd.Usage()
	}

	if threads < 1 {
		return fmt.Errorf("threads must be at least 1")
	}

	sources := iprange.Sources{Subnet: subnet, CIDR: cidr, File: targetFile}
	targets, err := sources.Enumerate()
	if err != nil {
		return err
	}
	if len(targets) == 0 {
		return fmt.Errorf("no addresses to resolve")
	}

	log.Info("starting reverse DNS lookups", "targets", len(targets), "server", dnsServer, "workers", threads)

	ctx := context.Background()
	resolver := resolve.NewNslookup(dnsServer, execx.New())
	resultChan := resolve.Run(ctx, targets, threads, resolver)

	total := len(targets)
	results := make([]resolve.Result, 0, total)

	// Progress goes to stderr, and only when the result stream itself is
	// redirected away from the terminal.
	showProgress := term.IsTerminal(int(os.Stderr.Fd())) && !term.IsTerminal(int(os.Stdout.Fd()))

	if showProgress {
		start := time.Now()
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()

		for result := range resultChan {
			fmt.Println(output.Line(result))
			results = append(results, result)
			select {
			case <-ticker.C:
				if time.Since(start) >= 2*time.Second {
					fmt.Fprintf(os.Stderr, "\rLooking up addresses... %d/%d (%d%%)", len(results), total, 100*len(results)/total)
				}
			default:
			}
		}
		// Clear the progress line
		fmt.Fprintf(os.Stderr, "\r%-60s\r", "")
	} else {
		for result := range resultChan {
			fmt.Println(output.Line(result))
			results = append(results, result)
		}
	}

	if outputPath != "" {
		if err := output.WriteFile(outputPath, results); err != nil {
			return err
		}
		log.Info("results saved", "path", outputPath, "results", len(results))
	}

	return nil
}
