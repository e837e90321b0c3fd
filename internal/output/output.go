// Package output renders lookup results for the console stream and the
// optional tab-separated results file.
package output

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"nettools/internal/resolve"
)

// FileHeader is the first line of a results file.
const FileHeader = "IP Address\tReverse DNS Name"

// Line renders one result as a tab-separated row.
func Line(r resolve.Result) string {
	return r.IP.String() + "\t" + r.Outcome()
}

// Write writes the header line followed by one row per result, in the
// order given (completion order for pipeline output).
func Write(w io.Writer, results []resolve.Result) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, FileHeader)
	for _, r := range results {
		fmt.Fprintln(bw, Line(r))
	}
	return bw.Flush()
}

// WriteFile writes the full result set to path.
func WriteFile(path string, results []resolve.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create results file: %w", err)
	}
	if err := Write(f, results); err != nil {
		f.Close()
		return fmt.Errorf("write results file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write results file: %w", err)
	}
	return nil
}
