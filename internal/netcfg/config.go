// Package netcfg applies DNS, search-domain and static-route configuration
// to a macOS network service via networksetup and route.
package netcfg

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Default locations for the configuration and backup files.
const (
	DefaultFile = "config.ini"
	BackupFile  = "config_backup.ini"
)

// Config holds a parsed interface configuration.
type Config struct {
	DNSServers    []string
	SearchDomains []string
	Routes        []string
	Gateway       string
}

// Parse reads the section-delimited config format: a line naming one of
// DNS, DOMAIN, ROUTES or GATEWAY opens that section and every following
// value line belongs to it. Blank lines and # comments are ignored, as are
// value lines that appear before any section header. GATEWAY keeps the
// last value seen.
func Parse(r io.Reader) (*Config, error) {
	cfg := &Config{}
	section := ""

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch line {
		case "DNS", "DOMAIN", "ROUTES", "GATEWAY":
			section = line
			continue
		}

		switch section {
		case "DNS":
			cfg.DNSServers = append(cfg.DNSServers, line)
		case "DOMAIN":
			cfg.SearchDomains = append(cfg.SearchDomains, line)
		case "ROUTES":
			cfg.Routes = append(cfg.Routes, line)
		case "GATEWAY":
			cfg.Gateway = line
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return cfg, nil
}

// Load parses the configuration file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open configuration file: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

const defaultConfig = `# Default configuration file with example values
# Replace the example values with your own configuration

DNS
# 172.20.11.2
# 172.20.12.2

DOMAIN
# example.com
# test.com

ROUTES
# 172.20.11.0/24
# 172.20.12.0/24

GATEWAY
# 172.20.10.1
`

// WriteDefault creates a commented default configuration file. It refuses
// to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("configuration file %s already exists", path)
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("write default configuration: %w", err)
	}
	return nil
}
