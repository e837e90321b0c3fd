package netcfg

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantDNS     []string
		wantDomains []string
		wantRoutes  []string
		wantGateway string
	}{
		{
			name: "full config",
			input: `DNS
172.20.11.2
172.20.12.2

DOMAIN
example.com

ROUTES
172.20.11.0/24
172.20.12.0/24

GATEWAY
172.20.10.1
`,
			wantDNS:     []string{"172.20.11.2", "172.20.12.2"},
			wantDomains: []string{"example.com"},
			wantRoutes:  []string{"172.20.11.0/24", "172.20.12.0/24"},
			wantGateway: "172.20.10.1",
		},
		{
			name: "comments and blanks ignored",
			input: `# leading comment

DNS
# commented value
1.1.1.1
`,
			wantDNS: []string{"1.1.1.1"},
		},
		{
			name: "gateway keeps last value",
			input: `GATEWAY
10.0.0.1
10.0.0.2
`,
			wantGateway: "10.0.0.2",
		},
		{
			name:  "values before any section ignored",
			input: "1.1.1.1\nDNS\n8.8.8.8\n",
			wantDNS: []string{
				"8.8.8.8",
			},
		},
		{
			name:  "empty input",
			input: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := strings.Join(cfg.DNSServers, ","); got != strings.Join(tt.wantDNS, ",") {
				t.Errorf("DNSServers = %v, want %v", cfg.DNSServers, tt.wantDNS)
			}
			if got := strings.Join(cfg.SearchDomains, ","); got != strings.Join(tt.wantDomains, ",") {
				t.Errorf("SearchDomains = %v, want %v", cfg.SearchDomains, tt.wantDomains)
			}
			if got := strings.Join(cfg.Routes, ","); got != strings.Join(tt.wantRoutes, ",") {
				t.Errorf("Routes = %v, want %v", cfg.Routes, tt.wantRoutes)
			}
			if cfg.Gateway != tt.wantGateway {
				t.Errorf("Gateway = %q, want %q", cfg.Gateway, tt.wantGateway)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.ini")); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// All example values are commented out, so the file parses empty.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.DNSServers) != 0 || len(cfg.Routes) != 0 || cfg.Gateway != "" {
		t.Errorf("default config should parse empty, got %+v", cfg)
	}

	if err := WriteDefault(path); err == nil {
		t.Error("expected error when file exists, got nil")
	}
}
