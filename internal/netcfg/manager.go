package netcfg

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"nettools/internal/execx"
)

// Manager applies configuration to one network service. Mutating commands
// run under sudo; a failing command aborts the operation with the
// command's output attached to the error.
type Manager struct {
	Service string
	Cmd     execx.Commander
}

func NewManager(service string, cmd execx.Commander) *Manager {
	return &Manager{Service: service, Cmd: cmd}
}

// ListServices returns the available network services. The first output
// line of networksetup is a banner, not a service.
func ListServices(ctx context.Context, cmd execx.Commander) ([]string, error) {
	out, err := cmd.CombinedOutput(ctx, "networksetup", "-listallnetworkservices")
	if err != nil {
		return nil, fmt.Errorf("networksetup -listallnetworkservices: %w: %s", err, strings.TrimSpace(string(out)))
	}

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) < 2 {
		return nil, fmt.Errorf("no network services found")
	}

	services := make([]string, 0, len(lines)-1)
	for _, l := range lines[1:] {
		if l = strings.TrimSpace(l); l != "" {
			services = append(services, l)
		}
	}
	return services, nil
}

// Apply sets DNS servers, search domains and static routes from cfg.
// Routes are only added when both routes and a gateway are configured.
func (m *Manager) Apply(ctx context.Context, cfg *Config) error {
	if len(cfg.DNSServers) > 0 {
		log.Info("configuring DNS servers", "service", m.Service, "servers", strings.Join(cfg.DNSServers, ", "))
		args := append([]string{"networksetup", "-setdnsservers", m.Service}, cfg.DNSServers...)
		if _, err := m.run(ctx, "sudo", args...); err != nil {
			return err
		}
	}

	if len(cfg.SearchDomains) > 0 {
		log.Info("configuring search domains", "service", m.Service, "domains", strings.Join(cfg.SearchDomains, ", "))
		args := append([]string{"networksetup", "-setsearchdomains", m.Service}, cfg.SearchDomains...)
		if _, err := m.run(ctx, "sudo", args...); err != nil {
			return err
		}
	}

	if len(cfg.Routes) == 0 || cfg.Gateway == "" {
		log.Info("skipping routes: no routes or gateway configured")
		return nil
	}
	for _, route := range cfg.Routes {
		if _, err := m.run(ctx, "sudo", "route", "add", route, cfg.Gateway); err != nil {
			return err
		}
		log.Info("route added", "route", route, "gateway", cfg.Gateway)
	}
	return nil
}

// Reset clears DNS servers and search domains on the service.
func (m *Manager) Reset(ctx context.Context) error {
	log.Info("resetting DNS and search domains", "service", m.Service)
	if _, err := m.run(ctx, "sudo", "networksetup", "-setdnsservers", m.Service, "Empty"); err != nil {
		return err
	}
	if _, err := m.run(ctx, "sudo", "networksetup", "-setsearchdomains", m.Service, "Empty"); err != nil {
		return err
	}
	return nil
}

// Backup writes the service's current DNS servers and search domains to
// path in the config-file section format. Manually added routes and the
// gateway cannot be queried back, so they are annotated instead.
func (m *Manager) Backup(ctx context.Context, path string) error {
	var dns, domains string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out, err := m.run(gctx, "networksetup", "-getdnsservers", m.Service)
		dns = out
		return err
	})
	g.Go(func() error {
		out, err := m.run(gctx, "networksetup", "-getsearchdomains", m.Service)
		domains = out
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "DNS\n%s\n\n", dns)
	fmt.Fprintf(&b, "DOMAIN\n%s\n\n", domains)
	b.WriteString("ROUTES\n# Manual routes are not backed up.\n\n")
	b.WriteString("GATEWAY\n# Manual gateway is not backed up.\n")

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}

// run executes an OS command, returning its trimmed combined output.
func (m *Manager) run(ctx context.Context, name string, args ...string) (string, error) {
	out, err := m.Cmd.CombinedOutput(ctx, name, args...)
	if err != nil {
		return "", fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return strings.TrimSpace(string(out)), nil
}
