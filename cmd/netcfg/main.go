package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"nettools/internal/execx"
	"nettools/internal/netcfg"
)

var (
	version = "dev"

	doInit   bool
	doSet    bool
	doReset  bool
	doBackup bool
	cfgFile  string
	service  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "netcfg",
		Short: "Apply DNS, search-domain and route configuration to a macOS network service",
		Long: `netcfg reads a flat configuration file with DNS, DOMAIN, ROUTES and
GATEWAY sections and applies it to a chosen network service using
networksetup and route. It can also reset the applied settings, back up
the current ones, or create a default configuration file to start from.

When no --service is given, the available network services are listed for
interactive selection.

Examples:
  netcfg --init                       # create a default config.ini
  netcfg --set -p "Wi-Fi"             # apply config.ini to Wi-Fi
  netcfg --set -f vpn.ini -p "Wi-Fi"  # apply a specific config file
  netcfg --reset -p "Wi-Fi"           # clear DNS and search domains
  netcfg --backup -p "Wi-Fi"          # save current DNS settings`,
		Args: cobra.NoArgs,
		RunE: run,
	}

	rootCmd.Version = version

	rootCmd.Flags().BoolVarP(&doInit, "init", "i", false, "create a default configuration file and exit")
	rootCmd.Flags().BoolVarP(&doSet, "set", "s", false, "apply the configuration file to the service")
	rootCmd.Flags().BoolVarP(&doReset, "reset", "r", false, "reset DNS servers and search domains")
	rootCmd.Flags().BoolVarP(&doBackup, "backup", "b", false, "back up current DNS settings")
	rootCmd.Flags().StringVarP(&cfgFile, "config", "f", netcfg.DefaultFile, "configuration file to read")
	rootCmd.Flags().StringVarP(&service, "service", "p", "", "network service name (prompted for when omitted)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if doInit {
		if err := netcfg.WriteDefault(netcfg.DefaultFile); err != nil {
			return err
		}
		log.Info("default configuration file created, edit it as needed", "path", netcfg.DefaultFile)
		return nil
	}

	if !doSet && !doReset && !doBackup {
		return cmd.Usage()
	}

	ctx := context.Background()
	commander := execx.New()

	svc := service
	if svc == "" {
		services, err := netcfg.ListServices(ctx, commander)
		if err != nil {
			return err
		}
		if svc, err = selectService(services); err != nil {
			return err
		}
	}

	mgr := netcfg.NewManager(svc, commander)

	switch {
	case doReset:
		if err := mgr.Reset(ctx); err != nil {
			return err
		}
		log.Info("DNS and search domains reset", "service", svc)
	case doBackup:
		if err := mgr.Backup(ctx, netcfg.BackupFile); err != nil {
			return err
		}
		log.Info("backup saved", "path", netcfg.BackupFile)
	case doSet:
		cfg, err := netcfg.Load(cfgFile)
		if err != nil {
			return err
		}
		if err := mgr.Apply(ctx, cfg); err != nil {
			return err
		}
		log.Info("configuration applied", "service", svc, "config", cfgFile)
	}

	return nil
}

// selectService prompts for a numeric choice among the listed services.
func selectService(services []string) (string, error) {
	for i, s := range services {
		fmt.Printf("%d. %s\n", i+1, s)
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("Enter the number of the network service: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("read selection: %w", err)
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil && n >= 1 && n <= len(services) {
			return services[n-1], nil
		}
		fmt.Println("Invalid selection. Try again.")
	}
}
