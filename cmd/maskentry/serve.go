package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/maskentry/internal/config"
	"github.com/muurk/maskentry/internal/discovery"
	"github.com/muurk/maskentry/internal/logging"
	"github.com/muurk/maskentry/internal/server"
	"github.com/muurk/maskentry/internal/tui"
	"github.com/muurk/maskentry/internal/ui"
	"github.com/muurk/maskentry/internal/version"
)

// Server command flags
var (
	serveHost      string
	servePort      int
	serveCert      string
	serveKey       string
	serveAdvertise bool
	serveName      string

	scanTimeout     int
	scanInteractive bool
)

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Listen address (default from config, "+config.DefaultServerHost+")")
	serveCmd.Flags().IntVar(&servePort, "port", 0, fmt.Sprintf("Listen port (default from config, %d)", config.DefaultServerPort))
	serveCmd.Flags().StringVar(&serveCert, "cert", "", "Path to TLS certificate file")
	serveCmd.Flags().StringVar(&serveKey, "key", "", "Path to TLS private key file")
	serveCmd.Flags().BoolVar(&serveAdvertise, "advertise", false, "Announce the server over mDNS")
	serveCmd.Flags().StringVar(&serveName, "name", "", "mDNS instance name (default: host name)")
	serveCmd.MarkFlagsRequiredTogether("cert", "key")

	scanCmd.Flags().IntVar(&scanTimeout, "timeout", 0, fmt.Sprintf("Scan timeout in seconds (default from config, %d)", config.DefaultScanTimeout))
	scanCmd.Flags().BoolVarP(&scanInteractive, "interactive", "i", false, "Show the scan in the terminal UI")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scanCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve masked editing sessions over WebSocket",
	Long: `Start a WebSocket server exposing the editing engine.

Each connection is an independent session: the client installs a mask and
sends insert, delete, cursor and focus requests; every request is answered
with the authoritative text, cursor and active field.

With --advertise the server is announced over mDNS as _maskentry._tcp so
'maskentry scan' can find it.`,
	Example: `  # Listen on the default address
  maskentry serve

  # Listen on all interfaces and announce over mDNS
  maskentry serve --host 0.0.0.0 --advertise --log-level info

  # Serve over TLS
  maskentry serve --cert cert.pem --key key.pem`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Find editing servers on the local network",
	Long: `Scan for 'maskentry serve --advertise' instances using mDNS/DNS-SD
and list their WebSocket URLs.`,
	Example: `  # Scan with the configured timeout
  maskentry scan

  # Quick 2-second scan
  maskentry scan --timeout 2`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func runServe(cmd *cobra.Command, args []string) error {
	reg, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	cfg := &server.Config{
		Host:     serveHost,
		Port:     servePort,
		CertPath: serveCert,
		KeyPath:  serveKey,
	}
	if prefs := reg.Preferences; prefs != nil {
		if !cmd.Flags().Changed("host") {
			cfg.Host = prefs.ServerHost
		}
		if !cmd.Flags().Changed("port") {
			cfg.Port = prefs.ServerPort
		}
	}
	if cfg.Port == 0 && !cmd.Flags().Changed("port") {
		cfg.Port = config.DefaultServerPort
	}

	tlsMode := "off"
	if cfg.CertPath != "" {
		tlsMode = cfg.CertPath
	}
	ui.NewPrinter(cmd.OutOrStdout()).PrintHeader("SERVE EDITING SESSIONS", "maskentry serve",
		ui.Detail{Key: "Version", Value: version.Full()},
		ui.Detail{Key: "TLS", Value: tlsMode},
	)

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	if err := srv.Listen(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	details := []ui.Detail{{Key: "URL", Value: srv.URL()}}
	if serveAdvertise {
		ad, err := advertise(srv)
		if err != nil {
			return err
		}
		defer ad.Shutdown()
		details = append(details, ui.Detail{Key: "mDNS", Value: discovery.ServiceType + "." + discovery.ServiceDomain})
	}

	ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Server listening", details...)
	return srv.Serve(ctx)
}

// advertise announces srv over mDNS under the configured instance name.
func advertise(srv *server.Server) (*discovery.Advertisement, error) {
	name := serveName
	if name == "" {
		host, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("failed to get host name for --name: %w", err)
		}
		name = host
	}

	tcp, ok := srv.Addr().(*net.TCPAddr)
	if !ok {
		return nil, fmt.Errorf("cannot advertise non-TCP address %s", srv.Addr())
	}

	ad, err := discovery.Advertise(name, tcp.Port, version.Version)
	if err != nil {
		return nil, err
	}
	logging.Info("Advertising server", zap.String("instance", name), zap.Int("port", tcp.Port))
	return ad, nil
}

func runScan(cmd *cobra.Command, args []string) error {
	reg, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	scanner := discovery.NewScanner()
	switch {
	case scanTimeout > 0:
		scanner.Timeout = time.Duration(scanTimeout) * time.Second
	case reg.Preferences != nil && reg.Preferences.ScanTimeout > 0:
		scanner.Timeout = time.Duration(reg.Preferences.ScanTimeout) * time.Second
	}

	if scanInteractive {
		opts := appOptions(reg)
		opts.Start = tui.ScreenScan
		opts.Scan = scanner.Scan
		return runApp(cmd.OutOrStdout(), opts)
	}

	out := cmd.OutOrStdout()
	ui.NewPrinter(out).PrintHeader("SCAN FOR SERVERS", "maskentry scan",
		ui.Detail{Key: "Service", Value: discovery.ServiceType + "." + discovery.ServiceDomain},
		ui.Detail{Key: "Timeout", Value: scanner.Timeout.String()},
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	servers, err := scanner.Scan(ctx)
	printer := ui.NewPrinter(out)
	if err != nil && !errors.Is(err, context.Canceled) {
		printer.PrintError("Scan failed", err, []string{
			"Check that multicast traffic is allowed on this network",
			"Make sure a network interface is up",
			"Run with --log-level debug for resolver details",
		})
		return &reportedError{err: fmt.Errorf("scan failed: %w", err)}
	}

	if len(servers) == 0 {
		printer.PrintWarning("No servers found",
			ui.Detail{Key: "Hint", Value: "start one with 'maskentry serve --advertise'"},
			ui.Detail{Key: "Hint", Value: "try a longer --timeout on busy networks"},
		)
		return nil
	}

	rows := make([][]string, 0, len(servers))
	for _, s := range servers {
		rows = append(rows, []string{s.Instance, s.WebSocketURL(), s.Version()})
	}
	printer.PrintTable([]string{"INSTANCE", "URL", "VERSION"}, rows)
	return nil
}
