package discovery

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/muurk/maskentry/internal/logging"
)

const (
	// ServiceType is the mDNS service type maskentry servers advertise
	ServiceType = "_maskentry._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for server discovery
	DefaultScanTimeout = 5 * time.Second

	// DefaultPath is the editing endpoint when a server does not advertise one
	DefaultPath = "/ws"

	// TXT record keys
	TXTVersion = "version"
	TXTPath    = "path"
)

// Scanner handles mDNS server discovery
type Scanner struct {
	// Timeout is the maximum time to wait for server discovery
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// Scan browses the local network until the timeout or ctx ends and returns
// every server that answered, in discovery order.
func (s *Scanner) Scan(ctx context.Context) ([]*Server, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		servers []*Server
		seen    = make(map[string]bool)
	)
	err := s.browse(ctx, func(server *Server) bool {
		mu.Lock()
		defer mu.Unlock()
		if !seen[server.Instance] {
			seen[server.Instance] = true
			servers = append(servers, server)
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	mu.Lock()
	defer mu.Unlock()
	logging.Debug("mDNS scan finished", zap.Int("servers", len(servers)))
	return servers, nil
}

// Find waits for the server advertising instance.
// Returns the server or an error if not found within timeout
func (s *Scanner) Find(ctx context.Context, instance string) (*Server, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	found := make(chan *Server, 1)
	err := s.browse(ctx, func(server *Server) bool {
		if server.Instance != instance {
			return true
		}
		select {
		case found <- server:
		default:
		}
		cancel() // Found the server, stop browsing
		return false
	})
	if err != nil {
		return nil, err
	}

	select {
	case server := <-found:
		return server, nil
	default:
		return nil, fmt.Errorf("server %q not found within %s", instance, s.Timeout)
	}
}

// browse feeds parsed entries to fn until ctx ends or fn returns false.
// It returns once the resolver has stopped delivering entries.
func (s *Scanner) browse(ctx context.Context, fn func(*Server) bool) error {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	done := make(chan struct{})

	go func() {
		defer close(done)
		accepting := true
		for entry := range entries {
			if !accepting {
				continue
			}
			if server := s.parseServiceEntry(entry); server != nil {
				accepting = fn(server)
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	// Wait for context to complete (timeout or cancellation)
	<-ctx.Done()
	select {
	case <-done:
	case <-time.After(time.Second):
	}
	return nil
}

// parseServiceEntry converts a zeroconf service entry to a Server
// Returns nil if the entry has no usable address
func (s *Scanner) parseServiceEntry(entry *zeroconf.ServiceEntry) *Server {
	if entry == nil || entry.Instance == "" {
		return nil
	}

	// Get IP address (prefer IPv4)
	var ip string
	if len(entry.AddrIPv4) > 0 {
		ip = entry.AddrIPv4[0].String()
	} else if len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" || entry.Port == 0 {
		return nil
	}

	return &Server{
		Instance:     unescapeInstance(entry.Instance),
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         entry.Port,
		Metadata:     parseTXT(entry.Text),
		DiscoveredAt: time.Now(),
	}
}

// parseTXT parses TXT records in "key=value" format. A key without a value
// maps to "".
func parseTXT(records []string) map[string]string {
	metadata := make(map[string]string, len(records))
	for _, txt := range records {
		key, value, _ := strings.Cut(txt, "=")
		metadata[key] = value
	}
	return metadata
}

// unescapeInstance undoes the DNS label escaping zeroconf applies to
// instance names with spaces or dots.
func unescapeInstance(name string) string {
	return strings.ReplaceAll(name, `\`, "")
}

// Advertisement is a running mDNS registration.
type Advertisement struct {
	server *zeroconf.Server
}

// Advertise registers an editing server listening on port under instance.
// Call Shutdown on the result to withdraw it.
func Advertise(instance string, port int, version string) (*Advertisement, error) {
	txt := []string{TXTPath + "=" + DefaultPath}
	if version != "" {
		txt = append(txt, TXTVersion+"="+version)
	}

	server, err := zeroconf.Register(instance, ServiceType, ServiceDomain, port, txt, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service: %w", err)
	}

	logging.Info("Advertising editing server",
		zap.String("instance", instance),
		zap.String("service", ServiceType),
		zap.Int("port", port),
	)
	return &Advertisement{server: server}, nil
}

// Shutdown withdraws the advertisement.
func (a *Advertisement) Shutdown() {
	if a == nil || a.server == nil {
		return
	}
	a.server.Shutdown()
	logging.Debug("mDNS advertisement withdrawn")
}
