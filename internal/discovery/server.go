package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Server represents a maskentry editing server found on the network
type Server struct {
	// Instance is the advertised instance name (e.g., "kiosk-1")
	Instance string

	// Hostname is the mDNS hostname (e.g., "kiosk-1.local.")
	Hostname string

	// IP is the IPv4 address, or IPv6 when the server has none
	IP string

	// Port is the HTTP port the server listens on
	Port int

	// Metadata contains the mDNS TXT record data
	// Common fields: "version=v1.2.0", "path=/ws"
	Metadata map[string]string

	// DiscoveredAt is when the server was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the server
func (s *Server) String() string {
	return fmt.Sprintf("maskentry server %s (%s) at %s", s.Instance, s.Hostname, s.Address())
}

// Address returns host:port, bracketing IPv6 addresses.
func (s *Server) Address() string {
	return net.JoinHostPort(s.IP, strconv.Itoa(s.Port))
}

// WebSocketURL returns the URL of the server's editing endpoint
func (s *Server) WebSocketURL() string {
	path := s.GetMetadata(TXTPath)
	if path == "" {
		path = DefaultPath
	}
	return "ws://" + s.Address() + path
}

// Version returns the advertised server version, or "" when unknown
func (s *Server) Version() string {
	return s.GetMetadata(TXTVersion)
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (s *Server) GetMetadata(key string) string {
	if s.Metadata == nil {
		return ""
	}
	return s.Metadata[key]
}
