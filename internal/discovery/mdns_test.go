package discovery

import (
	"net"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"
)

func entry(instance, host string, port int, v4, v6 []net.IP, txt ...string) *zeroconf.ServiceEntry {
	e := zeroconf.NewServiceEntry(instance, ServiceType, ServiceDomain)
	e.HostName = host
	e.Port = port
	e.AddrIPv4 = v4
	e.AddrIPv6 = v6
	e.Text = txt
	return e
}

func TestScanner_parseServiceEntry(t *testing.T) {
	scanner := NewScanner()

	tests := []struct {
		name         string
		entry        *zeroconf.ServiceEntry
		wantNil      bool
		wantInstance string
		wantIP       string
		wantPort     int
	}{
		{
			name:         "IPv4 server",
			entry:        entry("kiosk-1", "kiosk-1.local.", 8765, []net.IP{net.ParseIP("192.168.4.16")}, nil, "path=/ws"),
			wantInstance: "kiosk-1",
			wantIP:       "192.168.4.16",
			wantPort:     8765,
		},
		{
			name:         "IPv6 only server",
			entry:        entry("lab", "lab.local.", 9000, nil, []net.IP{net.ParseIP("fe80::1")}),
			wantInstance: "lab",
			wantIP:       "fe80::1",
			wantPort:     9000,
		},
		{
			name:         "both families prefer IPv4",
			entry:        entry("desk", "desk.local.", 8765, []net.IP{net.ParseIP("10.0.0.5")}, []net.IP{net.ParseIP("fe80::2")}),
			wantInstance: "desk",
			wantIP:       "10.0.0.5",
			wantPort:     8765,
		},
		{
			name:         "escaped instance name",
			entry:        entry(`Front\ Desk`, "desk.local.", 8765, []net.IP{net.ParseIP("10.0.0.6")}, nil),
			wantInstance: "Front Desk",
			wantIP:       "10.0.0.6",
			wantPort:     8765,
		},
		{
			name:    "no address",
			entry:   entry("ghost", "ghost.local.", 8765, nil, nil),
			wantNil: true,
		},
		{
			name:    "no port",
			entry:   entry("ghost", "ghost.local.", 0, []net.IP{net.ParseIP("10.0.0.7")}, nil),
			wantNil: true,
		},
		{
			name:    "no instance",
			entry:   entry("", "x.local.", 8765, []net.IP{net.ParseIP("10.0.0.8")}, nil),
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := scanner.parseServiceEntry(tt.entry)

			if tt.wantNil {
				if server != nil {
					t.Errorf("parseServiceEntry() = %v, want nil", server)
				}
				return
			}
			if server == nil {
				t.Fatal("parseServiceEntry() = nil, want server")
			}
			if server.Instance != tt.wantInstance {
				t.Errorf("Instance = %v, want %v", server.Instance, tt.wantInstance)
			}
			if server.IP != tt.wantIP {
				t.Errorf("IP = %v, want %v", server.IP, tt.wantIP)
			}
			if server.Port != tt.wantPort {
				t.Errorf("Port = %v, want %v", server.Port, tt.wantPort)
			}
			if time.Since(server.DiscoveredAt) > time.Second {
				t.Errorf("DiscoveredAt is not recent: %v", server.DiscoveredAt)
			}
		})
	}
}

func TestParseTXT(t *testing.T) {
	got := parseTXT([]string{"path=/ws", "version=v1.0.0", "flag", "eq=a=b"})
	want := map[string]string{
		"path":    "/ws",
		"version": "v1.0.0",
		"flag":    "",
		"eq":      "a=b",
	}

	if len(got) != len(want) {
		t.Errorf("parseTXT() has %d entries, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("parseTXT()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestNewScanner(t *testing.T) {
	scanner := NewScanner()
	if scanner.Timeout != DefaultScanTimeout {
		t.Errorf("scanner.Timeout = %v, want %v", scanner.Timeout, DefaultScanTimeout)
	}
}

func TestServerURLs(t *testing.T) {
	tests := []struct {
		name    string
		server  *Server
		address string
		url     string
	}{
		{
			name:    "default path",
			server:  &Server{IP: "192.168.4.16", Port: 8765},
			address: "192.168.4.16:8765",
			url:     "ws://192.168.4.16:8765/ws",
		},
		{
			name:    "advertised path",
			server:  &Server{IP: "10.0.0.5", Port: 80, Metadata: map[string]string{"path": "/edit"}},
			address: "10.0.0.5:80",
			url:     "ws://10.0.0.5:80/edit",
		},
		{
			name:    "IPv6",
			server:  &Server{IP: "fe80::1", Port: 9000},
			address: "[fe80::1]:9000",
			url:     "ws://[fe80::1]:9000/ws",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.server.Address(); got != tt.address {
				t.Errorf("Address() = %v, want %v", got, tt.address)
			}
			if got := tt.server.WebSocketURL(); got != tt.url {
				t.Errorf("WebSocketURL() = %v, want %v", got, tt.url)
			}
		})
	}
}

func TestServerMetadata(t *testing.T) {
	s := &Server{Instance: "kiosk", Hostname: "kiosk.local.", IP: "10.0.0.1", Port: 8765}
	if s.Version() != "" {
		t.Errorf("Version() = %q with no metadata", s.Version())
	}
	s.Metadata = map[string]string{"version": "v1.2.0"}
	if s.Version() != "v1.2.0" {
		t.Errorf("Version() = %q, want v1.2.0", s.Version())
	}
	if want := "maskentry server kiosk (kiosk.local.) at 10.0.0.1:8765"; s.String() != want {
		t.Errorf("String() = %q, want %q", s.String(), want)
	}
}

// Note: Live mDNS discovery needs multicast on the test host and is not
// exercised here.
