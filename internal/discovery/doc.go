// Package discovery finds maskentry editing servers on the local network
// with multicast DNS (mDNS).
//
// `maskentry serve --advertise` registers a "_maskentry._tcp" service whose
// TXT records carry the server version and WebSocket path. Scanner browses
// for that service type and returns every server that answers before the
// timeout.
//
// # Usage Example
//
//	ad, err := discovery.Advertise("kiosk-1", 8765, version.Version)
//	if err != nil {
//	    return err
//	}
//	defer ad.Shutdown()
//
//	scanner := discovery.NewScanner()
//	servers, err := scanner.Scan(ctx)
//	for _, s := range servers {
//	    fmt.Println(s.Instance, s.WebSocketURL())
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Servers must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
package discovery
