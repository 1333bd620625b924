// Package discovery advertises and finds notebook servers over mDNS.
//
// "notebook serve" registers a "_notebook._tcp" service whose TXT records
// carry the notebook id, tab count, build version and WebSocket path.
// "notebook scan" browses for those services and turns each answer into a
// Server that knows how to build its WebSocket URL.
//
// # Advertising
//
//	ad, err := discovery.Advertise("docs on studio", 8765, discovery.Info{
//	    NotebookID: nb.ID(),
//	    Tabs:       nb.Len(),
//	    Version:    version.Version,
//	})
//	if err != nil {
//	    return err
//	}
//	defer ad.Shutdown()
//
// # Scanning
//
//	servers, err := discovery.NewScanner().Scan(ctx)
//	for _, s := range servers {
//	    fmt.Println(s.Name, s.URL())
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Servers must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
//
// # Thread Safety
//
// Scanners and Advertisements are safe for concurrent use.
package discovery
