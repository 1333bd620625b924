package discovery

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Server represents a notebook remote-control server found on the network
type Server struct {
	// Name is the mDNS instance name (e.g., "docs on studio")
	Name string

	// Host is the mDNS hostname (e.g., "studio.local.")
	Host string

	// IP is the preferred address, IPv4 when one was advertised
	IP string

	// Port is the WebSocket port
	Port int

	// NotebookID is the id of the notebook the server exposes
	NotebookID string

	// Tabs is the tab count at the time the record was last updated
	Tabs int

	// Version is the server's build version
	Version string

	// Metadata contains every TXT record, including the ones lifted above
	Metadata map[string]string

	// DiscoveredAt is when the server was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the server
func (s *Server) String() string {
	return fmt.Sprintf("Notebook %s (%s) at %s", s.NotebookID, s.Name, s.Addr())
}

// Addr returns host:port suitable for dialing
func (s *Server) Addr() string {
	return net.JoinHostPort(s.IP, strconv.Itoa(s.Port))
}

// URL returns the WebSocket URL of the server
func (s *Server) URL() string {
	path := s.GetMetadata(TXTPath)
	if path == "" {
		path = DefaultPath
	}
	return "ws://" + s.Addr() + path
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (s *Server) GetMetadata(key string) string {
	if s.Metadata == nil {
		return ""
	}
	return s.Metadata[key]
}
