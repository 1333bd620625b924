package discovery

import (
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/muurk/notebook/internal/logging"
)

// Info is the TXT payload a server advertises.
type Info struct {
	NotebookID string
	Tabs       int
	Version    string
	Path       string
}

// TXTRecords encodes info as sorted "key=value" records. Empty fields are
// left out.
func (info Info) TXTRecords() []string {
	fields := map[string]string{
		TXTNotebook: info.NotebookID,
		TXTVersion:  info.Version,
		TXTPath:     info.Path,
		TXTTabs:     strconv.Itoa(info.Tabs),
	}
	records := make([]string, 0, len(fields))
	for k, v := range fields {
		if v == "" {
			continue
		}
		records = append(records, k+"="+v)
	}
	sort.Strings(records)
	return records
}

// Advertisement is a registered mDNS service. It stays on the network until
// Shutdown is called.
type Advertisement struct {
	mu     sync.Mutex
	server *zeroconf.Server
	name   string
	info   Info
}

// Advertise registers instance name for a notebook server listening on port.
func Advertise(name string, port int, info Info) (*Advertisement, error) {
	if info.Path == "" {
		info.Path = DefaultPath
	}
	server, err := zeroconf.Register(name, ServiceType, ServiceDomain, port, info.TXTRecords(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service: %w", err)
	}

	logging.Info("mDNS service registered",
		zap.String("name", name),
		zap.String("service", ServiceType),
		zap.Int("port", port),
		zap.String("notebook", info.NotebookID),
	)
	return &Advertisement{server: server, name: name, info: info}, nil
}

// SetTabs updates the advertised tab count.
func (a *Advertisement) SetTabs(n int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.server == nil || a.info.Tabs == n {
		return
	}
	a.info.Tabs = n
	a.server.SetText(a.info.TXTRecords())
}

// Shutdown withdraws the service from the network. It is safe to call more
// than once.
func (a *Advertisement) Shutdown() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.server == nil {
		return
	}
	a.server.Shutdown()
	a.server = nil
	logging.Info("mDNS service withdrawn", zap.String("name", a.name))
}
