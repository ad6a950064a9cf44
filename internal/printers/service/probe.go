package service

import (
	"context"
	"net"
	"os"
	"strings"
	"time"

	"leadcapture_backend/internal/printers/domain"
)

const probeTimeout = 2 * time.Second

// PathProber is the default AvailabilityProber: network printers get a TCP
// dial against their host:port path, everything else a filesystem check on
// the device path. PDF printers are always available.
type PathProber struct{}

func (PathProber) IsAvailable(ctx context.Context, printerType domain.Type, path string) bool {
	switch printerType {
	case domain.TypePDF:
		return true
	case domain.TypeNetwork:
		return probeNetwork(ctx, path)
	default:
		_, err := os.Stat(path)
		return err == nil
	}
}

func probeNetwork(ctx context.Context, addr string) bool {
	if !strings.Contains(addr, ":") {
		// Raw-socket printing convention.
		addr = net.JoinHostPort(addr, "9100")
	}

	dialer := net.Dialer{Timeout: probeTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
