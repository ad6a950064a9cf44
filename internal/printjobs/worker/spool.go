package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// TicketDelivery hands a rendered ticket to the physical print path.
type TicketDelivery interface {
	Deliver(ctx context.Context, ticket Ticket) error
}

// SpoolDelivery writes rendered tickets into a spool directory that the
// printer host picks up.
type SpoolDelivery struct {
	dir string
}

func NewSpoolDelivery(dir string) (*SpoolDelivery, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create spool directory %s: %w", dir, err)
	}
	return &SpoolDelivery{dir: dir}, nil
}

func (s *SpoolDelivery) Deliver(_ context.Context, ticket Ticket) error {
	path := filepath.Join(s.dir, ticket.FileName)
	if err := os.WriteFile(path, ticket.QRCode, 0o644); err != nil {
		return fmt.Errorf("failed to spool ticket %s: %w", ticket.FileName, err)
	}
	return nil
}
