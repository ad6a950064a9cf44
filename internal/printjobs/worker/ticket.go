package worker

import (
	"fmt"

	"leadcapture_backend/internal/printjobs/queue"

	qrcode "github.com/skip2/go-qrcode"
)

const qrSizePixels = 256

// Ticket is a rendered check-in ticket ready for delivery.
type Ticket struct {
	LeadID   string
	FileName string
	QRCode   []byte
}

// renderTicket produces the QR image encoding the lead's check-in reference.
func renderTicket(payload queue.TicketPayload) (Ticket, error) {
	content := fmt.Sprintf("lead:%s;event:%s", payload.LeadID, payload.EventSlug)

	png, err := qrcode.Encode(content, qrcode.Medium, qrSizePixels)
	if err != nil {
		return Ticket{}, fmt.Errorf("failed to render ticket QR: %w", err)
	}

	return Ticket{
		LeadID:   payload.LeadID,
		FileName: fmt.Sprintf("%s_%s.png", payload.EventSlug, payload.LeadID),
		QRCode:   png,
	}, nil
}
