// Package domain holds the printer enumerations.
package domain

// Type is the kind of printer hardware behind a registration.
type Type string

const (
	TypeThermal Type = "thermal"
	TypeInkjet  Type = "inkjet"
	TypeLaser   Type = "laser"
	TypePDF     Type = "pdf"
	TypeNetwork Type = "network"
)

// Status is the connectivity state of a printer.
type Status string

const (
	StatusDisconnected Status = "disconnected"
	StatusConnected    Status = "connected"
	StatusPrinting     Status = "printing"
)

var validTypes = map[Type]bool{
	TypeThermal: true,
	TypeInkjet:  true,
	TypeLaser:   true,
	TypePDF:     true,
	TypeNetwork: true,
}

// IsValid reports whether the value is a known printer type.
func (t Type) IsValid() bool { return validTypes[t] }
