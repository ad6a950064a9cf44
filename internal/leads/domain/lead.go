// Package domain holds the lead enumerations and the pure metrics
// aggregation logic. It performs no I/O.
package domain

// TechnicalInterest is the technical course a lead is interested in.
type TechnicalInterest string

const (
	TechnicalNursing        TechnicalInterest = "ENF"
	TechnicalInformatics    TechnicalInterest = "INF"
	TechnicalAdministration TechnicalInterest = "ADM"
	TechnicalNone           TechnicalInterest = "NONE"
)

// Origin is the channel through which a lead was captured.
type Origin string

const (
	OriginQRCode    Origin = "qrcode"
	OriginInstagram Origin = "instagram"
	OriginManual    Origin = "manual"
)

// SegmentInterest is the school segment a lead is interested in.
type SegmentInterest string

const (
	SegmentNone          SegmentInterest = "NONE"
	SegmentKindergarten1 SegmentInterest = "JARDIM_1"
	SegmentKindergarten2 SegmentInterest = "JARDIM_2"
	SegmentElementary1   SegmentInterest = "ANO_1_FUNDAMENTAL"
	SegmentElementary2   SegmentInterest = "ANO_2_FUNDAMENTAL"
	SegmentElementary3   SegmentInterest = "ANO_3_FUNDAMENTAL"
	SegmentElementary4   SegmentInterest = "ANO_4_FUNDAMENTAL"
	SegmentElementary5   SegmentInterest = "ANO_5_FUNDAMENTAL"
	SegmentElementary6   SegmentInterest = "ANO_6_FUNDAMENTAL"
	SegmentElementary7   SegmentInterest = "ANO_7_FUNDAMENTAL"
	SegmentElementary8   SegmentInterest = "ANO_8_FUNDAMENTAL"
	SegmentElementary9   SegmentInterest = "ANO_9_FUNDAMENTAL"
	SegmentHighSchool1   SegmentInterest = "ANO_1_MEDIO"
	SegmentHighSchool2   SegmentInterest = "ANO_2_MEDIO"
	SegmentHighSchool3   SegmentInterest = "ANO_3_MEDIO"
)

var validTechnicalInterests = map[TechnicalInterest]bool{
	TechnicalNursing:        true,
	TechnicalInformatics:    true,
	TechnicalAdministration: true,
	TechnicalNone:           true,
}

var validOrigins = map[Origin]bool{
	OriginQRCode:    true,
	OriginInstagram: true,
	OriginManual:    true,
}

var validSegments = map[SegmentInterest]bool{
	SegmentNone:          true,
	SegmentKindergarten1: true,
	SegmentKindergarten2: true,
	SegmentElementary1:   true,
	SegmentElementary2:   true,
	SegmentElementary3:   true,
	SegmentElementary4:   true,
	SegmentElementary5:   true,
	SegmentElementary6:   true,
	SegmentElementary7:   true,
	SegmentElementary8:   true,
	SegmentElementary9:   true,
	SegmentHighSchool1:   true,
	SegmentHighSchool2:   true,
	SegmentHighSchool3:   true,
}

// IsValid reports whether the value is a known technical interest.
func (t TechnicalInterest) IsValid() bool { return validTechnicalInterests[t] }

// IsValid reports whether the value is a known origin.
func (o Origin) IsValid() bool { return validOrigins[o] }

// IsValid reports whether the value is a known segment interest.
func (s SegmentInterest) IsValid() bool { return validSegments[s] }
