package phone

import (
	"testing"

	"leadcapture_backend/platform/apperr"
)

func TestNormalizeMobileWithSpaces(t *testing.T) {
	got, err := Normalize("21 983294521")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "+5521983294521" {
		t.Fatalf("expected +5521983294521, got %s", got)
	}
}

func TestNormalizeLandline(t *testing.T) {
	got, err := Normalize("(11) 3322-4455")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "+551133224455" {
		t.Fatalf("expected +551133224455, got %s", got)
	}
}

func TestNormalizeRejectsCountryPrefixedInput(t *testing.T) {
	// The leading 55 country digits are not stripped, so this input carries
	// 13 digits and must be rejected before any partial output is produced.
	if _, err := Normalize("+55 (21) 98329-4521"); err == nil {
		t.Fatal("expected error for 13-digit input")
	}
}

func TestNormalizeRejectsWrongLength(t *testing.T) {
	for _, raw := range []string{"", "12345", "219832945", "219832945211"} {
		if _, err := Normalize(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestNormalizeRejectsLowAreaCode(t *testing.T) {
	_, err := Normalize("05983294521")
	if err == nil {
		t.Fatal("expected error for area code 05")
	}
	if apperr.GetCode(err) != CodeInvalidPhone {
		t.Fatalf("expected code %s, got %s", CodeInvalidPhone, apperr.GetCode(err))
	}
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation kind, got %v", apperr.GetKind(err))
	}
}

func TestNormalizeRejectsMobileNotStartingWithNine(t *testing.T) {
	if _, err := Normalize("21883294521"); err == nil {
		t.Fatal("expected error for 9-digit subscriber not starting with 9")
	}
}

func TestNormalizeEightDigitSubscriberAllowed(t *testing.T) {
	// 8-digit subscriber numbers have no leading-9 requirement.
	got, err := Normalize("2183294521")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "+552183294521" {
		t.Fatalf("expected +552183294521, got %s", got)
	}
}
