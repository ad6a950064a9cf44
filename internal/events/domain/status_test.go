package domain

import (
	"testing"

	"leadcapture_backend/platform/apperr"
)

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusDraft, StatusActive, true},
		{StatusDraft, StatusCanceled, true},
		{StatusDraft, StatusFinished, false},
		{StatusDraft, StatusInactive, false},
		{StatusActive, StatusFinished, true},
		{StatusActive, StatusCanceled, true},
		{StatusActive, StatusInactive, true},
		{StatusActive, StatusDraft, false},
		{StatusInactive, StatusActive, true},
		{StatusInactive, StatusFinished, true},
		{StatusInactive, StatusCanceled, true},
		{StatusInactive, StatusDraft, false},
		{StatusFinished, StatusCanceled, true},
		{StatusFinished, StatusActive, false},
		{StatusCanceled, StatusDraft, false},
		{StatusCanceled, StatusActive, false},
		{StatusCanceled, StatusFinished, false},
	}

	for _, tc := range tests {
		if got := CanTransition(tc.from, tc.to); got != tc.allowed {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestTransitionRejectsSelf(t *testing.T) {
	for _, s := range []Status{StatusDraft, StatusActive, StatusInactive, StatusFinished, StatusCanceled} {
		if CanTransition(s, s) {
			t.Errorf("CanTransition(%s, %s) must be false", s, s)
		}
		if _, err := Transition(s, s); err == nil {
			t.Errorf("Transition(%s, %s) must fail", s, s)
		}
	}
}

func TestTransitionReturnsTypedError(t *testing.T) {
	_, err := Transition(StatusCanceled, StatusActive)
	if err == nil {
		t.Fatal("expected error")
	}
	if apperr.GetCode(err) != CodeInvalidStatusTransition {
		t.Fatalf("expected code %s, got %s", CodeInvalidStatusTransition, apperr.GetCode(err))
	}
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation kind, got %v", apperr.GetKind(err))
	}
}

func TestTransitionReturnsTarget(t *testing.T) {
	got, err := Transition(StatusDraft, StatusActive)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != StatusActive {
		t.Fatalf("expected %s, got %s", StatusActive, got)
	}
}

func TestTerminalStates(t *testing.T) {
	if !StatusCanceled.IsTerminal() {
		t.Fatal("canceled must be terminal")
	}
	for _, s := range []Status{StatusDraft, StatusActive, StatusInactive, StatusFinished} {
		if s.IsTerminal() {
			t.Errorf("%s must not be terminal", s)
		}
	}
}

func TestStatusValidity(t *testing.T) {
	if Status("deleted").IsValid() {
		t.Fatal("unknown status must be invalid")
	}
	if !StatusDraft.IsValid() {
		t.Fatal("draft must be valid")
	}
}
