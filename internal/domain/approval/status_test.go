package approval

import (
	"errors"
	"testing"
	"time"
)

func strp(s string) *string { return &s }
func f64(v float64) *float64 { return &v }

func signed() Signature {
	now := time.Now()
	return Signature{Image: strp("data:image/png;base64,AAA"), SignedAt: &now}
}

func TestTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		ok       bool
	}{
		{StatusDraft, StatusWaitingApproval, true},
		{StatusDraft, StatusReject, true},
		{StatusDraft, StatusDone, false},
		{StatusWaitingApproval, StatusDone, true},
		{StatusWaitingApproval, StatusReject, true},
		{StatusWaitingApproval, StatusDraft, false},
		{StatusDone, StatusReject, false},
		{StatusDone, StatusWaitingApproval, false},
		{StatusReject, StatusDraft, false},
		{StatusDone, StatusDone, true},
		{StatusDraft, Status("ARCHIVED"), false},
	}
	for _, tt := range tests {
		err := Transition(tt.from, tt.to)
		if tt.ok && err != nil {
			t.Fatalf("%s -> %s: unexpected %v", tt.from, tt.to, err)
		}
		if !tt.ok && !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("%s -> %s: want ErrInvalidTransition, got %v", tt.from, tt.to, err)
		}
	}
}

func TestAllSigned(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		sigs []Signature
		want bool
	}{
		{"empty", nil, false},
		{"one unsigned", []Signature{signed(), {}}, false},
		{"image without time", []Signature{{Image: strp("x")}}, false},
		{"time without image", []Signature{{SignedAt: &now}}, false},
		{"all signed", []Signature{signed(), signed()}, true},
		{"deleted unsigned ignored", []Signature{signed(), {IsDeleted: true}}, true},
		{"only deleted", []Signature{{IsDeleted: true}}, false},
	}
	for _, tt := range tests {
		if got := AllSigned(tt.sigs); got != tt.want {
			t.Fatalf("%s: got %v want %v", tt.name, got, tt.want)
		}
	}
}

func TestReviewed(t *testing.T) {
	placed := Signature{PositionX: f64(10), PositionY: f64(20)}
	half := Signature{PositionX: f64(10)}

	if Reviewed(nil) {
		t.Fatal("zero signatures must never be reviewed")
	}
	if !Reviewed([]Signature{placed, placed}) {
		t.Fatal("two positioned signatures should be reviewed")
	}
	if Reviewed([]Signature{placed, {}}) {
		t.Fatal("an unpositioned live signature must flip reviewed to false")
	}
	if Reviewed([]Signature{placed, half}) {
		t.Fatal("x without y is not positioned")
	}
	deleted := Signature{IsDeleted: true}
	if !Reviewed([]Signature{placed, deleted}) {
		t.Fatal("deleted signatures are ignored")
	}
}

func TestDerive(t *testing.T) {
	if got := Derive(StatusWaitingApproval, []Signature{signed(), {}}); got != StatusWaitingApproval {
		t.Fatalf("got %s", got)
	}
	if got := Derive(StatusWaitingApproval, []Signature{signed(), signed()}); got != StatusDone {
		t.Fatalf("got %s", got)
	}
	if got := Derive(StatusDone, []Signature{signed()}); got != StatusDone {
		t.Fatalf("got %s", got)
	}
	if got := Derive(StatusDraft, []Signature{signed()}); got != StatusDraft {
		t.Fatalf("draft must not jump to done, got %s", got)
	}
}

func TestSignersLocked(t *testing.T) {
	for s, want := range map[Status]bool{
		StatusDraft:           false,
		StatusWaitingApproval: false,
		StatusDone:            true,
		StatusReject:          true,
	} {
		if got := SignersLocked(s); got != want {
			t.Fatalf("SignersLocked(%s) = %v, want %v", s, got, want)
		}
	}
}
