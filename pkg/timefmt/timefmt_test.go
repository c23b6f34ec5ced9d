package timefmt

import (
	"testing"
	"time"
)

func TestDateTime_ConvertsToJakarta(t *testing.T) {
	f := New("")
	at := time.Date(2025, 10, 18, 9, 30, 0, 0, time.UTC)
	if got, want := f.DateTime(at), "18 Oktober 2025 16:30"; got != want {
		t.Fatalf("DateTime = %q, want %q", got, want)
	}
}

func TestDateTime_CrossesMidnight(t *testing.T) {
	f := New(DefaultZone)
	at := time.Date(2025, 12, 31, 20, 5, 0, 0, time.UTC)
	if got, want := f.DateTime(at), "01 Januari 2026 03:05"; got != want {
		t.Fatalf("DateTime = %q, want %q", got, want)
	}
	if got, want := f.Date(at), "01 Januari 2026"; got != want {
		t.Fatalf("Date = %q, want %q", got, want)
	}
}

func TestZeroAndNil(t *testing.T) {
	f := New("")
	if f.DateTime(time.Time{}) != "-" {
		t.Fatalf("zero time should render as -")
	}
	if f.DateTimePtr(nil) != nil {
		t.Fatalf("nil should stay nil")
	}
}

func TestNew_UnknownZoneFallsBack(t *testing.T) {
	f := New("Nowhere/Atlantis")
	_, off := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).In(f.Location()).Zone()
	if off != 7*3600 {
		t.Fatalf("offset = %d, want %d", off, 7*3600)
	}
}
