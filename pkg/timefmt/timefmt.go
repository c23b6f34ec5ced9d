// Package timefmt renders timestamps for display, e.g. "18 Oktober 2025 16:30" in Asia/Jakarta.
package timefmt

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

const DefaultZone = "Asia/Jakarta"

var monthsID = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// Formatter converts instants to the fixed display zone and pattern.
type Formatter struct {
	loc *time.Location
}

// New loads zone; an unknown zone falls back to UTC+7.
func New(zone string) *Formatter {
	if zone == "" {
		zone = DefaultZone
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		loc = time.FixedZone("WIB", 7*60*60)
	}
	return &Formatter{loc: loc}
}

func (f *Formatter) Location() *time.Location { return f.loc }

// DateTime renders "dd MMMM yyyy HH:mm" with Indonesian month names.
func (f *Formatter) DateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	z := t.In(f.loc)
	return fmt.Sprintf("%02d %s %d %02d:%02d", z.Day(), monthsID[z.Month()-1], z.Year(), z.Hour(), z.Minute())
}

// Date renders "dd MMMM yyyy".
func (f *Formatter) Date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	z := t.In(f.loc)
	return fmt.Sprintf("%02d %s %d", z.Day(), monthsID[z.Month()-1], z.Year())
}

// DateTimePtr returns nil for a nil instant.
func (f *Formatter) DateTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := f.DateTime(*t)
	return &s
}
