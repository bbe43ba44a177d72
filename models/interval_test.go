package models

import (
	"testing"
	"time"

	apperrors "homestay/errors"
)

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 14, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"same interval", day(1), day(3), day(1), day(3), true},
		{"b inside a", day(1), day(10), day(3), day(4), true},
		{"partial overlap", day(1), day(5), day(4), day(8), true},
		{"back to back", day(1), day(3), day(3), day(5), false},
		{"back to back reversed", day(3), day(5), day(1), day(3), false},
		{"disjoint", day(1), day(2), day(5), day(6), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			if got := Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd); got != tt.want {
				t.Errorf("Overlaps() not symmetric, got %v", got)
			}
		})
	}
}

func TestValidateInterval(t *testing.T) {
	if err := ValidateInterval(day(1), day(2)); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	for _, tc := range [][2]time.Time{{day(2), day(2)}, {day(3), day(2)}, {{}, day(2)}} {
		err := ValidateInterval(tc[0], tc[1])
		if !apperrors.IsKind(err, apperrors.KindValidation) {
			t.Errorf("ValidateInterval(%v, %v) = %v, want validation error", tc[0], tc[1], err)
		}
	}
}

func TestNights(t *testing.T) {
	r := Reservation{CheckIn: day(1), CheckOut: day(4)}
	if got := r.Nights(); got != 3 {
		t.Errorf("Nights() = %d, want 3", got)
	}
	r.CheckOut = day(4).Add(2 * time.Hour)
	if got := r.Nights(); got != 4 {
		t.Errorf("Nights() = %d, want 4", got)
	}
}
