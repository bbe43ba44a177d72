package services

import (
	"math"
	"testing"

	"homestay/models"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Nguyễn Văn Ánh", "nguyen van anh"},
		{"  Đà   Lạt ", "da lat"},
		{"HỒ CHÍ MINH", "ho chi minh"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeText(tt.in); got != tt.want {
			t.Errorf("NormalizeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSimilarity(t *testing.T) {
	if s := Similarity("abc", "abc"); s != 1 {
		t.Fatalf("identical strings: %v", s)
	}
	if s := Similarity("", ""); s != 1 {
		t.Fatalf("empty strings: %v", s)
	}
	if s := Similarity("abcd", "abcde"); math.Abs(s-0.8) > 1e-9 {
		t.Fatalf("one insertion in five: %v", s)
	}
}

func TestRankGuests(t *testing.T) {
	email := "mai.tran@example.com"
	guests := []models.Guest{
		{ID: 1, FullName: "Trần Thị Mai", Email: &email},
		{ID: 2, FullName: "Nguyễn Văn An", PhoneNumber: "0901234567"},
		{ID: 3, FullName: "Lê Hoàng Nam"},
	}

	got := RankGuests("nguyen van", guests)
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("accent-insensitive match failed: %+v", got)
	}

	got = RankGuests("Nguyen Van Ann", guests)
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("fuzzy match failed: %+v", got)
	}

	got = RankGuests("0901234", guests)
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("phone match failed: %+v", got)
	}

	got = RankGuests("mai.tran", guests)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("email match failed: %+v", got)
	}

	if got := RankGuests("zzzz", guests); len(got) != 0 {
		t.Fatalf("expected no match, got %+v", got)
	}
	if got := RankGuests("", guests); len(got) != 3 {
		t.Fatalf("empty query should keep all guests")
	}
}

func TestClosestMatch(t *testing.T) {
	candidates := []string{"Đà Lạt", "Hà Nội", "Hội An"}
	if got := ClosestMatch("da lat", candidates); got != "Đà Lạt" {
		t.Fatalf("expected Đà Lạt, got %q", got)
	}
	if got := ClosestMatch("anything", nil); got != "" {
		t.Fatalf("expected empty suggestion, got %q", got)
	}
}
