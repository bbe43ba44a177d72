package services

import (
	"sort"
	"strings"

	"homestay/models"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// MinGuestScore ngưỡng tương đồng tối thiểu khi tìm khách gần đúng
const MinGuestScore = 0.7

// NormalizeText bỏ dấu tiếng Việt, chuyển về chữ thường
func NormalizeText(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ToLower(unidecode.Unidecode(input))
	return strings.Join(strings.Fields(input), " ")
}

// Similarity tính độ tương đồng (0..1) giữa hai chuỗi đã chuẩn hóa
func Similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 1.0
	}
	distance := levenshtein.DistanceForStrings(ra, rb, levenshtein.DefaultOptions)
	return 1.0 - float64(distance)/float64(maxLen)
}

func guestScore(query string, g models.Guest) float64 {
	name := NormalizeText(g.FullName)
	if strings.Contains(name, query) || (g.PhoneNumber != "" && strings.Contains(g.PhoneNumber, query)) {
		return 1.0
	}
	if g.Email != nil && strings.Contains(strings.ToLower(*g.Email), query) {
		return 1.0
	}

	best := Similarity(query, name)
	for _, word := range strings.Fields(name) {
		if s := Similarity(query, word); s > best {
			best = s
		}
	}
	return best
}

// RankGuests lọc và sắp xếp khách theo độ khớp với query, không phân biệt dấu
func RankGuests(query string, guests []models.Guest) []models.Guest {
	q := NormalizeText(query)
	if q == "" {
		return guests
	}

	type scored struct {
		guest models.Guest
		score float64
	}
	var matches []scored
	for _, g := range guests {
		if score := guestScore(q, g); score >= MinGuestScore {
			matches = append(matches, scored{g, score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].guest.FullName < matches[j].guest.FullName
	})

	out := make([]models.Guest, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.guest)
	}
	return out
}

// ClosestMatch gợi ý giá trị gần nhất với query trong candidates ("có phải bạn muốn tìm")
func ClosestMatch(query string, candidates []string) string {
	original := make(map[string]string, len(candidates))
	keys := make([]string, 0, len(candidates))
	for _, c := range candidates {
		key := NormalizeText(c)
		if key == "" {
			continue
		}
		if _, ok := original[key]; !ok {
			original[key] = c
			keys = append(keys, key)
		}
	}
	q := NormalizeText(query)
	if len(keys) == 0 || q == "" {
		return ""
	}
	if c, ok := original[q]; ok {
		return c
	}

	cm := closestmatch.New(keys, []int{2, 3})
	return original[cm.Closest(q)]
}
