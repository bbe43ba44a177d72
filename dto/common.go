package dto

import (
	"strings"
	"time"

	apperrors "homestay/errors"
)

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Location múi giờ dùng để hiểu các mốc thời gian không kèm offset
var Location = time.UTC

// SetLocation đặt múi giờ mặc định cho việc parse ngày giờ
func SetLocation(loc *time.Location) {
	if loc != nil {
		Location = loc
	}
}

// ParseTime nhận RFC3339 hoặc ngày dạng 2006-01-02
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, Location); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperrors.Validation(apperrors.ErrCodeInvalidFormat, "Định dạng ngày giờ không hợp lệ: "+s)
}

// Timestamp bọc time.Time, chấp nhận nhiều định dạng trong JSON
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := ParseTime(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return t.Time.MarshalJSON()
}

// PageQuery tham số phân trang, page bắt đầu từ 0
type PageQuery struct {
	Page  int `form:"page" binding:"omitempty,min=0"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

const DefaultLimit = 10

func (p PageQuery) Normalize() PageQuery {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	return p
}
