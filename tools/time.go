package tools

import (
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate 解析 YYYY-MM-DD，按 UTC 当天零点返回
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// DayRange 返回所在 UTC 日期的 [零点, 次日零点) 区间，end 为开区间端点
func DayRange(t time.Time) (start, end time.Time) {
	t = t.UTC()
	start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// WeekRange 返回所在 ISO 周（周一零点到下周一零点，UTC）的区间，end 为开区间端点
func WeekRange(t time.Time) (start, end time.Time) {
	t = t.UTC()
	// time.Weekday 以周日为 0，换算成周一为 0
	offset := (int(t.Weekday()) + 6) % 7
	monday := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 7)
}
