package model

import (
	"math"
	"strings"
	"time"

	apperrors "workday-attendance/backend/pkg/errors"
)

// ── 存储格式 ──

const (
	DateLayout       = "2006-01-02"
	ClockLayout      = "15:04:05"
	InputClockLayout = "15:04"
)

// WorkDay 工作日考勤记录表，对应 workdays 表
// 日期与时间以文本存储，便于按字典序比较日期范围
type WorkDay struct {
	ID         string  `gorm:"column:id;type:text;primaryKey" json:"id"`
	Date       string  `gorm:"column:date;type:text"          json:"date"`       // YYYY-MM-DD
	StartTime  string  `gorm:"column:start_time;type:text"    json:"start_time"` // HH:MM:SS
	EndTime    string  `gorm:"column:end_time;type:text"      json:"end_time"`   // HH:MM:SS
	BreakHours float64 `gorm:"column:break_hours;type:real"   json:"break_hours"`
	WorkHours  float64 `gorm:"column:work_hours;type:real"    json:"work_hours"` // 派生值
	DriverName string  `gorm:"column:driver_name;type:text"   json:"driver_name"`
	Notes      string  `gorm:"column:notes;type:text"         json:"notes"`
}

// TableName 指定表名
func (WorkDay) TableName() string { return "workdays" }

// WorkDayInput 创建/更新记录时的已解析输入（除 ID 外的全部可变字段）
type WorkDayInput struct {
	Date       time.Time
	Start      time.Time // 仅使用时分秒
	End        time.Time // 仅使用时分秒
	Break      time.Duration
	DriverName string
	Notes      string
}

// NewWorkDay 校验输入并构造记录，ID 由调用方生成
func NewWorkDay(id string, in WorkDayInput) (*WorkDay, error) {
	wd := &WorkDay{ID: id}
	if err := wd.Apply(in); err != nil {
		return nil, err
	}
	return wd, nil
}

// Apply 用输入整体替换可变字段，ID 保持不变
// 校验失败时记录不做任何修改
func (w *WorkDay) Apply(in WorkDayInput) error {
	if in.Break < 0 {
		return apperrors.NewValidation("break hours cannot be negative")
	}
	work, err := ComputeWorkDuration(in.Date, in.Start, in.End, in.Break)
	if err != nil {
		return err
	}

	w.Date = in.Date.Format(DateLayout)
	w.StartTime = in.Start.Format(ClockLayout)
	w.EndTime = in.End.Format(ClockLayout)
	w.BreakHours = DurationToHours(in.Break)
	w.WorkHours = DurationToHours(work)
	w.DriverName = in.DriverName
	w.Notes = in.Notes
	return nil
}

// ═══════════════════════════════════════════════════════════
// ComputeWorkDuration 计算净工作时长
// ═══════════════════════════════════════════════════════════
//
// 开始、结束时间与 date 组合成两个时刻；结束早于开始视为跨午夜，
// 结束时刻只顺延一天。结果 = (结束 − 开始) − 休息，为负时返回 ValidationError。
// 输入只有时分，跨度必然小于 24 小时；结束等于开始按零时长处理。

func ComputeWorkDuration(date, start, end time.Time, brk time.Duration) (time.Duration, error) {
	startAt := combine(date, start)
	endAt := combine(date, end)
	if endAt.Before(startAt) {
		endAt = endAt.Add(24 * time.Hour)
	}

	work := endAt.Sub(startAt) - brk
	if work < 0 {
		return 0, apperrors.NewValidation("work hours cannot be negative")
	}
	return work, nil
}

func combine(date, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, time.UTC)
}

// ── 派生字段与类型化访问 ──

// weekdayNames 周一开头的阿拉伯语星期名
var weekdayNames = [7]string{
	"الإثنين",
	"الثلاثاء",
	"الأربعاء",
	"الخميس",
	"الجمعة",
	"السبت",
	"الأحد",
}

// WeekdayName 返回日期对应的阿拉伯语星期名
func WeekdayName(t time.Time) string {
	return weekdayNames[(int(t.Weekday())+6)%7]
}

// Weekday 由 Date 派生的星期名；日期无法解析时返回空串
func (w *WorkDay) Weekday() string {
	d, err := w.Day()
	if err != nil {
		return ""
	}
	return WeekdayName(d)
}

// Day 解析 Date；兼容旧数据中的 ISO 日期时间格式（取前 10 位）
func (w *WorkDay) Day() (time.Time, error) {
	s := strings.TrimSpace(w.Date)
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	return time.Parse(DateLayout, s)
}

// Start 解析开始时间
func (w *WorkDay) Start() (time.Time, error) { return parseStoredClock(w.StartTime) }

// End 解析结束时间
func (w *WorkDay) End() (time.Time, error) { return parseStoredClock(w.EndTime) }

// BreakDuration 休息时长
func (w *WorkDay) BreakDuration() time.Duration { return HoursToDuration(w.BreakHours) }

// WorkDuration 净工作时长
func (w *WorkDay) WorkDuration() time.Duration { return HoursToDuration(w.WorkHours) }

// StartArabic 12 小时制阿拉伯语开始时间
func (w *WorkDay) StartArabic() string {
	t, err := w.Start()
	if err != nil {
		return w.StartTime
	}
	return FormatClockArabic(t)
}

// EndArabic 12 小时制阿拉伯语结束时间
func (w *WorkDay) EndArabic() string {
	t, err := w.End()
	if err != nil {
		return w.EndTime
	}
	return FormatClockArabic(t)
}

// 旧数据可能只有 HH:MM
func parseStoredClock(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(ClockLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(InputClockLayout, s)
}

// ── 输入解析 ──

// ParseDate 解析 YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, apperrors.NewValidation("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// ParseClock 解析 HH:MM，也接受 HH:MM:SS
func ParseClock(s string) (time.Time, error) {
	t, err := parseStoredClock(s)
	if err != nil {
		return time.Time{}, apperrors.NewValidation("invalid time %q, expected HH:MM", s)
	}
	return t, nil
}

// ParseBreakHours 校验并转换休息小时数
func ParseBreakHours(h float64) (time.Duration, error) {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0, apperrors.NewValidation("invalid break hours")
	}
	if h < 0 {
		return 0, apperrors.NewValidation("break hours cannot be negative")
	}
	return HoursToDuration(h), nil
}

// ── 格式化 ──

// FormatClockArabic 12 小时制，去掉小时前导零，AM/PM 替换为 ص/م
func FormatClockArabic(t time.Time) string {
	s := t.Format("3:04 PM")
	s = strings.Replace(s, "AM", "ص", 1)
	return strings.Replace(s, "PM", "م", 1)
}

// HoursToDuration 小时数转 Duration（纳秒取整）
func HoursToDuration(h float64) time.Duration {
	return time.Duration(math.Round(h * float64(time.Hour)))
}

// DurationToHours Duration 转小时数
func DurationToHours(d time.Duration) float64 {
	return d.Hours()
}

// RoundHours 保留两位小数
func RoundHours(h float64) float64 {
	return math.Round(h*100) / 100
}
