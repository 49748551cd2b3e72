package repository

import (
	"time"

	"gorm.io/gorm"

	"workday-attendance/backend/internal/model"
)

// filterScopes 将可选过滤条件组合为 GORM scope 列表，所有值均走参数绑定
// DateStart/DateEnd 需已通过 model.ParseDate 校验
func filterScopes(dialect string, f WorkDayFilter) []func(*gorm.DB) *gorm.DB {
	var scopes []func(*gorm.DB) *gorm.DB

	if f.DateStart != "" {
		start := f.DateStart
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("date >= ?", start)
		})
	}
	if f.DateEnd != "" {
		// date < end+1 天，保证结束日期整天包含在内
		end := nextDay(f.DateEnd)
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("date < ?", end)
		})
	}
	if f.DriverNameContains != "" {
		name := f.DriverNameContains
		expr := substringExpr(dialect)
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where(expr, name)
		})
	}

	return scopes
}

// substringExpr 区分大小写的子串匹配
// SQLite 的 LIKE 对 ASCII 不区分大小写且 % _ 需要转义，因此改用位置函数
func substringExpr(dialect string) string {
	if dialect == "postgres" {
		return "strpos(driver_name, ?) > 0"
	}
	return "instr(driver_name, ?) > 0"
}

func nextDay(date string) string {
	d, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return date
	}
	return d.AddDate(0, 0, 1).Format(model.DateLayout)
}
