package repository

import (
	"context"

	"gorm.io/gorm"

	"workday-attendance/backend/internal/model"
)

// WorkDayFilter 列表查询条件，零值字段表示不过滤，各条件之间为 AND
type WorkDayFilter struct {
	DateStart          string // YYYY-MM-DD，含当天
	DateEnd            string // YYYY-MM-DD，含当天（内部转为 < 次日）
	DriverNameContains string // 区分大小写的子串匹配
}

// WorkDayRepository 考勤记录数据访问接口
type WorkDayRepository interface {
	Create(ctx context.Context, wd *model.WorkDay) error
	GetByID(ctx context.Context, id string) (*model.WorkDay, error)
	List(ctx context.Context, filter WorkDayFilter) ([]model.WorkDay, error)
	Update(ctx context.Context, wd *model.WorkDay) error
	Delete(ctx context.Context, id string) error
}

type workDayRepo struct {
	db *gorm.DB
}

// NewWorkDayRepo 创建 WorkDayRepository 实例
func NewWorkDayRepo(db *gorm.DB) WorkDayRepository {
	return &workDayRepo{db: db}
}

// Create 插入记录；主键冲突时由数据库返回错误
func (r *workDayRepo) Create(ctx context.Context, wd *model.WorkDay) error {
	return r.db.WithContext(ctx).Create(wd).Error
}

func (r *workDayRepo) GetByID(ctx context.Context, id string) (*model.WorkDay, error) {
	var wd model.WorkDay
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&wd).Error
	if err != nil {
		return nil, err
	}
	return &wd, nil
}

func (r *workDayRepo) List(ctx context.Context, filter WorkDayFilter) ([]model.WorkDay, error) {
	var workdays []model.WorkDay
	err := r.db.WithContext(ctx).
		Scopes(filterScopes(r.db.Dialector.Name(), filter)...).
		Order("date ASC, start_time ASC").
		Find(&workdays).Error
	return workdays, err
}

// Update 单条语句整体替换可变字段；未命中任何行时返回 gorm.ErrRecordNotFound
func (r *workDayRepo) Update(ctx context.Context, wd *model.WorkDay) error {
	res := r.db.WithContext(ctx).
		Model(&model.WorkDay{}).
		Where("id = ?", wd.ID).
		Updates(map[string]interface{}{
			"date":        wd.Date,
			"start_time":  wd.StartTime,
			"end_time":    wd.EndTime,
			"break_hours": wd.BreakHours,
			"work_hours":  wd.WorkHours,
			"driver_name": wd.DriverName,
			"notes":       wd.Notes,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete 物理删除；记录不存在时不报错
func (r *workDayRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.WorkDay{}).Error
}
