package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"workday-attendance/backend/internal/dto"
	"workday-attendance/backend/internal/model"
	"workday-attendance/backend/internal/repository"
	apperrors "workday-attendance/backend/pkg/errors"
)

// WorkDayService 考勤记录业务接口
type WorkDayService interface {
	Create(ctx context.Context, req *dto.WorkDayRequest) (*dto.WorkDayResponse, error)
	List(ctx context.Context, req *dto.WorkDayListRequest) (*dto.WorkDayListResponse, error)
	Update(ctx context.Context, id string, req *dto.WorkDayRequest) (*dto.WorkDayResponse, error)
	Delete(ctx context.Context, id string) error
}

type workDayService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewWorkDayService 创建 WorkDayService 实例
func NewWorkDayService(repo *repository.Repository, logger *zap.Logger) WorkDayService {
	return &workDayService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *workDayService) Create(ctx context.Context, req *dto.WorkDayRequest) (*dto.WorkDayResponse, error) {
	in, err := parseWorkDayInput(req)
	if err != nil {
		return nil, err
	}

	wd, err := model.NewWorkDay(uuid.New().String(), in)
	if err != nil {
		return nil, err
	}

	if err := s.repo.WorkDay.Create(ctx, wd); err != nil {
		s.logger.Error("创建考勤记录失败", zap.String("date", wd.Date), zap.Error(err))
		return nil, err
	}

	s.logger.Info("考勤记录已创建",
		zap.String("id", wd.ID),
		zap.String("date", wd.Date),
		zap.Float64("work_hours", wd.WorkHours),
	)
	return toWorkDayResponse(wd), nil
}

// ────────────────────── List ──────────────────────

// List 每次调用都基于本次过滤结果重新计算合计工时
func (s *workDayService) List(ctx context.Context, req *dto.WorkDayListRequest) (*dto.WorkDayListResponse, error) {
	filter, err := buildFilter(req)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.WorkDay.List(ctx, filter)
	if err != nil {
		s.logger.Error("查询考勤记录失败", zap.Any("filter", filter), zap.Error(err))
		return nil, err
	}

	resp := &dto.WorkDayListResponse{List: make([]dto.WorkDayResponse, 0, len(records))}
	for i := range records {
		resp.List = append(resp.List, *toWorkDayResponse(&records[i]))
		resp.TotalWorkHours += records[i].WorkHours
	}
	return resp, nil
}

// ────────────────────── Update ──────────────────────

func (s *workDayService) Update(ctx context.Context, id string, req *dto.WorkDayRequest) (*dto.WorkDayResponse, error) {
	in, err := parseWorkDayInput(req)
	if err != nil {
		return nil, err
	}

	wd, err := model.NewWorkDay(id, in)
	if err != nil {
		return nil, err
	}

	if err := s.repo.WorkDay.Update(ctx, wd); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("workday", id)
		}
		s.logger.Error("更新考勤记录失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toWorkDayResponse(wd), nil
}

// ────────────────────── Delete ──────────────────────

// Delete 幂等：记录不存在时同样视为成功
func (s *workDayService) Delete(ctx context.Context, id string) error {
	if err := s.repo.WorkDay.Delete(ctx, id); err != nil {
		s.logger.Error("删除考勤记录失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部方法 ──

func parseWorkDayInput(req *dto.WorkDayRequest) (model.WorkDayInput, error) {
	date, err := model.ParseDate(req.Date)
	if err != nil {
		return model.WorkDayInput{}, err
	}
	start, err := model.ParseClock(req.StartTime)
	if err != nil {
		return model.WorkDayInput{}, err
	}
	end, err := model.ParseClock(req.EndTime)
	if err != nil {
		return model.WorkDayInput{}, err
	}

	hours, err := strconv.ParseFloat(strings.TrimSpace(req.BreakHours), 64)
	if err != nil {
		return model.WorkDayInput{}, apperrors.NewValidation("invalid break hours %q", req.BreakHours)
	}
	brk, err := model.ParseBreakHours(hours)
	if err != nil {
		return model.WorkDayInput{}, err
	}

	return model.WorkDayInput{
		Date:       date,
		Start:      start,
		End:        end,
		Break:      brk,
		DriverName: req.DriverName,
		Notes:      req.Notes,
	}, nil
}

// buildFilter 校验并规范化过滤参数；空值表示不过滤
func buildFilter(req *dto.WorkDayListRequest) (repository.WorkDayFilter, error) {
	var f repository.WorkDayFilter
	if req == nil {
		return f, nil
	}

	if s := strings.TrimSpace(req.StartDate); s != "" {
		d, err := model.ParseDate(s)
		if err != nil {
			return f, err
		}
		f.DateStart = d.Format(model.DateLayout)
	}
	if s := strings.TrimSpace(req.EndDate); s != "" {
		d, err := model.ParseDate(s)
		if err != nil {
			return f, err
		}
		f.DateEnd = d.Format(model.DateLayout)
	}
	f.DriverNameContains = req.DriverName
	return f, nil
}

func toWorkDayResponse(wd *model.WorkDay) *dto.WorkDayResponse {
	return &dto.WorkDayResponse{
		ID:            wd.ID,
		Date:          displayDate(wd),
		Weekday:       wd.Weekday(),
		StartTime:     wd.StartTime,
		EndTime:       wd.EndTime,
		StartTimeText: wd.StartArabic(),
		EndTimeText:   wd.EndArabic(),
		BreakHours:    wd.BreakHours,
		WorkHours:     wd.WorkHours,
		DriverName:    wd.DriverName,
		Notes:         wd.Notes,
	}
}
