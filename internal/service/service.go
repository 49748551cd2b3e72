package service

import (
	"go.uber.org/zap"

	"workday-attendance/backend/config"
	"workday-attendance/backend/internal/repository"
	"workday-attendance/backend/pkg/rtl"
)

// Service 所有 Service 的聚合入口
type Service struct {
	WorkDay WorkDayService
	Export  ExportService
}

// NewService 创建 Service 聚合
func NewService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) (*Service, error) {
	exportSvc, err := NewExportService(repo, &cfg.Export, rtl.Default, logger)
	if err != nil {
		return nil, err
	}
	return &Service{
		WorkDay: NewWorkDayService(repo, logger),
		Export:  exportSvc,
	}, nil
}
