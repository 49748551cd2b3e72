package handler

import (
	"workday-attendance/backend/config"
	"workday-attendance/backend/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	WorkDay *WorkDayHandler
	Export  *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(cfg *config.Config, svc *service.Service) *Handler {
	return &Handler{
		WorkDay: NewWorkDayHandler(svc.WorkDay, cfg.Export.Label),
		Export:  NewExportHandler(svc.Export),
	}
}
