package router

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"workday-attendance/backend/config"
	"workday-attendance/backend/internal/api/handler"
	"workday-attendance/backend/internal/api/middleware"
	"workday-attendance/backend/internal/web"
	"workday-attendance/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 可为 nil（导出限流降级放行）
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, db *gorm.DB, logger *zap.Logger) (*gin.Engine, error) {
	r := gin.New()

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("解析页面模板失败: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── 健康检查 ──
	r.GET("/health", healthCheck(db))

	// ── 页面与表单 ──
	r.GET("/", h.WorkDay.Home)
	r.POST("/create", h.WorkDay.CreateWorkDay)
	r.POST("/update/:id", h.WorkDay.UpdateWorkDay)
	r.POST("/delete/:id", h.WorkDay.DeleteWorkDay)

	// ── 导出（限流）──
	exportLimit := middleware.RateLimit(rdb, cfg.Export.RateLimit, cfg.Export.RateWindow, logger)
	r.POST("/export_excel", exportLimit, h.Export.ExportExcel)
	r.POST("/export_pdf", exportLimit, h.Export.ExportPDF)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		v1.GET("/workdays", h.WorkDay.ListWorkDays)
	}

	return r, nil
}

// healthCheck 数据库不可达时返回 503
func healthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			sqlDB, err := db.DB()
			if err == nil {
				err = sqlDB.PingContext(ctx)
			}
			if err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
