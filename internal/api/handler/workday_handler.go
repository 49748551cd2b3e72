package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"workday-attendance/backend/internal/dto"
	"workday-attendance/backend/internal/service"
	"workday-attendance/backend/internal/web"
	apperrors "workday-attendance/backend/pkg/errors"
	"workday-attendance/backend/pkg/response"
)

// exportAction 列表页上的导出按钮
type exportAction struct {
	Path  string
	Label string
}

var exportActions = []exportAction{
	{Path: "/export_excel", Label: "تصدير Excel"},
	{Path: "/export_pdf", Label: "تصدير PDF"},
}

// WorkDayHandler 考勤记录 HTTP 处理器
type WorkDayHandler struct {
	workDaySvc service.WorkDayService
	label      string
}

// NewWorkDayHandler 创建 WorkDayHandler
func NewWorkDayHandler(workDaySvc service.WorkDayService, label string) *WorkDayHandler {
	return &WorkDayHandler{workDaySvc: workDaySvc, label: label}
}

// Home 列表页
// GET /?start_date=&end_date=&driver_name=
func (h *WorkDayHandler) Home(c *gin.Context) {
	var req dto.WorkDayListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParam, "invalid query parameters")
		return
	}

	result, err := h.workDaySvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleWorkDayError(c, err)
		return
	}

	c.HTML(http.StatusOK, web.HomeTemplate, gin.H{
		"Label":         h.label,
		"Filter":        req,
		"Result":        result,
		"ExportActions": exportActions,
	})
}

// ListWorkDays 列表 JSON
// GET /api/v1/workdays?start_date=&end_date=&driver_name=
func (h *WorkDayHandler) ListWorkDays(c *gin.Context) {
	var req dto.WorkDayListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParam, "invalid query parameters")
		return
	}

	result, err := h.workDaySvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleWorkDayError(c, err)
		return
	}

	response.OK(c, result)
}

// CreateWorkDay 新建考勤记录
// POST /create
func (h *WorkDayHandler) CreateWorkDay(c *gin.Context) {
	var req dto.WorkDayRequest
	if err := c.ShouldBind(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidParam, "invalid form fields", err.Error())
		return
	}

	if _, err := h.workDaySvc.Create(c.Request.Context(), &req); err != nil {
		h.handleWorkDayError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// UpdateWorkDay 整体替换记录的可变字段
// POST /update/:id
func (h *WorkDayHandler) UpdateWorkDay(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, response.CodeInvalidParam, "id is required")
		return
	}

	var req dto.WorkDayRequest
	if err := c.ShouldBind(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidParam, "invalid form fields", err.Error())
		return
	}

	if _, err := h.workDaySvc.Update(c.Request.Context(), id, &req); err != nil {
		h.handleWorkDayError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// DeleteWorkDay 删除记录，不存在时同样重定向
// POST /delete/:id
func (h *WorkDayHandler) DeleteWorkDay(c *gin.Context) {
	if err := h.workDaySvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleWorkDayError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (h *WorkDayHandler) handleWorkDayError(c *gin.Context, err error) {
	switch {
	case apperrors.IsValidation(err):
		response.BadRequest(c, response.CodeWorkDayInvalid, apperrors.Message(err))
	case apperrors.IsNotFound(err):
		response.NotFound(c, response.CodeWorkDayMissing, err.Error())
	default:
		response.InternalError(c)
	}
}
