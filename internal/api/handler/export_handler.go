package handler

import (
	"bytes"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"workday-attendance/backend/internal/dto"
	"workday-attendance/backend/internal/service"
	apperrors "workday-attendance/backend/pkg/errors"
	"workday-attendance/backend/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportExcel 导出过滤后的记录为 Excel
// POST /export_excel
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	var req dto.ExportRequest
	if err := c.ShouldBind(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeExportInvalid, "invalid export parameters", err.Error())
		return
	}

	buf, filename, err := h.exportSvc.ExportExcel(c.Request.Context(), &req)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeAttachment(c, buf, filename, contentTypeXLSX)
}

// ExportPDF 导出过滤后的记录为 PDF
// POST /export_pdf
func (h *ExportHandler) ExportPDF(c *gin.Context) {
	var req dto.ExportRequest
	if err := c.ShouldBind(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeExportInvalid, "invalid export parameters", err.Error())
		return
	}

	buf, filename, err := h.exportSvc.ExportPDF(c.Request.Context(), &req)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeAttachment(c, buf, filename, contentTypePDF)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case apperrors.IsValidation(err):
		response.BadRequest(c, response.CodeExportInvalid, apperrors.Message(err))
	default:
		response.InternalError(c)
	}
}

// writeAttachment 设置下载响应头；文件名按 RFC 5987 百分号编码
func writeAttachment(c *gin.Context, buf *bytes.Buffer, filename, contentType string) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+EncodeFilename(filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// EncodeFilename 百分号编码文件名，空格编码为 %20
func EncodeFilename(name string) string {
	return strings.ReplaceAll(url.QueryEscape(name), "+", "%20")
}
