package dto

// ── 考勤记录 DTO ──

// WorkDayRequest 创建/更新考勤记录的表单
// 字段以字符串接收，由 Service 层解析并返回可读的校验信息
type WorkDayRequest struct {
	Date       string `form:"date"        binding:"required"`
	StartTime  string `form:"start_time"  binding:"required"`
	EndTime    string `form:"end_time"    binding:"required"`
	BreakHours string `form:"break_hours" binding:"required"`
	DriverName string `form:"driver_name" binding:"max=200"`
	Notes      string `form:"notes"       binding:"max=2000"`
}

// WorkDayListRequest 列表过滤参数，全部可选
type WorkDayListRequest struct {
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
	DriverName string `form:"driver_name"`
}

// ExportRequest 导出表单：标题 + 与列表页相同的过滤条件
type ExportRequest struct {
	Title string `form:"title" binding:"required,max=200"`
	WorkDayListRequest
}

// ── 响应 ──

// WorkDayResponse 单条考勤记录
type WorkDayResponse struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"`
	Weekday       string  `json:"weekday"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	StartTimeText string  `json:"start_time_text"` // 12 小时制阿拉伯语
	EndTimeText   string  `json:"end_time_text"`
	BreakHours    float64 `json:"break_hours"`
	WorkHours     float64 `json:"work_hours"`
	DriverName    string  `json:"driver_name"`
	Notes         string  `json:"notes"`
}

// WorkDayListResponse 过滤后的记录与工时合计
type WorkDayListResponse struct {
	List           []WorkDayResponse `json:"list"`
	TotalWorkHours float64           `json:"total_work_hours"`
}
