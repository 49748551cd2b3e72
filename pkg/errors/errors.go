package errors

import (
	"errors"
	"fmt"
)

// ── 错误分类 ──
//
// ValidationError：输入不合法（时间格式错误、工作时长为负等），对外表现为 400
// NotFoundError：目标记录不存在，对外表现为 404（删除操作除外，删除不存在的记录视为成功）
// 其余错误（存储 I/O、文档生成）一律按服务端错误处理，不做自动重试

// ValidationError 输入校验失败，Message 可直接展示给调用方
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidation 创建 ValidationError
func NewValidation(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError 记录不存在
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// NewNotFound 创建 NotFoundError
func NewNotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// IsValidation 判断错误链中是否包含 ValidationError
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsNotFound 判断错误链中是否包含 NotFoundError
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// Message 提取可展示给客户端的错误信息；非 ValidationError 返回空串
func Message(err error) string {
	var v *ValidationError
	if errors.As(err, &v) {
		return v.Message
	}
	return ""
}
