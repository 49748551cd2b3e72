package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError(t *testing.T) {
	err := NewValidation("invalid %s: %q", "date", "2024-13-01")
	wrapped := fmt.Errorf("create: %w", err)

	if !IsValidation(wrapped) {
		t.Error("包装后仍应识别为 ValidationError")
	}
	if IsNotFound(wrapped) {
		t.Error("ValidationError 不应被识别为 NotFoundError")
	}
	if got := Message(wrapped); got != `invalid date: "2024-13-01"` {
		t.Errorf("Message 错误: %s", got)
	}
}

func TestNotFoundError(t *testing.T) {
	err := fmt.Errorf("update: %w", NewNotFound("workday", "abc"))
	if !IsNotFound(err) {
		t.Error("包装后仍应识别为 NotFoundError")
	}
	if Message(err) != "" {
		t.Error("NotFoundError 不应暴露校验信息")
	}
	if err.Error() != "update: workday abc not found" {
		t.Errorf("Error() 文本错误: %s", err.Error())
	}
}

func TestPlainError(t *testing.T) {
	err := errors.New("disk full")
	if IsValidation(err) || IsNotFound(err) {
		t.Error("普通错误不应被归类")
	}
}
