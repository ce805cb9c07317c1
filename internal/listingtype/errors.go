package listingtype

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownType 注册表未命中，属于配置/编程错误而不是用户输入错误
var ErrUnknownType = errors.New("unknown listing type")

// ErrDuplicateType 同一类型重复注册
var ErrDuplicateType = errors.New("listing type already registered")

// ==================== 字段级校验错误 ====================

// FieldError 单个字段的校验错误
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors 一次校验产生的全部字段错误，不是遇错即停
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add 追加一条字段错误
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, FieldError{Field: field, Message: message})
}
