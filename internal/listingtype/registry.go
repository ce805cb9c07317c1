package listingtype

import (
	"fmt"

	"gorm.io/gorm"
)

// Registry 进程级类型目录：启动时注册一次，之后只读
// 不加锁，依赖启动顺序保证注册完成后才开始服务请求
type Registry struct {
	handlers map[string]TypeHandler
	order    []string // 保持注册顺序，schema 列表输出稳定
}

// NewRegistry 创建空注册表
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]TypeHandler),
	}
}

// Register 注册一个 handler，类型重复是启动期硬错误
func (r *Registry) Register(h TypeHandler) error {
	t := h.Type()
	if _, exists := r.handlers[t]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateType, t)
	}
	r.handlers[t] = h
	r.order = append(r.order, t)
	return nil
}

// Get 按类型标识取 handler，热路径 O(1)
func (r *Registry) Get(listingType string) (TypeHandler, error) {
	h, ok := r.handlers[listingType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, listingType)
	}
	return h, nil
}

// Has 类型是否已注册
func (r *Registry) Has(listingType string) bool {
	_, ok := r.handlers[listingType]
	return ok
}

// Types 全部已注册类型标识，按注册顺序
func (r *Registry) Types() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Schemas 全部类型的 schema，按注册顺序
func (r *Registry) Schemas() []TypeSchema {
	out := make([]TypeSchema, 0, len(r.order))
	for _, t := range r.order {
		out = append(out, r.handlers[t].Schema())
	}
	return out
}

// BuildRegistry 注册全部已知类型，进程启动时在组合根调用一次
func BuildRegistry(db *gorm.DB) (*Registry, error) {
	r := NewRegistry()
	handlers := []TypeHandler{
		NewYachtHandler(db),
		NewPartHandler(db),
		NewMarinaHandler(db),
		NewCrewHandler(db),
		NewEquipmentHandler(db),
		NewServiceHandler(db),
		NewStorageHandler(db),
		NewInsuranceHandler(db),
		NewSurveyHandler(db),
		NewSecondhandHandler(db),
	}
	for _, h := range handlers {
		if err := r.Register(h); err != nil {
			return nil, err
		}
	}
	return r, nil
}
