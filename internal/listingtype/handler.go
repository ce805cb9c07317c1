package listingtype

import (
	"context"

	"gorm.io/gorm"
)

// Scope 查询谓词，直接作用在 listings 主查询上
// 类型特有谓词必须通过 listing_id 外键限定到自己的扩展表
type Scope = func(*gorm.DB) *gorm.DB

// ==================== 输入/输出 ====================

// Envelope 公共信封字段，所有类型完全一致的校验规则
type Envelope struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Price         string `json:"price"` // 十进制字符串，如 "450000.00"
	Currency      string `json:"currency"`
	Location      string `json:"location"`
	CategoryID    int64  `json:"category_id"`
	SubcategoryID int64  `json:"subcategory_id"`
}

// Input 创建/校验输入：信封 + 类型特有字段
type Input struct {
	Envelope
	Attributes map[string]interface{} `json:"attributes"`
}

// Validated 校验通过后的数据
type Validated struct {
	Envelope    Envelope
	PriceAmount int64                  // 最小货币单位
	Attributes  map[string]interface{} // 已强转的类型特有字段
}

// ==================== TypeHandler ====================

// TypeHandler 每个刊登类型实现一次：校验、扩展表读写、筛选谓词、自描述 schema
// 实现必须无状态（除持有 db），注册后并发只读
type TypeHandler interface {
	// Type 类型标识，等于 Listing.ListingType 的取值
	Type() string

	// Schema 自描述元数据，纯函数，任何时刻可调用
	Schema() TypeSchema

	// Validate 在公共信封规则之上应用类型特有规则
	// 用户输入问题一律走 ValidationErrors，不抛硬错误
	Validate(in Input) (*Validated, ValidationErrors)

	// CreateExtension 写入扩展记录，调用方保证 baseID 尚无扩展记录
	CreateExtension(ctx context.Context, baseID int64, attrs map[string]interface{}) error

	// GetExtension 按外键查扩展记录，不存在返回 (nil, nil)
	GetExtension(ctx context.Context, baseID int64) (map[string]interface{}, error)

	// UpdateExtension 只更新本类型认识的字段，不认识的静默忽略
	UpdateExtension(ctx context.Context, baseID int64, partial map[string]interface{}) error

	// FilterScopes 把查询参数翻译成扩展表谓词，不认识的参数忽略
	FilterScopes(params map[string]string) []Scope

	// WithTx 返回绑定到事务的 handler
	WithTx(tx *gorm.DB) TypeHandler
}
