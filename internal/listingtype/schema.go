package listingtype

// FieldKind 字段类型，给前端渲染表单/筛选器用
type FieldKind string

const (
	FieldString     FieldKind = "string"
	FieldText       FieldKind = "text"
	FieldInt        FieldKind = "int"
	FieldDecimal    FieldKind = "decimal"
	FieldBool       FieldKind = "bool"
	FieldEnum       FieldKind = "enum"
	FieldDate       FieldKind = "date" // YYYY-MM-DD
	FieldStringList FieldKind = "string_list"
	FieldJSON       FieldKind = "json"
)

// FieldSpec 单个字段的声明式描述，校验规则和表单元数据共用一份
type FieldSpec struct {
	Name     string    `json:"name"`
	Kind     FieldKind `json:"kind"`
	Required bool      `json:"required"`

	// 数值边界，nil 表示不限
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`

	// 字符串长度上限，0 表示不限
	MaxLen int `json:"max_len,omitempty"`

	// 枚举可选值
	Options []string `json:"options,omitempty"`
}

// TypeSchema 一个刊登类型的机器可读描述
type TypeSchema struct {
	Type   string      `json:"type"`
	Label  string      `json:"label"`
	Fields []FieldSpec `json:"fields"`
	// 本类型支持的筛选参数名
	Filters []string `json:"filters"`
}

// f64 边界值快捷写法
func f64(v float64) *float64 {
	return &v
}
