package listingtype

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"marinemarket_v1/internal/model"
)

// 公共信封边界，所有类型完全一致
const (
	TitleMinLen       = 3
	TitleMaxLen       = 200
	DescriptionMaxLen = 5000
	LocationMaxLen    = 200
	MaxPriceMajor     = 9_999_999_999 // 主货币单位上限
	PriceDivisor      = 100
)

// ==================== 价格解析 ====================

// ParsePrice 把十进制字符串转成最小货币单位
// 只接受最多两位小数，如 "450000"、"1250.50"
func ParsePrice(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("price is required")
	}

	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
		// 小数点后必须是 1-2 位数字，"1250." 不算合法价格
		if !priceDigits(fracPart) || len(fracPart) > 2 {
			return 0, fmt.Errorf("invalid price format")
		}
	}
	// 整数部分只认纯数字，strconv 宽容的 "+12" 这类写法一律拒绝
	if !priceDigits(intPart) {
		return 0, fmt.Errorf("invalid price format")
	}

	// 先卡上限再乘 divisor，超长数字串不会绕过边界检查
	major, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil || major > MaxPriceMajor {
		return 0, fmt.Errorf("must be at most %d", int64(MaxPriceMajor))
	}

	minor := int64(0)
	if fracPart != "" {
		minor, _ = strconv.ParseInt(fracPart, 10, 64)
		if len(fracPart) == 1 {
			minor *= 10
		}
	}

	return major*PriceDivisor + minor, nil
}

// priceDigits 非空且全为 ASCII 数字
func priceDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// FormatPrice 最小货币单位转回十进制字符串，保证无损往返
func FormatPrice(amount, divisor int64) string {
	if divisor <= 1 {
		return strconv.FormatInt(amount, 10)
	}
	return fmt.Sprintf("%d.%02d", amount/divisor, amount%divisor)
}

// ==================== 公共信封校验 ====================

// ValidateEnvelope 校验公共信封字段，返回价格的最小货币单位值
// 每个 handler 的 Validate 都先走这里，保证 10+ 类型行为一致
func ValidateEnvelope(env Envelope) (int64, ValidationErrors) {
	var errs ValidationErrors

	titleLen := utf8.RuneCountInString(strings.TrimSpace(env.Title))
	if titleLen < TitleMinLen || titleLen > TitleMaxLen {
		errs.Add("title", fmt.Sprintf("must be %d-%d characters", TitleMinLen, TitleMaxLen))
	}
	if utf8.RuneCountInString(env.Description) > DescriptionMaxLen {
		errs.Add("description", fmt.Sprintf("must be at most %d characters", DescriptionMaxLen))
	}
	if utf8.RuneCountInString(env.Location) > LocationMaxLen {
		errs.Add("location", fmt.Sprintf("must be at most %d characters", LocationMaxLen))
	}
	if !model.ValidCurrency(env.Currency) {
		errs.Add("currency", "must be one of TRY, USD, EUR")
	}

	amount, err := ParsePrice(env.Price)
	if err != nil {
		errs.Add("price", err.Error())
	} else if amount <= 0 {
		errs.Add("price", "must be greater than zero")
	} else if amount > MaxPriceMajor*PriceDivisor {
		errs.Add("price", fmt.Sprintf("must be at most %d", int64(MaxPriceMajor)))
	}

	return amount, errs
}

// EnvelopeUpdate 部分更新的信封字段，nil 表示未提供
type EnvelopeUpdate struct {
	Title         *string
	Description   *string
	Price         *string
	Currency      *string
	Location      *string
	CategoryID    *int64
	SubcategoryID *int64
}

// ValidateEnvelopeUpdate 只校验出现的信封字段，返回可直接落库的列映射
// 规则与 ValidateEnvelope 完全一致，保证创建/更新口径统一
func ValidateEnvelopeUpdate(u EnvelopeUpdate) (map[string]interface{}, ValidationErrors) {
	var errs ValidationErrors
	cols := make(map[string]interface{})

	if u.Title != nil {
		n := utf8.RuneCountInString(strings.TrimSpace(*u.Title))
		if n < TitleMinLen || n > TitleMaxLen {
			errs.Add("title", fmt.Sprintf("must be %d-%d characters", TitleMinLen, TitleMaxLen))
		} else {
			cols["title"] = *u.Title
		}
	}
	if u.Description != nil {
		if utf8.RuneCountInString(*u.Description) > DescriptionMaxLen {
			errs.Add("description", fmt.Sprintf("must be at most %d characters", DescriptionMaxLen))
		} else {
			cols["description"] = *u.Description
		}
	}
	if u.Price != nil {
		amount, err := ParsePrice(*u.Price)
		switch {
		case err != nil:
			errs.Add("price", err.Error())
		case amount <= 0:
			errs.Add("price", "must be greater than zero")
		case amount > MaxPriceMajor*PriceDivisor:
			errs.Add("price", fmt.Sprintf("must be at most %d", int64(MaxPriceMajor)))
		default:
			cols["price_amount"] = amount
		}
	}
	if u.Currency != nil {
		if !model.ValidCurrency(*u.Currency) {
			errs.Add("currency", "must be one of TRY, USD, EUR")
		} else {
			cols["currency"] = *u.Currency
		}
	}
	if u.Location != nil {
		if utf8.RuneCountInString(*u.Location) > LocationMaxLen {
			errs.Add("location", fmt.Sprintf("must be at most %d characters", LocationMaxLen))
		} else {
			cols["location"] = *u.Location
		}
	}
	if u.CategoryID != nil {
		cols["category_id"] = *u.CategoryID
	}
	if u.SubcategoryID != nil {
		cols["subcategory_id"] = *u.SubcategoryID
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return cols, nil
}

// ==================== 类型特有字段校验 ====================

// CheckFields 按 FieldSpec 声明校验并强转类型特有字段
// partial=true 时跳过 required 检查（部分更新场景），只校验出现的字段
// raw 里 spec 没声明的键静默忽略
func CheckFields(specs []FieldSpec, raw map[string]interface{}, partial bool) (map[string]interface{}, ValidationErrors) {
	var errs ValidationErrors
	out := make(map[string]interface{}, len(specs))

	for _, spec := range specs {
		val, present := raw[spec.Name]
		if !present || val == nil {
			if spec.Required && !partial {
				errs.Add(spec.Name, "is required")
			}
			continue
		}

		coerced, err := coerceField(spec, val)
		if err != "" {
			errs.Add(spec.Name, err)
			continue
		}
		out[spec.Name] = coerced
	}

	return out, errs
}

// coerceField 单字段强转 + 边界检查，返回错误描述（空串表示通过）
func coerceField(spec FieldSpec, val interface{}) (interface{}, string) {
	switch spec.Kind {
	case FieldString, FieldText:
		s, ok := val.(string)
		if !ok {
			return nil, "must be a string"
		}
		if spec.Required && strings.TrimSpace(s) == "" {
			return nil, "is required"
		}
		if spec.MaxLen > 0 && utf8.RuneCountInString(s) > spec.MaxLen {
			return nil, fmt.Sprintf("must be at most %d characters", spec.MaxLen)
		}
		return s, ""

	case FieldEnum:
		s, ok := val.(string)
		if !ok {
			return nil, "must be a string"
		}
		for _, opt := range spec.Options {
			if s == opt {
				return s, ""
			}
		}
		return nil, "must be one of " + strings.Join(spec.Options, ", ")

	case FieldInt:
		n, ok := asInt(val)
		if !ok {
			return nil, "must be an integer"
		}
		if msg := checkBounds(spec, float64(n)); msg != "" {
			return nil, msg
		}
		return n, ""

	case FieldDecimal:
		f, ok := asFloat(val)
		if !ok {
			return nil, "must be a number"
		}
		if msg := checkBounds(spec, f); msg != "" {
			return nil, msg
		}
		return f, ""

	case FieldBool:
		b, ok := val.(bool)
		if !ok {
			return nil, "must be a boolean"
		}
		return b, ""

	case FieldDate:
		s, ok := val.(string)
		if !ok {
			return nil, "must be a date string"
		}
		if _, err := time.Parse("2006-01-02", s); err != nil {
			return nil, "must be a date in YYYY-MM-DD format"
		}
		return s, ""

	case FieldStringList:
		list, ok := asStringList(val)
		if !ok {
			return nil, "must be a list of strings"
		}
		if spec.MaxLen > 0 && len(list) > spec.MaxLen {
			return nil, fmt.Sprintf("must contain at most %d items", spec.MaxLen)
		}
		return list, ""

	case FieldJSON:
		switch val.(type) {
		case map[string]interface{}, []interface{}:
			data, err := json.Marshal(val)
			if err != nil {
				return nil, "must be a valid JSON value"
			}
			return json.RawMessage(data), ""
		default:
			return nil, "must be a JSON object or array"
		}
	}

	return nil, "unsupported field kind"
}

func checkBounds(spec FieldSpec, v float64) string {
	if spec.Min != nil && v < *spec.Min {
		return fmt.Sprintf("must be at least %v", *spec.Min)
	}
	if spec.Max != nil && v > *spec.Max {
		return fmt.Sprintf("must be at most %v", *spec.Max)
	}
	return ""
}

// validateCommon 信封 + 声明式字段的共享校验路径
// handler 在此之上再叠加自己的跨字段规则
func validateCommon(specs []FieldSpec, in Input) (*Validated, ValidationErrors) {
	amount, errs := ValidateEnvelope(in.Envelope)

	attrs, aerrs := CheckFields(specs, in.Attributes, false)
	errs = append(errs, aerrs...)

	if len(errs) > 0 {
		return nil, errs
	}
	return &Validated{Envelope: in.Envelope, PriceAmount: amount, Attributes: attrs}, nil
}

// ==================== 类型转换 ====================

func asFloat(val interface{}) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}

func asInt(val interface{}) (int, bool) {
	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		// JSON 数字统一是 float64，要求必须是整数值
		if v == float64(int64(v)) {
			return int(v), true
		}
	case json.Number:
		n, err := v.Int64()
		if err == nil {
			return int(n), true
		}
	}
	return 0, false
}

func asStringList(val interface{}) ([]string, bool) {
	switch v := val.(type) {
	case []string:
		return v, true
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

// ==================== 已校验字段读取 ====================
// CheckFields 之后值的类型是确定的，这些 getter 给 handler 组装扩展 model 用

func attrString(attrs map[string]interface{}, name string) string {
	if v, ok := attrs[name].(string); ok {
		return v
	}
	return ""
}

func attrInt(attrs map[string]interface{}, name string) int {
	if v, ok := attrs[name].(int); ok {
		return v
	}
	return 0
}

func attrFloat(attrs map[string]interface{}, name string) float64 {
	if v, ok := attrs[name].(float64); ok {
		return v
	}
	return 0
}

func attrBool(attrs map[string]interface{}, name string) bool {
	if v, ok := attrs[name].(bool); ok {
		return v
	}
	return false
}

func attrStrings(attrs map[string]interface{}, name string) []string {
	if v, ok := attrs[name].([]string); ok {
		return v
	}
	return nil
}

// toColumns 已校验字段转 gorm Updates 用的列映射
// 列名约定与字段名一致（snake_case），数组/JSON 转驱动类型
func toColumns(cleaned map[string]interface{}) map[string]interface{} {
	cols := make(map[string]interface{}, len(cleaned))
	for k, v := range cleaned {
		switch t := v.(type) {
		case []string:
			cols[k] = pq.StringArray(t)
		case json.RawMessage:
			cols[k] = datatypes.JSON(t)
		default:
			cols[k] = v
		}
	}
	return cols
}

// ==================== 扩展表谓词 ====================

// extExists 生成按外键限定的 EXISTS 谓词
// 限定 listing_id = listings.id 保证谓词永远不会命中别的类型
func extExists(table, cond string, args ...interface{}) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"EXISTS (SELECT 1 FROM "+table+" e WHERE e.listing_id = listings.id AND "+cond+")",
			args...,
		)
	}
}

// parseFloatParam 查询参数转 float，非法值按未提供处理
func parseFloatParam(params map[string]string, key string) (float64, bool) {
	s, ok := params[key]
	if !ok || s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// parseBoolParam 查询参数转 bool
func parseBoolParam(params map[string]string, key string) (bool, bool) {
	s, ok := params[key]
	if !ok || s == "" {
		return false, false
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, false
	}
	return b, true
}
