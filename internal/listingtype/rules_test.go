package listingtype

import (
	"testing"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"450000.00", 45000000, false},
		{"1250.50", 125050, false},
		{"99.9", 9990, false},
		{"1", 100, false},
		{"0", 0, false},
		{"", 0, true},
		{"abc", 0, true},
		{"1.234", 0, true},
		{"-5", 0, true},
		{".50", 0, true},
		// 整数部分超长不允许回绕成小值
		{"184467440737095517", 0, true},
		{"99999999999999999999999999", 0, true},
		{"10000000000", 0, true},
		// strconv 宽容的写法一律拒绝
		{"1250.", 0, true},
		{"+12", 0, true},
		{"12.+5", 0, true},
		{"1_0", 0, true},
	}

	for _, c := range cases {
		got, err := ParsePrice(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParsePrice(%q) 应当报错", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePrice(%q) 意外报错: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParsePrice(%q) = %d，期望 %d", c.in, got, c.want)
		}
	}
}

func TestFormatPrice_RoundTrip(t *testing.T) {
	amounts := []int64{100, 9990, 125050, 45000000, 999999999900}
	for _, amount := range amounts {
		s := FormatPrice(amount, PriceDivisor)
		back, err := ParsePrice(s)
		if err != nil {
			t.Errorf("FormatPrice(%d) = %q 无法解析回来: %v", amount, s, err)
			continue
		}
		if back != amount {
			t.Errorf("往返不一致: %d -> %q -> %d", amount, s, back)
		}
	}
}

func TestValidateEnvelope(t *testing.T) {
	valid := Envelope{
		Title:    "Bavaria 46 Cruiser 2008",
		Price:    "185000.00",
		Currency: "EUR",
		Location: "Fethiye",
	}

	if _, errs := ValidateEnvelope(valid); len(errs) != 0 {
		t.Fatalf("合法信封不应报错: %v", errs)
	}

	cases := []struct {
		name   string
		mutate func(*Envelope)
		field  string
	}{
		{"标题太短", func(e *Envelope) { e.Title = "ab" }, "title"},
		{"价格超上限", func(e *Envelope) { e.Price = "10000000000" }, "price"},
		{"价格整数位超长", func(e *Envelope) { e.Price = "184467440737095517" }, "price"},
		{"价格为零", func(e *Envelope) { e.Price = "0" }, "price"},
		{"价格格式错", func(e *Envelope) { e.Price = "12.345" }, "price"},
		{"币种不支持", func(e *Envelope) { e.Currency = "GBP" }, "currency"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			env := valid
			c.mutate(&env)
			_, errs := ValidateEnvelope(env)
			if !hasFieldError(errs, c.field) {
				t.Errorf("期望字段 %s 的错误，得到: %v", c.field, errs)
			}
		})
	}
}

func TestCheckFields_UnknownIgnored(t *testing.T) {
	specs := []FieldSpec{
		{Name: "year", Kind: FieldInt, Required: true, Min: f64(1901)},
	}
	raw := map[string]interface{}{
		"year":      2010,
		"spinnaker": true, // 未声明的键
	}

	cleaned, errs := CheckFields(specs, raw, false)
	if len(errs) != 0 {
		t.Fatalf("未声明键不应产生错误: %v", errs)
	}
	if _, ok := cleaned["spinnaker"]; ok {
		t.Error("未声明键不应出现在结果里")
	}
	if cleaned["year"] != 2010 {
		t.Errorf("year 强转结果错误: %v", cleaned["year"])
	}
}

func TestCheckFields_PartialMode(t *testing.T) {
	specs := []FieldSpec{
		{Name: "year", Kind: FieldInt, Required: true, Min: f64(1901)},
		{Name: "condition", Kind: FieldEnum, Required: true, Options: []string{"new", "good"}},
	}

	// partial 模式缺 required 字段不报错
	cleaned, errs := CheckFields(specs, map[string]interface{}{"year": 2015}, true)
	if len(errs) != 0 {
		t.Fatalf("partial 模式缺字段不应报错: %v", errs)
	}
	if len(cleaned) != 1 {
		t.Errorf("期望 1 个字段，得到 %d", len(cleaned))
	}

	// 但出现的字段仍然要过校验
	_, errs = CheckFields(specs, map[string]interface{}{"condition": "sunk"}, true)
	if !hasFieldError(errs, "condition") {
		t.Errorf("非法枚举值应报错，得到: %v", errs)
	}

	// 非 partial 模式缺 required 字段要报错
	_, errs = CheckFields(specs, map[string]interface{}{"year": 2015}, false)
	if !hasFieldError(errs, "condition") {
		t.Errorf("缺 required 字段应报错，得到: %v", errs)
	}
}

func TestValidateEnvelopeUpdate(t *testing.T) {
	title := "Updated title"
	badPrice := "not-a-price"

	cols, errs := ValidateEnvelopeUpdate(EnvelopeUpdate{Title: &title})
	if len(errs) != 0 {
		t.Fatalf("合法更新不应报错: %v", errs)
	}
	if cols["title"] != title {
		t.Errorf("title 列映射错误: %v", cols["title"])
	}
	if _, ok := cols["price_amount"]; ok {
		t.Error("未提供的字段不应出现在列映射里")
	}

	_, errs = ValidateEnvelopeUpdate(EnvelopeUpdate{Price: &badPrice})
	if !hasFieldError(errs, "price") {
		t.Errorf("非法价格应报错，得到: %v", errs)
	}
}

// hasFieldError 判断错误集中是否有指定字段
func hasFieldError(errs ValidationErrors, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}
