package listingtype

import (
	"testing"
)

func validYachtInput() Input {
	return Input{
		Envelope: Envelope{
			Title:    "Bavaria 46 Cruiser 2008",
			Price:    "185000.00",
			Currency: "EUR",
			Location: "Fethiye",
		},
		Attributes: map[string]interface{}{
			"year":      2008,
			"length_m":  14.27,
			"condition": "good",
		},
	}
}

func TestYachtHandler_Validate(t *testing.T) {
	h := NewYachtHandler(nil)

	v, errs := h.Validate(validYachtInput())
	if len(errs) != 0 {
		t.Fatalf("合法输入不应报错: %v", errs)
	}
	if v.PriceAmount != 18500000 {
		t.Errorf("价格解析错误: %d", v.PriceAmount)
	}
	if v.Attributes["year"] != 2008 {
		t.Errorf("year 强转错误: %v", v.Attributes["year"])
	}

	cases := []struct {
		name   string
		mutate func(*Input)
		field  string
	}{
		{"年份低于下限", func(in *Input) { in.Attributes["year"] = 1900 }, "year"},
		{"缺少必填字段", func(in *Input) { delete(in.Attributes, "condition") }, "condition"},
		{"船长超上限", func(in *Input) { in.Attributes["length_m"] = 250.0 }, "length_m"},
		{"船宽超过船长", func(in *Input) { in.Attributes["beam_m"] = 20.0 }, "beam_m"},
		{"枚举值非法", func(in *Input) { in.Attributes["condition"] = "sunk" }, "condition"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in := validYachtInput()
			c.mutate(&in)
			v, errs := h.Validate(in)
			if v != nil {
				t.Fatal("非法输入不应返回 Validated")
			}
			if !hasFieldError(errs, c.field) {
				t.Errorf("期望字段 %s 的错误，得到: %v", c.field, errs)
			}
		})
	}
}

func TestYachtHandler_UnknownAttributeIgnored(t *testing.T) {
	h := NewYachtHandler(nil)

	in := validYachtInput()
	in.Attributes["spinnaker_color"] = "red"

	v, errs := h.Validate(in)
	if len(errs) != 0 {
		t.Fatalf("未声明字段不应导致失败: %v", errs)
	}
	if _, ok := v.Attributes["spinnaker_color"]; ok {
		t.Error("未声明字段不应进入校验结果")
	}
}

func TestMarinaHandler_ServicesAllowList(t *testing.T) {
	h := NewMarinaHandler(nil)

	in := Input{
		Envelope: Envelope{
			Title:    "Gocek berth 18m",
			Price:    "4500.00",
			Currency: "EUR",
		},
		Attributes: map[string]interface{}{
			"max_length_m": 18.0,
			"berth_type":   "pontoon",
			"services":     []interface{}{"water", "teleporter"},
		},
	}

	_, errs := h.Validate(in)
	if !hasFieldError(errs, "services") {
		t.Errorf("未知配套服务应报错，得到: %v", errs)
	}

	in.Attributes["services"] = []interface{}{"water", "electricity"}
	if _, errs := h.Validate(in); len(errs) != 0 {
		t.Errorf("合法配套服务不应报错: %v", errs)
	}
}
