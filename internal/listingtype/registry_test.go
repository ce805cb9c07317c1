package listingtype

import (
	"errors"
	"testing"
)

func TestRegistry_DuplicateRegistration(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(NewYachtHandler(nil)); err != nil {
		t.Fatalf("首次注册失败: %v", err)
	}
	err := r.Register(NewYachtHandler(nil))
	if err == nil {
		t.Fatal("重复注册应当报错")
	}
	if !errors.Is(err, ErrDuplicateType) {
		t.Errorf("期望 ErrDuplicateType，得到: %v", err)
	}
}

func TestRegistry_UnknownType(t *testing.T) {
	r, err := BuildRegistry(nil)
	if err != nil {
		t.Fatalf("构建注册表失败: %v", err)
	}

	_, err = r.Get("spaceship")
	if err == nil {
		t.Fatal("未注册类型应当报错")
	}
	if !errors.Is(err, ErrUnknownType) {
		t.Errorf("期望 ErrUnknownType，得到: %v", err)
	}
}

func TestRegistry_TypeRoundTrip(t *testing.T) {
	r, err := BuildRegistry(nil)
	if err != nil {
		t.Fatalf("构建注册表失败: %v", err)
	}

	types := r.Types()
	if len(types) != 10 {
		t.Fatalf("期望 10 个类型，得到 %d", len(types))
	}

	for _, typ := range types {
		h, err := r.Get(typ)
		if err != nil {
			t.Errorf("Get(%s) 失败: %v", typ, err)
			continue
		}
		if h.Type() != typ {
			t.Errorf("Get(%s).Type() = %s", typ, h.Type())
		}
		if !r.Has(typ) {
			t.Errorf("Has(%s) 应当为 true", typ)
		}
	}
}

func TestRegistry_SchemasStable(t *testing.T) {
	r, err := BuildRegistry(nil)
	if err != nil {
		t.Fatalf("构建注册表失败: %v", err)
	}

	first := r.Schemas()
	second := r.Schemas()

	if len(first) != len(second) {
		t.Fatalf("两次 Schemas 长度不一致: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Type != second[i].Type {
			t.Errorf("第 %d 个 schema 顺序不稳定: %s vs %s", i, first[i].Type, second[i].Type)
		}
		if len(first[i].Fields) != len(second[i].Fields) {
			t.Errorf("%s 两次字段数不一致", first[i].Type)
		}
	}

	// 列表顺序与注册顺序一致
	types := r.Types()
	for i, s := range first {
		if s.Type != types[i] {
			t.Errorf("schema 顺序与注册顺序不一致: %s vs %s", s.Type, types[i])
		}
	}
}
