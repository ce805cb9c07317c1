package listingtype

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"marinemarket_v1/internal/model"
)

const TypeSecondhand = "secondhand"

// SecondhandHandler 二手杂货类型
type SecondhandHandler struct {
	db     *gorm.DB
	schema TypeSchema
}

func NewSecondhandHandler(db *gorm.DB) *SecondhandHandler {
	return &SecondhandHandler{
		db: db,
		schema: TypeSchema{
			Type:  TypeSecondhand,
			Label: "Second-hand Goods",
			Fields: []FieldSpec{
				{Name: "item_category", Kind: FieldEnum, Required: true, Options: []string{"apparel", "gear", "decor", "galley", "other"}},
				{Name: "condition", Kind: FieldEnum, Required: true, Options: []string{"new", "good", "fair"}},
				{Name: "brand", Kind: FieldString, MaxLen: 100},
				{Name: "handmade", Kind: FieldBool},
			},
			Filters: []string{"item_category", "condition"},
		},
	}
}

func (h *SecondhandHandler) Type() string { return TypeSecondhand }

func (h *SecondhandHandler) Schema() TypeSchema { return h.schema }

func (h *SecondhandHandler) WithTx(tx *gorm.DB) TypeHandler {
	return &SecondhandHandler{db: tx, schema: h.schema}
}

func (h *SecondhandHandler) Validate(in Input) (*Validated, ValidationErrors) {
	return validateCommon(h.schema.Fields, in)
}

func (h *SecondhandHandler) CreateExtension(ctx context.Context, baseID int64, attrs map[string]interface{}) error {
	ext := &model.SecondhandExtension{
		ListingID:    baseID,
		ItemCategory: attrString(attrs, "item_category"),
		Condition:    attrString(attrs, "condition"),
		Brand:        attrString(attrs, "brand"),
		Handmade:     attrBool(attrs, "handmade"),
	}
	return h.db.WithContext(ctx).Create(ext).Error
}

func (h *SecondhandHandler) GetExtension(ctx context.Context, baseID int64) (map[string]interface{}, error) {
	var ext model.SecondhandExtension
	err := h.db.WithContext(ctx).Where("listing_id = ?", baseID).First(&ext).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"item_category": ext.ItemCategory,
		"condition":     ext.Condition,
		"brand":         ext.Brand,
		"handmade":      ext.Handmade,
	}, nil
}

func (h *SecondhandHandler) UpdateExtension(ctx context.Context, baseID int64, partial map[string]interface{}) error {
	cleaned, errs := CheckFields(h.schema.Fields, partial, true)
	if len(errs) > 0 {
		return errs
	}
	if len(cleaned) == 0 {
		return nil
	}
	return h.db.WithContext(ctx).
		Model(&model.SecondhandExtension{}).
		Where("listing_id = ?", baseID).
		Updates(toColumns(cleaned)).Error
}

func (h *SecondhandHandler) FilterScopes(params map[string]string) []Scope {
	var scopes []Scope
	if s := params["item_category"]; s != "" {
		scopes = append(scopes, extExists("secondhand_extensions", "e.item_category = ?", s))
	}
	if s := params["condition"]; s != "" {
		scopes = append(scopes, extExists("secondhand_extensions", "e.condition = ?", s))
	}
	return scopes
}
