package listingtype

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"marinemarket_v1/internal/model"
)

const TypeEquipment = "equipment"

// EquipmentHandler 装备类型
type EquipmentHandler struct {
	db     *gorm.DB
	schema TypeSchema
}

func NewEquipmentHandler(db *gorm.DB) *EquipmentHandler {
	maxYear := float64(time.Now().Year() + 1)
	return &EquipmentHandler{
		db: db,
		schema: TypeSchema{
			Type:  TypeEquipment,
			Label: "Equipment",
			Fields: []FieldSpec{
				{Name: "equipment_type", Kind: FieldEnum, Required: true, Options: []string{"navigation", "safety", "fishing", "anchoring", "electronics"}},
				{Name: "condition", Kind: FieldEnum, Required: true, Options: []string{"new", "used", "refurbished"}},
				{Name: "brand", Kind: FieldString, MaxLen: 100},
				{Name: "model", Kind: FieldString, MaxLen: 100},
				{Name: "year", Kind: FieldInt, Min: f64(1950), Max: &maxYear},
			},
			Filters: []string{"equipment_type", "brand", "condition"},
		},
	}
}

func (h *EquipmentHandler) Type() string { return TypeEquipment }

func (h *EquipmentHandler) Schema() TypeSchema { return h.schema }

func (h *EquipmentHandler) WithTx(tx *gorm.DB) TypeHandler {
	return &EquipmentHandler{db: tx, schema: h.schema}
}

func (h *EquipmentHandler) Validate(in Input) (*Validated, ValidationErrors) {
	return validateCommon(h.schema.Fields, in)
}

func (h *EquipmentHandler) CreateExtension(ctx context.Context, baseID int64, attrs map[string]interface{}) error {
	ext := &model.EquipmentExtension{
		ListingID:     baseID,
		EquipmentType: attrString(attrs, "equipment_type"),
		Brand:         attrString(attrs, "brand"),
		Model:         attrString(attrs, "model"),
		Year:          attrInt(attrs, "year"),
		Condition:     attrString(attrs, "condition"),
	}
	return h.db.WithContext(ctx).Create(ext).Error
}

func (h *EquipmentHandler) GetExtension(ctx context.Context, baseID int64) (map[string]interface{}, error) {
	var ext model.EquipmentExtension
	err := h.db.WithContext(ctx).Where("listing_id = ?", baseID).First(&ext).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"equipment_type": ext.EquipmentType,
		"brand":          ext.Brand,
		"model":          ext.Model,
		"year":           ext.Year,
		"condition":      ext.Condition,
	}, nil
}

func (h *EquipmentHandler) UpdateExtension(ctx context.Context, baseID int64, partial map[string]interface{}) error {
	cleaned, errs := CheckFields(h.schema.Fields, partial, true)
	if len(errs) > 0 {
		return errs
	}
	if len(cleaned) == 0 {
		return nil
	}
	return h.db.WithContext(ctx).
		Model(&model.EquipmentExtension{}).
		Where("listing_id = ?", baseID).
		Updates(toColumns(cleaned)).Error
}

func (h *EquipmentHandler) FilterScopes(params map[string]string) []Scope {
	var scopes []Scope
	if s := params["equipment_type"]; s != "" {
		scopes = append(scopes, extExists("equipment_extensions", "e.equipment_type = ?", s))
	}
	if s := params["brand"]; s != "" {
		scopes = append(scopes, extExists("equipment_extensions", "LOWER(e.brand) = LOWER(?)", s))
	}
	if s := params["condition"]; s != "" {
		scopes = append(scopes, extExists("equipment_extensions", "e.condition = ?", s))
	}
	return scopes
}
