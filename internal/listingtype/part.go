package listingtype

import (
	"context"
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"marinemarket_v1/internal/model"
)

const TypePart = "part"

// PartHandler 备件类型
type PartHandler struct {
	db     *gorm.DB
	schema TypeSchema
}

func NewPartHandler(db *gorm.DB) *PartHandler {
	return &PartHandler{
		db: db,
		schema: TypeSchema{
			Type:  TypePart,
			Label: "Spare Parts",
			Fields: []FieldSpec{
				{Name: "part_number", Kind: FieldString, Required: true, MaxLen: 100},
				{Name: "brand", Kind: FieldString, Required: true, MaxLen: 100},
				{Name: "condition", Kind: FieldEnum, Required: true, Options: []string{"new", "used", "refurbished"}},
				{Name: "compatible_models", Kind: FieldStringList, MaxLen: 50},
				{Name: "weight_kg", Kind: FieldDecimal, Min: f64(0), Max: f64(10000)},
			},
			Filters: []string{"brand", "condition", "part_number"},
		},
	}
}

func (h *PartHandler) Type() string { return TypePart }

func (h *PartHandler) Schema() TypeSchema { return h.schema }

func (h *PartHandler) WithTx(tx *gorm.DB) TypeHandler {
	return &PartHandler{db: tx, schema: h.schema}
}

func (h *PartHandler) Validate(in Input) (*Validated, ValidationErrors) {
	return validateCommon(h.schema.Fields, in)
}

func (h *PartHandler) CreateExtension(ctx context.Context, baseID int64, attrs map[string]interface{}) error {
	ext := &model.PartExtension{
		ListingID:        baseID,
		PartNumber:       attrString(attrs, "part_number"),
		Brand:            attrString(attrs, "brand"),
		Condition:        attrString(attrs, "condition"),
		CompatibleModels: pq.StringArray(attrStrings(attrs, "compatible_models")),
		WeightKg:         attrFloat(attrs, "weight_kg"),
	}
	return h.db.WithContext(ctx).Create(ext).Error
}

func (h *PartHandler) GetExtension(ctx context.Context, baseID int64) (map[string]interface{}, error) {
	var ext model.PartExtension
	err := h.db.WithContext(ctx).Where("listing_id = ?", baseID).First(&ext).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"part_number":       ext.PartNumber,
		"brand":             ext.Brand,
		"condition":         ext.Condition,
		"compatible_models": []string(ext.CompatibleModels),
		"weight_kg":         ext.WeightKg,
	}, nil
}

func (h *PartHandler) UpdateExtension(ctx context.Context, baseID int64, partial map[string]interface{}) error {
	cleaned, errs := CheckFields(h.schema.Fields, partial, true)
	if len(errs) > 0 {
		return errs
	}
	if len(cleaned) == 0 {
		return nil
	}
	return h.db.WithContext(ctx).
		Model(&model.PartExtension{}).
		Where("listing_id = ?", baseID).
		Updates(toColumns(cleaned)).Error
}

func (h *PartHandler) FilterScopes(params map[string]string) []Scope {
	var scopes []Scope
	if s := params["brand"]; s != "" {
		scopes = append(scopes, extExists("part_extensions", "LOWER(e.brand) = LOWER(?)", s))
	}
	if s := params["condition"]; s != "" {
		scopes = append(scopes, extExists("part_extensions", "e.condition = ?", s))
	}
	if s := params["part_number"]; s != "" {
		scopes = append(scopes, extExists("part_extensions", "e.part_number = ?", s))
	}
	return scopes
}
