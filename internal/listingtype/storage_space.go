package listingtype

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"marinemarket_v1/internal/model"
)

const TypeStorage = "storage"

// StorageHandler 船只寄存类型
type StorageHandler struct {
	db     *gorm.DB
	schema TypeSchema
}

func NewStorageHandler(db *gorm.DB) *StorageHandler {
	return &StorageHandler{
		db: db,
		schema: TypeSchema{
			Type:  TypeStorage,
			Label: "Boat Storage",
			Fields: []FieldSpec{
				{Name: "storage_type", Kind: FieldEnum, Required: true, Options: []string{"indoor", "outdoor", "container"}},
				{Name: "max_length_m", Kind: FieldDecimal, Required: true, Min: f64(2), Max: f64(200)},
				{Name: "area_m2", Kind: FieldDecimal, Min: f64(1), Max: f64(100000)},
				{Name: "secured", Kind: FieldBool},
				{Name: "winter_only", Kind: FieldBool},
			},
			Filters: []string{"storage_type", "min_area"},
		},
	}
}

func (h *StorageHandler) Type() string { return TypeStorage }

func (h *StorageHandler) Schema() TypeSchema { return h.schema }

func (h *StorageHandler) WithTx(tx *gorm.DB) TypeHandler {
	return &StorageHandler{db: tx, schema: h.schema}
}

func (h *StorageHandler) Validate(in Input) (*Validated, ValidationErrors) {
	return validateCommon(h.schema.Fields, in)
}

func (h *StorageHandler) CreateExtension(ctx context.Context, baseID int64, attrs map[string]interface{}) error {
	ext := &model.StorageExtension{
		ListingID:   baseID,
		StorageType: attrString(attrs, "storage_type"),
		MaxLengthM:  attrFloat(attrs, "max_length_m"),
		AreaM2:      attrFloat(attrs, "area_m2"),
		Secured:     attrBool(attrs, "secured"),
		WinterOnly:  attrBool(attrs, "winter_only"),
	}
	return h.db.WithContext(ctx).Create(ext).Error
}

func (h *StorageHandler) GetExtension(ctx context.Context, baseID int64) (map[string]interface{}, error) {
	var ext model.StorageExtension
	err := h.db.WithContext(ctx).Where("listing_id = ?", baseID).First(&ext).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"storage_type": ext.StorageType,
		"max_length_m": ext.MaxLengthM,
		"area_m2":      ext.AreaM2,
		"secured":      ext.Secured,
		"winter_only":  ext.WinterOnly,
	}, nil
}

func (h *StorageHandler) UpdateExtension(ctx context.Context, baseID int64, partial map[string]interface{}) error {
	cleaned, errs := CheckFields(h.schema.Fields, partial, true)
	if len(errs) > 0 {
		return errs
	}
	if len(cleaned) == 0 {
		return nil
	}
	return h.db.WithContext(ctx).
		Model(&model.StorageExtension{}).
		Where("listing_id = ?", baseID).
		Updates(toColumns(cleaned)).Error
}

func (h *StorageHandler) FilterScopes(params map[string]string) []Scope {
	var scopes []Scope
	if s := params["storage_type"]; s != "" {
		scopes = append(scopes, extExists("storage_extensions", "e.storage_type = ?", s))
	}
	if v, ok := parseFloatParam(params, "min_area"); ok {
		scopes = append(scopes, extExists("storage_extensions", "e.area_m2 >= ?", v))
	}
	return scopes
}
