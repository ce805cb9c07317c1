package listingtype

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"marinemarket_v1/internal/model"
)

const TypeService = "service"

// ServiceHandler 服务类刊登（维保/运输/清洁等）
type ServiceHandler struct {
	db     *gorm.DB
	schema TypeSchema
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{
		db: db,
		schema: TypeSchema{
			Type:  TypeService,
			Label: "Marine Services",
			Fields: []FieldSpec{
				{Name: "service_type", Kind: FieldEnum, Required: true, Options: []string{"maintenance", "transport", "cleaning", "rigging", "training"}},
				{Name: "coverage_area", Kind: FieldString, MaxLen: 200},
				{Name: "mobile", Kind: FieldBool},
				{Name: "hourly_rate", Kind: FieldDecimal, Min: f64(0), Max: f64(100000)},
			},
			Filters: []string{"service_type", "mobile"},
		},
	}
}

func (h *ServiceHandler) Type() string { return TypeService }

func (h *ServiceHandler) Schema() TypeSchema { return h.schema }

func (h *ServiceHandler) WithTx(tx *gorm.DB) TypeHandler {
	return &ServiceHandler{db: tx, schema: h.schema}
}

func (h *ServiceHandler) Validate(in Input) (*Validated, ValidationErrors) {
	return validateCommon(h.schema.Fields, in)
}

func (h *ServiceHandler) CreateExtension(ctx context.Context, baseID int64, attrs map[string]interface{}) error {
	ext := &model.ServiceExtension{
		ListingID:    baseID,
		ServiceType:  attrString(attrs, "service_type"),
		CoverageArea: attrString(attrs, "coverage_area"),
		Mobile:       attrBool(attrs, "mobile"),
		HourlyRate:   attrFloat(attrs, "hourly_rate"),
	}
	return h.db.WithContext(ctx).Create(ext).Error
}

func (h *ServiceHandler) GetExtension(ctx context.Context, baseID int64) (map[string]interface{}, error) {
	var ext model.ServiceExtension
	err := h.db.WithContext(ctx).Where("listing_id = ?", baseID).First(&ext).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"service_type":  ext.ServiceType,
		"coverage_area": ext.CoverageArea,
		"mobile":        ext.Mobile,
		"hourly_rate":   ext.HourlyRate,
	}, nil
}

func (h *ServiceHandler) UpdateExtension(ctx context.Context, baseID int64, partial map[string]interface{}) error {
	cleaned, errs := CheckFields(h.schema.Fields, partial, true)
	if len(errs) > 0 {
		return errs
	}
	if len(cleaned) == 0 {
		return nil
	}
	return h.db.WithContext(ctx).
		Model(&model.ServiceExtension{}).
		Where("listing_id = ?", baseID).
		Updates(toColumns(cleaned)).Error
}

func (h *ServiceHandler) FilterScopes(params map[string]string) []Scope {
	var scopes []Scope
	if s := params["service_type"]; s != "" {
		scopes = append(scopes, extExists("service_extensions", "e.service_type = ?", s))
	}
	if b, ok := parseBoolParam(params, "mobile"); ok {
		scopes = append(scopes, extExists("service_extensions", "e.mobile = ?", b))
	}
	return scopes
}
