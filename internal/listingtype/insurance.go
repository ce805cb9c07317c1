package listingtype

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"marinemarket_v1/internal/model"
)

const TypeInsurance = "insurance"

// InsuranceHandler 保险产品类型
type InsuranceHandler struct {
	db     *gorm.DB
	schema TypeSchema
}

func NewInsuranceHandler(db *gorm.DB) *InsuranceHandler {
	return &InsuranceHandler{
		db: db,
		schema: TypeSchema{
			Type:  TypeInsurance,
			Label: "Boat Insurance",
			Fields: []FieldSpec{
				{Name: "coverage_type", Kind: FieldEnum, Required: true, Options: []string{"hull", "liability", "comprehensive"}},
				{Name: "insurer", Kind: FieldString, Required: true, MaxLen: 100},
				{Name: "max_coverage", Kind: FieldDecimal, Min: f64(0), Max: f64(MaxPriceMajor)},
				{Name: "valid_months", Kind: FieldInt, Min: f64(1), Max: f64(120)},
				{Name: "coverage_detail", Kind: FieldJSON},
			},
			Filters: []string{"coverage_type", "insurer"},
		},
	}
}

func (h *InsuranceHandler) Type() string { return TypeInsurance }

func (h *InsuranceHandler) Schema() TypeSchema { return h.schema }

func (h *InsuranceHandler) WithTx(tx *gorm.DB) TypeHandler {
	return &InsuranceHandler{db: tx, schema: h.schema}
}

func (h *InsuranceHandler) Validate(in Input) (*Validated, ValidationErrors) {
	return validateCommon(h.schema.Fields, in)
}

func (h *InsuranceHandler) CreateExtension(ctx context.Context, baseID int64, attrs map[string]interface{}) error {
	ext := &model.InsuranceExtension{
		ListingID:    baseID,
		CoverageType: attrString(attrs, "coverage_type"),
		Insurer:      attrString(attrs, "insurer"),
		MaxCoverage:  attrFloat(attrs, "max_coverage"),
		ValidMonths:  attrInt(attrs, "valid_months"),
	}
	if ext.ValidMonths == 0 {
		ext.ValidMonths = 12
	}
	if raw, ok := attrs["coverage_detail"].(json.RawMessage); ok {
		ext.CoverageDetail = datatypes.JSON(raw)
	}
	return h.db.WithContext(ctx).Create(ext).Error
}

func (h *InsuranceHandler) GetExtension(ctx context.Context, baseID int64) (map[string]interface{}, error) {
	var ext model.InsuranceExtension
	err := h.db.WithContext(ctx).Where("listing_id = ?", baseID).First(&ext).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	out := map[string]interface{}{
		"coverage_type": ext.CoverageType,
		"insurer":       ext.Insurer,
		"max_coverage":  ext.MaxCoverage,
		"valid_months":  ext.ValidMonths,
	}
	if len(ext.CoverageDetail) > 0 {
		out["coverage_detail"] = json.RawMessage(ext.CoverageDetail)
	}
	return out, nil
}

func (h *InsuranceHandler) UpdateExtension(ctx context.Context, baseID int64, partial map[string]interface{}) error {
	cleaned, errs := CheckFields(h.schema.Fields, partial, true)
	if len(errs) > 0 {
		return errs
	}
	if len(cleaned) == 0 {
		return nil
	}
	return h.db.WithContext(ctx).
		Model(&model.InsuranceExtension{}).
		Where("listing_id = ?", baseID).
		Updates(toColumns(cleaned)).Error
}

func (h *InsuranceHandler) FilterScopes(params map[string]string) []Scope {
	var scopes []Scope
	if s := params["coverage_type"]; s != "" {
		scopes = append(scopes, extExists("insurance_extensions", "e.coverage_type = ?", s))
	}
	if s := params["insurer"]; s != "" {
		scopes = append(scopes, extExists("insurance_extensions", "LOWER(e.insurer) = LOWER(?)", s))
	}
	return scopes
}
