package listingtype

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"marinemarket_v1/internal/model"
)

const TypeSurvey = "survey"

// SurveyHandler 船检/评估服务类型
type SurveyHandler struct {
	db     *gorm.DB
	schema TypeSchema
}

func NewSurveyHandler(db *gorm.DB) *SurveyHandler {
	return &SurveyHandler{
		db: db,
		schema: TypeSchema{
			Type:  TypeSurvey,
			Label: "Marine Surveys",
			Fields: []FieldSpec{
				{Name: "survey_type", Kind: FieldEnum, Required: true, Options: []string{"pre_purchase", "insurance", "damage", "valuation"}},
				{Name: "certified", Kind: FieldBool},
				{Name: "certificate_no", Kind: FieldString, MaxLen: 100},
				{Name: "travel_radius_km", Kind: FieldDecimal, Min: f64(0), Max: f64(5000)},
			},
			Filters: []string{"survey_type", "certified"},
		},
	}
}

func (h *SurveyHandler) Type() string { return TypeSurvey }

func (h *SurveyHandler) Schema() TypeSchema { return h.schema }

func (h *SurveyHandler) WithTx(tx *gorm.DB) TypeHandler {
	return &SurveyHandler{db: tx, schema: h.schema}
}

func (h *SurveyHandler) Validate(in Input) (*Validated, ValidationErrors) {
	v, errs := validateCommon(h.schema.Fields, in)
	if errs != nil {
		return nil, errs
	}

	// 声明持证必须给出证书编号
	if attrBool(v.Attributes, "certified") && strings.TrimSpace(attrString(v.Attributes, "certificate_no")) == "" {
		errs.Add("certificate_no", "is required when certified is true")
		return nil, errs
	}
	return v, nil
}

func (h *SurveyHandler) CreateExtension(ctx context.Context, baseID int64, attrs map[string]interface{}) error {
	ext := &model.SurveyExtension{
		ListingID:      baseID,
		SurveyType:     attrString(attrs, "survey_type"),
		Certified:      attrBool(attrs, "certified"),
		CertificateNo:  attrString(attrs, "certificate_no"),
		TravelRadiusKm: attrFloat(attrs, "travel_radius_km"),
	}
	return h.db.WithContext(ctx).Create(ext).Error
}

func (h *SurveyHandler) GetExtension(ctx context.Context, baseID int64) (map[string]interface{}, error) {
	var ext model.SurveyExtension
	err := h.db.WithContext(ctx).Where("listing_id = ?", baseID).First(&ext).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"survey_type":      ext.SurveyType,
		"certified":        ext.Certified,
		"certificate_no":   ext.CertificateNo,
		"travel_radius_km": ext.TravelRadiusKm,
	}, nil
}

func (h *SurveyHandler) UpdateExtension(ctx context.Context, baseID int64, partial map[string]interface{}) error {
	cleaned, errs := CheckFields(h.schema.Fields, partial, true)
	if len(errs) > 0 {
		return errs
	}
	if len(cleaned) == 0 {
		return nil
	}
	return h.db.WithContext(ctx).
		Model(&model.SurveyExtension{}).
		Where("listing_id = ?", baseID).
		Updates(toColumns(cleaned)).Error
}

func (h *SurveyHandler) FilterScopes(params map[string]string) []Scope {
	var scopes []Scope
	if s := params["survey_type"]; s != "" {
		scopes = append(scopes, extExists("survey_extensions", "e.survey_type = ?", s))
	}
	if b, ok := parseBoolParam(params, "certified"); ok {
		scopes = append(scopes, extExists("survey_extensions", "e.certified = ?", b))
	}
	return scopes
}
