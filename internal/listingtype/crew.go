package listingtype

import (
	"context"
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"marinemarket_v1/internal/model"
)

const TypeCrew = "crew"

// CrewHandler 船员招聘类型
type CrewHandler struct {
	db     *gorm.DB
	schema TypeSchema
}

func NewCrewHandler(db *gorm.DB) *CrewHandler {
	return &CrewHandler{
		db: db,
		schema: TypeSchema{
			Type:  TypeCrew,
			Label: "Crew Postings",
			Fields: []FieldSpec{
				{Name: "position", Kind: FieldEnum, Required: true, Options: []string{"captain", "deckhand", "engineer", "chef", "steward"}},
				{Name: "experience_years", Kind: FieldInt, Required: true, Min: f64(0), Max: f64(60)},
				{Name: "licenses", Kind: FieldStringList, MaxLen: 20},
				{Name: "contract_type", Kind: FieldEnum, Options: []string{"permanent", "seasonal", "delivery"}},
				{Name: "available_from", Kind: FieldDate},
			},
			Filters: []string{"position", "min_experience", "contract_type"},
		},
	}
}

func (h *CrewHandler) Type() string { return TypeCrew }

func (h *CrewHandler) Schema() TypeSchema { return h.schema }

func (h *CrewHandler) WithTx(tx *gorm.DB) TypeHandler {
	return &CrewHandler{db: tx, schema: h.schema}
}

func (h *CrewHandler) Validate(in Input) (*Validated, ValidationErrors) {
	return validateCommon(h.schema.Fields, in)
}

func (h *CrewHandler) CreateExtension(ctx context.Context, baseID int64, attrs map[string]interface{}) error {
	ext := &model.CrewExtension{
		ListingID:       baseID,
		Position:        attrString(attrs, "position"),
		ExperienceYears: attrInt(attrs, "experience_years"),
		Licenses:        pq.StringArray(attrStrings(attrs, "licenses")),
		ContractType:    attrString(attrs, "contract_type"),
		AvailableFrom:   attrString(attrs, "available_from"),
	}
	return h.db.WithContext(ctx).Create(ext).Error
}

func (h *CrewHandler) GetExtension(ctx context.Context, baseID int64) (map[string]interface{}, error) {
	var ext model.CrewExtension
	err := h.db.WithContext(ctx).Where("listing_id = ?", baseID).First(&ext).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"position":         ext.Position,
		"experience_years": ext.ExperienceYears,
		"licenses":         []string(ext.Licenses),
		"contract_type":    ext.ContractType,
		"available_from":   ext.AvailableFrom,
	}, nil
}

func (h *CrewHandler) UpdateExtension(ctx context.Context, baseID int64, partial map[string]interface{}) error {
	cleaned, errs := CheckFields(h.schema.Fields, partial, true)
	if len(errs) > 0 {
		return errs
	}
	if len(cleaned) == 0 {
		return nil
	}
	return h.db.WithContext(ctx).
		Model(&model.CrewExtension{}).
		Where("listing_id = ?", baseID).
		Updates(toColumns(cleaned)).Error
}

func (h *CrewHandler) FilterScopes(params map[string]string) []Scope {
	var scopes []Scope
	if s := params["position"]; s != "" {
		scopes = append(scopes, extExists("crew_extensions", "e.position = ?", s))
	}
	if v, ok := parseFloatParam(params, "min_experience"); ok {
		scopes = append(scopes, extExists("crew_extensions", "e.experience_years >= ?", int(v)))
	}
	if s := params["contract_type"]; s != "" {
		scopes = append(scopes, extExists("crew_extensions", "e.contract_type = ?", s))
	}
	return scopes
}
