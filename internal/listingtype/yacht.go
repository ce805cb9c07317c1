package listingtype

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"marinemarket_v1/internal/model"
)

const TypeYacht = "yacht"

// YachtHandler 游艇/船只类型
type YachtHandler struct {
	db     *gorm.DB
	schema TypeSchema
}

// NewYachtHandler 创建游艇 handler
func NewYachtHandler(db *gorm.DB) *YachtHandler {
	// 年份上限放宽到明年，允许在产新船
	maxYear := float64(time.Now().Year() + 1)
	return &YachtHandler{
		db: db,
		schema: TypeSchema{
			Type:  TypeYacht,
			Label: "Boats & Yachts",
			Fields: []FieldSpec{
				{Name: "year", Kind: FieldInt, Required: true, Min: f64(1901), Max: &maxYear},
				{Name: "length_m", Kind: FieldDecimal, Required: true, Min: f64(2), Max: f64(200)},
				{Name: "condition", Kind: FieldEnum, Required: true, Options: []string{"new", "good", "fair", "project"}},
				{Name: "beam_m", Kind: FieldDecimal, Min: f64(0.5), Max: f64(50)},
				{Name: "draft_m", Kind: FieldDecimal, Min: f64(0.1), Max: f64(20)},
				{Name: "engine_type", Kind: FieldEnum, Options: []string{"diesel", "petrol", "electric", "none"}},
				{Name: "engine_power_hp", Kind: FieldDecimal, Min: f64(0), Max: f64(20000)},
				{Name: "hull_material", Kind: FieldEnum, Options: []string{"grp", "steel", "aluminium", "wood", "composite"}},
			},
			Filters: []string{"min_year", "max_year", "min_length", "max_length", "engine_type", "condition"},
		},
	}
}

func (h *YachtHandler) Type() string { return TypeYacht }

func (h *YachtHandler) Schema() TypeSchema { return h.schema }

func (h *YachtHandler) WithTx(tx *gorm.DB) TypeHandler {
	return &YachtHandler{db: tx, schema: h.schema}
}

func (h *YachtHandler) Validate(in Input) (*Validated, ValidationErrors) {
	v, errs := validateCommon(h.schema.Fields, in)
	if errs != nil {
		return nil, errs
	}

	if msg := checkBeamAgainstLength(attrFloat(v.Attributes, "beam_m"), attrFloat(v.Attributes, "length_m")); msg != "" {
		errs.Add("beam_m", msg)
		return nil, errs
	}
	return v, nil
}

// checkBeamAgainstLength 跨字段：船宽不能超过船长，创建和更新走同一条规则
func checkBeamAgainstLength(beam, length float64) string {
	if beam > 0 && beam > length {
		return "must not exceed length_m"
	}
	return ""
}

func (h *YachtHandler) CreateExtension(ctx context.Context, baseID int64, attrs map[string]interface{}) error {
	ext := &model.YachtExtension{
		ListingID:     baseID,
		Year:          attrInt(attrs, "year"),
		LengthM:       attrFloat(attrs, "length_m"),
		BeamM:         attrFloat(attrs, "beam_m"),
		DraftM:        attrFloat(attrs, "draft_m"),
		EngineType:    attrString(attrs, "engine_type"),
		EnginePowerHp: attrFloat(attrs, "engine_power_hp"),
		HullMaterial:  attrString(attrs, "hull_material"),
		Condition:     attrString(attrs, "condition"),
	}
	return h.db.WithContext(ctx).Create(ext).Error
}

func (h *YachtHandler) GetExtension(ctx context.Context, baseID int64) (map[string]interface{}, error) {
	var ext model.YachtExtension
	err := h.db.WithContext(ctx).Where("listing_id = ?", baseID).First(&ext).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"year":            ext.Year,
		"length_m":        ext.LengthM,
		"beam_m":          ext.BeamM,
		"draft_m":         ext.DraftM,
		"engine_type":     ext.EngineType,
		"engine_power_hp": ext.EnginePowerHp,
		"hull_material":   ext.HullMaterial,
		"condition":       ext.Condition,
	}, nil
}

func (h *YachtHandler) UpdateExtension(ctx context.Context, baseID int64, partial map[string]interface{}) error {
	cleaned, errs := CheckFields(h.schema.Fields, partial, true)
	if len(errs) > 0 {
		return errs
	}
	if len(cleaned) == 0 {
		return nil
	}

	// 部分更新也要过跨字段规则，缺席的一侧取库里现值
	beam, hasBeam := cleaned["beam_m"].(float64)
	length, hasLength := cleaned["length_m"].(float64)
	if hasBeam || hasLength {
		var ext model.YachtExtension
		if err := h.db.WithContext(ctx).Where("listing_id = ?", baseID).First(&ext).Error; err != nil {
			return err
		}
		if !hasBeam {
			beam = ext.BeamM
		}
		if !hasLength {
			length = ext.LengthM
		}
		if msg := checkBeamAgainstLength(beam, length); msg != "" {
			errs.Add("beam_m", msg)
			return errs
		}
	}

	return h.db.WithContext(ctx).
		Model(&model.YachtExtension{}).
		Where("listing_id = ?", baseID).
		Updates(toColumns(cleaned)).Error
}

func (h *YachtHandler) FilterScopes(params map[string]string) []Scope {
	var scopes []Scope
	if v, ok := parseFloatParam(params, "min_year"); ok {
		scopes = append(scopes, extExists("yacht_extensions", "e.year >= ?", int(v)))
	}
	if v, ok := parseFloatParam(params, "max_year"); ok {
		scopes = append(scopes, extExists("yacht_extensions", "e.year <= ?", int(v)))
	}
	if v, ok := parseFloatParam(params, "min_length"); ok {
		scopes = append(scopes, extExists("yacht_extensions", "e.length_m >= ?", v))
	}
	if v, ok := parseFloatParam(params, "max_length"); ok {
		scopes = append(scopes, extExists("yacht_extensions", "e.length_m <= ?", v))
	}
	if s := params["engine_type"]; s != "" {
		scopes = append(scopes, extExists("yacht_extensions", "e.engine_type = ?", s))
	}
	if s := params["condition"]; s != "" {
		scopes = append(scopes, extExists("yacht_extensions", "e.condition = ?", s))
	}
	return scopes
}
