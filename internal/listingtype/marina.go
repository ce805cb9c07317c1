package listingtype

import (
	"context"
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"marinemarket_v1/internal/model"
)

const TypeMarina = "marina"

// 泊位可选配套服务
var marinaServices = []string{"water", "electricity", "wifi", "fuel", "crane", "security", "laundry"}

// MarinaHandler 泊位类型
type MarinaHandler struct {
	db     *gorm.DB
	schema TypeSchema
}

func NewMarinaHandler(db *gorm.DB) *MarinaHandler {
	return &MarinaHandler{
		db: db,
		schema: TypeSchema{
			Type:  TypeMarina,
			Label: "Marina Berths",
			Fields: []FieldSpec{
				{Name: "max_length_m", Kind: FieldDecimal, Required: true, Min: f64(2), Max: f64(200)},
				{Name: "berth_type", Kind: FieldEnum, Required: true, Options: []string{"pontoon", "buoy", "dry", "quay"}},
				{Name: "max_beam_m", Kind: FieldDecimal, Min: f64(0.5), Max: f64(50)},
				{Name: "max_draft_m", Kind: FieldDecimal, Min: f64(0.1), Max: f64(20)},
				{Name: "services", Kind: FieldStringList, MaxLen: 20},
				{Name: "year_round", Kind: FieldBool},
			},
			Filters: []string{"min_berth_length", "berth_type", "year_round"},
		},
	}
}

func (h *MarinaHandler) Type() string { return TypeMarina }

func (h *MarinaHandler) Schema() TypeSchema { return h.schema }

func (h *MarinaHandler) WithTx(tx *gorm.DB) TypeHandler {
	return &MarinaHandler{db: tx, schema: h.schema}
}

func (h *MarinaHandler) Validate(in Input) (*Validated, ValidationErrors) {
	v, errs := validateCommon(h.schema.Fields, in)
	if errs != nil {
		return nil, errs
	}

	if msg := checkMarinaServices(attrStrings(v.Attributes, "services")); msg != "" {
		errs.Add("services", msg)
		return nil, errs
	}
	return v, nil
}

// checkMarinaServices services 取值必须在已知配套列表内，创建和更新共用
func checkMarinaServices(list []string) string {
	for _, s := range list {
		if !containsString(marinaServices, s) {
			return "unknown service: " + s
		}
	}
	return ""
}

func (h *MarinaHandler) CreateExtension(ctx context.Context, baseID int64, attrs map[string]interface{}) error {
	ext := &model.MarinaExtension{
		ListingID:  baseID,
		MaxLengthM: attrFloat(attrs, "max_length_m"),
		MaxBeamM:   attrFloat(attrs, "max_beam_m"),
		MaxDraftM:  attrFloat(attrs, "max_draft_m"),
		BerthType:  attrString(attrs, "berth_type"),
		Services:   pq.StringArray(attrStrings(attrs, "services")),
		YearRound:  attrBool(attrs, "year_round"),
	}
	return h.db.WithContext(ctx).Create(ext).Error
}

func (h *MarinaHandler) GetExtension(ctx context.Context, baseID int64) (map[string]interface{}, error) {
	var ext model.MarinaExtension
	err := h.db.WithContext(ctx).Where("listing_id = ?", baseID).First(&ext).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"max_length_m": ext.MaxLengthM,
		"max_beam_m":   ext.MaxBeamM,
		"max_draft_m":  ext.MaxDraftM,
		"berth_type":   ext.BerthType,
		"services":     []string(ext.Services),
		"year_round":   ext.YearRound,
	}, nil
}

func (h *MarinaHandler) UpdateExtension(ctx context.Context, baseID int64, partial map[string]interface{}) error {
	cleaned, errs := CheckFields(h.schema.Fields, partial, true)
	if len(errs) > 0 {
		return errs
	}
	if len(cleaned) == 0 {
		return nil
	}

	// 更新同样过 services 白名单
	if list, ok := cleaned["services"].([]string); ok {
		if msg := checkMarinaServices(list); msg != "" {
			errs.Add("services", msg)
			return errs
		}
	}

	return h.db.WithContext(ctx).
		Model(&model.MarinaExtension{}).
		Where("listing_id = ?", baseID).
		Updates(toColumns(cleaned)).Error
}

func (h *MarinaHandler) FilterScopes(params map[string]string) []Scope {
	var scopes []Scope
	if v, ok := parseFloatParam(params, "min_berth_length"); ok {
		scopes = append(scopes, extExists("marina_extensions", "e.max_length_m >= ?", v))
	}
	if s := params["berth_type"]; s != "" {
		scopes = append(scopes, extExists("marina_extensions", "e.berth_type = ?", s))
	}
	if b, ok := parseBoolParam(params, "year_round"); ok {
		scopes = append(scopes, extExists("marina_extensions", "e.year_round = ?", b))
	}
	return scopes
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
