package model

import "gorm.io/datatypes"

// InsuranceExtension 保险产品扩展表，与 Listing 1:1
type InsuranceExtension struct {
	BaseModel
	ListingID int64    `gorm:"uniqueIndex;not null" json:"listing_id"`
	Listing   *Listing `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CoverageType string `gorm:"size:30;not null;index" json:"coverage_type"` // hull, liability, comprehensive
	Insurer      string `gorm:"size:100;not null;index" json:"insurer"`
	// 最高承保额，主货币单位
	MaxCoverage float64 `gorm:"default:0" json:"max_coverage"`
	ValidMonths int     `gorm:"default:12" json:"valid_months"`
	// 承保明细，结构因保险公司而异，按 JSON 存
	CoverageDetail datatypes.JSON `gorm:"type:jsonb" json:"coverage_detail"`
}

func (InsuranceExtension) TableName() string {
	return "insurance_extensions"
}
