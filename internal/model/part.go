package model

import "github.com/lib/pq"

// PartExtension 备件扩展表，与 Listing 1:1
type PartExtension struct {
	BaseModel
	ListingID int64    `gorm:"uniqueIndex;not null" json:"listing_id"`
	Listing   *Listing `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	PartNumber       string         `gorm:"size:100;not null;index" json:"part_number"`
	Brand            string         `gorm:"size:100;not null;index" json:"brand"`
	Condition        string         `gorm:"size:20;not null" json:"condition"` // new, used, refurbished
	CompatibleModels pq.StringArray `gorm:"type:text[]" json:"compatible_models"`
	WeightKg         float64        `gorm:"default:0" json:"weight_kg"`
}

func (PartExtension) TableName() string {
	return "part_extensions"
}
