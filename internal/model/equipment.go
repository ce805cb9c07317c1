package model

// EquipmentExtension 装备扩展表，与 Listing 1:1
type EquipmentExtension struct {
	BaseModel
	ListingID int64    `gorm:"uniqueIndex;not null" json:"listing_id"`
	Listing   *Listing `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	EquipmentType string `gorm:"size:30;not null;index" json:"equipment_type"` // navigation, safety, fishing, anchoring, electronics
	Brand         string `gorm:"size:100" json:"brand"`
	Model         string `gorm:"size:100" json:"model"`
	Year          int    `gorm:"default:0" json:"year"`
	Condition     string `gorm:"size:20;not null" json:"condition"` // new, used, refurbished
}

func (EquipmentExtension) TableName() string {
	return "equipment_extensions"
}
