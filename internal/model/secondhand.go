package model

// SecondhandExtension 二手杂货扩展表，与 Listing 1:1
type SecondhandExtension struct {
	BaseModel
	ListingID int64    `gorm:"uniqueIndex;not null" json:"listing_id"`
	Listing   *Listing `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ItemCategory string `gorm:"size:30;not null;index" json:"item_category"` // apparel, gear, decor, galley, other
	Condition    string `gorm:"size:20;not null" json:"condition"`           // new, good, fair
	Brand        string `gorm:"size:100" json:"brand"`
	Handmade     bool   `gorm:"default:false" json:"handmade"`
}

func (SecondhandExtension) TableName() string {
	return "secondhand_extensions"
}
