package model

// StorageExtension 船只寄存扩展表，与 Listing 1:1
type StorageExtension struct {
	BaseModel
	ListingID int64    `gorm:"uniqueIndex;not null" json:"listing_id"`
	Listing   *Listing `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	StorageType string  `gorm:"size:20;not null;index" json:"storage_type"` // indoor, outdoor, container
	MaxLengthM  float64 `gorm:"not null" json:"max_length_m"`
	AreaM2      float64 `gorm:"default:0" json:"area_m2"`
	Secured     bool    `gorm:"default:false" json:"secured"`
	WinterOnly  bool    `gorm:"default:false" json:"winter_only"`
}

func (StorageExtension) TableName() string {
	return "storage_extensions"
}
