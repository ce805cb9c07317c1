package model

// YachtExtension 游艇/船只扩展表，与 Listing 1:1
type YachtExtension struct {
	BaseModel
	ListingID int64    `gorm:"uniqueIndex;not null" json:"listing_id"`
	Listing   *Listing `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Year          int     `gorm:"not null" json:"year"`
	LengthM       float64 `gorm:"not null" json:"length_m"`
	BeamM         float64 `gorm:"default:0" json:"beam_m"`
	DraftM        float64 `gorm:"default:0" json:"draft_m"`
	EngineType    string  `gorm:"size:20" json:"engine_type"`     // diesel, petrol, electric, none
	EnginePowerHp float64 `gorm:"default:0" json:"engine_power_hp"`
	HullMaterial  string  `gorm:"size:20" json:"hull_material"` // grp, steel, aluminium, wood, composite
	Condition     string  `gorm:"size:20;not null" json:"condition"` // new, good, fair, project
}

func (YachtExtension) TableName() string {
	return "yacht_extensions"
}
