package model

import "github.com/lib/pq"

// CrewExtension 船员招聘扩展表，与 Listing 1:1
type CrewExtension struct {
	BaseModel
	ListingID int64    `gorm:"uniqueIndex;not null" json:"listing_id"`
	Listing   *Listing `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Position        string         `gorm:"size:30;not null;index" json:"position"` // captain, deckhand, engineer, chef, steward
	ExperienceYears int            `gorm:"default:0" json:"experience_years"`
	Licenses        pq.StringArray `gorm:"type:text[]" json:"licenses"`
	ContractType    string         `gorm:"size:20" json:"contract_type"` // permanent, seasonal, delivery
	AvailableFrom   string         `gorm:"size:10" json:"available_from"` // YYYY-MM-DD
}

func (CrewExtension) TableName() string {
	return "crew_extensions"
}
