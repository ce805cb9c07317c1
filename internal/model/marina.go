package model

import "github.com/lib/pq"

// MarinaExtension 泊位扩展表，与 Listing 1:1
type MarinaExtension struct {
	BaseModel
	ListingID int64    `gorm:"uniqueIndex;not null" json:"listing_id"`
	Listing   *Listing `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	MaxLengthM float64        `gorm:"not null" json:"max_length_m"`
	MaxBeamM   float64        `gorm:"default:0" json:"max_beam_m"`
	MaxDraftM  float64        `gorm:"default:0" json:"max_draft_m"`
	BerthType  string         `gorm:"size:20;not null" json:"berth_type"` // pontoon, buoy, dry, quay
	Services   pq.StringArray `gorm:"type:text[]" json:"services"`        // water, electricity, wifi, fuel, crane...
	YearRound  bool           `gorm:"default:false" json:"year_round"`
}

func (MarinaExtension) TableName() string {
	return "marina_extensions"
}
