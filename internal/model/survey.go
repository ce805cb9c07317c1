package model

// SurveyExtension 船检/评估服务扩展表，与 Listing 1:1
type SurveyExtension struct {
	BaseModel
	ListingID int64    `gorm:"uniqueIndex;not null" json:"listing_id"`
	Listing   *Listing `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	SurveyType     string  `gorm:"size:30;not null;index" json:"survey_type"` // pre_purchase, insurance, damage, valuation
	Certified      bool    `gorm:"default:false" json:"certified"`
	CertificateNo  string  `gorm:"size:100" json:"certificate_no"`
	TravelRadiusKm float64 `gorm:"default:0" json:"travel_radius_km"`
}

func (SurveyExtension) TableName() string {
	return "survey_extensions"
}
