package model

// ServiceExtension 服务类刊登扩展表，与 Listing 1:1
type ServiceExtension struct {
	BaseModel
	ListingID int64    `gorm:"uniqueIndex;not null" json:"listing_id"`
	Listing   *Listing `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ServiceType  string  `gorm:"size:30;not null;index" json:"service_type"` // maintenance, transport, cleaning, rigging, training
	CoverageArea string  `gorm:"size:200" json:"coverage_area"`
	Mobile       bool    `gorm:"default:false" json:"mobile"` // 是否上门
	HourlyRate   float64 `gorm:"default:0" json:"hourly_rate"`
}

func (ServiceExtension) TableName() string {
	return "service_extensions"
}
