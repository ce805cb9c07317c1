package model

// ==================== 状态与货币 ====================

// ListingStatus 刊登状态
type ListingStatus string

const (
	ListingStatusPending  ListingStatus = "pending"  // 待审核
	ListingStatusApproved ListingStatus = "approved" // 已上架
	ListingStatusRejected ListingStatus = "rejected" // 已驳回
	ListingStatusDeleted  ListingStatus = "deleted"  // 已删除（终态）
)

// Currency 币种
type Currency string

const (
	CurrencyTRY Currency = "TRY"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// ValidCurrency 币种是否合法
func ValidCurrency(c string) bool {
	switch Currency(c) {
	case CurrencyTRY, CurrencyUSD, CurrencyEUR:
		return true
	}
	return false
}

// ==================== Listing 公共信封 ====================

// Listing 刊登公共信封，所有类型共享
// 类型特有字段存在各自的扩展表里，listing_type 决定走哪个 handler
type Listing struct {
	BaseModel
	// 对外暴露的不透明 ID，内部主键不出接口
	PublicID string `gorm:"size:36;uniqueIndex;not null" json:"public_id"`

	OwnerID int64 `gorm:"index;not null" json:"owner_id"`
	Owner   *User `gorm:"foreignKey:OwnerID" json:"-"`

	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	// 价格存最小货币单位，除数固定 100
	PriceAmount  int64  `gorm:"not null" json:"price_amount"`
	PriceDivisor int64  `gorm:"default:100" json:"price_divisor"`
	Currency     string `gorm:"size:5;not null;index" json:"currency"`

	ListingType string        `gorm:"size:30;not null;index:idx_type_status" json:"listing_type"`
	Status      ListingStatus `gorm:"size:20;not null;default:'pending';index:idx_type_status" json:"status"`
	// 驳回原因，仅 rejected 状态有值
	RejectReason string `gorm:"size:500" json:"reject_reason,omitempty"`

	Location      string `gorm:"size:200;index" json:"location"`
	CategoryID    int64  `gorm:"index;default:0" json:"category_id"`
	SubcategoryID int64  `gorm:"default:0" json:"subcategory_id"`

	Images []ListingImage `gorm:"foreignKey:ListingID" json:"images,omitempty"`
}

func (Listing) TableName() string {
	return "listings"
}

// ==================== ListingImage ====================

// ListingImage 刊登图片，Rank 决定展示顺序
type ListingImage struct {
	BaseModel
	ListingID int64    `gorm:"index;not null" json:"listing_id"`
	Listing   *Listing `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	URL  string `gorm:"size:512;not null" json:"url"`
	Rank int    `gorm:"default:99" json:"rank"`
}

func (ListingImage) TableName() string {
	return "listing_images"
}
