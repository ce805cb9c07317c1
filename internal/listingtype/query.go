package listingtype

import (
	"strings"

	"gorm.io/gorm"

	"marinemarket_v1/internal/model"
)

// CommonFilter 所有类型共用的查询条件
type CommonFilter struct {
	Status      string // 空值时非特权默认 approved
	ListingType string
	Keyword     string // title/description 模糊匹配
	Location    string // 子串匹配
	CategoryID  int64
	OwnerID     int64

	// 主货币单位价格区间，nil 表示不限
	MinPrice *float64
	MaxPrice *float64

	// 特权调用方（管理员）可以看非 approved 状态
	Privileged bool
}

// Compose 把公共条件和类型谓词合成一组 AND 谓词
// 纯函数，不触库；状态可见性规则在这里统一收口
func Compose(f CommonFilter, typeScopes []Scope) []Scope {
	scopes := make([]Scope, 0, len(typeScopes)+8)

	// 状态可见性：非特权只能看 approved，特权可指定状态或全看（deleted 除非点名）
	switch {
	case !f.Privileged:
		scopes = append(scopes, where("listings.status = ?", string(model.ListingStatusApproved)))
	case f.Status != "":
		scopes = append(scopes, where("listings.status = ?", f.Status))
	default:
		scopes = append(scopes, where("listings.status != ?", string(model.ListingStatusDeleted)))
	}

	if f.ListingType != "" {
		scopes = append(scopes, where("listings.listing_type = ?", f.ListingType))
	}
	if f.OwnerID > 0 {
		scopes = append(scopes, where("listings.owner_id = ?", f.OwnerID))
	}
	if f.CategoryID > 0 {
		scopes = append(scopes, where("listings.category_id = ?", f.CategoryID))
	}
	if f.Keyword != "" {
		pattern := "%" + strings.ToLower(f.Keyword) + "%"
		scopes = append(scopes, where(
			"(LOWER(listings.title) LIKE ? OR LOWER(listings.description) LIKE ?)",
			pattern, pattern,
		))
	}
	if f.Location != "" {
		scopes = append(scopes, where("LOWER(listings.location) LIKE ?", "%"+strings.ToLower(f.Location)+"%"))
	}
	if f.MinPrice != nil {
		scopes = append(scopes, where("listings.price_amount >= ?", int64(*f.MinPrice*PriceDivisor)))
	}
	if f.MaxPrice != nil {
		scopes = append(scopes, where("listings.price_amount <= ?", int64(*f.MaxPrice*PriceDivisor)))
	}

	return append(scopes, typeScopes...)
}

func where(cond string, args ...interface{}) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(cond, args...)
	}
}
