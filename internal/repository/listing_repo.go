package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"marinemarket_v1/internal/listingtype"
	"marinemarket_v1/internal/model"
)

// ==================== 接口定义 ====================

// ListingRepository 刊登公共信封仓储接口
// 扩展表不归这里管，读写一律走对应类型的 TypeHandler
type ListingRepository interface {
	Create(ctx context.Context, listing *model.Listing) error
	GetByID(ctx context.Context, id int64) (*model.Listing, error)
	GetByPublicID(ctx context.Context, publicID string) (*model.Listing, error)
	Update(ctx context.Context, listing *model.Listing) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	UpdateStatus(ctx context.Context, id int64, status model.ListingStatus, reason string) error

	// List 按谓词组合查询，newest-first，id 倒序稳定去重
	List(ctx context.Context, scopes []listingtype.Scope, page, pageSize int) ([]model.Listing, int64, error)
	ListPending(ctx context.Context, page, pageSize int) ([]model.Listing, int64, error)

	// 清理相关：找出软删超期的刊登并物理删除（扩展表靠外键级联）
	FindDeletedBefore(ctx context.Context, before time.Time, limit int) ([]model.Listing, error)
	HardDelete(ctx context.Context, id int64) error

	// 事务
	WithTx(tx *gorm.DB) ListingRepository
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ==================== 仓储实现 ====================

type listingRepo struct {
	db *gorm.DB
}

// NewListingRepository 创建刊登仓储
func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepo{db: db}
}

func (r *listingRepo) Create(ctx context.Context, listing *model.Listing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

func (r *listingRepo) GetByID(ctx context.Context, id int64) (*model.Listing, error) {
	var listing model.Listing
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("rank asc") }).
		First(&listing, id).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepo) GetByPublicID(ctx context.Context, publicID string) (*model.Listing, error) {
	var listing model.Listing
	err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("rank asc") }).
		Where("public_id = ?", publicID).
		First(&listing).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepo) Update(ctx context.Context, listing *model.Listing) error {
	return r.db.WithContext(ctx).Save(listing).Error
}

func (r *listingRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Listing{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *listingRepo) UpdateStatus(ctx context.Context, id int64, status model.ListingStatus, reason string) error {
	fields := map[string]interface{}{"status": status}
	if reason != "" {
		fields["reject_reason"] = reason
	}
	return r.db.WithContext(ctx).
		Model(&model.Listing{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *listingRepo) List(ctx context.Context, scopes []listingtype.Scope, page, pageSize int) ([]model.Listing, int64, error) {
	var listings []model.Listing
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Listing{})
	for _, scope := range scopes {
		query = scope(query)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	err := query.
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("rank asc") }).
		Order("created_at DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&listings).Error
	if err != nil {
		return nil, 0, err
	}

	return listings, total, nil
}

func (r *listingRepo) ListPending(ctx context.Context, page, pageSize int) ([]model.Listing, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		return db.Where("listings.status = ?", model.ListingStatusPending)
	}
	return r.List(ctx, []listingtype.Scope{scope}, page, pageSize)
}

func (r *listingRepo) FindDeletedBefore(ctx context.Context, before time.Time, limit int) ([]model.Listing, error) {
	var listings []model.Listing
	err := r.db.WithContext(ctx).
		Where("status = ? AND updated_at < ?", model.ListingStatusDeleted, before).
		Limit(limit).
		Find(&listings).Error
	return listings, err
}

func (r *listingRepo) HardDelete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&model.Listing{}, id).Error
}

func (r *listingRepo) WithTx(tx *gorm.DB) ListingRepository {
	return &listingRepo{db: tx}
}

func (r *listingRepo) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
