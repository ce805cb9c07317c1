package repository

import (
	"context"

	"gorm.io/gorm"

	"marinemarket_v1/internal/model"
)

// ListingImageRepository 刊登图片仓储接口
type ListingImageRepository interface {
	Create(ctx context.Context, image *model.ListingImage) error
	GetByListingID(ctx context.Context, listingID int64) ([]model.ListingImage, error)
	MaxRank(ctx context.Context, listingID int64) (int, error)
	Delete(ctx context.Context, id int64) error
	DeleteByListingID(ctx context.Context, listingID int64) error
}

type listingImageRepo struct {
	db *gorm.DB
}

// NewListingImageRepository 创建图片仓储
func NewListingImageRepository(db *gorm.DB) ListingImageRepository {
	return &listingImageRepo{db: db}
}

func (r *listingImageRepo) Create(ctx context.Context, image *model.ListingImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *listingImageRepo) GetByListingID(ctx context.Context, listingID int64) ([]model.ListingImage, error) {
	var images []model.ListingImage
	err := r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order("rank asc").
		Find(&images).Error
	return images, err
}

func (r *listingImageRepo) MaxRank(ctx context.Context, listingID int64) (int, error) {
	var maxRank int
	err := r.db.WithContext(ctx).
		Model(&model.ListingImage{}).
		Where("listing_id = ?", listingID).
		Select("COALESCE(MAX(rank), 0)").
		Scan(&maxRank).Error
	return maxRank, err
}

func (r *listingImageRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.ListingImage{}, id).Error
}

func (r *listingImageRepo) DeleteByListingID(ctx context.Context, listingID int64) error {
	return r.db.WithContext(ctx).
		Unscoped().
		Where("listing_id = ?", listingID).
		Delete(&model.ListingImage{}).Error
}
