package service

import (
	"context"
	"fmt"
	"log"

	"marinemarket_v1/internal/listingtype"
	"marinemarket_v1/internal/model"
	"marinemarket_v1/internal/repository"
)

// 单个刊登最多挂的图片数
const maxImagesPerListing = 12

// ==================== ImageService ====================

// ImageService 刊登图片：存储上传 + 数据库记录
type ImageService struct {
	imageRepo   repository.ListingImageRepository
	listingRepo repository.ListingRepository
	storage     StorageProvider
}

// NewImageService 创建图片服务
func NewImageService(
	imageRepo repository.ListingImageRepository,
	listingRepo repository.ListingRepository,
	storage StorageProvider,
) *ImageService {
	return &ImageService{
		imageRepo:   imageRepo,
		listingRepo: listingRepo,
		storage:     storage,
	}
}

// Upload Base64 图片上传，只有 owner 或管理员可以传
// rank 为 0 时排到当前最大 rank 之后
func (s *ImageService) Upload(ctx context.Context, publicID string, callerID int64, privileged bool, base64Data string, rank int) (*model.ListingImage, error) {
	listing, err := s.listingRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if listing.OwnerID != callerID && !privileged {
		return nil, ErrForbidden
	}

	existing, err := s.imageRepo.GetByListingID(ctx, listing.ID)
	if err != nil {
		return nil, err
	}
	if len(existing) >= maxImagesPerListing {
		var verrs listingtype.ValidationErrors
		verrs.Add("data", fmt.Sprintf("at most %d images per listing", maxImagesPerListing))
		return nil, verrs
	}

	url, err := SaveBase64ToStorage(ctx, s.storage, base64Data, listing.ListingType)
	if err != nil {
		var verrs listingtype.ValidationErrors
		verrs.Add("data", err.Error())
		return nil, verrs
	}

	if rank <= 0 {
		maxRank, err := s.imageRepo.MaxRank(ctx, listing.ID)
		if err != nil {
			return nil, err
		}
		rank = maxRank + 1
	}

	image := &model.ListingImage{
		ListingID: listing.ID,
		URL:       url,
		Rank:      rank,
	}
	if err := s.imageRepo.Create(ctx, image); err != nil {
		// 记录失败时清掉已上传的文件，避免存储里留垃圾
		if derr := s.storage.Delete(ctx, url); derr != nil {
			log.Printf("[Image] 回滚删除存储文件失败: %s: %v", url, derr)
		}
		return nil, err
	}

	log.Printf("[Image] 上传成功: listing=%s url=%s", publicID, url)
	return image, nil
}

// Delete 删除图片记录和存储文件
func (s *ImageService) Delete(ctx context.Context, publicID string, imageID int64, callerID int64, privileged bool) error {
	listing, err := s.listingRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		return mapNotFound(err)
	}
	if listing.OwnerID != callerID && !privileged {
		return ErrForbidden
	}

	images, err := s.imageRepo.GetByListingID(ctx, listing.ID)
	if err != nil {
		return err
	}

	var target *model.ListingImage
	for i := range images {
		if images[i].ID == imageID {
			target = &images[i]
			break
		}
	}
	if target == nil {
		return ErrNotFound
	}

	if err := s.imageRepo.Delete(ctx, imageID); err != nil {
		return err
	}

	// 存储删除失败只记日志，数据库记录已经没了
	if err := s.storage.Delete(ctx, target.URL); err != nil {
		log.Printf("[Image] 删除存储文件失败: %s: %v", target.URL, err)
	}
	return nil
}

// PurgeListing 清理任务用：删掉某个刊登的全部图片（含存储文件）
func (s *ImageService) PurgeListing(ctx context.Context, listingID int64) error {
	images, err := s.imageRepo.GetByListingID(ctx, listingID)
	if err != nil {
		return err
	}
	for _, img := range images {
		if err := s.storage.Delete(ctx, img.URL); err != nil {
			log.Printf("[Image] 删除存储文件失败: %s: %v", img.URL, err)
		}
	}
	return s.imageRepo.DeleteByListingID(ctx, listingID)
}
