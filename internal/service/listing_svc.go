package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"marinemarket_v1/internal/listingtype"
	"marinemarket_v1/internal/model"
	"marinemarket_v1/internal/repository"
)

// ==================== 输入定义 ====================

// UpdateInput 部分更新输入，信封字段 nil 表示不改
// Attributes 整体交给对应类型的 handler，不认识的键由 handler 静默忽略
type UpdateInput struct {
	Title         *string                `json:"title"`
	Description   *string                `json:"description"`
	Price         *string                `json:"price"`
	Currency      *string                `json:"currency"`
	Location      *string                `json:"location"`
	CategoryID    *int64                 `json:"category_id"`
	SubcategoryID *int64                 `json:"subcategory_id"`
	Attributes    map[string]interface{} `json:"attributes"`
}

// ==================== ListingService ====================

// ListingService 刊登业务编排
// 公共信封走仓储，类型特有逻辑一律委托给注册表里的 TypeHandler
type ListingService struct {
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	registry    *listingtype.Registry
}

// NewListingService 创建刊登服务
func NewListingService(
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	registry *listingtype.Registry,
) *ListingService {
	return &ListingService{
		listingRepo: listingRepo,
		userRepo:    userRepo,
		registry:    registry,
	}
}

// Registry 暴露注册表，schema 接口直接读
func (s *ListingService) Registry() *listingtype.Registry {
	return s.registry
}

// ==================== 创建 ====================

// Create 创建刊登：校验 -> 同一事务写公共信封和扩展行 -> 返回合并视图
// 扩展行写失败整体回滚，不留孤儿信封
func (s *ListingService) Create(ctx context.Context, ownerID int64, typ string, in listingtype.Input) (map[string]interface{}, error) {
	handler, err := s.registry.Get(typ)
	if err != nil {
		return nil, err
	}

	validated, verrs := handler.Validate(in)
	if verrs != nil {
		return nil, verrs
	}

	listing := &model.Listing{
		PublicID:      uuid.New().String(),
		OwnerID:       ownerID,
		Title:         validated.Envelope.Title,
		Description:   validated.Envelope.Description,
		PriceAmount:   validated.PriceAmount,
		PriceDivisor:  listingtype.PriceDivisor,
		Currency:      validated.Envelope.Currency,
		ListingType:   typ,
		Status:        model.ListingStatusPending,
		Location:      validated.Envelope.Location,
		CategoryID:    validated.Envelope.CategoryID,
		SubcategoryID: validated.Envelope.SubcategoryID,
	}

	err = s.listingRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.listingRepo.WithTx(tx).Create(ctx, listing); err != nil {
			return fmt.Errorf("create listing: %w", err)
		}
		if err := handler.WithTx(tx).CreateExtension(ctx, listing.ID, validated.Attributes); err != nil {
			return fmt.Errorf("create %s extension: %w", typ, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Listing] 创建成功: %s type=%s owner=%d", listing.PublicID, typ, ownerID)
	return s.buildView(ctx, listing)
}

// ==================== 读取 ====================

// GetByPublicID 按对外 ID 取合并视图
// approved 对所有人可见，其他状态只有 owner 或管理员能看到
func (s *ListingService) GetByPublicID(ctx context.Context, publicID string, callerID int64, privileged bool) (map[string]interface{}, error) {
	listing, err := s.findVisible(ctx, publicID, callerID, privileged)
	if err != nil {
		return nil, err
	}

	view, err := s.buildView(ctx, listing)
	if err != nil {
		return nil, err
	}

	// 详情页带卖家摘要
	if owner, err := s.userRepo.GetByID(ctx, listing.OwnerID); err == nil {
		view["owner"] = map[string]interface{}{
			"id":       owner.ID,
			"username": owner.Username,
		}
	}
	return view, nil
}

// ==================== 更新 ====================

// Update 部分更新：信封字段与扩展字段分流，各走各的校验
// 只有 owner 或管理员可以改
func (s *ListingService) Update(ctx context.Context, publicID string, callerID int64, privileged bool, in UpdateInput) (map[string]interface{}, error) {
	listing, err := s.listingRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if listing.Status == model.ListingStatusDeleted {
		return nil, ErrNotFound
	}
	if listing.OwnerID != callerID && !privileged {
		return nil, ErrForbidden
	}

	handler, err := s.registry.Get(listing.ListingType)
	if err != nil {
		return nil, err
	}

	cols, verrs := listingtype.ValidateEnvelopeUpdate(listingtype.EnvelopeUpdate{
		Title:         in.Title,
		Description:   in.Description,
		Price:         in.Price,
		Currency:      in.Currency,
		Location:      in.Location,
		CategoryID:    in.CategoryID,
		SubcategoryID: in.SubcategoryID,
	})
	if verrs != nil {
		return nil, verrs
	}

	// owner 修改后回到待审核，管理员改动不打回
	if len(cols) > 0 || len(in.Attributes) > 0 {
		if !privileged && listing.Status != model.ListingStatusPending {
			cols["status"] = model.ListingStatusPending
			cols["reject_reason"] = ""
		}
	}

	err = s.listingRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if len(cols) > 0 {
			if err := s.listingRepo.WithTx(tx).UpdateFields(ctx, listing.ID, cols); err != nil {
				return fmt.Errorf("update listing fields: %w", err)
			}
		}
		if len(in.Attributes) > 0 {
			if err := handler.WithTx(tx).UpdateExtension(ctx, listing.ID, in.Attributes); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.listingRepo.GetByID(ctx, listing.ID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, updated)
}

// ==================== 删除 ====================

// Delete 软删除，状态置 deleted（终态），扩展行保留
func (s *ListingService) Delete(ctx context.Context, publicID string, callerID int64, privileged bool) error {
	listing, err := s.listingRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		return mapNotFound(err)
	}
	if listing.Status == model.ListingStatusDeleted {
		return ErrNotFound
	}
	if listing.OwnerID != callerID && !privileged {
		return ErrForbidden
	}

	if err := s.listingRepo.UpdateStatus(ctx, listing.ID, model.ListingStatusDeleted, ""); err != nil {
		return err
	}
	log.Printf("[Listing] 已删除: %s by user=%d", publicID, callerID)
	return nil
}

// ==================== 查询 ====================

// Query 组合查询：公共筛选 + 类型特有筛选
// typeParams 只有在指定 listing_type 时才生效，交给对应 handler 翻译成谓词
func (s *ListingService) Query(ctx context.Context, filter listingtype.CommonFilter, typeParams map[string]string, page, pageSize int) ([]map[string]interface{}, int64, error) {
	var typeScopes []listingtype.Scope
	if filter.ListingType != "" {
		handler, err := s.registry.Get(filter.ListingType)
		if err != nil {
			return nil, 0, err
		}
		typeScopes = handler.FilterScopes(typeParams)
	}

	scopes := listingtype.Compose(filter, typeScopes)
	listings, total, err := s.listingRepo.List(ctx, scopes, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	views := make([]map[string]interface{}, 0, len(listings))
	for i := range listings {
		view, err := s.buildView(ctx, &listings[i])
		if err != nil {
			return nil, 0, err
		}
		views = append(views, view)
	}
	return views, total, nil
}

// ListPending 管理端待审核队列
func (s *ListingService) ListPending(ctx context.Context, page, pageSize int) ([]map[string]interface{}, int64, error) {
	listings, total, err := s.listingRepo.ListPending(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	views := make([]map[string]interface{}, 0, len(listings))
	for i := range listings {
		view, err := s.buildView(ctx, &listings[i])
		if err != nil {
			return nil, 0, err
		}
		views = append(views, view)
	}
	return views, total, nil
}

// ==================== 审核状态机 ====================

// Approve pending -> approved，其余状态报错
func (s *ListingService) Approve(ctx context.Context, publicID string) (map[string]interface{}, error) {
	return s.transition(ctx, publicID, model.ListingStatusApproved, "")
}

// Reject pending -> rejected，必须带原因
func (s *ListingService) Reject(ctx context.Context, publicID string, reason string) (map[string]interface{}, error) {
	if reason == "" {
		var verrs listingtype.ValidationErrors
		verrs.Add("reason", "is required")
		return nil, verrs
	}
	return s.transition(ctx, publicID, model.ListingStatusRejected, reason)
}

func (s *ListingService) transition(ctx context.Context, publicID string, target model.ListingStatus, reason string) (map[string]interface{}, error) {
	listing, err := s.listingRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if listing.Status != model.ListingStatusPending {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, listing.Status, target)
	}

	if err := s.listingRepo.UpdateStatus(ctx, listing.ID, target, reason); err != nil {
		return nil, err
	}
	log.Printf("[Listing] 审核: %s %s -> %s", publicID, listing.Status, target)

	updated, err := s.listingRepo.GetByID(ctx, listing.ID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, updated)
}

// ==================== 视图拼装 ====================

// buildView 拼合并视图：信封字段平铺，扩展字段挂在类型名下
// 信封存在但扩展行缺失视为数据不一致，直接报错不兜底
func (s *ListingService) buildView(ctx context.Context, listing *model.Listing) (map[string]interface{}, error) {
	handler, err := s.registry.Get(listing.ListingType)
	if err != nil {
		return nil, err
	}

	ext, err := handler.GetExtension(ctx, listing.ID)
	if err != nil {
		return nil, err
	}
	if ext == nil {
		log.Printf("[Listing] 数据不一致: %s (%s) 缺扩展行", listing.PublicID, listing.ListingType)
		return nil, fmt.Errorf("%w: listing %s type %s", ErrMissingExtension, listing.PublicID, listing.ListingType)
	}

	images := make([]map[string]interface{}, 0, len(listing.Images))
	for _, img := range listing.Images {
		images = append(images, map[string]interface{}{
			"id":   img.ID,
			"url":  img.URL,
			"rank": img.Rank,
		})
	}

	view := map[string]interface{}{
		"id":             listing.PublicID,
		"owner_id":       listing.OwnerID,
		"listing_type":   listing.ListingType,
		"status":         listing.Status,
		"title":          listing.Title,
		"description":    listing.Description,
		"price":          listingtype.FormatPrice(listing.PriceAmount, listing.PriceDivisor),
		"currency":       listing.Currency,
		"location":       listing.Location,
		"category_id":    listing.CategoryID,
		"subcategory_id": listing.SubcategoryID,
		"images":         images,
		"created_at":     listing.CreatedAt,
		"updated_at":     listing.UpdatedAt,
		listing.ListingType: ext,
	}
	if listing.Status == model.ListingStatusRejected && listing.RejectReason != "" {
		view["reject_reason"] = listing.RejectReason
	}
	return view, nil
}

// findVisible 按可见性规则取刊登
func (s *ListingService) findVisible(ctx context.Context, publicID string, callerID int64, privileged bool) (*model.Listing, error) {
	listing, err := s.listingRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if listing.Status == model.ListingStatusApproved {
		return listing, nil
	}
	if privileged || listing.OwnerID == callerID {
		if listing.Status == model.ListingStatusDeleted && !privileged {
			return nil, ErrNotFound
		}
		return listing, nil
	}
	return nil, ErrNotFound
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
