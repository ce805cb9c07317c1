package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"marinemarket_v1/internal/api/dto"
	"marinemarket_v1/internal/listingtype"
	"marinemarket_v1/internal/middleware"
	"marinemarket_v1/internal/service"
)

// 公共筛选参数名，其余查询参数交给类型 handler 解释
var commonQueryKeys = map[string]bool{
	"status": true, "listing_type": true, "keyword": true, "location": true,
	"category_id": true, "owner_id": true, "min_price": true, "max_price": true,
	"page": true, "page_size": true, "mine": true,
}

type ListingController struct {
	listingSvc *service.ListingService
	imageSvc   *service.ImageService
}

func NewListingController(listingSvc *service.ListingService, imageSvc *service.ImageService) *ListingController {
	return &ListingController{
		listingSvc: listingSvc,
		imageSvc:   imageSvc,
	}
}

// Create 创建刊登
// @Summary 创建刊登
// @Description 创建新刊登，attributes 按 listing_type 对应的 schema 校验
// @Tags Listing (刊登)
// @Accept json
// @Produce json
// @Param request body dto.CreateListingRequest true "刊登数据"
// @Success 201 {object} map[string]interface{} "创建的刊登"
// @Failure 400 {object} map[string]interface{} "校验失败"
// @Security BearerAuth
// @Router /api/listings [post]
func (c *ListingController) Create(ctx *gin.Context) {
	var req dto.CreateListingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	in := listingtype.Input{
		Envelope: listingtype.Envelope{
			Title:         req.Title,
			Description:   req.Description,
			Price:         req.Price,
			Currency:      req.Currency,
			Location:      req.Location,
			CategoryID:    req.CategoryID,
			SubcategoryID: req.SubcategoryID,
		},
		Attributes: req.Attributes,
	}

	view, err := c.listingSvc.Create(ctx.Request.Context(), middleware.GetUserID(ctx), req.ListingType, in)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, view)
}

// Get 刊登详情
// @Summary 刊登详情
// @Description 按对外 ID 查合并视图，非 approved 状态仅 owner/管理员可见
// @Tags Listing (刊登)
// @Produce json
// @Param id path string true "刊登 ID"
// @Success 200 {object} map[string]interface{} "刊登详情"
// @Failure 404 {object} map[string]interface{} "不存在"
// @Router /api/listings/{id} [get]
func (c *ListingController) Get(ctx *gin.Context) {
	view, err := c.listingSvc.GetByPublicID(
		ctx.Request.Context(),
		ctx.Param("id"),
		middleware.GetUserID(ctx),
		middleware.IsAdmin(ctx),
	)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, view)
}

// List 组合查询
// @Summary 刊登列表
// @Description 公共筛选 + 类型特有筛选。指定 listing_type 后可带该类型的筛选参数，如 min_year、berth_type
// @Tags Listing (刊登)
// @Produce json
// @Param listing_type query string false "刊登类型"
// @Param keyword query string false "标题/描述关键词"
// @Param location query string false "地区"
// @Param min_price query number false "最低价"
// @Param max_price query number false "最高价"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} dto.PageResponse "刊登列表"
// @Router /api/listings [get]
func (c *ListingController) List(ctx *gin.Context) {
	filter := listingtype.CommonFilter{
		Status:      ctx.Query("status"),
		ListingType: ctx.Query("listing_type"),
		Keyword:     ctx.Query("keyword"),
		Location:    ctx.Query("location"),
		Privileged:  middleware.IsAdmin(ctx),
	}

	if v := ctx.Query("category_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.CategoryID = id
		}
	}
	if v := ctx.Query("min_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &f
		}
	}
	if v := ctx.Query("max_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &f
		}
	}
	// mine=1 时只看自己的刊登，登录用户可看全部状态
	if ctx.Query("mine") == "1" {
		if uid := middleware.GetUserID(ctx); uid > 0 {
			filter.OwnerID = uid
			filter.Privileged = true
		}
	}

	// 非公共参数原样传给类型 handler，不认识的它会忽略
	typeParams := make(map[string]string)
	for key, values := range ctx.Request.URL.Query() {
		if !commonQueryKeys[key] && len(values) > 0 {
			typeParams[key] = values[0]
		}
	}

	page, pageSize := parsePage(ctx)
	views, total, err := c.listingSvc.Query(ctx.Request.Context(), filter, typeParams, page, pageSize)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PageResponse{
		List:     views,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// Update 部分更新
// @Summary 更新刊登
// @Description 信封字段与类型特有字段都可改，owner 修改后回到待审核
// @Tags Listing (刊登)
// @Accept json
// @Produce json
// @Param id path string true "刊登 ID"
// @Param request body dto.UpdateListingRequest true "更新内容"
// @Success 200 {object} map[string]interface{} "更新后的刊登"
// @Failure 403 {object} map[string]interface{} "无权操作"
// @Security BearerAuth
// @Router /api/listings/{id} [put]
func (c *ListingController) Update(ctx *gin.Context) {
	var req dto.UpdateListingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	view, err := c.listingSvc.Update(
		ctx.Request.Context(),
		ctx.Param("id"),
		middleware.GetUserID(ctx),
		middleware.IsAdmin(ctx),
		service.UpdateInput{
			Title:         req.Title,
			Description:   req.Description,
			Price:         req.Price,
			Currency:      req.Currency,
			Location:      req.Location,
			CategoryID:    req.CategoryID,
			SubcategoryID: req.SubcategoryID,
			Attributes:    req.Attributes,
		},
	)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, view)
}

// Delete 删除刊登（软删除）
// @Summary 删除刊登
// @Tags Listing (刊登)
// @Produce json
// @Param id path string true "刊登 ID"
// @Success 200 {object} map[string]string "删除成功"
// @Security BearerAuth
// @Router /api/listings/{id} [delete]
func (c *ListingController) Delete(ctx *gin.Context) {
	err := c.listingSvc.Delete(
		ctx.Request.Context(),
		ctx.Param("id"),
		middleware.GetUserID(ctx),
		middleware.IsAdmin(ctx),
	)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

// UploadImage 上传图片
// @Summary 上传刊登图片
// @Description Base64 图片上传，每个刊登最多 12 张
// @Tags Listing (刊登)
// @Accept json
// @Produce json
// @Param id path string true "刊登 ID"
// @Param request body dto.UploadImageRequest true "图片数据"
// @Success 201 {object} model.ListingImage "图片记录"
// @Security BearerAuth
// @Router /api/listings/{id}/images [post]
func (c *ListingController) UploadImage(ctx *gin.Context) {
	var req dto.UploadImageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	image, err := c.imageSvc.Upload(
		ctx.Request.Context(),
		ctx.Param("id"),
		middleware.GetUserID(ctx),
		middleware.IsAdmin(ctx),
		req.Data,
		req.Rank,
	)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, image)
}

// DeleteImage 删除图片
// @Summary 删除刊登图片
// @Tags Listing (刊登)
// @Produce json
// @Param id path string true "刊登 ID"
// @Param image_id path int true "图片 ID"
// @Success 200 {object} map[string]string "删除成功"
// @Security BearerAuth
// @Router /api/listings/{id}/images/{image_id} [delete]
func (c *ListingController) DeleteImage(ctx *gin.Context) {
	imageID, err := strconv.ParseInt(ctx.Param("image_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的图片ID"})
		return
	}

	err = c.imageSvc.Delete(
		ctx.Request.Context(),
		ctx.Param("id"),
		imageID,
		middleware.GetUserID(ctx),
		middleware.IsAdmin(ctx),
	)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}
