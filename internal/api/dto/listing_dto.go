package dto

// ==================== 请求 ====================

// CreateListingRequest 创建刊登请求
// attributes 里的键由 listing_type 对应的 handler 解释
type CreateListingRequest struct {
	ListingType   string                 `json:"listing_type" binding:"required"`
	Title         string                 `json:"title" binding:"required"`
	Description   string                 `json:"description"`
	Price         string                 `json:"price" binding:"required"`
	Currency      string                 `json:"currency" binding:"required"`
	Location      string                 `json:"location"`
	CategoryID    int64                  `json:"category_id"`
	SubcategoryID int64                  `json:"subcategory_id"`
	Attributes    map[string]interface{} `json:"attributes"`
}

// UpdateListingRequest 部分更新请求，信封字段缺省表示不改
type UpdateListingRequest struct {
	Title         *string                `json:"title"`
	Description   *string                `json:"description"`
	Price         *string                `json:"price"`
	Currency      *string                `json:"currency"`
	Location      *string                `json:"location"`
	CategoryID    *int64                 `json:"category_id"`
	SubcategoryID *int64                 `json:"subcategory_id"`
	Attributes    map[string]interface{} `json:"attributes"`
}

// RejectListingRequest 驳回请求
type RejectListingRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// UploadImageRequest Base64 图片上传请求
type UploadImageRequest struct {
	Data string `json:"data" binding:"required"`
	Rank int    `json:"rank"`
}

// ==================== 响应 ====================

// PageResponse 分页响应
type PageResponse struct {
	List     interface{} `json:"list"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}
