package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marinemarket_v1/internal/api/dto"
	"marinemarket_v1/internal/service"
)

// AdminController 审核管理接口，整组路由挂 RequireRole(admin)
type AdminController struct {
	listingSvc *service.ListingService
}

func NewAdminController(listingSvc *service.ListingService) *AdminController {
	return &AdminController{listingSvc: listingSvc}
}

// ListPending 待审核队列
// @Summary 待审核刊登列表
// @Tags Admin (审核管理)
// @Produce json
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} dto.PageResponse "待审核列表"
// @Security BearerAuth
// @Router /api/admin/listings/pending [get]
func (c *AdminController) ListPending(ctx *gin.Context) {
	page, pageSize := parsePage(ctx)
	views, total, err := c.listingSvc.ListPending(ctx.Request.Context(), page, pageSize)
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

// Approve 审核通过
// @Summary 审核通过
// @Description 只有 pending 状态能通过，其余状态返回 409
// @Tags Admin (审核管理)
// @Produce json
// @Param id path string true "刊登 ID"
// @Success 200 {object} map[string]interface{} "审核后的刊登"
// @Failure 409 {object} map[string]interface{} "状态不允许"
// @Security BearerAuth
// @Router /api/admin/listings/{id}/approve [post]
func (c *AdminController) Approve(ctx *gin.Context) {
	view, err := c.listingSvc.Approve(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, view)
}

// Reject 审核驳回
// @Summary 审核驳回
// @Description 驳回必须带原因，只有 pending 状态能驳回
// @Tags Admin (审核管理)
// @Accept json
// @Produce json
// @Param id path string true "刊登 ID"
// @Param request body dto.RejectListingRequest true "驳回原因"
// @Success 200 {object} map[string]interface{} "审核后的刊登"
// @Failure 409 {object} map[string]interface{} "状态不允许"
// @Security BearerAuth
// @Router /api/admin/listings/{id}/reject [post]
func (c *AdminController) Reject(ctx *gin.Context) {
	var req dto.RejectListingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	view, err := c.listingSvc.Reject(ctx.Request.Context(), ctx.Param("id"), req.Reason)
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, view)
}
