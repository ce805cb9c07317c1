package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marinemarket_v1/internal/listingtype"
)

type SchemaController struct {
	registry *listingtype.Registry
}

func NewSchemaController(registry *listingtype.Registry) *SchemaController {
	return &SchemaController{registry: registry}
}

// ListSchemas 全部类型的 schema
// @Summary 刊登类型元数据
// @Description 返回所有已注册类型的字段定义和可用筛选参数，前端据此渲染表单
// @Tags Schema (类型元数据)
// @Produce json
// @Success 200 {array} listingtype.TypeSchema "类型列表"
// @Router /api/schemas [get]
func (c *SchemaController) ListSchemas(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.registry.Schemas())
}

// GetSchema 单个类型的 schema
// @Summary 单个刊登类型元数据
// @Tags Schema (类型元数据)
// @Produce json
// @Param type path string true "刊登类型"
// @Success 200 {object} listingtype.TypeSchema "类型定义"
// @Failure 400 {object} map[string]interface{} "未知类型"
// @Router /api/schemas/{type} [get]
func (c *SchemaController) GetSchema(ctx *gin.Context) {
	handler, err := c.registry.Get(ctx.Param("type"))
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, handler.Schema())
}
