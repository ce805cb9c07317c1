package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"marinemarket_v1/internal/listingtype"
	"marinemarket_v1/internal/service"
)

// handleError 统一把业务错误翻译成 HTTP 响应
// 校验错误带字段明细，其余按错误类别给状态码
func handleError(ctx *gin.Context, err error) {
	var verrs listingtype.ValidationErrors
	if errors.As(err, &verrs) {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation failed",
			"fields": verrs,
		})
		return
	}

	switch {
	case errors.Is(err, listingtype.ErrUnknownType):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrForbidden):
		ctx.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, service.ErrInvalidTransition):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrDuplicateUser):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// parsePage 解析分页参数
func parsePage(ctx *gin.Context) (page, pageSize int) {
	page = queryInt(ctx, "page", 1)
	pageSize = queryInt(ctx, "page_size", 20)
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

func queryInt(ctx *gin.Context, key string, def int) int {
	s := ctx.Query(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
