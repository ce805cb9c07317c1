package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marinemarket_v1/internal/service"
)

type RateController struct {
	rateSvc *service.CurrencyRateService
}

func NewRateController(rateSvc *service.CurrencyRateService) *RateController {
	return &RateController{rateSvc: rateSvc}
}

// GetRates 当前汇率
// @Summary 当前汇率
// @Description 定时任务维护的汇率快照，基准货币 EUR
// @Tags Rate (汇率)
// @Produce json
// @Success 200 {array} model.CurrencyRate "汇率列表"
// @Router /api/rates [get]
func (c *RateController) GetRates(ctx *gin.Context) {
	rates, err := c.rateSvc.GetRates(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, rates)
}
