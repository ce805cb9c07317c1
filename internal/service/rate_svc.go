package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"

	"marinemarket_v1/internal/model"
	"marinemarket_v1/internal/repository"
	"marinemarket_v1/pkg/utils"
)

// 汇率缓存键与有效期
const (
	rateCacheKey = "currency_rates"
	rateCacheTTL = 30 * time.Minute
)

// 刊登支持的币种，基准货币 EUR
var (
	rateBase   = "EUR"
	rateQuotes = []string{"TRY", "USD"}
)

// frankfurterResp 汇率 API 响应
type frankfurterResp struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// ==================== CurrencyRateService ====================

// CurrencyRateService 汇率：定时拉取 + 缓存 + 换算
type CurrencyRateService struct {
	rateRepo repository.CurrencyRateRepository
	client   *resty.Client
	baseURL  string
}

// NewCurrencyRateService 创建汇率服务
func NewCurrencyRateService(rateRepo repository.CurrencyRateRepository) *CurrencyRateService {
	return &CurrencyRateService{
		rateRepo: rateRepo,
		client:   utils.NewAPIClient(),
		baseURL:  "https://api.frankfurter.app",
	}
}

// SetBaseURL 测试用，换掉外部 API 地址
func (s *CurrencyRateService) SetBaseURL(url string) {
	s.baseURL = url
}

// FetchRates 拉最新汇率并落库，定时任务调用
func (s *CurrencyRateService) FetchRates(ctx context.Context) error {
	var result frankfurterResp
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("from", rateBase).
		SetQueryParam("to", "TRY,USD").
		SetResult(&result).
		Get(s.baseURL + "/latest")
	if err != nil {
		return fmt.Errorf("拉取汇率失败: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("拉取汇率失败: HTTP %d", resp.StatusCode())
	}

	for _, quote := range rateQuotes {
		rate, ok := result.Rates[quote]
		if !ok {
			log.Printf("[Rate] 响应缺少币种 %s，跳过", quote)
			continue
		}
		if err := s.rateRepo.Upsert(ctx, &model.CurrencyRate{
			Base:  rateBase,
			Quote: quote,
			Rate:  rate,
		}); err != nil {
			return fmt.Errorf("保存汇率 %s/%s 失败: %w", rateBase, quote, err)
		}
	}

	// 落库成功后刷新缓存
	utils.DeleteCache(rateCacheKey)
	log.Printf("[Rate] 汇率已更新: base=%s date=%s", result.Base, result.Date)
	return nil
}

// GetRates 当前全部汇率，先查缓存再落库查
func (s *CurrencyRateService) GetRates(ctx context.Context) ([]model.CurrencyRate, error) {
	if cached, ok := utils.GetCache(rateCacheKey); ok {
		var rates []model.CurrencyRate
		if err := json.Unmarshal([]byte(cached), &rates); err == nil {
			return rates, nil
		}
	}

	rates, err := s.rateRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(rates); err == nil {
		utils.SetCache(rateCacheKey, string(data), rateCacheTTL)
	}
	return rates, nil
}

// Convert 金额换算，amount 为最小货币单位
// 同币种原样返回；不同币种经 EUR 中转
func (s *CurrencyRateService) Convert(ctx context.Context, amount int64, from, to string) (int64, error) {
	if from == to {
		return amount, nil
	}

	toEUR, err := s.rateToEUR(ctx, from)
	if err != nil {
		return 0, err
	}
	fromEUR, err := s.rateFromEUR(ctx, to)
	if err != nil {
		return 0, err
	}

	converted := float64(amount) * toEUR * fromEUR
	return int64(converted + 0.5), nil
}

// rateToEUR 1 单位 cur 折合多少 EUR
func (s *CurrencyRateService) rateToEUR(ctx context.Context, cur string) (float64, error) {
	if cur == rateBase {
		return 1, nil
	}
	rate, err := s.rateRepo.Get(ctx, rateBase, cur)
	if err != nil {
		return 0, fmt.Errorf("缺少汇率 %s/%s: %w", rateBase, cur, err)
	}
	if rate.Rate == 0 {
		return 0, fmt.Errorf("汇率 %s/%s 为零", rateBase, cur)
	}
	return 1 / rate.Rate, nil
}

// rateFromEUR 1 EUR 折合多少 cur
func (s *CurrencyRateService) rateFromEUR(ctx context.Context, cur string) (float64, error) {
	if cur == rateBase {
		return 1, nil
	}
	rate, err := s.rateRepo.Get(ctx, rateBase, cur)
	if err != nil {
		return 0, fmt.Errorf("缺少汇率 %s/%s: %w", rateBase, cur, err)
	}
	return rate.Rate, nil
}
