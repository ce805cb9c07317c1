package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"marinemarket_v1/internal/model"
	"marinemarket_v1/internal/repository"
	"marinemarket_v1/pkg/utils"
)

func setupRateService(t *testing.T) (*CurrencyRateService, *httptest.Server) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.CurrencyRate{}); err != nil {
		t.Fatalf("建表失败: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"base":"EUR","date":"2026-08-28","rates":{"TRY":47.85,"USD":1.09}}`))
	}))
	t.Cleanup(server.Close)

	svc := NewCurrencyRateService(repository.NewCurrencyRateRepository(db))
	svc.SetBaseURL(server.URL)

	// 进程级缓存，先清掉避免用例间串味
	utils.DeleteCache(rateCacheKey)
	return svc, server
}

func TestCurrencyRateService_FetchAndGet(t *testing.T) {
	svc, _ := setupRateService(t)
	ctx := context.Background()

	if err := svc.FetchRates(ctx); err != nil {
		t.Fatalf("拉取汇率失败: %v", err)
	}

	rates, err := svc.GetRates(ctx)
	if err != nil {
		t.Fatalf("读取汇率失败: %v", err)
	}
	if len(rates) != 2 {
		t.Fatalf("期望 2 条汇率，得到 %d", len(rates))
	}

	// 重复拉取走 upsert，不产生新行
	if err := svc.FetchRates(ctx); err != nil {
		t.Fatalf("二次拉取失败: %v", err)
	}
	rates, _ = svc.GetRates(ctx)
	if len(rates) != 2 {
		t.Errorf("upsert 后仍应是 2 条，得到 %d", len(rates))
	}
}

func TestCurrencyRateService_Convert(t *testing.T) {
	svc, _ := setupRateService(t)
	ctx := context.Background()

	if err := svc.FetchRates(ctx); err != nil {
		t.Fatalf("拉取汇率失败: %v", err)
	}

	// 同币种原样返回
	got, err := svc.Convert(ctx, 10000, "EUR", "EUR")
	if err != nil || got != 10000 {
		t.Errorf("同币种换算错误: %d, %v", got, err)
	}

	// EUR -> USD: 100.00 EUR * 1.09 = 109.00 USD
	got, err = svc.Convert(ctx, 10000, "EUR", "USD")
	if err != nil {
		t.Fatalf("换算失败: %v", err)
	}
	if got != 10900 {
		t.Errorf("EUR->USD 换算错误: %d", got)
	}

	// 没有的币种直接报错
	if _, err := svc.Convert(ctx, 10000, "GBP", "EUR"); err == nil {
		t.Error("缺少汇率应报错")
	}
}
