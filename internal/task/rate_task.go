package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"marinemarket_v1/internal/service"
)

// RateTask 汇率刷新定时任务
type RateTask struct {
	RateSvc *service.CurrencyRateService
	Cron    *cron.Cron
}

func NewRateTask(rateSvc *service.CurrencyRateService) *RateTask {
	return &RateTask{
		RateSvc: rateSvc,
		Cron:    cron.New(cron.WithSeconds()),
	}
}

// Start 启动定时任务
func (t *RateTask) Start() {
	// 启动先拉一次，保证服务起来就有汇率可用
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		log.Println("[Task] 服务启动，正在执行首次汇率拉取...")
		t.refreshJob(ctx)
	}()

	// 每小时整点刷新
	_, err := t.Cron.AddFunc("0 0 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		t.refreshJob(ctx)
	})
	if err != nil {
		log.Fatalf("无法启动汇率定时任务: %v", err)
	}

	t.Cron.Start()
	log.Println("汇率刷新任务已启动 (每小时一次)")
}

// Stop 停止定时任务
func (t *RateTask) Stop() {
	t.Cron.Stop()
}

func (t *RateTask) refreshJob(ctx context.Context) {
	if err := t.RateSvc.FetchRates(ctx); err != nil {
		// 外部 API 挂了不影响主业务，旧汇率继续用
		log.Printf("[Cron] 汇率拉取失败: %v", err)
	}
}
