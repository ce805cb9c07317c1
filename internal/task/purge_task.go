package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"marinemarket_v1/internal/repository"
	"marinemarket_v1/internal/service"
)

// 软删刊登保留多久后物理清除
const purgeRetention = 90 * 24 * time.Hour

// 单轮最多清理的条数，避免一次事务拖太久
const purgeBatchSize = 200

// PurgeTask 清理任务：把软删超过保留期的刊登连图片一起物理删除
// 扩展表靠外键级联跟着删
type PurgeTask struct {
	ListingRepo repository.ListingRepository
	ImageSvc    *service.ImageService
	Cron        *cron.Cron
}

func NewPurgeTask(listingRepo repository.ListingRepository, imageSvc *service.ImageService) *PurgeTask {
	return &PurgeTask{
		ListingRepo: listingRepo,
		ImageSvc:    imageSvc,
		Cron:        cron.New(cron.WithSeconds()),
	}
}

// Start 启动定时任务
func (t *PurgeTask) Start() {
	// 每天凌晨 03:30 执行
	_, err := t.Cron.AddFunc("0 30 3 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		t.purgeJob(ctx)
	})
	if err != nil {
		log.Fatalf("无法启动清理定时任务: %v", err)
	}

	t.Cron.Start()
	log.Println("刊登清理任务已启动 (每天 03:30)")
}

// Stop 停止定时任务
func (t *PurgeTask) Stop() {
	t.Cron.Stop()
}

func (t *PurgeTask) purgeJob(ctx context.Context) {
	cutoff := time.Now().Add(-purgeRetention)

	listings, err := t.ListingRepo.FindDeletedBefore(ctx, cutoff, purgeBatchSize)
	if err != nil {
		log.Printf("[Cron] 查询待清理刊登失败: %v", err)
		return
	}
	if len(listings) == 0 {
		return
	}

	log.Printf("[Cron] 开始清理 %d 条软删超期刊登", len(listings))

	purged := 0
	for _, listing := range listings {
		select {
		case <-ctx.Done():
			log.Println("[Cron] 清理任务超时停止")
			return
		default:
		}

		// 先清图片（含存储文件），再删信封
		if err := t.ImageSvc.PurgeListing(ctx, listing.ID); err != nil {
			log.Printf("[Cron] 清理图片失败 listing=%s: %v", listing.PublicID, err)
			continue
		}
		if err := t.ListingRepo.HardDelete(ctx, listing.ID); err != nil {
			log.Printf("[Cron] 物理删除失败 listing=%s: %v", listing.PublicID, err)
			continue
		}
		purged++
	}

	log.Printf("[Cron] 清理完成: %d/%d", purged, len(listings))
}
