package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"marinemarket_v1/internal/listingtype"
	"marinemarket_v1/internal/model"
	"marinemarket_v1/internal/repository"
)

// ==================== 测试辅助 ====================

func setupListingTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Listing{}, &model.ListingImage{},
		&model.YachtExtension{}, &model.PartExtension{}, &model.MarinaExtension{},
		&model.CrewExtension{}, &model.EquipmentExtension{}, &model.ServiceExtension{},
		&model.StorageExtension{}, &model.InsuranceExtension{}, &model.SurveyExtension{},
		&model.SecondhandExtension{},
	)
	if err != nil {
		t.Fatalf("建表失败: %v", err)
	}
	return db
}

func setupListingService(t *testing.T) (*gorm.DB, *ListingService) {
	db := setupListingTestDB(t)

	registry, err := listingtype.BuildRegistry(db)
	if err != nil {
		t.Fatalf("注册类型失败: %v", err)
	}

	svc := NewListingService(
		repository.NewListingRepository(db),
		repository.NewUserRepository(db),
		registry,
	)
	return db, svc
}

func createTestUser(t *testing.T, db *gorm.DB, username string) int64 {
	user := &model.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
		Role:     model.RoleUser,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("创建测试用户失败: %v", err)
	}
	return user.ID
}

func yachtInput() listingtype.Input {
	return listingtype.Input{
		Envelope: listingtype.Envelope{
			Title:    "Bavaria 46 Cruiser 2008",
			Price:    "185000.00",
			Currency: "EUR",
			Location: "Fethiye",
		},
		Attributes: map[string]interface{}{
			"year":      2008,
			"length_m":  18.5,
			"condition": "good",
		},
	}
}

func marinaInput() listingtype.Input {
	return listingtype.Input{
		Envelope: listingtype.Envelope{
			Title:    "Gocek berth up to 30m",
			Price:    "12000.00",
			Currency: "EUR",
			Location: "Gocek",
		},
		Attributes: map[string]interface{}{
			"max_length_m": 30.0,
			"berth_type":   "pontoon",
		},
	}
}

// ==================== 创建 ====================

func TestListingService_CreateWritesBothRows(t *testing.T) {
	db, svc := setupListingService(t)
	owner := createTestUser(t, db, "alice")

	view, err := svc.Create(context.Background(), owner, "yacht", yachtInput())
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	var listingCount, extCount int64
	db.Model(&model.Listing{}).Count(&listingCount)
	db.Model(&model.YachtExtension{}).Count(&extCount)
	if listingCount != 1 || extCount != 1 {
		t.Fatalf("期望信封和扩展各 1 行，得到 %d/%d", listingCount, extCount)
	}

	if view["status"] != model.ListingStatusPending {
		t.Errorf("新刊登应为 pending，得到: %v", view["status"])
	}
	if view["price"] != "185000.00" {
		t.Errorf("价格往返错误: %v", view["price"])
	}

	// 合并视图里扩展字段挂在类型名下，且数值无损
	ext, ok := view["yacht"].(map[string]interface{})
	if !ok {
		t.Fatal("视图缺少 yacht 扩展对象")
	}
	if ext["length_m"] != 18.5 {
		t.Errorf("length_m 往返错误: %v", ext["length_m"])
	}
	if ext["year"] != 2008 {
		t.Errorf("year 往返错误: %v", ext["year"])
	}
}

func TestListingService_CreateValidationLeavesNoOrphan(t *testing.T) {
	db, svc := setupListingService(t)
	owner := createTestUser(t, db, "alice")

	in := yachtInput()
	in.Attributes["year"] = 1900 // 低于下限

	_, err := svc.Create(context.Background(), owner, "yacht", in)
	if err == nil {
		t.Fatal("非法输入应报错")
	}

	var verrs listingtype.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("期望 ValidationErrors，得到: %v", err)
	}

	var count int64
	db.Model(&model.Listing{}).Count(&count)
	if count != 0 {
		t.Errorf("校验失败不应留下信封行，得到 %d 行", count)
	}
}

func TestListingService_CreateUnknownType(t *testing.T) {
	db, svc := setupListingService(t)
	owner := createTestUser(t, db, "alice")

	_, err := svc.Create(context.Background(), owner, "spaceship", yachtInput())
	if !errors.Is(err, listingtype.ErrUnknownType) {
		t.Errorf("期望 ErrUnknownType，得到: %v", err)
	}
}

// ==================== 查询 ====================

func TestListingService_QueryTypeFilterIsolation(t *testing.T) {
	db, svc := setupListingService(t)
	owner := createTestUser(t, db, "alice")
	ctx := context.Background()

	yacht, err := svc.Create(ctx, owner, "yacht", yachtInput())
	if err != nil {
		t.Fatalf("创建 yacht 失败: %v", err)
	}
	marina, err := svc.Create(ctx, owner, "marina", marinaInput())
	if err != nil {
		t.Fatalf("创建 marina 失败: %v", err)
	}

	for _, v := range []map[string]interface{}{yacht, marina} {
		if _, err := svc.Approve(ctx, v["id"].(string)); err != nil {
			t.Fatalf("审核失败: %v", err)
		}
	}

	// marina 的类型筛选只命中 marina，即使 yacht 的 length 也满足数值条件
	views, total, err := svc.Query(ctx,
		listingtype.CommonFilter{ListingType: "marina"},
		map[string]string{"min_berth_length": "20"},
		1, 20,
	)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if total != 1 || len(views) != 1 {
		t.Fatalf("期望命中 1 条，得到 %d", total)
	}
	if views[0]["listing_type"] != "marina" {
		t.Errorf("命中了错误类型: %v", views[0]["listing_type"])
	}

	// 收紧条件后不再命中
	_, total, err = svc.Query(ctx,
		listingtype.CommonFilter{ListingType: "marina"},
		map[string]string{"min_berth_length": "40"},
		1, 20,
	)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if total != 0 {
		t.Errorf("收紧条件后应无命中，得到 %d", total)
	}
}

func TestListingService_QueryVisibility(t *testing.T) {
	db, svc := setupListingService(t)
	owner := createTestUser(t, db, "alice")
	ctx := context.Background()

	// 一条 pending、一条 approved
	if _, err := svc.Create(ctx, owner, "yacht", yachtInput()); err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	second, err := svc.Create(ctx, owner, "marina", marinaInput())
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if _, err := svc.Approve(ctx, second["id"].(string)); err != nil {
		t.Fatalf("审核失败: %v", err)
	}

	// 匿名只看 approved
	_, total, err := svc.Query(ctx, listingtype.CommonFilter{}, nil, 1, 20)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if total != 1 {
		t.Errorf("匿名应只看到 1 条，得到 %d", total)
	}

	// 管理员默认看全部非 deleted
	_, total, err = svc.Query(ctx, listingtype.CommonFilter{Privileged: true}, nil, 1, 20)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if total != 2 {
		t.Errorf("管理员应看到 2 条，得到 %d", total)
	}
}

// ==================== 读取可见性 ====================

func TestListingService_GetVisibility(t *testing.T) {
	db, svc := setupListingService(t)
	owner := createTestUser(t, db, "alice")
	stranger := createTestUser(t, db, "bob")
	ctx := context.Background()

	view, err := svc.Create(ctx, owner, "yacht", yachtInput())
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	publicID := view["id"].(string)

	// pending: owner 可见
	if _, err := svc.GetByPublicID(ctx, publicID, owner, false); err != nil {
		t.Errorf("owner 应能看到 pending 刊登: %v", err)
	}
	// pending: 其他人不可见
	if _, err := svc.GetByPublicID(ctx, publicID, stranger, false); !errors.Is(err, ErrNotFound) {
		t.Errorf("其他用户不应看到 pending 刊登，得到: %v", err)
	}
	// pending: 管理员可见
	if _, err := svc.GetByPublicID(ctx, publicID, 0, true); err != nil {
		t.Errorf("管理员应能看到 pending 刊登: %v", err)
	}
}

// ==================== 状态机 ====================

func TestListingService_StatusTransitions(t *testing.T) {
	db, svc := setupListingService(t)
	owner := createTestUser(t, db, "alice")
	ctx := context.Background()

	view, err := svc.Create(ctx, owner, "yacht", yachtInput())
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	publicID := view["id"].(string)

	approved, err := svc.Approve(ctx, publicID)
	if err != nil {
		t.Fatalf("审核通过失败: %v", err)
	}
	if approved["status"] != model.ListingStatusApproved {
		t.Errorf("状态应为 approved: %v", approved["status"])
	}

	// 非 pending 不能再审
	if _, err := svc.Approve(ctx, publicID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("重复审核应报 ErrInvalidTransition，得到: %v", err)
	}
	if _, err := svc.Reject(ctx, publicID, "late"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("驳回 approved 应报 ErrInvalidTransition，得到: %v", err)
	}
}

func TestListingService_RejectRequiresReason(t *testing.T) {
	db, svc := setupListingService(t)
	owner := createTestUser(t, db, "alice")
	ctx := context.Background()

	view, err := svc.Create(ctx, owner, "yacht", yachtInput())
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	publicID := view["id"].(string)

	if _, err := svc.Reject(ctx, publicID, ""); err == nil {
		t.Error("空原因驳回应报错")
	}

	rejected, err := svc.Reject(ctx, publicID, "photos do not match description")
	if err != nil {
		t.Fatalf("驳回失败: %v", err)
	}
	if rejected["status"] != model.ListingStatusRejected {
		t.Errorf("状态应为 rejected: %v", rejected["status"])
	}
	if rejected["reject_reason"] != "photos do not match description" {
		t.Errorf("驳回原因丢失: %v", rejected["reject_reason"])
	}
}

// ==================== 更新 ====================

func TestListingService_UpdateSplitsEnvelopeAndExtension(t *testing.T) {
	db, svc := setupListingService(t)
	owner := createTestUser(t, db, "alice")
	ctx := context.Background()

	view, err := svc.Create(ctx, owner, "yacht", yachtInput())
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	publicID := view["id"].(string)

	title := "Bavaria 46 Cruiser — price reduced"
	updated, err := svc.Update(ctx, publicID, owner, false, UpdateInput{
		Title:      &title,
		Attributes: map[string]interface{}{"year": 2012, "ignored_key": "x"},
	})
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}

	if updated["title"] != title {
		t.Errorf("标题未更新: %v", updated["title"])
	}
	ext := updated["yacht"].(map[string]interface{})
	if ext["year"] != 2012 {
		t.Errorf("扩展字段未更新: %v", ext["year"])
	}
	// 未动的扩展字段保持不变
	if ext["length_m"] != 18.5 {
		t.Errorf("未更新字段被改动: %v", ext["length_m"])
	}
}

func TestListingService_UpdateForbiddenForStranger(t *testing.T) {
	db, svc := setupListingService(t)
	owner := createTestUser(t, db, "alice")
	stranger := createTestUser(t, db, "bob")
	ctx := context.Background()

	view, err := svc.Create(ctx, owner, "yacht", yachtInput())
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	title := "hijacked"
	_, err = svc.Update(ctx, view["id"].(string), stranger, false, UpdateInput{Title: &title})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("非 owner 更新应报 ErrForbidden，得到: %v", err)
	}
}

func TestListingService_OwnerUpdateResetsToPending(t *testing.T) {
	db, svc := setupListingService(t)
	owner := createTestUser(t, db, "alice")
	ctx := context.Background()

	view, err := svc.Create(ctx, owner, "yacht", yachtInput())
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	publicID := view["id"].(string)

	if _, err := svc.Approve(ctx, publicID); err != nil {
		t.Fatalf("审核失败: %v", err)
	}

	title := "Updated after approval"
	updated, err := svc.Update(ctx, publicID, owner, false, UpdateInput{Title: &title})
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if updated["status"] != model.ListingStatusPending {
		t.Errorf("owner 修改后应回到 pending，得到: %v", updated["status"])
	}
}

func TestListingService_UpdateRevalidatesTypeRules(t *testing.T) {
	db, svc := setupListingService(t)
	owner := createTestUser(t, db, "alice")
	ctx := context.Background()

	// services 白名单对更新同样生效
	marina, err := svc.Create(ctx, owner, "marina", marinaInput())
	if err != nil {
		t.Fatalf("创建 marina 失败: %v", err)
	}
	marinaID := marina["id"].(string)

	_, err = svc.Update(ctx, marinaID, owner, false, UpdateInput{
		Attributes: map[string]interface{}{"services": []interface{}{"helipad"}},
	})
	var verrs listingtype.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("白名单外的 service 更新应报 ValidationErrors，得到: %v", err)
	}

	view, err := svc.GetByPublicID(ctx, marinaID, owner, false)
	if err != nil {
		t.Fatalf("读取失败: %v", err)
	}
	if list, _ := view["marina"].(map[string]interface{})["services"].([]string); len(list) != 0 {
		t.Errorf("非法更新不应落库，得到 services: %v", list)
	}

	// 跨字段规则对只带 beam_m 的部分更新同样生效，船长取库里现值
	yacht, err := svc.Create(ctx, owner, "yacht", yachtInput())
	if err != nil {
		t.Fatalf("创建 yacht 失败: %v", err)
	}
	yachtID := yacht["id"].(string)

	_, err = svc.Update(ctx, yachtID, owner, false, UpdateInput{
		Attributes: map[string]interface{}{"beam_m": 45.0},
	})
	if !errors.As(err, &verrs) {
		t.Fatalf("船宽超船长的更新应报 ValidationErrors，得到: %v", err)
	}

	view, err = svc.GetByPublicID(ctx, yachtID, owner, false)
	if err != nil {
		t.Fatalf("读取失败: %v", err)
	}
	if beam := view["yacht"].(map[string]interface{})["beam_m"]; beam != 0.0 {
		t.Errorf("非法更新不应落库，得到 beam_m: %v", beam)
	}

	// 合法的 beam 更新仍然放行
	if _, err := svc.Update(ctx, yachtID, owner, false, UpdateInput{
		Attributes: map[string]interface{}{"beam_m": 5.2},
	}); err != nil {
		t.Errorf("合法 beam 更新不应报错: %v", err)
	}
}

// ==================== 删除 ====================

func TestListingService_SoftDeleteKeepsExtension(t *testing.T) {
	db, svc := setupListingService(t)
	owner := createTestUser(t, db, "alice")
	ctx := context.Background()

	view, err := svc.Create(ctx, owner, "yacht", yachtInput())
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	publicID := view["id"].(string)

	if err := svc.Delete(ctx, publicID, owner, false); err != nil {
		t.Fatalf("删除失败: %v", err)
	}

	// 信封还在（软删），扩展行不动
	var listingCount, extCount int64
	db.Model(&model.Listing{}).Count(&listingCount)
	db.Model(&model.YachtExtension{}).Count(&extCount)
	if listingCount != 1 || extCount != 1 {
		t.Errorf("软删后两行都应保留，得到 %d/%d", listingCount, extCount)
	}

	// deleted 对 owner 也不可见
	if _, err := svc.GetByPublicID(ctx, publicID, owner, false); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted 刊登应不可见，得到: %v", err)
	}

	// deleted 是终态，不能再删
	if err := svc.Delete(ctx, publicID, owner, false); !errors.Is(err, ErrNotFound) {
		t.Errorf("重复删除应报 ErrNotFound，得到: %v", err)
	}
}

// ==================== 数据不一致 ====================

func TestListingService_MissingExtensionSurfacesError(t *testing.T) {
	db, svc := setupListingService(t)
	owner := createTestUser(t, db, "alice")
	ctx := context.Background()

	view, err := svc.Create(ctx, owner, "yacht", yachtInput())
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	publicID := view["id"].(string)

	// 绕过服务层删掉扩展行，制造信封/扩展不一致
	var listing model.Listing
	if err := db.Where("public_id = ?", publicID).First(&listing).Error; err != nil {
		t.Fatalf("读取信封行失败: %v", err)
	}
	if err := db.Where("listing_id = ?", listing.ID).Delete(&model.YachtExtension{}).Error; err != nil {
		t.Fatalf("删除扩展行失败: %v", err)
	}

	// 详情读取报错，不兜底成空对象
	if _, err := svc.GetByPublicID(ctx, publicID, owner, false); !errors.Is(err, ErrMissingExtension) {
		t.Errorf("缺扩展行应报 ErrMissingExtension，得到: %v", err)
	}

	// 列表路径同样报错
	if _, _, err := svc.Query(ctx, listingtype.CommonFilter{Privileged: true}, nil, 1, 20); !errors.Is(err, ErrMissingExtension) {
		t.Errorf("列表遇到缺扩展行应报 ErrMissingExtension，得到: %v", err)
	}
}
