package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"marinemarket_v1/internal/listingtype"
	"marinemarket_v1/internal/middleware"
	"marinemarket_v1/internal/model"
	"marinemarket_v1/internal/repository"
	"marinemarket_v1/internal/service"
)

// fakeAuth 测试用：直接往 Context 塞用户身份
func fakeAuth(userID int64, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextKeyUserID, userID)
		c.Set(middleware.ContextKeyRole, role)
		c.Next()
	}
}

func setupListingRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(
		&model.User{}, &model.Listing{}, &model.ListingImage{},
		&model.YachtExtension{}, &model.PartExtension{}, &model.MarinaExtension{},
		&model.CrewExtension{}, &model.EquipmentExtension{}, &model.ServiceExtension{},
		&model.StorageExtension{}, &model.InsuranceExtension{}, &model.SurveyExtension{},
		&model.SecondhandExtension{},
	); err != nil {
		t.Fatalf("建表失败: %v", err)
	}

	user := &model.User{Username: "alice", Email: "alice@example.com", Password: "x", Role: model.RoleUser, IsActive: true}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("创建测试用户失败: %v", err)
	}

	registry, err := listingtype.BuildRegistry(db)
	if err != nil {
		t.Fatalf("注册类型失败: %v", err)
	}

	listingRepo := repository.NewListingRepository(db)
	listingSvc := service.NewListingService(listingRepo, repository.NewUserRepository(db), registry)
	ctl := NewListingController(listingSvc, nil)

	r := gin.New()
	r.POST("/api/listings", fakeAuth(user.ID, model.RoleUser), ctl.Create)
	r.GET("/api/listings", ctl.List)
	r.GET("/api/listings/:id", ctl.Get)
	return r, db
}

func TestListingController_Create(t *testing.T) {
	r, _ := setupListingRouter(t)

	tests := []struct {
		name       string
		body       map[string]interface{}
		wantStatus int
	}{
		{
			name: "合法创建",
			body: map[string]interface{}{
				"listing_type": "yacht",
				"title":        "Jeanneau Sun Odyssey 410",
				"price":        "230000.00",
				"currency":     "EUR",
				"attributes": map[string]interface{}{
					"year": 2021, "length_m": 12.35, "condition": "new",
				},
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "类型未知",
			body: map[string]interface{}{
				"listing_type": "spaceship",
				"title":        "USS Something",
				"price":        "1.00",
				"currency":     "USD",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "类型字段非法",
			body: map[string]interface{}{
				"listing_type": "yacht",
				"title":        "Old boat",
				"price":        "100.00",
				"currency":     "EUR",
				"attributes": map[string]interface{}{
					"year": 1900, "length_m": 8.0, "condition": "fair",
				},
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, _ := json.Marshal(tt.body)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/listings", bytes.NewReader(data))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestListingController_ValidationErrorShape(t *testing.T) {
	r, _ := setupListingRouter(t)

	body := map[string]interface{}{
		"listing_type": "yacht",
		"title":        "ab", // 太短
		"price":        "100.00",
		"currency":     "EUR",
		"attributes":   map[string]interface{}{"year": 2020, "length_m": 10.0, "condition": "good"},
	}
	data, _ := json.Marshal(body)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/listings", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("响应解析失败: %v", err)
	}
	assert.Equal(t, "validation failed", resp["error"])

	fields, ok := resp["fields"].([]interface{})
	if !ok || len(fields) == 0 {
		t.Fatal("校验错误应带字段明细")
	}
	first := fields[0].(map[string]interface{})
	assert.Equal(t, "title", first["field"])
}

func TestListingController_AnonymousSeesApprovedOnly(t *testing.T) {
	r, db := setupListingRouter(t)

	// 直接经控制器创建一条 pending
	body := map[string]interface{}{
		"listing_type": "yacht",
		"title":        "Pending yacht",
		"price":        "5000.00",
		"currency":     "EUR",
		"attributes":   map[string]interface{}{"year": 2018, "length_m": 9.5, "condition": "good"},
	}
	data, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/listings", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	// 匿名列表看不到 pending
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/listings", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, float64(0), resp["total"])

	// 审核通过后能看到
	db.Model(&model.Listing{}).Where("1 = 1").Update("status", model.ListingStatusApproved)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/listings", nil)
	r.ServeHTTP(w, req)

	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, float64(1), resp["total"])
}
