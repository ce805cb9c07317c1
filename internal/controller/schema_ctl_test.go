package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"marinemarket_v1/internal/listingtype"
)

func setupSchemaRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	registry, err := listingtype.BuildRegistry(nil)
	if err != nil {
		t.Fatalf("注册类型失败: %v", err)
	}

	ctl := NewSchemaController(registry)
	r := gin.New()
	r.GET("/api/schemas", ctl.ListSchemas)
	r.GET("/api/schemas/:type", ctl.GetSchema)
	return r
}

func TestSchemaController_List(t *testing.T) {
	r := setupSchemaRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/schemas", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，得到 %d", w.Code)
	}

	var schemas []listingtype.TypeSchema
	if err := json.Unmarshal(w.Body.Bytes(), &schemas); err != nil {
		t.Fatalf("响应解析失败: %v", err)
	}
	if len(schemas) != 10 {
		t.Errorf("期望 10 个类型，得到 %d", len(schemas))
	}
}

func TestSchemaController_GetSingle(t *testing.T) {
	r := setupSchemaRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/schemas/yacht", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，得到 %d", w.Code)
	}

	var schema listingtype.TypeSchema
	if err := json.Unmarshal(w.Body.Bytes(), &schema); err != nil {
		t.Fatalf("响应解析失败: %v", err)
	}
	if schema.Type != "yacht" {
		t.Errorf("类型错误: %s", schema.Type)
	}
	if len(schema.Fields) == 0 {
		t.Error("schema 应包含字段定义")
	}
}

func TestSchemaController_UnknownType(t *testing.T) {
	r := setupSchemaRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/schemas/spaceship", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("未知类型期望 400，得到 %d", w.Code)
	}
}
