package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"marinemarket_v1/internal/api/dto"
	"marinemarket_v1/internal/model"
	"marinemarket_v1/internal/repository"
)

func setupUserService(t *testing.T) *UserService {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}); err != nil {
		t.Fatalf("建表失败: %v", err)
	}
	return NewUserService(repository.NewUserRepository(db))
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	svc := setupUserService(t)
	ctx := context.Background()

	info, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct-horse-battery",
	})
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if info.Role != model.RoleUser {
		t.Errorf("新用户角色应为 user: %s", info.Role)
	}

	// 用户名重复
	_, err = svc.Register(ctx, &dto.RegisterRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "correct-horse-battery",
	})
	if !errors.Is(err, ErrDuplicateUser) {
		t.Errorf("重复用户名应报 ErrDuplicateUser，得到: %v", err)
	}

	// 密码错误
	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("错误密码应报 ErrInvalidCredentials，得到: %v", err)
	}

	// 正常登录
	resp, err := svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "correct-horse-battery"})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("登录应返回 Token 对")
	}
}

func TestUserService_RefreshToken(t *testing.T) {
	svc := setupUserService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "correct-horse-battery",
	}); err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	login, err := svc.Login(ctx, &dto.LoginRequest{Username: "bob", Password: "correct-horse-battery"})
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}

	// refresh token 能换新对
	refreshed, err := svc.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	if err != nil {
		t.Fatalf("刷新失败: %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Error("刷新应返回新的 access token")
	}

	// access token 不能当 refresh token 用
	_, err = svc.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: login.AccessToken})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("access token 刷新应被拒绝，得到: %v", err)
	}
}
