package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== 写操作限流器 ====================

// MutationLimiter 按用户 + 动作维度的冷却限流
// 防止脚本刷单式地发刊登、刷图片
type MutationLimiter struct {
	locks sync.Map // key -> *lockEntry
}

type lockEntry struct {
	lastTime time.Time
	mu       sync.Mutex
}

var globalLimiter = &MutationLimiter{}

// GetLimiter 获取全局限流器
func GetLimiter() *MutationLimiter {
	return globalLimiter
}

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许
	RetryAfter time.Duration // 剩余冷却时间
}

// Check 检查并占用一个执行窗口
func (r *MutationLimiter) Check(key string, interval time.Duration) CheckResult {
	actual, _ := r.locks.LoadOrStore(key, &lockEntry{})
	entry := actual.(*lockEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(entry.lastTime)
	if elapsed < interval {
		return CheckResult{
			Allowed:    false,
			RetryAfter: interval - elapsed,
		}
	}

	entry.lastTime = now
	return CheckResult{Allowed: true}
}

// Reset 重置指定 key 的限流
func (r *MutationLimiter) Reset(key string) {
	r.locks.Delete(key)
}

// ==================== 动作类型与默认间隔 ====================

// MutationType 写操作类型
type MutationType string

const (
	MutationCreate MutationType = "create"
	MutationUpdate MutationType = "update"
	MutationImage  MutationType = "image"
)

// DefaultIntervals 各类写操作的默认冷却
var DefaultIntervals = map[MutationType]time.Duration{
	MutationCreate: 30 * time.Second,
	MutationUpdate: 5 * time.Second,
	MutationImage:  3 * time.Second,
}

// GetInterval 取写操作的默认冷却
func GetInterval(t MutationType) time.Duration {
	if interval, ok := DefaultIntervals[t]; ok {
		return interval
	}
	return 10 * time.Second
}

// userMutationKey 用户级限流键
func userMutationKey(userID int64, t MutationType) string {
	return fmt.Sprintf("user:%d:%s", userID, t)
}

// ==================== Gin 中间件 ====================

// MutationRateLimit 写操作限流中间件，挂在 JWTAuth 之后
// interval 为 0 时用该动作的默认冷却
func MutationRateLimit(t MutationType, interval time.Duration) gin.HandlerFunc {
	if interval == 0 {
		interval = GetInterval(t)
	}

	return func(c *gin.Context) {
		userID := GetUserID(c)
		if userID == 0 {
			// 没有用户身份说明认证中间件没挂对，直接放行交给后面处理
			c.Next()
			return
		}

		// 管理员操作不限流
		if IsAdmin(c) {
			c.Next()
			return
		}

		result := GetLimiter().Check(userMutationKey(userID, t), interval)
		if !result.Allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    429,
				"message": fmt.Sprintf("操作太频繁，请 %d 秒后重试", int(result.RetryAfter.Seconds())+1),
				"data": gin.H{
					"retry_after": int(result.RetryAfter.Seconds()),
				},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
