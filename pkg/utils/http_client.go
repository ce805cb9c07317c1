package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// NewAPIClient 创建统一配置的 Resty 客户端
// 所有出站 HTTP 请求都走这里，统一超时和重试
func NewAPIClient() *resty.Client {
	return resty.New().
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(2 * time.Second).
		SetHeader("User-Agent", "MarineMarket/1.0")
}
