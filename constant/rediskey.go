package constant

import (
	"fmt"
	"time"
)

// 常量定义
const (
	BasePrefix = "quicklink:"
	Separator  = ":"
)

// Redis 键模板
const (
	URLCode     = BasePrefix + "url" + Separator + "%s"  // quicklink:url:<sha256(originalUrl)> -> shortCode
	MissingCode = BasePrefix + "miss" + Separator + "%s" // quicklink:miss:<shortCode>，防止缓存穿透
)

// 过期时间
const (
	URLCodeTTL     = time.Hour
	MissingCodeTTL = 5 * time.Minute
)

// GetURLCodeKey 生成原始 URL 到短码的缓存键
func GetURLCodeKey(urlHash string) string {
	return fmt.Sprintf(URLCode, urlHash)
}

// GetMissingCodeKey 生成不存在短码的缓存键
func GetMissingCodeKey(shortCode string) string {
	return fmt.Sprintf(MissingCode, shortCode)
}
