package model

import (
	"crypto/sha256"
	"encoding/hex"
)

// ShortLink 短链记录，创建后只有 Clicks 会变化
type ShortLink struct {
	BaseModel
	OriginalURL string `gorm:"size:2048;not null" json:"originalUrl"`
	URLHash     string `gorm:"size:64;uniqueIndex;not null" json:"-"`
	ShortCode   string `gorm:"uniqueIndex;size:32;not null" json:"shortCode"`
	Clicks      int64  `gorm:"default:0;not null" json:"clicks"`
}

// HashURL 计算 OriginalURL 的索引值（sha256 hex）
func HashURL(originalURL string) string {
	sum := sha256.Sum256([]byte(originalURL))
	return hex.EncodeToString(sum[:])
}
