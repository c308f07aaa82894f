package dto

import (
	"time"

	"quicklink-go/internal/model"
)

// ShortenRequest POST /api/shorten 请求体
type ShortenRequest struct {
	OriginalURL string `json:"originalUrl" binding:"required" msg:"error.url_required"`
}

// ShortenResponse POST /api/shorten 响应
type ShortenResponse struct {
	ShortURL  string `json:"shortUrl"`
	ShortCode string `json:"shortCode"`
}

// StatsResponse GET /api/stats/:shortCode 响应
type StatsResponse struct {
	OriginalURL string    `json:"originalUrl"`
	ShortCode   string    `json:"shortCode"`
	Clicks      int64     `json:"clicks"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewStatsResponse(link *model.ShortLink) StatsResponse {
	return StatsResponse{
		OriginalURL: link.OriginalURL,
		ShortCode:   link.ShortCode,
		Clicks:      link.Clicks,
		CreatedAt:   link.CreatedAt,
	}
}
