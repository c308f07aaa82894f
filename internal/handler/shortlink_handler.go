package handler

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"quicklink-go/internal/apperrors"
	"quicklink-go/internal/dto"
	"quicklink-go/internal/model"
	"quicklink-go/response"
)

// ShortLinkService handler 依赖的业务接口
type ShortLinkService interface {
	Create(ctx context.Context, originalURL string) (string, error)
	Resolve(ctx context.Context, shortCode string) (*model.ShortLink, error)
	Stats(ctx context.Context, shortCode string) (*model.ShortLink, error)
	ShortURL(shortCode string) string
	Health(ctx context.Context) error
}

type ShortLinkHandler struct {
	service ShortLinkService
	log     *zap.Logger
}

func NewShortLinkHandler(service ShortLinkService, log *zap.Logger) *ShortLinkHandler {
	return &ShortLinkHandler{service: service, log: log}
}

// Shorten POST /api/shorten
func (h *ShortLinkHandler) Shorten(c *gin.Context) {
	var req dto.ShortenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Request body binding failed",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		_ = c.Error(bindingError(req, err))
		return
	}

	code, err := h.service.Create(c.Request.Context(), req.OriginalURL)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ShortenResponse{
		ShortURL:  h.service.ShortURL(code),
		ShortCode: code,
	})
}

// Redirect GET /:shortCode，302 跳转到原始 URL
func (h *ShortLinkHandler) Redirect(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		_ = c.Error(apperrors.NotFound("error.link_not_found"))
		return
	}

	// 路径去掉前导 '/' 即短码
	shortCode := strings.TrimPrefix(c.Request.URL.Path, "/")

	// HEAD 只返回跳转目标，不计点击
	resolve := h.service.Resolve
	if c.Request.Method == http.MethodHead {
		resolve = h.service.Stats
	}

	link, err := resolve(c.Request.Context(), shortCode)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Redirect(http.StatusFound, link.OriginalURL)
}

// Stats GET /api/stats/:shortCode
func (h *ShortLinkHandler) Stats(c *gin.Context) {
	link, err := h.service.Stats(c.Request.Context(), c.Param("shortCode"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewStatsResponse(link))
}

// Health GET /api/health
func (h *ShortLinkHandler) Health(c *gin.Context) {
	if err := h.service.Health(c.Request.Context()); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, response.HealthResponse{Status: "ok"})
}

// bindingError 取字段 msg 标签作为错误消息 ID
func bindingError(req interface{}, err error) *apperrors.AppError {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, e := range validationErrs {
			field, ok := reflect.TypeOf(req).FieldByName(e.StructField())
			if !ok {
				continue
			}
			if customMsg := field.Tag.Get("msg"); customMsg != "" {
				return apperrors.InvalidInput(customMsg)
			}
		}
	}
	return apperrors.InvalidInputDefault()
}
