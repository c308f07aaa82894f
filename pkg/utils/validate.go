package utils

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"unicode"
)

// MaxURLLength 原始 URL 最大长度，与 short_links.original_url 列一致
const MaxURLLength = 2048

var shortCodePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,32}$`)

// ValidateShortCode 校验 ShortCode 是否合法
func ValidateShortCode(shortCode string) error {
	if shortCode == "" {
		return fmt.Errorf("error.shortcode_required")
	}

	if ContainsWhitespace(shortCode) {
		return fmt.Errorf("error.shortcode_cannot_contain_spaces")
	}

	if !shortCodePattern.MatchString(shortCode) {
		return fmt.Errorf("error.shortcode_invalid")
	}

	return nil
}

// ValidateOriginalURL 校验原始 URL，返回的错误信息为 i18n 消息 ID
func ValidateOriginalURL(originalURL string) error {
	if originalURL == "" {
		return fmt.Errorf("error.url_required")
	}

	if len(originalURL) > MaxURLLength {
		return fmt.Errorf("error.url_too_long")
	}

	// 必须是带 scheme 的绝对 URL，如 https://example.com 或 mailto:a@b.c
	// 路径中的空格允许，host 中的空格和控制字符由 url.Parse 拒绝
	u, err := url.Parse(originalURL)
	if err != nil || u.Scheme == "" || (u.Host == "" && u.Opaque == "") {
		return fmt.Errorf("error.url_invalid")
	}

	if port := u.Port(); port != "" {
		if n, err := strconv.Atoi(port); err != nil || n > 65535 {
			return fmt.Errorf("error.url_invalid")
		}
	}

	return nil
}

func ContainsWhitespace(s string) bool {
	for _, r := range s {
		if unicode.IsSpace(r) {
			return true
		}
	}
	return false
}
