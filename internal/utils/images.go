package utils

import (
	"net/url"
	"slices"
)

// AllowedImageURL 判断图片地址是否在允许的域名列表内（仅 https）
func AllowedImageURL(raw string, domains []string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "https" {
		return false
	}
	return slices.Contains(domains, u.Hostname())
}

// SafeImageURL 不在白名单内的图片地址替换为 fallback
func SafeImageURL(raw, fallback string, domains []string) string {
	if AllowedImageURL(raw, domains) {
		return raw
	}
	return fallback
}
