package service

import (
	"strings"
	"time"
)

// 前端历史上同时出现过ISO和欧式两种日期写法，两种都接受
var dateLayouts = []string{"2006-01-02", "02-01-2006"}

// ParseDate 解析日期字符串，两种布局都失败返回零值和false
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseOrderDate 订单日期，解析失败回退为当前时间
func ParseOrderDate(raw string) time.Time {
	if t, ok := ParseDate(raw); ok {
		return t
	}
	return time.Now()
}

// ParseOptionalDate 可选日期，解析失败返回nil
func ParseOptionalDate(raw string) *time.Time {
	if t, ok := ParseDate(raw); ok {
		return &t
	}
	return nil
}

// NormalizeStatus 状态词大写归一
func NormalizeStatus(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
