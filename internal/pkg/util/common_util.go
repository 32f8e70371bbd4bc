package util

import (
	"context"
	"strings"
	"time"
)

// NormalizeTags 去除首尾空白并转小写，丢弃空值并去重，保持原有顺序
func NormalizeTags(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	tags := make([]string, 0, len(raw))
	for _, t := range raw {
		name := strings.ToLower(strings.TrimSpace(t))
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		tags = append(tags, name)
	}
	return tags
}

// ParseDateParam 支持 RFC3339 与 YYYY-MM-DD；endOfDay 为 true 时日期取当天最后一刻
func ParseDateParam(value string, endOfDay bool) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// TrimPtr 去除空白，空串返回 nil
func TrimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func Ptr[T any](v T) *T {
	return &v
}

type baseURLCtxKey struct{}

// WithBaseURL 记录请求来源站点，用于生成前端链接
func WithBaseURL(ctx context.Context, baseURL string) context.Context {
	return context.WithValue(ctx, baseURLCtxKey{}, baseURL)
}

func BaseURL(ctx context.Context) string {
	baseURL, _ := ctx.Value(baseURLCtxKey{}).(string)
	return baseURL
}
