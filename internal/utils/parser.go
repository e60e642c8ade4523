package utils

import (
	"strconv"
	"strings"
)

// NormalizeTitle 去掉首尾空白并合并多余空格
func NormalizeTitle(title string) string {
	return strings.Join(strings.Fields(title), " ")
}

// ParseReleaseYear 从 "2024-03-01" 这类日期中取年份，无法解析时返回 0
func ParseReleaseYear(date string) int {
	date = strings.TrimSpace(date)
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil || year <= 0 {
		return 0
	}
	return year
}

// ParseNumber 解析 JSON 数字或数字字符串（如 vote_average 的 7.8 / "7.8"）
func ParseNumber(raw []byte) (float64, bool) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, false
	}
	if strings.HasPrefix(s, `"`) {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return 0, false
		}
		s = strings.TrimSpace(unquoted)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
