package service

import "strings"

// ImageKind 图片类型
type ImageKind int

const (
	ImagePoster ImageKind = iota
	ImageBackdrop
)

// TMDB 图片地址前缀：海报用 w500，背景图用原图
const (
	PosterBaseURL   = "https://image.tmdb.org/t/p/w500"
	BackdropBaseURL = "https://image.tmdb.org/t/p/original"
)

// ResolveImageURL 把 TMDB 相对路径转换为完整地址，空值返回 nil
func ResolveImageURL(path string, kind ImageKind) *string {
	p := strings.TrimSpace(path)
	if p == "" {
		return nil
	}
	lower := strings.ToLower(p)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return &p
	}
	if strings.HasPrefix(p, "/") {
		base := PosterBaseURL
		if kind == ImageBackdrop {
			base = BackdropBaseURL
		}
		u := base + p
		return &u
	}
	return &p
}

// ResolveImagePtr 同 ResolveImageURL，接受可空路径
func ResolveImagePtr(path *string, kind ImageKind) *string {
	if path == nil {
		return nil
	}
	return ResolveImageURL(*path, kind)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
