package service

import (
	"net/http"
	"strings"
)

// Credential TMDB 鉴权方式：Bearer token 或 api_key 查询参数
type Credential struct {
	Bearer bool
	Value  string
}

const bearerPrefix = "bearer "

// ClassifyCredential 根据凭证格式判断鉴权方式
//   - "Bearer xxx" 前缀：去掉前缀后作为 Bearer token
//   - 含 "." 且无空白（v4 read access token 是 JWT）：Bearer token
//   - 其他（v3 api key）：api_key 查询参数
func ClassifyCredential(raw string) Credential {
	cred := strings.TrimSpace(raw)
	if len(cred) >= len(bearerPrefix) && strings.EqualFold(cred[:len(bearerPrefix)], bearerPrefix) {
		return Credential{Bearer: true, Value: strings.TrimSpace(cred[len(bearerPrefix):])}
	}
	if strings.Contains(cred, ".") && !strings.ContainsAny(cred, " \t\r\n") {
		return Credential{Bearer: true, Value: cred}
	}
	return Credential{Value: cred}
}

// Apply 把凭证写入请求
func (c Credential) Apply(req *http.Request) {
	if c.Value == "" {
		return
	}
	if c.Bearer {
		req.Header.Set("Authorization", "Bearer "+c.Value)
		return
	}
	q := req.URL.Query()
	q.Set("api_key", c.Value)
	req.URL.RawQuery = q.Encode()
}
