package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
)

// ParseOrigins 解析逗号分隔的来源列表，"*" 表示全部
func ParseOrigins(allowed string) []string {
	origins := make([]string, 0)
	for _, o := range strings.Split(allowed, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// CORS 跨域中间件，基于 go-chi/cors 包装成 gin 中间件
func CORS(allowed string) gin.HandlerFunc {
	handler := cors.Handler(cors.Options{
		AllowedOrigins: ParseOrigins(allowed),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization"},
		MaxAge:         86400,
	})

	return func(c *gin.Context) {
		passed := false
		handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
			c.Next()
		})).ServeHTTP(c.Writer, c.Request)

		// 预检请求由 cors 直接应答，不再进入后续处理
		if !passed {
			c.Abort()
		}
	}
}
