// requestid.go — middleware присвоения запросу уникального идентификатора.
// Идентификатор берётся из заголовка X-Request-Id или генерируется заново,
// кладётся в контекст и возвращается клиенту в том же заголовке.
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// requestIDKey — ключ контекста для request id.
type requestIDKey struct{}

// headerRequestID — имя заголовка с идентификатором запроса.
const headerRequestID = "X-Request-Id"

// RequestID возвращает middleware, присваивающий каждому запросу id.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(headerRequestID)
			if id == "" {
				id = uuid.New().String()
			}

			w.Header().Set(headerRequestID, id)
			ctx := context.WithValue(r.Context(), requestIDKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestIDFromContext возвращает request id из контекста или пустую строку.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
