package pkgrouter

import (
	"context"
	"net/http"
)

type routeContextKey struct{}

// GetRoute returns the registered route pattern that matched the request, or "".
func GetRoute(ctx context.Context) string {
	route, _ := ctx.Value(routeContextKey{}).(string)
	return route
}

func middlewareRoute(path string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), routeContextKey{}, path)))
		})
	}
}
