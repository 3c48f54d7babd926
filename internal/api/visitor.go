package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const visitorCookie = "visitor"

type visitorKey struct{}

// withVisitor makes sure every request carries a visitor ID, minting one
// and setting the cookie when the request has none or a malformed one.
func withVisitor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if c, err := r.Cookie(visitorCookie); err == nil {
			if u, err := uuid.Parse(c.Value); err == nil {
				id = u.String()
			}
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     visitorCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   365 * 24 * 60 * 60,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), visitorKey{}, id)))
	})
}

// VisitorID returns the visitor ID attached by the router, if any.
func VisitorID(ctx context.Context) string {
	id, _ := ctx.Value(visitorKey{}).(string)
	return id
}
