package inbound

import (
	"context"
	"net/http"

	"github.com/shandysiswandi/goboxplot/internal/boxplot/session"
	"github.com/shandysiswandi/goboxplot/internal/pkg/pkglog"
	"github.com/shandysiswandi/goboxplot/internal/pkg/pkgrouter"
)

// SessionCookie carries the session id between requests.
const SessionCookie = "boxplot_session"

type sessionContextKey struct{}

func sessionFrom(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionContextKey{}).(*session.Session)
	return sess
}

// middlewareSession resumes the session named by the cookie or starts a fresh one.
func middlewareSession(sm sessions) pkgrouter.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if c, err := r.Cookie(SessionCookie); err == nil {
				id = c.Value
			}

			sess, err := sm.Resume(r.Context(), id)
			if err != nil {
				pkgrouter.WriteError(w, err)
				return
			}

			if sess.ID != id {
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    sess.ID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), sessionContextKey{}, sess)
			ctx = pkglog.SetSessionID(ctx, sess.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func endSession(sm sessions) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(SessionCookie); err == nil {
			if err := sm.End(r.Context(), c.Value); err != nil {
				pkgrouter.WriteError(w, err)
				return
			}
		}

		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		w.WriteHeader(http.StatusNoContent)
	})
}
