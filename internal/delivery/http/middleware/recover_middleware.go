package middleware

import (
	"net/http"
	"runtime/debug"

	"clinic-booking-api/pkg/response"

	"github.com/sirupsen/logrus"
)

type RecoverMiddleware struct {
	log *logrus.Logger
}

func NewRecoverMiddleware(log *logrus.Logger) *RecoverMiddleware {
	return &RecoverMiddleware{log: log}
}

func (m *RecoverMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				m.log.Errorf("Panic recovered on %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
				response.InternalServerError(w, "Internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
