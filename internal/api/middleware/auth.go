package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ShopAdmin/internal/api/handlers"
)

// HeaderUserID заголовок с ID пользователя от шлюза
const HeaderUserID = "X-User-ID"

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ только для администраторов"
)

// AdminChecker проверка прав администратора
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth читает ID пользователя из X-User-ID и кладет его в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// AdminOnly пропускает только администраторов. Должен стоять после Auth.
func AdminOnly(checker AdminChecker, log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserID(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingUserID)
				return
			}

			isAdmin, err := checker.IsAdmin(r.Context(), userID)
			if err != nil {
				log.Error("AdminOnly: failed to check user=%d: %v", userID, err)
				handlers.RespondInternalError(w)
				return
			}
			if !isAdmin {
				log.Warn("AdminOnly: user=%d is not an admin, path=%s", userID, r.URL.Path)
				handlers.RespondForbidden(w, msgForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
