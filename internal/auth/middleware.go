package auth

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/todohive/todo-api/pkg/respond"
)

type contextKey struct{}

var identityKey = contextKey{}

// Identity возвращает идентификатор пользователя, положенный Middleware.
func Identity(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(identityKey).(string)
	return id, ok && id != ""
}

// WithIdentity кладет идентичность в контекст так же, как это делает
// Middleware. Используется в тестах обработчиков, где полный конвейер
// аутентификации не поднимается.
func WithIdentity(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// Middleware - единственная точка аутентификации. Все защищенные запросы
// проходят через нее до бизнес-логики.
//
// OPTIONS пропускается без проверки: это нужно браузерным preflight-запросам,
// которые не несут credentials. Исключение срабатывает только по методу,
// никакие заголовки или пути его не включают.
//
// Любая причина отказа (нет заголовка, битый токен, истекший, чужая подпись,
// отсутствует sub) отдается клиенту одним и тем же ответом 401, чтобы не
// подсказывать, что именно не так с токеном. Содержимое токена не логируется.
func Middleware(v Verifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			identity, err := authenticate(v, r)
			if err != nil {
				logger.Debug("authentication failed", zap.Error(err))
				respond.Error(w, r, http.StatusUnauthorized, respond.KindUnauthenticated, "invalid or expired credentials")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func authenticate(v Verifier, r *http.Request) (string, error) {
	const prefix = "Bearer "

	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, prefix) {
		return "", ErrNoCredentials
	}
	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", ErrNoCredentials
	}

	claims, err := v.Verify(token)
	if err != nil {
		return "", err
	}

	return Subject(claims)
}
