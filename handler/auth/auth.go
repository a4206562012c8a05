package auth

import (
	"net/http"
	"strings"

	"lendvault/core"
	"lendvault/handler/request"

	"github.com/fox-one/pkg/logger"
)

// HandleAuthentication resolves the bearer token into the request holder and
// tags the request logger with it. Requests without a valid token pass
// through anonymously; position handlers reject them.
func HandleAuthentication(session core.Session) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			accessToken, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			log := logger.FromContext(ctx)
			holder, err := session.Login(ctx, accessToken)
			if err != nil {
				log.WithError(err).Debugln("login")
				next.ServeHTTP(w, r)
				return
			}

			ctx = logger.WithContext(ctx, log.WithField("holder", holder))
			next.ServeHTTP(w, r.WithContext(request.NewContext(ctx).WithHolder(holder)))
		}

		return http.HandlerFunc(fn)
	}
}

func bearerToken(r *http.Request) (string, bool) {
	const prefix = "Bearer "

	s := r.Header.Get("Authorization")
	if !strings.HasPrefix(s, prefix) {
		return "", false
	}

	token := strings.TrimSpace(s[len(prefix):])
	return token, token != ""
}
