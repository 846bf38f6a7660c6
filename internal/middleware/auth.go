package middleware

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/tourism/internal"
	"github.com/Alturino/tourism/internal/constants"
	inErrors "github.com/Alturino/tourism/internal/errors"
	inHttp "github.com/Alturino/tourism/internal/http"
)

const bearerPrefix = "bearer "

func Auth(secret string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := zerolog.Ctx(r.Context()).With().Str(constants.KEY_TAG, "middleware auth").Logger()
			c := logger.WithContext(r.Context())

			authorization := r.Header.Get(inHttp.KEY_HEADER_AUTHORIZATION)
			if len(authorization) <= len(bearerPrefix) ||
				!strings.EqualFold(authorization[:len(bearerPrefix)], bearerPrefix) {
				logger.Error().
					Err(inErrors.ErrEmptyAuth).
					Msg(inErrors.ErrEmptyAuth.Error())
				inHttp.WriteFailed(c, w, http.StatusUnauthorized, inErrors.ErrEmptyAuth)
				return
			}

			token, err := internal.VerifyToken(c, authorization[len(bearerPrefix):], secret)
			if err != nil {
				logger.Error().Err(err).Msg(err.Error())
				inHttp.WriteFailed(c, w, http.StatusUnauthorized, inErrors.ErrTokenInvalid)
				return
			}

			c = internal.AttachJwtToken(c, token)
			next.ServeHTTP(w, r.WithContext(c))
		})
	}
}
