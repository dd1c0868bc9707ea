package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/warrify/internal/application/auth"
	"github.com/turtacn/warrify/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/warrify/pkg/errors"
)

const claimsKey = "warrify.claims"

// TokenVerifier checks a bearer token. auth.Service satisfies it.
type TokenVerifier interface {
	Authenticate(token string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
	logger   logging.Logger
}

func NewAuthMiddleware(verifier TokenVerifier, log logging.Logger) *AuthMiddleware {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &AuthMiddleware{verifier: verifier, logger: log}
}

// Handler rejects requests without a valid bearer token: 401 when the token
// is absent, 403 when it does not verify.
func (m *AuthMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.verifier.Authenticate(bearerToken(c.Request))
		if err != nil {
			if !errors.IsCode(err, errors.ErrCodeAuthTokenMissing) {
				m.logger.Debug("token rejected",
					logging.String("path", c.FullPath()),
					logging.Err(err))
			}
			WriteError(c, err)
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// ClaimsFrom returns the claims stored by Handler, or nil on public routes.
func ClaimsFrom(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// WriteError aborts c and writes {"error": message} with the status mapped from err.
func WriteError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := "Server error"
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		status = errors.HTTPStatusForCode(appErr.Code)
		msg = appErr.Message
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
