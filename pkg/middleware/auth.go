package middleware

import (
	"context"
	"strings"

	"github.com/folio-site/folio/backend/pkg/apierror"
	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// Identity is what a verified bearer token proves about the caller.
type Identity struct {
	Subject  string `json:"id"`
	Username string `json:"username"`
}

// Verifier is the minimal interface the middleware depends on
type Verifier interface {
	Verify(ctx context.Context, raw string) (*Identity, error)
}

// AuthMiddleware returns a Gin middleware that verifies Bearer tokens using the provided verifier
func AuthMiddleware(ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			apierror.Respond(c, apierror.New(apierror.ErrUnauthenticated, "No token, authorization denied"))
			return
		}
		id, err := ver.Verify(c.Request.Context(), token)
		if err != nil {
			apierror.Respond(c, apierror.New(apierror.ErrUnauthenticated, "Token is not valid"))
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// IdentityFrom returns the identity stored by AuthMiddleware, if any.
func IdentityFrom(c *gin.Context) (*Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	id, ok := v.(*Identity)
	return id, ok && id != nil
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
