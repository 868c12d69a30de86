package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"

	"tripsmith/pkg/logger"
)

// ContextUserID is the gin context key handlers read the caller's identity
// from
const ContextUserID = "user_id"

// Verifier validates bearer ID tokens against an OIDC issuer
type Verifier struct {
	verifier *oidc.IDTokenVerifier
	logger   logger.Logger
}

func NewVerifier(ctx context.Context, issuerURL, clientID string, log logger.Logger) (*Verifier, error) {
	provider, err := oidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}

	return &Verifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
		logger:   log,
	}, nil
}

type Identity struct {
	Subject string
	Email   string
	Name    string
}

func (v *Verifier) Verify(ctx context.Context, rawToken string) (*Identity, error) {
	idToken, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify ID token: %w", err)
	}

	var claims struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("failed to parse claims: %w", err)
	}

	return &Identity{
		Subject: idToken.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
	}, nil
}

// Middleware resolves the caller's identity from a bearer token. Requests
// without a token continue anonymously; requests with an invalid token are
// rejected, never downgraded.
func (v *Verifier) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		rawToken := strings.TrimPrefix(header, "Bearer ")
		if rawToken == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Malformed Authorization header"})
			return
		}

		identity, err := v.Verify(c.Request.Context(), rawToken)
		if err != nil {
			v.logger.Warn("token verification failed",
				logger.Field{Key: "err", Value: err})
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(ContextUserID, identity.Subject)
		c.Next()
	}
}
