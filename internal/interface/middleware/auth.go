package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rishusinha26/portfolio-backend/internal/application"
	"github.com/rishusinha26/portfolio-backend/internal/domain/entity"
	"github.com/rishusinha26/portfolio-backend/pkg/identity"
	"github.com/rishusinha26/portfolio-backend/pkg/metrics"
	"github.com/rishusinha26/portfolio-backend/pkg/response"
)

const (
	msgAuthNotConfigured = "Authentication service not configured. Please configure Firebase credentials."
	msgNoToken           = "No token provided"
	msgInvalidToken      = "Invalid or expired token"
	msgAdminRequired     = "Admin access required"
)

// UserResolver maps verified claims to the local user record.
type UserResolver interface {
	Resolve(ctx context.Context, claims identity.Claims) (*entity.User, error)
}

// AdminGate authenticates bearer tokens and gates admin-only routes.
// Every request is verified against the identity provider; nothing is cached.
type AdminGate struct {
	// Verifier is nil when no identity provider is configured.
	Verifier identity.Verifier
	Users    UserResolver
	Logger   logrus.FieldLogger
	// Limit runs after the role check, so it can key on the admin's user id.
	Limit gin.HandlerFunc
}

func NewAdminGate(v identity.Verifier, users UserResolver, logger logrus.FieldLogger) *AdminGate {
	return &AdminGate{Verifier: v, Users: users, Logger: logger}
}

// bearerToken returns the token of an "Authorization: Bearer <token>" header.
func bearerToken(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Authenticate verifies the token and attaches the caller's Principal.
func (g *AdminGate) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if g.Verifier == nil {
			metrics.RecordAuthFailure("not_configured")
			response.Error[any](c, http.StatusServiceUnavailable, msgAuthNotConfigured, nil)
			return
		}
		token := bearerToken(c)
		if token == "" {
			metrics.RecordAuthFailure("missing_token")
			response.Error[any](c, http.StatusUnauthorized, msgNoToken, nil)
			return
		}
		claims, err := g.Verifier.Verify(c.Request.Context(), token)
		if err != nil {
			metrics.RecordAuthFailure("invalid_token")
			g.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Info("token verification failed")
			response.Error[any](c, http.StatusUnauthorized, msgInvalidToken, nil)
			return
		}
		u, err := g.Users.Resolve(c.Request.Context(), claims)
		if err != nil {
			if errors.Is(err, application.ErrAuthentication) {
				metrics.RecordAuthFailure("invalid_token")
				response.Error[any](c, http.StatusUnauthorized, msgInvalidToken, nil)
				return
			}
			metrics.RecordAuthFailure("store")
			g.Logger.WithError(err).Error("failed to resolve user")
			response.Error[any](c, http.StatusInternalServerError, application.MessageOf(err, "Internal server error"), nil)
			return
		}

		p := identity.Principal{UserID: u.ID, SubjectID: u.SubjectID, Email: u.Email, Role: string(u.Role)}
		c.Request = c.Request.WithContext(identity.WithPrincipal(c.Request.Context(), p))
		c.Set("userID", u.ID)
		c.Next()
	}
}

// RequireAdmin must run after Authenticate.
func (g *AdminGate) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := identity.PrincipalFrom(c.Request.Context())
		if !ok {
			metrics.RecordAuthFailure("missing_token")
			response.Error[any](c, http.StatusUnauthorized, msgNoToken, nil)
			return
		}
		if !p.IsAdmin() {
			metrics.RecordAuthFailure("forbidden")
			response.Error[any](c, http.StatusForbidden, msgAdminRequired, nil)
			return
		}
		c.Next()
	}
}

// Admin is Authenticate followed by RequireAdmin and the optional Limit.
func (g *AdminGate) Admin() []gin.HandlerFunc {
	hs := []gin.HandlerFunc{g.Authenticate(), g.RequireAdmin()}
	if g.Limit != nil {
		hs = append(hs, g.Limit)
	}
	return hs
}
