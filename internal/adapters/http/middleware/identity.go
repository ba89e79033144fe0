package middleware

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/testmaker/quizapi/internal/platform/config"
	"github.com/testmaker/quizapi/internal/platform/logging"
)

const (
	// ContextKeyIdentity is the gin context key of the caller's Identity.
	ContextKeyIdentity = "identity"

	defaultSubjectHeader = "X-User-ID"
	defaultRolesHeader   = "X-User-Roles"
)

// Identity is the caller identity a trusted gateway forwards in headers.
// The author service checks Subject against the user store before it is
// recorded; an empty Subject means anonymous.
type Identity struct {
	Subject string
	Roles   []string
}

// Identify returns middleware that reads the gateway identity headers,
// stores the Identity on the gin context and tags the request logger with
// the subject. Anonymous requests pass through untouched.
func Identify(cfg *config.AuthConfig) gin.HandlerFunc {
	subjectHeader, rolesHeader := defaultSubjectHeader, defaultRolesHeader
	if cfg != nil {
		if cfg.SubjectHeader != "" {
			subjectHeader = cfg.SubjectHeader
		}

		if cfg.RolesHeader != "" {
			rolesHeader = cfg.RolesHeader
		}
	}

	return func(c *gin.Context) {
		id := &Identity{
			Subject: strings.TrimSpace(c.GetHeader(subjectHeader)),
			Roles:   parseCommaSeparated(c.GetHeader(rolesHeader)),
		}
		c.Set(ContextKeyIdentity, id)

		if id.Subject != "" {
			ctx := c.Request.Context()
			logger := logging.FromContext(ctx).With(slog.String("subject", id.Subject))
			c.Request = c.Request.WithContext(logging.WithContext(ctx, logger))
		}

		c.Next()
	}
}

// GetIdentity returns the identity stored by Identify, or an anonymous one.
func GetIdentity(c *gin.Context) *Identity {
	if v, ok := c.Get(ContextKeyIdentity); ok {
		if id, ok := v.(*Identity); ok {
			return id
		}
	}

	return &Identity{}
}

func parseCommaSeparated(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")

	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
