package server

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	apikeydomain "github.com/rfernando-oulu/eComSync/internal/apikey/domain"
	"github.com/rfernando-oulu/eComSync/internal/authorization"
	obscontext "github.com/rfernando-oulu/eComSync/internal/observability/context"
	"github.com/rfernando-oulu/eComSync/internal/observability/logger"
	"go.uber.org/zap"
)

const (
	denyReasonMissingKey = "missing_key"
	denyReasonInvalidKey = "invalid_key"
	denyReasonNoAdminKey = "no_admin_key"
)

// Authorize resolves the caller's role from the access-Key header and checks
// the route policy for object and action.
func (s *Server) Authorize(object string, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, reason, err := s.resolveRole(c)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		ctx := obscontext.WithRole(c.Request.Context(), role)
		c.Request = c.Request.WithContext(ctx)

		if err := s.authzSvc.Authorize(ctx, role, object, action); err != nil {
			if errors.Is(err, authorization.ErrForbidden) {
				if reason == "" {
					reason = denyReasonMissingKey
				}
				s.obsMetrics.RecordAdminKeyDenied(ctx, object, reason)
			}
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

// resolveRole maps the access-Key header to a role. A wrong key falls back to
// the anonymous role and may be throttled per client address.
func (s *Server) resolveRole(c *gin.Context) (string, string, error) {
	ctx := c.Request.Context()
	raw := strings.TrimSpace(c.GetHeader(apikeydomain.HeaderName))
	if raw == "" {
		return authorization.RoleAnonymous, denyReasonMissingKey, nil
	}

	err := s.apiKeySvc.Authenticate(ctx, raw)
	switch {
	case err == nil:
		return authorization.RoleAdmin, "", nil
	case errors.Is(err, apikeydomain.ErrNoAdminKey):
		return authorization.RoleAnonymous, denyReasonNoAdminKey, nil
	case errors.Is(err, apikeydomain.ErrInvalidKey):
		if err := s.throttleFailedKey(c); err != nil {
			return "", "", err
		}
		return authorization.RoleAnonymous, denyReasonInvalidKey, nil
	default:
		return "", "", err
	}
}

func (s *Server) throttleFailedKey(c *gin.Context) error {
	if !s.adminKeyLimiter.Enabled() {
		return nil
	}

	ctx := c.Request.Context()
	res, err := s.adminKeyLimiter.RecordFailure(ctx, c.ClientIP())
	if err != nil {
		logger.FromContext(ctx).Warn("admin key rate limit check failed", zap.Error(err))
		return ErrServiceUnavailable
	}
	if res.Allowed {
		return nil
	}

	logger.FromContext(ctx).Warn("admin key attempts throttled", zap.String("client_ip", c.ClientIP()))
	s.obsMetrics.RecordThrottled(ctx, "admin_key")
	c.Header("Retry-After", strconv.Itoa(int(math.Ceil(res.RetryAfter.Seconds()))))
	return ErrRateLimited
}
