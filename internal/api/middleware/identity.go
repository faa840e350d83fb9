package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/gsc-community/events-api/internal/api/handler/v1/response"
	"github.com/gsc-community/events-api/internal/identity"
)

// PrincipalKey is where the resolved principal lives in the gin context.
// Missing key means anonymous.
const PrincipalKey = "principal"

// ResolvePrincipal decodes the caller's identity via the injected provider
// and augments it with storage-derived roles. It never rejects a request;
// the guards below do that.
func ResolvePrincipal(provider identity.Provider, resolver *identity.Resolver) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		p := provider.FromRequest(ctx.Request)
		if p != nil {
			p = resolver.Resolve(ctx.Request.Context(), p)
			ctx.Set(PrincipalKey, p)
		}

		ctx.Next()
	}
}

// PrincipalFromContext returns the resolved principal, or nil for an
// anonymous request.
func PrincipalFromContext(ctx *gin.Context) *identity.Principal {
	v, ok := ctx.Get(PrincipalKey)
	if !ok {
		return nil
	}

	p, ok := v.(*identity.Principal)
	if !ok {
		return nil
	}

	return p
}

func RequireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if PrincipalFromContext(ctx) == nil {
			response.RenderErr(ctx, response.ErrUnauthorized("authentication required"))
			return
		}

		ctx.Next()
	}
}

// RequireRoles rejects callers that hold none of the given roles.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		p := PrincipalFromContext(ctx)
		if p == nil {
			response.RenderErr(ctx, response.ErrUnauthorized("authentication required"))
			return
		}

		for _, role := range roles {
			if p.HasRole(role) {
				ctx.Next()
				return
			}
		}

		response.RenderErr(ctx, response.ErrPermissionDenied(
			fmt.Errorf("user %v lacks required role", p.UserID)))
	}
}
