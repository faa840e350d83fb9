package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/gsc-community/events-api/internal/api/handler/v1/response"
	"github.com/gsc-community/events-api/internal/api/middleware"
	"github.com/gsc-community/events-api/internal/identity"
)

// getPrincipalFromContext returns the caller's identity. The guards reject
// anonymous requests before handlers run, so a nil principal here means a
// route was wired without its guard.
func getPrincipalFromContext(ctx *gin.Context) (*identity.Principal, *response.Err) {
	p := middleware.PrincipalFromContext(ctx)
	if p == nil {
		return nil, response.ErrUnauthorized("authentication required")
	}

	return p, nil
}
