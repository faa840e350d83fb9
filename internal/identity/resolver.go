package identity

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/gsc-community/events-api/internal/domain"
	"github.com/gsc-community/events-api/internal/repository"
)

type ApplicationFinder interface {
	FindApprovedByEmail(ctx context.Context, email string) (domain.ChapterApplication, error)
}

type VolunteerChecker interface {
	IsVolunteerForAnyEvent(ctx context.Context, email string) (bool, error)
}

// Resolver augments a decoded principal with roles derived from storage:
// "admin" for approved chapter leads and "volunteer" for anyone on an
// event's volunteer list. The principal's own userRoles list is the single
// canonical claim source; no other claim shapes are consulted.
type Resolver struct {
	apps       ApplicationFinder
	volunteers VolunteerChecker
}

func NewResolver(apps ApplicationFinder, volunteers VolunteerChecker) *Resolver {
	return &Resolver{
		apps:       apps,
		volunteers: volunteers,
	}
}

// Resolve returns the principal with storage-derived roles appended.
// Lookup failures degrade to the perimeter-provided roles; they are logged
// and never block the request.
func (r *Resolver) Resolve(ctx context.Context, p *Principal) *Principal {
	if p == nil || p.UserDetails == "" {
		return p
	}

	if !p.HasRole("admin") {
		app, err := r.apps.FindApprovedByEmail(ctx, p.UserDetails)
		switch {
		case err == nil:
			p.UserRoles = append(p.UserRoles, "admin")
			zap.L().Debug("granted admin role",
				zap.String("email", p.UserDetails),
				zap.String("chapter", app.City))
		case errors.Is(err, repository.ErrApplicationNotFound):
			// Not a chapter lead.
		default:
			zap.L().Warn(fmt.Sprintf("admin role lookup failed: %v", err))
		}
	}

	if !p.HasRole("volunteer") {
		ok, err := r.volunteers.IsVolunteerForAnyEvent(ctx, p.UserDetails)
		if err != nil {
			zap.L().Warn(fmt.Sprintf("volunteer role lookup failed: %v", err))
		} else if ok {
			p.UserRoles = append(p.UserRoles, "volunteer")
		}
	}

	return p
}
