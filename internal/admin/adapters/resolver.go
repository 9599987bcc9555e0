package adapters

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"hrcc/internal/admin/models"
	authmw "hrcc/pkg/platform/middleware/auth"
)

// adminResolver is the interface the admin service implements.
// Defined locally so the middleware package never imports admin models.
type adminResolver interface {
	ResolveAdmin(ctx context.Context, id bson.ObjectID) (*models.Admin, error)
}

// PrincipalResolver adapts the admin service to authmw.AdminResolver.
type PrincipalResolver struct {
	admins adminResolver
}

func NewPrincipalResolver(admins adminResolver) *PrincipalResolver {
	return &PrincipalResolver{admins: admins}
}

// ResolveAdmin maps the stored admin to a middleware principal. Store errors,
// including sentinel.ErrNotFound, pass through unchanged.
func (r *PrincipalResolver) ResolveAdmin(ctx context.Context, id bson.ObjectID) (*authmw.Principal, error) {
	admin, err := r.admins.ResolveAdmin(ctx, id)
	if err != nil {
		return nil, err
	}
	return &authmw.Principal{
		ID:     admin.ID,
		Role:   admin.Role,
		Domain: admin.Domain,
		Active: admin.IsActive,
	}, nil
}
