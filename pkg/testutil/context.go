package testutil

import (
	"net/http"

	"go.mongodb.org/mongo-driver/v2/bson"

	"hrcc/pkg/domain"
	"hrcc/pkg/requestcontext"
)

// WithAdmin attaches an authenticated admin to the request context the way
// the auth middleware would.
func WithAdmin(req *http.Request, adminID bson.ObjectID, role domain.Role, d domain.Domain) *http.Request {
	ctx := requestcontext.WithAdmin(req.Context(), adminID, role, d)
	return req.WithContext(ctx)
}
