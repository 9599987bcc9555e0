package domain

import (
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	dErrors "hrcc/pkg/domain-errors"
)

// ParseID parses a 24-character hex document id.
//
// Errors: returns CodeInvalidInput for empty, malformed or zero ids. Callers
// looking up a single record usually translate this to not-found so that a
// bad id and a missing id are indistinguishable.
func ParseID(s string) (bson.ObjectID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return bson.NilObjectID, dErrors.New(dErrors.CodeInvalidInput, "id cannot be empty")
	}
	oid, err := bson.ObjectIDFromHex(s)
	if err != nil {
		return bson.NilObjectID, dErrors.New(dErrors.CodeInvalidInput, "invalid id format")
	}
	if oid.IsZero() {
		return bson.NilObjectID, dErrors.New(dErrors.CodeInvalidInput, "id cannot be zero")
	}
	return oid, nil
}

// ParseIDs parses every id, skipping malformed ones. The second value counts
// the skipped inputs.
func ParseIDs(values []string) ([]bson.ObjectID, int) {
	ids := make([]bson.ObjectID, 0, len(values))
	skipped := 0
	for _, v := range values {
		oid, err := ParseID(v)
		if err != nil {
			skipped++
			continue
		}
		ids = append(ids, oid)
	}
	return ids, skipped
}
