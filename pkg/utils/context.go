package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	ProfileIDKey contextKey = "profile_id"
	RoleKey      contextKey = "role"
)

func GetProfileIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	profileIDVal := ctx.Value(ProfileIDKey)
	if profileIDVal == nil {
		return uuid.Nil, false
	}

	profileIDStr, ok := profileIDVal.(string)
	if !ok {
		return uuid.Nil, false
	}

	profileID, err := uuid.Parse(profileIDStr)
	if err != nil {
		return uuid.Nil, false
	}

	return profileID, true
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	roleVal := ctx.Value(RoleKey)
	if roleVal == nil {
		return "", false
	}

	role, ok := roleVal.(string)
	return role, ok
}

func SetProfileContext(ctx context.Context, profileID uuid.UUID, role string) context.Context {
	ctx = context.WithValue(ctx, ProfileIDKey, profileID.String())
	ctx = context.WithValue(ctx, RoleKey, role)
	return ctx
}
