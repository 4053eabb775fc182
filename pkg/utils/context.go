package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
	EmailKey  contextKey = "email"
	RoleKey   contextKey = "role"
	TokenKey  contextKey = "token"
)

// Principal is the authenticated caller as seen by handlers.
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}

// GetPrincipalFromContext returns nil when the request is anonymous.
func GetPrincipalFromContext(ctx context.Context) *Principal {
	userID, ok := GetUserIDFromContext(ctx)
	if !ok {
		return nil
	}
	email, _ := ctx.Value(EmailKey).(string)
	role, _ := GetRoleFromContext(ctx)
	return &Principal{UserID: userID, Email: email, Role: role}
}

func SetUserContext(ctx context.Context, p Principal) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, p.UserID)
	ctx = context.WithValue(ctx, EmailKey, p.Email)
	ctx = context.WithValue(ctx, RoleKey, p.Role)
	return ctx
}

func GetTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenKey).(string)
	return token, ok
}

func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}
