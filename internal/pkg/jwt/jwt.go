package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/kerjaflow/attendance-backend-go/internal/domain/user"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies access tokens issued by the external auth service and
// extracts the claims the engine cares about. Token issuance lives outside
// this repository.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	EmployeeIDFromContext(ctx context.Context) (string, error)
	ActorFromContext(ctx context.Context) (string, error)
	RoleFromContext(ctx context.Context) (user.Role, error)
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// EmployeeIDFromContext returns the employee_id claim of the verified token.
func (j *JWTService) EmployeeIDFromContext(ctx context.Context) (string, error) {
	return claimString(ctx, "employee_id")
}

// ActorFromContext returns the user_id claim, used as the audit actor.
func (j *JWTService) ActorFromContext(ctx context.Context) (string, error) {
	return claimString(ctx, "user_id")
}

// RoleFromContext returns the role claim.
func (j *JWTService) RoleFromContext(ctx context.Context) (user.Role, error) {
	role, err := claimString(ctx, "role")
	if err != nil {
		return "", err
	}
	return user.Role(role), nil
}

func claimString(ctx context.Context, key string) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	value, ok := claims[key].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("%s claim is missing or invalid", key)
	}

	return value, nil
}
