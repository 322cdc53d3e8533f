package service

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"github.com/onevoker/TimeTracker/internal/core/domain"
)

// PrincipalExtractor turns verified claims into a request principal.
type PrincipalExtractor struct {
	claims ClaimNames
}

func NewPrincipalExtractor(claims ClaimNames) *PrincipalExtractor {
	return &PrincipalExtractor{claims: claims}
}

// FromClaims maps claims onto a Principal. The subject must be a decimal user
// id. A missing or null roles claim yields an empty role set.
func (e *PrincipalExtractor) FromClaims(claims jwt.MapClaims) (*domain.Principal, error) {
	sub, err := claims.GetSubject()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
	}
	userID, err := strconv.Atoi(sub)
	if err != nil {
		return nil, fmt.Errorf("%w: subject %q is not a user id", domain.ErrInvalidToken, sub)
	}

	username, ok := claims[e.claims.Username].(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s claim", domain.ErrInvalidToken, e.claims.Username)
	}

	roles, err := rolesFromClaim(claims[e.claims.Roles])
	if err != nil {
		return nil, fmt.Errorf("%w: %s claim: %w", domain.ErrInvalidToken, e.claims.Roles, err)
	}

	return &domain.Principal{UserID: userID, Username: username, Roles: roles}, nil
}

func rolesFromClaim(v any) ([]domain.Role, error) {
	switch raw := v.(type) {
	case nil:
		return []domain.Role{}, nil
	case []string:
		roles := make([]domain.Role, 0, len(raw))
		for _, r := range raw {
			roles = append(roles, domain.Role(r))
		}
		return roles, nil
	case []any:
		roles := make([]domain.Role, 0, len(raw))
		for i, item := range raw {
			name, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("element %d is %T, want string", i, item)
			}
			roles = append(roles, domain.Role(name))
		}
		return roles, nil
	default:
		return nil, fmt.Errorf("unexpected type %T", v)
	}
}
