package strategy

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/task-management-api/internal/auth/token"
	"github.com/taskforge/task-management-api/internal/core/domain"
)

// AccessToken authenticates the bearer token in the Authorization header.
// It is stateless: claims are trusted as signed, with no store lookup.
type AccessToken struct {
	tokens *token.Issuer
}

func NewAccessToken(tokens *token.Issuer) *AccessToken {
	return &AccessToken{tokens: tokens}
}

func (s *AccessToken) Authenticate(c echo.Context) (*domain.Principal, error) {
	raw, err := bearerToken(c)
	if err != nil {
		return nil, err
	}

	claims, err := s.tokens.VerifyAccess(raw)
	if err != nil {
		return nil, err
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	return &domain.Principal{ID: userID, Name: claims.Name, Role: claims.Role}, nil
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", domain.ErrUnauthenticated
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", domain.ErrUnauthenticated
	}
	return parts[1], nil
}
