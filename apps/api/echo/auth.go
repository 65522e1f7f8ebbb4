package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/mereles/agenda/core"
)

const (
	tokenContextKey = "ownerToken"

	// academicLevelHeader selects the level bucket a request operates on.
	// Absent or blank, the configured default level applies.
	academicLevelHeader = "X-Academic-Level"
)

// Claims represents the authorization claims transmitted via a JWT.
// Subject carries the owner ID; account lifecycle lives in an external
// identity provider, so no further identity fields are needed here.
type Claims struct {
	jwt.StandardClaims
}

// newJWTConfig is the JWT auth middleware config.
func newJWTConfig(conf *core.Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    []byte(conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    tokenContextKey,
		Claims:        new(Claims),
	}
}

func GetOwnerClaims(conf *core.Config, ownerID string) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   ownerID,
			ExpiresAt: now.Add(conf.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
	}
}

// GenerateToken generates a signed JWT token string representing the owner Claims.
func GenerateToken(conf *core.Config, claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.GetSigningMethod(middleware.AlgorithmHS256), claims)
	ss, err := token.SignedString([]byte(conf.SecretKey))
	return ss, errors.Wrap(err, "signing token")
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(tokenContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

// getContextOwnerID returns the authenticated owner's ID.
func getContextOwnerID(ctx echo.Context) (string, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errUnauthorized
	}
	return claims.Subject, nil
}

// academicLevel resolves the level bucket of the request.
func academicLevel(ctx echo.Context, conf *core.Config) string {
	if lvl := core.CleanString(ctx.Request().Header.Get(academicLevelHeader)); lvl != "" {
		return lvl
	}
	return conf.DefaultAcademicLevel
}
