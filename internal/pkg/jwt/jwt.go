package jwt

import (
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var (
	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrCompanyRequired = errors.New("token carries no company")
)

// Claims are the fields the payroll API reads from an access token.
type Claims struct {
	UserID    string
	CompanyID string
	Role      string
}

type Service interface {
	GenerateAccessToken(userID string, companyID string, role string) (token string, expiresAt int64, err error)
	ParseAccessToken(tokenString string) (Claims, error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// NewJWTService builds an HS256 service. Verification tolerates 30s of
// clock skew between issuer and this service.
func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(userID string, companyID string, role string) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id":    userID,
		"company_id": companyID,
		"role":       role,
		"type":       "access",
		"exp":        expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// ParseAccessToken verifies tokenString and extracts its claims. Tokens of
// any other type are rejected.
func (j *JWTService) ParseAccessToken(tokenString string) (Claims, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	return ClaimsFromToken(token)
}

// ClaimsFromToken reads the access-token claims of an already verified token.
func ClaimsFromToken(token jwt.Token) (Claims, error) {
	if token == nil {
		return Claims{}, ErrInvalidToken
	}
	tokenType, ok := token.Get("type")
	if !ok || tokenType != "access" {
		return Claims{}, ErrInvalidToken
	}

	var claims Claims
	if v, ok := token.Get("user_id"); ok {
		claims.UserID, _ = v.(string)
	}
	if v, ok := token.Get("role"); ok {
		claims.Role, _ = v.(string)
	}
	if v, ok := token.Get("company_id"); ok {
		claims.CompanyID, _ = v.(string)
	}
	if claims.CompanyID == "" {
		return claims, ErrCompanyRequired
	}
	return claims, nil
}
