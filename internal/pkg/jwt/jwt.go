package jwt

import (
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// TokenClaims is the identity carried by every issued bearer token.
type TokenClaims struct {
	EmployeeNumber string
	Username       string
	EmpClass       string
}

type Service interface {
	GenerateToken(claims TokenClaims) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey      string
	expirationTime string
	tokenAuth      *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, expirationTime string) Service {
	return &JWTService{
		secretKey:      secretKey,
		expirationTime: expirationTime,
		tokenAuth:      jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateToken(claims TokenClaims) (string, int64, error) {
	expDuration, err := time.ParseDuration(j.expirationTime)
	if err != nil {
		return "", 0, fmt.Errorf("invalid token expiration: %w", err)
	}
	expiresAt := time.Now().Add(expDuration).Unix()

	claimsMap := map[string]interface{}{
		"employee_number": claims.EmployeeNumber,
		"username":        claims.Username,
		"emp_class":       claims.EmpClass,
		"iat":             time.Now().Unix(),
		"exp":             expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claimsMap)
	if err != nil {
		return "", 0, fmt.Errorf("failed to encode token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// ClaimsFromMap pulls the identity claims out of a decoded token map.
func ClaimsFromMap(m map[string]interface{}) (TokenClaims, error) {
	employeeNumber, ok := m["employee_number"].(string)
	if !ok || employeeNumber == "" {
		return TokenClaims{}, fmt.Errorf("employee_number claim is missing or invalid")
	}
	username, ok := m["username"].(string)
	if !ok || username == "" {
		return TokenClaims{}, fmt.Errorf("username claim is missing or invalid")
	}
	empClass, _ := m["emp_class"].(string)

	return TokenClaims{
		EmployeeNumber: employeeNumber,
		Username:       username,
		EmpClass:       empClass,
	}, nil
}
