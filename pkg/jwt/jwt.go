package jwt

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims claims del access token emitido por el backend (SimpleJWT).
// El cliente no conoce la clave de firma: solo lee los claims para decidir
// si conviene refrescar antes de llamar.
type Claims struct {
	jwt.RegisteredClaims
	UserID    flexID `json:"user_id"`
	TokenType string `json:"token_type"`
}

// flexID acepta user_id numérico o en texto.
type flexID string

func (n *flexID) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "null" {
		s = ""
	}
	*n = flexID(s)
	return nil
}

// TokenInfo datos legibles de un access token.
type TokenInfo struct {
	UserID    int64
	ExpiresAt time.Time
	TokenType string
}

// Expired indica si el token vence antes de now+skew.
func (t TokenInfo) Expired(now time.Time, skew time.Duration) bool {
	if t.ExpiresAt.IsZero() {
		return false
	}
	return !now.Add(skew).Before(t.ExpiresAt)
}

// Inspect decodifica el token sin verificar la firma.
func Inspect(tokenString string) (TokenInfo, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return TokenInfo{}, fmt.Errorf("jwt: token ilegible: %w", err)
	}
	info := TokenInfo{TokenType: claims.TokenType}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	if claims.UserID != "" {
		id, err := strconv.ParseInt(string(claims.UserID), 10, 64)
		if err != nil {
			return TokenInfo{}, fmt.Errorf("jwt: user_id inválido: %w", err)
		}
		info.UserID = id
	}
	return info, nil
}

// Generate firma un token con el formato del backend. Lo usan los backends falsos de los tests.
func Generate(secret string, userID int64, tokenType string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    flexID(strconv.FormatInt(userID, 10)),
		TokenType: tokenType,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
