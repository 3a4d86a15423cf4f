package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar más los campos que emite el backend de AltoVivo.
// El cliente nunca valida la firma (no conoce el secreto del servidor); solo inspecciona
// expiración y subject para decidir cuándo refrescar proactivamente.
type Claims struct {
	jwt.RegisteredClaims
	UserID     int64  `json:"user_id"`
	SystemRole string `json:"system_role"`
}

// ExpiresAt devuelve la expiración declarada en el token, sin validar la firma.
// Retorna el tiempo cero si el token no es parseable o no declara exp.
func ExpiresAt(tokenString string) time.Time {
	claims, err := Inspect(tokenString)
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

// Inspect parsea los claims del token SIN verificar la firma.
// La validez real la decide el servidor en cada petición; esto es solo
// información local (expiración, rol) para la UI.
func Inspect(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("jwt: token no parseable: %w", err)
	}
	return claims, nil
}

// Generate genera un token HS256 firmado. Lo usa el servidor falso de los tests
// para emitir tokens reales que el cliente acepta tal cual (opacos).
func Generate(secret string, userID int64, systemRole, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:     userID,
		SystemRole: systemRole,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
