package jwt

import (
	"errors"
	"sync"
	"time"

	"vehicle-access-control/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/argon2"
)

var (
	ErrNonValidToken    = errors.New("token did not pass validation")
	ErrInvalidClaimType = errors.New("invalid claim type")
)

var tokenSignatureAlg = jwt.SigningMethodHS256

// Salt for deriving the token signing key from the configured secret.
// Changing it invalidates all outstanding tokens.
const signingKeySalt = "vac-token-signing-v1"

var (
	signingKeyOnce sync.Once
	signingKey     []byte
)

// jwtSigningKey derives the HMAC key from the configured secret. Raw
// config secrets tend to be short passphrases, so they are stretched
// through argon2id instead of being used directly.
func jwtSigningKey() []byte {
	signingKeyOnce.Do(func() {
		signingKey = argon2.IDKey(
			[]byte(config.Cfg.Secret),
			[]byte(signingKeySalt),
			3,       // time (number of iterations)
			64*1024, // memory in KB (64 MB)
			4,       // parallelism
			32,      // key length in bytes
		)
	})
	return signingKey
}

// Claim for an authenticated API session
type APIClaim struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func NewAPIClaim(username string, role string) APIClaim {
	return APIClaim{
		Username:         username,
		Role:             role,
		RegisteredClaims: newRegisteredClaim(config.Cfg.Auth.TokenTTL),
	}
}

func DecodeAPIJWT(tokenString string) (*APIClaim, error) {
	return decodeJWT(tokenString, &APIClaim{})
}

// Claim for a visitor gate pass
type PassClaim struct {
	VisitorID int64 `json:"visitor_id"`
	jwt.RegisteredClaims
}

func NewPassClaim(visitorID int64) PassClaim {
	return PassClaim{
		VisitorID:        visitorID,
		RegisteredClaims: newRegisteredClaim(config.Cfg.Pass.TokenTTL),
	}
}

func DecodePassJWT(tokenString string) (*PassClaim, error) {
	return decodeJWT(tokenString, &PassClaim{})
}

// newRegisteredClaim builds the registered claims for a token with a
// TTL given in seconds.
func newRegisteredClaim(ttl uint) jwt.RegisteredClaims {
	now := time.Now().UTC()
	return jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(ttl) * time.Second)),
	}
}

// Generic JWT token generation function
func GenerateJWT(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(tokenSignatureAlg, claims)
	return token.SignedString(jwtSigningKey())
}

func decodeJWT[T jwt.Claims](tokenString string, claimsType T) (T, error) {
	var zero T

	parsedToken, err := jwt.ParseWithClaims(tokenString, claimsType, func(token *jwt.Token) (interface{}, error) {
		return jwtSigningKey(), nil
	}, jwt.WithValidMethods([]string{tokenSignatureAlg.Alg()}))

	if err != nil {
		return zero, err
	} else if parsedToken == nil || !parsedToken.Valid {
		return zero, ErrNonValidToken
	} else if claims, ok := parsedToken.Claims.(T); ok {
		return claims, nil
	}

	return zero, ErrInvalidClaimType
}
