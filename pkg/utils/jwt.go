package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// AssertionClaims is the payload of the service-account assertion
// exchanged for a LINE WORKS access token.
type AssertionClaims struct {
	Domain string `json:"domain,omitempty"`
	jwt.RegisteredClaims
}

// BuildServiceAssertion signs an RS256 assertion for the OAuth2
// jwt-bearer grant. iss is the client id, sub the service account,
// and the assertion is valid for one hour.
func BuildServiceAssertion(clientID, serviceAccount, domainID, privateKeyPEM string, now time.Time) (string, error) {
	if privateKeyPEM == "" {
		return "", fmt.Errorf("private key is missing")
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(privateKeyPEM))
	if err != nil {
		return "", fmt.Errorf("failed to parse private key: %v", err)
	}

	claims := AssertionClaims{
		Domain: domainID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    clientID,
			Subject:   serviceAccount,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = serviceAccount

	signed, err := token.SignedString(key)
	if err != nil {
		return "", err
	}
	return signed, nil
}
