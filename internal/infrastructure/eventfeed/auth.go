// Package eventfeed implements the JWT-authenticated Debug Event Feed:
// a websocket broadcast of streaming and telemetry events, built on
// gorilla/websocket and golang-jwt/jwt — see DESIGN.md.
package eventfeed

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("missing authentication token")
	ErrInvalidToken = errors.New("invalid authentication token")
	ErrExpiredToken = errors.New("token has expired")
)

// feedAudience is the only audience value this feed's tokens accept.
// It keeps a token minted for the event feed from being replayed
// against some other HMAC-secured endpoint that happens to share the
// same signing secret.
const feedAudience = "eventfeed"

// Authenticator extracts and validates caller identity from a feed
// subscription request.
type Authenticator interface {
	Authenticate(r *http.Request) (clientID string, err error)
}

// tokenSource pulls a bearer token candidate out of a request. A
// websocket client may be unable to set arbitrary headers (browsers'
// native WebSocket API can't), so several sources are tried in turn;
// ok is false when that source had nothing to offer.
type tokenSource func(r *http.Request) (token string, ok bool)

func fromAuthorizationHeader(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if rest, found := strings.CutPrefix(header, "Bearer "); found && rest != "" {
		return rest, true
	}
	return "", false
}

func fromQueryParam(r *http.Request) (string, bool) {
	token := r.URL.Query().Get("token")
	return token, token != ""
}

func fromSubprotocol(r *http.Request) (string, bool) {
	for _, p := range strings.Split(r.Header.Get("Sec-WebSocket-Protocol"), ",") {
		if rest, found := strings.CutPrefix(strings.TrimSpace(p), "auth-"); found {
			return rest, true
		}
	}
	return "", false
}

var tokenSources = []tokenSource{fromAuthorizationHeader, fromQueryParam, fromSubprotocol}

// JWTAuth implements Authenticator using HMAC-signed, audience-scoped
// JWTs.
type JWTAuth struct {
	secretKey string
}

// NewJWTAuth creates a JWTAuth.
func NewJWTAuth(secretKey string) *JWTAuth {
	return &JWTAuth{secretKey: secretKey}
}

// Authenticate walks tokenSources in order and validates the first
// candidate found.
func (a *JWTAuth) Authenticate(r *http.Request) (string, error) {
	for _, source := range tokenSources {
		if token, ok := source(r); ok {
			return a.validateToken(token)
		}
	}
	return "", ErrMissingToken
}

// Claims are the JWT claims this feed recognizes.
type Claims struct {
	ClientID string `json:"client_id"`
	jwt.RegisteredClaims
}

func (a *JWTAuth) validateToken(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(a.secretKey), nil
	}, jwt.WithAudience(feedAudience))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	clientID := claims.ClientID
	if clientID == "" {
		clientID = claims.Subject
	}
	if clientID == "" {
		return "", ErrInvalidToken
	}
	return clientID, nil
}

// GenerateToken issues a feed-scoped token for clientID, expiring at
// expiresAt.
func (a *JWTAuth) GenerateToken(clientID string, expiresAt *jwt.NumericDate) (string, error) {
	claims := Claims{
		ClientID: clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   clientID,
			Audience:  jwt.ClaimStrings{feedAudience},
			ExpiresAt: expiresAt,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(a.secretKey))
}
