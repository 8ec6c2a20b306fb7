package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrymomot/rpckit/route"
)

const (
	jwtType      = "JWT"
	jwtAlgorithm = "HS256"
)

type jwtHeader struct {
	Type      string `json:"typ"`
	Algorithm string `json:"alg"`
}

// Claims are the registered JWT claims. Embed it in a claims type to get
// expiry and not-before checks.
type Claims struct {
	ID        string `json:"jti,omitempty"`
	Subject   string `json:"sub,omitempty"`
	Issuer    string `json:"iss,omitempty"`
	Audience  string `json:"aud,omitempty"`
	ExpiresAt int64  `json:"exp,omitempty"`
	NotBefore int64  `json:"nbf,omitempty"`
	IssuedAt  int64  `json:"iat,omitempty"`
}

// Valid checks the temporal claims. Zero values are unset and ignored.
func (c Claims) Valid() error {
	now := time.Now().Unix()
	if c.ExpiresAt > 0 && now > c.ExpiresAt {
		return ErrExpiredToken
	}
	if c.NotBefore > 0 && now < c.NotBefore {
		return ErrInvalidToken
	}
	return nil
}

// Signer issues and verifies HS256 tokens.
type Signer struct {
	key []byte
}

// NewSigner returns a Signer for key. Use at least 32 random bytes.
func NewSigner(key []byte) (*Signer, error) {
	if len(key) == 0 {
		return nil, ErrMissingSigningKey
	}
	return &Signer{key: key}, nil
}

// Sign encodes claims into a signed token.
func (s *Signer) Sign(claims any) (string, error) {
	if claims == nil {
		return "", ErrMissingClaims
	}

	header, err := json.Marshal(jwtHeader{Type: jwtType, Algorithm: jwtAlgorithm})
	if err != nil {
		return "", fmt.Errorf("marshal header: %w", err)
	}
	body, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("marshal claims: %w", err)
	}

	payload := encodeSegment(header) + "." + encodeSegment(body)
	return payload + "." + s.signature(payload), nil
}

// Parse verifies token and decodes its claims into claims. If claims has a
// Valid() error method it is called after decoding.
func (s *Signer) Parse(token string, claims any) error {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return ErrInvalidToken
	}

	payload := parts[0] + "." + parts[1]
	if subtle.ConstantTimeCompare([]byte(parts[2]), []byte(s.signature(payload))) != 1 {
		return ErrInvalidSignature
	}

	var header jwtHeader
	if err := decodeSegment(parts[0], &header); err != nil {
		return err
	}
	if header.Algorithm != jwtAlgorithm {
		return ErrUnexpectedSigningMethod
	}

	if err := decodeSegment(parts[1], claims); err != nil {
		return err
	}

	if v, ok := claims.(interface{ Valid() error }); ok {
		return v.Valid()
	}
	return nil
}

func (s *Signer) signature(payload string) string {
	h := hmac.New(sha256.New, s.key)
	h.Write([]byte(payload))
	return encodeSegment(h.Sum(nil))
}

func encodeSegment(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

func decodeSegment(seg string, v any) error {
	raw, err := base64.RawURLEncoding.DecodeString(seg)
	if err != nil {
		return fmt.Errorf("%w: malformed segment", ErrInvalidToken)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: malformed segment", ErrInvalidToken)
	}
	return nil
}

// JWT returns a session deriver that verifies a bearer token with signer
// and decodes it into C. Missing, malformed, badly signed or expired tokens
// yield no session.
//
//	type UserClaims struct {
//		session.Claims
//		Role string `json:"role"`
//	}
//
//	cfg.Session = session.JWT[UserClaims](signer)
func JWT[C any](signer *Signer, opts ...Option) route.SessionFunc[C] {
	if signer == nil {
		panic("session: JWT: nil signer")
	}
	o := newOptions(opts)

	return func(r *http.Request) (*C, error) {
		token := o.source(r)
		if token == "" {
			return nil, nil
		}

		claims := new(C)
		if err := signer.Parse(token, claims); err != nil {
			if absent(err) {
				return nil, nil
			}
			return nil, err
		}
		return claims, nil
	}
}
