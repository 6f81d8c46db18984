package token

import (
	"errors"
	"fmt"
	"time"

	"bbs/internal/core/apperror"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
)

type Type string

const (
	Access  Type = "access"
	Refresh Type = "refresh"
)

// Claims are the registered claims plus the token type.
type Claims struct {
	Type Type `json:"type"`
	jwt.StandardClaims
}

// Pair is what a successful login hands out.
type Pair struct {
	AccessToken  string
	RefreshToken string
}

// Manager signs and verifies HS256 session tokens.
type Manager struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewManager(secret []byte, issuer string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		secret:     secret,
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// IssuePair signs an access and a refresh token for subject.
func (m *Manager) IssuePair(subject string) (*Pair, error) {
	access, err := m.IssueAccess(subject)
	if err != nil {
		return nil, err
	}
	refresh, err := m.issue(subject, Refresh, m.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &Pair{AccessToken: access, RefreshToken: refresh}, nil
}

func (m *Manager) IssueAccess(subject string) (string, error) {
	return m.issue(subject, Access, m.accessTTL)
}

func (m *Manager) issue(subject string, typ Type, ttl time.Duration) (string, error) {
	if len(m.secret) == 0 {
		return "", errors.New("jwt secret not configured")
	}
	jti, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("token id: %w", err)
	}
	now := time.Now()
	claims := &Claims{
		Type: typ,
		StandardClaims: jwt.StandardClaims{
			Id:        jti.String(),
			Subject:   subject,
			Issuer:    m.issuer,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify checks signature, expiry and type of raw and returns its subject.
// Failures are *apperror.Error values meant to reach the client unchanged.
func (m *Manager) Verify(raw string, want Type) (string, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return "", apperror.Unprocessable("Signature has expired")
		}
		return "", apperror.Unprocessable(err.Error())
	}
	if claims.Type != want {
		return "", apperror.Unprocessable(fmt.Sprintf("Only %s token allowed", want))
	}
	if claims.Subject == "" {
		return "", apperror.Unprocessable("Token has no subject")
	}
	return claims.Subject, nil
}
