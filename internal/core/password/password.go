// Package password derives and checks salted password digests.
//
// The default scheme is a single SHA-256 pass over password||salt, which is what the
// existing user rows were written with. It has no stretching; deployments that want a
// slow hash set the bcrypt scheme, and both kinds of stored digests keep verifying.
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	SchemeSHA256 = "sha256"
	SchemeBcrypt = "bcrypt"

	// salts are decimal strings in [1, maxSalt]
	maxSalt = 1_000_000_000
)

// Hash returns hex(SHA-256(password || salt)).
func Hash(password, salt string) string {
	h := sha256.New()
	h.Write([]byte(password))
	h.Write([]byte(salt))
	return hex.EncodeToString(h.Sum(nil))
}

// NewSalt returns a random decimal string between 1 and 10^9 inclusive.
func NewSalt() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(maxSalt))
	if err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return n.Add(n, big.NewInt(1)).String(), nil
}

type Hasher struct {
	scheme string
	cost   int
}

func NewHasher(scheme string) (*Hasher, error) {
	switch scheme {
	case "", SchemeSHA256:
		return &Hasher{scheme: SchemeSHA256}, nil
	case SchemeBcrypt:
		return &Hasher{scheme: SchemeBcrypt, cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", scheme)
	}
}

func (h *Hasher) Scheme() string { return h.scheme }

// Digest hashes password with salt using the configured scheme.
func (h *Hasher) Digest(password, salt string) (string, error) {
	if h.scheme == SchemeBcrypt {
		b, err := bcrypt.GenerateFromPassword([]byte(password+salt), h.cost)
		if err != nil {
			return "", fmt.Errorf("bcrypt: %w", err)
		}
		return string(b), nil
	}
	return Hash(password, salt), nil
}

// Verify reports whether candidate matches the stored digest. The scheme is taken from
// the digest itself, not from the hasher configuration.
func (h *Hasher) Verify(candidate, salt, digest string) bool {
	if isBcrypt(digest) {
		return bcrypt.CompareHashAndPassword([]byte(digest), []byte(candidate+salt)) == nil
	}
	computed := Hash(candidate, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}

func isBcrypt(digest string) bool {
	return strings.HasPrefix(digest, "$2a$") || strings.HasPrefix(digest, "$2b$") || strings.HasPrefix(digest, "$2y$")
}
