package passhash

import (
	"crypto/subtle"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Hasher produces and verifies self-describing password hash tokens.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) bool
}

// Bcrypt hashes passwords with a configurable work factor. Every hash
// carries its own salt; no salt is ever reused across calls.
type Bcrypt struct {
	cost int
}

// NewBcrypt creates a bcrypt hasher. Costs outside bcrypt's valid range
// fall back to the default cost (10).
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Hash returns a bcrypt token encoding algorithm tag, cost, salt, and digest.
func (b *Bcrypt) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify recomputes the digest and compares without early exit.
func (b *Bcrypt) Verify(password, encoded string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password)) == nil
}

// bcrypt token prefixes produced by the supported variants.
var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// HasBcryptTag reports whether encoded carries a bcrypt algorithm tag.
func HasBcryptTag(encoded string) bool {
	for _, p := range bcryptPrefixes {
		if strings.HasPrefix(encoded, p) {
			return true
		}
	}
	return false
}

// LegacyFallback is an explicit compatibility variant for rows seeded with
// plain-text passwords. Tokens with a bcrypt tag go through the wrapped
// hasher; anything else is compared for direct equality in constant time,
// and every such comparison is logged as insecure.
type LegacyFallback struct {
	next   Hasher
	logger *slog.Logger
}

// NewLegacyFallback wraps next with the plain-text compatibility path.
func NewLegacyFallback(next Hasher, logger *slog.Logger) *LegacyFallback {
	if logger == nil {
		logger = slog.Default()
	}
	return &LegacyFallback{next: next, logger: logger}
}

// Hash always delegates; new hashes are never written in the legacy form.
func (l *LegacyFallback) Hash(password string) (string, error) {
	return l.next.Hash(password)
}

// Verify delegates for bcrypt-tagged tokens and falls back to constant-time
// equality for legacy plain-text rows.
func (l *LegacyFallback) Verify(password, encoded string) bool {
	if HasBcryptTag(encoded) {
		return l.next.Verify(password, encoded)
	}
	l.logger.Warn("verifying against plain-text password row; rehash this account",
		slog.String("reason", "stored value has no bcrypt tag"),
	)
	return subtle.ConstantTimeCompare([]byte(password), []byte(encoded)) == 1
}
