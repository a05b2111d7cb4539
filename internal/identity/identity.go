// Package identity manages local login sessions. A session is an
// HS256 JWT signed with a per-install key; both the key and the token
// live under the freightdesk home directory. The engine itself never
// issues identities, it only consumes them through the secondary port.
package identity

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/example/freightdesk/internal/core/role"
	"github.com/example/freightdesk/internal/ports/secondary"
)

const (
	keyFile     = "session.key"
	sessionFile = "session"
	issuer      = "freightdesk"
)

// ErrNoSession is returned when no login session exists.
var ErrNoSession = errors.New("not logged in, run: freightdesk login <user>")

// SessionClaims extends standard JWT claims with the user's role set.
type SessionClaims struct {
	jwt.RegisteredClaims
	Roles string `json:"roles"`
}

// Manager issues and resolves sessions under a home directory.
type Manager struct {
	home string
	ttl  time.Duration
	now  func() time.Time
}

// NewManager creates a session manager rooted at home.
func NewManager(home string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &Manager{home: home, ttl: ttl, now: time.Now}
}

// Login issues a session token for the user and writes it to the
// session file. The caller has already verified the user exists.
func (m *Manager) Login(name string, roles role.Set) error {
	key, err := m.loadOrCreateKey()
	if err != nil {
		return err
	}

	now := m.now().UTC()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   name,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Roles: roles.String(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return fmt.Errorf("failed to sign session token: %w", err)
	}

	if err := os.MkdirAll(m.home, 0755); err != nil {
		return fmt.Errorf("failed to create freightdesk dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(m.home, sessionFile), []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Logout removes the session file. Logging out with no session is a
// no-op.
func (m *Manager) Logout() error {
	err := os.Remove(filepath.Join(m.home, sessionFile))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}

// Current implements secondary.IdentityProvider. It parses and
// validates the stored session token.
func (m *Manager) Current(ctx context.Context) (secondary.Identity, error) {
	data, err := os.ReadFile(filepath.Join(m.home, sessionFile))
	if os.IsNotExist(err) {
		return secondary.Identity{}, ErrNoSession
	}
	if err != nil {
		return secondary.Identity{}, fmt.Errorf("failed to read session: %w", err)
	}

	key, err := m.loadOrCreateKey()
	if err != nil {
		return secondary.Identity{}, err
	}

	var claims SessionClaims
	_, err = jwt.ParseWithClaims(strings.TrimSpace(string(data)), &claims,
		func(token *jwt.Token) (any, error) { return key, nil },
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return secondary.Identity{}, errors.New("session expired, run: freightdesk login <user>")
	}
	if err != nil {
		return secondary.Identity{}, fmt.Errorf("invalid session: %w", err)
	}

	roles, err := role.Parse(claims.Roles)
	if err != nil {
		return secondary.Identity{}, fmt.Errorf("invalid session roles: %w", err)
	}

	return secondary.Identity{
		Name:      claims.Subject,
		Roles:     roles,
		SessionID: claims.Subject + ":" + claims.ID,
	}, nil
}

// loadOrCreateKey returns the per-install signing key, generating one
// on first use.
func (m *Manager) loadOrCreateKey() ([]byte, error) {
	path := filepath.Join(m.home, keyFile)
	key, err := os.ReadFile(path)
	if err == nil {
		return key, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read session key: %w", err)
	}

	key = make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate session key: %w", err)
	}
	if err := os.MkdirAll(m.home, 0755); err != nil {
		return nil, fmt.Errorf("failed to create freightdesk dir: %w", err)
	}
	if err := os.WriteFile(path, key, 0600); err != nil {
		return nil, fmt.Errorf("failed to write session key: %w", err)
	}
	return key, nil
}

// Static is a fixed identity provider for tests and scripts.
type Static struct {
	Identity secondary.Identity
}

// Current returns the fixed identity.
func (s Static) Current(ctx context.Context) (secondary.Identity, error) {
	if s.Identity.Name == "" {
		return secondary.Identity{}, ErrNoSession
	}
	return s.Identity, nil
}
