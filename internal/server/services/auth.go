package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/crewbase/crewbase/internal/common"
	"github.com/crewbase/crewbase/internal/cryptox"
	"github.com/crewbase/crewbase/internal/logging"
	"github.com/crewbase/crewbase/internal/server/auth"
	"github.com/crewbase/crewbase/internal/server/config"
	"github.com/crewbase/crewbase/internal/server/models"
	"github.com/crewbase/crewbase/internal/server/repositories/accounts"
	"github.com/crewbase/crewbase/internal/server/repositories/credentials"
	"github.com/crewbase/crewbase/internal/server/repositories/sessions"
)

// contextParts is the number of colon-delimited fields a login context must
// carry: clientAppId:clientAppKey:clientRealm:clientNonce:secret.
const contextParts = 5

// LoginResult is what a successful login returns: public profile fields
// only, plus the freshly minted access token and session id.
type LoginResult struct {
	Profile     models.PublicProfile
	AccessToken string
	SessionID   string
}

// AuthService implements the challenge-response protocol. The nonce is
// generated once at construction and never rotated afterwards; it lives in
// an atomic value so every read is safe and a future rotation would be a
// plain swap rather than a lock. The non-rotating nonce weakens replay
// resistance; that is the current protocol, documented in DESIGN.md.
type AuthService struct {
	accounts accounts.Repository
	creds    credentials.Repository
	sessions sessions.Repository

	appID  string
	appKey string
	realm  string
	nonce  atomic.Value // string

	jwtSecret     []byte
	tokenValidity time.Duration
	logger        logging.Logger
}

func NewAuthService(
	ar accounts.Repository,
	cr credentials.Repository,
	sr sessions.Repository,
	cfg *config.Config,
	logger logging.Logger,
) *AuthService {
	s := &AuthService{
		accounts:      ar,
		creds:         cr,
		sessions:      sr,
		appID:         cfg.AuthAppID,
		appKey:        cfg.AuthAppKey,
		realm:         cfg.AuthRealm,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.AccessTokenValidityDuration,
		logger:        logger.With("module", "auth"),
	}
	s.nonce.Store(cryptox.MakeNonce())
	return s
}

// Challenge returns the current challenge. Pure read, idempotent: repeated
// calls within one process lifetime return the identical nonce.
func (s *AuthService) Challenge() models.Challenge {
	return models.Challenge{
		AppID:  s.appID,
		AppKey: s.appKey,
		Realm:  s.realm,
		Nonce:  s.nonce.Load().(string),
		Qop:    common.QopAuth,
	}
}

// Login validates the colon-delimited 5-tuple context against the current
// challenge, then verifies the secret against the stored digest. The
// caller's claimed identity is bound into the comparison, so a captured
// context cannot be replayed for a different identity.
func (s *AuthService) Login(ctx context.Context, identity, contextString string) (*LoginResult, error) {
	parts := strings.Split(contextString, ":")
	if len(parts) != contextParts {
		return nil, fmt.Errorf("%w: context must have %d parts", common.ErrInvalidParameters, contextParts)
	}

	nonce := s.nonce.Load().(string)
	expected := strings.Join([]string{identity, s.appID, s.appKey, s.realm, nonce}, ":")
	received := strings.Join([]string{identity, parts[0], parts[1], parts[2], parts[3]}, ":")
	if subtle.ConstantTimeCompare([]byte(expected), []byte(received)) != 1 {
		s.logger.Warn(ctx, "challenge mismatch", "identity", identity)
		return nil, common.ErrInvalidCredentials
	}

	account, err := s.accounts.Get(ctx, identity)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.logger.Warn(ctx, "login for unknown account", "identity", identity)
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("account lookup: %w", err)
	}

	creds, err := s.creds.Get(ctx, identity)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Credentials should never be missing for an existing account;
			// treat as a credential failure rather than leak the anomaly.
			s.logger.Error(ctx, "account has no credentials row", "identity", identity)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("credentials lookup: %w", err)
	}

	if !cryptox.VerifyPassword(parts[4], creds.PasswordDigest) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(account.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, fmt.Errorf("mint access token: %w", err)
	}

	// Session row is follow-on provisioning: best effort, never fails the
	// login.
	sessionID := uuid.NewString()
	now := time.Now().UTC()
	session := &models.Session{
		ID:        sessionID,
		AccountID: account.ID,
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(s.tokenValidity),
	}
	if err := s.sessions.Insert(ctx, session); err != nil {
		s.logger.Warn(ctx, "session insert failed", "account_id", account.ID, "error", err)
		sessionID = ""
	}

	return &LoginResult{
		Profile:     account.Public(),
		AccessToken: token,
		SessionID:   sessionID,
	}, nil
}
