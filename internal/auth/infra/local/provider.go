// Package local implements the identity provider in-process: accounts live
// in memory and verification mails go through an injected mailer. It backs
// the demo binary and the tests; a hosted provider would slot in behind the
// same port.
package local

import (
	"context"
	"log/slog"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rmaulana/storefront/internal/auth/app"
	"github.com/rmaulana/storefront/internal/auth/domain"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

// Mailer delivers verification mails.
type Mailer interface {
	SendVerification(ctx context.Context, email, token string) error
}

// LogMailer writes the mail to the log instead of sending it.
type LogMailer struct {
	Log *slog.Logger
}

func (m LogMailer) SendVerification(ctx context.Context, email, token string) error {
	m.Log.Info("verification email",
		slog.String("to", email),
		slog.String("token", token),
	)
	return nil
}

type account struct {
	key          string
	email        string
	passwordHash []byte
	verified     bool
	verifyToken  string
}

type attempts struct {
	count       int
	windowStart time.Time
}

type Options struct {
	Mailer Mailer

	// MaxAttempts failed logins per email within AttemptWindow surface
	// ErrTooManyAttempts instead of ErrInvalidCredentials.
	MaxAttempts   int
	AttemptWindow time.Duration
}

type Provider struct {
	mu        sync.Mutex
	accounts  map[string]*account // by lowercased email
	byKey     map[string]*account
	failures  map[string]*attempts
	current   *domain.Identity
	callbacks []func(*domain.Identity)

	mailer        Mailer
	maxAttempts   int
	attemptWindow time.Duration
	now           func() time.Time
}

func NewProvider(opts Options) *Provider {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 5
	}
	if opts.AttemptWindow <= 0 {
		opts.AttemptWindow = 15 * time.Minute
	}

	return &Provider{
		accounts:      make(map[string]*account),
		byKey:         make(map[string]*account),
		failures:      make(map[string]*attempts),
		mailer:        opts.Mailer,
		maxAttempts:   opts.MaxAttempts,
		attemptWindow: opts.AttemptWindow,
		now:           time.Now,
	}
}

func (p *Provider) RegisterWithPassword(ctx context.Context, email, password string) (domain.Identity, error) {
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.Identity{}, app.ErrInvalidEmail
	}
	if len(password) < minPasswordLen {
		return domain.Identity{}, app.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Identity{}, err
	}

	p.mu.Lock()
	normalized := strings.ToLower(email)
	if _, exists := p.accounts[normalized]; exists {
		p.mu.Unlock()
		return domain.Identity{}, app.ErrEmailInUse
	}

	acct := &account{
		key:          uuid.NewString(),
		email:        email,
		passwordHash: hash,
		verifyToken:  uuid.NewString(),
	}
	p.accounts[normalized] = acct
	p.byKey[acct.key] = acct

	identity := identityOf(acct)
	p.current = &identity
	token := acct.verifyToken
	p.mu.Unlock()

	// Registration sends the verification mail right away.
	if p.mailer != nil {
		if err := p.mailer.SendVerification(ctx, identity.Email, token); err != nil {
			return domain.Identity{}, err
		}
	}

	p.notify(&identity)
	return identity, nil
}

func (p *Provider) LoginWithPassword(ctx context.Context, email, password string) (domain.Identity, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))

	p.mu.Lock()
	if err := p.checkThrottle(normalized); err != nil {
		p.mu.Unlock()
		return domain.Identity{}, err
	}

	acct, exists := p.accounts[normalized]
	if !exists {
		p.recordFailure(normalized)
		p.mu.Unlock()
		return domain.Identity{}, app.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(password)) != nil {
		p.recordFailure(normalized)
		p.mu.Unlock()
		return domain.Identity{}, app.ErrInvalidCredentials
	}

	delete(p.failures, normalized)
	identity := identityOf(acct)
	p.current = &identity
	p.mu.Unlock()

	p.notify(&identity)
	return identity, nil
}

func (p *Provider) Logout(ctx context.Context) error {
	p.mu.Lock()
	p.current = nil
	p.mu.Unlock()

	p.notify(nil)
	return nil
}

func (p *Provider) SendVerificationEmail(ctx context.Context, identity domain.Identity) error {
	p.mu.Lock()
	acct, ok := p.byKey[identity.Key]
	if !ok {
		p.mu.Unlock()
		return app.ErrNotSignedIn
	}
	acct.verifyToken = uuid.NewString()
	email, token := acct.email, acct.verifyToken
	p.mu.Unlock()

	if p.mailer == nil {
		return nil
	}
	return p.mailer.SendVerification(ctx, email, token)
}

// VerifyToken redeems a token from a verification mail and marks the
// account verified.
func (p *Provider) VerifyToken(ctx context.Context, token string) (domain.Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, acct := range p.byKey {
		if token != "" && acct.verifyToken == token {
			acct.verified = true
			acct.verifyToken = ""
			if p.current != nil && p.current.Key == acct.key {
				p.current.Verified = true
			}
			return identityOf(acct), nil
		}
	}
	return domain.Identity{}, app.ErrInvalidCredentials
}

func (p *Provider) CurrentIdentity(ctx context.Context) (domain.Identity, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return domain.Identity{}, false
	}
	return *p.current, true
}

// Lookup resolves an identity key issued earlier, for transports that carry
// the key as a bearer token.
func (p *Provider) Lookup(ctx context.Context, key string) (domain.Identity, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	acct, ok := p.byKey[key]
	if !ok {
		return domain.Identity{}, false
	}
	return identityOf(acct), true
}

func (p *Provider) OnIdentityChanged(fn func(*domain.Identity)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.callbacks = append(p.callbacks, fn)
}

func (p *Provider) notify(identity *domain.Identity) {
	p.mu.Lock()
	callbacks := make([]func(*domain.Identity), len(p.callbacks))
	copy(callbacks, p.callbacks)
	p.mu.Unlock()

	for _, fn := range callbacks {
		fn(identity)
	}
}

// checkThrottle and recordFailure assume p.mu is held.
func (p *Provider) checkThrottle(email string) error {
	a, ok := p.failures[email]
	if !ok {
		return nil
	}
	if p.now().Sub(a.windowStart) > p.attemptWindow {
		delete(p.failures, email)
		return nil
	}
	if a.count >= p.maxAttempts {
		return app.ErrTooManyAttempts
	}
	return nil
}

func (p *Provider) recordFailure(email string) {
	a, ok := p.failures[email]
	if !ok || p.now().Sub(a.windowStart) > p.attemptWindow {
		p.failures[email] = &attempts{count: 1, windowStart: p.now()}
		return
	}
	a.count++
}

func identityOf(acct *account) domain.Identity {
	return domain.Identity{
		Key:      acct.key,
		Email:    acct.email,
		Verified: acct.verified,
	}
}
