package local

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rmaulana/storefront/internal/auth/app"
	"github.com/rmaulana/storefront/internal/auth/domain"
)

type captureMailer struct {
	mu     sync.Mutex
	emails []string
	tokens []string
}

func (m *captureMailer) SendVerification(ctx context.Context, email, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.emails = append(m.emails, email)
	m.tokens = append(m.tokens, token)
	return nil
}

func newTestProvider() (*Provider, *captureMailer) {
	mailer := &captureMailer{}
	return NewProvider(Options{Mailer: mailer, MaxAttempts: 3, AttemptWindow: time.Minute}), mailer
}

func TestRegisterWithPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("issues identity and sends verification mail", func(t *testing.T) {
		p, mailer := newTestProvider()

		id, err := p.RegisterWithPassword(ctx, "alice@example.com", "secret123")
		if err != nil {
			t.Fatalf("register failed: %v", err)
		}
		if id.Key == "" || id.Email != "alice@example.com" || id.Verified {
			t.Fatalf("unexpected identity: %+v", id)
		}
		if len(mailer.emails) != 1 || mailer.emails[0] != "alice@example.com" {
			t.Fatalf("verification mail not sent: %+v", mailer.emails)
		}

		current, ok := p.CurrentIdentity(ctx)
		if !ok || current.Key != id.Key {
			t.Fatalf("registration did not sign the user in: %+v ok=%v", current, ok)
		}
	})

	t.Run("malformed email", func(t *testing.T) {
		p, _ := newTestProvider()
		if _, err := p.RegisterWithPassword(ctx, "not-an-email", "secret123"); !errors.Is(err, app.ErrInvalidEmail) {
			t.Fatalf("expected ErrInvalidEmail, got %v", err)
		}
	})

	t.Run("short password", func(t *testing.T) {
		p, _ := newTestProvider()
		if _, err := p.RegisterWithPassword(ctx, "alice@example.com", "12345"); !errors.Is(err, app.ErrWeakPassword) {
			t.Fatalf("expected ErrWeakPassword, got %v", err)
		}
	})

	t.Run("duplicate email, case-insensitive", func(t *testing.T) {
		p, _ := newTestProvider()
		if _, err := p.RegisterWithPassword(ctx, "alice@example.com", "secret123"); err != nil {
			t.Fatalf("first register failed: %v", err)
		}
		if _, err := p.RegisterWithPassword(ctx, "Alice@Example.com", "secret456"); !errors.Is(err, app.ErrEmailInUse) {
			t.Fatalf("expected ErrEmailInUse, got %v", err)
		}
	})
}

func TestLoginWithPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("correct credentials", func(t *testing.T) {
		p, _ := newTestProvider()
		registered, _ := p.RegisterWithPassword(ctx, "alice@example.com", "secret123")
		_ = p.Logout(ctx)

		id, err := p.LoginWithPassword(ctx, "alice@example.com", "secret123")
		if err != nil {
			t.Fatalf("login failed: %v", err)
		}
		if id.Key != registered.Key {
			t.Fatalf("identity key changed across sessions: %q vs %q", id.Key, registered.Key)
		}
	})

	t.Run("wrong password and unknown email look identical", func(t *testing.T) {
		p, _ := newTestProvider()
		_, _ = p.RegisterWithPassword(ctx, "alice@example.com", "secret123")

		_, errWrong := p.LoginWithPassword(ctx, "alice@example.com", "bad-pass")
		_, errUnknown := p.LoginWithPassword(ctx, "nobody@example.com", "whatever")
		if !errors.Is(errWrong, app.ErrInvalidCredentials) || !errors.Is(errUnknown, app.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials for both, got %v / %v", errWrong, errUnknown)
		}
	})

	t.Run("repeated failures throttle", func(t *testing.T) {
		p, _ := newTestProvider()
		_, _ = p.RegisterWithPassword(ctx, "alice@example.com", "secret123")

		for i := 0; i < 3; i++ {
			if _, err := p.LoginWithPassword(ctx, "alice@example.com", "bad-pass"); !errors.Is(err, app.ErrInvalidCredentials) {
				t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i, err)
			}
		}

		// Even the right password is rejected while throttled.
		if _, err := p.LoginWithPassword(ctx, "alice@example.com", "secret123"); !errors.Is(err, app.ErrTooManyAttempts) {
			t.Fatalf("expected ErrTooManyAttempts, got %v", err)
		}
	})

	t.Run("throttle expires with the window", func(t *testing.T) {
		p, _ := newTestProvider()
		_, _ = p.RegisterWithPassword(ctx, "alice@example.com", "secret123")

		now := time.Now()
		p.now = func() time.Time { return now }
		for i := 0; i < 3; i++ {
			_, _ = p.LoginWithPassword(ctx, "alice@example.com", "bad-pass")
		}

		p.now = func() time.Time { return now.Add(2 * time.Minute) }
		if _, err := p.LoginWithPassword(ctx, "alice@example.com", "secret123"); err != nil {
			t.Fatalf("login after window failed: %v", err)
		}
	})
}

func TestLogoutClearsSessionAndNotifies(t *testing.T) {
	ctx := context.Background()
	p, _ := newTestProvider()

	var calls []*domain.Identity
	p.OnIdentityChanged(func(id *domain.Identity) { calls = append(calls, id) })

	registered, _ := p.RegisterWithPassword(ctx, "alice@example.com", "secret123")
	if err := p.Logout(ctx); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	if _, ok := p.CurrentIdentity(ctx); ok {
		t.Fatal("identity still resolved after logout")
	}
	if len(calls) != 2 {
		t.Fatalf("expected 2 callbacks (login, logout), got %d", len(calls))
	}
	if calls[0] == nil || calls[0].Key != registered.Key {
		t.Fatalf("login callback carried %+v", calls[0])
	}
	if calls[1] != nil {
		t.Fatalf("logout callback carried %+v", calls[1])
	}
}

func TestVerificationFlow(t *testing.T) {
	ctx := context.Background()
	p, mailer := newTestProvider()

	id, _ := p.RegisterWithPassword(ctx, "alice@example.com", "secret123")

	t.Run("resend issues a fresh token", func(t *testing.T) {
		if err := p.SendVerificationEmail(ctx, id); err != nil {
			t.Fatalf("resend failed: %v", err)
		}
		if len(mailer.tokens) != 2 {
			t.Fatalf("expected 2 mails, got %d", len(mailer.tokens))
		}
		if mailer.tokens[0] == mailer.tokens[1] {
			t.Fatal("resend reused the old token")
		}
	})

	t.Run("stale token is rejected, fresh one verifies", func(t *testing.T) {
		if _, err := p.VerifyToken(ctx, mailer.tokens[0]); !errors.Is(err, app.ErrInvalidCredentials) {
			t.Fatalf("stale token accepted: %v", err)
		}

		verified, err := p.VerifyToken(ctx, mailer.tokens[1])
		if err != nil {
			t.Fatalf("verify failed: %v", err)
		}
		if !verified.Verified {
			t.Fatalf("identity not marked verified: %+v", verified)
		}

		current, _ := p.CurrentIdentity(ctx)
		if !current.Verified {
			t.Fatal("current session not updated after verification")
		}
	})

	t.Run("resend for unknown identity", func(t *testing.T) {
		err := p.SendVerificationEmail(ctx, domain.Identity{Key: "ghost"})
		if !errors.Is(err, app.ErrNotSignedIn) {
			t.Fatalf("expected ErrNotSignedIn, got %v", err)
		}
	})
}

func TestLookup(t *testing.T) {
	ctx := context.Background()
	p, _ := newTestProvider()

	id, _ := p.RegisterWithPassword(ctx, "alice@example.com", "secret123")

	got, ok := p.Lookup(ctx, id.Key)
	if !ok || got.Email != "alice@example.com" {
		t.Fatalf("Lookup = %+v ok=%v", got, ok)
	}

	if _, ok := p.Lookup(ctx, "unknown-key"); ok {
		t.Fatal("Lookup resolved an unknown key")
	}
}
