// Package browser owns the single shared headless-browser session. The
// session is established lazily on the first surface acquisition and reused
// until Shutdown; each acquisition yields an isolated page so no state leaks
// between requests.
package browser

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/rmitchellscott/inkframe/internal/logging"
)

// Config configures the session manager.
type Config struct {
	// RemoteURL is the WebSocket control URL of an external browser.
	// Empty means launch a local sandboxed headless Chromium.
	RemoteURL string

	// Bin overrides the local browser binary path. Ignored for remote
	// sessions.
	Bin string
}

// Manager holds the shared browser session. Safe for concurrent use; only
// one connection attempt runs at a time and acquisition on an already
// connected session reuses it.
type Manager struct {
	cfg Config

	mu      sync.Mutex
	browser *rod.Browser
	lnch    *launcher.Launcher
}

// NewManager creates a Manager. No connection happens until the first
// AcquireSurface call.
func NewManager(cfg Config) *Manager {
	return &Manager{cfg: cfg}
}

// Surface is an isolated page borrowed from the shared session. Callers
// must Release it on every exit path.
type Surface struct {
	page   *rod.Page
	closer func() error
}

// Page returns the underlying page.
func (s *Surface) Page() *rod.Page {
	return s.page
}

// Release closes the surface's page without touching the shared session.
// Safe to call more than once. The close does not run under the request
// context the page is bound to; that context is usually already expired
// when a timed-out render releases its surface.
func (s *Surface) Release() {
	if s.closer == nil {
		s.page = nil
		return
	}
	if err := s.closer(); err != nil {
		logging.WarnWithComponent(logging.ComponentBrowser, "Failed to close surface", "error", err)
	}
	s.closer = nil
	s.page = nil
}

// AcquireSurface returns a fresh isolated page, connecting the session first
// if needed. A page-creation failure on an existing session marks it
// disconnected so the next call reconnects lazily; the failure itself is
// returned, never retried.
func (m *Manager) AcquireSurface(ctx context.Context) (*Surface, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.browser == nil {
		if err := m.connectLocked(); err != nil {
			return nil, err
		}
	}

	page, err := m.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		// The session is likely gone. Drop it so the next acquisition
		// re-establishes from scratch.
		m.disconnectLocked()
		return nil, fmt.Errorf("browser: create surface: %w", err)
	}
	// The page works under the request context, but teardown must not:
	// closing through a fresh context frees the page even when the
	// request already hit its deadline.
	return &Surface{
		page: page.Context(ctx),
		closer: func() error {
			return page.Context(context.Background()).Close()
		},
	}, nil
}

// Shutdown disconnects from a remote session or terminates a local one and
// resets the manager so it can be lazily re-established.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disconnectLocked()
}

func (m *Manager) connectLocked() error {
	wsURL := m.cfg.RemoteURL
	if wsURL != "" {
		logging.InfoWithComponent(logging.ComponentBrowser, "Connecting to remote browser", "url", wsURL)
	} else {
		l := launcher.New().Headless(true)
		if m.cfg.Bin != "" {
			l = l.Bin(m.cfg.Bin)
		}
		u, err := l.Launch()
		if err != nil {
			return fmt.Errorf("browser: launch: %w", err)
		}
		wsURL = u
		m.lnch = l
		logging.InfoWithComponent(logging.ComponentBrowser, "Launched local browser", "url", wsURL)
	}

	b := rod.New().ControlURL(wsURL)
	if err := b.Connect(); err != nil {
		if m.lnch != nil {
			m.lnch.Cleanup()
			m.lnch = nil
		}
		return fmt.Errorf("browser: connect: %w", err)
	}

	m.browser = b
	return nil
}

func (m *Manager) disconnectLocked() {
	if m.browser != nil {
		if err := m.browser.Close(); err != nil {
			logging.WarnWithComponent(logging.ComponentBrowser, "Browser close failed", "error", err)
		}
		m.browser = nil
	}
	if m.lnch != nil {
		m.lnch.Cleanup()
		m.lnch = nil
	}
}
