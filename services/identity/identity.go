package identitysvc

import (
	"encoding/json"
	"sync"

	"github.com/tmugisha/amali/core"
	"github.com/tmugisha/amali/core/submission"
)

const sessionKey = "session_user"

// Provider keeps the logged-in student in the local key-value store (the
// CLI's analog of a browser session) and fans logout out to registered
// teardown hooks.
type Provider struct {
	kv core.KeyValueStore

	mu    sync.Mutex
	hooks []func()
}

var _ submission.IdentityProvider = (*Provider)(nil)

func NewProvider(kv core.KeyValueStore) *Provider {
	return &Provider{kv: kv}
}

// Login stores the identity as the current session.
func (p *Provider) Login(ident submission.Identity) error {
	raw, err := json.Marshal(ident)
	if err != nil {
		return err
	}
	return p.kv.Set(sessionKey, string(raw))
}

// Current returns the logged-in identity, if any. A corrupt session record
// reads as logged out.
func (p *Provider) Current() (submission.Identity, bool) {
	raw, err := p.kv.Get(sessionKey)
	if err != nil {
		return submission.Identity{}, false
	}
	var ident submission.Identity
	if err := json.Unmarshal([]byte(raw), &ident); err != nil || ident.UserID == "" {
		return submission.Identity{}, false
	}
	return ident, true
}

// Logout clears the session and runs teardown hooks. In-flight uploads
// observe the teardown through the hook that cancels their context.
func (p *Provider) Logout() {
	_ = p.kv.Remove(sessionKey)

	p.mu.Lock()
	hooks := make([]func(), len(p.hooks))
	copy(hooks, p.hooks)
	p.mu.Unlock()

	for _, hook := range hooks {
		hook()
	}
}

// OnLogout registers a teardown hook; called on every Logout.
func (p *Provider) OnLogout(hook func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hooks = append(p.hooks, hook)
}
