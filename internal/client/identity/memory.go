package identity

import (
	"context"
	"crypto/subtle"
	"strings"
	"sync"

	"github.com/dmitrijs2005/caresupport/internal/common"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const DefaultMinPasswordLength = 6

type memoryAccount struct {
	id          string
	email       string
	displayName string
	password    string
}

// MemoryProvider keeps accounts in process. Besides offline use it supports
// fault injection (FailNext) and holding calls open (Hold) for tests.
type MemoryProvider struct {
	MinPasswordLength int

	validate *validator.Validate

	mu       sync.Mutex
	accounts map[string]*memoryAccount // by normalised email
	current  string                    // signed-in user id
	token    string                    // token of the current account
	revoked  map[string]bool
	failures []error
	gate     chan struct{}
	calls    int
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		MinPasswordLength: DefaultMinPasswordLength,
		validate:          validator.New(),
		accounts:          make(map[string]*memoryAccount),
		revoked:           make(map[string]bool),
	}
}

// FailNext makes the next provider call fail with err. Calls queue up.
func (p *MemoryProvider) FailNext(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failures = append(p.failures, err)
}

// Hold blocks every subsequent call until release is invoked or the call's
// context ends. Release is idempotent.
func (p *MemoryProvider) Hold() (release func()) {
	gate := make(chan struct{})
	p.mu.Lock()
	p.gate = gate
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			if p.gate == gate {
				p.gate = nil
			}
			p.mu.Unlock()
			close(gate)
		})
	}
}

// Calls returns the number of provider calls made so far.
func (p *MemoryProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// enter waits on the gate, then pops an injected failure if any.
func (p *MemoryProvider) enter(ctx context.Context) error {
	p.mu.Lock()
	p.calls++
	gate := p.gate
	p.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return AsError(ctx.Err())
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.failures) > 0 {
		err := p.failures[0]
		p.failures = p.failures[1:]
		return AsError(err)
	}
	return nil
}

func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (p *MemoryProvider) CreateAccount(ctx context.Context, email, password, displayName string) (Account, error) {
	if err := p.enter(ctx); err != nil {
		return Account{}, err
	}
	key := normaliseEmail(email)
	if err := p.validate.Var(key, "required,email"); err != nil {
		return Account{}, NewError(KindInvalidCredentials, "The email address is badly formatted.")
	}
	if len(password) < p.MinPasswordLength {
		return Account{}, NewError(KindWeakPassword, defaultMessage(KindWeakPassword))
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.accounts[key]; ok {
		return Account{}, NewError(KindAccountAlreadyExists, defaultMessage(KindAccountAlreadyExists))
	}
	acc := &memoryAccount{
		id:          uuid.NewString(),
		email:       key,
		displayName: strings.TrimSpace(displayName),
		password:    password,
	}
	p.accounts[key] = acc
	return p.issue(acc), nil
}

func (p *MemoryProvider) SignIn(ctx context.Context, email, password string) (Account, error) {
	if err := p.enter(ctx); err != nil {
		return Account{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	acc, ok := p.accounts[normaliseEmail(email)]
	if !ok || subtle.ConstantTimeCompare([]byte(acc.password), []byte(password)) != 1 {
		return Account{}, NewError(KindInvalidCredentials, defaultMessage(KindInvalidCredentials))
	}
	return p.issue(acc), nil
}

// SignOut forgets the current account before anything else, so an
// injected failure still leaves nobody signed in.
func (p *MemoryProvider) SignOut(ctx context.Context) error {
	p.mu.Lock()
	if p.token != "" {
		p.revoked[p.token] = true
	}
	p.current, p.token = "", ""
	p.mu.Unlock()
	return p.enter(ctx)
}

func (p *MemoryProvider) Revoke(ctx context.Context, acc Account) error {
	if err := p.enter(ctx); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if acc.Token == "" {
		return nil
	}
	p.revoked[acc.Token] = true
	if p.token == acc.Token {
		p.current, p.token = "", ""
	}
	return nil
}

// Revoked reports whether token was signed out or revoked.
func (p *MemoryProvider) Revoked(token string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.revoked[token]
}

func (p *MemoryProvider) DeleteCurrentAccount(ctx context.Context, userID string) error {
	if err := p.enter(ctx); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == "" || p.current != userID {
		return NewError(KindNoActiveSession, defaultMessage(KindNoActiveSession))
	}
	for key, acc := range p.accounts {
		if acc.id == userID {
			delete(p.accounts, key)
		}
	}
	p.current, p.token = "", ""
	return nil
}

// Resume makes acc current if the account still exists and its token was
// not revoked.
func (p *MemoryProvider) Resume(acc Account) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	a, ok := p.accounts[normaliseEmail(acc.Email)]
	if !ok || a.id != acc.UserID || p.revoked[acc.Token] {
		return false
	}
	p.current, p.token = a.id, acc.Token
	return true
}

func (p *MemoryProvider) issue(acc *memoryAccount) Account {
	token, err := common.MakeRandHexString(16)
	if err != nil {
		token = uuid.NewString()
	}
	return Account{UserID: acc.id, Email: acc.email, DisplayName: acc.displayName, Token: token}
}
