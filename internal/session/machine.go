// Package session owns the per-window session state machine: which
// account is active, how switches between accounts are requested and
// executed, and what the switcher lists. Every window process runs one
// Machine; the durable store is the source of truth and the machine's
// view is rebuilt from it on events and on focus.
package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/avbelov/gamedeck/internal/config"
	"github.com/avbelov/gamedeck/internal/handoff"
	"github.com/avbelov/gamedeck/internal/logger"
	"github.com/avbelov/gamedeck/internal/store"
	"github.com/avbelov/gamedeck/internal/token"
	"github.com/avbelov/gamedeck/internal/window"
	"github.com/avbelov/gamedeck/models"
)

// listingCap bounds the switcher listing.
const listingCap = 10

// Machine is the session state machine of one window process. All
// transitions are strictly sequential: a single mutex serializes every
// operation, so at most one switch is in flight per process.
type Machine struct {
	accounts store.AccountRepository
	auth     Authenticator
	handoff  Handoff
	bus      Publisher
	windows  window.Coordinator
	guard    *window.Guard
	cfg      config.App
	logger   *logger.Logger

	mu             sync.Mutex
	state          State
	current        models.Account
	inFlightTarget string
	inFlightFailed bool
	cached         Snapshot

	now   func() time.Time
	sleep func(time.Duration)
}

// NewMachine creates a Machine in the Anonymous state.
func NewMachine(
	accounts store.AccountRepository,
	auth Authenticator,
	handoff Handoff,
	bus Publisher,
	windows window.Coordinator,
	cfg config.App,
	logger *logger.Logger,
) *Machine {
	return &Machine{
		accounts: accounts,
		auth:     auth,
		handoff:  handoff,
		bus:      bus,
		windows:  windows,
		guard:    window.NewGuard(),
		cfg:      cfg,
		logger:   logger,
		state:    Anonymous,
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

// Login verifies the credentials and makes the account the current one.
// The previous account, if any, is logged out unless it asked to stay
// logged in. stayLoggedIn is persisted on the account so it survives
// later switches away from it. A login for the account that is already
// current only refreshes its record.
func (m *Machine) Login(ctx context.Context, identifier, password string, stayLoggedIn bool) (models.Account, error) {
	account, err := m.auth.Authenticate(ctx, identifier, password)
	if err != nil {
		return models.Account{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activate(ctx, account, stayLoggedIn)
}

// LoginGuest creates a throwaway guest account and makes it current.
func (m *Machine) LoginGuest(ctx context.Context) (models.Account, error) {
	account, err := m.auth.CreateGuest(ctx)
	if err != nil {
		return models.Account{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activate(ctx, account, false)
}

// Resume restores the most recently used logged-in account whose stored
// session token is still valid, without prompting for credentials.
// Returns ErrNotResumable when no such account exists.
func (m *Machine) Resume(ctx context.Context) (models.Account, error) {
	log := logger.FromContext(ctx)

	all, err := m.accounts.List(ctx)
	if err != nil {
		return models.Account{}, fmt.Errorf("error listing accounts for resume: %w", err)
	}

	var best models.Account
	for _, account := range all {
		if !account.IsLoggedIn || account.SessionToken == "" {
			continue
		}
		if _, err := token.ValidateSessionToken(account.SessionToken, m.cfg.TokenSignKey, m.cfg.TokenIssuer); err != nil {
			log.Debug().Str("func", "Resume").
				Str("account_id", account.ID).
				Msg("stored session token not valid, skipping")
			continue
		}
		if best.ID == "" || account.LastLoginTime.After(best.LastLoginTime) {
			best = account
		}
	}
	if best.ID == "" {
		return models.Account{}, ErrNotResumable
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = Active
	m.current = best
	m.rebuildSnapshotLocked(all)

	log.Info().Str("func", "Resume").Str("account_id", best.ID).Msg("session resumed")
	return best, nil
}

// RequestSwitch asks to make the target account current.
//
// A target that is already current returns ErrAlreadyActive, which
// callers treat as a no-op success. A target that is already logged in
// takes the fast path: the request is parked in the handoff mailbox and
// the switcher window is opened; the machine enters SwitchPending and
// the executing window finishes the switch. A target that is not logged
// in never switches here: the auth window opens with the identifier
// pre-filled, and the eventual re-auth lands as an ordinary login.
func (m *Machine) RequestSwitch(ctx context.Context, accountID string) error {
	log := logger.FromContext(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == Active && m.current.ID == accountID {
		log.Debug().Str("func", "RequestSwitch").Str("account_id", accountID).Msg("target already active")
		return ErrAlreadyActive
	}

	target, err := m.accounts.Get(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			return fmt.Errorf("switch target: %w", err)
		}
		return fmt.Errorf("error loading switch target: %w", err)
	}
	if target.IsGuest || target.HiddenInSwitcher {
		// Guests and removed accounts are never switch targets.
		return fmt.Errorf("switch target: %w", store.ErrAccountNotFound)
	}

	if !target.IsLoggedIn {
		if m.guard.Ignored(target.ID) {
			log.Debug().Str("func", "RequestSwitch").
				Str("account_id", target.ID).
				Msg("auth window already open for target")
			return nil
		}
		m.guard.IgnoreFor(target.ID, m.cfg.AuthDebounce)

		if err := m.windows.Open(ctx, models.WindowAuth, window.Params{Prefill: loginIdentifier(target)}); err != nil {
			m.guard.Release(target.ID)
			return err
		}
		return nil
	}

	if err := m.handoff.Post(ctx, target.ID, m.current.ID); err != nil {
		return err
	}
	m.state = SwitchPending
	m.refreshCachedLocked()

	if err := m.windows.Open(ctx, models.WindowSwitcher, window.Params{}); err != nil {
		log.Warn().Err(err).Str("func", "RequestSwitch").Msg("error opening switcher window")
	}

	log.Info().Str("func", "RequestSwitch").Str("account_id", target.ID).Msg("switch requested")
	return nil
}

// RunPendingSwitch consumes the handoff mailbox: if a fresh switch
// request is parked, the switch is executed and the slot cleared. Run
// before any other startup work in the executing window; a consumed
// request means the window has done its job and should close. The
// executing process starts with no session of its own, so the previous
// account is resolved from the request's PrevAccountID rather than the
// local pointer. An empty or stale slot is not an error, and reports
// consumed=false.
func (m *Machine) RunPendingSwitch(ctx context.Context) (bool, error) {
	pending, err := m.handoff.Take(ctx)
	if err != nil {
		if errors.Is(err, handoff.ErrEmpty) || errors.Is(err, handoff.ErrStale) {
			return false, nil
		}
		return false, err
	}

	m.mu.Lock()
	prev := m.current
	if prev.ID == "" && pending.PrevAccountID != "" && pending.PrevAccountID != pending.AccountID {
		prev, err = m.accounts.Get(ctx, pending.PrevAccountID)
		if err != nil {
			if !errors.Is(err, store.ErrAccountNotFound) {
				m.mu.Unlock()
				return true, fmt.Errorf("error loading previous account: %w", err)
			}
			prev = models.Account{}
		}
	}
	err = m.completeSwitchLocked(ctx, pending.AccountID, prev)
	m.mu.Unlock()
	if err != nil {
		return true, err
	}
	return true, m.handoff.Clear(ctx)
}

// CompleteSwitch executes the switch to the target account. The machine
// enters SwitchInFlight and publishes switch-start before any store
// write so every window can raise its loading surface, waits out the
// settle delay, then logs the previous account out (unless it stays
// logged in), logs the target in, updates the local pointer, and
// publishes user-changed and switch-complete.
//
// Re-entering for the target already in flight is a no-op, so a
// duplicate mailbox read is harmless. A failed store write returns
// ErrWriteFailed and leaves the machine in SwitchInFlight: no rollback;
// calling again for the same target re-runs the write sequence as the
// manual retry.
func (m *Machine) CompleteSwitch(ctx context.Context, accountID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.completeSwitchLocked(ctx, accountID, m.current)
}

// completeSwitchLocked runs the switch write sequence with an explicit
// previous account, which may differ from m.current when the request
// came through the mailbox. Caller holds the mutex.
func (m *Machine) completeSwitchLocked(ctx context.Context, accountID string, prev models.Account) error {
	log := logger.FromContext(ctx)

	if m.state == SwitchInFlight && m.inFlightTarget == accountID && !m.inFlightFailed {
		log.Debug().Str("func", "CompleteSwitch").Str("account_id", accountID).Msg("switch already in flight")
		return nil
	}
	if m.state == Active && m.current.ID == accountID {
		return nil
	}

	m.state = SwitchInFlight
	m.inFlightTarget = accountID
	m.inFlightFailed = false
	m.refreshCachedLocked()

	if err := m.bus.Publish(ctx, models.Event{Name: models.EventSwitchStart, AccountID: accountID}); err != nil {
		log.Warn().Err(err).Str("func", "CompleteSwitch").Msg("error publishing switch-start")
	}

	m.sleep(m.cfg.SettleDelay)

	if prev.ID != "" && !prev.StayLoggedIn {
		if err := m.accounts.MarkLoggedOut(ctx, prev.ID); err != nil {
			log.Error().Err(err).Str("func", "CompleteSwitch").
				Str("account_id", prev.ID).
				Msg("error logging previous account out")
			m.inFlightFailed = true
			return fmt.Errorf("%w: %w", ErrWriteFailed, err)
		}
	}

	sessionToken, err := token.GenerateSessionToken(m.cfg.TokenIssuer, accountID, m.cfg.TokenDuration, m.cfg.TokenSignKey)
	if err != nil {
		m.inFlightFailed = true
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	if err := m.accounts.MarkLoggedIn(ctx, accountID, sessionToken.String()); err != nil {
		log.Error().Err(err).Str("func", "CompleteSwitch").
			Str("account_id", accountID).
			Msg("error logging target account in")
		m.inFlightFailed = true
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	target, err := m.accounts.Get(ctx, accountID)
	if err != nil {
		m.inFlightFailed = true
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	m.state = Active
	m.current = target
	m.inFlightTarget = ""
	m.guard.Release(accountID)
	m.refreshCachedLocked()

	for _, name := range []string{models.EventUserChanged, models.EventSwitchComplete} {
		if err := m.bus.Publish(ctx, models.Event{Name: name, AccountID: accountID}); err != nil {
			log.Warn().Err(err).Str("func", "CompleteSwitch").Str("event", name).Msg("error publishing event")
		}
	}

	log.Info().Str("func", "CompleteSwitch").Str("account_id", accountID).Msg("switch completed")
	return nil
}

// Logout logs the current account out. When another visible non-guest
// account asked to stay logged in, the most recently used such account
// becomes current automatically; otherwise the machine goes Anonymous.
// A guest logout always goes Anonymous.
func (m *Machine) Logout(ctx context.Context) error {
	log := logger.FromContext(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == Anonymous {
		return nil
	}
	prev := m.current

	if err := m.accounts.MarkLoggedOut(ctx, prev.ID); err != nil {
		return fmt.Errorf("error logging account out: %w", err)
	}

	next := models.Account{}
	if !prev.IsGuest {
		all, err := m.accounts.List(ctx)
		if err != nil {
			log.Warn().Err(err).Str("func", "Logout").Msg("error listing accounts for auto-switch")
		} else {
			next = mostRecentStayLoggedIn(all, prev.ID)
		}
	}

	if next.ID != "" {
		m.state = Active
		m.current = next
		log.Info().Str("func", "Logout").
			Str("account_id", prev.ID).
			Str("next_account_id", next.ID).
			Msg("logged out, auto-switched")
	} else {
		m.state = Anonymous
		m.current = models.Account{}
		log.Info().Str("func", "Logout").Str("account_id", prev.ID).Msg("logged out")
	}
	m.refreshCachedLocked()

	if err := m.bus.Publish(ctx, models.Event{Name: models.EventUserChanged, AccountID: next.ID}); err != nil {
		log.Warn().Err(err).Str("func", "Logout").Msg("error publishing user-changed")
	}
	return nil
}

// Remove hides the account from the switcher and logs it out, in one
// atomic store update. Removing the current account behaves like a
// logout of it.
func (m *Machine) Remove(ctx context.Context, accountID string) error {
	log := logger.FromContext(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.accounts.SoftRemove(ctx, accountID); err != nil {
		return fmt.Errorf("error removing account: %w", err)
	}

	if m.state != Anonymous && m.current.ID == accountID {
		m.state = Anonymous
		m.current = models.Account{}
	}
	m.refreshCachedLocked()

	if err := m.bus.Publish(ctx, models.Event{Name: models.EventUserChanged, AccountID: m.current.ID}); err != nil {
		log.Warn().Err(err).Str("func", "Remove").Msg("error publishing user-changed")
	}

	log.Info().Str("func", "Remove").Str("account_id", accountID).Msg("account removed from switcher")
	return nil
}

// Listing returns the switcher's account list: hidden accounts and
// guests are excluded; the current account sorts first, then descending
// last login time, then case-insensitive display name; capped at 10
// entries. When the store is unavailable the last cached listing is
// served read-only.
func (m *Machine) Listing(ctx context.Context) ([]models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all, err := m.accounts.List(ctx)
	if err != nil {
		if errors.Is(err, store.ErrStoreUnavailable) {
			logger.FromContext(ctx).Warn().Str("func", "Listing").
				Msg("store unavailable, serving cached listing")
			return m.cached.Accounts, nil
		}
		return nil, fmt.Errorf("error listing accounts: %w", err)
	}

	listing := m.buildListingLocked(all)
	m.cached = Snapshot{
		State:    m.state,
		Current:  m.current,
		Accounts: listing,
		TakenAt:  m.now(),
	}
	return listing, nil
}

// Snapshot returns the cached per-window view. It is subordinate to the
// store and only as fresh as the last successful read.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.cached
	snapshot.State = m.state
	snapshot.Current = m.current
	return snapshot
}

// HandleEvent applies a bus event to the machine. Events are hints: the
// store is re-read rather than trusted payloads applied.
func (m *Machine) HandleEvent(ctx context.Context, event models.Event) {
	log := logger.FromContext(ctx)

	switch event.Name {
	case models.EventSwitchStart:
		m.mu.Lock()
		if m.state != SwitchInFlight {
			m.state = SwitchInFlight
			m.inFlightTarget = event.AccountID
			m.refreshCachedLocked()
		}
		m.mu.Unlock()
	case models.EventUserChanged, models.EventSwitchComplete:
		if err := m.Refresh(ctx); err != nil {
			log.Warn().Err(err).Str("func", "HandleEvent").
				Str("event", event.Name).
				Msg("error refreshing after event")
		}
	default:
		log.Debug().Str("func", "HandleEvent").Str("event", event.Name).Msg("ignoring unknown event")
	}
}

// Refresh re-reads the store and rebuilds the machine's view. Called on
// focus, on bus hints, and by the background re-sync ticker.
func (m *Machine) Refresh(ctx context.Context) error {
	all, err := m.accounts.List(ctx)
	if err != nil {
		if errors.Is(err, store.ErrStoreUnavailable) {
			// Keep serving the cached view until the store comes back.
			return nil
		}
		return fmt.Errorf("error refreshing accounts: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	newest := mostRecentLoggedIn(all)

	switch m.state {
	case SwitchInFlight:
		// Hold the loading surface until the target has landed.
		if m.inFlightTarget != "" {
			if target, found := findAccount(all, m.inFlightTarget); found && target.IsLoggedIn {
				m.state = Active
				m.current = target
				m.inFlightTarget = ""
			}
		}
	case SwitchPending:
		if newest.ID != "" && newest.ID != m.current.ID {
			// The executing window finished the switch.
			m.state = Active
			m.current = newest
		} else if refreshed, found := findAccount(all, m.current.ID); found {
			m.current = refreshed
		}
	default:
		if m.current.ID != "" {
			refreshed, found := findAccount(all, m.current.ID)
			if !found || refreshed.HiddenInSwitcher || !refreshed.IsLoggedIn {
				m.state = Anonymous
				m.current = models.Account{}
			} else {
				m.current = refreshed
			}
		}
		// Another window may have made a different account current since
		// the last read. A more recent login wins over the local pointer.
		if newest.ID != "" && newest.ID != m.current.ID &&
			(m.current.ID == "" || newest.LastLoginTime.After(m.current.LastLoginTime)) {
			m.state = Active
			m.current = newest
		}
	}

	m.rebuildSnapshotLocked(all)
	return nil
}

// activate makes the account current after a successful authentication,
// persisting the stay-logged-in choice when it changed. Caller holds
// the mutex.
func (m *Machine) activate(ctx context.Context, account models.Account, stayLoggedIn bool) (models.Account, error) {
	log := logger.FromContext(ctx)

	if !account.IsGuest && account.StayLoggedIn != stayLoggedIn {
		account.StayLoggedIn = stayLoggedIn
		if err := m.accounts.Upsert(ctx, account); err != nil {
			return models.Account{}, fmt.Errorf("error saving stay-logged-in choice: %w", err)
		}
	}

	if m.state == Active && m.current.ID == account.ID {
		m.current = account
		m.refreshCachedLocked()
		return account, nil
	}

	prev := m.current
	if prev.ID != "" && !prev.StayLoggedIn {
		if err := m.accounts.MarkLoggedOut(ctx, prev.ID); err != nil {
			return models.Account{}, fmt.Errorf("error logging previous account out: %w", err)
		}
	}

	sessionToken, err := token.GenerateSessionToken(m.cfg.TokenIssuer, account.ID, m.cfg.TokenDuration, m.cfg.TokenSignKey)
	if err != nil {
		return models.Account{}, fmt.Errorf("error issuing session token: %w", err)
	}
	if err := m.accounts.MarkLoggedIn(ctx, account.ID, sessionToken.String()); err != nil {
		return models.Account{}, fmt.Errorf("error logging account in: %w", err)
	}

	account.IsLoggedIn = true
	account.HiddenInSwitcher = false
	account.SessionToken = sessionToken.String()
	account.LastLoginTime = m.now()

	m.state = Active
	m.current = account
	m.inFlightTarget = ""
	m.guard.Release(account.ID)
	m.refreshCachedLocked()

	if err := m.bus.Publish(ctx, models.Event{Name: models.EventUserChanged, AccountID: account.ID}); err != nil {
		log.Warn().Err(err).Str("func", "activate").Msg("error publishing user-changed")
	}

	log.Info().Str("func", "activate").Str("account_id", account.ID).Msg("account active")
	return account, nil
}

// buildListingLocked filters and orders accounts for the switcher.
// Caller holds the mutex.
func (m *Machine) buildListingLocked(all []models.Account) []models.Account {
	listing := make([]models.Account, 0, len(all))
	for _, account := range all {
		if account.HiddenInSwitcher || account.IsGuest {
			continue
		}
		listing = append(listing, account)
	}

	currentID := m.current.ID
	sort.SliceStable(listing, func(i, j int) bool {
		a, b := listing[i], listing[j]
		if (a.ID == currentID) != (b.ID == currentID) {
			return a.ID == currentID
		}
		if !a.LastLoginTime.Equal(b.LastLoginTime) {
			return a.LastLoginTime.After(b.LastLoginTime)
		}
		return strings.ToLower(a.DisplayName()) < strings.ToLower(b.DisplayName())
	})

	if len(listing) > listingCap {
		listing = listing[:listingCap]
	}
	return listing
}

func (m *Machine) rebuildSnapshotLocked(all []models.Account) {
	m.cached = Snapshot{
		State:    m.state,
		Current:  m.current,
		Accounts: m.buildListingLocked(all),
		TakenAt:  m.now(),
	}
}

// refreshCachedLocked updates the cached view's state fields without
// re-reading the store. Caller holds the mutex.
func (m *Machine) refreshCachedLocked() {
	m.cached.State = m.state
	m.cached.Current = m.current
	m.cached.TakenAt = m.now()
}

// loginIdentifier picks the identifier pre-filled into the auth window:
// email first, then username, then phone.
func loginIdentifier(account models.Account) string {
	switch {
	case account.Email != "":
		return account.Email
	case account.Username != "":
		return account.Username
	default:
		return account.Phone
	}
}

func findAccount(all []models.Account, id string) (models.Account, bool) {
	for _, account := range all {
		if account.ID == id {
			return account, true
		}
	}
	return models.Account{}, false
}

// mostRecentStayLoggedIn picks the auto-switch candidate after a logout:
// the most recently used visible non-guest account that is still logged
// in and asked to stay so.
func mostRecentStayLoggedIn(all []models.Account, excludeID string) models.Account {
	var best models.Account
	for _, account := range all {
		if account.ID == excludeID || account.IsGuest || account.HiddenInSwitcher {
			continue
		}
		if !account.StayLoggedIn || !account.IsLoggedIn {
			continue
		}
		if best.ID == "" || account.LastLoginTime.After(best.LastLoginTime) {
			best = account
		}
	}
	return best
}

// mostRecentLoggedIn picks the account most recently marked logged in,
// guests excluded.
func mostRecentLoggedIn(all []models.Account) models.Account {
	var best models.Account
	for _, account := range all {
		if !account.IsLoggedIn || account.IsGuest || account.HiddenInSwitcher {
			continue
		}
		if best.ID == "" || account.LastLoginTime.After(best.LastLoginTime) {
			best = account
		}
	}
	return best
}
