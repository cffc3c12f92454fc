package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/avbelov/gamedeck/internal/config"
	"github.com/avbelov/gamedeck/internal/handoff"
	"github.com/avbelov/gamedeck/internal/logger"
	"github.com/avbelov/gamedeck/internal/mock"
	"github.com/avbelov/gamedeck/internal/store"
	"github.com/avbelov/gamedeck/internal/token"
	"github.com/avbelov/gamedeck/internal/window"
	"github.com/avbelov/gamedeck/models"
)

type machineMocks struct {
	accounts *mock.MockAccountRepository
	auth     *mock.MockAuthenticator
	handoff  *mock.MockHandoff
	bus      *mock.MockPublisher
	windows  *mock.MockCoordinator
}

func newTestMachine(t *testing.T) (*Machine, machineMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mocks := machineMocks{
		accounts: mock.NewMockAccountRepository(ctrl),
		auth:     mock.NewMockAuthenticator(ctrl),
		handoff:  mock.NewMockHandoff(ctrl),
		bus:      mock.NewMockPublisher(ctrl),
		windows:  mock.NewMockCoordinator(ctrl),
	}

	cfg := config.App{
		TokenSignKey:   "test-sign-key",
		TokenIssuer:    "gamedeck",
		TokenDuration:  time.Hour,
		SettleDelay:    300 * time.Millisecond,
		StalenessBound: 15 * time.Second,
		AuthDebounce:   15 * time.Second,
	}

	m := NewMachine(mocks.accounts, mocks.auth, mocks.handoff, mocks.bus, mocks.windows, cfg, logger.Nop())
	m.sleep = func(time.Duration) {}
	return m, mocks
}

// setActive puts the machine in Active(current) without going through a
// store round trip.
func setActive(m *Machine, current models.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Active
	m.current = current
}

func TestMachine_Login(t *testing.T) {
	m, mocks := newTestMachine(t)
	ctx := context.Background()

	account := models.Account{ID: "acc-1", Email: "user@example.com"}
	mocks.auth.EXPECT().Authenticate(ctx, "user@example.com", "secret-password").Return(account, nil)
	mocks.accounts.EXPECT().MarkLoggedIn(ctx, "acc-1", gomock.Any()).Return(nil)
	mocks.bus.EXPECT().Publish(ctx, models.Event{Name: models.EventUserChanged, AccountID: "acc-1"}).Return(nil)

	got, err := m.Login(ctx, "user@example.com", "secret-password", false)
	require.NoError(t, err)

	assert.Equal(t, "acc-1", got.ID)
	assert.True(t, got.IsLoggedIn)
	assert.NotEmpty(t, got.SessionToken)
	assert.Equal(t, Active, m.Snapshot().State)
	assert.Equal(t, "acc-1", m.Snapshot().Current.ID)
}

func TestMachine_LoginPersistsStayLoggedIn(t *testing.T) {
	m, mocks := newTestMachine(t)
	ctx := context.Background()

	account := models.Account{ID: "acc-1", Email: "user@example.com"}
	saved := account
	saved.StayLoggedIn = true

	mocks.auth.EXPECT().Authenticate(ctx, "user@example.com", "secret-password").Return(account, nil)
	// The choice is written through so later switches away from this
	// account leave it logged in.
	mocks.accounts.EXPECT().Upsert(ctx, saved).Return(nil)
	mocks.accounts.EXPECT().MarkLoggedIn(ctx, "acc-1", gomock.Any()).Return(nil)
	mocks.bus.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	got, err := m.Login(ctx, "user@example.com", "secret-password", true)
	require.NoError(t, err)
	assert.True(t, got.StayLoggedIn)
}

func TestMachine_LoginLogsPreviousOut(t *testing.T) {
	m, mocks := newTestMachine(t)
	ctx := context.Background()

	setActive(m, models.Account{ID: "acc-prev", IsLoggedIn: true})

	account := models.Account{ID: "acc-2", Email: "other@example.com"}
	mocks.auth.EXPECT().Authenticate(ctx, "other@example.com", "secret-password").Return(account, nil)
	mocks.accounts.EXPECT().MarkLoggedOut(ctx, "acc-prev").Return(nil)
	mocks.accounts.EXPECT().MarkLoggedIn(ctx, "acc-2", gomock.Any()).Return(nil)
	mocks.bus.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	_, err := m.Login(ctx, "other@example.com", "secret-password", false)
	require.NoError(t, err)
}

func TestMachine_LoginKeepsStayLoggedInPrevious(t *testing.T) {
	m, mocks := newTestMachine(t)
	ctx := context.Background()

	setActive(m, models.Account{ID: "acc-prev", IsLoggedIn: true, StayLoggedIn: true})

	account := models.Account{ID: "acc-2", Email: "other@example.com"}
	mocks.auth.EXPECT().Authenticate(ctx, "other@example.com", "secret-password").Return(account, nil)
	// No MarkLoggedOut expected for the stay-logged-in previous account.
	mocks.accounts.EXPECT().MarkLoggedIn(ctx, "acc-2", gomock.Any()).Return(nil)
	mocks.bus.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	_, err := m.Login(ctx, "other@example.com", "secret-password", false)
	require.NoError(t, err)
}

func TestMachine_LoginGuest(t *testing.T) {
	m, mocks := newTestMachine(t)
	ctx := context.Background()

	guest := models.Account{ID: "guest-1", Username: "guest-abc", IsGuest: true}
	mocks.auth.EXPECT().CreateGuest(ctx).Return(guest, nil)
	mocks.accounts.EXPECT().MarkLoggedIn(ctx, "guest-1", gomock.Any()).Return(nil)
	mocks.bus.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	got, err := m.LoginGuest(ctx)
	require.NoError(t, err)
	assert.True(t, got.IsGuest)
	assert.Equal(t, Active, m.Snapshot().State)
}

func TestMachine_RequestSwitchAlreadyActive(t *testing.T) {
	m, _ := newTestMachine(t)

	setActive(m, models.Account{ID: "acc-1", IsLoggedIn: true})

	err := m.RequestSwitch(context.Background(), "acc-1")
	assert.ErrorIs(t, err, ErrAlreadyActive)
	assert.Equal(t, Active, m.Snapshot().State)
}

func TestMachine_RequestSwitchUnknownTarget(t *testing.T) {
	m, mocks := newTestMachine(t)
	ctx := context.Background()

	setActive(m, models.Account{ID: "acc-1", IsLoggedIn: true})
	mocks.accounts.EXPECT().Get(ctx, "acc-missing").Return(models.Account{}, store.ErrAccountNotFound)

	err := m.RequestSwitch(ctx, "acc-missing")
	assert.ErrorIs(t, err, store.ErrAccountNotFound)
	// The machine is untouched; the caller refreshes its listing.
	assert.Equal(t, Active, m.Snapshot().State)
	assert.Equal(t, "acc-1", m.Snapshot().Current.ID)
}

func TestMachine_RequestSwitchGuestTarget(t *testing.T) {
	m, mocks := newTestMachine(t)
	ctx := context.Background()

	setActive(m, models.Account{ID: "acc-1", IsLoggedIn: true})
	mocks.accounts.EXPECT().Get(ctx, "guest-1").Return(models.Account{ID: "guest-1", IsGuest: true, IsLoggedIn: true}, nil)

	err := m.RequestSwitch(ctx, "guest-1")
	assert.ErrorIs(t, err, store.ErrAccountNotFound)
}

func TestMachine_RequestSwitchFastPath(t *testing.T) {
	m, mocks := newTestMachine(t)
	ctx := context.Background()

	setActive(m, models.Account{ID: "acc-1", IsLoggedIn: true})

	target := models.Account{ID: "acc-2", Email: "other@example.com", IsLoggedIn: true}
	mocks.accounts.EXPECT().Get(ctx, "acc-2").Return(target, nil)
	// The request carries who is active here so the executing window
	// knows whom to log out.
	mocks.handoff.EXPECT().Post(ctx, "acc-2", "acc-1").Return(nil)
	mocks.windows.EXPECT().Open(ctx, models.WindowSwitcher, gomock.Any()).Return(nil)

	require.NoError(t, m.RequestSwitch(ctx, "acc-2"))

	// The requesting window parks the switch and waits; the executing
	// window finishes it.
	snapshot := m.Snapshot()
	assert.Equal(t, SwitchPending, snapshot.State)
	assert.Equal(t, "acc-1", snapshot.Current.ID)
}

func TestMachine_RequestSwitchSlowPath(t *testing.T) {
	m, mocks := newTestMachine(t)
	ctx := context.Background()

	setActive(m, models.Account{ID: "acc-1", IsLoggedIn: true})

	target := models.Account{ID: "acc-2", Email: "other@example.com", IsLoggedIn: false}
	mocks.accounts.EXPECT().Get(ctx, "acc-2").Return(target, nil).Times(2)
	// The auth window opens exactly once; the repeated request while it
	// is open is a no-op.
	mocks.windows.EXPECT().
		Open(ctx, models.WindowAuth, window.Params{Prefill: "other@example.com"}).
		Return(nil)

	require.NoError(t, m.RequestSwitch(ctx, "acc-2"))
	require.NoError(t, m.RequestSwitch(ctx, "acc-2"))

	// A logged-out target never switches from here.
	assert.Equal(t, Active, m.Snapshot().State)
	assert.Equal(t, "acc-1", m.Snapshot().Current.ID)
}

func TestMachine_CompleteSwitch(t *testing.T) {
	m, mocks := newTestMachine(t)
	ctx := context.Background()

	setActive(m, models.Account{ID: "acc-1", IsLoggedIn: true})

	var slept []time.Duration
	m.sleep = func(d time.Duration) { slept = append(slept, d) }

	target := models.Account{ID: "acc-2", Email: "other@example.com", IsLoggedIn: true}

	// switch-start goes out before any store write; writes follow in
	// logout-then-login order; user-changed and switch-complete last.
	gomock.InOrder(
		mocks.bus.EXPECT().Publish(ctx, models.Event{Name: models.EventSwitchStart, AccountID: "acc-2"}).Return(nil),
		mocks.accounts.EXPECT().MarkLoggedOut(ctx, "acc-1").Return(nil),
		mocks.accounts.EXPECT().MarkLoggedIn(ctx, "acc-2", gomock.Any()).Return(nil),
		mocks.accounts.EXPECT().Get(ctx, "acc-2").Return(target, nil),
		mocks.bus.EXPECT().Publish(ctx, models.Event{Name: models.EventUserChanged, AccountID: "acc-2"}).Return(nil),
		mocks.bus.EXPECT().Publish(ctx, models.Event{Name: models.EventSwitchComplete, AccountID: "acc-2"}).Return(nil),
	)

	require.NoError(t, m.CompleteSwitch(ctx, "acc-2"))

	assert.Equal(t, []time.Duration{300 * time.Millisecond}, slept)
	snapshot := m.Snapshot()
	assert.Equal(t, Active, snapshot.State)
	assert.Equal(t, "acc-2", snapshot.Current.ID)
}

func TestMachine_CompleteSwitchKeepsStayLoggedInPrevious(t *testing.T) {
	m, mocks := newTestMachine(t)
	ctx := context.Background()

	setActive(m, models.Account{ID: "acc-1", IsLoggedIn: true, StayLoggedIn: true})

	target := models.Account{ID: "acc-2", IsLoggedIn: true}
	mocks.bus.EXPECT().Publish(ctx, gomock.Any()).Return(nil).Times(3)
	// No MarkLoggedOut for the stay-logged-in previous account.
	mocks.accounts.EXPECT().MarkLoggedIn(ctx, "acc-2", gomock.Any()).Return(nil)
	mocks.accounts.EXPECT().Get(ctx, "acc-2").Return(target, nil)

	require.NoError(t, m.CompleteSwitch(ctx, "acc-2"))
}

func TestMachine_CompleteSwitchIdempotentReentry(t *testing.T) {
	m, _ := newTestMachine(t)

	m.mu.Lock()
	m.state = SwitchInFlight
	m.inFlightTarget = "acc-2"
	m.mu.Unlock()

	// A duplicate mailbox read re-enters for the same target: no store
	// calls, no events, no error.
	require.NoError(t, m.CompleteSwitch(context.Background(), "acc-2"))
	assert.Equal(t, SwitchInFlight, m.Snapshot().State)
}

func TestMachine_CompleteSwitchTargetAlreadyCurrent(t *testing.T) {
	m, _ := newTestMachine(t)

	setActive(m, models.Account{ID: "acc-2", IsLoggedIn: true})

	require.NoError(t, m.CompleteSwitch(context.Background(), "acc-2"))
	assert.Equal(t, Active, m.Snapshot().State)
}

func TestMachine_CompleteSwitchWriteFailure(t *testing.T) {
	m, mocks := newTestMachine(t)
	ctx := context.Background()

	setActive(m, models.Account{ID: "acc-1", IsLoggedIn: true})

	mocks.bus.EXPECT().Publish(ctx, models.Event{Name: models.EventSwitchStart, AccountID: "acc-2"}).Return(nil)
	mocks.accounts.EXPECT().MarkLoggedOut(ctx, "acc-1").Return(store.ErrStoreUnavailable)

	err := m.CompleteSwitch(ctx, "acc-2")
	require.ErrorIs(t, err, ErrWriteFailed)

	// No rollback: the machine parks in SwitchInFlight until a manual
	// retry or restart.
	assert.Equal(t, SwitchInFlight, m.Snapshot().State)
}

func TestMachine_RunPendingSwitchEmptyMailbox(t *testing.T) {
	m, mocks := newTestMachine(t)
	ctx := context.Background()

	mocks.handoff.EXPECT().Take(ctx).Return(models.PendingSwitch{}, handoff.ErrEmpty)

	consumed, err := m.RunPendingSwitch(ctx)
	assert.NoError(t, err)
	assert.False(t, consumed)
}

func TestMachine_RunPendingSwitchStaleMailbox(t *testing.T) {
	m, mocks := newTestMachine(t)
	ctx := context.Background()

	mocks.handoff.EXPECT().Take(ctx).Return(models.PendingSwitch{}, handoff.ErrStale)

	consumed, err := m.RunPendingSwitch(ctx)
	assert.NoError(t, err)
	assert.False(t, consumed)
}

func TestMachine_RunPendingSwitchExecutesAndClears(t *testing.T) {
	m, mocks := newTestMachine(t)
	ctx := context.Background()

	// The executing window is a fresh process with no session of its own:
	// the initiator's account comes from the mailbox and must still be
	// logged out.
	pending := models.PendingSwitch{AccountID: "acc-2", PrevAccountID: "acc-1", RequestedAt: time.Now()}
	prev := models.Account{ID: "acc-1", IsLoggedIn: true}
	target := models.Account{ID: "acc-2", IsLoggedIn: true}

	gomock.InOrder(
		mocks.handoff.EXPECT().Take(ctx).Return(pending, nil),
		mocks.accounts.EXPECT().Get(ctx, "acc-1").Return(prev, nil),
		mocks.bus.EXPECT().Publish(ctx, models.Event{Name: models.EventSwitchStart, AccountID: "acc-2"}).Return(nil),
		mocks.accounts.EXPECT().MarkLoggedOut(ctx, "acc-1").Return(nil),
		mocks.accounts.EXPECT().MarkLoggedIn(ctx, "acc-2", gomock.Any()).Return(nil),
		mocks.accounts.EXPECT().Get(ctx, "acc-2").Return(target, nil),
		mocks.bus.EXPECT().Publish(ctx, models.Event{Name: models.EventUserChanged, AccountID: "acc-2"}).Return(nil),
		mocks.bus.EXPECT().Publish(ctx, models.Event{Name: models.EventSwitchComplete, AccountID: "acc-2"}).Return(nil),
		// Cleared only after the switch fully completed.
		mocks.handoff.EXPECT().Clear(ctx).Return(nil),
	)

	consumed, err := m.RunPendingSwitch(ctx)
	require.NoError(t, err)
	assert.True(t, consumed)
	assert.Equal(t, "acc-2", m.Snapshot().Current.ID)
}

func TestMachine_RunPendingSwitchKeepsStayLoggedInInitiator(t *testing.T) {
	m, mocks := newTestMachine(t)
	ctx := context.Background()

	pending := models.PendingSwitch{AccountID: "acc-2", PrevAccountID: "acc-1", RequestedAt: time.Now()}
	prev := models.Account{ID: "acc-1", IsLoggedIn: true, StayLoggedIn: true}
	target := models.Account{ID: "acc-2", IsLoggedIn: true}

	mocks.handoff.EXPECT().Take(ctx).Return(pending, nil)
	mocks.accounts.EXPECT().Get(ctx, "acc-1").Return(prev, nil)
	mocks.bus.EXPECT().Publish(ctx, gomock.Any()).Return(nil).Times(3)
	// No MarkLoggedOut for the stay-logged-in initiator.
	mocks.accounts.EXPECT().MarkLoggedIn(ctx, "acc-2", gomock.Any()).Return(nil)
	mocks.accounts.EXPECT().Get(ctx, "acc-2").Return(target, nil)
	mocks.handoff.EXPECT().Clear(ctx).Return(nil)

	consumed, err := m.RunPendingSwitch(ctx)
	require.NoError(t, err)
	assert.True(t, consumed)
}

func TestMachine_LogoutAutoSwitch(t *testing.T) {
	m, mocks := newTestMachine(t)
	ctx := context.Background()

	setActive(m, models.Account{ID: "acc-1", IsLoggedIn: true})

	older := models.Account{ID: "acc-2", Username: "older", IsLoggedIn: true, StayLoggedIn: true,
		LastLoginTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := models.Account{ID: "acc-3", Username: "newer", IsLoggedIn: true, StayLoggedIn: true,
		LastLoginTime: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)}

	mocks.accounts.EXPECT().MarkLoggedOut(ctx, "acc-1").Return(nil)
	mocks.accounts.EXPECT().List(ctx).Return([]models.Account{older, newer}, nil)
	mocks.bus.EXPECT().Publish(ctx, models.Event{Name: models.EventUserChanged, AccountID: "acc-3"}).Return(nil)

	require.NoError(t, m.Logout(ctx))

	// The most recently used stay-logged-in account becomes current.
	snapshot := m.Snapshot()
	assert.Equal(t, Active, snapshot.State)
	assert.Equal(t, "acc-3", snapshot.Current.ID)
}

func TestMachine_LogoutToAnonymous(t *testing.T) {
	m, mocks := newTestMachine(t)
	ctx := context.Background()

	setActive(m, models.Account{ID: "acc-1", IsLoggedIn: true})

	mocks.accounts.EXPECT().MarkLoggedOut(ctx, "acc-1").Return(nil)
	mocks.accounts.EXPECT().List(ctx).Return([]models.Account{
		{ID: "acc-2", IsLoggedIn: false, StayLoggedIn: true},
	}, nil)
	mocks.bus.EXPECT().Publish(ctx, models.Event{Name: models.EventUserChanged, AccountID: ""}).Return(nil)

	require.NoError(t, m.Logout(ctx))
	assert.Equal(t, Anonymous, m.Snapshot().State)
}

func TestMachine_LogoutGuestAlwaysAnonymous(t *testing.T) {
	m, mocks := newTestMachine(t)
	ctx := context.Background()

	setActive(m, models.Account{ID: "guest-1", IsGuest: true, IsLoggedIn: true})

	// Guests never auto-switch, even when stay-logged-in accounts exist;
	// the account list is not even consulted.
	mocks.accounts.EXPECT().MarkLoggedOut(ctx, "guest-1").Return(nil)
	mocks.bus.EXPECT().Publish(ctx, models.Event{Name: models.EventUserChanged, AccountID: ""}).Return(nil)

	require.NoError(t, m.Logout(ctx))
	assert.Equal(t, Anonymous, m.Snapshot().State)
}

func TestMachine_LogoutWhenAnonymous(t *testing.T) {
	m, _ := newTestMachine(t)

	assert.NoError(t, m.Logout(context.Background()))
}

func TestMachine_Remove(t *testing.T) {
	m, mocks := newTestMachine(t)
	ctx := context.Background()

	setActive(m, models.Account{ID: "acc-1", IsLoggedIn: true})

	mocks.accounts.EXPECT().SoftRemove(ctx, "acc-2").Return(nil)
	mocks.bus.EXPECT().Publish(ctx, models.Event{Name: models.EventUserChanged, AccountID: "acc-1"}).Return(nil)

	require.NoError(t, m.Remove(ctx, "acc-2"))
	assert.Equal(t, Active, m.Snapshot().State)
}

func TestMachine_RemoveCurrentAccount(t *testing.T) {
	m, mocks := newTestMachine(t)
	ctx := context.Background()

	setActive(m, models.Account{ID: "acc-1", IsLoggedIn: true})

	mocks.accounts.EXPECT().SoftRemove(ctx, "acc-1").Return(nil)
	mocks.bus.EXPECT().Publish(ctx, models.Event{Name: models.EventUserChanged, AccountID: ""}).Return(nil)

	require.NoError(t, m.Remove(ctx, "acc-1"))
	assert.Equal(t, Anonymous, m.Snapshot().State)
}

func TestMachine_Listing(t *testing.T) {
	m, mocks := newTestMachine(t)
	ctx := context.Background()

	current := models.Account{ID: "acc-current", Username: "zed", IsLoggedIn: true,
		LastLoginTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	setActive(m, current)

	accounts := []models.Account{
		{ID: "acc-hidden", Username: "hidden", HiddenInSwitcher: true},
		{ID: "guest-1", Username: "guest-abc", IsGuest: true},
		{ID: "acc-b", Username: "Bravo", LastLoginTime: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "acc-a", Username: "alpha", LastLoginTime: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "acc-old", Username: "old", LastLoginTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		current,
	}
	mocks.accounts.EXPECT().List(ctx).Return(accounts, nil)

	got, err := m.Listing(ctx)
	require.NoError(t, err)

	// Current first, then most recent logins, ties broken by
	// case-insensitive name; hidden accounts and guests never appear.
	ids := make([]string, 0, len(got))
	for _, account := range got {
		ids = append(ids, account.ID)
	}
	assert.Equal(t, []string{"acc-current", "acc-a", "acc-b", "acc-old"}, ids)
}

func TestMachine_ListingCap(t *testing.T) {
	m, mocks := newTestMachine(t)
	ctx := context.Background()

	accounts := make([]models.Account, 0, 14)
	for i := 0; i < 14; i++ {
		accounts = append(accounts, models.Account{
			ID:            string(rune('a' + i)),
			Username:      string(rune('a' + i)),
			LastLoginTime: time.Date(2026, 1, 1+i, 0, 0, 0, 0, time.UTC),
		})
	}
	mocks.accounts.EXPECT().List(ctx).Return(accounts, nil)

	got, err := m.Listing(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 10)
}

func TestMachine_ListingServesCacheWhenStoreUnavailable(t *testing.T) {
	m, mocks := newTestMachine(t)
	ctx := context.Background()

	setActive(m, models.Account{ID: "acc-1", Username: "one", IsLoggedIn: true})

	mocks.accounts.EXPECT().List(ctx).Return([]models.Account{
		{ID: "acc-1", Username: "one", IsLoggedIn: true},
		{ID: "acc-2", Username: "two"},
	}, nil)
	first, err := m.Listing(ctx)
	require.NoError(t, err)
	require.Len(t, first, 2)

	mocks.accounts.EXPECT().List(ctx).Return(nil, store.ErrStoreUnavailable)
	cached, err := m.Listing(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, cached)
}

func TestMachine_RefreshAdoptsSwitchDoneElsewhere(t *testing.T) {
	m, mocks := newTestMachine(t)
	ctx := context.Background()

	setActive(m, models.Account{ID: "acc-1", IsLoggedIn: true,
		LastLoginTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)})

	// Another window switched to acc-2 and logged acc-1 out.
	mocks.accounts.EXPECT().List(ctx).Return([]models.Account{
		{ID: "acc-1", IsLoggedIn: false},
		{ID: "acc-2", IsLoggedIn: true, LastLoginTime: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
	}, nil)

	require.NoError(t, m.Refresh(ctx))

	snapshot := m.Snapshot()
	assert.Equal(t, Active, snapshot.State)
	assert.Equal(t, "acc-2", snapshot.Current.ID)
}

func TestMachine_RefreshKeepsViewWhenStoreUnavailable(t *testing.T) {
	m, mocks := newTestMachine(t)
	ctx := context.Background()

	setActive(m, models.Account{ID: "acc-1", IsLoggedIn: true})
	mocks.accounts.EXPECT().List(ctx).Return(nil, store.ErrStoreUnavailable)

	require.NoError(t, m.Refresh(ctx))
	assert.Equal(t, "acc-1", m.Snapshot().Current.ID)
}

func TestMachine_HandleEventSwitchStart(t *testing.T) {
	m, _ := newTestMachine(t)
	ctx := context.Background()

	setActive(m, models.Account{ID: "acc-1", IsLoggedIn: true})

	m.HandleEvent(ctx, models.Event{Name: models.EventSwitchStart, AccountID: "acc-2"})

	// The window raises its loading surface on the hint alone.
	assert.Equal(t, SwitchInFlight, m.Snapshot().State)
}

func TestMachine_HandleEventUserChanged(t *testing.T) {
	m, mocks := newTestMachine(t)
	ctx := context.Background()

	mocks.accounts.EXPECT().List(ctx).Return([]models.Account{
		{ID: "acc-2", IsLoggedIn: true, LastLoginTime: time.Now()},
	}, nil)

	m.HandleEvent(ctx, models.Event{Name: models.EventUserChanged, AccountID: "acc-2"})

	assert.Equal(t, Active, m.Snapshot().State)
	assert.Equal(t, "acc-2", m.Snapshot().Current.ID)
}

func TestMachine_ResumeMostRecentValidToken(t *testing.T) {
	m, mocks := newTestMachine(t)
	ctx := context.Background()

	older, err := token.GenerateSessionToken("gamedeck", "acc-1", time.Hour, "test-sign-key")
	require.NoError(t, err)
	newer, err := token.GenerateSessionToken("gamedeck", "acc-2", time.Hour, "test-sign-key")
	require.NoError(t, err)

	mocks.accounts.EXPECT().List(ctx).Return([]models.Account{
		{ID: "acc-1", IsLoggedIn: true, SessionToken: older.String(),
			LastLoginTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "acc-2", IsLoggedIn: true, SessionToken: newer.String(),
			LastLoginTime: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "acc-3", IsLoggedIn: true, SessionToken: "garbage"},
	}, nil)

	got, err := m.Resume(ctx)
	require.NoError(t, err)
	assert.Equal(t, "acc-2", got.ID)
	assert.Equal(t, Active, m.Snapshot().State)
}

func TestMachine_ResumeNothingResumable(t *testing.T) {
	m, mocks := newTestMachine(t)
	ctx := context.Background()

	mocks.accounts.EXPECT().List(ctx).Return([]models.Account{
		{ID: "acc-1", IsLoggedIn: false},
		{ID: "acc-2", IsLoggedIn: true, SessionToken: "not-a-token"},
	}, nil)

	_, err := m.Resume(ctx)
	assert.ErrorIs(t, err, ErrNotResumable)
	assert.Equal(t, Anonymous, m.Snapshot().State)
}

func TestMachine_WriteFailureThenManualRetrySucceeds(t *testing.T) {
	m, mocks := newTestMachine(t)
	ctx := context.Background()

	setActive(m, models.Account{ID: "acc-1", IsLoggedIn: true})

	mocks.bus.EXPECT().Publish(ctx, models.Event{Name: models.EventSwitchStart, AccountID: "acc-2"}).Return(nil)
	mocks.accounts.EXPECT().MarkLoggedOut(ctx, "acc-1").Return(errors.New("disk detached"))
	require.ErrorIs(t, m.CompleteSwitch(ctx, "acc-2"), ErrWriteFailed)
	require.Equal(t, SwitchInFlight, m.Snapshot().State)

	// Calling again for the same target re-runs the write sequence.
	target := models.Account{ID: "acc-2", IsLoggedIn: true}
	mocks.bus.EXPECT().Publish(ctx, models.Event{Name: models.EventSwitchStart, AccountID: "acc-2"}).Return(nil)
	mocks.accounts.EXPECT().MarkLoggedOut(ctx, "acc-1").Return(nil)
	mocks.accounts.EXPECT().MarkLoggedIn(ctx, "acc-2", gomock.Any()).Return(nil)
	mocks.accounts.EXPECT().Get(ctx, "acc-2").Return(target, nil)
	mocks.bus.EXPECT().Publish(ctx, models.Event{Name: models.EventUserChanged, AccountID: "acc-2"}).Return(nil)
	mocks.bus.EXPECT().Publish(ctx, models.Event{Name: models.EventSwitchComplete, AccountID: "acc-2"}).Return(nil)

	require.NoError(t, m.CompleteSwitch(ctx, "acc-2"))
	assert.Equal(t, Active, m.Snapshot().State)
	assert.Equal(t, "acc-2", m.Snapshot().Current.ID)
}
