package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"bible-study-be/internal/constant"
	"bible-study-be/internal/entity"
	"bible-study-be/internal/pkg/logger"
	"bible-study-be/internal/repository/contract"
	"bible-study-be/pkg/auth"
	"bible-study-be/pkg/events"

	"github.com/google/uuid"
)

const sessionModule = "SessionService"

var (
	ErrSignInFailed  = errors.New(constant.MessageSignInFailed)
	ErrSignOutFailed = errors.New(constant.MessageSignOutFailed)
)

// ISessionService is the observable session store. Subscribers are called
// one at a time and must not call Subscribe, SignIn or SignOut from inside
// the callback; unsubscribing from inside it is fine.
type ISessionService interface {
	GetCurrentSession(ctx context.Context) *entity.Session
	Subscribe(onChange func(*entity.Session)) (unsubscribe func())
	SignIn(ctx context.Context) (*entity.Session, error)
	SignOut(ctx context.Context) error
	Close() error
}

type SessionOptions struct {
	StorageKey   string
	SignInDelay  time.Duration
	SignOutDelay time.Duration
	Identity     auth.IdentityProvider
	Sleeper      auth.Sleeper
}

type sessionService struct {
	repo         contract.SlotRepository
	key          string
	origin       string
	identity     auth.IdentityProvider
	sleeper      auth.Sleeper
	signInDelay  time.Duration
	signOutDelay time.Duration
	logger       logger.ILogger
	publisher    events.Publisher

	// notifyMu serializes deliveries so a stale state never follows a fresh one
	notifyMu    sync.Mutex
	mu          sync.Mutex
	subscribers map[uint64]func(*entity.Session)
	nextID      uint64

	stopWatch context.CancelFunc
	watchDone chan struct{}
	closeOnce sync.Once
}

// NewSessionService starts watching the slot repository for changes made by
// other stores. publisher may be nil.
func NewSessionService(
	repo contract.SlotRepository,
	opts SessionOptions,
	log logger.ILogger,
	publisher events.Publisher,
) (ISessionService, error) {
	if opts.StorageKey == "" {
		opts.StorageKey = "authUser"
	}
	if opts.Identity == nil {
		opts.Identity = auth.SimulatedProvider{}
	}
	if opts.Sleeper == nil {
		opts.Sleeper = auth.RealSleeper{}
	}

	watchCtx, cancel := context.WithCancel(context.Background())
	changes, err := repo.Watch(watchCtx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("watch session storage: %w", err)
	}

	s := &sessionService{
		repo:         repo,
		key:          opts.StorageKey,
		origin:       uuid.NewString(),
		identity:     opts.Identity,
		sleeper:      opts.Sleeper,
		signInDelay:  opts.SignInDelay,
		signOutDelay: opts.SignOutDelay,
		logger:       log,
		publisher:    publisher,
		subscribers:  make(map[uint64]func(*entity.Session)),
		stopWatch:    cancel,
		watchDone:    make(chan struct{}),
	}
	go s.watch(changes)

	return s, nil
}

func (s *sessionService) GetCurrentSession(ctx context.Context) *entity.Session {
	data, found, err := s.repo.Get(ctx, s.key)
	if err != nil {
		s.logger.Warn(sessionModule, "Failed to read session slot, treating as signed out", map[string]interface{}{"error": err})
		return nil
	}
	if !found {
		return nil
	}

	var session entity.Session
	if err := json.Unmarshal(data, &session); err != nil || session.Uid == "" {
		s.logger.Warn(sessionModule, "Discarding malformed session slot", map[string]interface{}{"error": err, "raw": string(data)})
		return nil
	}
	return &session
}

func (s *sessionService) Subscribe(onChange func(*entity.Session)) func() {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = onChange
	s.mu.Unlock()

	onChange(s.GetCurrentSession(context.Background()))

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			s.mu.Unlock()
		})
	}
}

func (s *sessionService) SignIn(ctx context.Context) (*entity.Session, error) {
	if err := s.sleeper.Sleep(ctx, s.signInDelay); err != nil {
		return nil, s.signInFailure("Sign-in interrupted", err)
	}

	session, err := s.identity.Authenticate(ctx)
	if err != nil {
		return nil, s.signInFailure("Identity provider rejected sign-in", err)
	}
	if session == nil || session.Uid == "" {
		return nil, s.signInFailure("Identity provider returned no principal", nil)
	}

	data, err := json.Marshal(session)
	if err != nil {
		return nil, s.signInFailure("Failed to encode session", err)
	}
	if err := s.repo.Put(ctx, s.key, data, s.origin); err != nil {
		return nil, s.signInFailure("Failed to persist session", err)
	}

	s.logger.Info(sessionModule, "Signed in", map[string]interface{}{"uid": session.Uid})
	s.broadcast(ctx)
	s.publish(ctx, events.New(events.TypeSessionSignedIn, map[string]interface{}{"uid": session.Uid}))

	return session.Clone(), nil
}

func (s *sessionService) SignOut(ctx context.Context) error {
	if err := s.sleeper.Sleep(ctx, s.signOutDelay); err != nil {
		s.logger.Error(sessionModule, "Sign-out interrupted", map[string]interface{}{"error": err})
		return ErrSignOutFailed
	}

	previous := s.GetCurrentSession(ctx)
	if err := s.repo.Remove(ctx, s.key, s.origin); err != nil {
		s.logger.Error(sessionModule, "Failed to clear session slot", map[string]interface{}{"error": err})
		return ErrSignOutFailed
	}
	if previous == nil {
		return nil
	}

	s.logger.Info(sessionModule, "Signed out", map[string]interface{}{"uid": previous.Uid})
	s.broadcast(ctx)
	s.publish(ctx, events.New(events.TypeSessionSignedOut, map[string]interface{}{"uid": previous.Uid}))

	return nil
}

func (s *sessionService) Close() error {
	s.closeOnce.Do(func() {
		s.stopWatch()
		<-s.watchDone
	})
	return nil
}

func (s *sessionService) watch(changes <-chan contract.SlotChange) {
	defer close(s.watchDone)
	for change := range changes {
		// own writes were already delivered synchronously
		if change.Key != s.key || change.Origin == s.origin {
			continue
		}
		s.logger.Debug(sessionModule, "Session changed in another context", map[string]interface{}{"origin": change.Origin})
		s.broadcast(context.Background())
	}
}

// broadcast re-reads the slot and hands every live subscriber its own copy.
func (s *sessionService) broadcast(ctx context.Context) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	current := s.GetCurrentSession(ctx)

	s.mu.Lock()
	ids := make([]uint64, 0, len(s.subscribers))
	for id := range s.subscribers {
		ids = append(ids, id)
	}
	s.mu.Unlock()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		s.mu.Lock()
		onChange, ok := s.subscribers[id]
		s.mu.Unlock()
		if ok {
			onChange(current.Clone())
		}
	}
}

func (s *sessionService) signInFailure(message string, cause error) error {
	s.logger.Error(sessionModule, message, map[string]interface{}{"error": cause})
	return ErrSignInFailed
}

func (s *sessionService) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn(sessionModule, "Failed to publish event", map[string]interface{}{"type": event.EventType(), "error": err})
	}
}
