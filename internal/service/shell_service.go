package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"bible-study-be/internal/constant"
	"bible-study-be/internal/entity"
	"bible-study-be/internal/pkg/logger"

	"github.com/google/uuid"
)

const shellModule = "ShellService"

var (
	ErrBusy        = errors.New("an exploration is already in progress")
	ErrNotSignedIn = errors.New("not signed in")
)

type ViewState string

const (
	StateAuthResolving ViewState = "auth_resolving"
	StateSignedOut     ViewState = "signed_out"
	StateIdle          ViewState = "idle"
	StateLoading       ViewState = "loading"
	StateError         ViewState = "error"
	StateShowing       ViewState = "showing"
)

// SignedIn reports whether the state belongs to the signed-in group.
func (s ViewState) SignedIn() bool {
	switch s {
	case StateIdle, StateLoading, StateError, StateShowing:
		return true
	}
	return false
}

// View is an immutable snapshot of the shell. Error carries the Error state
// message, or the sign-in failure shown alongside SignedOut.
type View struct {
	State   ViewState
	Query   string
	Error   string
	Result  *entity.ExplorationResult
	Session *entity.Session
}

type IShellService interface {
	Start(ctx context.Context) error
	SignIn(ctx context.Context) (View, error)
	SignOut(ctx context.Context) (View, error)
	SetQuery(text string) (View, error)
	Submit(ctx context.Context) (View, error)
	SubmitQuery(ctx context.Context, text string) (View, error)
	PickSuggestion(ctx context.Context, text string) (View, error)
	View() View
	Close() error
}

type shellService struct {
	sessions ISessionService
	explorer IExplorationService
	logger   logger.ILogger

	mu      sync.Mutex
	state   ViewState
	query   string
	errMsg  string
	result  *entity.ExplorationResult
	session *entity.Session
	// epoch invalidates in-flight explorations on sign-out or a newer submission
	epoch uint64

	unsubscribe func()
}

func NewShellService(sessions ISessionService, explorer IExplorationService, log logger.ILogger) IShellService {
	return &shellService{
		sessions: sessions,
		explorer: explorer,
		logger:   log,
		state:    StateAuthResolving,
	}
}

// Start subscribes to the session store; the first delivery resolves auth.
func (s *shellService) Start(ctx context.Context) error {
	s.mu.Lock()
	started := s.unsubscribe != nil
	s.mu.Unlock()
	if started {
		return nil
	}

	unsubscribe := s.sessions.Subscribe(s.onSession)

	s.mu.Lock()
	s.unsubscribe = unsubscribe
	s.mu.Unlock()

	s.logger.Info(shellModule, "Shell started", map[string]interface{}{"state": string(s.View().State)})
	return nil
}

func (s *shellService) SignIn(ctx context.Context) (View, error) {
	s.mu.Lock()
	switch {
	case s.state.SignedIn():
		defer s.mu.Unlock()
		return s.snapshot(), nil
	case s.state == StateAuthResolving:
		defer s.mu.Unlock()
		return s.snapshot(), ErrBusy
	}
	s.state = StateAuthResolving
	s.errMsg = ""
	s.mu.Unlock()

	session, err := s.sessions.SignIn(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateSignedOut
		s.session = nil
		s.errMsg = userMessage(err, ErrSignInFailed)
		s.logger.Warn(shellModule, "Sign-in failed", map[string]interface{}{"error": err})
		return s.snapshot(), err
	}
	if !s.state.SignedIn() {
		s.enterIdle(session)
	}
	return s.snapshot(), nil
}

// SignOut always ends in SignedOut with query and result cleared, even when
// the store fails to clear the slot. It is refused while a sign-in is pending.
func (s *shellService) SignOut(ctx context.Context) (View, error) {
	s.mu.Lock()
	if s.state == StateAuthResolving {
		defer s.mu.Unlock()
		return s.snapshot(), ErrBusy
	}
	s.epoch++
	s.mu.Unlock()

	if err := s.sessions.SignOut(ctx); err != nil {
		s.logger.Error(shellModule, "Session store failed to sign out", map[string]interface{}{"error": err})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.enterSignedOut()
	return s.snapshot(), nil
}

func (s *shellService) SetQuery(text string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.SignedIn() {
		return s.snapshot(), ErrNotSignedIn
	}
	if s.state == StateLoading {
		return s.snapshot(), ErrBusy
	}
	s.query = text
	return s.snapshot(), nil
}

func (s *shellService) Submit(ctx context.Context) (View, error) {
	return s.submit(ctx, nil)
}

// SubmitQuery sets the query and submits it under one lock, so a concurrent
// SetQuery cannot change the text that reaches the explorer.
func (s *shellService) SubmitQuery(ctx context.Context, text string) (View, error) {
	return s.submit(ctx, &text)
}

// PickSuggestion replaces the query text with a suggested prompt and submits it.
func (s *shellService) PickSuggestion(ctx context.Context, text string) (View, error) {
	return s.SubmitQuery(ctx, text)
}

func (s *shellService) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *shellService) Close() error {
	s.mu.Lock()
	unsubscribe := s.unsubscribe
	s.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
	return nil
}

func (s *shellService) submit(ctx context.Context, override *string) (View, error) {
	s.mu.Lock()
	if !s.state.SignedIn() {
		defer s.mu.Unlock()
		return s.snapshot(), ErrNotSignedIn
	}
	if s.state == StateLoading {
		defer s.mu.Unlock()
		return s.snapshot(), ErrBusy
	}
	if override != nil {
		s.query = *override
	}
	query := s.query
	if strings.TrimSpace(query) == "" {
		defer s.mu.Unlock()
		s.state = StateError
		s.errMsg = constant.MessageEmptyQuery
		s.result = nil
		return s.snapshot(), nil
	}

	s.epoch++
	epoch := s.epoch
	s.state = StateLoading
	s.errMsg = ""
	s.result = nil
	s.mu.Unlock()

	requestID := uuid.NewString()
	s.logger.Debug(shellModule, "Submitting query", map[string]interface{}{"request_id": requestID, "query": query})

	result, err := s.explorer.Explore(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch || s.state != StateLoading {
		s.logger.Info(shellModule, "Discarding stale exploration", map[string]interface{}{"request_id": requestID})
		return s.snapshot(), nil
	}
	if err != nil {
		s.state = StateError
		s.errMsg = userMessage(err, ErrExplorationFailed)
		return s.snapshot(), nil
	}
	s.state = StateShowing
	s.result = result
	return s.snapshot(), nil
}

// onSession applies a session store delivery. It runs with s.mu released by
// every caller of the store.
func (s *shellService) onSession(session *entity.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session == nil {
		if s.state != StateSignedOut {
			s.epoch++
			s.enterSignedOut()
		}
		return
	}

	s.session = session
	if s.state == StateSignedOut || s.state == StateAuthResolving {
		s.enterIdle(session)
	}
}

func (s *shellService) enterIdle(session *entity.Session) {
	s.state = StateIdle
	s.session = session
	s.query = ""
	s.errMsg = ""
	s.result = nil
}

func (s *shellService) enterSignedOut() {
	s.state = StateSignedOut
	s.session = nil
	s.query = ""
	s.errMsg = ""
	s.result = nil
}

func (s *shellService) snapshot() View {
	return View{
		State:   s.state,
		Query:   s.query,
		Error:   s.errMsg,
		Result:  s.result,
		Session: s.session.Clone(),
	}
}

// userMessage keeps normalized boundary errors and hides everything else.
func userMessage(err, known error) string {
	if errors.Is(err, known) {
		return known.Error()
	}
	return constant.MessageUnexpected
}
