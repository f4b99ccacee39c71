package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/print-request-api/internal/dto"
	"github.com/noah-isme/print-request-api/internal/models"
	appErrors "github.com/noah-isme/print-request-api/pkg/errors"
)

const (
	dashboardMissMessage     = "Request ID not found."
	dashboardCompleteMessage = "Job marked as complete!"
)

type dashboardLookup interface {
	Lookup(ctx context.Context, id string) (*models.PrintRequest, error)
	Complete(ctx context.Context, id string) (*models.PrintRequest, error)
}

// DashboardConfig tunes the staff dashboard.
type DashboardConfig struct {
	ClearDelay time.Duration
	// SessionTTL is how long a session may sit untouched before Sweep drops it.
	SessionTTL time.Duration
}

type dashboardSession struct {
	mu         sync.Mutex
	search     string
	selectedID string
	message    string

	// touched is guarded by DashboardService.mu.
	touched time.Time
}

// DashboardService keeps the search box state of each open staff dashboard.
type DashboardService struct {
	staff     dashboardLookup
	logger    *zap.Logger
	cfg       DashboardConfig
	afterFunc func(time.Duration, func())
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*dashboardSession
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(staff dashboardLookup, logger *zap.Logger, cfg DashboardConfig) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ClearDelay <= 0 {
		cfg.ClearDelay = 2 * time.Second
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 12 * time.Hour
	}
	return &DashboardService{
		staff:    staff,
		logger:   logger,
		cfg:      cfg,
		sessions: make(map[string]*dashboardSession),
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
		now: time.Now,
	}
}

// Open starts a dashboard with an empty search.
func (s *DashboardService) Open(ctx context.Context) dto.DashboardState {
	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &dashboardSession{touched: s.now()}
	s.mu.Unlock()
	return dto.DashboardState{SessionID: id}
}

// Search sets the search text. An empty text clears the view; a miss shows the
// not-found message; a hit selects the request.
func (s *DashboardService) Search(ctx context.Context, sid, text string) (dto.DashboardState, error) {
	sess, err := s.session(sid)
	if err != nil {
		return dto.DashboardState{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.search = text
	if text == "" {
		sess.selectedID = ""
		sess.message = ""
		return s.render(ctx, sid, sess)
	}

	req, err := s.staff.Lookup(ctx, text)
	switch {
	case err == nil:
		sess.selectedID = req.ID
		sess.message = ""
		return dto.DashboardState{SessionID: sid, Search: sess.search, Selected: req}, nil
	case isNotFound(err):
		sess.selectedID = ""
		sess.message = dashboardMissMessage
		return s.render(ctx, sid, sess)
	default:
		return dto.DashboardState{}, err
	}
}

// Complete finishes the selected job, shows the confirmation and schedules the
// view to reset after ClearDelay. The reset is not cancelled by later input.
func (s *DashboardService) Complete(ctx context.Context, sid string) (dto.DashboardState, error) {
	sess, err := s.session(sid)
	if err != nil {
		return dto.DashboardState{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.selectedID == "" {
		return dto.DashboardState{}, appErrors.Clone(appErrors.ErrPreconditionFailed, "no request selected")
	}
	req, err := s.staff.Complete(ctx, sess.selectedID)
	if err != nil {
		return dto.DashboardState{}, err
	}
	sess.message = dashboardCompleteMessage
	s.afterFunc(s.cfg.ClearDelay, func() { s.clear(sid) })
	return dto.DashboardState{SessionID: sid, Search: sess.search, Selected: req, Message: sess.message}, nil
}

// State returns the current view, re-reading the selected request.
func (s *DashboardService) State(ctx context.Context, sid string) (dto.DashboardState, error) {
	sess, err := s.session(sid)
	if err != nil {
		return dto.DashboardState{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.render(ctx, sid, sess)
}

// Close discards a session. Pending resets for it become no-ops.
func (s *DashboardService) Close(sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sid]; !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "dashboard session not found")
	}
	delete(s.sessions, sid)
	return nil
}

// Sweep drops sessions untouched for longer than SessionTTL and returns how
// many were removed.
func (s *DashboardService) Sweep() int {
	cutoff := s.now().Add(-s.cfg.SessionTTL)
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for sid, sess := range s.sessions {
		if sess.touched.Before(cutoff) {
			delete(s.sessions, sid)
			removed++
		}
	}
	if removed > 0 {
		s.logger.Info("dashboard sessions swept", zap.Int("removed", removed), zap.Int("remaining", len(s.sessions)))
	}
	return removed
}

func (s *DashboardService) clear(sid string) {
	s.mu.Lock()
	sess, ok := s.sessions[sid]
	s.mu.Unlock()
	if !ok {
		return
	}
	sess.mu.Lock()
	sess.search = ""
	sess.selectedID = ""
	sess.message = ""
	sess.mu.Unlock()
	s.logger.Debug("dashboard reset", zap.String("session_id", sid))
}

func (s *DashboardService) session(sid string) (*dashboardSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sid]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "dashboard session not found")
	}
	sess.touched = s.now()
	return sess, nil
}

// render must be called with sess.mu held.
func (s *DashboardService) render(ctx context.Context, sid string, sess *dashboardSession) (dto.DashboardState, error) {
	state := dto.DashboardState{SessionID: sid, Search: sess.search, Message: sess.message}
	if sess.selectedID == "" {
		return state, nil
	}
	req, err := s.staff.Lookup(ctx, sess.selectedID)
	if err != nil {
		if isNotFound(err) {
			sess.selectedID = ""
			return state, nil
		}
		return dto.DashboardState{}, err
	}
	state.Selected = req
	return state, nil
}

func isNotFound(err error) bool {
	var appErr *appErrors.Error
	return errors.As(err, &appErr) && appErr.Code == appErrors.ErrNotFound.Code
}
