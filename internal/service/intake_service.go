package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/print-request-api/internal/dto"
	"github.com/noah-isme/print-request-api/internal/models"
	"github.com/noah-isme/print-request-api/internal/repository"
	appErrors "github.com/noah-isme/print-request-api/pkg/errors"
)

const maxIDAttempts = 5

type intakeStore interface {
	Append(ctx context.Context, req *models.PrintRequest) error
}

type draftStore interface {
	Get(ctx context.Context, id string, dest interface{}) error
	Set(ctx context.Context, id string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

type submissionRecorder interface {
	RecordSubmission()
}

// IntakeConfig tunes draft retention.
type IntakeConfig struct {
	DraftTTL time.Duration
}

// IntakeService turns teacher forms into stored print requests.
type IntakeService struct {
	requests  intakeStore
	drafts    draftStore
	metrics   submissionRecorder
	validator *validator.Validate
	logger    *zap.Logger
	cfg       IntakeConfig

	now      func() time.Time
	newID    func(time.Time) string
	newRowID func() string

	draftMu sync.Mutex
}

// NewIntakeService constructs an IntakeService.
func NewIntakeService(requests intakeStore, drafts draftStore, metrics submissionRecorder, validate *validator.Validate, logger *zap.Logger, cfg IntakeConfig) *IntakeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DraftTTL <= 0 {
		cfg.DraftTTL = 24 * time.Hour
	}
	return &IntakeService{
		requests:  requests,
		drafts:    drafts,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
		newID:     NewRequestID,
		newRowID:  uuid.NewString,
	}
}

// NewRequestID builds "REQ-<unix millis>-<5 base36 chars>".
func NewRequestID(now time.Time) string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	random := uuid.New()
	var suffix strings.Builder
	for i := 0; i < 5; i++ {
		suffix.WriteByte(alphabet[int(random[i])%len(alphabet)])
	}
	return "REQ-" + strconv.FormatInt(now.UnixMilli(), 10) + "-" + suffix.String()
}

// Submit stores a complete form posted in one call.
func (s *IntakeService) Submit(ctx context.Context, req dto.SubmitPrintRequest) (*models.PrintRequest, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid print request payload")
	}
	now := s.now()
	form := &IntakeForm{
		Class:             req.Class,
		TeacherInCharge:   req.TeacherInCharge,
		Subject:           req.Subject,
		DateOfSubmission:  req.DateOfSubmission,
		DateOfCollection:  req.DateOfCollection,
		NoOfPagesOriginal: req.NoOfPagesOriginal,
		NoOfCopies:        req.NoOfCopies,
		Sides:             req.Sides,
		Stapling:          req.Stapling,
		Paper:             req.Paper,
		Remarks:           req.Remarks,
		Signature:         req.Signature,
	}
	if form.Sides == "" {
		form.Sides = models.SidedDouble
	}
	if form.Stapling == "" {
		form.Stapling = models.StaplingStapled
	}
	if form.Paper == "" {
		form.Paper = models.PaperWhite
	}
	for _, row := range req.ClassRequests {
		form.ClassRequests = append(form.ClassRequests, models.ClassRequest{
			ID:              s.newRowID(),
			Form:            row.Form,
			ClassName:       row.ClassName,
			TeacherInCharge: row.TeacherInCharge,
			NoOfCopies:      row.NoOfCopies,
		})
	}
	return s.store(ctx, form, now)
}

// CreateDraft starts a server-side form filled with defaults.
func (s *IntakeService) CreateDraft(ctx context.Context) (*IntakeForm, error) {
	form := NewIntakeForm(uuid.NewString(), s.now(), s.newRowID)
	if err := s.saveDraft(ctx, form); err != nil {
		return nil, err
	}
	return form, nil
}

// GetDraft loads a draft.
func (s *IntakeService) GetDraft(ctx context.Context, id string) (*IntakeForm, error) {
	var form IntakeForm
	if err := s.drafts.Get(ctx, id, &form); err != nil {
		if errors.Is(err, appErrors.ErrCacheMiss) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "draft not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load draft")
	}
	return &form, nil
}

// UpdateDraftHeader applies header edits to a draft.
func (s *IntakeService) UpdateDraftHeader(ctx context.Context, id string, patch dto.DraftHeaderPatch) (*IntakeForm, error) {
	if err := s.validator.Struct(patch); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid draft payload")
	}
	return s.mutateDraft(ctx, id, func(form *IntakeForm) error {
		form.ApplyHeader(patch)
		return nil
	})
}

// AddRow appends an empty distribution row.
func (s *IntakeService) AddRow(ctx context.Context, id string) (*IntakeForm, error) {
	return s.mutateDraft(ctx, id, func(form *IntakeForm) error {
		form.AddRow(s.newRowID())
		return nil
	})
}

// RemoveRow drops a distribution row.
func (s *IntakeService) RemoveRow(ctx context.Context, id, rowID string) (*IntakeForm, error) {
	return s.mutateDraft(ctx, id, func(form *IntakeForm) error {
		return form.RemoveRow(rowID)
	})
}

// UpdateRow edits one distribution row.
func (s *IntakeService) UpdateRow(ctx context.Context, id, rowID string, patch dto.DraftRowPatch) (*IntakeForm, error) {
	if err := s.validator.Struct(patch); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid row payload")
	}
	return s.mutateDraft(ctx, id, func(form *IntakeForm) error {
		return form.EditRow(rowID, patch)
	})
}

// SubmitDraft stores the draft as a pending request and discards the draft.
func (s *IntakeService) SubmitDraft(ctx context.Context, id string) (*models.PrintRequest, error) {
	s.draftMu.Lock()
	defer s.draftMu.Unlock()

	form, err := s.GetDraft(ctx, id)
	if err != nil {
		return nil, err
	}
	req, err := s.store(ctx, form, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.drafts.Delete(ctx, id); err != nil {
		s.logger.Warn("failed to discard submitted draft", zap.String("draft_id", id), zap.Error(err))
	}
	return req, nil
}

func (s *IntakeService) mutateDraft(ctx context.Context, id string, mutate func(*IntakeForm) error) (*IntakeForm, error) {
	s.draftMu.Lock()
	defer s.draftMu.Unlock()

	form, err := s.GetDraft(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := mutate(form); err != nil {
		if errors.Is(err, errRowNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "row not found")
		}
		return nil, err
	}
	form.UpdatedAt = s.now()
	if err := s.saveDraft(ctx, form); err != nil {
		return nil, err
	}
	return form, nil
}

func (s *IntakeService) saveDraft(ctx context.Context, form *IntakeForm) error {
	if err := s.drafts.Set(ctx, form.ID, form, s.cfg.DraftTTL); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save draft")
	}
	return nil
}

// store submits the form, drawing a new id whenever the generated one is taken.
func (s *IntakeService) store(ctx context.Context, form *IntakeForm, now time.Time) (*models.PrintRequest, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		req := form.Submit(s.newID(now), now)
		err := s.requests.Append(ctx, req)
		if err == nil {
			s.logger.Info("print request submitted",
				zap.String("id", req.ID),
				zap.String("teacher", req.TeacherInCharge),
				zap.Int("total_printed_pages", req.TotalPrintedPages),
			)
			if s.metrics != nil {
				s.metrics.RecordSubmission()
			}
			return req, nil
		}
		if !errors.Is(err, repository.ErrDuplicateID) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store print request")
		}
		s.logger.Debug("request id collision, regenerating", zap.String("id", req.ID))
	}
	return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("could not allocate a unique request id after %d attempts", maxIDAttempts))
}
