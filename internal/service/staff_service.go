package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/print-request-api/internal/dto"
	"github.com/noah-isme/print-request-api/internal/models"
	"github.com/noah-isme/print-request-api/pkg/capture"
	appErrors "github.com/noah-isme/print-request-api/pkg/errors"
)

// lookupMissMessage is shown verbatim by staff clients.
const lookupMissMessage = "Request ID not found"

var errAlreadyCompleted = errors.New("already completed")

type staffStore interface {
	FindByID(ctx context.Context, id string) (*models.PrintRequest, error)
	Update(ctx context.Context, id string, mutate func(*models.PrintRequest) error) (*models.PrintRequest, error)
	List(ctx context.Context, filter models.PrintRequestFilter) ([]models.PrintRequest, int, error)
}

type transitionRecorder interface {
	RecordStatusTransition(from, to models.RequestStatus)
}

// StaffConfig bounds stored meter photos.
type StaffConfig struct {
	PhotoMaxWidth  int
	PhotoMaxHeight int
}

// StaffService implements the printing room workflow on stored requests.
type StaffService struct {
	repo      staffStore
	metrics   transitionRecorder
	validator *validator.Validate
	logger    *zap.Logger
	cfg       StaffConfig
	now       func() time.Time
}

// NewStaffService constructs a StaffService.
func NewStaffService(repo staffStore, metrics transitionRecorder, validate *validator.Validate, logger *zap.Logger, cfg StaffConfig) *StaffService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StaffService{repo: repo, metrics: metrics, validator: validate, logger: logger, cfg: cfg, now: time.Now}
}

// Lookup finds a request by exact id.
func (s *StaffService) Lookup(ctx context.Context, id string) (*models.PrintRequest, error) {
	if id == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "request id is required")
	}
	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapStoreError(err, "failed to load print request")
	}
	return req, nil
}

// List returns requests filtered by status, in submission order.
func (s *StaffService) List(ctx context.Context, query dto.PrintRequestQuery) ([]models.PrintRequest, *models.Pagination, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query")
	}
	filter := models.PrintRequestFilter{
		Status:   models.RequestStatus(query.Status),
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list print requests")
	}
	return items, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}, nil
}

// UpdateDetails commits every provided staff field at once.
func (s *StaffService) UpdateDetails(ctx context.Context, id string, req dto.StaffUpdateRequest) (*models.PrintRequest, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid staff update")
	}
	if req.Empty() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no fields to update")
	}
	updated, err := s.repo.Update(ctx, id, func(pr *models.PrintRequest) error {
		if req.AdjustedCopies != nil {
			pr.AdjustedCopies = cloneIntPtr(req.AdjustedCopies)
		}
		if req.StaffRemarks != nil {
			remarks := *req.StaffRemarks
			pr.StaffRemarks = &remarks
		}
		if req.RicohPages != nil {
			pr.RicohPages = cloneIntPtr(req.RicohPages)
		}
		if req.ToshibaPages != nil {
			pr.ToshibaPages = cloneIntPtr(req.ToshibaPages)
		}
		pr.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return nil, s.mapStoreError(err, "failed to update print request")
	}
	return updated, nil
}

// RecordPhoto normalises an uploaded meter photo and stores it in slot. The
// before photo starts the job; the after photo requires the before photo.
func (s *StaffService) RecordPhoto(ctx context.Context, id string, slot models.PhotoSlot, payload []byte) (*models.PrintRequest, error) {
	if slot != models.PhotoBefore && slot != models.PhotoAfter {
		return nil, appErrors.Clone(appErrors.ErrValidation, "photo slot must be before or after")
	}
	photo, err := capture.NormalizePhoto(ctx, payload, s.cfg.PhotoMaxWidth, s.cfg.PhotoMaxHeight)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid meter photo")
	}

	var from models.RequestStatus
	updated, err := s.repo.Update(ctx, id, func(pr *models.PrintRequest) error {
		from = pr.Status
		if pr.Status == models.RequestStatusCompleted {
			return appErrors.Clone(appErrors.ErrConflict, "request already completed")
		}
		switch slot {
		case models.PhotoBefore:
			if pr.HasPhoto(models.PhotoBefore) {
				return appErrors.Clone(appErrors.ErrConflict, "before photo already recorded")
			}
			pr.MeterPhotoBefore = &photo
			pr.Status = models.RequestStatusInProgress
		case models.PhotoAfter:
			if !pr.HasPhoto(models.PhotoBefore) {
				return appErrors.Clone(appErrors.ErrPreconditionFailed, "before photo required first")
			}
			pr.MeterPhotoAfter = &photo
		}
		pr.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return nil, s.mapStoreError(err, "failed to record meter photo")
	}
	s.recordTransition(id, from, updated.Status)
	return updated, nil
}

// Complete marks a job done once both meter photos exist. Completing twice is a no-op.
func (s *StaffService) Complete(ctx context.Context, id string) (*models.PrintRequest, error) {
	var from models.RequestStatus
	updated, err := s.repo.Update(ctx, id, func(pr *models.PrintRequest) error {
		from = pr.Status
		if pr.Status == models.RequestStatusCompleted {
			return errAlreadyCompleted
		}
		if !pr.CanComplete() {
			return appErrors.Clone(appErrors.ErrPreconditionFailed, "both meter photos are required")
		}
		now := s.now()
		pr.Status = models.RequestStatusCompleted
		pr.CompletedAt = &now
		pr.UpdatedAt = now
		return nil
	})
	if errors.Is(err, errAlreadyCompleted) {
		return s.Lookup(ctx, id)
	}
	if err != nil {
		return nil, s.mapStoreError(err, "failed to complete print request")
	}
	s.recordTransition(id, from, updated.Status)
	return updated, nil
}

func (s *StaffService) recordTransition(id string, from, to models.RequestStatus) {
	if from == to {
		return
	}
	s.logger.Info("print request status changed", zap.String("id", id), zap.String("from", string(from)), zap.String("to", string(to)))
	if s.metrics != nil {
		s.metrics.RecordStatusTransition(from, to)
	}
}

func (s *StaffService) mapStoreError(err error, message string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, lookupMissMessage)
	}
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

func cloneIntPtr(v *int) *int {
	out := *v
	return &out
}
