package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/print-request-api/internal/models"
	appErrors "github.com/noah-isme/print-request-api/pkg/errors"
	"github.com/noah-isme/print-request-api/pkg/printform"
)

type printableLookup interface {
	Lookup(ctx context.Context, id string) (*models.PrintRequest, error)
}

// PrintableConfig carries the fixed header text of the form.
type PrintableConfig struct {
	SchoolName string
	FormCode   string
}

// PrintableService produces the paper form for a request.
type PrintableService struct {
	requests printableLookup
	logger   *zap.Logger
	cfg      PrintableConfig
}

// NewPrintableService constructs a PrintableService.
func NewPrintableService(requests printableLookup, logger *zap.Logger, cfg PrintableConfig) *PrintableService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PrintableService{requests: requests, logger: logger, cfg: cfg}
}

// View returns the form content for a request.
func (s *PrintableService) View(ctx context.Context, id string) (*printform.Form, error) {
	req, err := s.requests.Lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	form := BuildPrintForm(req, s.cfg)
	return &form, nil
}

// PDF renders the form for printing.
func (s *PrintableService) PDF(ctx context.Context, id string) ([]byte, error) {
	form, err := s.View(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := printform.RenderPDF(*form)
	if err != nil {
		s.logger.Error("render print form failed", zap.String("id", id), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render print form")
	}
	return data, nil
}

// BuildPrintForm maps a stored request onto the printed layout. The copy
// count shown is recomputed from the distribution rows.
func BuildPrintForm(req *models.PrintRequest, cfg PrintableConfig) printform.Form {
	rows := make([]printform.Row, 0, len(req.ClassRequests))
	for _, cr := range req.ClassRequests {
		rows = append(rows, printform.Row{
			Form:            cr.Form,
			ClassName:       cr.ClassName,
			NoOfCopies:      cr.NoOfCopies,
			TeacherInCharge: cr.TeacherInCharge,
		})
	}
	schoolName := cfg.SchoolName
	if schoolName == "" {
		schoolName = printform.DefaultSchoolName
	}
	formCode := cfg.FormCode
	if formCode == "" {
		formCode = printform.DefaultFormCode
	}
	return printform.Form{
		SchoolName:        schoolName,
		Department:        printform.DefaultDepartment,
		FormCode:          formCode,
		Revision:          printform.DefaultRevision,
		RequestID:         req.ID,
		Bars:              printform.BarWidths(req.ID),
		Class:             req.Class,
		Subject:           req.Subject,
		TeacherInCharge:   req.TeacherInCharge,
		DateOfSubmission:  req.DateOfSubmission,
		DateOfCollection:  req.DateOfCollection,
		NoOfPagesOriginal: req.NoOfPagesOriginal,
		TotalCopies:       req.RequestedCopies(),
		TotalPrintedPages: req.TotalPrintedPages,
		Options: printform.Options(
			req.Sides == models.SidedSingle,
			req.Stapling == models.StaplingStapled,
			req.Paper == models.PaperWhite,
		),
		Remarks:   req.Remarks,
		Signature: req.Signature,
		Rows:      rows,
	}
}
