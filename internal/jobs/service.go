package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fleetline/dispatch-backend/pkg/config"
	"github.com/fleetline/dispatch-backend/pkg/db"
	"github.com/fleetline/dispatch-backend/pkg/db/models"
	"github.com/fleetline/dispatch-backend/pkg/enums"
	pkgerrors "github.com/fleetline/dispatch-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines job intake and approval operations.
type Service interface {
	Create(ctx context.Context, input CreateJobInput) (*CreateJobResult, error)
	Approve(ctx context.Context, token string) (*JobView, error)
	Get(ctx context.Context, id uuid.UUID) (*JobView, error)
}

type service struct {
	repo Repository
	tx   txRunner
	cfg  config.CascadeConfig
	now  func() time.Time
}

// NewService builds a jobs service with the required dependencies.
func NewService(repo Repository, tx txRunner, cfg config.CascadeConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("jobs repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo: repo,
		tx:   tx,
		cfg:  cfg,
		now:  func() time.Time { return time.Now().UTC() },
	}, nil
}

// Create ingests an intake row. Replays of a known external_ref return the
// existing job with AlreadyExists set instead of failing, so the upstream
// sheet can re-post rows safely.
func (s *service) Create(ctx context.Context, input CreateJobInput) (*CreateJobResult, error) {
	if input.ExternalRef == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "external_ref required")
	}

	coordinator := input.CoordinatorEmail
	if coordinator == "" {
		coordinator = s.cfg.CoordinatorEmail
	}

	token, err := newApprovalToken()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint approval token")
	}

	job := &models.Job{
		ExternalRef:      input.ExternalRef,
		PickupDate:       input.PickupDate,
		PickupTime:       input.PickupTime,
		Origin:           input.Origin,
		Destination:      input.Destination,
		VehicleType:      input.VehicleType,
		CoordinatorEmail: coordinator,
		ApprovalToken:    token,
		Status:           enums.JobStatusNeedsApproval,
	}

	created, err := s.repo.Create(ctx, job)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			existing, findErr := s.repo.FindByExternalRef(ctx, input.ExternalRef)
			if findErr != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, findErr, "load existing job")
			}
			return &CreateJobResult{
				Job:           NewJobView(existing),
				ApproveURL:    s.approveURL(existing.ApprovalToken),
				AlreadyExists: true,
			}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create job")
	}

	return &CreateJobResult{
		Job:        NewJobView(created),
		ApproveURL: s.approveURL(created.ApprovalToken),
	}, nil
}

// Approve flips a job to approved by its emailed token. Re-approving an
// already approved (or further along) job is a no-op returning current state.
func (s *service) Approve(ctx context.Context, token string) (*JobView, error) {
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "approval token required")
	}

	var view *JobView
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		job, err := repo.FindByApprovalToken(ctx, token)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "job not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load job by token")
		}

		if job.Status == enums.JobStatusNeedsApproval {
			approvedAt := s.now()
			updates := map[string]any{
				"status":      enums.JobStatusApproved,
				"approved_at": approvedAt,
			}
			if err := repo.Update(ctx, job.ID, updates); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "approve job")
			}
			job.Status = enums.JobStatusApproved
			job.ApprovedAt = &approvedAt
		}

		view = NewJobView(job)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*JobView, error) {
	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "job not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load job")
	}
	return NewJobView(job), nil
}

func (s *service) approveURL(token string) string {
	return fmt.Sprintf("%s/approve?token=%s", s.cfg.BaseURL, token)
}
