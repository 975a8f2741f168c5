package jobs

import (
	"context"
	"fmt"
	"testing"

	"github.com/fleetline/dispatch-backend/pkg/config"
	"github.com/fleetline/dispatch-backend/pkg/db/models"
	"github.com/fleetline/dispatch-backend/pkg/enums"
	pkgerrors "github.com/fleetline/dispatch-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubJobsRepo struct {
	byExternalRef map[string]*models.Job
	byToken       map[string]*models.Job
	updates       map[uuid.UUID]map[string]any
	createErr     error
}

func newStubJobsRepo() *stubJobsRepo {
	return &stubJobsRepo{
		byExternalRef: make(map[string]*models.Job),
		byToken:       make(map[string]*models.Job),
		updates:       make(map[uuid.UUID]map[string]any),
	}
}

func (s *stubJobsRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubJobsRepo) Create(ctx context.Context, job *models.Job) (*models.Job, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	if _, ok := s.byExternalRef[job.ExternalRef]; ok {
		return nil, fmt.Errorf("UNIQUE constraint failed: jobs.external_ref")
	}
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	s.byExternalRef[job.ExternalRef] = job
	s.byToken[job.ApprovalToken] = job
	return job, nil
}

func (s *stubJobsRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	for _, job := range s.byExternalRef {
		if job.ID == id {
			return job, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubJobsRepo) FindByExternalRef(ctx context.Context, externalRef string) (*models.Job, error) {
	job, ok := s.byExternalRef[externalRef]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return job, nil
}

func (s *stubJobsRepo) FindByApprovalToken(ctx context.Context, token string) (*models.Job, error) {
	job, ok := s.byToken[token]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return job, nil
}

func (s *stubJobsRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	s.updates[id] = updates
	return nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func testCascadeConfig() config.CascadeConfig {
	return config.CascadeConfig{
		BaseURL:             "https://dispatch.example.com",
		OfferTimeoutMinutes: 30,
		CoordinatorEmail:    "ops@example.com",
	}
}

func TestCreateJob(t *testing.T) {
	repo := newStubJobsRepo()
	svc, err := NewService(repo, stubTxRunner{}, testCascadeConfig())
	require.NoError(t, err)

	origin := "Hamburg"
	result, err := svc.Create(context.Background(), CreateJobInput{
		ExternalRef: "sheet-row-7",
		Origin:      &origin,
	})
	require.NoError(t, err)
	assert.False(t, result.AlreadyExists)
	assert.Equal(t, enums.JobStatusNeedsApproval, result.Job.Status)
	assert.Equal(t, "ops@example.com", result.Job.CoordinatorEmail)
	require.NotNil(t, result.Job.Origin)
	assert.Equal(t, "Hamburg", *result.Job.Origin)

	stored := repo.byExternalRef["sheet-row-7"]
	require.NotNil(t, stored)
	assert.Len(t, stored.ApprovalToken, 32)
	assert.Equal(t, fmt.Sprintf("https://dispatch.example.com/approve?token=%s", stored.ApprovalToken), result.ApproveURL)
}

func TestCreateJobIdempotentByExternalRef(t *testing.T) {
	repo := newStubJobsRepo()
	svc, err := NewService(repo, stubTxRunner{}, testCascadeConfig())
	require.NoError(t, err)

	first, err := svc.Create(context.Background(), CreateJobInput{ExternalRef: "sheet-row-7"})
	require.NoError(t, err)

	second, err := svc.Create(context.Background(), CreateJobInput{ExternalRef: "sheet-row-7"})
	require.NoError(t, err)
	assert.True(t, second.AlreadyExists)
	assert.Equal(t, first.Job.ID, second.Job.ID)
	assert.Equal(t, first.ApproveURL, second.ApproveURL)
}

func TestCreateJobMissingExternalRef(t *testing.T) {
	svc, err := NewService(newStubJobsRepo(), stubTxRunner{}, testCascadeConfig())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateJobInput{})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestApproveJob(t *testing.T) {
	repo := newStubJobsRepo()
	job := &models.Job{ID: uuid.New(), ExternalRef: "sheet-row-7", ApprovalToken: "tok-1", Status: enums.JobStatusNeedsApproval}
	repo.byExternalRef[job.ExternalRef] = job
	repo.byToken[job.ApprovalToken] = job

	svc, err := NewService(repo, stubTxRunner{}, testCascadeConfig())
	require.NoError(t, err)

	view, err := svc.Approve(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, enums.JobStatusApproved, view.Status)
	assert.NotNil(t, view.ApprovedAt)

	updates := repo.updates[job.ID]
	require.NotNil(t, updates)
	assert.Equal(t, enums.JobStatusApproved, updates["status"])
}

func TestApproveJobIdempotent(t *testing.T) {
	repo := newStubJobsRepo()
	job := &models.Job{ID: uuid.New(), ExternalRef: "sheet-row-7", ApprovalToken: "tok-1", Status: enums.JobStatusOffering}
	repo.byExternalRef[job.ExternalRef] = job
	repo.byToken[job.ApprovalToken] = job

	svc, err := NewService(repo, stubTxRunner{}, testCascadeConfig())
	require.NoError(t, err)

	view, err := svc.Approve(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, enums.JobStatusOffering, view.Status)
	assert.Empty(t, repo.updates)
}

func TestApproveJobUnknownToken(t *testing.T) {
	svc, err := NewService(newStubJobsRepo(), stubTxRunner{}, testCascadeConfig())
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), "tok-missing")
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}
