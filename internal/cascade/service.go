// Package cascade drives the sequential offer engine: one open offer per
// job, agents tried in priority order, each agent asked at most once.
package cascade

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fleetline/dispatch-backend/internal/agents"
	"github.com/fleetline/dispatch-backend/internal/jobs"
	"github.com/fleetline/dispatch-backend/internal/notify"
	"github.com/fleetline/dispatch-backend/internal/offers"
	"github.com/fleetline/dispatch-backend/pkg/config"
	"github.com/fleetline/dispatch-backend/pkg/db/models"
	"github.com/fleetline/dispatch-backend/pkg/enums"
	pkgerrors "github.com/fleetline/dispatch-backend/pkg/errors"
	"github.com/fleetline/dispatch-backend/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines the cascade operations triggered by coordinators, the
// timeout sweeper, and inbound driver replies.
type Service interface {
	StartOffers(ctx context.Context, jobID uuid.UUID) (*OfferResult, error)
	Tick(ctx context.Context) (*TickResult, error)
	DriverResponse(ctx context.Context, input DriverResponseInput) (*ResponseResult, error)
}

type service struct {
	jobsRepo   jobs.Repository
	offersRepo offers.Repository
	agentsRepo agents.Repository
	tx         txRunner
	notifier   notify.Notifier
	logg       *logger.Logger
	cfg        config.CascadeConfig
	locks      *jobLocks
	now        func() time.Time
}

// NewService builds the cascade engine with the required dependencies.
func NewService(
	jobsRepo jobs.Repository,
	offersRepo offers.Repository,
	agentsRepo agents.Repository,
	tx txRunner,
	notifier notify.Notifier,
	logg *logger.Logger,
	cfg config.CascadeConfig,
) (Service, error) {
	if jobsRepo == nil {
		return nil, fmt.Errorf("jobs repository required")
	}
	if offersRepo == nil {
		return nil, fmt.Errorf("offers repository required")
	}
	if agentsRepo == nil {
		return nil, fmt.Errorf("agents repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		jobsRepo:   jobsRepo,
		offersRepo: offersRepo,
		agentsRepo: agentsRepo,
		tx:         tx,
		notifier:   notifier,
		logg:       logg,
		cfg:        cfg,
		locks:      newJobLocks(),
		now:        func() time.Time { return time.Now().UTC() },
	}, nil
}

// StartOffers begins the cascade for an approved job by offering it to
// the highest-priority agent not yet tried. A job with no eligible
// agents stays approved so a later registry change can restart it.
func (s *service) StartOffers(ctx context.Context, jobID uuid.UUID) (*OfferResult, error) {
	s.locks.lock(jobID)
	defer s.locks.unlock(jobID)

	var (
		result *OfferResult
		notice *pendingNotice
	)
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		job, err := s.jobsRepo.WithTx(tx).FindByID(ctx, jobID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "job not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load job")
		}
		if job.Status != enums.JobStatusApproved {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "job not approved").
				WithDetails(map[string]any{"status": job.Status})
		}

		result, notice, err = s.offerNextAgent(ctx, tx, job)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.deliver(ctx, notice)
	return result, nil
}

// Tick sweeps open offers past the timeout, expires each one, and
// advances its job to the next agent. Offers resolved by a concurrent
// response between the sweep query and the claim are skipped.
func (s *service) Tick(ctx context.Context) (*TickResult, error) {
	cutoff := s.now().Add(-s.cfg.OfferTimeout())
	stale, err := s.offersRepo.FindStaleSent(ctx, cutoff)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sweep stale offers")
	}

	result := &TickResult{}
	var errs []error
	for i := range stale {
		offer := stale[i]
		advanced, notice, err := s.expireOffer(ctx, &offer)
		if err != nil {
			offerCtx := s.logg.WithJobID(ctx, offer.JobID.String())
			s.logg.Error(offerCtx, "expire offer failed", err)
			errs = append(errs, fmt.Errorf("offer %s: %w", offer.ID, err))
			continue
		}
		if advanced == nil {
			continue
		}
		result.TimedOut++
		if advanced.Outcome == OutcomeOfferSent {
			result.Advanced++
		}
		s.deliver(ctx, notice)
	}
	return result, multierr.Combine(errs...)
}

// expireOffer claims one stale offer and advances its job. A nil result
// with nil error means another writer resolved the offer first.
func (s *service) expireOffer(ctx context.Context, offer *models.Offer) (*OfferResult, *pendingNotice, error) {
	s.locks.lock(offer.JobID)
	defer s.locks.unlock(offer.JobID)

	var (
		result *OfferResult
		notice *pendingNotice
	)
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		claimed, err := s.offersRepo.WithTx(tx).Resolve(ctx, offer.ID, enums.OfferStatusTimedOut, s.now())
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "expire offer")
		}
		if !claimed {
			return nil
		}

		job, err := s.jobsRepo.WithTx(tx).FindByID(ctx, offer.JobID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load job for expired offer")
		}
		if job.Status != enums.JobStatusOffering {
			result = &OfferResult{Outcome: OutcomeNoMoreAgents, JobID: job.ID, JobStatus: job.Status}
			return nil
		}

		result, notice, err = s.offerNextAgent(ctx, tx, job)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return result, notice, nil
}

// DriverResponse applies an inbound reply to the agent's current open
// offer. Accepts assign the job; declines advance the cascade.
func (s *service) DriverResponse(ctx context.Context, input DriverResponseInput) (*ResponseResult, error) {
	agent, err := s.agentsRepo.FindByPhone(ctx, input.Phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "unknown agent")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve agent by phone")
	}

	offer, err := s.offersRepo.FindLatestOpenByAgent(ctx, agent.ID, input.JobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no open offer for agent")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load open offer")
	}

	reply, err := enums.ParseDriverReply(input.Text)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnrecognized, "unrecognized response").
			WithDetails(map[string]any{"expected": enums.ExpectedDriverReplies})
	}

	s.locks.lock(offer.JobID)
	defer s.locks.unlock(offer.JobID)

	result := &ResponseResult{
		Reply:   reply,
		JobID:   offer.JobID,
		AgentID: agent.ID,
		OfferID: offer.ID,
	}
	var notice *pendingNotice
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		status := enums.OfferStatusDeclined
		if reply == enums.DriverReplyAccept {
			status = enums.OfferStatusAccepted
		}

		claimed, err := s.offersRepo.WithTx(tx).Resolve(ctx, offer.ID, status, s.now())
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve offer")
		}
		if !claimed {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "offer already resolved")
		}

		jobsRepo := s.jobsRepo.WithTx(tx)
		job, err := jobsRepo.FindByID(ctx, offer.JobID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load job for response")
		}

		if reply == enums.DriverReplyAccept {
			if !job.Status.CanTransitionTo(enums.JobStatusAssigned) {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "job cannot be assigned in current state").
					WithDetails(map[string]any{"status": job.Status})
			}
			updates := map[string]any{
				"status":            enums.JobStatusAssigned,
				"assigned_agent_id": agent.ID,
			}
			if err := jobsRepo.Update(ctx, job.ID, updates); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign job")
			}
			return nil
		}

		if job.Status != enums.JobStatusOffering {
			return nil
		}
		result.Next, notice, err = s.offerNextAgent(ctx, tx, job)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.deliver(ctx, notice)
	return result, nil
}

type pendingNotice struct {
	offerID uuid.UUID
	notice  notify.OfferNotice
}

// offerNextAgent creates the next offer inside the caller's transaction.
// Callers hold the job lock.
func (s *service) offerNextAgent(ctx context.Context, tx *gorm.DB, job *models.Job) (*OfferResult, *pendingNotice, error) {
	offersRepo := s.offersRepo.WithTx(tx)

	offered, err := offersRepo.OfferedAgentIDs(ctx, job.ID)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list offered agents")
	}

	candidate, err := s.agentsRepo.WithTx(tx).NextCandidate(ctx, offered)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Pool exhausted. The job keeps its current status: approved
			// jobs can restart later, offering jobs wait for a coordinator.
			return &OfferResult{
				Outcome:   OutcomeNoMoreAgents,
				JobID:     job.ID,
				JobStatus: job.Status,
			}, nil, nil
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "pick next agent")
	}

	offer := &models.Offer{
		JobID:        job.ID,
		AgentID:      candidate.ID,
		Status:       enums.OfferStatusSent,
		NotifyStatus: enums.NotifyStatusPending,
		SentAt:       s.now(),
	}
	if _, err := offersRepo.Create(ctx, offer); err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create offer")
	}

	if job.Status != enums.JobStatusOffering {
		if !job.Status.CanTransitionTo(enums.JobStatusOffering) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeStateConflict, "job cannot enter offering").
				WithDetails(map[string]any{"status": job.Status})
		}
		if err := s.jobsRepo.WithTx(tx).Update(ctx, job.ID, map[string]any{"status": enums.JobStatusOffering}); err != nil {
			return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark job offering")
		}
		job.Status = enums.JobStatusOffering
	}

	result := &OfferResult{
		Outcome:   OutcomeOfferSent,
		JobID:     job.ID,
		JobStatus: job.Status,
		OfferID:   &offer.ID,
		Agent:     newAgentSummary(candidate),
	}
	notice := &pendingNotice{
		offerID: offer.ID,
		notice: notify.OfferNotice{
			Job:      job,
			Agent:    candidate,
			OfferURL: fmt.Sprintf("%s/api/v1/offers/%s", s.cfg.BaseURL, offer.ID),
		},
	}
	return result, notice, nil
}

// deliver sends the notification after the owning transaction commits
// and records the outcome on the offer row. Delivery failure never rolls
// back the cascade step.
func (s *service) deliver(ctx context.Context, pending *pendingNotice) {
	if pending == nil {
		return
	}

	status := enums.NotifyStatusDelivered
	if err := s.notifier.SendOffer(ctx, pending.notice); err != nil {
		status = enums.NotifyStatusFailed
		noticeCtx := s.logg.WithJobID(ctx, pending.notice.Job.ID.String())
		s.logg.Error(noticeCtx, "offer notification failed", err)
	}
	if err := s.offersRepo.SetNotifyStatus(ctx, pending.offerID, status); err != nil {
		s.logg.Error(ctx, "record notify status failed", err)
	}
}
