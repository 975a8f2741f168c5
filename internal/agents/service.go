package agents

import (
	"context"
	"errors"
	"fmt"

	"github.com/fleetline/dispatch-backend/pkg/db/models"
	pkgerrors "github.com/fleetline/dispatch-backend/pkg/errors"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines registry-level operations over agents.
type Service interface {
	Sync(ctx context.Context, inputs []AgentInput) (*SyncResult, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds an agents service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("agents repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

// Sync upserts each descriptor by phone. Existing agents have their name,
// priority, and active flag replaced; unknown phones become new rows. The
// whole batch commits or rolls back together.
func (s *service) Sync(ctx context.Context, inputs []AgentInput) (*SyncResult, error) {
	for i, input := range inputs {
		if input.Name == "" || input.Phone == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "agent name and phone required").
				WithDetails(map[string]any{"index": i})
		}
		if input.Priority < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "agent priority must be positive").
				WithDetails(map[string]any{"index": i, "phone": input.Phone})
		}
	}

	result := &SyncResult{}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for _, input := range inputs {
			active := true
			if input.Active != nil {
				active = *input.Active
			}

			existing, err := repo.FindByPhone(ctx, input.Phone)
			switch {
			case err == nil:
				updates := map[string]any{
					"name":     input.Name,
					"priority": input.Priority,
					"active":   active,
				}
				if err := repo.Update(ctx, existing.ID, updates); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update agent")
				}
				result.Updated++
			case errors.Is(err, gorm.ErrRecordNotFound):
				agent := &models.Agent{
					Name:     input.Name,
					Phone:    input.Phone,
					Priority: input.Priority,
					Active:   active,
				}
				if _, err := repo.Create(ctx, agent); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create agent")
				}
				result.Inserted++
			default:
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup agent by phone")
			}
		}

		total, err := repo.Count(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count agents")
		}
		result.Total = total
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
