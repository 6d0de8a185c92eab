package services

import (
	"context"
	"fmt"

	"github.com/iudanet/barkeeper/internal/client/cache"
	"github.com/iudanet/barkeeper/internal/client/queue"
	"github.com/iudanet/barkeeper/internal/client/reconcile"
	"github.com/iudanet/barkeeper/internal/models"
	"github.com/iudanet/barkeeper/internal/validation"
	"github.com/iudanet/barkeeper/pkg/api"
)

// Bars wraps the bars table.
type Bars struct {
	base
}

// NewBars creates the bars service
func NewBars(d Deps) *Bars {
	return &Bars{base: newBase(d)}
}

// ListBars returns bars visible to the user, from the server or the cache.
func (s *Bars) ListBars(ctx context.Context) (Snapshot[models.Bar], error) {
	return read(ctx, &s.base, cache.BarsKey, models.Bar.Valid, func(ctx context.Context) ([]models.Bar, error) {
		bars, err := s.API.ListBars(ctx)
		if err != nil {
			return nil, err
		}
		return mapSlice(bars, BarFromAPI), nil
	})
}

// CreateBar creates a bar. While blocked it returns an unconfirmed bar with a temporary id.
func (s *Bars) CreateBar(ctx context.Context, in models.NewBar) (models.Bar, error) {
	if err := validation.ValidateBarName(in.Name); err != nil {
		return models.Bar{}, err
	}

	key := queue.NewKey()
	if !s.blocked() {
		bar, err := s.API.CreateBar(ctx, key, api.CreateBarRequest{
			Name:    in.Name,
			Address: in.Address,
			Phone:   in.Phone,
		})
		if err != nil {
			return models.Bar{}, err
		}
		return BarFromAPI(*bar), nil
	}

	payload := models.CreateBarPayload{TempID: newTempID(), Bar: in}
	if err := s.enqueue(ctx, key, payload, payload.TempID); err != nil {
		return models.Bar{}, err
	}
	return reconcile.BarFromPayload(payload, s.Actor(), s.Now().UTC()), nil
}

// UpdateBar applies patch to current. Fields absent from the patch are left untouched.
// Queued updates return current with the patch applied and marked unconfirmed.
func (s *Bars) UpdateBar(ctx context.Context, current models.Bar, patch models.BarPatch) (models.Bar, error) {
	if patch.IsEmpty() {
		return current, nil
	}
	if patch.Name != nil {
		if err := validation.ValidateBarName(*patch.Name); err != nil {
			return models.Bar{}, err
		}
	}

	queued, err := s.shouldQueue(ctx, current.ID)
	if err != nil {
		return models.Bar{}, err
	}

	key := queue.NewKey()
	now := s.Now().UTC()
	if !queued {
		bar, err := s.API.UpdateBar(ctx, key, current.ID, api.UpdateBarRequest{
			ClientUpdatedAt: now,
			Name:            patch.Name,
			Address:         patch.Address,
			Phone:           patch.Phone,
			IsActive:        patch.IsActive,
		})
		if err != nil {
			return models.Bar{}, fmt.Errorf("failed to update bar %s: %w", current.ID, err)
		}
		return BarFromAPI(*bar), nil
	}

	payload := models.UpdateBarPayload{BarID: current.ID, Patch: patch, ClientUpdatedAt: now}
	if err := s.enqueue(ctx, key, payload, current.ID); err != nil {
		return models.Bar{}, err
	}

	updated := patch.Apply(current)
	updated.UpdatedAt = now
	updated.Unconfirmed = true
	return updated, nil
}

// Pending returns the bar operations still waiting for acknowledgment.
func (s *Bars) Pending(ctx context.Context) []*models.PendingOperation {
	ops := s.pending(ctx)
	out := ops[:0]
	for _, op := range ops {
		if op.Type == models.OpCreateBar || op.Type == models.OpUpdateBar {
			out = append(out, op)
		}
	}
	return out
}
