package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/rotation-engine/internal/domain/rotation"
)

type RotationRepository struct {
	mu     sync.RWMutex
	plans  map[int64]rotation.RotationPlan
	orders map[int64]rotation.BattingOrder
	rules  map[int64]rotation.RuleConfiguration
}

func NewRotationRepository(
	plans map[int64]rotation.RotationPlan,
	orders map[int64]rotation.BattingOrder,
	rules map[int64]rotation.RuleConfiguration,
) *RotationRepository {
	repo := &RotationRepository{
		plans:  make(map[int64]rotation.RotationPlan, len(plans)),
		orders: make(map[int64]rotation.BattingOrder, len(orders)),
		rules:  make(map[int64]rotation.RuleConfiguration, len(rules)),
	}
	for gameID, plan := range plans {
		repo.plans[gameID] = plan.Clone()
	}
	for gameID, order := range orders {
		repo.orders[gameID] = cloneOrder(order)
	}
	for seasonID, cfg := range rules {
		repo.rules[seasonID] = cfg.Clone()
	}

	return repo
}

func (r *RotationRepository) GetPlan(_ context.Context, gameID int64) (rotation.RotationPlan, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plan, ok := r.plans[gameID]
	if !ok {
		return rotation.RotationPlan{}, false, nil
	}

	return plan.Clone(), true, nil
}

func (r *RotationRepository) GetBattingOrder(_ context.Context, gameID int64) (rotation.BattingOrder, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[gameID]
	if !ok {
		return rotation.BattingOrder{}, false, nil
	}

	return cloneOrder(order), true, nil
}

func (r *RotationRepository) GetRules(_ context.Context, seasonID int64) (rotation.RuleConfiguration, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg, ok := r.rules[seasonID]
	if !ok {
		return rotation.RuleConfiguration{}, false, nil
	}

	return cfg.Clone(), true, nil
}

func (r *RotationRepository) SavePlan(_ context.Context, gameID int64, plan rotation.RotationPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.plans[gameID] = plan.Clone()
	return nil
}

func cloneOrder(order rotation.BattingOrder) rotation.BattingOrder {
	return rotation.BattingOrder{PlayerIDs: append(order.PlayerIDs[:0:0], order.PlayerIDs...)}
}
