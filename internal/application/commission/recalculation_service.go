package commission

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/promogoods/backend/internal/domain/commission"
	"github.com/promogoods/backend/internal/domain/partner"
	"github.com/promogoods/backend/internal/domain/shared"
	"github.com/promogoods/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// RecalculationService drives the commission engine against persisted
// orders: entry creation at order creation time and bulk idempotent
// recomputation for orders that lack entries.
type RecalculationService struct {
	engine   *commission.Engine
	orders   trade.OrderRepository
	entries  commission.EntryRepository
	partners partner.PartnerRepository
	settings commission.SettingsRepository
	logger   *zap.Logger
}

// NewRecalculationService creates a new RecalculationService
func NewRecalculationService(
	orders trade.OrderRepository,
	entries commission.EntryRepository,
	partners partner.PartnerRepository,
	settings commission.SettingsRepository,
	logger *zap.Logger,
) *RecalculationService {
	return &RecalculationService{
		engine:   commission.NewEngine(),
		orders:   orders,
		entries:  entries,
		partners: partners,
		settings: settings,
		logger:   logger,
	}
}

// ComputeForOrder creates the full commission set for a newly created order
// and persists it. An order that already carries any non-cancelled entry is
// an invariant violation: the caller bypassed the presence check, and the
// call fails hard with ErrDuplicateCommission.
func (s *RecalculationService) ComputeForOrder(ctx context.Context, orderID uuid.UUID) ([]commission.Entry, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, shared.ErrNotFound
	}

	existing, err := s.entries.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing entries: %w", err)
	}
	for i := range existing {
		if !existing[i].IsCancelled() {
			return nil, shared.ErrDuplicateCommission
		}
	}

	settings, partnerIDs, err := s.loadSettings(ctx)
	if err != nil {
		return nil, err
	}

	created := s.engine.ComputeForOrder(*order, settings, partnerIDs)
	if len(created) == 0 {
		return created, nil
	}
	if err := s.entries.SaveAll(ctx, created); err != nil {
		return nil, fmt.Errorf("failed to persist commission entries: %w", err)
	}

	s.logger.Info("commission entries created for order",
		zap.String("order_id", orderID.String()),
		zap.Int("entries", len(created)))
	return created, nil
}

// RecalculationSummary reports one bulk recomputation run
type RecalculationSummary struct {
	OrdersScanned  int `json:"orders_scanned"`
	EntriesCreated int `json:"entries_created"`
}

// RecalculateMissing scans all orders and generates only the entry kinds
// each one lacks. The run is idempotent — a second run over the same state
// creates nothing — and safe to restart after a partial failure, because
// every decision derives from entry presence alone.
func (s *RecalculationService) RecalculateMissing(ctx context.Context) (*RecalculationSummary, error) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	existing, err := s.entries.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing entries: %w", err)
	}

	settings, partnerIDs, err := s.loadSettings(ctx)
	if err != nil {
		return nil, err
	}

	created := s.engine.RecalculateMissing(orders, existing, settings, partnerIDs)
	if len(created) > 0 {
		if err := s.entries.SaveAll(ctx, created); err != nil {
			return nil, fmt.Errorf("failed to persist commission entries: %w", err)
		}
	}

	summary := &RecalculationSummary{
		OrdersScanned:  len(orders),
		EntriesCreated: len(created),
	}
	s.logger.Info("commission recalculation finished",
		zap.Int("orders_scanned", summary.OrdersScanned),
		zap.Int("entries_created", summary.EntriesCreated))
	return summary, nil
}

// loadSettings resolves commission settings and the current active partner
// roster once per call.
func (s *RecalculationService) loadSettings(ctx context.Context) (commission.Settings, []uuid.UUID, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return commission.Settings{}, nil, fmt.Errorf("failed to load commission settings: %w", err)
	}

	active, err := s.partners.FindActive(ctx)
	if err != nil {
		return commission.Settings{}, nil, fmt.Errorf("failed to load active partners: %w", err)
	}
	partnerIDs := make([]uuid.UUID, 0, len(active))
	for i := range active {
		partnerIDs = append(partnerIDs, active[i].ID)
	}
	return settings, partnerIDs, nil
}
