package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/promogoods/backend/internal/domain/catalog"
	"github.com/promogoods/backend/internal/domain/partner"
	"github.com/promogoods/backend/internal/domain/shared/valueobject"
	"github.com/promogoods/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// NameNotInformed is the sentinel counterparty name used when every lookup
// in the fallback chain came up empty.
const NameNotInformed = "name not informed"

// Options selects the optional expensive computations of an enrichment pass
type Options struct {
	IncludeUnreadNotes        bool
	IncludePayments           bool
	IncludeDetailedFinancials bool
}

// EnrichedOrder is a display-ready view of one order assembled from
// multiple collaborators
type EnrichedOrder struct {
	Order            trade.Order     `json:"order"`
	CounterpartyName string          `json:"counterparty_name"`
	ProductName      string          `json:"product_name,omitempty"`
	HasUnreadNotes   bool            `json:"has_unread_notes,omitempty"`
	Payments         []trade.Payment `json:"payments,omitempty"`

	// Detailed financials
	PaidValue         decimal.Decimal `json:"paid_value"`
	RemainingValue    decimal.Decimal `json:"remaining_value"`
	TrackingCode      string          `json:"tracking_code,omitempty"`
	EstimatedDelivery *time.Time      `json:"estimated_delivery,omitempty"`
}

// EnrichmentService assembles enriched order views. Collaborator lookups
// inside one batch call are memoized per id; the memo lives exactly as long
// as the call and is never shared across batches or goroutines.
type EnrichmentService struct {
	clients  partner.ClientRepository
	users    partner.UserRepository
	products catalog.ProductRepository
	budgets  trade.BudgetRepository
	payments trade.PaymentRepository
	notes    trade.NoteRepository
	logger   *zap.Logger
}

// NewEnrichmentService creates a new EnrichmentService
func NewEnrichmentService(
	clients partner.ClientRepository,
	users partner.UserRepository,
	products catalog.ProductRepository,
	budgets trade.BudgetRepository,
	payments trade.PaymentRepository,
	notes trade.NoteRepository,
	logger *zap.Logger,
) *EnrichmentService {
	return &EnrichmentService{
		clients:  clients,
		users:    users,
		products: products,
		budgets:  budgets,
		payments: payments,
		notes:    notes,
		logger:   logger,
	}
}

// batchMemo caches collaborator lookups for the lifetime of one batch call.
// Entries hold the lookup outcome, including misses, so a repeated miss
// does not hit the collaborator again.
type batchMemo struct {
	clients       map[uuid.UUID]*partner.Client
	clientsByUser map[uuid.UUID]*partner.Client
	users         map[uuid.UUID]*partner.User
	products      map[uuid.UUID]*catalog.Product
	budgets       map[uuid.UUID]*trade.Budget
}

func newBatchMemo() *batchMemo {
	return &batchMemo{
		clients:       make(map[uuid.UUID]*partner.Client),
		clientsByUser: make(map[uuid.UUID]*partner.Client),
		users:         make(map[uuid.UUID]*partner.User),
		products:      make(map[uuid.UUID]*catalog.Product),
		budgets:       make(map[uuid.UUID]*trade.Budget),
	}
}

// EnrichBatch enriches a batch of orders in input order
func (s *EnrichmentService) EnrichBatch(ctx context.Context, orders []trade.Order, opts Options) ([]EnrichedOrder, error) {
	memo := newBatchMemo()

	enriched := make([]EnrichedOrder, 0, len(orders))
	for _, o := range orders {
		view, err := s.enrichOne(ctx, o, opts, memo)
		if err != nil {
			return nil, fmt.Errorf("failed to enrich order %s: %w", o.ID, err)
		}
		enriched = append(enriched, *view)
	}

	s.logger.Debug("order batch enriched",
		zap.Int("orders", len(enriched)),
		zap.Bool("detailed_financials", opts.IncludeDetailedFinancials))
	return enriched, nil
}

// Enrich enriches a single order
func (s *EnrichmentService) Enrich(ctx context.Context, o trade.Order, opts Options) (*EnrichedOrder, error) {
	return s.enrichOne(ctx, o, opts, newBatchMemo())
}

func (s *EnrichmentService) enrichOne(ctx context.Context, o trade.Order, opts Options, memo *batchMemo) (*EnrichedOrder, error) {
	view := &EnrichedOrder{Order: o}

	name, err := s.resolveCounterpartyName(ctx, o, memo)
	if err != nil {
		return nil, err
	}
	view.CounterpartyName = name

	if o.ProductID != uuid.Nil {
		product, err := s.lookupProduct(ctx, o.ProductID, memo)
		if err != nil {
			return nil, err
		}
		if product != nil {
			view.ProductName = product.Name
		}
	}

	if opts.IncludeUnreadNotes {
		unread, err := s.notes.CountUnreadByOrder(ctx, o.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count unread notes: %w", err)
		}
		view.HasUnreadNotes = unread > 0
	}

	if opts.IncludePayments || opts.IncludeDetailedFinancials {
		confirmed, err := s.payments.FindConfirmedByOrder(ctx, o.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load confirmed payments: %w", err)
		}
		if opts.IncludePayments {
			view.Payments = confirmed
		}
		if opts.IncludeDetailedFinancials {
			if err := s.fillFinancials(ctx, o, confirmed, view, memo); err != nil {
				return nil, err
			}
		}
	}

	return view, nil
}

// fillFinancials computes paid = confirmed payments + budget down payment
// and remaining = total - paid, both rounded to cents at the final step.
func (s *EnrichmentService) fillFinancials(ctx context.Context, o trade.Order, confirmed []trade.Payment, view *EnrichedOrder, memo *batchMemo) error {
	paid := valueobject.ZeroBRL()
	for _, p := range confirmed {
		paid = paid.MustAdd(valueobject.NewMoneyBRL(p.Amount))
	}

	if o.BudgetID != uuid.Nil {
		budget, err := s.lookupBudget(ctx, o.BudgetID, memo)
		if err != nil {
			return err
		}
		if budget != nil {
			paid = paid.MustAdd(valueobject.NewMoneyBRL(budget.DownPayment))
		}
	}

	total := valueobject.NewMoneyBRL(o.TotalValue)
	view.PaidValue = paid.RoundCents().Amount()
	view.RemainingValue = total.MustSubtract(paid).RoundCents().Amount()
	view.TrackingCode = o.TrackingCode
	view.EstimatedDelivery = o.EstimatedDelivery
	return nil
}

// resolveCounterpartyName walks the display-name fallback chain: explicit
// contact name on the order, client by id, client by user, generic user
// record, then the sentinel. Each step runs only if the previous one
// yielded nothing.
func (s *EnrichmentService) resolveCounterpartyName(ctx context.Context, o trade.Order, memo *batchMemo) (string, error) {
	if o.ContactName != "" {
		return o.ContactName, nil
	}

	if o.ClientID != uuid.Nil {
		client, err := s.lookupClient(ctx, o.ClientID, memo)
		if err != nil {
			return "", err
		}
		if client != nil && client.Name != "" {
			return client.Name, nil
		}
	}

	if o.UserID != uuid.Nil {
		client, err := s.lookupClientByUser(ctx, o.UserID, memo)
		if err != nil {
			return "", err
		}
		if client != nil && client.Name != "" {
			return client.Name, nil
		}

		user, err := s.lookupUser(ctx, o.UserID, memo)
		if err != nil {
			return "", err
		}
		if user != nil && user.Name != "" {
			return user.Name, nil
		}
	}

	return NameNotInformed, nil
}

func (s *EnrichmentService) lookupClient(ctx context.Context, id uuid.UUID, memo *batchMemo) (*partner.Client, error) {
	if client, ok := memo.clients[id]; ok {
		return client, nil
	}
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load client: %w", err)
	}
	memo.clients[id] = client
	return client, nil
}

func (s *EnrichmentService) lookupClientByUser(ctx context.Context, userID uuid.UUID, memo *batchMemo) (*partner.Client, error) {
	if client, ok := memo.clientsByUser[userID]; ok {
		return client, nil
	}
	client, err := s.clients.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load client by user: %w", err)
	}
	memo.clientsByUser[userID] = client
	return client, nil
}

func (s *EnrichmentService) lookupUser(ctx context.Context, id uuid.UUID, memo *batchMemo) (*partner.User, error) {
	if user, ok := memo.users[id]; ok {
		return user, nil
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	memo.users[id] = user
	return user, nil
}

func (s *EnrichmentService) lookupProduct(ctx context.Context, id uuid.UUID, memo *batchMemo) (*catalog.Product, error) {
	if product, ok := memo.products[id]; ok {
		return product, nil
	}
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	memo.products[id] = product
	return product, nil
}

func (s *EnrichmentService) lookupBudget(ctx context.Context, id uuid.UUID, memo *batchMemo) (*trade.Budget, error) {
	if budget, ok := memo.budgets[id]; ok {
		return budget, nil
	}
	budget, err := s.budgets.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load budget: %w", err)
	}
	memo.budgets[id] = budget
	return budget, nil
}
