package statement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/promogoods/backend/internal/domain/finance"
	"github.com/promogoods/backend/internal/domain/shared"
	"github.com/promogoods/backend/internal/domain/statement"
	"go.uber.org/zap"
)

// ImportService orchestrates one statement upload: parse the raw content,
// drop transactions already imported for the account, reconcile the rest
// against open receivables, persist confirmed matches and the audit trail.
type ImportService struct {
	parser      *statement.Parser
	reconciler  *finance.Reconciler
	receivables finance.ReceivableRepository
	importLog   statement.ImportLogRepository
	logger      *zap.Logger
}

// NewImportService creates a new ImportService
func NewImportService(
	reconciler *finance.Reconciler,
	receivables finance.ReceivableRepository,
	importLog statement.ImportLogRepository,
	logger *zap.Logger,
) *ImportService {
	return &ImportService{
		parser:      statement.NewParser(),
		reconciler:  reconciler,
		receivables: receivables,
		importLog:   importLog,
		logger:      logger,
	}
}

// ImportSummary reports what one upload produced
type ImportSummary struct {
	Parsed     int `json:"parsed"`
	Skipped    int `json:"skipped"`
	Duplicates int `json:"duplicates"`
	Matched    int `json:"matched"`
	Ambiguous  int `json:"ambiguous"`
	Unmatched  int `json:"unmatched"`
}

// ImportStatement processes raw statement content uploaded for a bank
// account. Unrecognizable content yields an empty summary, not an error;
// only persistence failures propagate.
func (s *ImportService) ImportStatement(ctx context.Context, accountRef, content string) (*ImportSummary, error) {
	summary := &ImportSummary{}

	parsed, err := s.parser.Parse(content)
	if err != nil {
		if errors.Is(err, shared.ErrInvalidStatementFormat) {
			s.logger.Warn("statement content has no recognizable format marker",
				zap.String("account_ref", accountRef))
			return summary, nil
		}
		return nil, fmt.Errorf("failed to parse statement: %w", err)
	}
	summary.Parsed = parsed.Parsed
	summary.Skipped = parsed.Skipped

	fresh := make([]statement.BankTransaction, 0, len(parsed.Transactions))
	for _, tx := range parsed.Transactions {
		exists, err := s.importLog.Exists(ctx, accountRef, tx.ExternalID)
		if err != nil {
			return nil, fmt.Errorf("failed to check import log: %w", err)
		}
		if exists {
			summary.Duplicates++
			continue
		}
		fresh = append(fresh, tx)
	}

	open, err := s.receivables.FindOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load open receivables: %w", err)
	}

	result := s.reconciler.Reconcile(fresh, open)
	summary.Matched = len(result.Matched)
	summary.Ambiguous = len(result.Ambiguous)
	summary.Unmatched = len(result.Unmatched)

	for _, match := range result.Matched {
		if err := s.receivables.Save(ctx, match.Receivable); err != nil {
			return nil, fmt.Errorf("failed to persist matched receivable %s: %w", match.Receivable.ID, err)
		}
		if err := s.record(ctx, accountRef, match.Transaction, "matched"); err != nil {
			return nil, err
		}
	}
	for _, tx := range result.Ambiguous {
		if err := s.record(ctx, accountRef, tx, "ambiguous"); err != nil {
			return nil, err
		}
	}
	for _, tx := range result.Unmatched {
		if err := s.record(ctx, accountRef, tx, "unmatched"); err != nil {
			return nil, err
		}
	}

	s.logger.Info("statement import finished",
		zap.String("account_ref", accountRef),
		zap.Int("parsed", summary.Parsed),
		zap.Int("skipped", summary.Skipped),
		zap.Int("duplicates", summary.Duplicates),
		zap.Int("matched", summary.Matched),
		zap.Int("ambiguous", summary.Ambiguous),
		zap.Int("unmatched", summary.Unmatched))

	return summary, nil
}

func (s *ImportService) record(ctx context.Context, accountRef string, tx statement.BankTransaction, classification string) error {
	err := s.importLog.Record(ctx, statement.ImportRecord{
		AccountRef:     accountRef,
		ExternalID:     tx.ExternalID,
		PostedAt:       tx.PostedAt,
		Amount:         tx.Amount.StringFixed(2),
		Classification: classification,
		ImportedAt:     time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to record import of %s: %w", tx.ExternalID, err)
	}
	return nil
}
