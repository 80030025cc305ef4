package classification

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/freight-backoffice/backend/internal/application/adapter"
	"github.com/freight-backoffice/backend/internal/domain/entity"
	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

const (
	// DefaultMatchLimit is the default number of matching transactions to return.
	DefaultMatchLimit = 10
	// MaxMatchLimit is the maximum number of matching transactions to return.
	MaxMatchLimit = 100
)

// TestKeywordInput represents the input for testing a keyword against the ledger.
type TestKeywordInput struct {
	Session entity.Session
	Keyword string
	Limit   int // Optional, defaults to DefaultMatchLimit
}

// TestKeywordOutput represents the ledger transactions a keyword would match.
type TestKeywordOutput struct {
	Transactions []*entity.Transaction
	MatchCount   int
	Report       *valueobject.LoadReport
}

// TestKeywordUseCase previews which ledger transactions a keyword would classify.
type TestKeywordUseCase struct {
	ledger adapter.TransactionLedger
}

// NewTestKeywordUseCase creates a new TestKeywordUseCase instance.
func NewTestKeywordUseCase(ledger adapter.TransactionLedger) *TestKeywordUseCase {
	return &TestKeywordUseCase{ledger: ledger}
}

// Execute performs the keyword test.
func (uc *TestKeywordUseCase) Execute(ctx context.Context, input TestKeywordInput) (*TestKeywordOutput, error) {
	if strings.TrimSpace(input.Keyword) == "" {
		return nil, domainerror.NewClassificationError(
			domainerror.ErrCodeEmptyKeyword,
			"keyword is required",
			domainerror.ErrEmptyKeyword,
		)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultMatchLimit
	} else if limit > MaxMatchLimit {
		limit = MaxMatchLimit
	}

	transactions, report, err := uc.ledger.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	output := &TestKeywordOutput{Transactions: []*entity.Transaction{}, Report: report}
	for _, tx := range transactions {
		if !ContainsKeyword(input.Keyword, tx.Description, tx.Memo) {
			continue
		}
		output.MatchCount++
		if len(output.Transactions) < limit {
			output.Transactions = append(output.Transactions, tx)
		}
	}

	slog.Info("Keyword tested against ledger",
		"operator", input.Session.Operator,
		"request_id", input.Session.RequestID,
		"keyword", input.Keyword,
		"matches", output.MatchCount,
	)

	return output, nil
}
