package statement

import (
	"github.com/freight-backoffice/backend/internal/domain/entity"
)

// MergeTransactions appends to ledger the incoming transactions whose external id is not
// already present, keeping their relative order. The id set grows as survivors are
// appended, so repeated ids inside one batch are added once. Ledger rows with an empty
// id are kept as they are and never match an incoming id.
//
// Merging the same batch again into the returned ledger adds nothing.
func MergeTransactions(ledger, incoming []*entity.Transaction) (merged, added []*entity.Transaction) {
	seen := make(map[string]struct{}, len(ledger)+len(incoming))
	for _, tx := range ledger {
		if tx.ExternalID != "" {
			seen[tx.ExternalID] = struct{}{}
		}
	}

	merged = make([]*entity.Transaction, len(ledger), len(ledger)+len(incoming))
	copy(merged, ledger)
	added = make([]*entity.Transaction, 0, len(incoming))

	for _, tx := range incoming {
		if tx.ExternalID == "" {
			continue
		}
		if _, exists := seen[tx.ExternalID]; exists {
			continue
		}
		seen[tx.ExternalID] = struct{}{}
		merged = append(merged, tx)
		added = append(added, tx)
	}

	return merged, added
}

// ReplaceTransactions removes from ledger every row whose id appears in incoming and then
// appends incoming (first occurrence of each id). It returns the new ledger, the appended
// rows and how many ledger rows were replaced.
func ReplaceTransactions(ledger, incoming []*entity.Transaction) (merged, added []*entity.Transaction, replaced int) {
	batch := make(map[string]struct{}, len(incoming))
	for _, tx := range incoming {
		if tx.ExternalID != "" {
			batch[tx.ExternalID] = struct{}{}
		}
	}

	kept := make([]*entity.Transaction, 0, len(ledger))
	for _, tx := range ledger {
		if _, ok := batch[tx.ExternalID]; ok && tx.ExternalID != "" {
			replaced++
			continue
		}
		kept = append(kept, tx)
	}

	merged, added = MergeTransactions(kept, incoming)
	return merged, added, replaced
}
