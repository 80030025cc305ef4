// Package statement contains bank-statement normalization, merge and import use cases.
package statement

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/freight-backoffice/backend/internal/application/usecase/classification"
	"github.com/freight-backoffice/backend/internal/domain/entity"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

// Normalizer converts parsed statement entries into classified ledger transactions.
type Normalizer struct {
	classifier *classification.Classifier
}

// NewNormalizer creates a new Normalizer instance.
func NewNormalizer(classifier *classification.Classifier) *Normalizer {
	return &Normalizer{classifier: classifier}
}

// Normalize converts entries in order. Entries without an identifier are dropped
// and counted as malformed in the returned report.
func (n *Normalizer) Normalize(entries []entity.StatementEntry) ([]*entity.Transaction, *valueobject.LoadReport) {
	report := valueobject.NewLoadReport()
	report.RowsRead = len(entries)

	transactions := make([]*entity.Transaction, 0, len(entries))
	missingID := 0
	for _, entry := range entries {
		externalID := ExternalIDString(entry.SourceID)
		if externalID == "" {
			missingID++
			continue
		}

		tx := entity.NewTransaction(externalID, entry.PostedAt, entry.Amount, entry.Payee, entry.Memo)
		c := n.classifier.Classify(tx.Description, tx.Memo)
		tx.ApplyClassification(c.Category, c.CostCenter, c.Department)
		transactions = append(transactions, tx)
	}
	report.Malformed(missingID, "statement entries without a transaction id were skipped")

	return transactions, report
}

// ExternalIDString coerces a source identifier to its canonical string form so that
// numeric ids compare equal to the string ids already stored in the ledger.
func ExternalIDString(id any) string {
	switch v := id.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1e15 {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case fmt.Stringer:
		return strings.TrimSpace(v.String())
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
