package csvstore

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/freight-backoffice/backend/internal/domain/entity"
	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

// QuoteHeader is the column set of the saved quotes table.
var QuoteHeader = []string{
	"ID", "Data", "Cliente", "Origem", "Destino", "Distância (km)", "Peso (kg)",
	"Tipo de Carga", "Prazo (dias)", "Valor Cotado (R$)", "Status", "Observações",
}

// QuoteStore implements adapter.QuoteRepository.
type QuoteStore struct {
	path string
}

// NewQuoteStore creates a new QuoteStore.
func NewQuoteStore(path string) *QuoteStore {
	return &QuoteStore{path: path}
}

// List reads every saved quote. Rows with an unreadable value are dropped.
func (s *QuoteStore) List(_ context.Context) ([]*entity.FreightQuote, *valueobject.LoadReport, error) {
	report := valueobject.NewLoadReport()

	table, err := ReadTable(s.path)
	if err != nil {
		if IsMissing(err) {
			return []*entity.FreightQuote{}, report, nil
		}
		return nil, nil, domainerror.NewLedgerError(domainerror.ErrCodeLedgerReadFailed, "failed to read quotes", err)
	}

	quotes := make([]*entity.FreightQuote, 0, len(table.Rows))
	bad := 0
	for _, row := range table.Rows {
		report.RowsRead++

		value, err := ParseAmount(table.Get(row, "Valor Cotado (R$)"))
		if err != nil {
			bad++
			continue
		}
		created, _ := ParseDateTime(table.Get(row, "Data"))
		distance, _ := ParseAmountOrZero(table.Get(row, "Distância (km)"))
		weight, _ := ParseAmountOrZero(table.Get(row, "Peso (kg)"))
		deadline, _ := ParseCount(table.Get(row, "Prazo (dias)"))

		q := entity.NewFreightQuote(
			created,
			table.Get(row, "Cliente"),
			table.Get(row, "Origem"),
			table.Get(row, "Destino"),
			distance, weight,
			table.Get(row, "Tipo de Carga"),
			deadline, value,
			table.Get(row, "Observações"),
		)
		if id, err := uuid.Parse(table.Get(row, "ID")); err == nil {
			q.ID = id
		}
		if status := table.Get(row, "Status"); status != "" {
			q.Status = entity.QuoteStatus(status)
		}
		quotes = append(quotes, q)
	}
	report.Malformed(bad, "quote rows dropped, unreadable value")

	return quotes, report, nil
}

// SaveAll replaces the quotes table.
func (s *QuoteStore) SaveAll(_ context.Context, quotes []*entity.FreightQuote) error {
	rows := make([][]string, 0, len(quotes))
	for _, q := range quotes {
		rows = append(rows, []string{
			q.ID.String(),
			q.CreatedAt.Format(DateTimeLayout),
			q.Client,
			q.Origin,
			q.Destination,
			q.DistanceKm.String(),
			q.WeightKg.String(),
			q.CargoType,
			strconv.Itoa(q.DeadlineDays),
			q.Value.StringFixed(2),
			string(q.Status),
			q.Notes,
		})
	}
	if err := WriteTable(s.path, QuoteHeader, rows); err != nil {
		return fmt.Errorf("failed to write quotes: %w", err)
	}
	return nil
}
