package csvstore

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/freight-backoffice/backend/internal/domain/entity"
	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

// Shipment ledger columns.
const (
	ColIssueDate    = "Data de Emissão"
	ColWaybill      = "Número"
	ColInvoice      = "Nº Fatura"
	ColPayer        = "Pagador do Frete - Nome"
	ColInvoiceNotes = "Notas Fiscais"
	ColSenderName   = "Remetente - Nome"
	ColSenderCity   = "Remetente - Cidade"
	ColReceiverName = "Destinatário - Nome"
	ColReceiverCity = "Destinatário - Cidade"
	ColVolumes      = "Soma dos Volumes"
	ColNotesTotal   = "Soma das Notas"
	ColWeights      = "Soma dos Pesos"
)

var shipmentColumns = []string{
	ColIssueDate, ColWaybill, ColInvoice, ColPayer, ColInvoiceNotes,
	ColSenderName, ColSenderCity, ColReceiverName, ColReceiverCity,
	ColVolumes, ColNotesTotal, ColWeights,
}

// ShipmentStore implements adapter.ShipmentLedger over the shipment ledger file.
type ShipmentStore struct {
	path string
}

// NewShipmentStore creates a new ShipmentStore.
func NewShipmentStore(path string) *ShipmentStore {
	return &ShipmentStore{path: path}
}

// Load reads the shipment ledger. It never fails on content: a missing file is reported as
// SourceUnavailable, absent columns as MissingColumn and unreadable cells as MalformedRecord.
func (s *ShipmentStore) Load(_ context.Context) ([]*entity.Shipment, *valueobject.LoadReport, error) {
	report := valueobject.NewLoadReport()

	table, err := ReadTable(s.path)
	if err != nil {
		if IsMissing(err) {
			report.SourceUnavailable("shipment ledger %s not found", s.path)
			slog.Warn("Shipment ledger not found", "path", s.path)
			return []*entity.Shipment{}, report, nil
		}
		return nil, nil, domainerror.NewLedgerError(
			domainerror.ErrCodeLedgerReadFailed,
			"failed to read shipment ledger",
			err,
		)
	}

	shipments, parseReport := ParseShipments(table)
	report.Merge(parseReport)
	if len(report.Warnings) > 0 {
		slog.Warn("Shipment ledger loaded with warnings", "path", s.path, "warnings", report.Messages())
	}
	return shipments, report, nil
}

// FreightColumn locates the freight value column: a label containing "valor do frete",
// or failing that one containing both "frete" and "valor".
func FreightColumn(table *Table) (string, bool) {
	fold := cases.Fold()
	if col, ok := table.FindColumn(func(label string) bool {
		return strings.Contains(fold.String(label), "valor do frete")
	}); ok {
		return col, true
	}
	return table.FindColumn(func(label string) bool {
		l := fold.String(label)
		return strings.Contains(l, "frete") && strings.Contains(l, "valor")
	})
}

// ParseShipments maps a decoded table onto shipment records.
func ParseShipments(table *Table) ([]*entity.Shipment, *valueobject.LoadReport) {
	report := valueobject.NewLoadReport()

	for _, col := range shipmentColumns {
		if !table.Has(col) {
			report.MissingColumn(col)
		}
	}
	freightCol, hasFreight := FreightColumn(table)
	if !hasFreight {
		report.MissingColumn("Valor do Frete")
	}

	shipments := make([]*entity.Shipment, 0, len(table.Rows))
	badDates, badFreight, badNumbers := 0, 0, 0

	for _, row := range table.Rows {
		report.RowsRead++

		issue, err := ParseDate(table.Get(row, ColIssueDate))
		if err != nil {
			badDates++
			continue
		}

		freight := decimal.Zero
		if hasFreight {
			if v, ok := ParseAmountOrZero(table.Get(row, freightCol)); ok {
				freight = v
			} else {
				badFreight++
			}
		}

		volumes, okVolumes := ParseCount(table.Get(row, ColVolumes))
		notesTotal, okNotes := ParseAmountOrZero(table.Get(row, ColNotesTotal))
		weights, okWeights := ParseAmountOrZero(table.Get(row, ColWeights))
		if !okVolumes || !okNotes || !okWeights {
			badNumbers++
		}

		shipments = append(shipments, &entity.Shipment{
			WaybillNumber: table.Get(row, ColWaybill),
			InvoiceNumber: table.Get(row, ColInvoice),
			PayerName:     table.Get(row, ColPayer),
			FreightValue:  freight,
			IssueDate:     issue,
			DueDate:       valueobject.DueDate(issue),
			PeriodBucket:  valueobject.PeriodBucket(issue),
			InvoiceNotes:  table.Get(row, ColInvoiceNotes),
			SenderName:    table.Get(row, ColSenderName),
			SenderCity:    table.Get(row, ColSenderCity),
			ReceiverName:  table.Get(row, ColReceiverName),
			ReceiverCity:  table.Get(row, ColReceiverCity),
			VolumeCount:   volumes,
			NotesTotal:    notesTotal,
			WeightTotal:   weights,
		})
	}

	report.Malformed(badDates, "shipment rows dropped, unreadable issue date")
	report.Malformed(badFreight, "freight values unreadable, set to zero")
	report.Malformed(badNumbers, "volume or weight cells unreadable, set to zero")

	return shipments, report
}
