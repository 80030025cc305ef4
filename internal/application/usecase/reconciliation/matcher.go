// Package reconciliation contains manual and automatic reconciliation use cases.
package reconciliation

import (
	"strings"

	"github.com/freight-backoffice/backend/internal/domain/entity"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

// ReconcileDocuments left-joins document lines against shipments by waybill number.
// A line with no shipment yields a NotFound record; a line matching several shipments
// yields one record per match. The status is decided on the exact delta and the
// reported delta is rounded to two decimal places.
func ReconcileDocuments(lines []valueobject.DocumentLine, shipments []*entity.Shipment) ([]valueobject.ReconciliationRecord, valueobject.ReconciliationSummary) {
	byWaybill := make(map[string][]*entity.Shipment, len(shipments))
	for _, s := range shipments {
		key := strings.TrimSpace(s.WaybillNumber)
		byWaybill[key] = append(byWaybill[key], s)
	}

	records := make([]valueobject.ReconciliationRecord, 0, len(lines))
	var summary valueobject.ReconciliationSummary

	for _, line := range lines {
		matches := byWaybill[strings.TrimSpace(line.DocumentNumber)]
		if len(matches) == 0 {
			records = append(records, valueobject.ReconciliationRecord{
				DocumentNumber: line.DocumentNumber,
				DocumentDate:   line.Date,
				InvoiceValue:   line.Value,
				Status:         valueobject.StatusNotFound,
			})
			summary.Add(valueobject.StatusNotFound)
			continue
		}

		for _, shipment := range matches {
			ledgerValue := shipment.FreightValue
			delta := line.Value.Sub(ledgerValue)
			status := valueobject.StatusForDelta(delta)
			rounded := delta.Round(2)

			records = append(records, valueobject.ReconciliationRecord{
				DocumentNumber: line.DocumentNumber,
				DocumentDate:   line.Date,
				InvoiceValue:   line.Value,
				LedgerValue:    &ledgerValue,
				Delta:          &rounded,
				Status:         status,
			})
			summary.Add(status)
		}
	}

	return records, summary
}
