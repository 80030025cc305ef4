// Package invoice groups shipment records into freight invoices.
package invoice

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/freight-backoffice/backend/internal/domain/entity"
)

// Aggregate groups shipments by invoice number in order of first appearance.
// Every shipment lands in exactly one group; an empty invoice number forms its own group.
func Aggregate(shipments []*entity.Shipment) []*entity.Invoice {
	invoices := make([]*entity.Invoice, 0)
	byNumber := make(map[string]*entity.Invoice)

	for _, s := range shipments {
		key := strings.TrimSpace(s.InvoiceNumber)
		inv, ok := byNumber[key]
		if !ok {
			inv = &entity.Invoice{InvoiceNumber: key, TotalFreight: decimal.Zero}
			byNumber[key] = inv
			invoices = append(invoices, inv)
		}

		if inv.PayerName == "" {
			inv.PayerName = strings.TrimSpace(s.PayerName)
		}
		if inv.PeriodBucket == "" {
			inv.PeriodBucket = s.PeriodBucket
		}
		inv.TotalFreight = inv.TotalFreight.Add(s.FreightValue)

		if n, err := strconv.Atoi(strings.TrimSpace(s.WaybillNumber)); err == nil && n > inv.ShipmentCountMarker {
			inv.ShipmentCountMarker = n
		}
	}

	return invoices
}
