package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Shipment represents one waybill row of the shipment ledger.
type Shipment struct {
	WaybillNumber string // Número
	InvoiceNumber string // Nº Fatura
	PayerName     string // Empty when the source cell was null
	FreightValue  decimal.Decimal
	IssueDate     time.Time
	DueDate       time.Time
	PeriodBucket  string
	InvoiceNotes  string // Notas Fiscais
	SenderName    string
	SenderCity    string
	ReceiverName  string
	ReceiverCity  string
	VolumeCount   int
	NotesTotal    decimal.Decimal // Soma das Notas
	WeightTotal   decimal.Decimal // Soma dos Pesos
}

// Invoice is a freight invoice derived by grouping shipments by invoice number.
// It is recomputed on demand and never persisted.
type Invoice struct {
	InvoiceNumber       string
	PayerName           string
	TotalFreight        decimal.Decimal
	ShipmentCountMarker int
	PeriodBucket        string
}
