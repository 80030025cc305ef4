package dto

import (
	"github.com/freight-backoffice/backend/internal/application/usecase/invoice"
	"github.com/freight-backoffice/backend/internal/application/usecase/shipment"
	"github.com/freight-backoffice/backend/internal/domain/entity"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
	"github.com/freight-backoffice/backend/internal/integration/export"
)

// ShipmentResponse represents one waybill of the shipment ledger.
type ShipmentResponse struct {
	WaybillNumber string `json:"waybill_number"`
	InvoiceNumber string `json:"invoice_number"`
	PayerName     string `json:"payer_name"`
	FreightValue  string `json:"freight_value"`
	IssueDate     string `json:"issue_date"`
	DueDate       string `json:"due_date"`
	PeriodBucket  string `json:"period_bucket"`
	InvoiceNotes  string `json:"invoice_notes"`
	SenderName    string `json:"sender_name"`
	SenderCity    string `json:"sender_city"`
	ReceiverName  string `json:"receiver_name"`
	ReceiverCity  string `json:"receiver_city"`
	VolumeCount   int    `json:"volume_count"`
	NotesTotal    string `json:"notes_total"`
	WeightTotal   string `json:"weight_total"`
}

// ToShipmentResponses converts shipments.
func ToShipmentResponses(shipments []*entity.Shipment) []ShipmentResponse {
	out := make([]ShipmentResponse, len(shipments))
	for i, s := range shipments {
		out[i] = ShipmentResponse{
			WaybillNumber: s.WaybillNumber,
			InvoiceNumber: s.InvoiceNumber,
			PayerName:     s.PayerName,
			FreightValue:  money(s.FreightValue),
			IssueDate:     formatDate(s.IssueDate),
			DueDate:       formatDate(s.DueDate),
			PeriodBucket:  s.PeriodBucket,
			InvoiceNotes:  s.InvoiceNotes,
			SenderName:    s.SenderName,
			SenderCity:    s.SenderCity,
			ReceiverName:  s.ReceiverName,
			ReceiverCity:  s.ReceiverCity,
			VolumeCount:   s.VolumeCount,
			NotesTotal:    money(s.NotesTotal),
			WeightTotal:   s.WeightTotal.String(),
		}
	}
	return out
}

// ShipmentTable is the export table of a shipment search.
func ShipmentTable(shipments []*entity.Shipment) export.Table {
	rows := make([][]string, len(shipments))
	for i, s := range shipments {
		rows[i] = []string{
			s.WaybillNumber, formatDate(s.IssueDate), s.InvoiceNumber, s.PayerName,
			s.SenderName, s.SenderCity, s.ReceiverName, s.ReceiverCity,
			itoa(s.VolumeCount), s.InvoiceNotes, money(s.FreightValue), formatDate(s.DueDate),
		}
	}
	return export.Table{
		Name: "minutas",
		Header: []string{
			"Número", "Data de Emissão", "Nº Fatura", "Pagador do Frete - Nome",
			"Remetente - Nome", "Remetente - Cidade", "Destinatário - Nome", "Destinatário - Cidade",
			"Soma dos Volumes", "Notas Fiscais", "Valor do frete", "Vencimento",
		},
		Rows: rows,
	}
}

// ShipmentSearchResponse represents the shipments matching a query.
type ShipmentSearchResponse struct {
	Shipments []ShipmentResponse `json:"shipments"`
	Count     int                `json:"count"`
	Warnings  []string           `json:"warnings"`
}

// ToShipmentSearchResponse converts the search use case output.
func ToShipmentSearchResponse(output *shipment.SearchShipmentsOutput) ShipmentSearchResponse {
	return ShipmentSearchResponse{
		Shipments: ToShipmentResponses(output.Shipments),
		Count:     len(output.Shipments),
		Warnings:  Warnings(output.Report),
	}
}

// MonthlyFreightResponse represents the freight of one month.
type MonthlyFreightResponse struct {
	Month   string `json:"month"`
	Freight string `json:"freight"`
}

// YearlyAverageResponse represents the mean freight of one year.
type YearlyAverageResponse struct {
	Year    int    `json:"year"`
	Average string `json:"average"`
	Count   int    `json:"count"`
}

// CityFreightResponse represents the freight delivered to one city.
type CityFreightResponse struct {
	City    string `json:"city"`
	Freight string `json:"freight"`
}

// DashboardResponse represents the shipment dashboard.
type DashboardResponse struct {
	TotalFreight  string                   `json:"total_freight"`
	TotalVolumes  int                      `json:"total_volumes"`
	ShipmentCount int                      `json:"shipment_count"`
	ByMonth       []MonthlyFreightResponse `json:"by_month"`
	AverageByYear []YearlyAverageResponse  `json:"average_by_year"`
	ByDestination []CityFreightResponse    `json:"by_destination"`
	Warnings      []string                 `json:"warnings"`
}

// ToDashboardResponse converts the dashboard use case output.
func ToDashboardResponse(output *shipment.GetDashboardOutput) DashboardResponse {
	byMonth := make([]MonthlyFreightResponse, len(output.ByMonth))
	for i, m := range output.ByMonth {
		byMonth[i] = MonthlyFreightResponse{Month: m.Month, Freight: money(m.Freight)}
	}
	byYear := make([]YearlyAverageResponse, len(output.AverageByYear))
	for i, y := range output.AverageByYear {
		byYear[i] = YearlyAverageResponse{Year: y.Year, Average: money(y.Average), Count: y.Count}
	}
	byCity := make([]CityFreightResponse, len(output.ByDestination))
	for i, c := range output.ByDestination {
		byCity[i] = CityFreightResponse{City: c.City, Freight: money(c.Freight)}
	}
	return DashboardResponse{
		TotalFreight:  money(output.TotalFreight),
		TotalVolumes:  output.TotalVolumes,
		ShipmentCount: output.ShipmentCount,
		ByMonth:       byMonth,
		AverageByYear: byYear,
		ByDestination: byCity,
		Warnings:      Warnings(output.Report),
	}
}

// RefreshLedgerResponse represents the result of dropping the cached ledger.
type RefreshLedgerResponse struct {
	Invalidated bool `json:"invalidated"`
}

// InvoiceResponse represents one derived invoice.
type InvoiceResponse struct {
	InvoiceNumber       string `json:"invoice_number"`
	PayerName           string `json:"payer_name"`
	TotalFreight        string `json:"total_freight"`
	ShipmentCountMarker int    `json:"shipment_count_marker"`
	PeriodBucket        string `json:"period_bucket"`
}

// ToInvoiceResponse converts a derived invoice.
func ToInvoiceResponse(inv *entity.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceNumber:       inv.InvoiceNumber,
		PayerName:           inv.PayerName,
		TotalFreight:        money(inv.TotalFreight),
		ShipmentCountMarker: inv.ShipmentCountMarker,
		PeriodBucket:        inv.PeriodBucket,
	}
}

// InvoiceListResponse represents the invoices of a due-date range.
type InvoiceListResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
	Count    int               `json:"count"`
	Warnings []string          `json:"warnings"`
}

// ToInvoiceListResponse converts the list invoices use case output.
func ToInvoiceListResponse(output *invoice.ListInvoicesOutput) InvoiceListResponse {
	invoices := make([]InvoiceResponse, len(output.Invoices))
	for i, inv := range output.Invoices {
		invoices[i] = ToInvoiceResponse(inv)
	}
	return InvoiceListResponse{
		Invoices: invoices,
		Count:    len(invoices),
		Warnings: Warnings(output.Report),
	}
}

// InvoiceTable is the export table of an invoice list.
func InvoiceTable(invoices []*entity.Invoice) export.Table {
	rows := make([][]string, len(invoices))
	for i, inv := range invoices {
		rows[i] = []string{inv.InvoiceNumber, inv.PayerName, money(inv.TotalFreight), itoa(inv.ShipmentCountMarker), inv.PeriodBucket}
	}
	return export.Table{
		Name:   "faturas",
		Header: []string{"Nº Fatura", "Pagador do Frete - Nome", "Valor do frete", "Número", "Período"},
		Rows:   rows,
	}
}

// InvoiceShipmentResponse represents one waybill in an invoice drill-down.
type InvoiceShipmentResponse struct {
	WaybillNumber string `json:"waybill_number"`
	SenderName    string `json:"sender_name"`
	ReceiverName  string `json:"receiver_name"`
	VolumeCount   int    `json:"volume_count"`
	InvoiceNotes  string `json:"invoice_notes"`
	FreightValue  string `json:"freight_value"`
	DueDate       string `json:"due_date"`
}

// InvoiceDetailResponse represents an invoice with its waybills.
type InvoiceDetailResponse struct {
	Invoice   InvoiceResponse           `json:"invoice"`
	Shipments []InvoiceShipmentResponse `json:"shipments"`
	Warnings  []string                  `json:"warnings"`
}

// ToInvoiceDetailResponse converts the invoice detail use case output.
func ToInvoiceDetailResponse(output *invoice.GetInvoiceDetailOutput) InvoiceDetailResponse {
	shipments := make([]InvoiceShipmentResponse, len(output.Shipments))
	for i, s := range output.Shipments {
		shipments[i] = InvoiceShipmentResponse{
			WaybillNumber: s.WaybillNumber,
			SenderName:    s.SenderName,
			ReceiverName:  s.ReceiverName,
			VolumeCount:   s.VolumeCount,
			InvoiceNotes:  s.InvoiceNotes,
			FreightValue:  money(s.FreightValue),
			DueDate:       formatDate(s.DueDate),
		}
	}
	return InvoiceDetailResponse{
		Invoice:   ToInvoiceResponse(output.Invoice),
		Shipments: shipments,
		Warnings:  Warnings(output.Report),
	}
}

// InvoiceDetailTable is the export table of an invoice drill-down.
func InvoiceDetailTable(output *invoice.GetInvoiceDetailOutput) export.Table {
	rows := make([][]string, len(output.Shipments))
	for i, s := range output.Shipments {
		rows[i] = []string{
			s.WaybillNumber, s.SenderName, s.ReceiverName, itoa(s.VolumeCount),
			s.InvoiceNotes, money(s.FreightValue), formatDate(s.DueDate),
		}
	}
	return export.Table{
		Name: "fatura_" + output.Invoice.InvoiceNumber,
		Header: []string{
			"Número", "Remetente - Nome", "Destinatário - Nome", "Soma dos Volumes",
			"Notas Fiscais", "Valor do frete", "Vencimento",
		},
		Rows: rows,
	}
}

// DueDateRange builds the due-date filter from optional parsed bounds.
func DueDateRange(from, to *string) (valueobject.DateRange, error) {
	var r valueobject.DateRange
	if from != nil {
		t, err := ParseDate(*from)
		if err != nil {
			return r, err
		}
		r.From = &t
	}
	if to != nil {
		t, err := ParseDate(*to)
		if err != nil {
			return r, err
		}
		r.To = &t
	}
	return r, nil
}
