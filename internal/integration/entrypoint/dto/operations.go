package dto

import (
	"time"

	"github.com/freight-backoffice/backend/internal/application/usecase/contact"
	"github.com/freight-backoffice/backend/internal/application/usecase/pickup"
	"github.com/freight-backoffice/backend/internal/application/usecase/quote"
	"github.com/freight-backoffice/backend/internal/domain/entity"
	"github.com/freight-backoffice/backend/internal/integration/export"
)

// CalculateQuoteRequest represents the request body for pricing a freight.
type CalculateQuoteRequest struct {
	Client       string  `json:"client"`
	Origin       string  `json:"origin"`
	Destination  string  `json:"destination"`
	DistanceKm   float64 `json:"distance_km"`
	WeightKg     float64 `json:"weight_kg"`
	CargoType    string  `json:"cargo_type,omitempty"`
	DeadlineDays int     `json:"deadline_days,omitempty"`
	Notes        string  `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// QuoteResponse represents a priced freight quote.
type QuoteResponse struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Client       string    `json:"client"`
	Origin       string    `json:"origin"`
	Destination  string    `json:"destination"`
	DistanceKm   string    `json:"distance_km"`
	WeightKg     string    `json:"weight_kg"`
	CargoType    string    `json:"cargo_type"`
	DeadlineDays int       `json:"deadline_days"`
	Value        string    `json:"value"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes,omitempty"`
}

// ToQuoteResponse converts a domain FreightQuote to a QuoteResponse DTO.
func ToQuoteResponse(q *entity.FreightQuote) QuoteResponse {
	return QuoteResponse{
		ID:           q.ID.String(),
		CreatedAt:    q.CreatedAt,
		Client:       q.Client,
		Origin:       q.Origin,
		Destination:  q.Destination,
		DistanceKm:   q.DistanceKm.String(),
		WeightKg:     q.WeightKg.String(),
		CargoType:    q.CargoType,
		DeadlineDays: q.DeadlineDays,
		Value:        money(q.Value),
		Status:       string(q.Status),
		Notes:        q.Notes,
	}
}

// CalculateQuoteResponse represents a calculated quote.
type CalculateQuoteResponse struct {
	Quote QuoteResponse `json:"quote"`
	Saved bool          `json:"saved"`
}

// QuoteListResponse represents the saved quote history.
type QuoteListResponse struct {
	Quotes       []QuoteResponse `json:"quotes"`
	Count        int             `json:"count"`
	AverageValue string          `json:"average_value"`
	TotalValue   string          `json:"total_value"`
	PendingCount int             `json:"pending_count"`
	Warnings     []string        `json:"warnings"`
}

// ToQuoteListResponse converts the list quotes use case output.
func ToQuoteListResponse(output *quote.ListQuotesOutput) QuoteListResponse {
	quotes := make([]QuoteResponse, len(output.Quotes))
	for i, q := range output.Quotes {
		quotes[i] = ToQuoteResponse(q)
	}
	return QuoteListResponse{
		Quotes:       quotes,
		Count:        output.Count,
		AverageValue: money(output.AverageValue),
		TotalValue:   money(output.TotalValue),
		PendingCount: output.PendingCount,
		Warnings:     Warnings(output.Report),
	}
}

// QuoteTable is the export table of the quote history.
func QuoteTable(quotes []*entity.FreightQuote) export.Table {
	rows := make([][]string, len(quotes))
	for i, q := range quotes {
		rows[i] = []string{
			q.CreatedAt.Format("2006-01-02 15:04"), q.Client, q.Origin, q.Destination,
			q.DistanceKm.String(), q.WeightKg.String(), q.CargoType, itoa(q.DeadlineDays),
			money(q.Value), string(q.Status), q.Notes,
		}
	}
	return export.Table{
		Name: "cotacoes",
		Header: []string{
			"Data", "Cliente", "Origem", "Destino", "Distância (km)", "Peso (kg)",
			"Tipo de Carga", "Prazo (dias)", "Valor Cotado (R$)", "Status", "Observações",
		},
		Rows: rows,
	}
}

// PickupPartyRequest represents the sender or receiver of a pickup.
type PickupPartyRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Phone   string `json:"phone"`
	Contact string `json:"contact,omitempty"`
}

// ToEntity converts the party to its domain form.
func (p PickupPartyRequest) ToEntity() entity.PickupParty {
	return entity.PickupParty{
		Name:    p.Name,
		Address: p.Address,
		City:    p.City,
		Phone:   p.Phone,
		Contact: p.Contact,
	}
}

// CreatePickupRequest represents the request body for scheduling a pickup.
type CreatePickupRequest struct {
	PickupDate  string             `json:"pickup_date" binding:"required"`
	WindowStart string             `json:"window_start,omitempty"`
	WindowEnd   string             `json:"window_end,omitempty"`
	Sender      PickupPartyRequest `json:"sender"`
	Receiver    PickupPartyRequest `json:"receiver"`
	GoodsType   string             `json:"goods_type,omitempty"`
	Volumes     int                `json:"volumes,omitempty"`
	WeightKg    float64            `json:"weight_kg,omitempty"`
	GoodsValue  float64            `json:"goods_value,omitempty"`
	Notes       string             `json:"notes,omitempty" binding:"omitempty,max=1000"`
	Urgent      bool               `json:"urgent,omitempty"`
}

// UpdatePickupStatusRequest represents the request body for a status change.
type UpdatePickupStatusRequest struct {
	Status  string `json:"status" binding:"required"`
	Driver  string `json:"driver,omitempty"`
	Vehicle string `json:"vehicle,omitempty"`
}

// PickupPartyResponse represents the sender or receiver of a pickup.
type PickupPartyResponse struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Phone   string `json:"phone"`
	Contact string `json:"contact,omitempty"`
}

// PickupResponse represents a pickup order.
type PickupResponse struct {
	Number      int                 `json:"number"`
	CreatedAt   time.Time           `json:"created_at"`
	PickupDate  string              `json:"pickup_date"`
	WindowStart string              `json:"window_start"`
	WindowEnd   string              `json:"window_end"`
	Sender      PickupPartyResponse `json:"sender"`
	Receiver    PickupPartyResponse `json:"receiver"`
	GoodsType   string              `json:"goods_type"`
	Volumes     int                 `json:"volumes"`
	WeightKg    string              `json:"weight_kg"`
	GoodsValue  string              `json:"goods_value"`
	Notes       string              `json:"notes,omitempty"`
	Urgent      bool                `json:"urgent"`
	Status      string              `json:"status"`
	Driver      string              `json:"driver,omitempty"`
	Vehicle     string              `json:"vehicle,omitempty"`
}

func toPartyResponse(p entity.PickupParty) PickupPartyResponse {
	return PickupPartyResponse{Name: p.Name, Address: p.Address, City: p.City, Phone: p.Phone, Contact: p.Contact}
}

// ToPickupResponse converts a domain PickupOrder to a PickupResponse DTO.
func ToPickupResponse(o *entity.PickupOrder) PickupResponse {
	return PickupResponse{
		Number:      o.Number,
		CreatedAt:   o.CreatedAt,
		PickupDate:  formatDate(o.PickupDate),
		WindowStart: o.WindowStart,
		WindowEnd:   o.WindowEnd,
		Sender:      toPartyResponse(o.Sender),
		Receiver:    toPartyResponse(o.Receiver),
		GoodsType:   string(o.GoodsType),
		Volumes:     o.Volumes,
		WeightKg:    o.WeightKg.String(),
		GoodsValue:  money(o.GoodsValue),
		Notes:       o.Notes,
		Urgent:      o.Urgent,
		Status:      string(o.Status),
		Driver:      o.Driver,
		Vehicle:     o.Vehicle,
	}
}

// PickupListResponse represents filtered pickup orders with per-status counts.
type PickupListResponse struct {
	Orders        []PickupResponse `json:"orders"`
	Count         int              `json:"count"`
	CountByStatus map[string]int   `json:"count_by_status"`
	TotalWeightKg string           `json:"total_weight_kg"`
	Warnings      []string         `json:"warnings"`
}

// ToPickupListResponse converts the list pickups use case output.
func ToPickupListResponse(output *pickup.ListPickupsOutput) PickupListResponse {
	orders := make([]PickupResponse, len(output.Orders))
	for i, o := range output.Orders {
		orders[i] = ToPickupResponse(o)
	}
	counts := make(map[string]int, len(output.CountByStatus))
	for status, n := range output.CountByStatus {
		counts[string(status)] = n
	}
	return PickupListResponse{
		Orders:        orders,
		Count:         len(orders),
		CountByStatus: counts,
		TotalWeightKg: output.TotalWeightKg.String(),
		Warnings:      Warnings(output.Report),
	}
}

// PickupTable is the export table of a pickup list.
func PickupTable(orders []*entity.PickupOrder) export.Table {
	rows := make([][]string, len(orders))
	for i, o := range orders {
		urgent := "Não"
		if o.Urgent {
			urgent = "Sim"
		}
		rows[i] = []string{
			itoa(o.Number), formatDate(o.PickupDate), o.WindowStart + "-" + o.WindowEnd,
			o.Sender.Name, o.Sender.City, o.Receiver.Name, o.Receiver.City,
			string(o.GoodsType), itoa(o.Volumes), o.WeightKg.String(), urgent,
			string(o.Status), o.Driver, o.Vehicle,
		}
	}
	return export.Table{
		Name: "coletas",
		Header: []string{
			"Número Coleta", "Data Coleta", "Horário", "Remetente Nome", "Remetente Cidade",
			"Destinatário Nome", "Destinatário Cidade", "Tipo Mercadoria", "Quantidade Volumes",
			"Peso Total (kg)", "Urgente", "Status", "Motorista", "Veículo",
		},
		Rows: rows,
	}
}

// ContactRequest represents the request body for creating or updating a contact.
type ContactRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty" binding:"omitempty,email"`
	City  string `json:"city,omitempty"`
	Note  string `json:"note,omitempty" binding:"omitempty,max=1000"`
}

// ContactResponse represents an address book entry.
type ContactResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	City     string `json:"city"`
	Note     string `json:"note,omitempty"`
	Complete bool   `json:"complete"`
}

// ToContactResponse converts a domain Contact to a ContactResponse DTO.
func ToContactResponse(c *entity.Contact) ContactResponse {
	return ContactResponse{
		ID:       c.ID,
		Name:     c.Name,
		Phone:    c.Phone,
		Email:    c.Email,
		City:     c.City,
		Note:     c.Note,
		Complete: c.IsComplete(),
	}
}

// ContactListResponse represents a filtered contact list.
type ContactListResponse struct {
	Contacts []ContactResponse `json:"contacts"`
	Count    int               `json:"count"`
	Warnings []string          `json:"warnings"`
}

// ToContactListResponse converts the list contacts use case output.
func ToContactListResponse(output *contact.ListContactsOutput) ContactListResponse {
	contacts := make([]ContactResponse, len(output.Contacts))
	for i, c := range output.Contacts {
		contacts[i] = ToContactResponse(c)
	}
	return ContactListResponse{
		Contacts: contacts,
		Count:    len(contacts),
		Warnings: Warnings(output.Report),
	}
}

// ContactTable is the export table of a contact list.
func ContactTable(contacts []*entity.Contact) export.Table {
	rows := make([][]string, len(contacts))
	for i, c := range contacts {
		rows[i] = []string{c.Name, c.Phone, c.Email, c.City, c.Note}
	}
	return export.Table{
		Name:   "contatos",
		Header: []string{"Nome", "Número", "Email", "Cidade", "Observação"},
		Rows:   rows,
	}
}

// LookupContactResponse represents the best match of an approximate name lookup.
type LookupContactResponse struct {
	Contact   ContactResponse `json:"contact"`
	MatchType string          `json:"match_type"`
}

// SyncResponse represents the rows mirrored into the database.
type SyncResponse struct {
	Shipments    int      `json:"shipments"`
	Transactions int      `json:"transactions"`
	Warnings     []string `json:"warnings"`
}

// ContactImportResponse represents the outcome of a contact file import.
type ContactImportResponse struct {
	Mode       string `json:"mode"`
	Read       int    `json:"read"`
	Added      int    `json:"added_count"`
	Duplicates int    `json:"duplicates"`
	Incomplete int    `json:"incomplete"`
	Total      int    `json:"total"`
	Written    bool   `json:"written"`
}

// ToContactImportResponse converts the import use case output.
func ToContactImportResponse(output *contact.ImportContactsOutput) ContactImportResponse {
	return ContactImportResponse{
		Mode:       string(output.Mode),
		Read:       output.Read,
		Added:      output.Added,
		Duplicates: output.Duplicates,
		Incomplete: output.Incomplete,
		Total:      output.Total,
		Written:    output.Written,
	}
}
