package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PickupStatus represents the lifecycle state of a pickup order.
type PickupStatus string

const (
	PickupStatusScheduled  PickupStatus = "Agendada"
	PickupStatusInProgress PickupStatus = "Em Andamento"
	PickupStatusCompleted  PickupStatus = "Concluída"
	PickupStatusCancelled  PickupStatus = "Cancelada"
)

// IsValid checks if the pickup status is one of the known values.
func (s PickupStatus) IsValid() bool {
	switch s {
	case PickupStatusScheduled, PickupStatusInProgress, PickupStatusCompleted, PickupStatusCancelled:
		return true
	}
	return false
}

// GoodsType is the kind of merchandise collected.
type GoodsType string

const (
	GoodsTypeDocuments    GoodsType = "Documentos"
	GoodsTypeElectronics  GoodsType = "Eletrônicos"
	GoodsTypeClothing     GoodsType = "Roupas"
	GoodsTypeFood         GoodsType = "Alimentos"
	GoodsTypeConstruction GoodsType = "Materiais de Construção"
	GoodsTypeOther        GoodsType = "Outros"
)

// IsValid checks if the goods type is one of the known values.
func (g GoodsType) IsValid() bool {
	switch g {
	case GoodsTypeDocuments, GoodsTypeElectronics, GoodsTypeClothing,
		GoodsTypeFood, GoodsTypeConstruction, GoodsTypeOther:
		return true
	}
	return false
}

// FirstPickupNumber is the number assigned when the pickup table is empty.
const FirstPickupNumber = 1001

// PickupParty is the sender or receiver side of a pickup order.
type PickupParty struct {
	Name    string
	Address string
	City    string
	Phone   string
	Contact string
}

// IsComplete reports whether name, address, city and phone are all filled.
func (p PickupParty) IsComplete() bool {
	return strings.TrimSpace(p.Name) != "" &&
		strings.TrimSpace(p.Address) != "" &&
		strings.TrimSpace(p.City) != "" &&
		strings.TrimSpace(p.Phone) != ""
}

// PickupOrder represents a scheduled freight pickup.
type PickupOrder struct {
	Number      int
	CreatedAt   time.Time
	PickupDate  time.Time
	WindowStart string // HH:MM
	WindowEnd   string // HH:MM
	Sender      PickupParty
	Receiver    PickupParty
	GoodsType   GoodsType
	Volumes     int
	WeightKg    decimal.Decimal
	GoodsValue  decimal.Decimal
	Notes       string
	Urgent      bool
	Status      PickupStatus
	Driver      string
	Vehicle     string
}

// NextPickupNumber returns the number following the highest existing one.
func NextPickupNumber(orders []*PickupOrder) int {
	highest := 0
	for _, o := range orders {
		if o.Number > highest {
			highest = o.Number
		}
	}
	if highest == 0 {
		return FirstPickupNumber
	}
	return highest + 1
}
