// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/freight-backoffice/backend/internal/domain/entity"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

// ShipmentModel represents the shipments mirror table.
type ShipmentModel struct {
	ID            uint            `gorm:"primaryKey;autoIncrement"`
	WaybillNumber string          `gorm:"type:varchar(32);not null;index"`
	InvoiceNumber string          `gorm:"type:varchar(32);index"`
	PayerName     string          `gorm:"type:varchar(255)"`
	FreightValue  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	IssueDate     time.Time       `gorm:"type:date;not null;index"`
	InvoiceNotes  string          `gorm:"type:text"`
	SenderName    string          `gorm:"type:varchar(255)"`
	SenderCity    string          `gorm:"type:varchar(120)"`
	ReceiverName  string          `gorm:"type:varchar(255)"`
	ReceiverCity  string          `gorm:"type:varchar(120)"`
	VolumeCount   int             `gorm:"not null;default:0"`
	NotesTotal    decimal.Decimal `gorm:"type:decimal(15,2)"`
	WeightTotal   decimal.Decimal `gorm:"type:decimal(15,3)"`
	SyncedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ShipmentModel.
func (ShipmentModel) TableName() string {
	return "shipments"
}

// ToEntity converts a ShipmentModel to a domain Shipment entity.
// Due date and period bucket are derived from the issue date, as in the file ledger.
func (m *ShipmentModel) ToEntity() *entity.Shipment {
	issue := time.Date(m.IssueDate.Year(), m.IssueDate.Month(), m.IssueDate.Day(), 0, 0, 0, 0, time.UTC)
	return &entity.Shipment{
		WaybillNumber: m.WaybillNumber,
		InvoiceNumber: m.InvoiceNumber,
		PayerName:     m.PayerName,
		FreightValue:  m.FreightValue,
		IssueDate:     issue,
		DueDate:       valueobject.DueDate(issue),
		PeriodBucket:  valueobject.PeriodBucket(issue),
		InvoiceNotes:  m.InvoiceNotes,
		SenderName:    m.SenderName,
		SenderCity:    m.SenderCity,
		ReceiverName:  m.ReceiverName,
		ReceiverCity:  m.ReceiverCity,
		VolumeCount:   m.VolumeCount,
		NotesTotal:    m.NotesTotal,
		WeightTotal:   m.WeightTotal,
	}
}

// ShipmentFromEntity converts a domain Shipment entity to a ShipmentModel.
func ShipmentFromEntity(s *entity.Shipment, syncedAt time.Time) *ShipmentModel {
	return &ShipmentModel{
		WaybillNumber: s.WaybillNumber,
		InvoiceNumber: s.InvoiceNumber,
		PayerName:     s.PayerName,
		FreightValue:  s.FreightValue,
		IssueDate:     s.IssueDate,
		InvoiceNotes:  s.InvoiceNotes,
		SenderName:    s.SenderName,
		SenderCity:    s.SenderCity,
		ReceiverName:  s.ReceiverName,
		ReceiverCity:  s.ReceiverCity,
		VolumeCount:   s.VolumeCount,
		NotesTotal:    s.NotesTotal,
		WeightTotal:   s.WeightTotal,
		SyncedAt:      syncedAt,
	}
}
