package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/freight-backoffice/backend/internal/domain/entity"
)

// TransactionModel represents the financial ledger mirror table.
// Legacy rows without an external id are mirrored too, so the id is not unique here.
type TransactionModel struct {
	ID                  uint            `gorm:"primaryKey;autoIncrement"`
	ExternalID          string          `gorm:"type:varchar(64);index"`
	Date                time.Time       `gorm:"type:date;not null;index"`
	Description         string          `gorm:"type:varchar(255)"`
	Amount              decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Type                string          `gorm:"type:varchar(10);not null"`
	Category            string          `gorm:"type:varchar(100);index"`
	CostCenter          string          `gorm:"type:varchar(100)"`
	Department          string          `gorm:"type:varchar(100)"`
	ReconciledReference string          `gorm:"type:varchar(100)"`
	SyncedAt            time.Time       `gorm:"not null"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "ledger_transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	tx := entity.NewTransaction(m.ExternalID, m.Date, m.Amount, m.Description, "")
	tx.Type = entity.TransactionType(m.Type)
	tx.ApplyClassification(m.Category, m.CostCenter, m.Department)
	tx.ReconciledReference = m.ReconciledReference
	return tx
}

// TransactionFromEntity converts a domain Transaction entity to a TransactionModel.
func TransactionFromEntity(t *entity.Transaction, syncedAt time.Time) *TransactionModel {
	return &TransactionModel{
		ExternalID:          t.ExternalID,
		Date:                t.Date,
		Description:         t.Description,
		Amount:              t.Amount,
		Type:                string(t.Type),
		Category:            t.Category,
		CostCenter:          t.CostCenter,
		Department:          t.Department,
		ReconciledReference: t.ReconciledReference,
		SyncedAt:            syncedAt,
	}
}
