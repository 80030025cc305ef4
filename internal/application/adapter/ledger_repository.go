// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/freight-backoffice/backend/internal/domain/entity"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

// TransactionLedger defines the persistence contract of the financial ledger.
// Load returns every row, malformed ones included with their original cell text, plus a
// report of what could not be read. Save replaces the whole ledger.
type TransactionLedger interface {
	Load(ctx context.Context) ([]*entity.Transaction, *valueobject.LoadReport, error)
	Save(ctx context.Context, transactions []*entity.Transaction) error
}

// ShipmentLedger defines read access to the shipment ledger.
type ShipmentLedger interface {
	Load(ctx context.Context) ([]*entity.Shipment, *valueobject.LoadReport, error)
}

// LedgerInvalidator is implemented by ledgers that keep a cached copy.
type LedgerInvalidator interface {
	Invalidate(ctx context.Context) error
}

// PickupRepository defines persistence of pickup orders.
type PickupRepository interface {
	List(ctx context.Context) ([]*entity.PickupOrder, *valueobject.LoadReport, error)
	SaveAll(ctx context.Context, orders []*entity.PickupOrder) error
}

// ContactRepository defines persistence of the address book.
type ContactRepository interface {
	List(ctx context.Context) ([]*entity.Contact, *valueobject.LoadReport, error)
	SaveAll(ctx context.Context, contacts []*entity.Contact) error
}

// QuoteRepository defines persistence of saved freight quotes.
type QuoteRepository interface {
	List(ctx context.Context) ([]*entity.FreightQuote, *valueobject.LoadReport, error)
	SaveAll(ctx context.Context, quotes []*entity.FreightQuote) error
}

// SQLMirror copies ledgers into the SQL database, replacing previous contents.
type SQLMirror interface {
	MirrorShipments(ctx context.Context, shipments []*entity.Shipment) (int, error)
	MirrorTransactions(ctx context.Context, transactions []*entity.Transaction) (int, error)
}
