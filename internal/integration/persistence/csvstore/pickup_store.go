package csvstore

import (
	"context"
	"fmt"
	"strconv"

	"github.com/freight-backoffice/backend/internal/domain/entity"
	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
	"github.com/freight-backoffice/backend/internal/domain/valueobject"
)

// PickupHeader is the column set of the pickup orders table.
var PickupHeader = []string{
	"Número Coleta", "Data Criação", "Data Coleta", "Horário Início", "Horário Fim",
	"Remetente Nome", "Remetente Endereço", "Remetente Cidade", "Remetente Telefone", "Remetente Contato",
	"Destinatário Nome", "Destinatário Endereço", "Destinatário Cidade", "Destinatário Telefone", "Destinatário Contato",
	"Tipo Mercadoria", "Quantidade Volumes", "Peso Total (kg)", "Valor Mercadoria (R$)", "Observações",
	"Urgente", "Status", "Motorista", "Veículo",
}

// PickupStore implements adapter.PickupRepository.
type PickupStore struct {
	path string
}

// NewPickupStore creates a new PickupStore.
func NewPickupStore(path string) *PickupStore {
	return &PickupStore{path: path}
}

// List reads every pickup order. Rows without a numeric order number are dropped.
func (s *PickupStore) List(_ context.Context) ([]*entity.PickupOrder, *valueobject.LoadReport, error) {
	report := valueobject.NewLoadReport()

	table, err := ReadTable(s.path)
	if err != nil {
		if IsMissing(err) {
			return []*entity.PickupOrder{}, report, nil
		}
		return nil, nil, domainerror.NewLedgerError(domainerror.ErrCodeLedgerReadFailed, "failed to read pickup orders", err)
	}

	orders := make([]*entity.PickupOrder, 0, len(table.Rows))
	bad := 0
	for _, row := range table.Rows {
		report.RowsRead++

		number, err := strconv.Atoi(table.Get(row, "Número Coleta"))
		if err != nil {
			bad++
			continue
		}
		created, _ := ParseDateTime(table.Get(row, "Data Criação"))
		pickupDate, _ := ParseDate(table.Get(row, "Data Coleta"))
		volumes, _ := ParseCount(table.Get(row, "Quantidade Volumes"))
		weight, _ := ParseAmountOrZero(table.Get(row, "Peso Total (kg)"))
		value, _ := ParseAmountOrZero(table.Get(row, "Valor Mercadoria (R$)"))

		orders = append(orders, &entity.PickupOrder{
			Number:      number,
			CreatedAt:   created,
			PickupDate:  pickupDate,
			WindowStart: table.Get(row, "Horário Início"),
			WindowEnd:   table.Get(row, "Horário Fim"),
			Sender: entity.PickupParty{
				Name:    table.Get(row, "Remetente Nome"),
				Address: table.Get(row, "Remetente Endereço"),
				City:    table.Get(row, "Remetente Cidade"),
				Phone:   table.Get(row, "Remetente Telefone"),
				Contact: table.Get(row, "Remetente Contato"),
			},
			Receiver: entity.PickupParty{
				Name:    table.Get(row, "Destinatário Nome"),
				Address: table.Get(row, "Destinatário Endereço"),
				City:    table.Get(row, "Destinatário Cidade"),
				Phone:   table.Get(row, "Destinatário Telefone"),
				Contact: table.Get(row, "Destinatário Contato"),
			},
			GoodsType:  entity.GoodsType(table.Get(row, "Tipo Mercadoria")),
			Volumes:    volumes,
			WeightKg:   weight,
			GoodsValue: value,
			Notes:      table.Get(row, "Observações"),
			Urgent:     ParseBool(table.Get(row, "Urgente")),
			Status:     entity.PickupStatus(table.Get(row, "Status")),
			Driver:     table.Get(row, "Motorista"),
			Vehicle:    table.Get(row, "Veículo"),
		})
	}
	report.Malformed(bad, "pickup rows dropped, unreadable order number")

	return orders, report, nil
}

// SaveAll replaces the pickup orders table.
func (s *PickupStore) SaveAll(_ context.Context, orders []*entity.PickupOrder) error {
	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []string{
			strconv.Itoa(o.Number),
			o.CreatedAt.Format(DateTimeLayout),
			FormatDate(o.PickupDate),
			o.WindowStart,
			o.WindowEnd,
			o.Sender.Name, o.Sender.Address, o.Sender.City, o.Sender.Phone, o.Sender.Contact,
			o.Receiver.Name, o.Receiver.Address, o.Receiver.City, o.Receiver.Phone, o.Receiver.Contact,
			string(o.GoodsType),
			strconv.Itoa(o.Volumes),
			o.WeightKg.String(),
			o.GoodsValue.StringFixed(2),
			o.Notes,
			FormatBool(o.Urgent),
			string(o.Status),
			o.Driver,
			o.Vehicle,
		})
	}
	if err := WriteTable(s.path, PickupHeader, rows); err != nil {
		return fmt.Errorf("failed to write pickup orders: %w", err)
	}
	return nil
}
