// Package email provides email sending functionality.
package email

import (
	"context"
	"fmt"
	"strconv"

	"github.com/freight-backoffice/backend/internal/application/adapter"
	"github.com/freight-backoffice/backend/internal/domain/entity"
	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
	"github.com/freight-backoffice/backend/internal/integration/email/templates"
)

// TemplatePickupScheduled is the template announcing a new pickup order.
const TemplatePickupScheduled = "pickup_scheduled"

// Service renders pickup notifications and hands them to the worker queue.
type Service struct {
	worker    *Worker
	renderer  *templates.Renderer
	recipient string
}

// NewService creates a new email service. recipient is the operations inbox.
func NewService(worker *Worker, renderer *templates.Renderer, recipient string) *Service {
	return &Service{
		worker:    worker,
		renderer:  renderer,
		recipient: recipient,
	}
}

// NotifyPickupScheduled queues the pickup scheduled email.
func (s *Service) NotifyPickupScheduled(_ context.Context, order *entity.PickupOrder) error {
	if s.recipient == "" {
		return domainerror.NewEmailError(
			domainerror.ErrCodeNotifierDisabled,
			"no pickup notification recipient configured",
			domainerror.ErrNotifierDisabled,
		)
	}

	html, text, err := s.renderer.Render(TemplatePickupScheduled, pickupData(order))
	if err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodePermanentEmailFailure,
			"failed to render pickup notification",
			err,
		)
	}

	subject := fmt.Sprintf("Coleta nº %d agendada para %s", order.Number, order.PickupDate.Format("02/01/2006"))
	if order.Urgent {
		subject = "[URGENTE] " + subject
	}

	job := &Job{
		Reference: "pickup-" + strconv.Itoa(order.Number),
		Email: adapter.SendEmailInput{
			To:      s.recipient,
			Subject: subject,
			HTML:    html,
			Text:    text,
		},
	}
	if err := s.worker.Enqueue(job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeTemporaryEmailFailure,
			"failed to queue pickup notification",
			err,
		)
	}
	return nil
}

func pickupData(order *entity.PickupOrder) templates.PickupScheduledData {
	return templates.PickupScheduledData{
		Number:        order.Number,
		PickupDate:    order.PickupDate.Format("02/01/2006"),
		WindowStart:   order.WindowStart,
		WindowEnd:     order.WindowEnd,
		SenderName:    order.Sender.Name,
		SenderAddress: order.Sender.Address,
		SenderCity:    order.Sender.City,
		SenderPhone:   order.Sender.Phone,
		ReceiverName:  order.Receiver.Name,
		ReceiverCity:  order.Receiver.City,
		GoodsType:     string(order.GoodsType),
		Volumes:       order.Volumes,
		WeightKg:      order.WeightKg.StringFixed(1),
		Urgent:        order.Urgent,
		Notes:         order.Notes,
	}
}

// Ensure Service implements adapter.PickupNotifier.
var _ adapter.PickupNotifier = (*Service)(nil)
