package email

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/freight-backoffice/backend/internal/domain/entity"
	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
	"github.com/freight-backoffice/backend/internal/integration/email/templates"
)

func newOrder() *entity.PickupOrder {
	return &entity.PickupOrder{
		Number:      1001,
		PickupDate:  time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC),
		WindowStart: "08:00",
		WindowEnd:   "12:00",
		Sender:      entity.PickupParty{Name: "Loja A", Address: "Rua 1", City: "Curitiba", Phone: "41 9999"},
		Receiver:    entity.PickupParty{Name: "Cliente B", Address: "Rua 2", City: "Joinville", Phone: "47 8888"},
		GoodsType:   entity.GoodsTypeElectronics,
		Volumes:     3,
		WeightKg:    decimal.NewFromFloat(12.5),
		Urgent:      true,
		Status:      entity.PickupStatusScheduled,
	}
}

func newTestService(t *testing.T, sender *MockEmailSender, recipient string) (*Service, *Worker) {
	t.Helper()
	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}
	worker := NewWorker(sender, WorkerConfig{QueueSize: 4, MaxAttempts: 3})
	return NewService(worker, renderer, recipient), worker
}

func TestService_NotifyPickupScheduled(t *testing.T) {
	sender := NewMockEmailSender()
	svc, worker := newTestService(t, sender, "operacoes@example.com")

	if err := svc.NotifyPickupScheduled(context.Background(), newOrder()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	worker.ProcessNow(context.Background())

	sent := sender.Sent()
	if len(sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sent))
	}
	got := sent[0]
	if got.To != "operacoes@example.com" {
		t.Errorf("unexpected recipient %s", got.To)
	}
	if got.Subject != "[URGENTE] Coleta nº 1001 agendada para 10/07/2024" {
		t.Errorf("unexpected subject %q", got.Subject)
	}
	for _, want := range []string{"Loja A", "Joinville", "12.5 kg", "08:00"} {
		if !strings.Contains(got.Text, want) {
			t.Errorf("text body does not contain %q", want)
		}
		if !strings.Contains(got.HTML, want) {
			t.Errorf("html body does not contain %q", want)
		}
	}
}

func TestService_NoRecipient(t *testing.T) {
	svc, _ := newTestService(t, NewMockEmailSender(), "")
	err := svc.NotifyPickupScheduled(context.Background(), newOrder())
	if !errors.Is(err, domainerror.ErrNotifierDisabled) {
		t.Errorf("expected ErrNotifierDisabled, got %v", err)
	}
}

func TestService_QueueFull(t *testing.T) {
	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}
	svc := NewService(NewWorker(NewMockEmailSender(), WorkerConfig{QueueSize: 0}), renderer, "ops@example.com")

	err = svc.NotifyPickupScheduled(context.Background(), newOrder())
	if !errors.Is(err, ErrQueueFull) {
		t.Errorf("expected ErrQueueFull, got %v", err)
	}
}

func TestWorker_Retries(t *testing.T) {
	tests := []struct {
		name         string
		permanent    bool
		wantAttempts int
	}{
		{"temporary failures are retried", false, 3},
		{"permanent failures are not retried", true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := NewMockEmailSender()
			sender.SetFailure(errors.New("boom"), tt.permanent)
			worker := NewWorker(sender, WorkerConfig{QueueSize: 1, MaxAttempts: 3})

			if err := worker.Enqueue(&Job{Reference: "pickup-1001"}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			worker.ProcessNow(context.Background())

			if sender.Attempts != tt.wantAttempts {
				t.Errorf("expected %d attempts, got %d", tt.wantAttempts, sender.Attempts)
			}
			if len(sender.Sent()) != 0 {
				t.Error("expected no email to be sent")
			}
		})
	}
}

func TestWorker_StartStopsOnCancel(t *testing.T) {
	sender := NewMockEmailSender()
	worker := NewWorker(sender, WorkerConfig{QueueSize: 1, MaxAttempts: 1})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	if err := worker.Enqueue(&Job{Reference: "pickup-1002"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for len(sender.Sent()) == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
	if len(sender.Sent()) != 1 {
		t.Errorf("expected 1 email, got %d", len(sender.Sent()))
	}
}

func TestNewResendClient_BaseURL(t *testing.T) {
	c, err := NewResendClient("re_test", "http://localhost:9999", "Operações", "ops@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.client.BaseURL.String() != "http://localhost:9999/" {
		t.Errorf("unexpected base url %s", c.client.BaseURL)
	}
	if _, err := NewResendClient("re_test", "://bad", "a", "b"); err == nil {
		t.Error("expected error for invalid base url")
	}
}
