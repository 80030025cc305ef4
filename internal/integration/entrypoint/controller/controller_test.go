package controller

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/freight-backoffice/backend/internal/application/usecase/contact"
	"github.com/freight-backoffice/backend/internal/application/usecase/invoice"
	"github.com/freight-backoffice/backend/internal/application/usecase/statement"
	domainerror "github.com/freight-backoffice/backend/internal/domain/error"
	"github.com/freight-backoffice/backend/internal/integration/entrypoint/dto"
	"github.com/freight-backoffice/backend/internal/integration/entrypoint/middleware"
	"github.com/freight-backoffice/backend/internal/integration/persistence/csvstore"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response %q: %v", w.Body.String(), err)
	}
	return resp
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "transaction not found",
			err:        domainerror.NewTransactionError(domainerror.ErrCodeTransactionNotFound, "not found", domainerror.ErrTransactionNotFound),
			wantStatus: http.StatusNotFound,
			wantCode:   string(domainerror.ErrCodeTransactionNotFound),
		},
		{
			name:       "already reconciled",
			err:        domainerror.NewTransactionError(domainerror.ErrCodeAlreadyReconciled, "reconciled", domainerror.ErrTransactionAlreadyReconciled),
			wantStatus: http.StatusConflict,
			wantCode:   string(domainerror.ErrCodeAlreadyReconciled),
		},
		{
			name:       "wrapped invalid import mode",
			err:        fmt.Errorf("import: %w", domainerror.NewTransactionError(domainerror.ErrCodeInvalidImportMode, "bad mode", domainerror.ErrInvalidImportMode)),
			wantStatus: http.StatusBadRequest,
			wantCode:   string(domainerror.ErrCodeInvalidImportMode),
		},
		{
			name:       "source unavailable",
			err:        domainerror.NewLedgerError(domainerror.ErrCodeSourceUnavailable, "down", domainerror.ErrSourceUnavailable),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   string(domainerror.ErrCodeSourceUnavailable),
		},
		{
			name:       "missing column",
			err:        domainerror.NewLedgerError(domainerror.ErrCodeMissingColumn, "missing", domainerror.ErrMissingColumn),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   string(domainerror.ErrCodeMissingColumn),
		},
		{
			name:       "ledger write failed",
			err:        domainerror.NewLedgerError(domainerror.ErrCodeLedgerWriteFailed, "write", domainerror.ErrLedgerWriteFailed),
			wantStatus: http.StatusInternalServerError,
			wantCode:   string(domainerror.ErrCodeLedgerWriteFailed),
		},
		{
			name:       "invoice not found",
			err:        domainerror.NewReconciliationError(domainerror.ErrCodeInvoiceNotFound, "missing", domainerror.ErrInvoiceNotFound),
			wantStatus: http.StatusNotFound,
			wantCode:   string(domainerror.ErrCodeInvoiceNotFound),
		},
		{
			name:       "unsupported document",
			err:        domainerror.NewReconciliationError(domainerror.ErrCodeUnsupportedDocument, "pdf", domainerror.ErrUnsupportedDocument),
			wantStatus: http.StatusUnsupportedMediaType,
			wantCode:   string(domainerror.ErrCodeUnsupportedDocument),
		},
		{
			name:       "advisor unavailable",
			err:        domainerror.NewClassificationError(domainerror.ErrCodeAdvisorUnavailable, "off", domainerror.ErrAdvisorUnavailable),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   string(domainerror.ErrCodeAdvisorUnavailable),
		},
		{
			name:       "contact not found",
			err:        domainerror.NewOperationsError(domainerror.ErrCodeContactNotFound, "missing", domainerror.ErrContactNotFound),
			wantStatus: http.StatusNotFound,
			wantCode:   string(domainerror.ErrCodeContactNotFound),
		},
		{
			name:       "invalid weight",
			err:        domainerror.NewOperationsError(domainerror.ErrCodeInvalidWeight, "weight", domainerror.ErrInvalidWeight),
			wantStatus: http.StatusBadRequest,
			wantCode:   string(domainerror.ErrCodeInvalidWeight),
		},
		{
			name:       "email failure",
			err:        domainerror.NewEmailError(domainerror.ErrCodePermanentEmailFailure, "rejected", domainerror.ErrPermanentEmailFailure),
			wantStatus: http.StatusBadGateway,
			wantCode:   string(domainerror.ErrCodePermanentEmailFailure),
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			handleError(c, tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			resp := decodeError(t, w)
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %q, got %q", tt.wantCode, resp.Code)
			}
			if tt.wantCode == "" && resp.Error != "An internal error occurred" {
				t.Errorf("expected generic message for unknown errors, got %q", resp.Error)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "", want: nil},
		{in: "Transporte", want: []string{"Transporte"}},
		{in: " Transporte , ,Viagem ", want: []string{"Transporte", "Viagem"}},
	}
	for _, tt := range tests {
		if got := splitList(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestHealthController_Check(t *testing.T) {
	up := func() bool { return true }
	down := func() bool { return false }

	tests := []struct {
		name         string
		db, cache    func() bool
		wantDatabase string
		wantCache    string
	}{
		{name: "no backends", wantDatabase: "disabled", wantCache: "disabled"},
		{name: "all connected", db: up, cache: up, wantDatabase: "connected", wantCache: "connected"},
		{name: "cache down", db: up, cache: down, wantDatabase: "connected", wantCache: "disconnected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/health", NewHealthController(tt.db, tt.cache).Check)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}
			var resp HealthResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Status != "ok" || resp.Database != tt.wantDatabase || resp.Cache != tt.wantCache {
				t.Errorf("unexpected health response %+v", resp)
			}
		})
	}
}

func TestStatementController_MissingFile(t *testing.T) {
	store := csvstore.NewFinanceStore(filepath.Join(t.TempDir(), "base_financeira.csv"))
	c := NewStatementController(
		statement.NewPreviewStatementUseCase(nil, nil, store),
		statement.NewImportStatementUseCase(nil, nil, store, store, nil),
	)

	r := gin.New()
	r.POST("/statements/preview", c.Preview)
	r.POST("/statements/import", c.Import)

	for _, path := range []string{"/statements/preview", "/statements/import"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, nil))

		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", path, w.Code)
		}
		if resp := decodeError(t, w); resp.Code != string(domainerror.ErrCodeMissingFile) {
			t.Errorf("%s: expected code %s, got %s", path, domainerror.ErrCodeMissingFile, resp.Code)
		}
	}
}

func TestInvoiceController_List(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "base.csv")
	content := strings.Join([]string{
		"Data de Emissão;Número;Nº Fatura;Pagador do Frete - Nome;Notas Fiscais;Remetente - Nome;Remetente - Cidade;Destinatário - Nome;Destinatário - Cidade;Soma dos Volumes;Soma das Notas;Soma dos Pesos;Valor do Frete",
		"01/07/2024;12345;900;ACME LTDA;NF 1;ACME LTDA;SAO PAULO;CLIENTE A;CAMPINAS;2;1.000,00;50,00;1.500,00",
		"20/07/2024;12400;901;BETA SA;NF 3;BETA SA;CURITIBA;CLIENTE C;JOINVILLE;4;2.000,00;80,00;750,00",
	}, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	shipments := csvstore.NewShipmentStore(path)
	c := NewInvoiceController(invoice.NewListInvoicesUseCase(shipments), invoice.NewGetInvoiceDetailUseCase(shipments))
	r := gin.New()
	r.GET("/invoices", c.List)
	r.GET("/invoices/:number", c.Detail)

	tests := []struct {
		name       string
		url        string
		wantStatus int
		wantCount  int
		wantCode   string
	}{
		{name: "all invoices", url: "/invoices", wantStatus: http.StatusOK, wantCount: 2},
		{name: "due from", url: "/invoices?due_from=2024-07-20", wantStatus: http.StatusOK, wantCount: 1},
		{name: "day first dates", url: "/invoices?due_to=15/07/2024", wantStatus: http.StatusOK, wantCount: 1},
		{name: "unreadable date", url: "/invoices?due_from=yesterday", wantStatus: http.StatusBadRequest, wantCode: string(domainerror.ErrCodeInvalidDateRange)},
		{name: "inverted range", url: "/invoices?due_from=2024-08-01&due_to=2024-07-01", wantStatus: http.StatusBadRequest, wantCode: string(domainerror.ErrCodeInvalidDateRange)},
		{name: "unknown format", url: "/invoices?format=pdf", wantStatus: http.StatusBadRequest, wantCode: string(domainerror.ErrCodeInvalidExportFormat)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.url, nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantCode != "" {
				if resp := decodeError(t, w); resp.Code != tt.wantCode {
					t.Errorf("expected code %s, got %s", tt.wantCode, resp.Code)
				}
				return
			}
			var resp dto.InvoiceListResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Count != tt.wantCount {
				t.Errorf("expected %d invoices, got %d", tt.wantCount, resp.Count)
			}
		})
	}

	t.Run("csv export", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/invoices?format=csv", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if !strings.Contains(w.Header().Get("Content-Disposition"), "attachment") {
			t.Errorf("expected an attachment, got %q", w.Header().Get("Content-Disposition"))
		}
	})

	t.Run("unknown invoice", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/invoices/999", nil))

		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", w.Code)
		}
	})
}

func TestContactController(t *testing.T) {
	store := csvstore.NewContactStore(filepath.Join(t.TempDir(), "contatos.csv"))
	c := NewContactController(
		contact.NewListContactsUseCase(store),
		contact.NewLookupContactUseCase(store),
		contact.NewCreateContactUseCase(store),
		contact.NewUpdateContactUseCase(store),
		contact.NewDeleteContactUseCase(store),
		contact.NewImportContactsUseCase(store, csvstore.Decoder{}),
	)

	r := gin.New()
	r.Use(middleware.Session())
	r.GET("/contacts", c.List)
	r.GET("/contacts/lookup", c.Lookup)
	r.POST("/contacts", c.Create)
	r.PUT("/contacts/:id", c.Update)
	r.DELETE("/contacts/:id", c.Delete)

	do := func(method, url string, body any) *httptest.ResponseRecorder {
		var payload []byte
		if body != nil {
			payload, _ = json.Marshal(body)
		}
		req := httptest.NewRequest(method, url, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := do(http.MethodPost, "/contacts", map[string]string{"name": "Maria Souza", "phone": "21 97777-0000"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created dto.ContactResponse
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.ID == "" || created.Complete {
		t.Errorf("expected an incomplete contact with an id, got %+v", created)
	}

	w = do(http.MethodPost, "/contacts", map[string]string{"name": "Maria", "phone": "1", "email": "not-an-email"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for an invalid email, got %d", w.Code)
	}

	w = do(http.MethodPut, "/contacts/"+created.ID, map[string]string{
		"name": "Maria Souza", "phone": "21 97777-0000", "email": "maria@example.com", "city": "RIO DE JANEIRO",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on update, got %d: %s", w.Code, w.Body.String())
	}

	w = do(http.MethodGet, "/contacts/lookup?name=maria%20souza", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on lookup, got %d", w.Code)
	}
	var found dto.LookupContactResponse
	if err := json.Unmarshal(w.Body.Bytes(), &found); err != nil {
		t.Fatal(err)
	}
	if found.MatchType != "exact" || !found.Contact.Complete {
		t.Errorf("unexpected lookup result %+v", found)
	}

	w = do(http.MethodDelete, "/contacts/"+created.ID, nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204 on delete, got %d", w.Code)
	}

	w = do(http.MethodDelete, "/contacts/"+created.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 on second delete, got %d", w.Code)
	}

	w = do(http.MethodGet, "/contacts", nil)
	var list dto.ContactListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if list.Count != 0 {
		t.Errorf("expected an empty phone book, got %d contacts", list.Count)
	}
}

func TestContactController_Import(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contatos.csv")
	if err := os.WriteFile(path, []byte("ID;Nome;Número;Email;Cidade;Observação\nc-1;Ana Lima;11 90000-0000;;SAO PAULO;\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	store := csvstore.NewContactStore(path)
	c := NewContactController(nil, nil, nil, nil, nil, contact.NewImportContactsUseCase(store, csvstore.Decoder{}))

	r := gin.New()
	r.Use(middleware.Session())
	r.POST("/contacts/import", c.Import)

	upload := func(content string, fields map[string]string) *httptest.ResponseRecorder {
		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		part, _ := writer.CreateFormFile("file", "contatos.csv")
		_, _ = part.Write([]byte(content))
		for key, value := range fields {
			_ = writer.WriteField(key, value)
		}
		_ = writer.Close()

		req := httptest.NewRequest(http.MethodPost, "/contacts/import", &body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	tests := []struct {
		name       string
		content    string
		fields     map[string]string
		wantStatus int
		wantCode   string
		wantAdded  int
	}{
		{
			name:       "mapped columns, existing contact skipped",
			content:    "Cliente;Telefone\nAna Lima;11 90000-0000\nBeto Reis;41 3000-0000\n",
			fields:     map[string]string{"columns[Nome]": "Cliente", "columns[Número]": "Telefone"},
			wantStatus: http.StatusCreated,
			wantAdded:  1,
		},
		{
			name:       "nothing new",
			content:    "Nome;Número\nAna Lima;11 90000-0000\n",
			wantStatus: http.StatusOK,
		},
		{
			name:       "mapping to an absent column",
			content:    "Nome;Número\nAna Lima;1\n",
			fields:     map[string]string{"columns[Cidade]": "Municipio"},
			wantStatus: http.StatusBadRequest,
			wantCode:   string(domainerror.ErrCodeContactImportColumns),
		},
		{
			name:       "unknown mode",
			content:    "Nome;Número\nAna Lima;1\n",
			fields:     map[string]string{"mode": "append_all"},
			wantStatus: http.StatusBadRequest,
			wantCode:   string(domainerror.ErrCodeContactImportMode),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := upload(tt.content, tt.fields)
			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantCode != "" {
				if resp := decodeError(t, w); resp.Code != tt.wantCode {
					t.Errorf("expected code %s, got %s", tt.wantCode, resp.Code)
				}
				return
			}
			var resp dto.ContactImportResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Added != tt.wantAdded {
				t.Errorf("expected %d added, got %+v", tt.wantAdded, resp)
			}
		})
	}
}
