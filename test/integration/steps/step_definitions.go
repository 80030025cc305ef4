package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/freight-backoffice/backend/config"
	"github.com/freight-backoffice/backend/internal/integration/persistence/csvstore"
	"github.com/freight-backoffice/backend/test/integration/mock"
)

// datePlaceholder matches {{today}}, {{today-3}} and {{today_iso+1}}.
var datePlaceholder = regexp.MustCompile(`\{\{(today|today_iso)([+-]\d+)?\}\}`)

func (t *testContext) render(text string) string {
	return datePlaceholder.ReplaceAllStringFunc(text, func(match string) string {
		parts := datePlaceholder.FindStringSubmatch(match)
		offset := 0
		if parts[2] != "" {
			offset, _ = strconv.Atoi(parts[2])
		}
		day := t.timeMock.DaysFromToday(offset)
		if parts[1] == "today_iso" {
			return day.Format("2006-01-02")
		}
		return day.Format("02/01/2006")
	})
}

func (t *testContext) theAPIServerIsRunning() error {
	return t.startServer()
}

// Data file steps

func (t *testContext) writeDataFile(name string, content *godog.DocString) error {
	text := strings.TrimSpace(t.render(content.Content)) + "\n"
	return os.WriteFile(filepath.Join(t.dataDir, name), []byte(text), 0o644)
}

func (t *testContext) theFinancialLedgerContains(content *godog.DocString) error {
	return t.writeDataFile(config.Load().Storage.FinanceFile, content)
}

func (t *testContext) theShipmentLedgerContains(content *godog.DocString) error {
	if err := t.writeDataFile(config.Load().Storage.ShipmentFile, content); err != nil {
		return err
	}
	// A previous scenario may have left a decoded copy behind.
	return mock.ClearRedis(t.redis)
}

func (t *testContext) theInvoiceDocumentContains(content *godog.DocString) error {
	return t.writeDataFile(invoiceDocName, content)
}

func (t *testContext) theDataFileContains(name string, content *godog.DocString) error {
	return t.writeDataFile(name, content)
}

// Header and form steps

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) theFormFieldIs(key, value string) error {
	t.formFields[key] = value
	return nil
}

// Request steps

func (t *testContext) iSendARequestTo(method, endpoint string) error {
	return t.executeRequest(method, endpoint, nil, "")
}

func (t *testContext) iSendARequestToWithBody(method, endpoint string, body *godog.DocString) error {
	return t.executeRequest(method, endpoint, []byte(t.render(body.Content)), "application/json")
}

func (t *testContext) iUploadTheFileToWithContent(fileName, endpoint string, content *godog.DocString) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return err
	}
	if _, err := part.Write([]byte(t.render(content.Content))); err != nil {
		return err
	}
	for key, value := range t.formFields {
		if err := writer.WriteField(key, value); err != nil {
			return err
		}
	}
	if err := writer.Close(); err != nil {
		return err
	}

	return t.executeRequest(http.MethodPost, endpoint, body.Bytes(), writer.FormDataContentType())
}

func (t *testContext) executeRequest(method, endpoint string, body []byte, contentType string) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, t.uri+t.render(endpoint), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		t.response = &response{err: err}
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	var parsed any
	if len(raw) > 0 && strings.Contains(resp.Header.Get("Content-Type"), "json") {
		if err := json.Unmarshal(raw, &parsed); err != nil {
			t.response = &response{status: resp.StatusCode, header: resp.Header, raw: raw, err: err}
			return nil
		}
	}

	t.response = &response{status: resp.StatusCode, header: resp.Header, raw: raw, body: parsed}
	return nil
}

// Response assertion steps

func (t *testContext) theResponseStatusShouldBe(status int) error {
	if t.response == nil {
		return fmt.Errorf("no response received")
	}
	if t.response.status != status {
		return fmt.Errorf("expected status %d, got %d. Body: %s", status, t.response.status, string(t.response.raw))
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return fmt.Errorf("no response received")
	}
	if t.response.err != nil || t.response.body == nil {
		return fmt.Errorf("response is not valid JSON: %s", string(t.response.raw))
	}
	return nil
}

func (t *testContext) theResponseShouldContain(expected string) error {
	if t.response == nil {
		return fmt.Errorf("no response received")
	}
	if !strings.Contains(string(t.response.raw), t.render(expected)) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(t.response.raw))
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expected string) error {
	value, err := t.getFieldValue(field)
	if err != nil {
		return err
	}

	actual := formatValue(value)
	if actual != t.render(expected) {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expected, actual)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	_, err := t.getFieldValue(field)
	return err
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	value, err := t.getFieldValue(field)
	if err != nil {
		return err
	}

	rv := reflect.ValueOf(value)
	if value == nil {
		if count == 0 {
			return nil
		}
		return fmt.Errorf("field '%s' is null, expected %d items", field, count)
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Map {
		return fmt.Errorf("field '%s' is not a collection: %v", field, value)
	}
	if rv.Len() != count {
		return fmt.Errorf("field '%s' expected %d items, got %d. Body: %s", field, count, rv.Len(), string(t.response.raw))
	}
	return nil
}

func (t *testContext) theResponseHeaderShouldContain(header, expected string) error {
	if t.response == nil {
		return fmt.Errorf("no response received")
	}
	actual := t.response.header.Get(header)
	if !strings.Contains(actual, expected) {
		return fmt.Errorf("header '%s' expected to contain '%s', got '%s'", header, expected, actual)
	}
	return nil
}

// getFieldValue walks a dot-separated path. Numeric segments index into arrays.
func (t *testContext) getFieldValue(field string) (any, error) {
	if t.response == nil {
		return nil, fmt.Errorf("no response received")
	}
	if t.response.body == nil {
		return nil, fmt.Errorf("response has no JSON body: %s", string(t.response.raw))
	}

	current := t.response.body
	for _, key := range strings.Split(field, ".") {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[key]
			if !ok {
				return nil, fmt.Errorf("field '%s' not found in response. Body: %s", field, string(t.response.raw))
			}
			current = value
		case []any:
			index, err := strconv.Atoi(key)
			if err != nil || index < 0 || index >= len(node) {
				return nil, fmt.Errorf("index '%s' out of range in field '%s'", key, field)
			}
			current = node[index]
		default:
			return nil, fmt.Errorf("field '%s' cannot be traversed at '%s'", field, key)
		}
	}
	return current, nil
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Ledger and table assertion steps

func (t *testContext) theFinancialLedgerShouldContainTransactions(count int) error {
	store := csvstore.NewFinanceStore(filepath.Join(t.dataDir, config.Load().Storage.FinanceFile))
	transactions, _, err := store.Load(context.Background())
	if err != nil {
		return err
	}
	if len(transactions) != count {
		return fmt.Errorf("expected %d transactions in the financial ledger, got %d", count, len(transactions))
	}
	return nil
}

func (t *testContext) theDataFileShouldContain(name, expected string) error {
	content, err := os.ReadFile(filepath.Join(t.dataDir, name))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if !strings.Contains(string(content), t.render(expected)) {
		return fmt.Errorf("%s does not contain '%s':\n%s", name, expected, string(content))
	}
	return nil
}

func (t *testContext) theDataFileShouldExist(name string) error {
	matches, err := filepath.Glob(filepath.Join(t.dataDir, name))
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return fmt.Errorf("no file matching %s in the data directory", name)
	}
	return nil
}

// Database, cache and email assertion steps

func (t *testContext) theDbShouldContainObjectsInTheTable(count int, table string) error {
	actual, err := t.db.Count(table)
	if err != nil {
		return err
	}
	if actual != int64(count) {
		return fmt.Errorf("expected %d objects in %s, got %d", count, table, actual)
	}
	return nil
}

func (t *testContext) theShipmentCacheShouldContainEntries(count int) error {
	keys, err := mock.Keys(t.redis, "ledger:shipments:*")
	if err != nil {
		return err
	}
	if len(keys) != count {
		return fmt.Errorf("expected %d shipment cache entries, got %d (%v)", count, len(keys), keys)
	}
	return nil
}

// theEmailAPIShouldReceiveRequests polls since notifications are delivered by a background worker.
func (t *testContext) theEmailAPIShouldReceiveRequests(count int) error {
	deadline := time.Now().Add(3 * time.Second)
	for {
		actual := t.emailAPI.RequestCount("POST", emailsPath)
		if actual == count {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("expected %d email requests, got %d", count, actual)
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func (t *testContext) theEmailAPIRequestFieldShouldContain(index int, field, expected string) error {
	body := t.emailAPI.GetRequestBody("POST", emailsPath, index)
	if body == nil {
		return fmt.Errorf("email request %d not received", index)
	}
	value, ok := body[field]
	if !ok {
		return fmt.Errorf("email request %d has no field '%s'", index, field)
	}
	actual := fmt.Sprintf("%v", value)
	if !strings.Contains(actual, t.render(expected)) {
		return fmt.Errorf("email request %d field '%s' expected to contain '%s', got '%s'", index, field, expected, actual)
	}
	return nil
}

func (t *testContext) theEmailAPIRequestHeaderShouldContain(index int, header, expected string) error {
	headers := t.emailAPI.GetRequestHeaders("POST", emailsPath, index)
	if headers == nil {
		return fmt.Errorf("email request %d not received", index)
	}
	actual := headers[http.CanonicalHeaderKey(header)]
	if !strings.Contains(actual, expected) {
		return fmt.Errorf("email request %d header '%s' expected to contain '%s', got '%s'", index, header, expected, actual)
	}
	return nil
}
