// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/freight-backoffice/backend/config"
	"github.com/freight-backoffice/backend/internal/infra/dependency"
	"github.com/freight-backoffice/backend/internal/integration/persistence/model"
	"github.com/freight-backoffice/backend/test/integration/mock"
)

const (
	rulesFile      = "../../config/classification_rules.yaml"
	invoiceDocName = "fatura.txt"
	emailsPath     = "/emails"
	pickupNotifyTo = "operacoes@example.com"
)

type testContext struct {
	uri        string
	headers    map[string]string
	formFields map[string]string
	client     *http.Client
	response   *response
	db         *mock.Db
	redis      *redis.Client
	emailAPI   *mock.ApiMock
	timeMock   *mock.Time
	dataDir    string
}

type response struct {
	status int
	header http.Header
	raw    []byte
	body   any
	err    error
}

var serverInit sync.Once
var suiteInit sync.Once
var testDB *mock.Db
var testEmailAPI *mock.ApiMock
var testDataDir string
var testServerPort int

func initializeSuite() {
	suiteInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("SERVER_PORT", strconv.Itoa(testServerPort))
		_ = os.Setenv("ENV", "test")

		dir, err := os.MkdirTemp("", "freight-backoffice-it-")
		if err != nil {
			panic(err)
		}
		testDataDir = dir

		testEmailAPI = mock.NewApiServer()
		testEmailAPI.Start()
	})
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		initializeSuite()
	})

	ctx.AfterSuite(func() {
		if testDataDir != "" {
			_ = os.RemoveAll(testDataDir)
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	initializeSuite()

	test := &testContext{
		uri:      fmt.Sprintf("http://localhost:%d", testServerPort),
		client:   &http.Client{Timeout: 10 * time.Second},
		timeMock: mock.NewTime(),
		redis:    mock.NewRedis(),
		emailAPI: testEmailAPI,
		dataDir:  testDataDir,
		db: mock.NewDb("freight_backoffice", map[string]any{
			"shipments":           &model.ShipmentModel{},
			"ledger_transactions": &model.TransactionModel{},
		}),
	}

	testDB = test.db

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// Data file steps
	ctx.Given(`^the financial ledger contains:$`, test.theFinancialLedgerContains)
	ctx.Given(`^the shipment ledger contains:$`, test.theShipmentLedgerContains)
	ctx.Given(`^the invoice document contains:$`, test.theInvoiceDocumentContains)
	ctx.Given(`^the data file "([^"]*)" contains:$`, test.theDataFileContains)

	// Header and form steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)
	ctx.Given(`^the form field "([^"]*)" is "([^"]*)"$`, test.theFormFieldIs)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^I upload the file "([^"]*)" to "([^"]*)" with content:$`, test.iUploadTheFileToWithContent)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)
	ctx.Then(`^the response header "([^"]*)" should contain "([^"]*)"$`, test.theResponseHeaderShouldContain)

	// Ledger and table assertion steps
	ctx.Then(`^the financial ledger should contain (\d+) transactions?$`, test.theFinancialLedgerShouldContainTransactions)
	ctx.Then(`^the data file "([^"]*)" should contain "([^"]*)"$`, test.theDataFileShouldContain)
	ctx.Then(`^the data file "([^"]*)" should exist$`, test.theDataFileShouldExist)

	// Database, cache and email assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the shipment cache should contain (\d+) entr(?:y|ies)$`, test.theShipmentCacheShouldContainEntries)
	ctx.Then(`^the email API should receive (\d+) requests?$`, test.theEmailAPIShouldReceiveRequests)
	ctx.Then(`^the email API request (\d+) field "([^"]*)" should contain "([^"]*)"$`, test.theEmailAPIRequestFieldShouldContain)
	ctx.Then(`^the email API request (\d+) header "([^"]*)" should contain "([^"]*)"$`, test.theEmailAPIRequestHeaderShouldContain)
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.formFields = make(map[string]string)
	t.response = nil
	t.timeMock = mock.NewTime()

	if t.db != nil {
		if err := t.db.ClearDB(); err != nil {
			return err
		}
	}
	if err := mock.ClearRedis(t.redis); err != nil {
		return err
	}

	t.emailAPI.ClearResponses("POST", emailsPath)
	t.emailAPI.SetResponse(-1, "POST", emailsPath, http.StatusOK, map[string]any{"id": "email-test-id"})

	entries, err := os.ReadDir(t.dataDir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(t.dataDir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// testConfig points every backend of the application at the suite's fakes.
func (t *testContext) testConfig() *config.Config {
	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.Server.Port = testServerPort

	cfg.Database.Enabled = true
	cfg.Database.LedgerSource = config.LedgerSourceCSV

	cfg.Redis.Enabled = true
	cfg.Redis.URL = mock.RedisURL()
	cfg.Redis.Password = ""
	cfg.Redis.TTL = time.Minute

	cfg.Storage.DataDir = t.dataDir
	cfg.Storage.BackupBucket = ""
	cfg.Storage.BackupDir = filepath.Join(t.dataDir, "backups")

	cfg.Classifier.RulesFile = rulesFile
	cfg.Reconciliation.InvoiceDocumentPath = filepath.Join(t.dataDir, invoiceDocName)
	cfg.Gemini.APIKey = ""

	cfg.Email.ResendAPIKey = "re_test_key"
	cfg.Email.ResendBaseURL = t.emailAPI.GetUrl()
	cfg.Email.PickupNotifyTo = pickupNotifyTo
	cfg.Email.NotifyOnPickup = true

	return cfg
}

func (t *testContext) startServer() error {
	var startErr error
	serverInit.Do(func() {
		cfg := t.testConfig()

		injector, err := dependency.NewInjector(context.Background(), cfg, testDB.DbConn, func() bool {
			return testDB != nil && testDB.DbConn != nil
		})
		if err != nil {
			startErr = fmt.Errorf("failed to wire application: %w", err)
			return
		}
		if injector.EmailWorker != nil {
			go injector.EmailWorker.Start(context.Background())
		}

		engine := injector.Router.Setup(cfg.Server.Environment)
		server := &http.Server{
			Addr:    fmt.Sprintf(":%d", testServerPort),
			Handler: engine,
		}

		go func() {
			_ = server.ListenAndServe()
		}()
	})
	if startErr != nil {
		return startErr
	}

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("server did not become ready on port %d", testServerPort)
}
