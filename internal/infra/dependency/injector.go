// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/freight-backoffice/backend/config"
	"github.com/freight-backoffice/backend/internal/application/adapter"
	"github.com/freight-backoffice/backend/internal/application/usecase/classification"
	"github.com/freight-backoffice/backend/internal/application/usecase/contact"
	"github.com/freight-backoffice/backend/internal/application/usecase/finance"
	"github.com/freight-backoffice/backend/internal/application/usecase/invoice"
	"github.com/freight-backoffice/backend/internal/application/usecase/pickup"
	"github.com/freight-backoffice/backend/internal/application/usecase/quote"
	"github.com/freight-backoffice/backend/internal/application/usecase/reconciliation"
	"github.com/freight-backoffice/backend/internal/application/usecase/shipment"
	"github.com/freight-backoffice/backend/internal/application/usecase/statement"
	"github.com/freight-backoffice/backend/internal/application/usecase/sync"
	"github.com/freight-backoffice/backend/internal/infra/server/router"
	"github.com/freight-backoffice/backend/internal/integration/adapters"
	"github.com/freight-backoffice/backend/internal/integration/cache"
	"github.com/freight-backoffice/backend/internal/integration/document"
	"github.com/freight-backoffice/backend/internal/integration/email"
	"github.com/freight-backoffice/backend/internal/integration/email/templates"
	"github.com/freight-backoffice/backend/internal/integration/entrypoint/controller"
	"github.com/freight-backoffice/backend/internal/integration/entrypoint/middleware"
	"github.com/freight-backoffice/backend/internal/integration/persistence"
	"github.com/freight-backoffice/backend/internal/integration/persistence/csvstore"
	ofx "github.com/freight-backoffice/backend/internal/integration/statement"
	"github.com/freight-backoffice/backend/internal/integration/storage"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Redis       *redis.Client
	EmailWorker *email.Worker
	RateLimiter *middleware.RateLimiter
	Router      *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
// db may be nil, in which case the ledgers are served from the CSV files only.
func NewInjector(ctx context.Context, cfg *config.Config, db *gorm.DB, dbHealthChecker func() bool) (*Injector, error) {
	// Flat-file stores
	financeStore := csvstore.NewFinanceStore(cfg.Storage.FinancePath())
	shipmentStore := csvstore.NewShipmentStore(cfg.Storage.ShipmentPath())
	pickupStore := csvstore.NewPickupStore(cfg.Storage.PickupPath())
	contactStore := csvstore.NewContactStore(cfg.Storage.ContactPath())
	quoteStore := csvstore.NewQuoteStore(cfg.Storage.QuotePath())

	// Shipment ledger: database when selected, CSV fallback, Redis copy on top
	var shipments adapter.ShipmentLedger = shipmentStore
	source := string(config.LedgerSourceCSV)
	var mirror adapter.SQLMirror
	if db != nil {
		mirror = persistence.NewSQLMirror(db)
		if cfg.Database.LedgerSource == config.LedgerSourceDatabase {
			source = string(config.LedgerSourceDatabase)
			shipments = persistence.NewShipmentRepository(db)
			if cfg.Database.FallbackToCSV {
				shipments = persistence.NewFallbackShipmentLedger(shipments, shipmentStore)
			}
		}
	}

	var redisClient *redis.Client
	var invalidator adapter.LedgerInvalidator
	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			slog.Warn("Redis unavailable, shipment ledger will not be cached", "error", err)
		} else {
			redisClient = client
			shipmentCache := cache.NewShipmentCache(shipments, client, source, cfg.Redis.TTL)
			shipments = shipmentCache
			invalidator = shipmentCache
		}
	}

	// Backups
	var backups adapter.BlobStorage
	if cfg.Storage.BackupBucket != "" {
		backups = storage.NewGCSStorage(cfg.Storage.BackupBucket, "backups/")
	} else if cfg.Storage.BackupDir != "" {
		backups = storage.NewLocalStorage(cfg.Storage.BackupDir)
	}

	// Classification
	rules, err := config.LoadRuleTable(cfg.Classifier.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load classification rules: %w", err)
	}
	classifier := classification.NewClassifier(rules)
	normalizer := statement.NewNormalizer(classifier)

	var advisor adapter.ClassificationAdvisor = adapters.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)

	// Pricing
	pricing, err := config.LoadPricingTable(cfg.Quote)
	if err != nil {
		return nil, fmt.Errorf("failed to load pricing table: %w", err)
	}

	// Email notifications
	var emailWorker *email.Worker
	var notifier adapter.PickupNotifier
	if cfg.Email.NotifyOnPickup && cfg.Email.ResendAPIKey != "" {
		sender, err := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.ResendBaseURL, cfg.Email.FromName, cfg.Email.FromEmail)
		if err != nil {
			return nil, fmt.Errorf("failed to create email client: %w", err)
		}
		renderer, err := templates.NewRenderer()
		if err != nil {
			return nil, fmt.Errorf("failed to load email templates: %w", err)
		}
		emailWorker = email.NewWorker(sender, email.DefaultWorkerConfig())
		notifier = email.NewService(emailWorker, renderer, cfg.Email.PickupNotifyTo)
	}

	// Create statement use cases
	previewStatementUseCase := statement.NewPreviewStatementUseCase(ofx.NewOFXParser(), normalizer, financeStore)
	importStatementUseCase := statement.NewImportStatementUseCase(ofx.NewOFXParser(), normalizer, financeStore, financeStore, backups)

	// Create finance use cases
	listTransactionsUseCase := finance.NewListTransactionsUseCase(financeStore)
	getSummaryUseCase := finance.NewGetSummaryUseCase(financeStore)
	listPendingUseCase := finance.NewListPendingClassificationUseCase(financeStore)
	updateClassificationUseCase := finance.NewUpdateClassificationUseCase(financeStore)

	// Create classification use cases
	listRulesUseCase := classification.NewListRulesUseCase(classifier)
	testKeywordUseCase := classification.NewTestKeywordUseCase(financeStore)
	suggestUseCase := classification.NewSuggestClassificationsUseCase(financeStore, advisor, classifier)

	// Create reconciliation use cases
	var documents adapter.DocumentStore
	if cfg.Reconciliation.InvoiceDocumentPath != "" {
		documents = document.NewFileDocumentStore(cfg.Reconciliation.InvoiceDocumentPath)
	}
	listUnreconciledUseCase := reconciliation.NewListUnreconciledUseCase(financeStore)
	manualLinkUseCase := reconciliation.NewManualLinkUseCase(financeStore)
	reconcileInvoicesUseCase := reconciliation.NewReconcileInvoicesUseCase(document.NewExtractor(), documents, shipments, financeStore)

	// Create shipment and invoice use cases
	listInvoicesUseCase := invoice.NewListInvoicesUseCase(shipments)
	invoiceDetailUseCase := invoice.NewGetInvoiceDetailUseCase(shipments)
	searchShipmentsUseCase := shipment.NewSearchShipmentsUseCase(shipments)
	dashboardUseCase := shipment.NewGetDashboardUseCase(shipments)
	refreshLedgerUseCase := shipment.NewRefreshLedgerUseCase(invalidator)

	// Create operations use cases
	calculateQuoteUseCase := quote.NewCalculateQuoteUseCase(pricing, quoteStore)
	listQuotesUseCase := quote.NewListQuotesUseCase(quoteStore)
	createPickupUseCase := pickup.NewCreatePickupUseCase(pickupStore, notifier)
	listPickupsUseCase := pickup.NewListPickupsUseCase(pickupStore)
	updatePickupStatusUseCase := pickup.NewUpdatePickupStatusUseCase(pickupStore)
	listContactsUseCase := contact.NewListContactsUseCase(contactStore)
	lookupContactUseCase := contact.NewLookupContactUseCase(contactStore)
	createContactUseCase := contact.NewCreateContactUseCase(contactStore)
	updateContactUseCase := contact.NewUpdateContactUseCase(contactStore)
	deleteContactUseCase := contact.NewDeleteContactUseCase(contactStore)
	importContactsUseCase := contact.NewImportContactsUseCase(contactStore, csvstore.Decoder{})

	syncDatabaseUseCase := sync.NewSyncDatabaseUseCase(shipments, financeStore, mirror, invalidator)

	// Create controllers
	var cacheHealthChecker func() bool
	if redisClient != nil {
		cacheHealthChecker = func() bool {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(pingCtx).Err() == nil
		}
	}

	controllers := router.Controllers{
		Health: controller.NewHealthController(dbHealthChecker, cacheHealthChecker),
		Statement: controller.NewStatementController(
			previewStatementUseCase,
			importStatementUseCase,
		),
		Transaction: controller.NewTransactionController(
			listTransactionsUseCase,
			getSummaryUseCase,
			listPendingUseCase,
			updateClassificationUseCase,
			suggestUseCase,
		),
		Classification: controller.NewClassificationController(
			listRulesUseCase,
			testKeywordUseCase,
		),
		Reconciliation: controller.NewReconciliationController(
			listUnreconciledUseCase,
			manualLinkUseCase,
			reconcileInvoicesUseCase,
		),
		Invoice: controller.NewInvoiceController(
			listInvoicesUseCase,
			invoiceDetailUseCase,
		),
		Shipment: controller.NewShipmentController(
			searchShipmentsUseCase,
			dashboardUseCase,
			refreshLedgerUseCase,
		),
		Quote: controller.NewQuoteController(
			calculateQuoteUseCase,
			listQuotesUseCase,
		),
		Pickup: controller.NewPickupController(
			createPickupUseCase,
			listPickupsUseCase,
			updatePickupStatusUseCase,
		),
		Contact: controller.NewContactController(
			listContactsUseCase,
			lookupContactUseCase,
			createContactUseCase,
			updateContactUseCase,
			deleteContactUseCase,
			importContactsUseCase,
		),
		Sync: controller.NewSyncController(syncDatabaseUseCase),
	}

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var writeRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		writeRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		writeRateLimiter = middleware.NewRateLimiter()
	}

	return &Injector{
		Config:      cfg,
		DB:          db,
		Redis:       redisClient,
		EmailWorker: emailWorker,
		RateLimiter: writeRateLimiter,
		Router:      router.NewRouter(controllers, writeRateLimiter),
	}, nil
}

// Close releases the connections opened by the injector.
func (i *Injector) Close() {
	if i.Redis != nil {
		if err := i.Redis.Close(); err != nil {
			slog.Error("Failed to close redis connection", "error", err)
		}
	}
}
