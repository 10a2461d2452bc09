package repositories

// Integration tests run against a throwaway PostgreSQL database:
//
//	TEST_DATABASE_URL=postgres://postgres@localhost:5432/workshop_test go test ./internal/repositories/
//
// Without TEST_DATABASE_URL the tests skip.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"workshop-backend/internal/apperrors"
	"workshop-backend/internal/models"
)

var (
	testPoolOnce sync.Once
	sharedPool   *pgxpool.Pool
)

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	testPoolOnce.Do(func() {
		pool, err := pgxpool.New(context.Background(), url)
		if err != nil {
			t.Fatalf("connect: %v", err)
		}
		if err := applyMigrations(pool); err != nil {
			t.Fatalf("migrations: %v", err)
		}
		sharedPool = pool
	})
	if sharedPool == nil {
		t.Fatal("test pool not initialized")
	}

	resetTables(t, sharedPool)
	return sharedPool
}

func applyMigrations(pool *pgxpool.Pool) error {
	ctx := context.Background()

	var migrated bool
	err := pool.QueryRow(ctx, "SELECT to_regclass('public.inventory_items') IS NOT NULL").Scan(&migrated)
	if err != nil {
		return err
	}
	if migrated {
		return nil
	}

	dir := filepath.Join("..", "..", "migrations")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	var files []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	for _, name := range files {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		if _, err := pool.Exec(ctx, string(content)); err != nil {
			return err
		}
	}
	return nil
}

func resetTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `
		TRUNCATE payments, invoices, pos_sale_items, pos_sales, daily_usages,
			job_manual_entries, job_parts, job_services, job_cards,
			stock_movements, inventory_items, services, service_categories,
			categories, vehicles, customers, users, document_counters
		RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}
}

func seedUser(t *testing.T, pool *pgxpool.Pool) int {
	t.Helper()
	repo := NewUserRepository(pool)
	u := &models.User{
		Name:         "Test Mechanic",
		Email:        "mechanic@example.com",
		PasswordHash: "x",
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u.ID
}

func seedCustomerVehicle(t *testing.T, pool *pgxpool.Pool) (customerID, vehicleID int) {
	t.Helper()
	ctx := context.Background()
	c := &models.Customer{Name: "Ali Hassan", Phone: "7771234"}
	if err := NewCustomerRepository(pool).Create(ctx, c); err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	v := &models.Vehicle{CustomerID: c.ID, VehicleNo: "P1234", Make: "Toyota", Model: "Vitz"}
	if err := NewVehicleRepository(pool).Create(ctx, v); err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}
	return c.ID, v.ID
}

func seedItem(t *testing.T, pool *pgxpool.Pool, userID, stock int) *models.InventoryItem {
	t.Helper()
	item := &models.InventoryItem{
		SKU:          "FLT-001",
		Name:         "Oil Filter",
		CostPrice:    decimal.RequireFromString("25.00"),
		SellingPrice: decimal.RequireFromString("45.00"),
		CurrentStock: stock,
		ReorderLevel: 2,
		Unit:         "pcs",
	}
	if err := NewInventoryItemRepository(pool).Create(context.Background(), item, userID); err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return item
}

func seedService(t *testing.T, pool *pgxpool.Pool) *models.Service {
	t.Helper()
	svc := &models.Service{
		Name:      "Oil Change",
		BasePrice: decimal.RequireFromString("150.00"),
		IsActive:  true,
	}
	if err := NewServiceRepository(pool).Create(context.Background(), svc); err != nil {
		t.Fatalf("seed service: %v", err)
	}
	return svc
}

func readyJobCard(t *testing.T, pool *pgxpool.Pool, userID int) *models.JobCard {
	t.Helper()
	ctx := context.Background()
	customerID, vehicleID := seedCustomerVehicle(t, pool)
	repo := NewJobCardRepository(pool)

	card, err := repo.Create(ctx, &models.CreateJobCardRequest{CustomerID: customerID, VehicleID: vehicleID})
	if err != nil {
		t.Fatalf("create job card: %v", err)
	}

	svc := seedService(t, pool)
	_, err = repo.AddService(ctx, card.ID, &models.AddJobServiceRequest{
		ServiceID: svc.ID, Quantity: 1, UnitPrice: svc.BasePrice,
	})
	if err != nil {
		t.Fatalf("add service: %v", err)
	}

	card, err = repo.UpdateStatus(ctx, card.ID, models.JobStatusReady)
	if err != nil {
		t.Fatalf("mark ready: %v", err)
	}
	return card
}

func TestStockLedger_SumMatchesCurrentStock(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	userID := seedUser(t, pool)
	itemRepo := NewInventoryItemRepository(pool)
	movementRepo := NewStockMovementRepository(pool)

	item := seedItem(t, pool, userID, 10)

	// Opening quantity lands as an adjustment, not a purchase.
	opening, err := movementRepo.List(ctx, StockMovementFilter{ItemID: item.ID})
	if err != nil {
		t.Fatalf("list movements: %v", err)
	}
	if len(opening) != 1 {
		t.Fatalf("got %d movements after create, want 1", len(opening))
	}
	if opening[0].Type != models.MovementAdjustment {
		t.Errorf("opening movement type = %q, want %q", opening[0].Type, models.MovementAdjustment)
	}
	if opening[0].Reference != "Initial Stock" {
		t.Errorf("opening movement reference = %q, want %q", opening[0].Reference, "Initial Stock")
	}

	cost := decimal.RequireFromString("24.00")
	item2, err := itemRepo.ReceiveStock(ctx, item.ID, &models.AddStockRequest{Quantity: 5, CostPrice: &cost}, userID)
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if item2.CurrentStock != 15 {
		t.Fatalf("stock after receive = %d, want 15", item2.CurrentStock)
	}

	item3, err := itemRepo.AdjustStock(ctx, item.ID, &models.AdjustStockRequest{Quantity: 12, Notes: "stocktake"}, userID)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if item3.CurrentStock != 12 {
		t.Fatalf("stock after adjust = %d, want 12", item3.CurrentStock)
	}

	_, err = NewDailyUsageRepository(pool).Create(ctx, &models.CreateDailyUsageRequest{
		InventoryItemID: item.ID, Quantity: 2, Reason: "shop_floor",
	}, userID)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}

	sum, err := movementRepo.LedgerSum(ctx, item.ID)
	if err != nil {
		t.Fatalf("ledger sum: %v", err)
	}
	final, err := itemRepo.Get(ctx, item.ID)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if sum != final.CurrentStock {
		t.Fatalf("ledger sum %d != current stock %d", sum, final.CurrentStock)
	}
	if final.CurrentStock != 10 {
		t.Fatalf("final stock = %d, want 10", final.CurrentStock)
	}
}

func TestStockDebit_NeverOverdraws(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	userID := seedUser(t, pool)
	item := seedItem(t, pool, userID, 3)

	_, err := NewPosSaleRepository(pool).Create(ctx, &models.CreateSaleRequest{
		Items: []models.SaleItemRequest{
			{InventoryItemID: item.ID, Quantity: 5, UnitPrice: item.SellingPrice},
		},
		PaymentMethod: models.PaymentMethodCash,
		PaidAmount:    decimal.RequireFromString("500.00"),
	}, userID)

	var stockErr *apperrors.InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if stockErr.Available != 3 {
		t.Fatalf("Available = %d, want 3", stockErr.Available)
	}

	// The failed checkout must leave no trace.
	after, err := NewInventoryItemRepository(pool).Get(ctx, item.ID)
	if err != nil {
		t.Fatalf("get item: %v", err)
	}
	if after.CurrentStock != 3 {
		t.Fatalf("stock after failed sale = %d, want 3", after.CurrentStock)
	}
	var sales int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM pos_sales").Scan(&sales); err != nil {
		t.Fatal(err)
	}
	if sales != 0 {
		t.Fatalf("found %d pos_sales rows after failed checkout", sales)
	}
}

func TestJobCardParts_AddAndRemoveRoundTrip(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	userID := seedUser(t, pool)
	customerID, vehicleID := seedCustomerVehicle(t, pool)
	item := seedItem(t, pool, userID, 10)

	repo := NewJobCardRepository(pool)
	itemRepo := NewInventoryItemRepository(pool)

	card, err := repo.Create(ctx, &models.CreateJobCardRequest{CustomerID: customerID, VehicleID: vehicleID})
	if err != nil {
		t.Fatalf("create job card: %v", err)
	}

	part, err := repo.AddPart(ctx, card.ID, &models.AddJobPartRequest{
		InventoryItemID: item.ID, Quantity: 4, UnitPrice: item.SellingPrice,
	}, userID)
	if err != nil {
		t.Fatalf("add part: %v", err)
	}

	after, _ := itemRepo.Get(ctx, item.ID)
	if after.CurrentStock != 6 {
		t.Fatalf("stock after part add = %d, want 6", after.CurrentStock)
	}

	detail, err := repo.GetDetail(ctx, card.ID)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if want := decimal.RequireFromString("180.00"); !detail.ActualTotal.Equal(want) {
		t.Fatalf("actual total = %s, want %s", detail.ActualTotal, want)
	}

	if err := repo.RemovePart(ctx, card.ID, part.ID, userID); err != nil {
		t.Fatalf("remove part: %v", err)
	}
	after, _ = itemRepo.Get(ctx, item.ID)
	if after.CurrentStock != 10 {
		t.Fatalf("stock after part remove = %d, want 10", after.CurrentStock)
	}
	detail, _ = repo.GetDetail(ctx, card.ID)
	if !detail.ActualTotal.IsZero() {
		t.Fatalf("actual total after removal = %s, want 0", detail.ActualTotal)
	}

	sum, err := NewStockMovementRepository(pool).LedgerSum(ctx, item.ID)
	if err != nil {
		t.Fatal(err)
	}
	if sum != 10 {
		t.Fatalf("ledger sum = %d, want 10", sum)
	}
}

func TestPosSale_CheckoutAndRefund(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	userID := seedUser(t, pool)
	item := seedItem(t, pool, userID, 8)
	repo := NewPosSaleRepository(pool)

	sale, err := repo.Create(ctx, &models.CreateSaleRequest{
		Items: []models.SaleItemRequest{
			{InventoryItemID: item.ID, Quantity: 3, UnitPrice: decimal.RequireFromString("45.00")},
		},
		PaymentMethod: models.PaymentMethodCash,
		TaxRate:       decimal.RequireFromString("8"),
		PaidAmount:    decimal.RequireFromString("150.00"),
	}, userID)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if sale.Subtotal.String() != "135" {
		t.Errorf("subtotal = %s, want 135", sale.Subtotal)
	}
	if sale.Total.String() != "145.8" {
		t.Errorf("total = %s, want 145.8", sale.Total)
	}
	if sale.Change.String() != "4.2" {
		t.Errorf("change = %s, want 4.2", sale.Change)
	}
	if !strings.HasPrefix(sale.SaleNumber, "POS") {
		t.Errorf("sale number = %q", sale.SaleNumber)
	}

	itemRepo := NewInventoryItemRepository(pool)
	after, _ := itemRepo.Get(ctx, item.ID)
	if after.CurrentStock != 5 {
		t.Fatalf("stock after sale = %d, want 5", after.CurrentStock)
	}

	refunded, err := repo.Refund(ctx, sale.ID, userID)
	if err != nil {
		t.Fatalf("refund: %v", err)
	}
	if refunded.Status != models.SaleStatusRefunded {
		t.Fatalf("status = %q, want refunded", refunded.Status)
	}
	after, _ = itemRepo.Get(ctx, item.ID)
	if after.CurrentStock != 8 {
		t.Fatalf("stock after refund = %d, want 8", after.CurrentStock)
	}

	// Refunds are whole-sale and one-shot.
	_, err = repo.Refund(ctx, sale.ID, userID)
	var conflict *apperrors.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError on double refund, got %v", err)
	}
}

func TestPosSale_UnderpaymentRecordedWithZeroChange(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	userID := seedUser(t, pool)
	item := seedItem(t, pool, userID, 8)

	// Tendering less than the total is accepted and recorded as-is.
	sale, err := NewPosSaleRepository(pool).Create(ctx, &models.CreateSaleRequest{
		Items: []models.SaleItemRequest{
			{InventoryItemID: item.ID, Quantity: 2, UnitPrice: decimal.RequireFromString("45.00")},
		},
		PaymentMethod: models.PaymentMethodCash,
		PaidAmount:    decimal.RequireFromString("50.00"),
	}, userID)
	if err != nil {
		t.Fatalf("underpaid checkout: %v", err)
	}

	if !sale.Total.Equal(decimal.RequireFromString("90")) {
		t.Errorf("total = %s, want 90", sale.Total)
	}
	if !sale.PaidAmount.Equal(decimal.RequireFromString("50")) {
		t.Errorf("paid amount = %s, want 50", sale.PaidAmount)
	}
	if !sale.Change.IsZero() {
		t.Errorf("change = %s, want 0", sale.Change)
	}
	if sale.Status != models.SaleStatusCompleted {
		t.Errorf("status = %q, want completed", sale.Status)
	}
}

func TestInvoice_LifecycleAndSettlementCascade(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	userID := seedUser(t, pool)
	jobRepo := NewJobCardRepository(pool)
	invoiceRepo := NewInvoiceRepository(pool, jobRepo)

	card := readyJobCard(t, pool, userID)

	invoice, err := invoiceRepo.Create(ctx, &models.CreateInvoiceRequest{
		JobCardID: card.ID,
		TaxRate:   decimal.RequireFromString("8"),
	})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	if invoice.Subtotal.String() != "150" {
		t.Errorf("subtotal = %s, want 150", invoice.Subtotal)
	}
	if invoice.Total.String() != "162" {
		t.Errorf("total = %s, want 162", invoice.Total)
	}

	// Job follows the invoice.
	job, _ := jobRepo.Get(ctx, card.ID)
	if job.Status != models.JobStatusInvoiced {
		t.Fatalf("job status = %q, want invoiced", job.Status)
	}

	// Lines stay editable after invoicing; the invoice keeps its
	// total snapshot.
	svc := seedService(t, pool)
	_, err = jobRepo.AddService(ctx, card.ID, &models.AddJobServiceRequest{
		ServiceID: svc.ID, Quantity: 1, UnitPrice: svc.BasePrice,
	})
	if err != nil {
		t.Fatalf("add service after invoicing: %v", err)
	}
	detail, err := jobRepo.GetDetail(ctx, card.ID)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if want := decimal.RequireFromString("300.00"); !detail.ActualTotal.Equal(want) {
		t.Fatalf("card total after post-invoice edit = %s, want %s", detail.ActualTotal, want)
	}
	invoice, err = invoiceRepo.Get(ctx, invoice.ID)
	if err != nil {
		t.Fatalf("get invoice: %v", err)
	}
	if invoice.Total.String() != "162" {
		t.Fatalf("invoice total moved to %s after job edit, want 162", invoice.Total)
	}

	// Only one active invoice per job.
	var conflict *apperrors.ConflictError
	_, err = invoiceRepo.Create(ctx, &models.CreateInvoiceRequest{JobCardID: card.ID})
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError on duplicate invoice, got %v", err)
	}

	// Partial then settling payment.
	invoice, err = invoiceRepo.AddPayment(ctx, invoice.ID, &models.AddPaymentRequest{
		Amount: decimal.RequireFromString("100.00"), Method: models.PaymentMethodCash,
	}, userID)
	if err != nil {
		t.Fatalf("partial payment: %v", err)
	}
	if invoice.Status != models.InvoiceStatusPartial {
		t.Fatalf("status = %q, want partial", invoice.Status)
	}

	invoice, err = invoiceRepo.AddPayment(ctx, invoice.ID, &models.AddPaymentRequest{
		Amount: decimal.RequireFromString("70.00"), Method: models.PaymentMethodCard,
	}, userID)
	if err != nil {
		t.Fatalf("settling payment: %v", err)
	}
	if invoice.Status != models.InvoiceStatusPaid {
		t.Fatalf("status = %q, want paid (overpayment settles)", invoice.Status)
	}
	if invoice.PaidAt == nil {
		t.Fatal("paid_at not set")
	}

	job, _ = jobRepo.Get(ctx, card.ID)
	if job.Status != models.JobStatusPaid {
		t.Fatalf("job status = %q, want paid", job.Status)
	}

	// No payments after settlement, no cancelling a paid invoice.
	_, err = invoiceRepo.AddPayment(ctx, invoice.ID, &models.AddPaymentRequest{
		Amount: decimal.RequireFromString("1.00"), Method: models.PaymentMethodCash,
	}, userID)
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError paying a paid invoice, got %v", err)
	}
	_, err = invoiceRepo.Cancel(ctx, invoice.ID)
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError cancelling a paid invoice, got %v", err)
	}
}

func TestInvoice_CancelRevertsJobAndAllowsReinvoice(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	userID := seedUser(t, pool)
	jobRepo := NewJobCardRepository(pool)
	invoiceRepo := NewInvoiceRepository(pool, jobRepo)

	card := readyJobCard(t, pool, userID)

	first, err := invoiceRepo.Create(ctx, &models.CreateInvoiceRequest{JobCardID: card.ID})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}

	cancelled, err := invoiceRepo.Cancel(ctx, first.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != models.InvoiceStatusCancelled {
		t.Fatalf("status = %q, want cancelled", cancelled.Status)
	}

	job, _ := jobRepo.Get(ctx, card.ID)
	if job.Status != models.JobStatusReady {
		t.Fatalf("job status = %q, want ready after cancel", job.Status)
	}

	second, err := invoiceRepo.Create(ctx, &models.CreateInvoiceRequest{JobCardID: card.ID})
	if err != nil {
		t.Fatalf("re-invoice after cancel: %v", err)
	}
	if second.InvoiceNumber == first.InvoiceNumber {
		t.Fatalf("re-invoice reused number %q", second.InvoiceNumber)
	}

	// A partially paid invoice can still be cancelled; only a settled
	// one cannot.
	second, err = invoiceRepo.AddPayment(ctx, second.ID, &models.AddPaymentRequest{
		Amount: decimal.RequireFromString("60.00"), Method: models.PaymentMethodCash,
	}, userID)
	if err != nil {
		t.Fatalf("partial payment: %v", err)
	}
	if second.Status != models.InvoiceStatusPartial {
		t.Fatalf("status = %q, want partial", second.Status)
	}

	cancelled, err = invoiceRepo.Cancel(ctx, second.ID)
	if err != nil {
		t.Fatalf("cancel partially paid invoice: %v", err)
	}
	if cancelled.Status != models.InvoiceStatusCancelled {
		t.Fatalf("status = %q, want cancelled", cancelled.Status)
	}
	job, _ = jobRepo.Get(ctx, card.ID)
	if job.Status != models.JobStatusReady {
		t.Fatalf("job status = %q, want ready after cancel", job.Status)
	}
}

func TestJobStatus_InvoicedNotSettableDirectly(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	seedUser(t, pool)
	customerID, vehicleID := seedCustomerVehicle(t, pool)
	repo := NewJobCardRepository(pool)

	card, err := repo.Create(ctx, &models.CreateJobCardRequest{CustomerID: customerID, VehicleID: vehicleID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, status := range []string{models.JobStatusInvoiced, models.JobStatusPaid} {
		if _, err := repo.UpdateStatus(ctx, card.ID, status); err == nil {
			t.Errorf("UpdateStatus to %q succeeded, want rejection", status)
		}
	}

	// Backward moves are rejected too.
	if _, err := repo.UpdateStatus(ctx, card.ID, models.JobStatusInProgress); err != nil {
		t.Fatalf("forward move: %v", err)
	}
	if _, err := repo.UpdateStatus(ctx, card.ID, models.JobStatusPending); err == nil {
		t.Error("backward move succeeded, want rejection")
	}
}

func TestDocumentNumbers_MonotonicPerPrefix(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	seedUser(t, pool)
	customerID, vehicleID := seedCustomerVehicle(t, pool)
	repo := NewJobCardRepository(pool)

	first, err := repo.Create(ctx, &models.CreateJobCardRequest{CustomerID: customerID, VehicleID: vehicleID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := repo.Create(ctx, &models.CreateJobCardRequest{CustomerID: customerID, VehicleID: vehicleID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if !strings.HasPrefix(first.JobNumber, "JC") {
		t.Fatalf("job number = %q", first.JobNumber)
	}
	if first.JobNumber >= second.JobNumber {
		t.Fatalf("numbers not increasing: %q then %q", first.JobNumber, second.JobNumber)
	}
}

func TestSettingRepository_TaxRateFallsBackToZero(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repo := NewSettingRepository(pool)

	// Truncation wiped the seeded settings.
	rate, err := repo.TaxRate(ctx)
	if err != nil {
		t.Fatalf("tax rate: %v", err)
	}
	if !rate.IsZero() {
		t.Fatalf("rate = %s, want 0 when unset", rate)
	}

	userID := seedUser(t, pool)
	if _, err := repo.Upsert(ctx, models.SettingTaxRate, "8", userID); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	rate, err = repo.TaxRate(ctx)
	if err != nil {
		t.Fatalf("tax rate: %v", err)
	}
	if rate.String() != "8" {
		t.Fatalf("rate = %s, want 8", rate)
	}
}
