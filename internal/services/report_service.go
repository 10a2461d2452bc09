package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"workshop-backend/internal/cache"
	"workshop-backend/internal/models"
	"workshop-backend/internal/repositories"
	"workshop-backend/internal/timeutil"
)

// ReportService computes the reporting aggregates straight from SQL.
// Reports read committed data only; they never mutate.
type ReportService struct {
	DB          *pgxpool.Pool
	SettingRepo *repositories.SettingRepository
	JobCardRepo *repositories.JobCardRepository
	SaleRepo    *repositories.PosSaleRepository
}

func NewReportService(db *pgxpool.Pool, settingRepo *repositories.SettingRepository, jobCardRepo *repositories.JobCardRepository, saleRepo *repositories.PosSaleRepository) *ReportService {
	return &ReportService{DB: db, SettingRepo: settingRepo, JobCardRepo: jobCardRepo, SaleRepo: saleRepo}
}

// SalesReport totals revenue recognized in the period: completed POS
// sales by sale date, invoiced work by settlement date.
func (s *ReportService) SalesReport(ctx context.Context, from, to time.Time) (*models.SalesReport, error) {
	report := &models.SalesReport{Period: models.ReportPeriod{From: from, To: to}}

	var posCount int
	err := s.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(total), 0), COUNT(*)
         FROM pos_sales WHERE status='completed' AND created_at BETWEEN $1 AND $2`,
		from, to,
	).Scan(&report.PosSales, &posCount)
	if err != nil {
		return nil, err
	}

	var invoiceCount int
	err = s.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(total), 0), COUNT(*)
         FROM invoices WHERE status='paid' AND paid_at BETWEEN $1 AND $2`,
		from, to,
	).Scan(&report.JobCardSales, &invoiceCount)
	if err != nil {
		return nil, err
	}

	var posParts decimal.Decimal
	err = s.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(l.total), 0)
         FROM pos_sale_items l
         JOIN pos_sales ps ON ps.id = l.pos_sale_id
         WHERE ps.status='completed' AND ps.created_at BETWEEN $1 AND $2`,
		from, to).Scan(&posParts)
	if err != nil {
		return nil, err
	}

	var jobParts, jobServices, jobLabor decimal.Decimal
	err = s.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM((SELECT COALESCE(SUM(total), 0) FROM job_parts WHERE job_card_id=j.id)), 0),
                COALESCE(SUM((SELECT COALESCE(SUM(total), 0) FROM job_services WHERE job_card_id=j.id)), 0),
                COALESCE(SUM((SELECT COALESCE(SUM(COALESCE(actual_cost, estimated_cost)), 0)
                              FROM job_manual_entries WHERE job_card_id=j.id)), 0)
         FROM invoices i
         JOIN job_cards j ON j.id = i.job_card_id
         WHERE i.status='paid' AND i.paid_at BETWEEN $1 AND $2`,
		from, to,
	).Scan(&jobParts, &jobServices, &jobLabor)
	if err != nil {
		return nil, err
	}

	report.PartsRevenue = posParts.Add(jobParts)
	report.ServicesRevenue = jobServices
	report.LaborRevenue = jobLabor
	report.TotalRevenue = report.PosSales.Add(report.JobCardSales)
	report.TransactionCount = posCount + invoiceCount
	return report, nil
}

// InventoryReport values stock on hand at cost and at retail.
func (s *ReportService) InventoryReport(ctx context.Context) (*models.InventoryReport, error) {
	report := &models.InventoryReport{
		ByCategory: map[string]*models.InventoryCategoryLine{},
	}

	err := s.DB.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(current_stock), 0),
                COALESCE(SUM(current_stock * cost_price), 0),
                COALESCE(SUM(current_stock * selling_price), 0),
                COUNT(*) FILTER (WHERE current_stock <= reorder_level AND current_stock > 0),
                COUNT(*) FILTER (WHERE current_stock = 0)
         FROM inventory_items WHERE is_active`,
	).Scan(&report.TotalItems, &report.TotalStock, &report.TotalValue, &report.RetailValue,
		&report.LowStockCount, &report.OutOfStockCount)
	if err != nil {
		return nil, err
	}
	report.PotentialProfit = report.RetailValue.Sub(report.TotalValue)

	rows, err := s.DB.Query(ctx,
		`SELECT COALESCE(c.name, 'Uncategorized'), COUNT(*), COALESCE(SUM(i.current_stock), 0),
                COALESCE(SUM(i.current_stock * i.cost_price), 0)
         FROM inventory_items i
         LEFT JOIN categories c ON c.id = i.category_id
         WHERE i.is_active
         GROUP BY c.name`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var name string
		line := &models.InventoryCategoryLine{}
		if err := rows.Scan(&name, &line.Count, &line.Stock, &line.Value); err != nil {
			rows.Close()
			return nil, err
		}
		report.ByCategory[name] = line
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.DB.Query(ctx,
		`SELECT i.id, i.name, i.sku, i.current_stock, i.reorder_level, COALESCE(c.name, '')
         FROM inventory_items i
         LEFT JOIN categories c ON c.id = i.category_id
         WHERE i.is_active AND i.current_stock <= i.reorder_level
         ORDER BY i.current_stock, i.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		item := &models.LowStockItem{}
		err := rows.Scan(&item.ID, &item.Name, &item.SKU, &item.CurrentStock,
			&item.ReorderLevel, &item.Category)
		if err != nil {
			return nil, err
		}
		report.LowStockItems = append(report.LowStockItems, item)
	}
	return report, rows.Err()
}

// ProfitabilityReport breaks down each settled invoice. Parts carry
// the item's recorded cost; services and labor count as full margin.
func (s *ReportService) ProfitabilityReport(ctx context.Context, from, to time.Time) (*models.ProfitabilityReport, error) {
	report := &models.ProfitabilityReport{Period: models.ReportPeriod{From: from, To: to}}

	rows, err := s.DB.Query(ctx,
		`SELECT i.invoice_number, j.job_number, c.name, v.vehicle_no, i.paid_at, i.total,
                COALESCE((SELECT SUM(total) FROM job_parts WHERE job_card_id=j.id), 0),
                COALESCE((SELECT SUM(p.quantity * it.cost_price)
                          FROM job_parts p JOIN inventory_items it ON it.id = p.inventory_item_id
                          WHERE p.job_card_id=j.id), 0),
                COALESCE((SELECT SUM(total) FROM job_services WHERE job_card_id=j.id), 0),
                COALESCE((SELECT SUM(COALESCE(actual_cost, estimated_cost))
                          FROM job_manual_entries WHERE job_card_id=j.id), 0)
         FROM invoices i
         JOIN job_cards j ON j.id = i.job_card_id
         JOIN customers c ON c.id = j.customer_id
         JOIN vehicles v ON v.id = j.vehicle_id
         WHERE i.status='paid' AND i.paid_at BETWEEN $1 AND $2
         ORDER BY i.paid_at`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hundred := decimal.NewFromInt(100)
	for rows.Next() {
		job := &models.JobProfitability{}
		var paidAt time.Time
		err := rows.Scan(&job.InvoiceNumber, &job.JobNumber, &job.Customer, &job.Vehicle,
			&paidAt, &job.TotalRevenue, &job.PartsRevenue, &job.PartsCost,
			&job.ServicesRevenue, &job.LaborRevenue)
		if err != nil {
			return nil, err
		}
		job.Date = timeutil.ToMVT(paidAt)
		job.TotalCost = job.PartsCost
		job.Profit = job.TotalRevenue.Sub(job.TotalCost)
		if job.TotalRevenue.IsPositive() {
			job.Margin = job.Profit.Div(job.TotalRevenue).Mul(hundred).Round(2)
		}
		report.Jobs = append(report.Jobs, job)

		report.Summary.TotalJobs++
		report.Summary.TotalRevenue = report.Summary.TotalRevenue.Add(job.TotalRevenue)
		report.Summary.TotalCost = report.Summary.TotalCost.Add(job.TotalCost)
		report.Summary.TotalProfit = report.Summary.TotalProfit.Add(job.Profit)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if report.Summary.TotalRevenue.IsPositive() {
		report.Summary.AverageMargin = report.Summary.TotalProfit.
			Div(report.Summary.TotalRevenue).Mul(hundred).Round(2)
	}
	return report, nil
}

// UsageReport aggregates shop-use consumption at current item cost.
func (s *ReportService) UsageReport(ctx context.Context, from, to time.Time) (*models.UsageReport, error) {
	report := &models.UsageReport{
		Period:     models.ReportPeriod{From: from, To: to},
		ByReason:   map[string]*models.UsageReasonLine{},
		ByCategory: map[string]*models.UsageReasonLine{},
	}

	err := s.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(d.quantity * i.cost_price), 0), COALESCE(SUM(d.quantity), 0), COUNT(*)
         FROM daily_usages d
         JOIN inventory_items i ON i.id = d.inventory_item_id
         WHERE d.created_at BETWEEN $1 AND $2`,
		from, to,
	).Scan(&report.Summary.TotalCost, &report.Summary.TotalQuantity, &report.Summary.RecordCount)
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.Query(ctx,
		`SELECT d.reason, SUM(d.quantity), SUM(d.quantity * i.cost_price)
         FROM daily_usages d
         JOIN inventory_items i ON i.id = d.inventory_item_id
         WHERE d.created_at BETWEEN $1 AND $2
         GROUP BY d.reason`, from, to)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var reason string
		line := &models.UsageReasonLine{}
		if err := rows.Scan(&reason, &line.Quantity, &line.Cost); err != nil {
			rows.Close()
			return nil, err
		}
		report.ByReason[reason] = line
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.DB.Query(ctx,
		`SELECT COALESCE(c.name, 'Uncategorized'), SUM(d.quantity), SUM(d.quantity * i.cost_price)
         FROM daily_usages d
         JOIN inventory_items i ON i.id = d.inventory_item_id
         LEFT JOIN categories c ON c.id = i.category_id
         WHERE d.created_at BETWEEN $1 AND $2
         GROUP BY c.name`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var category string
		line := &models.UsageReasonLine{}
		if err := rows.Scan(&category, &line.Quantity, &line.Cost); err != nil {
			return nil, err
		}
		report.ByCategory[category] = line
	}
	return report, rows.Err()
}

// GSTReport assembles the figures for the MIRA 205 return: output tax
// from sales and invoices, input tax estimated from purchase movements.
func (s *ReportService) GSTReport(ctx context.Context, from, to time.Time) (*models.GSTReport, error) {
	report := &models.GSTReport{}

	rate, err := s.SettingRepo.TaxRate(ctx)
	if err != nil {
		return nil, err
	}
	report.GSTRate = rate

	businessName, _ := s.settingValue(ctx, models.SettingBusinessName)
	gstTIN, _ := s.settingValue(ctx, models.SettingGSTTIN)
	activityNo, _ := s.settingValue(ctx, models.SettingTaxableActivityNo)
	report.TaxpayerInfo = models.GSTTaxpayerInfo{
		BusinessName:      businessName,
		GSTTIN:            gstTIN,
		TaxableActivityNo: activityNo,
		TaxablePeriod:     models.ReportPeriod{From: from, To: to},
	}

	err = s.DB.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(total), 0), COALESCE(SUM(tax_amount), 0)
         FROM pos_sales WHERE status='completed' AND created_at BETWEEN $1 AND $2`,
		from, to,
	).Scan(&report.OutputTax.PosSales.Count, &report.OutputTax.PosSales.Inclusive,
		&report.OutputTax.PosSales.GST)
	if err != nil {
		return nil, err
	}

	err = s.DB.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(total), 0), COALESCE(SUM(tax_amount), 0)
         FROM invoices WHERE status <> 'cancelled' AND created_at BETWEEN $1 AND $2`,
		from, to,
	).Scan(&report.OutputTax.Invoices.Count, &report.OutputTax.Invoices.Inclusive,
		&report.OutputTax.Invoices.GST)
	if err != nil {
		return nil, err
	}

	report.OutputTax.TotalSalesInclusive = report.OutputTax.PosSales.Inclusive.
		Add(report.OutputTax.Invoices.Inclusive)
	report.OutputTax.GSTCollected = report.OutputTax.PosSales.GST.
		Add(report.OutputTax.Invoices.GST)
	report.OutputTax.TotalSalesExclusive = report.OutputTax.TotalSalesInclusive.
		Sub(report.OutputTax.GSTCollected)

	err = s.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity * cost_price), 0), COUNT(*)
         FROM stock_movements
         WHERE type='purchase' AND cost_price IS NOT NULL AND created_at BETWEEN $1 AND $2`,
		from, to,
	).Scan(&report.InputTax.TotalPurchasesExclusive, &report.InputTax.PurchaseCount)
	if err != nil {
		return nil, err
	}
	// Supplier GST is not itemized, so input tax is estimated from
	// purchase cost at the configured rate.
	report.InputTax.GSTPaid = report.InputTax.TotalPurchasesExclusive.
		Mul(rate).Div(decimal.NewFromInt(100)).Round(2)

	report.NetGST.OutputTax = report.OutputTax.GSTCollected
	report.NetGST.InputTax = report.InputTax.GSTPaid
	report.NetGST.NetPayable = report.NetGST.OutputTax.Sub(report.NetGST.InputTax)
	if report.NetGST.NetPayable.IsNegative() {
		report.NetGST.Status = "refundable"
	} else {
		report.NetGST.Status = "payable"
	}

	if err := s.gstSalesByType(ctx, from, to, report); err != nil {
		return nil, err
	}
	if err := s.gstMonthly(ctx, from, to, report); err != nil {
		return nil, err
	}
	if err := s.gstTransactions(ctx, from, to, report); err != nil {
		return nil, err
	}

	report.Summary.TotalTransactions = report.OutputTax.PosSales.Count + report.OutputTax.Invoices.Count
	report.Summary.TotalRevenue = report.OutputTax.TotalSalesInclusive
	report.Summary.TotalGSTCollected = report.OutputTax.GSTCollected
	if report.Summary.TotalTransactions > 0 {
		report.Summary.AvgTransactionValue = report.Summary.TotalRevenue.
			Div(decimal.NewFromInt(int64(report.Summary.TotalTransactions))).Round(2)
	}
	return report, nil
}

func (s *ReportService) settingValue(ctx context.Context, key string) (string, error) {
	setting, err := s.SettingRepo.Get(ctx, key)
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (s *ReportService) gstSalesByType(ctx context.Context, from, to time.Time, report *models.GSTReport) error {
	var posParts decimal.Decimal
	err := s.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(l.total), 0)
         FROM pos_sale_items l
         JOIN pos_sales ps ON ps.id = l.pos_sale_id
         WHERE ps.status='completed' AND ps.created_at BETWEEN $1 AND $2`,
		from, to).Scan(&posParts)
	if err != nil {
		return err
	}

	var jobParts, jobServices, jobLabor decimal.Decimal
	err = s.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM((SELECT COALESCE(SUM(total), 0) FROM job_parts WHERE job_card_id=j.id)), 0),
                COALESCE(SUM((SELECT COALESCE(SUM(total), 0) FROM job_services WHERE job_card_id=j.id)), 0),
                COALESCE(SUM((SELECT COALESCE(SUM(COALESCE(actual_cost, estimated_cost)), 0)
                              FROM job_manual_entries WHERE job_card_id=j.id)), 0)
         FROM invoices i
         JOIN job_cards j ON j.id = i.job_card_id
         WHERE i.status <> 'cancelled' AND i.created_at BETWEEN $1 AND $2`,
		from, to).Scan(&jobParts, &jobServices, &jobLabor)
	if err != nil {
		return err
	}

	report.SalesByType = models.GSTSalesByType{
		Parts:    posParts.Add(jobParts),
		Services: jobServices,
		Labor:    jobLabor,
	}
	return nil
}

func (s *ReportService) gstMonthly(ctx context.Context, from, to time.Time, report *models.GSTReport) error {
	rows, err := s.DB.Query(ctx,
		`SELECT month, SUM(pos_total), SUM(pos_gst), SUM(inv_total), SUM(inv_gst)
         FROM (
             SELECT to_char(created_at AT TIME ZONE 'Indian/Maldives', 'YYYY-MM') AS month,
                    total AS pos_total, tax_amount AS pos_gst,
                    0::numeric AS inv_total, 0::numeric AS inv_gst
             FROM pos_sales WHERE status='completed' AND created_at BETWEEN $1 AND $2
             UNION ALL
             SELECT to_char(created_at AT TIME ZONE 'Indian/Maldives', 'YYYY-MM'),
                    0, 0, total, tax_amount
             FROM invoices WHERE status <> 'cancelled' AND created_at BETWEEN $1 AND $2
         ) t
         GROUP BY month ORDER BY month`, from, to)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var line models.GSTMonthlyLine
		err := rows.Scan(&line.Month, &line.PosTotal, &line.PosGST,
			&line.InvoiceTotal, &line.InvoiceGST)
		if err != nil {
			return err
		}
		line.TotalSales = line.PosTotal.Add(line.InvoiceTotal)
		line.TotalGST = line.PosGST.Add(line.InvoiceGST)
		report.Monthly = append(report.Monthly, line)
	}
	return rows.Err()
}

func (s *ReportService) gstTransactions(ctx context.Context, from, to time.Time, report *models.GSTReport) error {
	rows, err := s.DB.Query(ctx,
		`SELECT created_at, 'pos_sale', sale_number, COALESCE(notes, ''), total, tax_amount
         FROM pos_sales WHERE status='completed' AND created_at BETWEEN $1 AND $2
         UNION ALL
         SELECT created_at, 'invoice', invoice_number, COALESCE(notes, ''), total, tax_amount
         FROM invoices WHERE status <> 'cancelled' AND created_at BETWEEN $1 AND $2
         ORDER BY 1`, from, to)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var t models.GSTTransaction
		var createdAt time.Time
		err := rows.Scan(&createdAt, &t.Type, &t.Reference, &t.Description,
			&t.GrossAmount, &t.GSTAmount)
		if err != nil {
			return err
		}
		t.Date = timeutil.ToMVT(createdAt)
		t.NetAmount = t.GrossAmount.Sub(t.GSTAmount)
		report.Transactions = append(report.Transactions, t)
	}
	return rows.Err()
}

// Dashboard builds the landing-page aggregate, cached briefly since
// every client polls it.
func (s *ReportService) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	if data, ok := cache.GetCached(ctx, cache.DashboardKey); ok {
		var dash models.Dashboard
		if err := json.Unmarshal(data, &dash); err == nil {
			return &dash, nil
		}
	}

	now := timeutil.Now()
	dayStart, dayEnd := timeutil.StartOfDay(now), timeutil.EndOfDay(now)
	monthStart := timeutil.StartOfMonth(now)

	dash := &models.Dashboard{}

	err := s.DB.QueryRow(ctx,
		`SELECT COUNT(*) FILTER (WHERE status = 'pending'),
                COUNT(*) FILTER (WHERE status = 'in_progress'),
                COUNT(*) FILTER (WHERE status = 'quality_check'),
                COUNT(*) FILTER (WHERE status = 'ready'),
                COUNT(*) FILTER (WHERE created_at BETWEEN $1 AND $2)
         FROM job_cards`, dayStart, dayEnd,
	).Scan(&dash.JobCards.Pending, &dash.JobCards.InProgress, &dash.JobCards.QualityCheck,
		&dash.JobCards.Ready, &dash.JobCards.TodayNew)
	if err != nil {
		return nil, err
	}

	err = s.DB.QueryRow(ctx,
		`SELECT COALESCE((SELECT SUM(total) FROM pos_sales
                          WHERE status='completed' AND created_at BETWEEN $1 AND $2), 0),
                COALESCE((SELECT SUM(amount) FROM payments WHERE created_at BETWEEN $1 AND $2), 0),
                COALESCE((SELECT SUM(total) FROM pos_sales
                          WHERE status='completed' AND created_at >= $3), 0),
                COALESCE((SELECT SUM(amount) FROM payments WHERE created_at >= $3), 0),
                COALESCE((SELECT SUM(total - paid_amount) FROM invoices
                          WHERE status IN ('pending', 'partial')), 0),
                COALESCE((SELECT COUNT(*) FROM invoices WHERE status IN ('pending', 'partial')), 0)`,
		dayStart, dayEnd, monthStart,
	).Scan(&dash.Revenue.TodayPos, &dash.Revenue.TodayInvoices,
		&dash.Revenue.MonthPos, &dash.Revenue.MonthInvoices,
		&dash.Revenue.PendingAmount, &dash.Revenue.PendingInvoiceCount)
	if err != nil {
		return nil, err
	}
	dash.Revenue.Today = dash.Revenue.TodayPos.Add(dash.Revenue.TodayInvoices)
	dash.Revenue.Month = dash.Revenue.MonthPos.Add(dash.Revenue.MonthInvoices)

	err = s.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM inventory_items WHERE is_active AND current_stock <= reorder_level`,
	).Scan(&dash.Inventory.LowStockCount)
	if err != nil {
		return nil, err
	}

	jobs, err := s.JobCardRepo.List(ctx, models.JobCardFilter{})
	if err != nil {
		return nil, err
	}
	if len(jobs) > 5 {
		jobs = jobs[:5]
	}
	dash.RecentJobs = jobs

	sales, err := s.SaleRepo.List(ctx, models.SaleFilter{})
	if err != nil {
		return nil, err
	}
	if len(sales) > 5 {
		sales = sales[:5]
	}
	dash.RecentSales = sales

	if data, err := json.Marshal(dash); err == nil {
		cache.SetCached(ctx, cache.DashboardKey, data, cache.DashboardTTL)
	}
	return dash, nil
}
