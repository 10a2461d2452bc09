package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportPeriod is the inclusive date range a report covers
type ReportPeriod struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// SalesReport totals revenue across POS sales and paid invoices
type SalesReport struct {
	Period           ReportPeriod    `json:"period"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	PosSales         decimal.Decimal `json:"pos_sales"`
	JobCardSales     decimal.Decimal `json:"job_card_sales"`
	PartsRevenue     decimal.Decimal `json:"parts_revenue"`
	ServicesRevenue  decimal.Decimal `json:"services_revenue"`
	LaborRevenue     decimal.Decimal `json:"labor_revenue"`
	TransactionCount int             `json:"transaction_count"`
}

// InventoryReport values stock on hand at cost and at retail
type InventoryReport struct {
	TotalItems      int                               `json:"total_items"`
	TotalStock      int                               `json:"total_stock"`
	TotalValue      decimal.Decimal                   `json:"total_value"`
	RetailValue     decimal.Decimal                   `json:"retail_value"`
	PotentialProfit decimal.Decimal                   `json:"potential_profit"`
	LowStockCount   int                               `json:"low_stock_count"`
	OutOfStockCount int                               `json:"out_of_stock_count"`
	ByCategory      map[string]*InventoryCategoryLine `json:"by_category"`
	LowStockItems   []*LowStockItem                   `json:"low_stock_items"`
}

type InventoryCategoryLine struct {
	Count int             `json:"count"`
	Stock int             `json:"stock"`
	Value decimal.Decimal `json:"value"`
}

type LowStockItem struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	SKU          string `json:"sku"`
	CurrentStock int    `json:"current_stock"`
	ReorderLevel int    `json:"reorder_level"`
	Category     string `json:"category"`
}

// JobProfitability is the per-invoice profitability line. Parts carry
// their recorded cost; services and labor are treated as full margin.
type JobProfitability struct {
	InvoiceNumber   string          `json:"invoice_number"`
	JobNumber       string          `json:"job_number"`
	Customer        string          `json:"customer"`
	Vehicle         string          `json:"vehicle"`
	PartsRevenue    decimal.Decimal `json:"parts_revenue"`
	PartsCost       decimal.Decimal `json:"parts_cost"`
	ServicesRevenue decimal.Decimal `json:"services_revenue"`
	LaborRevenue    decimal.Decimal `json:"labor_revenue"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	Profit          decimal.Decimal `json:"profit"`
	Margin          decimal.Decimal `json:"margin"` // percent
	Date            time.Time       `json:"date"`
}

type ProfitabilityReport struct {
	Period  ReportPeriod         `json:"period"`
	Summary ProfitabilitySummary `json:"summary"`
	Jobs    []*JobProfitability  `json:"jobs"`
}

type ProfitabilitySummary struct {
	TotalJobs     int             `json:"total_jobs"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	TotalProfit   decimal.Decimal `json:"total_profit"`
	AverageMargin decimal.Decimal `json:"average_margin"`
}

// UsageReport aggregates shop-use consumption at cost
type UsageReport struct {
	Period     ReportPeriod                `json:"period"`
	Summary    UsageReportSummary          `json:"summary"`
	ByReason   map[string]*UsageReasonLine `json:"by_reason"`
	ByCategory map[string]*UsageReasonLine `json:"by_category"`
}

type UsageReportSummary struct {
	TotalCost     decimal.Decimal `json:"total_cost"`
	TotalQuantity int             `json:"total_quantity"`
	RecordCount   int             `json:"record_count"`
}

type UsageReasonLine struct {
	Quantity int             `json:"quantity"`
	Cost     decimal.Decimal `json:"cost"`
}

// GSTReport carries the figures for the MIRA 205 GST return form
type GSTReport struct {
	TaxpayerInfo GSTTaxpayerInfo  `json:"taxpayer_info"`
	GSTRate      decimal.Decimal  `json:"gst_rate"`
	OutputTax    GSTOutputTax     `json:"output_tax"`
	InputTax     GSTInputTax      `json:"input_tax"`
	NetGST       GSTNet           `json:"net_gst"`
	SalesByType  GSTSalesByType   `json:"sales_by_type"`
	Monthly      []GSTMonthlyLine `json:"monthly_sales"`
	Transactions []GSTTransaction `json:"transactions"`
	Summary      GSTSummary       `json:"summary"`
}

type GSTTaxpayerInfo struct {
	BusinessName      string       `json:"business_name"`
	GSTTIN            string       `json:"gst_tin"`
	TaxableActivityNo string       `json:"taxable_activity_no"`
	TaxablePeriod     ReportPeriod `json:"taxable_period"`
}

type GSTOutputTax struct {
	TotalSalesInclusive decimal.Decimal `json:"total_sales_inclusive"`
	TotalSalesExclusive decimal.Decimal `json:"total_sales_exclusive"`
	GSTCollected        decimal.Decimal `json:"gst_collected"`
	PosSales            GSTSourceLine   `json:"pos_sales"`
	Invoices            GSTSourceLine   `json:"invoices"`
}

type GSTSourceLine struct {
	Count     int             `json:"count"`
	Inclusive decimal.Decimal `json:"inclusive"`
	GST       decimal.Decimal `json:"gst"`
}

type GSTInputTax struct {
	TotalPurchasesExclusive decimal.Decimal `json:"total_purchases_exclusive"`
	GSTPaid                 decimal.Decimal `json:"gst_paid"` // estimated
	PurchaseCount           int             `json:"purchase_count"`
}

type GSTNet struct {
	OutputTax  decimal.Decimal `json:"output_tax"`
	InputTax   decimal.Decimal `json:"input_tax"`
	NetPayable decimal.Decimal `json:"net_payable"` // positive = pay, negative = refund
	Status     string          `json:"status"`
}

type GSTSalesByType struct {
	Parts    decimal.Decimal `json:"parts"`
	Services decimal.Decimal `json:"services"`
	Labor    decimal.Decimal `json:"labor"`
}

type GSTMonthlyLine struct {
	Month        string          `json:"month"`
	PosTotal     decimal.Decimal `json:"pos_total"`
	PosGST       decimal.Decimal `json:"pos_gst"`
	InvoiceTotal decimal.Decimal `json:"invoice_total"`
	InvoiceGST   decimal.Decimal `json:"invoice_gst"`
	TotalSales   decimal.Decimal `json:"total_sales"`
	TotalGST     decimal.Decimal `json:"total_gst"`
}

type GSTTransaction struct {
	Date        time.Time       `json:"date"`
	Type        string          `json:"type"`
	Reference   string          `json:"reference"`
	Description string          `json:"description"`
	GrossAmount decimal.Decimal `json:"gross_amount"`
	GSTAmount   decimal.Decimal `json:"gst_amount"`
	NetAmount   decimal.Decimal `json:"net_amount"`
}

type GSTSummary struct {
	TotalTransactions   int             `json:"total_transactions"`
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	TotalGSTCollected   decimal.Decimal `json:"total_gst_collected"`
	AvgTransactionValue decimal.Decimal `json:"avg_transaction_value"`
}

// Dashboard is the landing-page aggregate
type Dashboard struct {
	JobCards    DashboardJobCards  `json:"job_cards"`
	Revenue     DashboardRevenue   `json:"revenue"`
	Inventory   DashboardInventory `json:"inventory"`
	RecentJobs  []*JobCard         `json:"recent_jobs"`
	RecentSales []*PosSale         `json:"recent_sales"`
}

type DashboardJobCards struct {
	Pending      int `json:"pending"`
	InProgress   int `json:"in_progress"`
	QualityCheck int `json:"quality_check"`
	Ready        int `json:"ready"`
	TodayNew     int `json:"today_new"`
}

type DashboardRevenue struct {
	Today               decimal.Decimal `json:"today"`
	TodayPos            decimal.Decimal `json:"today_pos"`
	TodayInvoices       decimal.Decimal `json:"today_invoices"`
	Month               decimal.Decimal `json:"month"`
	MonthPos            decimal.Decimal `json:"month_pos"`
	MonthInvoices       decimal.Decimal `json:"month_invoices"`
	PendingAmount       decimal.Decimal `json:"pending_amount"`
	PendingInvoiceCount int             `json:"pending_invoice_count"`
}

type DashboardInventory struct {
	LowStockCount int `json:"low_stock_count"`
}
