package services

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"workshop-backend/internal/models"
	"workshop-backend/internal/timeutil"
)

// Excel export for the report endpoints. Each report gets its own
// workbook written straight to the response.

func cell(col string, row int) string {
	return col + fmt.Sprint(row)
}

func money(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func ExportSalesReport(w io.Writer, report *models.SalesReport) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := "Sales"
	f.SetSheetName("Sheet1", sheet)

	f.SetCellValue(sheet, "A1", "Sales Report")
	f.SetCellValue(sheet, "A2", "Period")
	f.SetCellValue(sheet, "B2", report.Period.From.Format(timeutil.DateLayout)+" to "+report.Period.To.Format(timeutil.DateLayout))

	rows := []struct {
		label string
		value any
	}{
		{"Total Revenue", money(report.TotalRevenue)},
		{"POS Sales", money(report.PosSales)},
		{"Job Card Sales", money(report.JobCardSales)},
		{"Parts Revenue", money(report.PartsRevenue)},
		{"Services Revenue", money(report.ServicesRevenue)},
		{"Labor Revenue", money(report.LaborRevenue)},
		{"Transactions", report.TransactionCount},
	}
	for i, r := range rows {
		f.SetCellValue(sheet, cell("A", i+4), r.label)
		f.SetCellValue(sheet, cell("B", i+4), r.value)
	}
	return f.Write(w)
}

func ExportInventoryReport(w io.Writer, report *models.InventoryReport) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := "Inventory"
	f.SetSheetName("Sheet1", sheet)

	f.SetCellValue(sheet, "A1", "Inventory Valuation")
	summary := []struct {
		label string
		value any
	}{
		{"Active Items", report.TotalItems},
		{"Units In Stock", report.TotalStock},
		{"Stock Value (cost)", money(report.TotalValue)},
		{"Stock Value (retail)", money(report.RetailValue)},
		{"Potential Profit", money(report.PotentialProfit)},
		{"Low Stock Items", report.LowStockCount},
		{"Out Of Stock Items", report.OutOfStockCount},
	}
	for i, r := range summary {
		f.SetCellValue(sheet, cell("A", i+3), r.label)
		f.SetCellValue(sheet, cell("B", i+3), r.value)
	}

	row := len(summary) + 5
	f.SetCellValue(sheet, cell("A", row), "Category")
	f.SetCellValue(sheet, cell("B", row), "Items")
	f.SetCellValue(sheet, cell("C", row), "Units")
	f.SetCellValue(sheet, cell("D", row), "Value")
	for name, line := range report.ByCategory {
		row++
		f.SetCellValue(sheet, cell("A", row), name)
		f.SetCellValue(sheet, cell("B", row), line.Count)
		f.SetCellValue(sheet, cell("C", row), line.Stock)
		f.SetCellValue(sheet, cell("D", row), money(line.Value))
	}

	low := "Low Stock"
	f.NewSheet(low)
	f.SetCellValue(low, "A1", "SKU")
	f.SetCellValue(low, "B1", "Name")
	f.SetCellValue(low, "C1", "Category")
	f.SetCellValue(low, "D1", "Current")
	f.SetCellValue(low, "E1", "Reorder Level")
	for i, item := range report.LowStockItems {
		f.SetCellValue(low, cell("A", i+2), item.SKU)
		f.SetCellValue(low, cell("B", i+2), item.Name)
		f.SetCellValue(low, cell("C", i+2), item.Category)
		f.SetCellValue(low, cell("D", i+2), item.CurrentStock)
		f.SetCellValue(low, cell("E", i+2), item.ReorderLevel)
	}
	return f.Write(w)
}

func ExportProfitabilityReport(w io.Writer, report *models.ProfitabilityReport) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := "Profitability"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Invoice", "Job", "Customer", "Vehicle", "Date",
		"Parts Revenue", "Parts Cost", "Services", "Labor", "Total", "Profit", "Margin %"}
	cols := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"}
	for i, h := range headers {
		f.SetCellValue(sheet, cell(cols[i], 1), h)
	}
	for i, job := range report.Jobs {
		row := i + 2
		f.SetCellValue(sheet, cell("A", row), job.InvoiceNumber)
		f.SetCellValue(sheet, cell("B", row), job.JobNumber)
		f.SetCellValue(sheet, cell("C", row), job.Customer)
		f.SetCellValue(sheet, cell("D", row), job.Vehicle)
		f.SetCellValue(sheet, cell("E", row), job.Date.Format(timeutil.DateLayout))
		f.SetCellValue(sheet, cell("F", row), money(job.PartsRevenue))
		f.SetCellValue(sheet, cell("G", row), money(job.PartsCost))
		f.SetCellValue(sheet, cell("H", row), money(job.ServicesRevenue))
		f.SetCellValue(sheet, cell("I", row), money(job.LaborRevenue))
		f.SetCellValue(sheet, cell("J", row), money(job.TotalRevenue))
		f.SetCellValue(sheet, cell("K", row), money(job.Profit))
		f.SetCellValue(sheet, cell("L", row), money(job.Margin))
	}

	row := len(report.Jobs) + 3
	f.SetCellValue(sheet, cell("A", row), "Totals")
	f.SetCellValue(sheet, cell("B", row), report.Summary.TotalJobs)
	f.SetCellValue(sheet, cell("J", row), money(report.Summary.TotalRevenue))
	f.SetCellValue(sheet, cell("K", row), money(report.Summary.TotalProfit))
	f.SetCellValue(sheet, cell("L", row), money(report.Summary.AverageMargin))
	return f.Write(w)
}

func ExportGSTReport(w io.Writer, report *models.GSTReport) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := "GST Return"
	f.SetSheetName("Sheet1", sheet)

	f.SetCellValue(sheet, "A1", report.TaxpayerInfo.BusinessName)
	f.SetCellValue(sheet, "A2", "TIN")
	f.SetCellValue(sheet, "B2", report.TaxpayerInfo.GSTTIN)
	f.SetCellValue(sheet, "A3", "Taxable Activity No")
	f.SetCellValue(sheet, "B3", report.TaxpayerInfo.TaxableActivityNo)
	f.SetCellValue(sheet, "A4", "Period")
	f.SetCellValue(sheet, "B4", report.TaxpayerInfo.TaxablePeriod.From.Format(timeutil.DateLayout)+
		" to "+report.TaxpayerInfo.TaxablePeriod.To.Format(timeutil.DateLayout))
	f.SetCellValue(sheet, "A5", "GST Rate %")
	f.SetCellValue(sheet, "B5", money(report.GSTRate))

	lines := []struct {
		label string
		value any
	}{
		{"Total Sales (GST inclusive)", money(report.OutputTax.TotalSalesInclusive)},
		{"Total Sales (GST exclusive)", money(report.OutputTax.TotalSalesExclusive)},
		{"GST Collected (output tax)", money(report.OutputTax.GSTCollected)},
		{"Purchases (exclusive)", money(report.InputTax.TotalPurchasesExclusive)},
		{"GST Paid (input tax, estimated)", money(report.InputTax.GSTPaid)},
		{"Net GST " + report.NetGST.Status, money(report.NetGST.NetPayable)},
	}
	for i, l := range lines {
		f.SetCellValue(sheet, cell("A", i+7), l.label)
		f.SetCellValue(sheet, cell("B", i+7), l.value)
	}

	monthly := "Monthly"
	f.NewSheet(monthly)
	for i, h := range []string{"Month", "POS Sales", "POS GST", "Invoices", "Invoice GST", "Total Sales", "Total GST"} {
		f.SetCellValue(monthly, cell(string(rune('A'+i)), 1), h)
	}
	for i, m := range report.Monthly {
		row := i + 2
		f.SetCellValue(monthly, cell("A", row), m.Month)
		f.SetCellValue(monthly, cell("B", row), money(m.PosTotal))
		f.SetCellValue(monthly, cell("C", row), money(m.PosGST))
		f.SetCellValue(monthly, cell("D", row), money(m.InvoiceTotal))
		f.SetCellValue(monthly, cell("E", row), money(m.InvoiceGST))
		f.SetCellValue(monthly, cell("F", row), money(m.TotalSales))
		f.SetCellValue(monthly, cell("G", row), money(m.TotalGST))
	}

	txSheet := "Transactions"
	f.NewSheet(txSheet)
	for i, h := range []string{"Date", "Type", "Reference", "Description", "Gross", "GST", "Net"} {
		f.SetCellValue(txSheet, cell(string(rune('A'+i)), 1), h)
	}
	for i, t := range report.Transactions {
		row := i + 2
		f.SetCellValue(txSheet, cell("A", row), t.Date.Format(timeutil.DateTimeLayout))
		f.SetCellValue(txSheet, cell("B", row), t.Type)
		f.SetCellValue(txSheet, cell("C", row), t.Reference)
		f.SetCellValue(txSheet, cell("D", row), t.Description)
		f.SetCellValue(txSheet, cell("E", row), money(t.GrossAmount))
		f.SetCellValue(txSheet, cell("F", row), money(t.GSTAmount))
		f.SetCellValue(txSheet, cell("G", row), money(t.NetAmount))
	}
	return f.Write(w)
}
