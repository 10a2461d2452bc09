package handlers

import (
	"fmt"
	"net/http"

	"workshop-backend/internal/services"
	"workshop-backend/internal/timeutil"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(s *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: s}
}

func wantsExcel(r *http.Request) bool {
	return r.URL.Query().Get("format") == "xlsx"
}

func excelHeaders(w http.ResponseWriter, name string, from, to string) {
	filename := fmt.Sprintf("%s_%s_%s.xlsx", name, from, to)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
}

func (h *ReportHandler) Sales(w http.ResponseWriter, r *http.Request) {
	from, to, err := reportPeriod(r)
	if err != nil {
		respondBadRequest(w, "invalid date range")
		return
	}

	report, err := h.Service.SalesReport(r.Context(), from, to)
	if err != nil {
		respondError(w, err)
		return
	}

	if wantsExcel(r) {
		excelHeaders(w, "sales", from.Format(timeutil.DateLayout), to.Format(timeutil.DateLayout))
		if err := services.ExportSalesReport(w, report); err != nil {
			respondError(w, err)
		}
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (h *ReportHandler) Inventory(w http.ResponseWriter, r *http.Request) {
	report, err := h.Service.InventoryReport(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	if wantsExcel(r) {
		today := timeutil.Now().Format(timeutil.DateLayout)
		excelHeaders(w, "inventory", today, today)
		if err := services.ExportInventoryReport(w, report); err != nil {
			respondError(w, err)
		}
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (h *ReportHandler) Profitability(w http.ResponseWriter, r *http.Request) {
	from, to, err := reportPeriod(r)
	if err != nil {
		respondBadRequest(w, "invalid date range")
		return
	}

	report, err := h.Service.ProfitabilityReport(r.Context(), from, to)
	if err != nil {
		respondError(w, err)
		return
	}

	if wantsExcel(r) {
		excelHeaders(w, "profitability", from.Format(timeutil.DateLayout), to.Format(timeutil.DateLayout))
		if err := services.ExportProfitabilityReport(w, report); err != nil {
			respondError(w, err)
		}
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (h *ReportHandler) Usage(w http.ResponseWriter, r *http.Request) {
	from, to, err := reportPeriod(r)
	if err != nil {
		respondBadRequest(w, "invalid date range")
		return
	}

	report, err := h.Service.UsageReport(r.Context(), from, to)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (h *ReportHandler) GST(w http.ResponseWriter, r *http.Request) {
	from, to, err := reportPeriod(r)
	if err != nil {
		respondBadRequest(w, "invalid date range")
		return
	}

	report, err := h.Service.GSTReport(r.Context(), from, to)
	if err != nil {
		respondError(w, err)
		return
	}

	if wantsExcel(r) {
		excelHeaders(w, "gst_return", from.Format(timeutil.DateLayout), to.Format(timeutil.DateLayout))
		if err := services.ExportGSTReport(w, report); err != nil {
			respondError(w, err)
		}
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.Service.Dashboard(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dashboard)
}
