package handlers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/ygglist/ygglist/internal/api/middleware"
	"github.com/ygglist/ygglist/internal/export"
	"github.com/ygglist/ygglist/internal/reports"
	"github.com/ygglist/ygglist/internal/storage"
)

// ReportsHandler handles the purchase history and report endpoints.
type ReportsHandler struct {
	store *storage.Store
	log   zerolog.Logger
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(store *storage.Store, log zerolog.Logger) *ReportsHandler {
	return &ReportsHandler{store: store, log: log}
}

// ListPurchases handles GET /api/purchases
func (h *ReportsHandler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	purchases := h.store.Purchases()
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"purchases": purchases,
		"count":     len(purchases),
	})
}

// Report handles GET /api/reports?from=&to= or ?month=2026-03.
// The month form always carries the previous-month comparison.
func (h *ReportsHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, ok := h.buildReport(w, r)
	if !ok {
		return
	}
	middleware.WriteJSON(w, http.StatusOK, report)
}

// MonthlyTotals handles GET /api/reports/monthly, the per-month totals
// over the whole purchase history.
func (h *ReportsHandler) MonthlyTotals(w http.ResponseWriter, r *http.Request) {
	months := reports.Monthly(h.store.Purchases())
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"months": months,
		"count":  len(months),
	})
}

// CSV handles GET /api/reports/csv
func (h *ReportsHandler) CSV(w http.ResponseWriter, r *http.Request) {
	report, ok := h.buildReport(w, r)
	if !ok {
		return
	}

	data, err := export.CSV(report, h.store.Purchases())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to render CSV")
		middleware.WriteError(w, http.StatusInternalServerError, "Não foi possível gerar o CSV")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		`attachment; filename="gastos-`+report.FromISO+`-`+report.ToISO+`.csv"`)
	w.Write(data)
}

// ChartSVG handles GET /api/reports/chart.svg
func (h *ReportsHandler) ChartSVG(w http.ResponseWriter, r *http.Request) {
	report, ok := h.buildReport(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(export.ChartSVG(report.Daily))
}

// ChartPNG handles GET /api/reports/chart.png
func (h *ReportsHandler) ChartPNG(w http.ResponseWriter, r *http.Request) {
	report, ok := h.buildReport(w, r)
	if !ok {
		return
	}

	data, err := export.ChartPNG(report.Daily)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to render chart")
		middleware.WriteError(w, http.StatusInternalServerError, "Não foi possível gerar o gráfico")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(data)
}

// buildReport resolves the range parameters and aggregates. Without
// parameters the current calendar month is reported, comparison included.
func (h *ReportsHandler) buildReport(w http.ResponseWriter, r *http.Request) (reports.Report, bool) {
	q := r.URL.Query()
	purchases := h.store.Purchases()

	month := q.Get("month")
	from, to := q.Get("from"), q.Get("to")

	if month == "" && from == "" && to == "" {
		month = time.Now().Format("2006-01")
	}

	if month != "" {
		report, err := reports.BuildMonth(purchases, month)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Mês inválido, use AAAA-MM")
			return reports.Report{}, false
		}
		return report, true
	}

	report, err := reports.Build(purchases, from, to)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Período inválido, use AAAA-MM-DD")
		return reports.Report{}, false
	}
	return report, true
}
