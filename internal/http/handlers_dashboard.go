package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"maechul/internal/report"
	"maechul/internal/share"
)

// dashboardView is what index.html renders.
type dashboardView struct {
	Year       int
	Month      int
	MonthLabel string
	HasData    bool
	Notes      string
	Summary    report.Summary
	Categories []string
	// LinkWarning carries a human-readable problem with the data
	// parameter; the page still renders.
	LinkWarning string
	// SummaryOnly is set when a legacy link carried totals without
	// per-record data. The page shows them read-only.
	SummaryOnly   bool
	LegacySummary map[string]float64
	LegacyTotal   float64
	SkippedRows   int
}

// handleDashboard renders the report page. A data query parameter, if
// present, is decoded and merged into the dataset before rendering, so
// opening a shared link reproduces the sender's month.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "path", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	view := dashboardView{
		Year:       now.Year(),
		Month:      int(now.Month()),
		Categories: s.engine.Categories(),
	}

	if param := r.URL.Query().Get(share.Param); param != "" {
		s.applySharedData(r, param, &view)
	}

	view.MonthLabel = share.MonthLabel(view.Year, view.Month)
	if s.store.Len() > 0 {
		view.HasData = true
		view.Summary = s.summary(r.Context(), view.Year, view.Month)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "index.html", view); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed",
			"error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// applySharedData decodes a share parameter into the view and, for
// record payloads, merges the records into the store. Decode problems
// downgrade to a page warning, never an error response.
func (s *Server) applySharedData(r *http.Request, param string, view *dashboardView) {
	res, err := share.Decode(param)
	if err != nil {
		slog.WarnContext(r.Context(), "Share link rejected",
			"error", err, "param_length", len(param))
		switch {
		case errors.Is(err, share.ErrDecode):
			view.LinkWarning = "링크 데이터를 해독할 수 없습니다. 링크가 손상되었을 수 있습니다."
		case errors.Is(err, share.ErrParse):
			view.LinkWarning = "링크 데이터 형식이 올바르지 않습니다."
		default:
			view.LinkWarning = "링크에 표시할 데이터가 없습니다."
		}
		return
	}

	// Legacy summary links may omit month identity; keep the current
	// month rather than rendering year zero.
	if res.Year != 0 && res.Month != 0 {
		view.Year = res.Year
		view.Month = res.Month
	}
	view.Notes = res.Notes
	view.SkippedRows = res.Skipped

	switch res.Kind {
	case share.KindSummary:
		view.SummaryOnly = true
		view.LegacySummary = res.Summary
		view.LegacyTotal = res.SummaryTotal()
		slog.InfoContext(r.Context(), "Legacy summary link loaded",
			"year", res.Year, "month", res.Month)
	case share.KindRecords:
		s.store.ReplaceMonth(res.Year, res.Month, res.Records)
		s.invalidateReports()
		slog.InfoContext(r.Context(), "Share link loaded",
			"year", res.Year, "month", res.Month,
			"records", len(res.Records), "skipped", res.Skipped)
	}
}
