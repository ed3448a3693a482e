package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"maechul/internal/share"
)

// handleShare mints a share link for one month of the current dataset.
// Accepts JSON or form-encoded bodies with year, month and notes.
func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}

	body := NewRequestBodyParser(r)
	if err := body.Parse(); err != nil {
		BadRequestError("요청 본문을 읽을 수 없습니다").Write(w)
		return
	}

	params, err := parseMonthValues(body.Get("year"), body.Get("month"))
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	notes := body.Get("notes")

	records := s.store.Month(params.Year, params.Month)
	link, err := share.Encode(s.cfg.BaseURL, params.Year, params.Month, records, notes)
	if err != nil {
		if errors.Is(err, share.ErrNoData) {
			UnprocessableEntityError("해당 월에 공유할 데이터가 없습니다").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Share link encode failed",
			"error", err, "year", params.Year, "month", params.Month)
		InternalServerError("링크 생성에 실패했습니다").Write(w)
		return
	}

	oversized := link.OversizedFor(s.cfg.ShareURLWarnLength)
	if oversized {
		slog.WarnContext(r.Context(), "Share URL exceeds recommended length",
			"url_length", len(link.URL),
			"limit", s.cfg.ShareURLWarnLength,
			"records", len(records))
	}
	slog.InfoContext(r.Context(), "Share link created",
		"year", params.Year, "month", params.Month,
		"records", len(records), "url_length", len(link.URL))

	NewResponse().JSON(struct {
		URL       string `json:"url"`
		Length    int    `json:"length"`
		Oversized bool   `json:"oversized"`
	}{URL: link.URL, Length: len(link.URL), Oversized: oversized}).Write(w)
}

// parseMonthValues validates explicit year and month strings, both
// required here: minting a link for an implicit month would be easy to
// get wrong from the client side.
func parseMonthValues(yearStr, monthStr string) (MonthParams, error) {
	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 1 {
		return MonthParams{}, errInvalidYear
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return MonthParams{}, errInvalidMonth
	}
	return MonthParams{Year: year, Month: month}, nil
}
