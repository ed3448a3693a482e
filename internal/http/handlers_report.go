package http

import (
	"net/http"
)

// handleReport serves the aggregated month summary as JSON.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodGet); resp != nil {
		resp.Write(w)
		return
	}

	params, err := ParseMonthParams(r.URL.Query())
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	NewResponse().JSON(s.summary(r.Context(), params.Year, params.Month)).Write(w)
}
