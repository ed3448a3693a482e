package http

import (
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"maechul/internal/ingest"
)

// handleUpload ingests an uploaded workbook, replacing the whole
// dataset with the parsed records.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		slog.WarnContext(r.Context(), "Upload form rejected", "error", err)
		BadRequestError("업로드 요청을 읽을 수 없습니다").Write(w)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		BadRequestError("파일이 첨부되지 않았습니다").Write(w)
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".xlsx" {
		UnprocessableEntityError("xlsx 파일만 업로드할 수 있습니다").Write(w)
		return
	}

	records, err := s.parser.Parse(file)
	if err != nil {
		if errors.Is(err, ingest.ErrNoRecords) {
			slog.WarnContext(r.Context(), "Workbook contains no usable rows",
				"file_name", header.Filename, "file_size", header.Size)
			UnprocessableEntityError("파일에서 매출 데이터를 찾을 수 없습니다").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Workbook parse failed",
			"error", err, "file_name", header.Filename, "file_size", header.Size)
		UnprocessableEntityError("파일을 해석할 수 없습니다").Write(w)
		return
	}

	s.store.ReplaceAll(records)
	s.invalidateReports()

	months := s.store.Months()
	slog.InfoContext(r.Context(), "Workbook ingested",
		"file_name", header.Filename,
		"file_size", header.Size,
		"records", len(records),
		"months", len(months))

	type monthInfo struct {
		Year  int `json:"year"`
		Month int `json:"month"`
	}
	out := struct {
		Records int         `json:"records"`
		Months  []monthInfo `json:"months"`
	}{Records: len(records)}
	for _, ym := range months {
		out.Months = append(out.Months, monthInfo{Year: ym.Year, Month: ym.Month})
	}
	NewResponse().JSON(out).Write(w)
}
