package report

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/rkap/internal/http/render"
	"github.com/MrJamesThe3rd/rkap/internal/report"
	"github.com/MrJamesThe3rd/rkap/internal/validation"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/categories", h.byCategory)
	r.Post("/items", h.byItem)
	r.Post("/attachments", h.attachments)
}

type reportRequest struct {
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
	ItemIDs   []int64 `json:"itemIds"`
}

func (req reportRequest) rng() (report.Range, error) {
	var rng report.Range

	for _, p := range []struct {
		key string
		raw string
		dst *time.Time
	}{
		{"startDate", req.StartDate, &rng.Start},
		{"endDate", req.EndDate, &rng.End},
	} {
		if p.raw == "" {
			continue
		}

		t, err := time.Parse(time.DateOnly, p.raw)
		if err != nil {
			return rng, validation.Field(p.key, "must be a date (YYYY-MM-DD)")
		}

		*p.dst = t
	}

	return rng, nil
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (reportRequest, report.Range, bool) {
	var req reportRequest
	if !render.Decode(w, r, &req) {
		return req, report.Range{}, false
	}

	rng, err := req.rng()
	if err != nil {
		render.Error(w, r, err)
		return req, rng, false
	}

	return req, rng, true
}

func (h *Handler) byCategory(w http.ResponseWriter, r *http.Request) {
	_, rng, ok := h.decode(w, r)
	if !ok {
		return
	}

	rep, err := h.svc.ByCategory(r.Context(), rng)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	writeWorkbook(w, r, rep, "rkap_categories", rng)
}

func (h *Handler) byItem(w http.ResponseWriter, r *http.Request) {
	req, rng, ok := h.decode(w, r)
	if !ok {
		return
	}

	rep, err := h.svc.ByItem(r.Context(), rng, req.ItemIDs)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	writeWorkbook(w, r, rep, "rkap_items", rng)
}

func writeWorkbook(w http.ResponseWriter, r *http.Request, rep *report.Report, prefix string, rng report.Range) {
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", disposition(prefix, rng, "xlsx"))

	if err := report.WriteXLSX(rep, w); err != nil {
		slog.ErrorContext(r.Context(), "failed to write workbook", "error", err)
	}
}

// attachments builds the archive in a temp file first so a failure can
// still be reported as JSON.
func (h *Handler) attachments(w http.ResponseWriter, r *http.Request) {
	_, rng, ok := h.decode(w, r)
	if !ok {
		return
	}

	tmp, err := os.CreateTemp("", "rkap-attachments-*.zip")
	if err != nil {
		render.Error(w, r, err)
		return
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := h.svc.WriteAttachments(r.Context(), rng, tmp); err != nil {
		render.Error(w, r, err)
		return
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		render.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", disposition("rkap_attachments", rng, "zip"))

	if _, err := io.Copy(w, tmp); err != nil {
		slog.ErrorContext(r.Context(), "failed to send archive", "error", err)
	}
}

func disposition(prefix string, rng report.Range, ext string) string {
	return fmt.Sprintf("attachment; filename=\"%s_%s_%s.%s\"",
		prefix, rng.Start.Format("20060102"), rng.End.Format("20060102"), ext)
}
