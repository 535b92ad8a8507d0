package reportshandler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jung-kurt/gofpdf"

	"staffdesk/internal/domain/auth"
	"staffdesk/internal/domain/leave"
	"staffdesk/internal/transport/http/api"
	"staffdesk/internal/transport/http/middleware"
	"staffdesk/internal/transport/http/shared"
)

const dateLayout = "2006-01-02"

type Handler struct {
	Leaves *leave.Service
}

func NewHandler(leaves *leave.Service) *Handler {
	return &Handler{Leaves: leaves}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermAdmin)).Get("/leaves.csv", h.handleLeavesCSV)
		r.With(middleware.RequirePermission(auth.PermAdmin)).Get("/leaves.pdf", h.handleLeavesPDF)
	})
}

func (h *Handler) loadLeaves(w http.ResponseWriter, r *http.Request) ([]leave.Leave, time.Time, time.Time, bool) {
	requestID := middleware.GetRequestID(r.Context())
	start, err := shared.ParseDate(r.URL.Query().Get("startDate"))
	if err != nil || start.IsZero() {
		api.Fail(w, http.StatusBadRequest, "validation_error", "invalid startDate", requestID)
		return nil, time.Time{}, time.Time{}, false
	}
	end, err := shared.ParseDate(r.URL.Query().Get("endDate"))
	if err != nil || end.IsZero() {
		api.Fail(w, http.StatusBadRequest, "validation_error", "invalid endDate", requestID)
		return nil, time.Time{}, time.Time{}, false
	}

	leaves, err := h.Leaves.ListInRange(r.Context(), start, end)
	if err != nil {
		if errors.Is(err, leave.ErrInvalidRange) {
			api.Fail(w, http.StatusBadRequest, "validation_error", "endDate must not precede startDate", requestID)
			return nil, time.Time{}, time.Time{}, false
		}
		api.Fail(w, http.StatusInternalServerError, "internal", "failed to load leaves", requestID)
		return nil, time.Time{}, time.Time{}, false
	}

	sort.Slice(leaves, func(i, j int) bool {
		if !leaves[i].StartDate.Equal(leaves[j].StartDate) {
			return leaves[i].StartDate.Before(leaves[j].StartDate)
		}
		return leaves[i].EmployeeID < leaves[j].EmployeeID
	})
	return leaves, start, end, true
}

func (h *Handler) handleLeavesCSV(w http.ResponseWriter, r *http.Request) {
	leaves, start, end, ok := h.loadLeaves(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(
		"attachment; filename=leaves_%s_%s.csv",
		start.Format(dateLayout), end.Format(dateLayout)))

	writer := csv.NewWriter(w)
	_ = writer.Write([]string{"leave_id", "employee_id", "start_date", "end_date", "type"})
	for _, l := range leaves {
		_ = writer.Write([]string{
			l.ID,
			l.EmployeeID,
			l.StartDate.Format(dateLayout),
			l.EndDate.Format(dateLayout),
			l.Type,
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		slog.Error("csv export failed", "error", err, "requestId", middleware.GetRequestID(r.Context()))
	}
}

func (h *Handler) handleLeavesPDF(w http.ResponseWriter, r *http.Request) {
	leaves, start, end, ok := h.loadLeaves(w, r)
	if !ok {
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, fmt.Sprintf("Leave report %s to %s", start.Format(dateLayout), end.Format(dateLayout)))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 10)
	widths := []float64{50, 35, 35, 30}
	headers := []string{"Employee", "Start", "End", "Type"}
	for i, header := range headers {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, l := range leaves {
		pdf.CellFormat(widths[0], 8, l.EmployeeID, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 8, l.StartDate.Format(dateLayout), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 8, l.EndDate.Format(dateLayout), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 8, l.Type, "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(
		"attachment; filename=leaves_%s_%s.pdf",
		start.Format(dateLayout), end.Format(dateLayout)))
	if err := pdf.Output(w); err != nil {
		slog.Error("pdf export failed", "error", err, "requestId", middleware.GetRequestID(r.Context()))
	}
}
