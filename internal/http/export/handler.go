package export

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/finsight/internal/export"
	"github.com/MrJamesThe3rd/finsight/internal/http/auth"
	"github.com/MrJamesThe3rd/finsight/internal/http/query"
	"github.com/MrJamesThe3rd/finsight/internal/http/respond"
)

type Handler struct {
	svc   *export.Service
	today func() time.Time
}

func NewHandler(svc *export.Service, today func() time.Time) *Handler {
	return &Handler{svc: svc, today: today}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
}

// download streams a zip with the transactions and summary of the requested window.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.OwnerFromContext(r.Context())

	win, err := query.Window(r, h.today())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	report, err := h.svc.Build(r.Context(), owner, win)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename()))

	if err := report.WriteZip(w); err != nil {
		slog.Error("failed to write export", "error", err, "owner", owner)
	}
}
