// internal/app/features/guests/handler.go
package guests

import (
	"context"
	"net/http"

	"github.com/brightevents/gatepass/internal/app/system/csvutil"
	"github.com/brightevents/gatepass/internal/app/system/response"
	"github.com/brightevents/gatepass/internal/app/system/timeouts"
	"github.com/brightevents/gatepass/internal/domain/models"
	"go.uber.org/zap"
)

// GuestStore is the subset of the guest store the directory needs.
type GuestStore interface {
	List(ctx context.Context) ([]models.Guest, error)
}

// Handler serves the admin guest directory.
type Handler struct {
	Guests GuestStore
	Log    *zap.Logger
}

// NewHandler creates a new guests Handler.
func NewHandler(guests GuestStore, logger *zap.Logger) *Handler {
	return &Handler{Guests: guests, Log: logger}
}

// listResponse is the JSON body for GET /api/guests.
type listResponse struct {
	Guests    []models.Guest `json:"guests"`
	Total     int            `json:"total"`
	CheckedIn int            `json:"checkedIn"`
}

// List handles GET /api/guests. Guests are returned newest
// registration first, with headline counts for the dashboard.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	guests, err := h.Guests.List(ctx)
	if err != nil {
		h.Log.Error("guests: list failed", zap.Error(err))
		response.InternalError(w, "guest directory is temporarily unavailable")
		return
	}
	if guests == nil {
		guests = []models.Guest{}
	}

	checkedIn := 0
	for _, g := range guests {
		if g.CheckedIn {
			checkedIn++
		}
	}

	response.WriteJSON(w, http.StatusOK, listResponse{
		Guests:    guests,
		Total:     len(guests),
		CheckedIn: checkedIn,
	})
}

// Export handles GET /api/guests/export. Streams the roster as a CSV
// download for offline door lists and post-event reporting.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	guests, err := h.Guests.List(ctx)
	if err != nil {
		h.Log.Error("guests: export list failed", zap.Error(err))
		response.InternalError(w, "guest directory is temporarily unavailable")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="guests.csv"`)
	if err := csvutil.WriteGuestsCSV(w, guests); err != nil {
		// Headers are gone at this point; log and give up.
		h.Log.Error("guests: csv write failed", zap.Error(err))
	}
}
