// internal/app/features/activityfeed/handler.go
package activityfeed

import (
	"context"
	"net/http"
	"strconv"

	"github.com/brightevents/gatepass/internal/app/store/activity"
	"github.com/brightevents/gatepass/internal/app/system/response"
	"github.com/brightevents/gatepass/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// maxLimit caps how many entries one request can pull.
const maxLimit = 500

// EntrySource is the query side of the activity store.
type EntrySource interface {
	Query(ctx context.Context, filter activity.QueryFilter) ([]activity.Entry, error)
}

// Handler serves the admin activity log feed.
type Handler struct {
	Entries EntrySource
	Log     *zap.Logger
}

// NewHandler creates a new activityfeed Handler.
func NewHandler(entries EntrySource, logger *zap.Logger) *Handler {
	return &Handler{Entries: entries, Log: logger}
}

// feedResponse is the JSON body for GET /api/admin/logs.
type feedResponse struct {
	Entries []activity.Entry `json:"entries"`
}

var knownTypes = map[string]bool{
	activity.TypeRegistration: true,
	activity.TypeCheckIn:      true,
	activity.TypeAdminCreated: true,
	activity.TypeAdminLogin:   true,
}

// Serve handles GET /api/admin/logs?type=...&limit=...
//
// Entries come back newest first. The type filter accepts one of the
// four entry types; limit defaults to 100 and is capped at 500.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	typeFilter := r.URL.Query().Get("type")
	if typeFilter != "" && !knownTypes[typeFilter] {
		response.BadRequest(w, "type must be one of registration, check_in, admin_created, admin_login")
		return
	}

	var limit int64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			response.BadRequest(w, "limit must be a positive integer")
			return
		}
		if n > maxLimit {
			n = maxLimit
		}
		limit = n
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	entries, err := h.Entries.Query(ctx, activity.QueryFilter{Type: typeFilter, Limit: limit})
	if err != nil {
		h.Log.Error("activityfeed: query failed", zap.Error(err))
		response.InternalError(w, "activity log is temporarily unavailable")
		return
	}
	if entries == nil {
		entries = []activity.Entry{}
	}
	response.WriteJSON(w, http.StatusOK, feedResponse{Entries: entries})
}
