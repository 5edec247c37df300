// internal/app/features/checkin/handler.go
package checkin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	gueststore "github.com/brightevents/gatepass/internal/app/store/guests"
	"github.com/brightevents/gatepass/internal/app/system/accesscode"
	"github.com/brightevents/gatepass/internal/app/system/activitylog"
	"github.com/brightevents/gatepass/internal/app/system/auth"
	"github.com/brightevents/gatepass/internal/app/system/mailer"
	"github.com/brightevents/gatepass/internal/app/system/normalize"
	"github.com/brightevents/gatepass/internal/app/system/response"
	"github.com/brightevents/gatepass/internal/app/system/sanitize"
	"github.com/brightevents/gatepass/internal/app/system/timeouts"
	"github.com/brightevents/gatepass/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// GuestStore is the subset of the guest store the check-in workflow needs.
type GuestStore interface {
	GetByAccessCode(ctx context.Context, code string) (models.Guest, error)
	SearchByName(ctx context.Context, query string) ([]models.Guest, error)
	ConfirmCheckIn(ctx context.Context, id primitive.ObjectID, actor string, at time.Time) (models.Guest, error)
}

// Handler owns the check-in desk endpoints.
type Handler struct {
	Guests   GuestStore
	Activity *activitylog.Logger
	Mail     mailer.Sender
	Event    mailer.EventDetails
	Log      *zap.Logger
}

// NewHandler creates a new checkin Handler.
func NewHandler(guests GuestStore, activity *activitylog.Logger, mail mailer.Sender, event mailer.EventDetails, logger *zap.Logger) *Handler {
	return &Handler{Guests: guests, Activity: activity, Mail: mail, Event: event, Log: logger}
}

// Search handles GET /api/check-in/search?q=...
//
// A query that looks like an access code is resolved by exact code
// lookup first; everything else (and codes that match no guest) falls
// back to a case-insensitive name search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := sanitize.Text(r.URL.Query().Get("q"))
	if q == "" {
		response.BadRequest(w, "query parameter q is required")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if code := normalize.Query(q); accesscode.IsWellFormed(code) {
		guest, err := h.Guests.GetByAccessCode(ctx, code)
		if err == nil {
			response.WriteJSON(w, http.StatusOK, searchResponse{Results: []models.Guest{guest}})
			return
		}
		if !errors.Is(err, gueststore.ErrNotFound) {
			h.Log.Error("checkin: code lookup failed", zap.Error(err))
			response.InternalError(w, "search is temporarily unavailable")
			return
		}
		// fall through to name search
	}

	results, err := h.Guests.SearchByName(ctx, q)
	if err != nil {
		h.Log.Error("checkin: name search failed", zap.Error(err))
		response.InternalError(w, "search is temporarily unavailable")
		return
	}
	if results == nil {
		results = []models.Guest{}
	}
	response.WriteJSON(w, http.StatusOK, searchResponse{Results: results})
}

// Confirm handles POST /api/check-in/confirm.
//
// The flag flip is a single conditional update, so two stations racing
// on the same guest produce exactly one success; the loser receives the
// 409 ALREADY_CHECKED_IN envelope carrying the winning record.
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "request body is not valid JSON")
		return
	}

	id, err := primitive.ObjectIDFromHex(req.GuestID)
	if err != nil {
		response.BadRequest(w, "guestId is not a valid id")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	actor := auth.ActorEmail(r)
	guest, err := h.Guests.ConfirmCheckIn(ctx, id, actor, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, gueststore.ErrAlreadyCheckedIn):
			response.WriteAlreadyCheckedIn(w, guest)
		case errors.Is(err, gueststore.ErrNotFound):
			response.NotFound(w, "guest not found")
		default:
			h.Log.Error("checkin: confirm failed", zap.Error(err))
			response.InternalError(w, "check-in is temporarily unavailable")
		}
		return
	}

	h.Activity.CheckIn(ctx, actor, guest.FullName(), guest.Email, guest.AccessCode)

	// Welcome email is best effort after the state transition committed;
	// a mail outage must not fail the check-in.
	go h.sendWelcome(guest)

	response.WriteJSON(w, http.StatusOK, guest)
}

func (h *Handler) sendWelcome(guest models.Guest) {
	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Long())
	defer cancel()

	email := mailer.BuildWelcomeEmail(mailer.WelcomeEmailData{
		GuestName: guest.FullName(),
		Event:     h.Event,
	})
	email.To = guest.Email
	email.ToName = guest.FullName()

	if err := h.Mail.Send(ctx, email); err != nil {
		h.Log.Warn("checkin: welcome email failed",
			zap.String("email", guest.Email),
			zap.Error(err),
		)
	}
}
