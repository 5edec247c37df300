// internal/app/features/register/handler.go
package register

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	gueststore "github.com/brightevents/gatepass/internal/app/store/guests"
	"github.com/brightevents/gatepass/internal/app/system/accesscode"
	"github.com/brightevents/gatepass/internal/app/system/activitylog"
	"github.com/brightevents/gatepass/internal/app/system/inputval"
	"github.com/brightevents/gatepass/internal/app/system/mailer"
	"github.com/brightevents/gatepass/internal/app/system/normalize"
	"github.com/brightevents/gatepass/internal/app/system/ratelimit"
	"github.com/brightevents/gatepass/internal/app/system/response"
	"github.com/brightevents/gatepass/internal/app/system/sanitize"
	"github.com/brightevents/gatepass/internal/app/system/timeouts"
	"github.com/brightevents/gatepass/internal/domain/models"
	"go.uber.org/zap"
)

// insertRetries bounds how many times the insert is retried when the
// unique access-code index reports a collision that the pre-check
// missed (two registrations racing on the same code).
const insertRetries = 3

// GuestStore is the subset of the guest store the registration
// workflow needs.
type GuestStore interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	CodeTaken(ctx context.Context, code string) (bool, error)
	Insert(ctx context.Context, g *models.Guest) error
}

// Handler owns the public registration endpoint.
type Handler struct {
	Guests   GuestStore
	Activity *activitylog.Logger
	Mail     mailer.Sender
	Event    mailer.EventDetails
	Limiter  *ratelimit.RegistrationLimiter // nil disables throttling
	Log      *zap.Logger
}

// NewHandler creates a new register Handler.
func NewHandler(guests GuestStore, activity *activitylog.Logger, mail mailer.Sender, event mailer.EventDetails, logger *zap.Logger) *Handler {
	return &Handler{
		Guests:   guests,
		Activity: activity,
		Mail:     mail,
		Event:    event,
		Log:      logger,
	}
}

// Serve handles POST /api/register.
//
// On success: 201 with the created guest, including its access code.
// Duplicate email: 409 DUPLICATE_EMAIL. Validation problems: 400
// INVALID_INPUT with per-field messages.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	if h.Limiter != nil {
		if allowed, reason := h.Limiter.Check(r); !allowed {
			response.TooManyRequests(w, reason)
			return
		}
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "request body is not valid JSON")
		return
	}

	form := inputval.RegistrationForm{
		FirstName:     normalize.Name(sanitize.Text(req.FirstName)),
		LastName:      normalize.Name(sanitize.Text(req.LastName)),
		Email:         normalize.Email(sanitize.Text(req.Email)),
		Phone:         normalize.Phone(sanitize.Text(req.Phone)),
		SocialURL:     sanitize.Text(req.SocialURL),
		Organization:  normalize.Name(sanitize.Text(req.Organization)),
		JobTitle:      normalize.Name(sanitize.Text(req.JobTitle)),
		GuestType:     sanitize.Text(req.GuestType),
		HowDidYouHear: sanitize.Text(req.HowDidYouHear),
	}

	if errs := inputval.ValidateRegistration(form, models.IsValidGuestType, models.IsValidHowDidYouHear); len(errs) > 0 {
		response.WriteFieldErrors(w, "registration form has invalid fields", errs)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// Friendly pre-check; the unique index is the real guard.
	exists, err := h.Guests.EmailExists(ctx, form.Email)
	if err != nil {
		h.Log.Error("register: email pre-check failed", zap.Error(err))
		response.InternalError(w, "registration is temporarily unavailable")
		return
	}
	if exists {
		response.WriteError(w, http.StatusConflict, "this email is already registered", response.CodeDuplicateEmail)
		return
	}

	guest := models.Guest{
		FirstName:     form.FirstName,
		LastName:      form.LastName,
		Email:         form.Email,
		Phone:         form.Phone,
		SocialURL:     form.SocialURL,
		Organization:  form.Organization,
		JobTitle:      form.JobTitle,
		GuestType:     form.GuestType,
		HowDidYouHear: form.HowDidYouHear,
	}

	if err := h.allocateAndInsert(ctx, &guest); err != nil {
		switch {
		case errors.Is(err, gueststore.ErrDuplicateEmail):
			response.WriteError(w, http.StatusConflict, "this email is already registered", response.CodeDuplicateEmail)
		case errors.Is(err, accesscode.ErrExhaustedRetries), errors.Is(err, gueststore.ErrDuplicateCode):
			h.Log.Error("register: access code allocation failed", zap.Error(err))
			response.WriteError(w, http.StatusServiceUnavailable, "could not allocate an access code", response.CodeCodeAllocationFailed)
		default:
			h.Log.Error("register: insert failed", zap.Error(err))
			response.InternalError(w, "registration is temporarily unavailable")
		}
		return
	}

	h.Activity.Registration(ctx, guest.FullName(), guest.Email, guest.Organization, guest.AccessCode)

	// Confirmation email is best effort after the record is committed;
	// a mail outage must not fail the registration.
	go h.sendConfirmation(guest)

	response.WriteJSON(w, http.StatusCreated, guest)
}

// allocateAndInsert resolves a free access code and inserts the guest.
// When the unique code index detects a race it retries with a fresh
// code; duplicate email errors are returned to the caller as-is.
func (h *Handler) allocateAndInsert(ctx context.Context, guest *models.Guest) error {
	var lastErr error
	for attempt := 0; attempt < insertRetries; attempt++ {
		code, err := accesscode.Resolve(ctx, accesscode.Generate, h.Guests.CodeTaken)
		if err != nil {
			return err
		}

		guest.AccessCode = code
		err = h.Guests.Insert(ctx, guest)
		if err == nil {
			return nil
		}
		if errors.Is(err, gueststore.ErrDuplicateCode) {
			lastErr = err
			continue
		}
		return err
	}
	return lastErr
}

func (h *Handler) sendConfirmation(guest models.Guest) {
	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Long())
	defer cancel()

	email := mailer.BuildConfirmationEmail(mailer.ConfirmationEmailData{
		GuestName:  guest.FullName(),
		AccessCode: guest.AccessCode,
		Event:      h.Event,
	})
	email.To = guest.Email
	email.ToName = guest.FullName()

	if err := h.Mail.Send(ctx, email); err != nil {
		h.Log.Warn("register: confirmation email failed",
			zap.String("email", guest.Email),
			zap.Error(err),
		)
	}
}
