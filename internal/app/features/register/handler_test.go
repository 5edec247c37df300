package register_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/brightevents/gatepass/internal/app/features/register"
	"github.com/brightevents/gatepass/internal/app/store/activity"
	gueststore "github.com/brightevents/gatepass/internal/app/store/guests"
	"github.com/brightevents/gatepass/internal/app/system/activitylog"
	"github.com/brightevents/gatepass/internal/app/system/mailer"
	"github.com/brightevents/gatepass/internal/domain/models"
	"go.uber.org/zap"
)

type fakeGuests struct {
	emailExists bool
	takenCodes  map[string]bool
	insertErrs  []error
	inserted    []models.Guest
}

func (f *fakeGuests) EmailExists(context.Context, string) (bool, error) {
	return f.emailExists, nil
}

func (f *fakeGuests) CodeTaken(_ context.Context, code string) (bool, error) {
	return f.takenCodes[code], nil
}

func (f *fakeGuests) Insert(_ context.Context, g *models.Guest) error {
	if len(f.insertErrs) > 0 {
		err := f.insertErrs[0]
		f.insertErrs = f.insertErrs[1:]
		if err != nil {
			return err
		}
	}
	f.inserted = append(f.inserted, *g)
	return nil
}

type recordingAppender struct {
	entries []activity.Entry
}

func (r *recordingAppender) Append(_ context.Context, e activity.Entry) error {
	r.entries = append(r.entries, e)
	return nil
}

type channelSender struct {
	sent chan mailer.Email
}

func newChannelSender() *channelSender {
	return &channelSender{sent: make(chan mailer.Email, 1)}
}

func (s *channelSender) Send(_ context.Context, e mailer.Email) error {
	s.sent <- e
	return nil
}

func newTestHandler(guests *fakeGuests, appender *recordingAppender, sender mailer.Sender) *register.Handler {
	return register.NewHandler(
		guests,
		activitylog.New(appender, zap.NewNop(), activitylog.ModeDB),
		sender,
		mailer.EventDetails{Name: "Benefit Gala 2026"},
		zap.NewNop(),
	)
}

func validBody() string {
	return `{
		"firstName": "Ada",
		"lastName": "Lovelace",
		"email": "Ada@Example.com",
		"phone": "+27 11 555 1234",
		"organizationName": "Analytical Engines",
		"jobTitle": "Engineer",
		"guestType": "Visitor",
		"howDidYouHear": "Website"
	}`
}

func postRegister(t *testing.T, h *register.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Serve(rec, req)
	return rec
}

func TestServe_Success(t *testing.T) {
	guests := &fakeGuests{takenCodes: map[string]bool{}}
	appender := &recordingAppender{}
	sender := newChannelSender()
	h := newTestHandler(guests, appender, sender)

	rec := postRegister(t, h, validBody())

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if len(guests.inserted) != 1 {
		t.Fatalf("expected 1 inserted guest, got %d", len(guests.inserted))
	}
	g := guests.inserted[0]
	if g.Email != "ada@example.com" {
		t.Errorf("expected normalized email, got %q", g.Email)
	}
	if len(g.AccessCode) != 6 {
		t.Errorf("expected 6-char access code, got %q", g.AccessCode)
	}

	var got models.Guest
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to parse response JSON: %v", err)
	}
	if got.AccessCode != g.AccessCode {
		t.Errorf("expected response to include access code %q, got %q", g.AccessCode, got.AccessCode)
	}
}

func TestServe_RecordsActivity(t *testing.T) {
	guests := &fakeGuests{takenCodes: map[string]bool{}}
	appender := &recordingAppender{}
	h := newTestHandler(guests, appender, newChannelSender())

	rec := postRegister(t, h, validBody())
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	if len(appender.entries) != 1 {
		t.Fatalf("expected 1 activity entry, got %d", len(appender.entries))
	}
	e := appender.entries[0]
	if e.Type != activity.TypeRegistration {
		t.Errorf("expected registration entry, got %s", e.Type)
	}
	if e.PerformedBy != activity.PerformedBySystem {
		t.Errorf("expected performed_by System, got %s", e.PerformedBy)
	}
	if !strings.Contains(e.Details, "Ada Lovelace") {
		t.Errorf("expected guest name in details, got %q", e.Details)
	}
	if e.TargetGuest != "Ada Lovelace (ada@example.com)" {
		t.Errorf("expected target guest with name and email, got %q", e.TargetGuest)
	}
}

func TestServe_SendsConfirmationEmail(t *testing.T) {
	guests := &fakeGuests{takenCodes: map[string]bool{}}
	sender := newChannelSender()
	h := newTestHandler(guests, &recordingAppender{}, sender)

	rec := postRegister(t, h, validBody())
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	select {
	case email := <-sender.sent:
		if email.To != "ada@example.com" {
			t.Errorf("expected email to ada@example.com, got %q", email.To)
		}
		if !strings.Contains(email.TextBody, guests.inserted[0].AccessCode) {
			t.Error("expected access code in confirmation email")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected a confirmation email to be sent")
	}
}

func TestServe_DuplicateEmail(t *testing.T) {
	guests := &fakeGuests{emailExists: true, takenCodes: map[string]bool{}}
	h := newTestHandler(guests, &recordingAppender{}, newChannelSender())

	rec := postRegister(t, h, validBody())

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "DUPLICATE_EMAIL") {
		t.Errorf("expected DUPLICATE_EMAIL code, got %s", rec.Body.String())
	}
}

func TestServe_DuplicateEmail_RaceOnInsert(t *testing.T) {
	guests := &fakeGuests{
		takenCodes: map[string]bool{},
		insertErrs: []error{gueststore.ErrDuplicateEmail},
	}
	h := newTestHandler(guests, &recordingAppender{}, newChannelSender())

	rec := postRegister(t, h, validBody())

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "DUPLICATE_EMAIL") {
		t.Errorf("expected DUPLICATE_EMAIL code, got %s", rec.Body.String())
	}
}

func TestServe_RetriesOnCodeCollision(t *testing.T) {
	guests := &fakeGuests{
		takenCodes: map[string]bool{},
		insertErrs: []error{gueststore.ErrDuplicateCode, nil},
	}
	h := newTestHandler(guests, &recordingAppender{}, newChannelSender())

	rec := postRegister(t, h, validBody())

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 after retry, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(guests.inserted) != 1 {
		t.Fatalf("expected 1 inserted guest, got %d", len(guests.inserted))
	}
}

func TestServe_CodeAllocationExhausted(t *testing.T) {
	guests := &fakeGuests{
		takenCodes: map[string]bool{},
		insertErrs: []error{
			gueststore.ErrDuplicateCode,
			gueststore.ErrDuplicateCode,
			gueststore.ErrDuplicateCode,
		},
	}
	h := newTestHandler(guests, &recordingAppender{}, newChannelSender())

	rec := postRegister(t, h, validBody())

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "CODE_ALLOCATION_FAILED") {
		t.Errorf("expected CODE_ALLOCATION_FAILED code, got %s", rec.Body.String())
	}
}

func TestServe_ValidationErrors(t *testing.T) {
	guests := &fakeGuests{takenCodes: map[string]bool{}}
	h := newTestHandler(guests, &recordingAppender{}, newChannelSender())

	rec := postRegister(t, h, `{"firstName": "Ada"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var body struct {
		Code   string            `json:"code"`
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response JSON: %v", err)
	}
	if body.Code != "INVALID_INPUT" {
		t.Errorf("expected INVALID_INPUT code, got %s", body.Code)
	}
	if _, ok := body.Fields["email"]; !ok {
		t.Error("expected a field error for email")
	}
	if len(guests.inserted) != 0 {
		t.Error("expected no guest to be inserted")
	}
}

func TestServe_MalformedJSON(t *testing.T) {
	guests := &fakeGuests{takenCodes: map[string]bool{}}
	h := newTestHandler(guests, &recordingAppender{}, newChannelSender())

	rec := postRegister(t, h, "{not json")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestServe_SanitizesMarkup(t *testing.T) {
	guests := &fakeGuests{takenCodes: map[string]bool{}}
	h := newTestHandler(guests, &recordingAppender{}, newChannelSender())

	body := strings.Replace(validBody(), `"Ada"`, `"<b>Ada</b>"`, 1)
	rec := postRegister(t, h, body)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if guests.inserted[0].FirstName != "Ada" {
		t.Errorf("expected markup stripped from first name, got %q", guests.inserted[0].FirstName)
	}
}
