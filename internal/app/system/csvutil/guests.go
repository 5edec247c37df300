// internal/app/system/csvutil/guests.go
package csvutil

import (
	"encoding/csv"
	"io"
	"time"

	"github.com/brightevents/gatepass/internal/domain/models"
)

// guestHeader is the column layout of a roster export. Times are
// formatted in RFC 3339 UTC so spreadsheets sort them correctly.
var guestHeader = []string{
	"First Name",
	"Last Name",
	"Email",
	"Phone",
	"Organization",
	"Job Title",
	"Guest Type",
	"Access Code",
	"Registered At",
	"Checked In",
	"Checked In At",
	"Checked In By",
}

// WriteGuestsCSV writes the guest roster to w as CSV, header first.
func WriteGuestsCSV(w io.Writer, guests []models.Guest) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(guestHeader); err != nil {
		return err
	}

	for _, g := range guests {
		checkedIn := "no"
		checkedInAt := ""
		if g.CheckedIn {
			checkedIn = "yes"
			if g.CheckedInAt != nil {
				checkedInAt = g.CheckedInAt.UTC().Format(time.RFC3339)
			}
		}

		row := []string{
			g.FirstName,
			g.LastName,
			g.Email,
			g.Phone,
			g.Organization,
			g.JobTitle,
			g.GuestType,
			g.AccessCode,
			g.RegisteredAt.UTC().Format(time.RFC3339),
			checkedIn,
			checkedInAt,
			g.CheckedInBy,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
