// internal/app/system/inputval/inputval.go
package inputval

import (
	"net/mail"
	"net/url"
	"strings"
)

// Field length caps. Generous for real-world names and organizations
// while keeping obviously abusive payloads out of the database.
const (
	maxNameLen  = 100
	maxEmailLen = 254
	maxPhoneLen = 32
	maxOrgLen   = 200
	maxTitleLen = 150
	maxURLLen   = 500
)

// IsValidEmail reports whether s is a plausible email address.
// Display-name forms ("Name <a@b>") are rejected; only the bare
// address is accepted.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxEmailLen {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s
}

// IsValidHTTPURL reports whether s is an absolute http(s) URL.
func IsValidHTTPURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxURLLen {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// RegistrationForm is the already-sanitized registration input.
type RegistrationForm struct {
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	SocialURL     string
	Organization  string
	JobTitle      string
	GuestType     string
	HowDidYouHear string
}

// GuestTypeChecker reports whether a guest type is in the closed set.
// models.IsValidGuestType satisfies it.
type GuestTypeChecker func(string) bool

// ValidateRegistration returns per-field error messages. An empty map
// means the form is acceptable.
func ValidateRegistration(f RegistrationForm, validGuestType, validHowHeard GuestTypeChecker) map[string]string {
	errs := map[string]string{}

	requireName(errs, "firstName", f.FirstName)
	requireName(errs, "lastName", f.LastName)

	if f.Email == "" {
		errs["email"] = "email is required"
	} else if !IsValidEmail(f.Email) {
		errs["email"] = "email is not a valid address"
	}

	if f.Phone == "" {
		errs["phone"] = "phone is required"
	} else if len(f.Phone) > maxPhoneLen {
		errs["phone"] = "phone is too long"
	}

	if f.SocialURL != "" && !IsValidHTTPURL(f.SocialURL) {
		errs["socialMediaUrl"] = "social media URL must be an http(s) link"
	}

	if f.Organization == "" {
		errs["organizationName"] = "organization is required"
	} else if len(f.Organization) > maxOrgLen {
		errs["organizationName"] = "organization is too long"
	}

	if len(f.JobTitle) > maxTitleLen {
		errs["jobTitle"] = "job title is too long"
	}

	if f.GuestType == "" {
		errs["guestType"] = "guest type is required"
	} else if !validGuestType(f.GuestType) {
		errs["guestType"] = "guest type is not one of the accepted options"
	}

	if f.HowDidYouHear == "" {
		errs["howDidYouHear"] = "how did you hear is required"
	} else if !validHowHeard(f.HowDidYouHear) {
		errs["howDidYouHear"] = "how did you hear is not one of the accepted options"
	}

	return errs
}

func requireName(errs map[string]string, field, value string) {
	if value == "" {
		errs[field] = field + " is required"
		return
	}
	if len(value) > maxNameLen {
		errs[field] = field + " is too long"
	}
}
