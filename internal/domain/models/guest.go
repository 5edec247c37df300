// internal/domain/models/guest.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Guest types (closed set).
const (
	GuestTypeActiveClient      = "Active Client"
	GuestTypeProspectiveClient = "Prospective Client"
	GuestTypeVisitor           = "Visitor"
	GuestTypeFriendOfTheHouse  = "Friend of the House"
	GuestTypeMediaPress        = "Media/Press"
	GuestTypeOrganizer         = "Organizer"
)

// GuestTypes lists the accepted guest_type values.
var GuestTypes = []string{
	GuestTypeActiveClient,
	GuestTypeProspectiveClient,
	GuestTypeVisitor,
	GuestTypeFriendOfTheHouse,
	GuestTypeMediaPress,
	GuestTypeOrganizer,
}

// HowDidYouHear options (closed set).
var HowDidYouHearOptions = []string{
	"Social Media",
	"Email",
	"Friend/Colleague",
	"Website",
	"Event Partner",
	"Other",
}

// Guest represents a registered event attendee.
//
// Invariants:
//   - Email is stored lowercase and is unique across the collection.
//   - AccessCode is unique across the collection.
//   - CheckedInAt is non-nil iff CheckedIn is true; once true the flag
//     never reverts (check-in is a one-way transition).
type Guest struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName     string             `bson:"first_name" json:"firstName"`
	FirstNameCI   string             `bson:"first_name_ci" json:"-"` // lowercase, diacritics-stripped
	LastName      string             `bson:"last_name" json:"lastName"`
	LastNameCI    string             `bson:"last_name_ci" json:"-"`
	Email         string             `bson:"email" json:"email"`
	Phone         string             `bson:"phone" json:"phone"`
	SocialURL     string             `bson:"social_url,omitempty" json:"socialMediaUrl,omitempty"`
	Organization  string             `bson:"organization" json:"organizationName"`
	JobTitle      string             `bson:"job_title" json:"jobTitle"`
	GuestType     string             `bson:"guest_type" json:"guestType"`
	HowDidYouHear string             `bson:"how_did_you_hear" json:"howDidYouHear"`

	AccessCode string `bson:"access_code" json:"accessCode"`

	CheckedIn    bool       `bson:"checked_in" json:"checkedIn"`
	RegisteredAt time.Time  `bson:"registered_at" json:"registeredAt"`
	CheckedInAt  *time.Time `bson:"checked_in_at,omitempty" json:"checkedInAt"`
	CheckedInBy  string     `bson:"checked_in_by,omitempty" json:"checkedInBy,omitempty"`
}

// FullName returns the guest's display name.
func (g Guest) FullName() string {
	return g.FirstName + " " + g.LastName
}

// IsValidGuestType reports whether t is one of the accepted guest types.
func IsValidGuestType(t string) bool {
	for _, v := range GuestTypes {
		if v == t {
			return true
		}
	}
	return false
}

// IsValidHowDidYouHear reports whether h is one of the accepted options.
func IsValidHowDidYouHear(h string) bool {
	for _, v := range HowDidYouHearOptions {
		if v == h {
			return true
		}
	}
	return false
}
