// internal/app/features/register/types.go
package register

// registerRequest is the JSON body for POST /api/register.
type registerRequest struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	SocialURL     string `json:"socialMediaUrl"`
	Organization  string `json:"organizationName"`
	JobTitle      string `json:"jobTitle"`
	GuestType     string `json:"guestType"`
	HowDidYouHear string `json:"howDidYouHear"`
}
