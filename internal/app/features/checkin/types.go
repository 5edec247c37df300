// internal/app/features/checkin/types.go
package checkin

import "github.com/brightevents/gatepass/internal/domain/models"

// searchResponse is the JSON body for GET /api/check-in/search.
type searchResponse struct {
	Results []models.Guest `json:"results"`
}

// confirmRequest is the JSON body for POST /api/check-in/confirm.
type confirmRequest struct {
	GuestID string `json:"guestId"`
}
