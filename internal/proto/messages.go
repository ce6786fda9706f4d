package proto

import "github.com/dmitrijs2005/userdir/internal/client/models"

// StateMessage mirrors the collection state of the store.
// LastFetched is Unix milliseconds, 0 when the list was never fetched.
type StateMessage struct {
	Users       []models.User `json:"users"`
	Loading     bool          `json:"loading"`
	Error       string        `json:"error,omitempty"`
	LastFetched int64         `json:"last_fetched,omitempty"`
}

type FetchAllRequest struct {
	Force bool `json:"force"`
}

type AddLocalRequest struct {
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Company string          `json:"company,omitempty"`
	Phone   string          `json:"phone,omitempty"`
	Website string          `json:"website,omitempty"`
	Address *models.Address `json:"address,omitempty"`
}

type UserMessage struct {
	User models.User `json:"user"`
}

type UpdateRequest struct {
	User models.User `json:"user"`
}

type UpdateResponse struct {
	Found bool `json:"found"`
}

type RemoveRequest struct {
	ID int64 `json:"id"`
}

type RemoveResponse struct {
	Found bool `json:"found"`
}

type GetUserRequest struct {
	ID int64 `json:"id"`
}
