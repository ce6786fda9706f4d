package store

import (
	"time"

	"github.com/dmitrijs2005/userdir/internal/client/models"
)

// State is the observable state of the store.
type State struct {
	Users       []models.User
	Loading     bool
	Error       string
	LastFetched time.Time
}

// HasError reports whether the last fetch failed.
func (s State) HasError() bool {
	return s.Error != ""
}

func (s State) clone() State {
	c := s
	c.Users = make([]models.User, len(s.Users))
	copy(c.Users, s.Users)
	return c
}

// Detail is the result of a single-user lookup.
type Detail struct {
	User  *models.User
	Error string
	// Err is the failure behind Error, for callers that need to classify it.
	Err error
	// Cached is true when the record was served from the collection
	// (server users already loaded as well as local ones) rather than read
	// from the remote directory.
	Cached bool
}
