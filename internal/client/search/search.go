// Package search filters the user collection by a free-text query.
package search

import (
	"strings"

	"github.com/dmitrijs2005/userdir/internal/client/models"
)

// Filter returns the users whose name, username, email or company name
// contains query, ignoring case. A blank query returns users unchanged.
// The result keeps the input order.
func Filter(users []models.User, query string) []models.User {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return users
	}

	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if Matches(u, q) {
			out = append(out, u)
		}
	}
	return out
}

// Matches reports whether u matches the already lowercased query q.
func Matches(u models.User, q string) bool {
	for _, field := range [...]string{u.Name, u.Username, u.Email, u.Company.Name} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
