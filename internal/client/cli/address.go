package cli

import (
	"strings"

	"github.com/dmitrijs2005/userdir/internal/client/models"
)

// ParseAddress splits free text of the form "street, suite, city, zipcode"
// into an address. Missing or blank parts take the local-user defaults.
func ParseAddress(s string) models.Address {
	a := models.DefaultAddress()
	targets := []*string{&a.Street, &a.Suite, &a.City, &a.Zipcode}

	for i, part := range strings.Split(s, ",") {
		if i >= len(targets) {
			break
		}
		if part = strings.TrimSpace(part); part != "" {
			*targets[i] = part
		}
	}
	return a
}

// FormatAddress renders a as "street, suite, city zipcode".
func FormatAddress(a models.Address) string {
	return a.Street + ", " + a.Suite + ", " + a.City + " " + a.Zipcode
}

// addressLine renders a in the form ParseAddress accepts.
func addressLine(a models.Address) string {
	return strings.Join([]string{a.Street, a.Suite, a.City, a.Zipcode}, ", ")
}
