// Package models defines the directory records exchanged with the upstream
// users API and held by the collection store.
package models

import (
	"strings"
	"unicode"
)

// Defaults applied to optional fields of locally created users.
const (
	DefaultCompanyName = "Unknown Company"
	DefaultCatchPhrase = "Local user - no catchphrase available"
	DefaultBS          = "Local user business description"
	DefaultPhone       = "+1-555-0123"
	DefaultWebsite     = "https://example.com"
	DefaultStreet      = "Local User Street"
	DefaultSuite       = "Suite 100"
	DefaultCity        = "Local City"
	DefaultZipcode     = "12345"
	DefaultCoordinate  = "0.0000"
)

// User is a directory record. The JSON layout matches the upstream API; YAML
// uses the same keys.
type User struct {
	ID       int64   `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Email    string  `json:"email" yaml:"email"`
	Username string  `json:"username" yaml:"username"`
	Company  Company `json:"company" yaml:"company"`
	Address  Address `json:"address" yaml:"address"`
	Phone    string  `json:"phone" yaml:"phone"`
	Website  string  `json:"website" yaml:"website"`
}

type Company struct {
	Name        string `json:"name" yaml:"name"`
	CatchPhrase string `json:"catchPhrase" yaml:"catchPhrase"`
	BS          string `json:"bs" yaml:"bs"`
}

type Address struct {
	Street  string `json:"street" yaml:"street"`
	Suite   string `json:"suite" yaml:"suite"`
	City    string `json:"city" yaml:"city"`
	Zipcode string `json:"zipcode" yaml:"zipcode"`
	Geo     Geo    `json:"geo" yaml:"geo"`
}

type Geo struct {
	Lat string `json:"lat" yaml:"lat"`
	Lng string `json:"lng" yaml:"lng"`
}

// Draft is the input for creating a local user. Name and Email are
// required; blank optional fields are replaced by defaults.
type Draft struct {
	Name    string
	Email   string
	Company string
	Phone   string
	Website string
	Address *Address
}

// DefaultAddress is the placeholder address of a local user.
func DefaultAddress() Address {
	return Address{
		Street:  DefaultStreet,
		Suite:   DefaultSuite,
		City:    DefaultCity,
		Zipcode: DefaultZipcode,
		Geo:     Geo{Lat: DefaultCoordinate, Lng: DefaultCoordinate},
	}
}

// UsernameFromName lowercases name and drops all whitespace.
func UsernameFromName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NewLocalUser builds a full User from d with the given id.
func NewLocalUser(id int64, d Draft) User {
	name := strings.TrimSpace(d.Name)

	addr := DefaultAddress()
	if d.Address != nil {
		addr.Street = orDefault(d.Address.Street, DefaultStreet)
		addr.Suite = orDefault(d.Address.Suite, DefaultSuite)
		addr.City = orDefault(d.Address.City, DefaultCity)
		addr.Zipcode = orDefault(d.Address.Zipcode, DefaultZipcode)
		addr.Geo.Lat = orDefault(d.Address.Geo.Lat, DefaultCoordinate)
		addr.Geo.Lng = orDefault(d.Address.Geo.Lng, DefaultCoordinate)
	}

	return User{
		ID:       id,
		Name:     name,
		Email:    strings.TrimSpace(d.Email),
		Username: UsernameFromName(name),
		Company: Company{
			Name:        orDefault(d.Company, DefaultCompanyName),
			CatchPhrase: DefaultCatchPhrase,
			BS:          DefaultBS,
		},
		Address: addr,
		Phone:   orDefault(d.Phone, DefaultPhone),
		Website: orDefault(d.Website, DefaultWebsite),
	}
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}
