package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateForm(t *testing.T) {
	tests := []struct {
		name  string
		user  string
		email string
		want  FormErrors
	}{
		{name: "valid", user: "Ada", email: "ada@x.com"},
		{name: "trimmed valid", user: "  Al ", email: " al@x.io "},
		{name: "missing both", want: FormErrors{"name": "Name is required", "email": "Email is required"}},
		{name: "short name", user: "A", email: "a@x.com", want: FormErrors{"name": "Name must be at least 2 characters"}},
		{name: "no at", user: "Ada", email: "ada.x.com", want: FormErrors{"email": "Please enter a valid email address"}},
		{name: "no dot in domain", user: "Ada", email: "ada@x", want: FormErrors{"email": "Please enter a valid email address"}},
		{name: "space in email", user: "Ada", email: "a da@x.com", want: FormErrors{"email": "Please enter a valid email address"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateForm(tt.user, tt.email)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			var fe FormErrors
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.want, fe)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func TestFormErrors_ErrorIsSorted(t *testing.T) {
	fe := FormErrors{"name": "Name is required", "email": "Email is required"}
	assert.Equal(t, "email: Email is required; name: Name is required", fe.Error())
}

func TestReadDraft(t *testing.T) {
	t.Run("required only", func(t *testing.T) {
		var out bytes.Buffer
		d, err := readDraft(rdr("Ada\nada@x.com\n\n\n\n\n"), &out)
		require.NoError(t, err)
		assert.Equal(t, models.Draft{Name: "Ada", Email: "ada@x.com"}, d)
		assert.Contains(t, out.String(), "Company (optional)")
	})

	t.Run("all fields", func(t *testing.T) {
		d, err := readDraft(rdr("Ada Lovelace\nada@x.com\nAnalytical\n123\nada.dev\nMain St, Apt 1, London, N1\n"), &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "Analytical", d.Company)
		assert.Equal(t, "123", d.Phone)
		assert.Equal(t, "ada.dev", d.Website)
		require.NotNil(t, d.Address)
		assert.Equal(t, "London", d.Address.City)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := readDraft(rdr("A\nnope\n\n\n\n\n"), &bytes.Buffer{})
		var fe FormErrors
		require.True(t, errors.As(err, &fe))
		assert.Len(t, fe, 2)
	})

	t.Run("input ends early", func(t *testing.T) {
		_, err := readDraft(rdr("Ada\n"), &bytes.Buffer{})
		assert.Error(t, err)
	})
}

func TestReadEdit(t *testing.T) {
	u := models.NewLocalUser(7, models.Draft{Name: "Ada", Email: "ada@x.com"})
	u.Address.Geo = models.Geo{Lat: "1.5", Lng: "2.5"}

	t.Run("empty input keeps everything", func(t *testing.T) {
		got, err := readEdit(rdr("\n\n\n\n\n\n"), &bytes.Buffer{}, u)
		require.NoError(t, err)
		assert.Equal(t, u, got)
	})

	t.Run("changes selected fields", func(t *testing.T) {
		got, err := readEdit(rdr("Ada L\n\nACME\n\n\nNew St, , Paris\n"), &bytes.Buffer{}, u)
		require.NoError(t, err)
		assert.Equal(t, "Ada L", got.Name)
		assert.Equal(t, u.Email, got.Email)
		assert.Equal(t, "ACME", got.Company.Name)
		assert.Equal(t, u.Company.CatchPhrase, got.Company.CatchPhrase)
		assert.Equal(t, "New St", got.Address.Street)
		assert.Equal(t, "Suite 100", got.Address.Suite)
		assert.Equal(t, "Paris", got.Address.City)
		assert.Equal(t, u.Address.Geo, got.Address.Geo)
		assert.Equal(t, u.Username, got.Username)
		assert.Equal(t, u.ID, got.ID)
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		_, err := readEdit(rdr("\nbad\n\n\n\n\n"), &bytes.Buffer{}, u)
		assert.ErrorIs(t, err, common.ErrValidation)
	})
}
