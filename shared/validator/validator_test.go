package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type credentials struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signup struct {
	Name        string      `json:"name"`
	Credentials credentials `json:"loginDetails"`
}

func TestStruct(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	t.Run("valid payload", func(t *testing.T) {
		err := v.Struct(signup{Credentials: credentials{Email: "a@x.com", Password: "pw1"}})
		assert.NoError(t, err)
	})

	t.Run("missing and malformed fields are keyed by json path", func(t *testing.T) {
		err := v.Struct(signup{Credentials: credentials{Email: "not-an-email"}})
		require.Error(t, err)

		var fieldErrs FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Len(t, fieldErrs, 2)
		assert.Equal(t, "email must be a valid email address", fieldErrs["loginDetails.email"])
		assert.Equal(t, "password is a required field", fieldErrs["loginDetails.password"])
	})

	t.Run("non struct input", func(t *testing.T) {
		err := v.Struct("nope")
		require.Error(t, err)

		var fieldErrs FieldErrors
		assert.NotErrorAs(t, err, &fieldErrs)
	})
}
