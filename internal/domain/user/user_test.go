//go:build unit

package user_test

import (
	"testing"

	"cardshop/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRole(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  user.Role
		errIs error
	}{
		{name: "customer", input: "customer", want: user.RoleCustomer},
		{name: "staff", input: "staff", want: user.RoleStaff},
		{name: "admin", input: "admin", want: user.RoleAdmin},
		{name: "unknown role", input: "viewer", errIs: user.ErrInvalidRole},
		{name: "empty", input: "", errIs: user.ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := user.NewRole(tt.input)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewEmail(t *testing.T) {
	email, err := user.NewEmail("  Buyer@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", email.Value())

	for _, bad := range []string{"", "buyer", "buyer@", "@example.com", "buyer@example"} {
		_, err := user.NewEmail(bad)
		assert.ErrorIs(t, err, user.ErrInvalidEmail, bad)
	}
}
