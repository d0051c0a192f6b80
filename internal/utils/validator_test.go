package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("test@user.com"))
	assert.True(t, ValidateEmail("first.last+tag@sub.example.org"))
	assert.False(t, ValidateEmail("not-an-email"))
	assert.False(t, ValidateEmail("missing@tld"))
	assert.False(t, ValidateEmail(""))
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"Password123!", true},
		{"Abc123", true},
		{"Ab1", false},
		{"abcdef1", false},
		{"ABCDEF1", false},
		{"Abcdefg", false},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidatePassword(tt.password))
		})
	}
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "User@Example.COM", SanitizeEmail("  User@Example.COM "))
	assert.Equal(t, "Go basics", SanitizeTitle("  Go basics\n"))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("Password123!", bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("Password123!", hash))
	assert.False(t, CheckPasswordHash("password123!", hash))
}
