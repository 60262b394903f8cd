package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		userID   string
		marker   string
		want     string
	}{
		{
			name:     "basic",
			password: "abc",
			userID:   "X",
			marker:   "#",
			want:     "#aXbXc#",
		},
		{
			name:     "single char password has no joins",
			password: "a",
			userID:   "X",
			marker:   "#",
			want:     "#a#",
		},
		{
			name:     "empty password is just markers",
			password: "",
			userID:   "X",
			marker:   "#",
			want:     "##",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EncodePassword(tt.password, tt.userID, tt.marker))
		})
	}
}

func TestDecodePassword_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		password string
		userID   string
		marker   string
	}{
		{"short", "demo", "3f1c9a2e-0b4d-4f6e-8a7b-1c2d3e4f5a6b", "@@secret@@"},
		{"max length", "pass1234", "9e8d7c6b-5a49-4837-2615-04f3e2d1c0b9", "||m||"},
		{"digits", "0000", "ab12cd34-ef56-7890-ab12-cd34ef567890", "~mark~"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stored := EncodePassword(tt.password, tt.userID, tt.marker)
			assert.Equal(t, tt.password, DecodePassword(stored, tt.userID, tt.marker))
		})
	}
}

func TestDecodePassword_NoMarker(t *testing.T) {
	assert.Equal(t, "", DecodePassword("plaintext", "id", "#"))
	assert.Equal(t, "", DecodePassword("", "id", "#"))
}

func TestDecodePassword_WrongID(t *testing.T) {
	stored := EncodePassword("abcd", "real-id", "#")
	// A lookup keyed by the wrong id leaves the joins in place, so the
	// decoded value can never match the submitted password.
	assert.NotEqual(t, "abcd", DecodePassword(stored, "other-id", "#"))
}
