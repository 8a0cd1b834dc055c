// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	tests := []struct {
		name    string
		byteLen int
		wantLen int
	}{
		{"16 bytes", 16, 32},
		{"12 bytes", 12, 24},
		{"8 bytes", 8, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := GenerateID(tt.byteLen)
			if err != nil {
				t.Fatalf("GenerateID failed: %v", err)
			}
			if len(id) != tt.wantLen {
				t.Errorf("Expected length %d, got %d", tt.wantLen, len(id))
			}
		})
	}

	// IDs must not repeat
	first, _ := GenerateID(16)
	second, _ := GenerateID(16)
	if first == second {
		t.Error("Two generated IDs were identical")
	}
}

func TestAdminKeyRoundTrip(t *testing.T) {
	const salt = "test-admin-salt"

	key := GenerateAdminKey("election-1", salt)
	if key == "" {
		t.Fatal("Expected non-empty admin key")
	}
	if strings.ContainsAny(key, "=") {
		t.Error("Admin key should not contain padding")
	}

	if err := ValidateAdminKey("election-1", key, salt); err != nil {
		t.Errorf("Valid key rejected: %v", err)
	}

	tests := []struct {
		name       string
		electionID string
		key        string
		salt       string
	}{
		{"wrong election", "election-2", key, salt},
		{"wrong salt", "election-1", key, "other-salt"},
		{"garbage key", "election-1", "not-a-key", salt},
		{"empty key", "election-1", "", salt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateAdminKey(tt.electionID, tt.key, tt.salt); err != ErrInvalidAdminKey {
				t.Errorf("Expected ErrInvalidAdminKey, got %v", err)
			}
		})
	}
}

func TestAdminKeyDeterministic(t *testing.T) {
	const salt = "test-admin-salt"
	if GenerateAdminKey("e1", salt) != GenerateAdminKey("e1", salt) {
		t.Error("Admin key generation is not deterministic")
	}
	if GenerateAdminKey("e1", salt) == GenerateAdminKey("e2", salt) {
		t.Error("Different elections produced the same admin key")
	}
}

func TestGenerateVoterToken(t *testing.T) {
	token, err := GenerateVoterToken()
	if err != nil {
		t.Fatalf("GenerateVoterToken failed: %v", err)
	}

	if err := ValidateVoterToken(token); err != nil {
		t.Errorf("Generated token failed validation: %v", err)
	}

	other, _ := GenerateVoterToken()
	if token == other {
		t.Error("Two generated tokens were identical")
	}
}

func TestValidateVoterToken(t *testing.T) {
	valid, _ := GenerateVoterToken()

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{"valid token", valid, false},
		{"empty", "", true},
		{"too short", "abc123", true},
		{"too long", valid + "x", true},
		{"invalid characters", strings.Repeat("!", 32), true},
		{"embedded space", valid[:16] + " " + valid[17:], true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVoterToken(tt.token)
			if tt.wantErr && err != ErrInvalidToken {
				t.Errorf("Expected ErrInvalidToken, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected token to validate, got %v", err)
			}
		})
	}
}

func TestGenerateShareSlug(t *testing.T) {
	const salt = "test-slug-salt"

	slug := GenerateShareSlug("election-1", salt)
	if slug == "" {
		t.Fatal("Expected non-empty slug")
	}

	// Deterministic for the same election and salt
	if slug != GenerateShareSlug("election-1", salt) {
		t.Error("Slug generation is not deterministic")
	}

	// Different for other elections or salts
	if slug == GenerateShareSlug("election-2", salt) {
		t.Error("Different elections produced the same slug")
	}
	if slug == GenerateShareSlug("election-1", "other-salt") {
		t.Error("Different salts produced the same slug")
	}

	// Base62 only: URL-safe without escaping
	for i := 0; i < len(slug); i++ {
		c := slug[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
			t.Errorf("Slug contains non-base62 character %q", c)
		}
	}
}

func TestHashIP(t *testing.T) {
	const salt = "test-salt"

	hash := HashIP("203.0.113.7", salt)
	if len(hash) != 16 {
		t.Errorf("Expected 16 hex chars, got %d", len(hash))
	}
	if hash != HashIP("203.0.113.7", salt) {
		t.Error("IP hashing is not deterministic")
	}
	if hash == HashIP("203.0.113.8", salt) {
		t.Error("Different IPs produced the same hash")
	}
	if hash == HashIP("203.0.113.7", "other-salt") {
		t.Error("Different salts produced the same hash")
	}
}
