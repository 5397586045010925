package crypto

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

// newTestHasher keeps the suite fast; cost does not change the semantics under test.
func newTestHasher() *Hasher {
	return NewHasher(bcrypt.MinCost)
}

func TestHash(t *testing.T) {
	hash, err := newTestHasher().Hash("correct-horse-battery-staple")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}

	if hash == "" {
		t.Fatal("Hash() returned empty string")
	}
	if !strings.HasPrefix(hash, "$2a$") {
		t.Errorf("Hash() = %q, want bcrypt $2a$ prefix", hash)
	}
	if strings.Contains(hash, "correct-horse-battery-staple") {
		t.Error("Hash() leaked the plaintext")
	}
}

func TestNewHasherCost(t *testing.T) {
	tests := []struct {
		name string
		cost int
		want int
	}{
		{name: "explicit min cost", cost: bcrypt.MinCost, want: bcrypt.MinCost},
		{name: "zero falls back to default", cost: 0, want: bcrypt.DefaultCost},
		{name: "above max falls back to default", cost: bcrypt.MaxCost + 1, want: bcrypt.DefaultCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHasher(tt.cost)
			if h.cost != tt.want {
				t.Fatalf("NewHasher(%d).cost = %d, want %d", tt.cost, h.cost, tt.want)
			}
		})
	}

	hash, err := newTestHasher().Hash("secret123")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}
	got, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("bcrypt.Cost() unexpected error: %v", err)
	}
	if got != bcrypt.MinCost {
		t.Errorf("hash cost = %d, want %d", got, bcrypt.MinCost)
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name      string
		password  string
		candidate string
		want      bool
	}{
		{name: "matching password", password: "secret123", candidate: "secret123", want: true},
		{name: "wrong password", password: "secret123", candidate: "secret124", want: false},
		{name: "case differs", password: "Secret123", candidate: "secret123", want: false},
		{name: "empty candidate", password: "secret123", candidate: "", want: false},
		{name: "unicode password", password: "pässwörd-✓", candidate: "pässwörd-✓", want: true},
	}

	h := newTestHasher()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := h.Hash(tt.password)
			if err != nil {
				t.Fatalf("Hash() unexpected error: %v", err)
			}
			if got := h.Verify(tt.candidate, hash); got != tt.want {
				t.Errorf("Verify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHashProducesDifferentHashes(t *testing.T) {
	h := newTestHasher()
	hash1, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}
	hash2, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}

	if hash1 == hash2 {
		t.Error("Hash() produced identical hashes for same password (salt should differ)")
	}
	if !h.Verify("same-password", hash1) || !h.Verify("same-password", hash2) {
		t.Error("Verify() rejected one of the salted hashes")
	}
}

func TestHashTooLong(t *testing.T) {
	_, err := newTestHasher().Hash(strings.Repeat("a", 73))
	if err != ErrPasswordTooLong {
		t.Errorf("Hash() error = %v, want %v", err, ErrPasswordTooLong)
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	h := newTestHasher()
	if h.Verify("password", "not-a-bcrypt-hash") {
		t.Error("Verify() returned true for malformed hash")
	}
	if h.Verify("password", "") {
		t.Error("Verify() returned true for empty hash")
	}
}
