package did

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/bluesky-social/indigo/atproto/syntax"
)

// Generator mints user identifiers
type Generator struct {
	method string
}

// NewGenerator creates a new DID generator for did:plc identifiers
func NewGenerator() *Generator {
	return &Generator{method: "plc"}
}

// GenerateUserDID creates a new random DID for a user
// Format: did:plc:{base32-random}
//
// The identifier is generated locally and never registered with a PLC
// directory; it only has to be unique within this service.
func (g *Generator) GenerateUserDID() (string, error) {
	// Generate 16 random bytes for the DID identifier
	randomBytes := make([]byte, 16)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random DID: %w", err)
	}

	// Encode as base32 (lowercase, no padding) - matches PLC format
	encoded := base32.StdEncoding.EncodeToString(randomBytes)
	encoded = strings.ToLower(strings.TrimRight(encoded, "="))

	return fmt.Sprintf("did:%s:%s", g.method, encoded), nil
}

// ValidateDID reports whether s is a syntactically valid DID
func ValidateDID(s string) bool {
	_, err := syntax.ParseDID(s)
	return err == nil
}
