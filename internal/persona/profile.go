// Package persona implements the Companion Profile / Memory-Persona
// Store: a semver-versioned, content-signed profile with a migration
// pipeline, persisted through in-memory and Postgres-backed stores.
package persona

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
)

// CurrentVersion is the semver every new_default() profile starts at,
// and the target migrate() converges to.
const CurrentVersion = "1.2.0"

// Persona is the freeform character-voice block of a profile.
type Persona struct {
	Tone      string   `json:"tone"`
	Risk      string   `json:"risk"`
	Humor     string   `json:"humor"`
	Voice     string   `json:"voice"`
	Backstory string   `json:"backstory"`
	Likes     []string `json:"likes"`
	Dislikes  []string `json:"dislikes"`
	Goals     []string `json:"goals"`
}

// Fact is a timestamped key/value memory entry.
type Fact struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	Timestamp int64  `json:"timestamp"`
}

// Episode is a summarized remembered event.
type Episode struct {
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	Tags      []string `json:"tags"`
	Timestamp int64    `json:"timestamp"`
}

// Skill is a named, leveled companion capability.
type Skill struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
	Notes string `json:"notes"`
}

// Profile is the persisted Companion Profile. Signature, when
// non-empty, is the hex SHA-256 content hash computed with Signature
// itself held empty.
type Profile struct {
	ID            string          `json:"id"`
	Version       string          `json:"version"`
	Persona       Persona         `json:"persona"`
	PlayerPrefs   json.RawMessage `json:"player_prefs,omitempty"`
	Facts         []Fact          `json:"facts"`
	Episodes      []Episode       `json:"episodes"`
	Skills        []Skill         `json:"skills"`
	Signature     string          `json:"signature"`
}

// NewDefault creates a fresh profile at CurrentVersion.
func NewDefault(id string) *Profile {
	p := &Profile{
		ID:      id,
		Version: CurrentVersion,
		Persona: Persona{Tone: "steady", Risk: "cautious", Humor: "dry"},
		Facts:   []Fact{},
		Episodes: []Episode{},
		Skills:  []Skill{},
	}
	p.Sign()
	return p
}

// contentHash computes the SHA-256 hex digest of p serialized with an
// empty Signature field, regardless of what p.Signature currently
// holds.
func (p *Profile) contentHash() (string, error) {
	clone := *p
	clone.Signature = ""
	body, err := json.Marshal(clone)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:]), nil
}

// Sign recomputes Signature from the profile's current content.
func (p *Profile) Sign() error {
	hash, err := p.contentHash()
	if err != nil {
		return err
	}
	p.Signature = hash
	return nil
}

// Verify reports whether Signature matches the profile's current
// content hash, by recomputing and comparing. A plain string
// comparison is sufficient here — constant-time comparison is only
// needed where crypto-grade tamper resistance is required, which is
// not the case for this diagnostic signature.
func (p *Profile) Verify() bool {
	hash, err := p.contentHash()
	if err != nil {
		return false
	}
	return hash == p.Signature
}

// VersionCompatible reports whether p's version matches major.minor
// exactly, ignoring patch.
func (p *Profile) VersionCompatible(major, minor int) bool {
	pMajor, pMinor, _, ok := parseSemver(p.Version)
	if !ok {
		return false
	}
	return pMajor == major && pMinor == minor
}

func parseSemver(v string) (major, minor, patch int, ok bool) {
	parts := strings.SplitN(v, ".", 3)
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	major, errA := strconv.Atoi(parts[0])
	minor, errB := strconv.Atoi(parts[1])
	patch, errC := strconv.Atoi(parts[2])
	if errA != nil || errB != nil || errC != nil {
		return 0, 0, 0, false
	}
	return major, minor, patch, true
}
