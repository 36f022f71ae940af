package planning

import (
	"strings"

	"github.com/aisimcore/simcore/internal/domain/simerr"
)

// SanitizerConfig is the Sanitizer's validator configuration.
type SanitizerConfig struct {
	BannedPatterns         []string
	MaxPromptLength        int
	EnableContentFiltering bool
	SuspiciousKeywords     []string
}

// Sanitizer validates and optionally annotates LLM-bound prompt text
// before it leaves the process.
type Sanitizer struct {
	cfg SanitizerConfig
}

// NewSanitizer creates a Sanitizer from cfg.
func NewSanitizer(cfg SanitizerConfig) *Sanitizer {
	return &Sanitizer{cfg: cfg}
}

// Sanitize runs three ordered checks — length, then banned-pattern,
// then content filter — and returns the (possibly annotated) prompt or
// a simerr.SimError describing which check failed. The order is
// load-bearing, not incidental: an over-length prompt that also
// contains a banned pattern must fail with "too long", never the
// pattern name.
func (s *Sanitizer) Sanitize(prompt string) (string, error) {
	if len(prompt) > s.cfg.MaxPromptLength {
		return "", simerr.New(simerr.CodeSanitizerRejected, "too long")
	}

	for _, pattern := range s.cfg.BannedPatterns {
		if pattern != "" && strings.Contains(prompt, pattern) {
			return "", simerr.New(simerr.CodeSanitizerRejected, "banned pattern: "+pattern)
		}
	}

	if s.cfg.EnableContentFiltering {
		lower := strings.ToLower(prompt)
		for _, keyword := range s.cfg.SuspiciousKeywords {
			if keyword != "" && strings.Contains(lower, strings.ToLower(keyword)) {
				return "SAFE: " + prompt, nil
			}
		}
	}

	return prompt, nil
}
