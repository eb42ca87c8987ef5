// ABOUTME: Suggestion pipelines turning raw generator text into bounded domain values
// ABOUTME: Each pipeline is build prompt, generate, parse, validate, fallback-or-accept

package suggest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tasknest/tasknest/internal/store"
)

// ErrGenerationFailed is returned by Subtasks when the generator itself is
// unusable (transport error, timeout, malformed response). The priority and
// estimate pipelines never surface it: a present-but-fallback value is
// preferable to blocking the caller, while there is no sensible fallback
// subtask list.
var ErrGenerationFailed = errors.New("generation failed")

const (
	// Bounds on subtask decomposition output.
	maxSubtasks   = 5
	maxSubtaskLen = 200

	// Fallbacks and bounds for the scalar pipelines.
	fallbackPriority = store.PriorityMedium
	fallbackMinutes  = 60
	maxMinutes       = 10000
)

// Service runs the three suggestion pipelines against a generator. Every
// generator call is bounded by the configured timeout; hitting it behaves
// exactly like a generator failure.
type Service struct {
	gen     Generator
	timeout time.Duration
	logger  *slog.Logger
}

// NewService creates a suggestion service with the given generator and
// per-call timeout.
func NewService(gen Generator, timeout time.Duration) *Service {
	return &Service{
		gen:     gen,
		timeout: timeout,
		logger:  slog.Default().With("component", "suggest"),
	}
}

func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.gen.Generate(ctx, prompt)
}

// Subtasks decomposes a task into at most 5 short subtask titles. Unusable
// lines are dropped and excess lines truncated; zero usable lines is not an
// error, it means "no suggestions available". A generator failure surfaces
// as ErrGenerationFailed.
func (s *Service) Subtasks(ctx context.Context, title, description string) ([]string, error) {
	raw, err := s.generate(ctx, subtasksPrompt(title, description))
	if err != nil {
		s.logger.Warn("subtask generation failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return parseSubtasks(raw), nil
}

// Priority classifies a task as low, medium, high, or urgent. Any reply
// outside the closed set, and any generator failure, silently resolves to
// medium. Never returns an error.
func (s *Service) Priority(ctx context.Context, title, description string) store.Priority {
	raw, err := s.generate(ctx, priorityPrompt(title, description))
	if err != nil {
		s.logger.Warn("priority generation failed, using fallback", "error", err)
		return fallbackPriority
	}

	priority, ok := parsePriority(raw)
	if !ok {
		s.logger.Debug("priority reply failed validation, using fallback", "reply_len", len(raw))
		return fallbackPriority
	}
	return priority
}

// EstimateMinutes estimates task effort in minutes. Any reply that is not an
// integer strictly between 0 and 10000, and any generator failure, silently
// resolves to 60. Never returns an error.
func (s *Service) EstimateMinutes(ctx context.Context, title, description string) int {
	raw, err := s.generate(ctx, minutesPrompt(title, description))
	if err != nil {
		s.logger.Warn("estimate generation failed, using fallback", "error", err)
		return fallbackMinutes
	}

	minutes, ok := parseMinutes(raw)
	if !ok {
		s.logger.Debug("estimate reply failed validation, using fallback", "reply_len", len(raw))
		return fallbackMinutes
	}
	return minutes
}

// parseSubtasks splits the raw reply into lines, trims whitespace, drops
// lines that are empty or at or beyond the length ceiling, and truncates to
// maxSubtasks entries preserving order.
func parseSubtasks(raw string) []string {
	lines := strings.Split(raw, "\n")

	subtasks := make([]string, 0, maxSubtasks)
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || utf8.RuneCountInString(line) >= maxSubtaskLen {
			continue
		}
		subtasks = append(subtasks, line)
		if len(subtasks) == maxSubtasks {
			break
		}
	}
	return subtasks
}

// parsePriority lowercases and trims the reply and checks membership in the
// closed priority set.
func parsePriority(raw string) (store.Priority, bool) {
	p := store.Priority(strings.ToLower(strings.TrimSpace(raw)))
	if !p.Valid() {
		return "", false
	}
	return p, true
}

// parseMinutes extracts a leading integer from the reply ("45 minutes" → 45)
// and accepts only values strictly between 0 and maxMinutes.
func parseMinutes(raw string) (int, bool) {
	digits := leadingInt(strings.TrimSpace(raw))
	if digits == "" {
		return 0, false
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	if n <= 0 || n >= maxMinutes {
		return 0, false
	}
	return n, true
}

// leadingInt returns the longest prefix of s that forms a signed integer.
func leadingInt(s string) string {
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return ""
	}
	return s[:i]
}
