// Package jsonx recovers JSON from extractor output that is not guaranteed
// to be clean: payloads wrapped in markdown fences, prefixed with prose, or
// carrying minor syntax damage like trailing commas.
package jsonx

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	fencedJSONPattern = regexp.MustCompile("(?s)```json\\s*(.+?)\\s*```")
	fencedAnyPattern  = regexp.MustCompile("(?s)```\\s*(.+?)\\s*```")
	trailingComma     = regexp.MustCompile(`,\s*([}\]])`)
	bareKeyPattern    = regexp.MustCompile(`([{,]\s*)(\w+)(\s*:)`)
	controlChars      = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F]`)
)

// Unmarshal parses JSON out of input, trying progressively more forgiving
// strategies: direct parse, fenced code block, first balanced object or
// array embedded in surrounding text, and finally a cleanup pass for common
// damage. It fails only when no strategy yields valid JSON.
func Unmarshal(input string, target any) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("empty input")
	}

	if err := json.Unmarshal([]byte(input), target); err == nil {
		return nil
	}

	if extracted := fromFence(input); extracted != "" {
		if err := json.Unmarshal([]byte(extracted), target); err == nil {
			return nil
		}
	}

	if extracted := fromText(input); extracted != "" {
		if err := json.Unmarshal([]byte(extracted), target); err == nil {
			return nil
		}
		if err := json.Unmarshal([]byte(cleanup(extracted)), target); err == nil {
			return nil
		}
	}

	if err := json.Unmarshal([]byte(cleanup(input)), target); err == nil {
		return nil
	}

	return fmt.Errorf("no parseable JSON in input: %s", truncate(input, 100))
}

func fromFence(input string) string {
	if m := fencedJSONPattern.FindStringSubmatch(input); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	if m := fencedAnyPattern.FindStringSubmatch(input); len(m) > 1 {
		content := strings.TrimSpace(m[1])
		if strings.HasPrefix(content, "{") || strings.HasPrefix(content, "[") {
			return content
		}
	}
	return ""
}

func fromText(input string) string {
	if start := strings.IndexByte(input, '{'); start >= 0 {
		if s := balanced(input[start:], '{', '}'); s != "" {
			return s
		}
	}
	if start := strings.IndexByte(input, '['); start >= 0 {
		if s := balanced(input[start:], '[', ']'); s != "" {
			return s
		}
	}
	return ""
}

// balanced returns the first substring with matched open/close delimiters,
// respecting string literals and escapes.
func balanced(input string, open, close rune) string {
	depth := 0
	inString := false
	escape := false
	start := 0

	for i, ch := range input {
		if escape {
			escape = false
			continue
		}
		switch {
		case ch == '\\':
			escape = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == open:
			if depth == 0 {
				start = i
			}
			depth++
		case ch == close:
			depth--
			if depth == 0 {
				return input[start : i+1]
			}
		}
	}
	return ""
}

func cleanup(input string) string {
	s := strings.TrimSpace(input)
	s = strings.TrimPrefix(s, "\uFEFF")
	s = trailingComma.ReplaceAllString(s, "$1")
	s = bareKeyPattern.ReplaceAllString(s, `$1"$2"$3`)
	s = controlChars.ReplaceAllString(s, "")
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
