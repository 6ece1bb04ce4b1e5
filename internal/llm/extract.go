package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// codeBlockPattern matches markdown code blocks with optional language tag.
// Captures: (1) optional language, (2) content
var codeBlockPattern = regexp.MustCompile(`(?s)` + "```" + `(\w*)\s*\n(.+?)\n` + "```")

// ExtractJSON extracts JSON from an LLM response that may be wrapped in markdown.
// Priority:
// 1. JSON inside ```json ... ``` or ``` ... ``` code blocks
// 2. Raw JSON object {...} or array [...] in the response
func ExtractJSON(response string) (string, error) {
	if jsonStr, found := extractFromCodeBlock(response); found {
		if isValidJSON(jsonStr) {
			return jsonStr, nil
		}
	}

	if jsonStr, found := extractRawJSON(response); found {
		return jsonStr, nil
	}

	return "", fmt.Errorf("no valid JSON object found in response")
}

// ExtractJSONAs extracts JSON and unmarshals into the provided type.
func ExtractJSONAs[T any](response string) (T, error) {
	var result T

	jsonStr, err := ExtractJSON(response)
	if err != nil {
		return result, err
	}

	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return result, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return result, nil
}

// StripCodeFence removes a surrounding markdown code fence (with or without a
// language tag, e.g. ```cypher) from an LLM response and trims whitespace.
// Responses without a fence are returned trimmed, unchanged otherwise.
// Used to post-process Cypher completions, which models habitually wrap.
func StripCodeFence(response string) string {
	trimmed := strings.TrimSpace(response)

	if match := codeBlockPattern.FindStringSubmatch(trimmed); match != nil {
		return strings.TrimSpace(match[2])
	}

	// Unterminated fences still show up; strip the markers line by line.
	if strings.HasPrefix(trimmed, "```") {
		lines := strings.Split(trimmed, "\n")
		kept := make([]string, 0, len(lines))
		for _, line := range lines {
			if strings.HasPrefix(strings.TrimSpace(line), "```") {
				continue
			}
			kept = append(kept, line)
		}
		return strings.TrimSpace(strings.Join(kept, "\n"))
	}

	return trimmed
}

// extractFromCodeBlock finds JSON in markdown code blocks.
func extractFromCodeBlock(response string) (string, bool) {
	matches := codeBlockPattern.FindAllStringSubmatch(response, -1)

	for _, match := range matches {
		if len(match) < 3 {
			continue
		}

		lang := strings.ToLower(match[1])
		content := strings.TrimSpace(match[2])

		// Accept json or no language tag; skip blocks tagged as other languages
		if lang != "" && lang != "json" {
			continue
		}

		if strings.HasPrefix(content, "{") || strings.HasPrefix(content, "[") {
			if isValidJSON(content) {
				return content, true
			}
		}
	}

	return "", false
}

// extractRawJSON finds a JSON object or array in response text that is not
// wrapped in a code block.
func extractRawJSON(response string) (string, bool) {
	startObj := strings.Index(response, "{")
	startArr := strings.Index(response, "[")

	start := -1
	endChar := byte('}')
	if startObj >= 0 && (startArr < 0 || startObj < startArr) {
		start = startObj
		endChar = '}'
	} else if startArr >= 0 {
		start = startArr
		endChar = ']'
	}

	if start < 0 {
		return "", false
	}

	content := response[start:]
	jsonStr := findMatchingBracket(content, endChar)

	if jsonStr != "" && isValidJSON(jsonStr) {
		return jsonStr, true
	}

	return "", false
}

// findMatchingBracket finds the complete JSON by matching brackets,
// respecting string literals and escapes.
func findMatchingBracket(s string, closeChar byte) string {
	if len(s) == 0 {
		return ""
	}

	openChar := s[0]
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}

		if c == '\\' && inString {
			escaped = true
			continue
		}

		if c == '"' {
			inString = !inString
			continue
		}

		if inString {
			continue
		}

		if c == openChar {
			depth++
		} else if c == closeChar {
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}

	return "" // Unmatched brackets
}

func isValidJSON(s string) bool {
	var js json.RawMessage
	return json.Unmarshal([]byte(s), &js) == nil
}
