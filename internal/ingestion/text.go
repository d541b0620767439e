// Package ingestion prepares raw job-posting input (plain text or HTML) for
// the skill pipeline.
package ingestion

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	multiSpaceRe = regexp.MustCompile(`\s+`)
	blankLinesRe = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes text content while preserving the line structure the
// extractor depends on (bullets and section headers stay on their own lines).
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = blankLinesRe.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine trims and collapses whitespace within one line, keeping bullet
// markers intact.
func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}
	return multiSpaceRe.ReplaceAllString(trimmed, " ")
}

// ReadInput loads a job posting from a file path ("-" means stdin), reducing
// HTML input to plain text by extension.
func ReadInput(path string) (string, error) {
	var content []byte
	var err error

	if path == "-" {
		content, err = io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return CleanText(string(content)), nil
	}

	content, err = os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		text, err := HTMLToText(string(content))
		if err != nil {
			return "", fmt.Errorf("failed to extract text from HTML: %w", err)
		}
		return text, nil
	default:
		return CleanText(string(content)), nil
	}
}
