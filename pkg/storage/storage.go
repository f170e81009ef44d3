// Package storage writes generated brochures to disk under
// filesystem-friendly names derived from the root URL.
package storage

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Storage struct{}

// SaveBrochure writes the Markdown under outputDir and returns the path.
// The directory is created on first use.
func (s *Storage) SaveBrochure(outputDir, rootURL, markdown string) (string, error) {
	if outputDir == "" {
		outputDir = "brochures"
	}
	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(outputDir, BrochureFileName(rootURL, time.Now()))
	if err := os.WriteFile(path, []byte(markdown), 0644); err != nil {
		return "", fmt.Errorf("failed to save brochure: %w", err)
	}
	return path, nil
}

// ReadFile returns a stored brochure's contents.
func (s *Storage) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// HasFile reports whether a path exists.
func (s *Storage) HasFile(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// BrochureFileName builds a slug like "example_com-about-2026-08-27.md"
// from the root URL's host and path.
func BrochureFileName(rawURL string, now time.Time) string {
	date := now.Format("2006-01-02")

	parsedURL, err := url.Parse(rawURL)
	if err != nil || parsedURL.Host == "" {
		safe := strings.ReplaceAll(rawURL, "https://", "")
		safe = strings.ReplaceAll(safe, "http://", "")
		safe = strings.ReplaceAll(safe, "/", "_")
		return fmt.Sprintf("%s-%s.md", safe, date)
	}

	host := strings.ReplaceAll(parsedURL.Host, ".", "_")

	path := strings.Trim(parsedURL.Path, "/")
	path = strings.ReplaceAll(path, "/", "-")
	path = strings.ReplaceAll(path, ".", "_")

	base := host
	if path != "" {
		base = fmt.Sprintf("%s-%s", host, path)
	}
	return fmt.Sprintf("%s-%s.md", base, date)
}
