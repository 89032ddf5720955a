// Package urllist loads the plain-text input list for a sweep: one URL per
// line, comments and non-HTTP(S) lines skipped, file order preserved.
package urllist

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	// ErrInputNotFound means the list file does not exist. The caller owns
	// the decision to generate a template in its place.
	ErrInputNotFound = errors.New("input list not found")

	// ErrNoValidURLs means the file exists but filtering left nothing to
	// probe. A zero-URL batch has nothing meaningful to report, so this is
	// fatal.
	ErrNoValidURLs = errors.New("no valid URLs in input list")
)

var schemePattern = regexp.MustCompile(`^https?://`)

// Load reads the list at path and returns the probe targets in file order.
// A line is kept only when it is not a comment (first non-whitespace rune
// '#') and starts with http:// or https://.
func Load(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("failed to open input list %s: %w", path, err)
	}
	defer file.Close()

	var urls []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !schemePattern.MatchString(line) {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input list %s: %w", path, err)
	}

	if len(urls) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoValidURLs, path)
	}

	return urls, nil
}
