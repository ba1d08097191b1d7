// Browser header capture from "Copy as cURL" commands.
package shared

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// BrowserHeaders holds request headers and cookies copied from a browser session.
//
// The chart site serves a challenge page to clients that do not look like a browser, so the
// chart client replays these on every request.
type BrowserHeaders struct {
	Headers map[string]string `json:"headers"`
	Cookie  string            `json:"cookie,omitempty"`
}

var (
	headerFlag = regexp.MustCompile(`(?:-H|--header)\s+(?:'([^']+)'|"([^"]+)")`)
	cookieFlag = regexp.MustCompile(`(?:-b|--cookie)\s+(?:'([^']+)'|"([^"]+)")`)
)

// ParseCurlFile reads a file containing a cURL command and extracts its headers.
func ParseCurlFile(path string) (*BrowserHeaders, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read curl file: %w", err)
	}
	return ParseCurlCommand(string(content))
}

// ParseCurlCommand extracts headers and cookies from a cURL command.
//
// A -b/--cookie flag wins over a Cookie header.
func ParseCurlCommand(cmd string) (*BrowserHeaders, error) {
	cmd = strings.ReplaceAll(cmd, "\\\n", " ")
	cmd = strings.ReplaceAll(cmd, "\\", "")

	h := &BrowserHeaders{Headers: make(map[string]string)}
	for _, m := range headerFlag.FindAllStringSubmatch(cmd, -1) {
		key, value, ok := strings.Cut(firstNonEmpty(m[1], m[2]), ":")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if strings.EqualFold(key, "cookie") {
			if h.Cookie == "" {
				h.Cookie = value
			}
			continue
		}
		h.Headers[key] = value
	}

	if m := cookieFlag.FindStringSubmatch(cmd); m != nil {
		h.Cookie = firstNonEmpty(m[1], m[2])
	}

	if len(h.Headers) == 0 && h.Cookie == "" {
		return nil, fmt.Errorf("%w: no headers found in curl command", ErrInvalidInput)
	}
	return h, nil
}

// LoadBrowserHeaders reads headers saved by [BrowserHeaders.Save].
func LoadBrowserHeaders(path string) (*BrowserHeaders, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read headers file: %w", err)
	}

	var h BrowserHeaders
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("failed to parse headers file: %w", err)
	}
	return &h, nil
}

// Save writes the headers as JSON to path.
func (h *BrowserHeaders) Save(path string) error {
	data, err := MarshalJSON(h, true)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write headers file: %w", err)
	}
	return nil
}

// MarshalJSON encodes v, indented when pretty is set.
func MarshalJSON(v any, pretty bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return data, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
