package crawl

import (
	"fmt"
	"sort"
	"strings"
)

// Summary describes the crawl outcome in one line, e.g.
// "Saved 12 pages (3 failed), 48.2 KB, ~12k tokens [builtin: 10, readability: 2]".
// Tokens are omitted when none were counted.
func (r *Result) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Saved %d pages", r.Saved)
	if r.Failed > 0 {
		fmt.Fprintf(&b, " (%d failed)", r.Failed)
	}
	b.WriteString(", " + FormatBytes(r.Bytes))
	if r.Tokens > 0 {
		b.WriteString(", " + FormatTokens(r.Tokens))
	}

	if len(r.Methods) > 0 {
		methods := make([]string, 0, len(r.Methods))
		for m, n := range r.Methods {
			methods = append(methods, fmt.Sprintf("%s: %d", m, n))
		}
		sort.Strings(methods)
		b.WriteString(" [" + strings.Join(methods, ", ") + "]")
	}
	return b.String()
}

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatTokens formats token count in human-readable form.
func FormatTokens(tokens int) string {
	if tokens < 1000 {
		return fmt.Sprintf("~%d tokens", tokens)
	}
	return fmt.Sprintf("~%dk tokens", (tokens+500)/1000)
}
