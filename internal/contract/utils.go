package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Health label constants.
const (
	HealthyValue  = "Healthy"  // Active, well-tended file
	AgingValue    = "Aging"    // Slipping, but still alive
	DecayingValue = "Decaying" // Low activity, long quiet stretches
	DeadValue     = "Dead"     // No commits inside the dead window
	StaleValue    = "Stale"    // Barely-touched and quiet
)

// Color variables for console output.
var (
	HealthyColor  = color.New(color.FgGreen)               // healthyColor represents a file in good standing.
	AgingColor    = color.New(color.FgYellow)              // agingColor represents standard caution, not bold.
	DecayingColor = color.New(color.FgMagenta, color.Bold) // decayingColor represents strong, distinct warning.
	DeadColor     = color.New(color.FgRed, color.Bold)     // deadColor represents standard danger.
	StaleColor    = color.New(color.FgCyan)                // staleColor represents informational / low-priority signal.
)

// GetPlainLabel returns a plain text label for a file's health. This is the
// core logic used for CSV, JSON, and table printing. Dead and stale flags take
// priority over the numeric score.
func GetPlainLabel(score int, isDead, isStale bool) string {
	switch {
	case isDead:
		return DeadValue
	case isStale:
		return StaleValue
	case score >= 70:
		return HealthyValue
	case score >= 40:
		return AgingValue
	default:
		return DecayingValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(score int, isDead, isStale bool) string {
	text := GetPlainLabel(score, isDead, isStale)

	switch text {
	case DeadValue:
		return DeadColor.Sprint(text)
	case StaleValue:
		return StaleColor.Sprint(text)
	case HealthyValue:
		return HealthyColor.Sprint(text)
	case AgingValue:
		return AgingColor.Sprint(text)
	default: // "Decaying"
		return DecayingColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// LooksLikeURL reports whether the repository argument is a remote URL rather
// than a local path.
func LooksLikeURL(arg string) bool {
	return strings.HasPrefix(arg, "http://") ||
		strings.HasPrefix(arg, "https://") ||
		strings.HasPrefix(arg, "git@") ||
		strings.HasPrefix(arg, "ssh://")
}

// NormalizeRepoURL strips query strings, fragments and trailing slashes so
// that equivalent URLs share one cache identity.
func NormalizeRepoURL(url string) string {
	if i := strings.IndexByte(url, '?'); i >= 0 {
		url = url[:i]
	}
	if i := strings.IndexByte(url, '#'); i >= 0 {
		url = url[:i]
	}
	return strings.TrimRight(url, "/")
}

// RepoNameFromURL extracts a short repository name from a URL or path,
// dropping any .git suffix. It never returns an empty string.
func RepoNameFromURL(url string) string {
	url = NormalizeRepoURL(url)
	name := url
	if i := strings.LastIndexByte(url, '/'); i >= 0 {
		name = url[i+1:]
	}
	name = strings.TrimSuffix(name, ".git")
	if name == "" {
		return "repository"
	}
	return name
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to ensure there's space for both the "..." prefix and at least one character of content.
// Without this check, small maxWidth values could cause slice bounds errors in the truncation calculation.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
