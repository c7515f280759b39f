// Package limiter selects a window of table rows for --limit, --offset and
// --tail.
package limiter

import "fmt"

// Config holds the row-limiting parameters.
type Config struct {
	Limit  int // Show only this many rows (0 = unlimited)
	Offset int // Skip the first N rows (0 = no skip)
	Tail   int // Show only the last N rows (0 = disabled); mutually exclusive with Limit
}

// Validate checks for conflicting flag combinations and returns an error if invalid.
// Rules:
// - Limit and Tail are mutually exclusive
// - If Tail is set, Offset is ignored
// - All numeric values must be non-negative
func (c Config) Validate() error {
	if c.Limit < 0 {
		return fmt.Errorf("--limit must be non-negative, got %d", c.Limit)
	}
	if c.Offset < 0 {
		return fmt.Errorf("--offset must be non-negative, got %d", c.Offset)
	}
	if c.Tail < 0 {
		return fmt.Errorf("--tail must be non-negative, got %d", c.Tail)
	}
	if c.Limit > 0 && c.Tail > 0 {
		return fmt.Errorf("--limit and --tail are mutually exclusive")
	}
	return nil
}

// IsActive returns true if any limiting is configured.
func (c Config) IsActive() bool {
	return c.Limit > 0 || c.Offset > 0 || c.Tail > 0
}

// window returns the half-open range of the selected items out of length.
func (c Config) window(length int) (start, end int) {
	if c.Tail > 0 {
		return max(length-c.Tail, 0), length
	}
	start = min(c.Offset, length)
	end = length
	if c.Limit > 0 {
		end = min(start+c.Limit, length)
	}
	return start, end
}

// Apply returns the selected window of items.
func Apply[T any](c Config, items []T) []T {
	if !c.IsActive() {
		return items
	}
	start, end := c.window(len(items))
	return items[start:end]
}

// ApplyFunc selects a window of the items for which counts is true. Items
// that are not counted, such as separator rows, are kept when they lie
// between two selected items and dropped otherwise.
func ApplyFunc[T any](c Config, items []T, counts func(T) bool) []T {
	if !c.IsActive() {
		return items
	}
	var counted []int
	for i, item := range items {
		if counts(item) {
			counted = append(counted, i)
		}
	}
	start, end := c.window(len(counted))
	if start == end {
		return items[:0]
	}
	return items[counted[start] : counted[end-1]+1]
}
