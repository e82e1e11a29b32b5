// Package validation collects human-readable field problems so a form
// can be redisplayed with every violation at once instead of only the first.
package validation

import "strings"

// Errors is an ordered list of field problems. The zero value is ready to use.
type Errors []string

// Error implements the error interface.
func (e Errors) Error() string {
	return strings.Join(e, "; ")
}

// Add appends a problem to the list.
func (e *Errors) Add(msg string) {
	*e = append(*e, msg)
}

// Require adds msg if value is empty or whitespace-only.
func (e *Errors) Require(value, msg string) {
	if strings.TrimSpace(value) == "" {
		e.Add(msg)
	}
}

// OrNil returns the collected errors, or nil if there are none.
// Returning the concrete type directly would yield a non-nil error interface
// even for an empty list.
func (e Errors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
