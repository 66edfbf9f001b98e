package config

import (
	"fmt"
	"strings"
)

// Issue is one problem found in a config field.
type Issue struct {
	Field   string
	Message string
}

func (i Issue) String() string {
	return i.Field + ": " + i.Message
}

// ValidationError carries every issue found in a config, in the order the
// checks ran.
type ValidationError struct {
	Issues []Issue
}

// Error renders one issue per line.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, len(err.Issues))
	for i, issue := range err.Issues {
		lines[i] = issue.String()
	}
	return strings.Join(lines, "\n")
}

// Fields returns the field of each issue.
func (err *ValidationError) Fields() []string {
	if err == nil {
		return nil
	}
	fields := make([]string, len(err.Issues))
	for i, issue := range err.Issues {
		fields[i] = issue.Field
	}
	return fields
}

type issueAdder func(field, message string)

type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *issueCollector) addf(field, format string, args ...any) {
	c.add(field, fmt.Sprintf(format, args...))
}

// result returns nil when no issue was collected.
func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}
