package registry

import (
	"fmt"
	"strings"
)

// UnknownTemplateError is returned when a template variant is not registered.
type UnknownTemplateError struct {
	Variant string
}

func (e *UnknownTemplateError) Error() string {
	return fmt.Sprintf("unknown template variant: %q", e.Variant)
}

// UnknownSectionError is returned when a section identifier is not part of a
// variant's section set.
type UnknownSectionError struct {
	Variant Variant
	Section string
}

func (e *UnknownSectionError) Error() string {
	if e.Variant == "" {
		return fmt.Sprintf("unknown section: %q", e.Section)
	}
	return fmt.Sprintf("unknown section %q for template %s", e.Section, e.Variant)
}

// ValidationError lists the invariant violations found in a configuration.
type ValidationError struct {
	Variant Variant
	Issues  []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s configuration: %s", e.Variant, strings.Join(e.Issues, "; "))
}
