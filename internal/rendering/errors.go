package rendering

import "fmt"

// TemplateError represents an error executing a section or page template
type TemplateError struct {
	Name  string
	Cause error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Name, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Name)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}
