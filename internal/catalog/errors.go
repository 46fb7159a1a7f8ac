package catalog

import "fmt"

const (
	configurationNotFoundTemplateConstant = "%s not found"
	repositoryNotFoundTemplateConstant    = "Repository '%s' not found"
	documentParseTemplateConstant         = "unable to parse repository catalog: %s"
	malformedRecordTemplateConstant       = "malformed repository record %q: %v"
	invalidJSONMessageConstant            = "invalid JSON document"
	rootNotObjectMessageConstant          = "document root must be a JSON object"
)

// ConfigurationNotFoundError indicates the catalog file does not exist.
type ConfigurationNotFoundError struct {
	Path string
}

// Error describes the missing catalog.
func (notFoundError ConfigurationNotFoundError) Error() string {
	return fmt.Sprintf(configurationNotFoundTemplateConstant, notFoundError.Path)
}

// RepositoryNotFoundError indicates no resolvable record carries the requested name.
type RepositoryNotFoundError struct {
	Name string
}

// Error describes the unresolved repository name.
func (notFoundError RepositoryNotFoundError) Error() string {
	return fmt.Sprintf(repositoryNotFoundTemplateConstant, notFoundError.Name)
}

// DocumentParseError indicates the catalog is not a JSON object document.
type DocumentParseError struct {
	Message string
}

// Error describes the parse failure.
func (parseError DocumentParseError) Error() string {
	return fmt.Sprintf(documentParseTemplateConstant, parseError.Message)
}

// MalformedRecordError indicates a repository record could not be decoded.
type MalformedRecordError struct {
	Name  string
	Cause error
}

// Error describes the decoding failure.
func (recordError MalformedRecordError) Error() string {
	return fmt.Sprintf(malformedRecordTemplateConstant, recordError.Name, recordError.Cause)
}

// Unwrap exposes the decoding failure.
func (recordError MalformedRecordError) Unwrap() error {
	return recordError.Cause
}
