package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/temirov/repoctx/internal/catalog"
)

const (
	ownerRepositoryLineTemplateConstant = "%s %s\n"
	listingLineTemplateConstant         = "%s: %s/%s (%s)\n"
	jsonIndentConstant                  = "  "
	yamlIndentConstant                  = 2
	yamlStringTagConstant               = "!!str"
	unsupportedFormatTemplateConstant   = "unsupported output format: %s"
	listingFormatTextStringConstant     = "text"
	listingFormatJSONStringConstant     = "json"
	listingFormatYAMLStringConstant     = "yaml"
)

// ListingFormat enumerates repository listing encodings.
type ListingFormat string

// Supported listing formats.
const (
	ListingFormatText ListingFormat = ListingFormat(listingFormatTextStringConstant)
	ListingFormatJSON ListingFormat = ListingFormat(listingFormatJSONStringConstant)
	ListingFormatYAML ListingFormat = ListingFormat(listingFormatYAMLStringConstant)
)

// ErrorReport is the JSON document written when a lookup fails in JSON mode.
type ErrorReport struct {
	Error string `json:"error"`
}

// ParseListingFormat normalizes a user supplied listing format.
func ParseListingFormat(value string) (ListingFormat, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", listingFormatTextStringConstant:
		return ListingFormatText, nil
	case listingFormatJSONStringConstant:
		return ListingFormatJSON, nil
	case listingFormatYAMLStringConstant:
		return ListingFormatYAML, nil
	default:
		return "", fmt.Errorf(unsupportedFormatTemplateConstant, value)
	}
}

// WriteOwnerRepository writes "owner repo" on a single line.
func WriteOwnerRepository(writer io.Writer, resolved catalog.ResolvedRepository) error {
	_, writeError := fmt.Fprintf(writer, ownerRepositoryLineTemplateConstant, resolved.Owner, resolved.Repository)
	return writeError
}

// WriteRepositoryJSON writes the resolved repository as indented JSON.
func WriteRepositoryJSON(writer io.Writer, resolved catalog.ResolvedRepository) error {
	return encodeJSON(writer, resolved, jsonIndentConstant)
}

// WriteErrorJSON writes a single-line JSON object carrying message in its error field.
func WriteErrorJSON(writer io.Writer, message string) error {
	return encodeJSON(writer, ErrorReport{Error: message}, "")
}

// WriteListing writes every listed repository sorted by name.
func WriteListing(writer io.Writer, listing catalog.Listing, format ListingFormat) error {
	switch format {
	case ListingFormatText:
		for _, name := range listing.Names() {
			resolved := listing[name]
			if _, writeError := fmt.Fprintf(writer, listingLineTemplateConstant, name, resolved.Owner, resolved.Repository, resolved.Branch); writeError != nil {
				return writeError
			}
		}
		return nil
	case ListingFormatJSON:
		return encodeJSON(writer, listing, jsonIndentConstant)
	case ListingFormatYAML:
		return writeListingYAML(writer, listing)
	default:
		return fmt.Errorf(unsupportedFormatTemplateConstant, format)
	}
}

func encodeJSON(writer io.Writer, value any, indent string) error {
	encoder := json.NewEncoder(writer)
	encoder.SetEscapeHTML(false)
	if len(indent) > 0 {
		encoder.SetIndent("", indent)
	}
	return encoder.Encode(value)
}

func writeListingYAML(writer io.Writer, listing catalog.Listing) error {
	document := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range listing.Names() {
		valueNode := &yaml.Node{}
		if encodeError := valueNode.Encode(listing[name]); encodeError != nil {
			return encodeError
		}
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: yamlStringTagConstant, Value: name}
		document.Content = append(document.Content, keyNode, valueNode)
	}

	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(yamlIndentConstant)
	if encodeError := encoder.Encode(document); encodeError != nil {
		return encodeError
	}
	return encoder.Close()
}
