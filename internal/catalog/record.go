package catalog

import (
	"github.com/go-viper/mapstructure/v2"
)

// decodeRecordURL reports whether node is a repository record, that is a
// mapping carrying a url key, and returns its url.
func decodeRecordURL(name string, node *Node) (string, bool, error) {
	if !node.IsMapping() {
		return "", false, nil
	}

	urlNode, hasURL := node.Get(recordURLKeyConstant)
	if !hasURL {
		return "", false, nil
	}

	var repositoryURL string
	if decodeError := urlNode.Decode(&repositoryURL); decodeError != nil {
		return "", false, MalformedRecordError{Name: name, Cause: decodeError}
	}

	return repositoryURL, true, nil
}

// decodeRepositoryRecord decodes the optional record fields with defaults
// applied. Scalar values that are not strings are rendered as strings.
func decodeRepositoryRecord(name string, node *Node) (RepositoryRecord, error) {
	var fields map[string]any
	if decodeError := node.Decode(&fields); decodeError != nil {
		return RepositoryRecord{}, MalformedRecordError{Name: name, Cause: decodeError}
	}

	record := RepositoryRecord{Branch: defaultBranchConstant}
	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &record,
		TagName:          mapstructureTagConstant,
		WeaklyTypedInput: true,
	})
	if decoderError != nil {
		return RepositoryRecord{}, MalformedRecordError{Name: name, Cause: decoderError}
	}

	if decodeError := decoder.Decode(fields); decodeError != nil {
		return RepositoryRecord{}, MalformedRecordError{Name: name, Cause: decodeError}
	}

	return record, nil
}
