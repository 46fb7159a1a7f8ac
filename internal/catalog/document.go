package catalog

import (
	"bytes"
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const objectOpeningDelimiterConstant = '{'

// Node is a JSON value whose object keys keep their document order.
type Node struct {
	raw     json.RawMessage
	entries *orderedmap.OrderedMap[string, *Node]
}

// Entry pairs an object key with its value.
type Entry struct {
	Key   string
	Value *Node
}

// ParseDocument parses a catalog document. The root must be a JSON object.
func ParseDocument(data []byte) (*Node, error) {
	if !json.Valid(data) {
		return nil, DocumentParseError{Message: invalidJSONMessageConstant}
	}

	document, parseError := parseNode(data)
	if parseError != nil {
		return nil, DocumentParseError{Message: parseError.Error()}
	}

	if !document.IsMapping() {
		return nil, DocumentParseError{Message: rootNotObjectMessageConstant}
	}

	return document, nil
}

func parseNode(data []byte) (*Node, error) {
	trimmed := bytes.TrimSpace(data)
	node := &Node{raw: json.RawMessage(trimmed)}
	if len(trimmed) == 0 || trimmed[0] != objectOpeningDelimiterConstant {
		return node, nil
	}

	rawEntries := orderedmap.New[string, json.RawMessage]()
	if unmarshalError := json.Unmarshal(trimmed, rawEntries); unmarshalError != nil {
		return nil, unmarshalError
	}

	node.entries = orderedmap.New[string, *Node](rawEntries.Len())
	for pair := rawEntries.Oldest(); pair != nil; pair = pair.Next() {
		child, childError := parseNode(pair.Value)
		if childError != nil {
			return nil, childError
		}
		node.entries.Set(pair.Key, child)
	}

	return node, nil
}

// IsMapping reports whether the node is a JSON object.
func (node *Node) IsMapping() bool {
	return node != nil && node.entries != nil
}

// Get returns the value stored under key when the node is a mapping.
func (node *Node) Get(key string) (*Node, bool) {
	if !node.IsMapping() {
		return nil, false
	}
	return node.entries.Get(key)
}

// Has reports whether the mapping contains key.
func (node *Node) Has(key string) bool {
	_, present := node.Get(key)
	return present
}

// Entries lists the mapping's key/value pairs in document order.
func (node *Node) Entries() []Entry {
	if !node.IsMapping() {
		return nil
	}

	entries := make([]Entry, 0, node.entries.Len())
	for pair := node.entries.Oldest(); pair != nil; pair = pair.Next() {
		entries = append(entries, Entry{Key: pair.Key, Value: pair.Value})
	}
	return entries
}

// Len returns the number of keys in a mapping, zero otherwise.
func (node *Node) Len() int {
	if !node.IsMapping() {
		return 0
	}
	return node.entries.Len()
}

// Decode unmarshals the node's raw JSON into target.
func (node *Node) Decode(target any) error {
	return json.Unmarshal(node.raw, target)
}
