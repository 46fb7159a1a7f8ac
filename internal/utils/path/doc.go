// Package pathutils expands home directory shortcuts and anchors relative
// catalog paths at the project root.
package pathutils
