// Package catalog loads repository catalog documents and resolves logical
// repository names to GitHub owner and repository identifiers.
//
// A catalog is a nested JSON document of sections, optional subsections, and
// repository records. Traversal always follows document order so the first
// matching record wins deterministically.
package catalog
