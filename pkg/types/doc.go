// Package types defines the ResourceStore and Registry interfaces, the
// closed Value variant and Record attribute bag, store configuration, the
// query and sort model, and the standard error types for mockstore.
//
// A store keeps one directory per record and one file per attribute:
//
//	<root>/<type>/<id>/<attr>
//
// Everything in this package is backend-agnostic; the flat-file engine
// lives in internal/flatfile and is exposed through pkg/flatfile.
package types
