// Package flatfile implements the flat-file ResourceStore. Each record is a
// directory under <root>/<type>/ and each attribute is one file inside it,
// encoded by the configured serializer.
//
// Every attribute file is written atomically (temp file plus rename). Writes
// that span several files are bracketed by a journal dot-file so Recover can
// roll back a create that never finished. Queries are plain directory scans;
// there are no indexes.
//
// A Store is not safe for concurrent use, and a storage root assumes a
// single writing process.
package flatfile
