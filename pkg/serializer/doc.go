// Package serializer provides the attribute codecs a flat-file store can be
// constructed with. Stores receive an instance; ByName exists only so
// configuration files can pick one.
package serializer
