// Package file stores crpub configuration as a TOML document on disk.
//
// Nested tables are flattened into dotted keys on load ("s3.bucket") and
// nested again on save, so the file stays hand editable.
package file
