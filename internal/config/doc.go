// Package config loads, normalizes, and validates swbd configuration data.
//
// It supplies repository defaults (the Johnson and Charniak split ranges, the
// Stanford converter invocation, the token filters used by the treebank
// conversion), expands user paths including tilde shortcuts, reads TOML files,
// and honours the SWBD_CONVERTER_DIR environment fallback.
//
// Always obtain settings through this package so the conversion commands
// receive absolute paths and consistent filter lists.
package config
