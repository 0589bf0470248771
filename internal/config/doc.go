// Package config resolves the medallion server configuration from up to
// three sources: an optional JSON config file, an optional directory of JSON
// config files, and MEDALLION_* environment variables.
//
// Sources are deep-merged in the following priority order (later sources
// override earlier ones at every nesting level):
//  1. Config file
//  2. Config directory (files merged among themselves in sorted name order)
//  3. Environment variables
//
// The main entry point is [Load], which returns the final merged [Mapping].
// Resolution is one-shot and fail-fast: any unreadable or malformed source
// aborts the whole call, except that a missing *default* config file or
// directory silently contributes nothing.
package config
