// Package env provides access to process environment state behind a small
// interface, so that code which decides things from environment variables can
// be driven by an in-memory environment in tests.
//
// Key Components:
//
//   - Environment: lookup and removal of variables
//
//   - OS: the real process environment
//
//   - Map: an in-memory environment
//
//   - Int: the text-to-integer helper used for descriptor numbers
package env
