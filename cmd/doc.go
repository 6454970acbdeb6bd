// Package cmd implements the command-line interface of wlconn.
//
// The package is organized into several subpackages:
//
//   - connect: Commands that connect to the display (connect, exec, env)
//   - probe: Repeated connect attempts with latency and failure statistics
//   - listen: A stand-in compositor socket for local testing
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See wlconn -help for a list of all commands.
package cmd
