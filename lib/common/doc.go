// Package common provides the utilities shared by the wlconn libraries and
// the command-line interface.
//
// Key Components:
//
//   - Logger: Custom logging implementation that integrates with Dragonboat's
//     logging system (github.com/lni/dragonboat/v4/logger) and writes
//     "LEVEL | package | message" lines to stderr.
//
//   - InitLoggers: Installs the logger factory and applies a log level to all
//     package loggers.
package common
