// Package utils provides shared utility functions.
//
// These utilities are used across multiple packages and include:
//   - Shell quoting for composed commands
//   - Terminal interactivity checks
package utils
