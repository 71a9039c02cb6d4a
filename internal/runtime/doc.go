// Package runtime provides the execution context for stepwise commands.
//
// It encapsulates shared dependencies needed by actions, such as the
// repository, its configuration, the flag store and the logger.
package runtime
