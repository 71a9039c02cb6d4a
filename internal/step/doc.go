// Package step parses and computes tutorial step numbers.
//
// Every lesson of a tutorial is one commit whose subject reads
// "Step <super>[.<sub>]: <text>". Sub-steps N.1, N.2, ... come first and the
// super-step N commit closes the group. This package maps subjects to
// descriptors, decides how far a renumbering cascades after a step moves, and
// computes the number a commit must carry given the commit before it.
//
// Nothing here touches git or returns errors for subjects that do not match;
// a miss is reported as a nil descriptor.
package step
