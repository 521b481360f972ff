// Package gcra implements the Generic Cell Rate Algorithm (GCRA) as a
// rate-limiting primitive. A Quota describes how many cost units are allowed
// per period; a State holds the theoretical arrival time (TAT) of one
// rate-limited entity. State is not safe for concurrent use: callers own its
// storage and serialise access to it.
// Find optional demos under cmd/.
package gcra
