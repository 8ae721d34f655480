// Package graph builds the typed data/compute-node DAG for an FHE task:
// the node model, the process-scoped builder state, the operator layer,
// and the rotation and fused-inner-product compilers that sit on top of
// it.
package graph

import "errors"

var (
	// ErrConfig is returned when the parameter set cannot serve the
	// request: by New for a [param.Param] with no ring dimension, and by
	// Bootstrap for a parameter set without bootstrap levels.
	ErrConfig = errors.New("config error")
	// ErrTypeMismatch is returned when operand variants, flags, or
	// levels are not compatible with the requested operator.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrArg is returned by argument construction and task
	// finalization for malformed or duplicate argument ids.
	ErrArg = errors.New("argument error")
	// ErrGraph is returned by task finalization when the DAG fails a
	// structural check: an unused input or a dangling interior node.
	// Node indices are assigned by the Builder, so no duplicate-index
	// check is made.
	ErrGraph = errors.New("graph error")
	// ErrRange is returned when a requested level is outside the
	// admissible range for drop_level or bootstrap.
	ErrRange = errors.New("range error")
	// ErrNotSupported is returned by bootstrap for a ring dimension
	// without a hard-coded rotation set.
	ErrNotSupported = errors.New("not supported")
)
