package scheduler

import "errors"

// ErrNoFeasiblePlacement is returned by Run when some job in the current
// batch has no candidate location, rotation and obstacle combination that
// passes env.CanIssue. The spec does not guarantee scheduling completeness;
// callers must size the fabric so this does not occur in practice.
var ErrNoFeasiblePlacement = errors.New("scheduler: no feasible placement for job")
