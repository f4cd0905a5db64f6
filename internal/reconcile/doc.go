// Package reconcile converges gateway resources to a desired state.
//
// Every operation is a single read-then-write sequence against the
// admin API: resolve referenced names to ids, gather the full candidate
// set, find the unique logical match, then issue the one corrective
// call. Nothing is cached between operations and no locks are taken on
// the remote state, so two concurrent runs against the same logical key
// can both observe zero matches and both create a resource. That
// duplicate state is caught as an ambiguity error on the next run
// rather than prevented here.
package reconcile
