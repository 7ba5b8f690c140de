// Package integerize turns fractional allocations into whole numbers that
// still honor the totals they were built from.
//
// Small-area estimates come out of models as real numbers: 3.4 jobs in a
// tract, 0.7 residents of a group quarters facility. Publishing them needs
// integers that add up to known controls. The module covers three shapes of
// that problem:
//
//	integerize/  1D vectors (deterministic or weighted-random tie-breaks) and
//	             2D matrices controlled on both margins with a tiered
//	             neighborhood relaxation
//	ipf/         iterative proportional fitting of N-dimensional data to
//	             its marginals
//	ndround/     controlled rounding of N-dimensional arrays: stochastic,
//	             exact (max-flow or branch-and-bound) and a hybrid with
//	             checkpointed rollback
//
// Supporting packages:
//
//	ndarray/     dense row-major N-dimensional float64 arrays and slice sums
//	matrix/      2D Dense matrix consumed by the biproportional integerizer
//	flow/        max-flow solvers (Ford-Fulkerson, Edmonds-Karp, Dinic)
//	sample/      seeded weighted sampling and deterministic ranking
//	checkpoint/  snapshot stores (memory, SQLite) for hybrid rollback
//	randdata/    synthetic rounding problems for tests and benchmarks
//
// Every random operation takes a caller-supplied *rand.Rand; a fixed seed
// reproduces a run exactly.
//
// The cmd/integerize binary exposes the same operations over JSON.
//
//	go install github.com/katalvlaran/integerize/cmd/integerize@latest
package integerize
