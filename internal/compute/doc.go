// Package compute provides execution backends for grid sweeps.
//
// Every solver kernel is a data-parallel sweep: within one sweep no cell's
// output depends on another output of the same sweep, only on the previous
// buffer. A backend exploits that by distributing rows across workers; the
// only ordering requirement is the full barrier between sweeps, which
// Sweep provides by returning only after every row is done.
//
//	compute.GetBackend().Sweep(n, func(y int) { ... })
package compute
