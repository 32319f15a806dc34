// Package solver implements the incompressible-flow pipeline on a uniform
// N x N grid: viscous diffusion of the velocity field, divergence
// computation, an iterative Jacobi pressure solve, and the gradient
// subtraction that removes divergence (the projection step).
//
// Each kernel is a pure function (InputGrids, Params) -> OutputGrid,
// reading one buffer and writing another; [Solver] sequences them and owns
// the double-buffer flips. There is no advection term and no external
// forcing, and every kernel samples with clamp-to-edge addressing.
//
// Both velocity components are diffused with the same viscosity and the
// same grid resolution. The pressure field is warm-started: each step's
// Jacobi solve begins from the previous step's result rather than zero,
// which improves convergence at a fixed sweep count.
package solver
