// Package detection implements straight-line segment detection and shape
// region extraction over rasterized images.
//
// The core is a modified Hough transform. A classic Hough pass votes every
// edge pixel into every theta of the (rho, theta) parameter space; this one
// prunes the sweep to a narrow angular band centered on each pixel's local
// gradient direction, which cuts false positives sharply while absorbing
// per-pixel gradient noise.
//
// # Pipeline
//
// A detection pass runs five stages to completion, in order:
//
//  1. Voter: sweeps edge pixels, voting each into a band of accumulator
//     cells around its gradient angle. Cells track vote counts and the
//     extreme voting pixels, so segment endpoints survive quantization.
//  2. Harvester: scans the accumulator theta-outer, rho-inner and emits
//     every unrecorded cell over the vote threshold.
//  3. Merger: folds each emitted candidate into an existing collinear
//     segment where one overlaps, or admits it; an x-dominant candidate
//     (|slope| <= 1) is admitted only if enough edge pixels lie under it.
//  4. Filter: drops segments shorter than the configured minimum.
//  5. Optional sinks receive the final set and a rebuilt outline image.
//
// The edge flags and gradients come from an imaging.LuminanceMap built once
// per image; region extraction (ExtractRegions) shares the same map, so the
// Sobel pass is never repeated.
//
// # Parameter space
//
// Theta spans [-pi/2, pi/2) — lines are non-directional — quantized at 0.01
// rad. Rho spans plus/minus the image diagonal at one-pixel steps. Rho is
// computed as x*cos(theta) - y*sin(theta), matching the top-left origin
// with y growing downward; the sign of the y term is load-bearing.
//
// # Regimes
//
// Two threshold regimes are built in: strict (votes >= 90, length >= 50),
// the default for technical line art, and squishy (votes >= 10, length >=
// 5) for organic imagery. See Config for the shared tolerances.
//
// # Complexity
//
// Voting is O(edge pixels * sweep width). The merge is O(candidates *
// accepted) — quadratic in the output size, not the image size; the vote
// threshold keeps it bounded in practice. The accumulator dominates memory
// at (2*diagonal+1) * (pi/0.01) cells and is released as soon as
// harvesting completes.
package detection
