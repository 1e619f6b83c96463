// Package chart renders reactor trajectories.
//
// Two charts are provided, each as a file renderer (gonum/plot, PNG or SVG)
// and a terminal renderer:
//
//   - phase plane: biomass on the x-axis against substrate on the y-axis
//   - time series: substrate and biomass against time, each on its own
//     y-axis over a shared time axis
//
// Renderers only read the trajectory.
package chart
