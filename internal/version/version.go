// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.4.0"

// Milestones:
// 0.4.0 - Window viewer (ebiten), render history in footer, PNG and point cloud export
// 0.3.0 - Meridional slice plane, gray palette, info view with radial probability sparkline
// 0.2.0 - Volume ray marcher with rotation, clipping and early ray termination
// 0.1.0 - Initial release: wavefunction evaluation, equatorial slice, half-block TUI
