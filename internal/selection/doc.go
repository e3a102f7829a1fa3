// Package selection drives an interactive picker over a rendered branch block
// and maps the chosen line back to the branch it was rendered from.
//
// Pickers return the chosen line verbatim or report that nothing was chosen.
// Resolve turns that into an Outcome: Selected with the originating record, or
// Cancelled. Resolution never splits the line on whitespace; it matches whole
// rendered lines first and falls back to the longest branch name followed by
// the column padding.
package selection
