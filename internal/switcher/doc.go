// Package switcher runs the branch switch from start to finish.
//
// The Service refuses dirty working trees, builds the branch catalog, renders
// it for the configured picker, resolves the chosen line back to a branch, and
// checks that branch out. CommandBuilder exposes the Service as a Cobra command
// whose collaborators are chosen from configuration.
package switcher
