// Package shared declares the collaborator contracts and value types passed
// between the repository backends and the branch switching pipeline.
package shared
