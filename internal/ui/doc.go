// Package ui turns git command lifecycle events into console messages.
//
// The console observer is attached to the shell executor when the console log
// format is selected, so operators see sentences such as "Switching . to branch
// main" while structured output keeps the raw zap fields.
package ui
