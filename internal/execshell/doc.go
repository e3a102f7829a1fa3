// Package execshell provides structured helpers for invoking the git executable.
//
// ShellExecutor wraps a CommandRunner with zap logging and lifecycle
// notifications, OSCommandRunner performs the actual process execution, and
// CommandMessageFormatter turns git invocations into operator-facing messages.
package execshell
