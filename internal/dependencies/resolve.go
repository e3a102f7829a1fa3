// Package dependencies resolves default collaborators for services when callers leave them unset.
package dependencies

import (
	"go.uber.org/zap"

	"github.com/davidpdrsn/git-branch-picker/internal/execshell"
	"github.com/davidpdrsn/git-branch-picker/internal/gitrepo"
	"github.com/davidpdrsn/git-branch-picker/internal/shared"
)

// ResolveClock returns the provided clock or the system clock.
func ResolveClock(existing shared.Clock) shared.Clock {
	if existing != nil {
		return existing
	}
	return shared.SystemClock{}
}

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default reporting to observers.
func ResolveGitExecutor(existing shared.GitExecutor, logger *zap.Logger, observers ...execshell.CommandEventObserver) (shared.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	shellExecutor, creationError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), observers...)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

// ResolveGitRepositoryManager returns the provided repository manager or builds one for backend.
func ResolveGitRepositoryManager(existing shared.GitRepositoryManager, backend gitrepo.Backend, executor shared.GitExecutor) (shared.GitRepositoryManager, error) {
	if existing != nil {
		return existing, nil
	}
	return gitrepo.NewManager(backend, executor)
}
