// Package worktree refuses to let the switcher run against a checkout with pending changes.
package worktree

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/davidpdrsn/git-branch-picker/internal/shared"
)

const (
	repositoryManagerMissingMessageConstant = "repository manager not configured"
	statusErrorTemplateConstant             = "unable to determine working tree state: %w"
	guardCheckedLogMessageConstant          = "working tree inspected"
	logFieldRepositoryPathConstant          = "repository_path"
	logFieldCleanConstant                   = "clean"
)

// ErrRepositoryManagerNotConfigured indicates the guard was built without a repository manager.
var ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerMissingMessageConstant)

// Guard inspects working tree status without modifying the repository.
type Guard struct {
	repositoryManager shared.GitRepositoryManager
	logger            *zap.Logger
}

// NewGuard constructs a Guard.
func NewGuard(repositoryManager shared.GitRepositoryManager, logger *zap.Logger) (*Guard, error) {
	if repositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Guard{repositoryManager: repositoryManager, logger: logger}, nil
}

// IsClean is true only when nothing is staged, modified, or untracked. Ignored files never count.
func (guard *Guard) IsClean(executionContext context.Context, repositoryPath string) (bool, error) {
	isClean, statusError := guard.repositoryManager.CheckCleanWorktree(executionContext, repositoryPath)
	if statusError != nil {
		return false, fmt.Errorf(statusErrorTemplateConstant, statusError)
	}

	guard.logger.Debug(guardCheckedLogMessageConstant, zap.String(logFieldRepositoryPathConstant, repositoryPath), zap.Bool(logFieldCleanConstant, isClean))
	return isClean, nil
}
