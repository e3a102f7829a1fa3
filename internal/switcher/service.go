package switcher

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/davidpdrsn/git-branch-picker/internal/catalog"
	"github.com/davidpdrsn/git-branch-picker/internal/dependencies"
	"github.com/davidpdrsn/git-branch-picker/internal/presentation"
	"github.com/davidpdrsn/git-branch-picker/internal/selection"
	"github.com/davidpdrsn/git-branch-picker/internal/shared"
	"github.com/davidpdrsn/git-branch-picker/internal/worktree"
)

const (
	pickerOpenedLogMessageConstant       = "presenting branches"
	selectionCancelledLogMessageConstant = "branch selection cancelled"
	branchSwitchedLogMessageConstant     = "branch switched"
	logFieldRepositoryPathConstant       = "repository_path"
	logFieldBranchCountConstant          = "branch_count"
	logFieldBranchNameConstant           = "branch_name"
	logFieldHeadCommitConstant           = "head_commit"
)

// Dependencies lists the collaborators required by Service. Clock, Logger, and DisplayLocation are optional.
type Dependencies struct {
	RepositoryManager shared.GitRepositoryManager
	Picker            selection.Picker
	Clock             shared.Clock
	Logger            *zap.Logger
	DisplayLocation   *time.Location
}

// Options configures one switch.
type Options struct {
	// RepositoryPath is the checkout to operate on; empty means the current directory.
	RepositoryPath string
}

// Result describes the branch that was checked out.
type Result struct {
	RepositoryPath string
	Branch         catalog.BranchRecord
}

// Service switches a checkout to an interactively chosen local branch.
type Service struct {
	repositoryManager shared.GitRepositoryManager
	picker            selection.Picker
	guard             *worktree.Guard
	catalogBuilder    *catalog.Builder
	clock             shared.Clock
	logger            *zap.Logger
}

// NewService validates dependencies and constructs a Service.
func NewService(serviceDependencies Dependencies) (*Service, error) {
	if serviceDependencies.RepositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}
	if serviceDependencies.Picker == nil {
		return nil, ErrPickerNotConfigured
	}

	logger := serviceDependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	guard, guardError := worktree.NewGuard(serviceDependencies.RepositoryManager, logger)
	if guardError != nil {
		return nil, guardError
	}

	catalogBuilder, builderError := catalog.NewBuilder(serviceDependencies.RepositoryManager, logger, serviceDependencies.DisplayLocation)
	if builderError != nil {
		return nil, builderError
	}

	return &Service{
		repositoryManager: serviceDependencies.RepositoryManager,
		picker:            serviceDependencies.Picker,
		guard:             guard,
		catalogBuilder:    catalogBuilder,
		clock:             dependencies.ResolveClock(serviceDependencies.Clock),
		logger:            logger,
	}, nil
}

// Switch checks out the branch the operator picks. Nothing is read from the repository beyond its status
// when the working tree is dirty, and nothing is written unless a branch was selected.
func (service *Service) Switch(executionContext context.Context, options Options) (Result, error) {
	isClean, cleanError := service.guard.IsClean(executionContext, options.RepositoryPath)
	if cleanError != nil {
		return Result{}, cleanError
	}
	if !isClean {
		return Result{}, ErrWorkingTreeNotClean
	}

	branchCatalog, buildError := service.catalogBuilder.Build(executionContext, options.RepositoryPath)
	if buildError != nil {
		return Result{}, buildError
	}
	if len(branchCatalog) == 0 {
		return Result{}, ErrNoBranches
	}

	renderedBlock := presentation.Render(branchCatalog, service.clock.Now())
	service.logger.Debug(
		pickerOpenedLogMessageConstant,
		zap.String(logFieldRepositoryPathConstant, options.RepositoryPath),
		zap.Int(logFieldBranchCountConstant, len(renderedBlock.Lines)),
	)

	pickResult, pickError := service.picker.Pick(executionContext, renderedBlock)
	if pickError != nil {
		return Result{}, fmt.Errorf(selectionFailureTemplateConstant, pickError)
	}

	outcome, resolveError := selection.Resolve(renderedBlock.Lines, pickResult)
	if resolveError != nil {
		return Result{}, resolveError
	}
	if outcome.Kind == selection.OutcomeCancelled {
		service.logger.Debug(selectionCancelledLogMessageConstant, zap.String(logFieldRepositoryPathConstant, options.RepositoryPath))
		return Result{}, ErrNoSelection
	}

	if checkoutError := service.repositoryManager.CheckoutBranch(executionContext, options.RepositoryPath, outcome.Record.Name); checkoutError != nil {
		return Result{}, &CheckoutFailureError{BranchName: outcome.Record.Name, Cause: checkoutError}
	}

	service.logger.Info(
		branchSwitchedLogMessageConstant,
		zap.String(logFieldRepositoryPathConstant, options.RepositoryPath),
		zap.String(logFieldBranchNameConstant, outcome.Record.Name),
		zap.String(logFieldHeadCommitConstant, outcome.Record.HeadCommitID),
	)

	return Result{RepositoryPath: options.RepositoryPath, Branch: outcome.Record}, nil
}
