package catalog

import (
	"context"
	"fmt"
	"slices"
	"time"
	"unicode/utf8"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/davidpdrsn/git-branch-picker/internal/shared"
)

const (
	catalogBuiltLogMessageConstant   = "branch catalog built"
	logFieldRepositoryPathConstant   = "repository_path"
	logFieldBranchCountConstant      = "branch_count"
	logFieldMostRecentBranchConstant = "most_recent_branch"
)

// Builder assembles catalogs from a repository manager.
type Builder struct {
	repositoryManager shared.GitRepositoryManager
	logger            *zap.Logger
	displayLocation   *time.Location
}

// NewBuilder constructs a Builder. A nil displayLocation means time.Local.
func NewBuilder(repositoryManager shared.GitRepositoryManager, logger *zap.Logger, displayLocation *time.Location) (*Builder, error) {
	if repositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if displayLocation == nil {
		displayLocation = time.Local
	}
	return &Builder{repositoryManager: repositoryManager, logger: logger, displayLocation: displayLocation}, nil
}

// Build enumerates local branches and returns them most recent first.
func (builder *Builder) Build(executionContext context.Context, repositoryPath string) (Catalog, error) {
	branchHeads, listError := builder.repositoryManager.ListLocalBranches(executionContext, repositoryPath)
	if listError != nil {
		return nil, &RepositoryError{Operation: operationListingBranchesConstant, Cause: listError}
	}

	branchNames := lo.Map(branchHeads, func(branchHead shared.BranchHead, _ int) string { return branchHead.Name })
	if duplicateNames := lo.FindDuplicates(branchNames); len(duplicateNames) > 0 {
		return nil, &RepositoryError{Operation: operationValidatingCatalogConstant, Cause: fmt.Errorf(duplicateBranchNamesTemplateConstant, duplicateNames)}
	}

	branchCatalog := make(Catalog, 0, len(branchHeads))
	for _, branchHead := range branchHeads {
		if len(branchHead.Name) == 0 || !utf8.ValidString(branchHead.Name) {
			return nil, &InvalidBranchNameError{Name: branchHead.Name}
		}

		commitTimestamp, timestampError := builder.repositoryManager.ReadCommitTimestamp(executionContext, repositoryPath, branchHead.CommitID)
		if timestampError != nil {
			return nil, &UnresolvableBranchError{Name: branchHead.Name, CommitID: branchHead.CommitID, Cause: timestampError}
		}

		branchCatalog = append(branchCatalog, BranchRecord{
			Name:         branchHead.Name,
			HeadCommitID: branchHead.CommitID,
			CommittedAt:  ReconstructCommitTime(commitTimestamp.EpochSeconds, commitTimestamp.OffsetMinutes, builder.displayLocation),
		})
	}

	SortMostRecentFirst(branchCatalog)

	logFields := []zap.Field{
		zap.String(logFieldRepositoryPathConstant, repositoryPath),
		zap.Int(logFieldBranchCountConstant, len(branchCatalog)),
	}
	if len(branchCatalog) > 0 {
		logFields = append(logFields, zap.String(logFieldMostRecentBranchConstant, branchCatalog[0].Name))
	}
	builder.logger.Debug(catalogBuiltLogMessageConstant, logFields...)

	return branchCatalog, nil
}

// SortMostRecentFirst orders records by CommittedAt descending, keeping the existing order of equal times.
func SortMostRecentFirst(branchCatalog Catalog) {
	slices.SortStableFunc(branchCatalog, func(first BranchRecord, second BranchRecord) int {
		return second.CommittedAt.Compare(first.CommittedAt)
	})
}
