package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/davidpdrsn/git-branch-picker/internal/catalog"
	"github.com/davidpdrsn/git-branch-picker/internal/shared"
)

type stubRepositoryManager struct {
	branchHeads    []shared.BranchHead
	listError      error
	timestamps     map[string]shared.CommitTimestamp
	timestampError map[string]error
	timestampReads []string
}

func (manager *stubRepositoryManager) CheckCleanWorktree(context.Context, string) (bool, error) {
	return true, nil
}

func (manager *stubRepositoryManager) ListLocalBranches(context.Context, string) ([]shared.BranchHead, error) {
	if manager.listError != nil {
		return nil, manager.listError
	}
	return append([]shared.BranchHead{}, manager.branchHeads...), nil
}

func (manager *stubRepositoryManager) ReadCommitTimestamp(_ context.Context, _ string, commitID string) (shared.CommitTimestamp, error) {
	manager.timestampReads = append(manager.timestampReads, commitID)
	if readError, exists := manager.timestampError[commitID]; exists {
		return shared.CommitTimestamp{}, readError
	}
	timestamp, exists := manager.timestamps[commitID]
	if !exists {
		return shared.CommitTimestamp{}, fmt.Errorf("object %s not found", commitID)
	}
	return timestamp, nil
}

func (manager *stubRepositoryManager) CheckoutBranch(context.Context, string, string) error {
	return errors.New("unexpected checkout")
}

func TestNewBuilderRequiresRepositoryManager(testInstance *testing.T) {
	builder, creationError := catalog.NewBuilder(nil, zap.NewNop(), time.UTC)
	require.ErrorIs(testInstance, creationError, catalog.ErrRepositoryManagerNotConfigured)
	require.Nil(testInstance, builder)
}

func TestBuilderBuildOrdersMostRecentFirst(testInstance *testing.T) {
	manager := &stubRepositoryManager{
		branchHeads: []shared.BranchHead{
			{Name: "old", CommitID: "c1"},
			{Name: "tie-first", CommitID: "c2"},
			{Name: "new", CommitID: "c3"},
			{Name: "tie-second", CommitID: "c4"},
		},
		timestamps: map[string]shared.CommitTimestamp{
			"c1": {EpochSeconds: 1000, OffsetMinutes: 0},
			"c2": {EpochSeconds: 5000, OffsetMinutes: 0},
			"c3": {EpochSeconds: 9000, OffsetMinutes: 0},
			"c4": {EpochSeconds: 5000 - 3600, OffsetMinutes: 60},
		},
	}

	observerCore, observedLogs := observer.New(zapcore.DebugLevel)
	builder, creationError := catalog.NewBuilder(manager, zap.New(observerCore), time.UTC)
	require.NoError(testInstance, creationError)

	branchCatalog, buildError := builder.Build(context.Background(), "/tmp/checkout")
	require.NoError(testInstance, buildError)
	require.Equal(testInstance, []string{"new", "tie-first", "tie-second", "old"}, branchCatalog.Names())
	require.Equal(testInstance, "c3", branchCatalog[0].HeadCommitID)
	require.True(testInstance, time.Unix(9000, 0).UTC().Equal(branchCatalog[0].CommittedAt))

	logEntries := observedLogs.All()
	require.Len(testInstance, logEntries, 1)
	require.Equal(testInstance, "new", logEntries[0].ContextMap()["most_recent_branch"])
}

func TestBuilderBuildFailures(testInstance *testing.T) {
	listFailure := errors.New("refs unreadable")
	timestampFailure := errors.New("object missing")

	testCases := []struct {
		name          string
		manager       *stubRepositoryManager
		assertFailure func(testInstance *testing.T, buildError error)
	}{
		{
			name:    "enumeration_failure",
			manager: &stubRepositoryManager{listError: listFailure},
			assertFailure: func(testInstance *testing.T, buildError error) {
				var repositoryError *catalog.RepositoryError
				require.ErrorAs(testInstance, buildError, &repositoryError)
				require.ErrorIs(testInstance, buildError, listFailure)
			},
		},
		{
			name: "invalid_utf8_name",
			manager: &stubRepositoryManager{
				branchHeads: []shared.BranchHead{{Name: "ok", CommitID: "c1"}, {Name: "bad\xff", CommitID: "c2"}},
				timestamps:  map[string]shared.CommitTimestamp{"c1": {}, "c2": {}},
			},
			assertFailure: func(testInstance *testing.T, buildError error) {
				var nameError *catalog.InvalidBranchNameError
				require.ErrorAs(testInstance, buildError, &nameError)
				require.Equal(testInstance, "bad\xff", nameError.Name)
			},
		},
		{
			name: "empty_name",
			manager: &stubRepositoryManager{
				branchHeads: []shared.BranchHead{{Name: "", CommitID: "c1"}},
			},
			assertFailure: func(testInstance *testing.T, buildError error) {
				var nameError *catalog.InvalidBranchNameError
				require.ErrorAs(testInstance, buildError, &nameError)
			},
		},
		{
			name: "unresolvable_head",
			manager: &stubRepositoryManager{
				branchHeads:    []shared.BranchHead{{Name: "dangling", CommitID: "c9"}},
				timestampError: map[string]error{"c9": timestampFailure},
			},
			assertFailure: func(testInstance *testing.T, buildError error) {
				var branchError *catalog.UnresolvableBranchError
				require.ErrorAs(testInstance, buildError, &branchError)
				require.Equal(testInstance, "dangling", branchError.Name)
				require.ErrorIs(testInstance, buildError, timestampFailure)
			},
		},
		{
			name: "duplicate_names",
			manager: &stubRepositoryManager{
				branchHeads: []shared.BranchHead{{Name: "main", CommitID: "c1"}, {Name: "main", CommitID: "c2"}},
			},
			assertFailure: func(testInstance *testing.T, buildError error) {
				var repositoryError *catalog.RepositoryError
				require.ErrorAs(testInstance, buildError, &repositoryError)
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			builder, creationError := catalog.NewBuilder(testCase.manager, nil, time.UTC)
			require.NoError(testInstance, creationError)

			branchCatalog, buildError := builder.Build(context.Background(), "")
			require.Nil(testInstance, branchCatalog)
			testCase.assertFailure(testInstance, buildError)
		})
	}
}

func TestBuilderBuildIsSortedPermutation(testInstance *testing.T) {
	rapid.Check(testInstance, func(propertyInstance *rapid.T) {
		branchNames := rapid.SliceOfNDistinct(
			rapid.StringMatching(`[a-z][a-z0-9/_-]{0,12}`),
			0, 20,
			rapid.ID[string],
		).Draw(propertyInstance, "branchNames")

		manager := &stubRepositoryManager{timestamps: map[string]shared.CommitTimestamp{}}
		for branchIndex, branchName := range branchNames {
			commitID := fmt.Sprintf("commit-%d", branchIndex)
			manager.branchHeads = append(manager.branchHeads, shared.BranchHead{Name: branchName, CommitID: commitID})
			manager.timestamps[commitID] = shared.CommitTimestamp{
				EpochSeconds:  rapid.Int64Range(0, 2_000_000_000).Draw(propertyInstance, "epochSeconds"),
				OffsetMinutes: rapid.IntRange(-12*60, 14*60).Draw(propertyInstance, "offsetMinutes"),
			}
		}

		builder, creationError := catalog.NewBuilder(manager, nil, time.UTC)
		require.NoError(propertyInstance, creationError)

		branchCatalog, buildError := builder.Build(context.Background(), "")
		require.NoError(propertyInstance, buildError)
		require.ElementsMatch(propertyInstance, branchNames, branchCatalog.Names())

		for recordIndex := 1; recordIndex < len(branchCatalog); recordIndex++ {
			require.False(propertyInstance, branchCatalog[recordIndex].CommittedAt.After(branchCatalog[recordIndex-1].CommittedAt))
		}
	})
}
