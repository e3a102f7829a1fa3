// Package testsupport builds throwaway git repositories for backend and command tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

const (
	fixtureAuthorNameConstant          = "Branch Picker"
	fixtureAuthorEmailConstant         = "picker@example.com"
	fixtureCommitMessagePrefixConstant = "update "
	fixtureFilePermissionsConstant     = 0o600
)

// RepositoryFixture is a go-git repository initialized in a temporary directory.
type RepositoryFixture struct {
	Path       string
	Repository *git.Repository
}

// NewRepositoryFixture initializes an empty non-bare repository.
func NewRepositoryFixture(testingInstance testing.TB) *RepositoryFixture {
	testingInstance.Helper()

	repositoryPath := testingInstance.TempDir()
	repository, initError := git.PlainInit(repositoryPath, false)
	require.NoError(testingInstance, initError)

	return &RepositoryFixture{Path: repositoryPath, Repository: repository}
}

// WriteFile writes content relative to the repository root without staging it.
func (fixture *RepositoryFixture) WriteFile(testingInstance testing.TB, relativePath string, content string) {
	testingInstance.Helper()

	absolutePath := filepath.Join(fixture.Path, relativePath)
	require.NoError(testingInstance, os.MkdirAll(filepath.Dir(absolutePath), 0o755))
	require.NoError(testingInstance, os.WriteFile(absolutePath, []byte(content), fixtureFilePermissionsConstant))
}

// Commit writes and stages relativePath, then commits on HEAD with committedAt as both author and committer time.
func (fixture *RepositoryFixture) Commit(testingInstance testing.TB, relativePath string, content string, committedAt time.Time) plumbing.Hash {
	testingInstance.Helper()

	fixture.WriteFile(testingInstance, relativePath, content)

	worktree, worktreeError := fixture.Repository.Worktree()
	require.NoError(testingInstance, worktreeError)

	_, addError := worktree.Add(relativePath)
	require.NoError(testingInstance, addError)

	signature := &object.Signature{Name: fixtureAuthorNameConstant, Email: fixtureAuthorEmailConstant, When: committedAt}
	commitHash, commitError := worktree.Commit(fixtureCommitMessagePrefixConstant+relativePath, &git.CommitOptions{
		Author:    signature,
		Committer: signature,
	})
	require.NoError(testingInstance, commitError)
	return commitHash
}

// CreateBranch points refs/heads/branchName at commitHash.
func (fixture *RepositoryFixture) CreateBranch(testingInstance testing.TB, branchName string, commitHash plumbing.Hash) {
	testingInstance.Helper()

	reference := plumbing.NewHashReference(plumbing.NewBranchReferenceName(branchName), commitHash)
	require.NoError(testingInstance, fixture.Repository.Storer.SetReference(reference))
}

// CurrentBranch returns the short name HEAD points to.
func (fixture *RepositoryFixture) CurrentBranch(testingInstance testing.TB) string {
	testingInstance.Helper()

	headReference, headError := fixture.Repository.Head()
	require.NoError(testingInstance, headError)
	return headReference.Name().Short()
}
