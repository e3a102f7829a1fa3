package gitrepo

import (
	"fmt"
	"strings"

	"github.com/davidpdrsn/git-branch-picker/internal/shared"
	"github.com/davidpdrsn/git-branch-picker/internal/utils"
)

const unsupportedBackendTemplateConstant = "unsupported repository backend: %s, expected %s"

// Backend selects the repository manager implementation.
type Backend string

// Supported backends.
const (
	BackendGit   Backend = Backend("git")
	BackendGoGit Backend = Backend("go-git")
)

// SupportedBackends lists the accepted backend names.
func SupportedBackends() []string {
	return []string{string(BackendGit), string(BackendGoGit)}
}

// ParseBackend normalizes a configured backend name.
func ParseBackend(rawBackend string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(rawBackend))) {
	case BackendGit:
		return BackendGit, nil
	case BackendGoGit:
		return BackendGoGit, nil
	default:
		return "", fmt.Errorf(unsupportedBackendTemplateConstant, rawBackend, backendChoices())
	}
}

// NewManager builds the repository manager for backend; the git backend runs through executor.
func NewManager(backend Backend, executor shared.GitExecutor) (shared.GitRepositoryManager, error) {
	switch backend {
	case BackendGit:
		repositoryManager, creationError := NewRepositoryManager(executor)
		if creationError != nil {
			return nil, creationError
		}
		return repositoryManager, nil
	case BackendGoGit:
		return NewNativeRepositoryManager(), nil
	default:
		return nil, fmt.Errorf(unsupportedBackendTemplateConstant, backend, backendChoices())
	}
}

func backendChoices() string {
	return utils.FormatChoiceUsage(string(BackendGit), SupportedBackends(), "")
}
