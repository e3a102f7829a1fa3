package utils_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidpdrsn/git-branch-picker/internal/utils"
)

func TestCommandContextAccessorRoundTrips(testInstance *testing.T) {
	accessor := utils.NewCommandContextAccessor()

	_, configurationAvailable := accessor.ConfigurationFilePath(context.Background())
	require.False(testInstance, configurationAvailable)

	executionContext := accessor.WithConfigurationFilePath(context.Background(), "/tmp/config.yaml")
	executionContext = accessor.WithRepositoryPath(executionContext, "  /tmp/checkout  ")

	configurationFilePath, configurationAvailable := accessor.ConfigurationFilePath(executionContext)
	require.True(testInstance, configurationAvailable)
	require.Equal(testInstance, "/tmp/config.yaml", configurationFilePath)

	repositoryPath, repositoryAvailable := accessor.RepositoryPath(executionContext)
	require.True(testInstance, repositoryAvailable)
	require.Equal(testInstance, "/tmp/checkout", repositoryPath)
}

func TestCommandContextAccessorTreatsBlankRepositoryPathAsAbsent(testInstance *testing.T) {
	accessor := utils.NewCommandContextAccessor()
	executionContext := accessor.WithRepositoryPath(context.Background(), "   ")

	_, repositoryAvailable := accessor.RepositoryPath(executionContext)
	require.False(testInstance, repositoryAvailable)
}
