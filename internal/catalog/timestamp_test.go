package catalog_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/davidpdrsn/git-branch-picker/internal/catalog"
)

func TestReconstructCommitTime(testInstance *testing.T) {
	berlin := time.FixedZone("CET", 60*60)

	testCases := []struct {
		name          string
		epochSeconds  int64
		offsetMinutes int
		display       *time.Location
		expected      time.Time
	}{
		{
			name:          "utc_commit_utc_display",
			epochSeconds:  1700000000,
			offsetMinutes: 0,
			display:       time.UTC,
			expected:      time.Date(2023, time.November, 14, 22, 13, 20, 0, time.UTC),
		},
		{
			name:          "positive_offset_keeps_committer_clock",
			epochSeconds:  1700000000,
			offsetMinutes: 120,
			display:       time.UTC,
			expected:      time.Date(2023, time.November, 15, 0, 13, 20, 0, time.UTC),
		},
		{
			name:          "negative_half_hour_offset",
			epochSeconds:  1700000000,
			offsetMinutes: -330,
			display:       time.UTC,
			expected:      time.Date(2023, time.November, 14, 16, 43, 20, 0, time.UTC),
		},
		{
			name:          "display_location_does_not_shift_clock",
			epochSeconds:  1700000000,
			offsetMinutes: 120,
			display:       berlin,
			expected:      time.Date(2023, time.November, 15, 0, 13, 20, 0, berlin),
		},
		{
			name:          "epoch_start",
			epochSeconds:  0,
			offsetMinutes: -60,
			display:       time.UTC,
			expected:      time.Date(1969, time.December, 31, 23, 0, 0, 0, time.UTC),
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			reconstructed := catalog.ReconstructCommitTime(testCase.epochSeconds, testCase.offsetMinutes, testCase.display)
			require.True(testInstance, testCase.expected.Equal(reconstructed), "expected %s, got %s", testCase.expected, reconstructed)
			require.Equal(testInstance, testCase.display, reconstructed.Location())
		})
	}
}

func TestReconstructCommitTimeDefaultsToLocal(testInstance *testing.T) {
	reconstructed := catalog.ReconstructCommitTime(1700000000, 0, nil)
	require.Equal(testInstance, time.Local, reconstructed.Location())
	require.Equal(testInstance, 22, reconstructed.Hour())
}
