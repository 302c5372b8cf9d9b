package tasks

import (
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func TestTaskStatus(t *testing.T) {
	for _, s := range []TaskStatus{TaskStatusCompletedSuccess, TaskStatusCompletedFailure, TaskStatusCanceled} {
		require.True(t, s.Complete(), s)
		require.False(t, s.Submitted(), s)
	}
	for _, s := range []TaskStatus{TaskStatusSubmitted, TaskStatusStarted, TaskStatusProcessing} {
		require.False(t, s.Complete(), s)
		require.True(t, s.Submitted(), s)
	}
	require.False(t, TaskStatusFailed.Complete())
}

func TestCacheKey(t *testing.T) {
	spec := []byte(`{"type": "clause", "verb": "eat"}`)
	key := CacheKey("default", spec)
	require.True(t, strings.HasPrefix(key, cacheKeyPrefix+":"))
	require.Equal(t, key, CacheKey("default", spec))
	require.NotEqual(t, key, CacheKey("html", spec))
	require.NotEqual(t, key, CacheKey("default", []byte(`{"type": "clause", "verb": "drink"}`)))
	require.NotEqual(t, CacheKey("ab", []byte("c")), CacheKey("a", []byte("bc")))
}

func TestDecodeDocumentTask(t *testing.T) {
	task, err := decodeDocumentTask([]byte(`{"failed_tasks": ["annotate"], "other": 1}`))
	require.NoError(t, err)
	require.Equal(t, []string{"annotate"}, task.FailedTasks)
	require.NotNil(t, task.FailedRealisations)

	_, err = decodeDocumentTask([]byte(`[]`))
	require.Error(t, err)
}
