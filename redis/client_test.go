package redis

import (
	"github.com/stretchr/testify/require"
	"testing"
)

type testTask struct {
	Status   string        `json:"status"`
	Attempts int           `json:"attempts"`
	Errors   []string      `json:"errors,omitempty"`
	Inner    testTaskInner `json:"inner"`
}

type testTaskInner struct {
	Done bool `json:"done"`
}

func TestMergeDocument(t *testing.T) {
	original := []byte(`{
		"status": "submitted",
		"attempts": 0,
		"owner": "sequencer",
		"errors": ["first"],
		"inner": {"done": false, "extra": 1}
	}`)

	t.Run("unknown fields survive", func(t *testing.T) {
		doc := testTask{Status: "completed", Attempts: 2, Inner: testTaskInner{Done: true}}
		merged, err := mergeDocument(original, doc)
		require.NoError(t, err)
		require.JSONEq(t, `{
			"status": "completed",
			"attempts": 2,
			"owner": "sequencer",
			"errors": ["first"],
			"inner": {"done": true, "extra": 1}
		}`, string(merged))
	})

	t.Run("lists are replaced", func(t *testing.T) {
		doc := testTask{Status: "failed", Errors: []string{"second"}}
		merged, err := mergeDocument(original, doc)
		require.NoError(t, err)
		require.JSONEq(t, `{
			"status": "failed",
			"attempts": 0,
			"owner": "sequencer",
			"errors": ["second"],
			"inner": {"done": false, "extra": 1}
		}`, string(merged))
	})

	t.Run("corrupted original", func(t *testing.T) {
		_, err := mergeDocument([]byte(`{"status": `), testTask{})
		require.Error(t, err)
	})
}

func TestReadEnvironment(t *testing.T) {
	t.Setenv("NLG_REDIS_HOST", "cache")
	t.Setenv("NLG_REDIS_PORT", "6380")

	cfg, err := readEnvironment()
	require.NoError(t, err)
	require.Equal(t, 3, cfg.LockExpirationSeconds)
	require.Equal(t, "mymaster", cfg.HASentinelMasterName)
	require.False(t, cfg.HAMode)

	client := CreateClient(cfg, 2)
	require.Equal(t, "cache:6380", client.Options().Addr)
	require.Equal(t, 2, client.Options().DB)
	require.Empty(t, client.Options().Password)
}
