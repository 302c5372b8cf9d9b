package worker

import (
	"encoding/json"
	"github.com/google/go-cmp/cmp"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/require"
	"text2phenotype.com/nlg/logger"
	"text2phenotype.com/nlg/pipeline"
	"text2phenotype.com/nlg/tasks"
	"testing"
)

type mockedClientsConfig struct {
	rmqMockConfig
	redisMockConfig
	s3MockConfig
	pipelineMockConfig
}

type mockedClients struct {
	redis    *redisMock
	rmq      *rmqMock
	s3       *s3Mock
	pipeline *pipelineMock
}

type methodsCalls struct {
	redis    redisMockCalls
	rmq      rmqMockCalls
	s3       s3MockCalls
	pipeline pipelineCall
}

var allowCalls = cmp.AllowUnexported(methodsCalls{}, redisMockCalls{}, rmqMockCalls{}, s3MockCalls{}, pipelineCall{})

func testConfiguration(t *testing.T, config mockedClientsConfig, expectedCalls methodsCalls) {
	worker, mocks := configureWorker(config)
	worker.processMessage(&amqp.Delivery{
		Body: []byte("{}"),
	})
	calls := methodsCalls{
		redis:    mocks.redis.calls,
		rmq:      mocks.rmq.calls,
		s3:       mocks.s3.calls,
		pipeline: mocks.pipeline.calls,
	}
	if diff := cmp.Diff(expectedCalls, calls, allowCalls); diff != "" {
		t.Errorf("Got unexpected called methods set (-want +got):\n%s", diff)
	}
}

func configureWorker(config mockedClientsConfig) (*Worker, *mockedClients) {
	redis := &redisMock{config: config.redisMockConfig}
	s3 := &s3Mock{config: config.s3MockConfig}
	rmq := &rmqMock{config: config.rmqMockConfig}
	pplnMock := getPipelineMock(config.pipelineMockConfig)

	nlgLogger := logger.NewLogger("Test Worker")

	return &Worker{
			config:        Config{TaskMaxRetries: 3, CacheEnabled: true},
			redis:         redis,
			s3:            s3,
			rmq:           rmq,
			nlgLogger:     &nlgLogger,
			ppln:          pplnMock.ppln,
			configuration: "default",
		}, &mockedClients{
			redis:    redis,
			rmq:      rmq,
			s3:       s3,
			pipeline: pplnMock,
		}
}

// ranPipeline are the calls of a task that was realised and stored.
func ranPipeline() methodsCalls {
	return methodsCalls{
		redis: redisMockCalls{
			getRealisationTask: true, getJobTask: true, getCachedResult: true, storeCachedResult: true,
			onTaskStarted: true, onTaskComplete: true,
		},
		rmq:      rmqMockCalls{pingSequencer: true, acknowledgeDelivery: true},
		s3:       s3MockCalls{getSpec: true, saveResultsFile: true},
		pipeline: pipelineCall{true},
	}
}

func TestWorker(t *testing.T) {
	t.Run("Successful", testSuccessfulTask)
	t.Run("Successful with job_task.stop_docs_on_failure == True", testSuccessfulTaskWithDocCheck)
	t.Run("Cached realisation", testCachedRealisation)
	t.Run("Cache read failure", testCacheReadFailure)
	t.Run("Cache write failure", testCacheWriteFailure)
	t.Run("Cache disabled", testCacheDisabled)
	t.Run("Failed to get Realisation task", testGetRealisationTaskFailed)
	t.Run("Failed to get Job task", testGetJobTaskFailed)
	t.Run("Failed to get Doc task", testGetDocTaskFailed)
	t.Run("Already complete with success", testAlreadyCompletedSuccessfully)
	t.Run("Already complete with failure", testAlreadyCompletedWithFailure)
	t.Run("User cancelled", testUserCancelled)
	t.Run("Exceeded attempts", testExceededAttempts)
	t.Run("Cancelled because other worker already failed", testCancelledBecauseOfOtherWorkerFailure)
	t.Run("Failed to update task in onTaskStarted", testFailedToUpdateOnTaskStarted)
	t.Run("Failed to load spec from S3", testFailedToFetchFromS3)
	t.Run("Failed due to pipeline error", testPipelineError)
	t.Run("Failed due to realisation error", testRealisationError)
	t.Run("Failed to update task in onTaskFailedWithError", testFailedToUpdateOnTaskFailedWithError)
	t.Run("Failed to update task in onTaskComplete", testFailedToUpdateOnTaskComplete)
	t.Run("Failed to save result to S3", testFailedToSaveToS3)
	t.Run("Failed to acknowledge delivery", testFailedAckDelivery)
	t.Run("Failed to ping sequencer", testFailedPingSequencer)
}

func testSuccessfulTask(t *testing.T) {
	testConfiguration(t, mockedClientsConfig{}, ranPipeline())
}

func testSuccessfulTaskWithDocCheck(t *testing.T) {
	expected := ranPipeline()
	expected.redis.getDocTask = true
	testConfiguration(
		t,
		mockedClientsConfig{
			redisMockConfig: redisMockConfig{
				getJobTask: withValue{returnedValue: tasks.JobTask{StopDocumentsOnFailure: true}},
			},
		},
		expected,
	)
}

func testCachedRealisation(t *testing.T) {
	testConfiguration(
		t,
		mockedClientsConfig{
			redisMockConfig: redisMockConfig{
				getCachedResult: withValue{returnedValue: `{"tid":"old","text":"John eats."}`},
			},
		},
		methodsCalls{
			redis: redisMockCalls{
				getRealisationTask: true, getJobTask: true, getCachedResult: true,
				onTaskStarted: true, onTaskComplete: true,
			},
			rmq: rmqMockCalls{pingSequencer: true, acknowledgeDelivery: true},
			s3:  s3MockCalls{getSpec: true, saveResultsFile: true},
		},
	)
}

func testCacheReadFailure(t *testing.T) {
	testConfiguration(
		t,
		mockedClientsConfig{
			redisMockConfig: redisMockConfig{getCachedResult: withValue{fail: true}},
		},
		ranPipeline(),
	)
}

func testCacheWriteFailure(t *testing.T) {
	testConfiguration(
		t,
		mockedClientsConfig{
			redisMockConfig: redisMockConfig{storeCachedResult: failingMethod{fail: true}},
		},
		ranPipeline(),
	)
}

func testCacheDisabled(t *testing.T) {
	worker, mocks := configureWorker(mockedClientsConfig{})
	worker.config.CacheEnabled = false
	worker.processMessage(&amqp.Delivery{Body: []byte("{}")})

	expected := ranPipeline()
	expected.redis.getCachedResult = false
	expected.redis.storeCachedResult = false
	calls := methodsCalls{
		redis:    mocks.redis.calls,
		rmq:      mocks.rmq.calls,
		s3:       mocks.s3.calls,
		pipeline: mocks.pipeline.calls,
	}
	if diff := cmp.Diff(expected, calls, allowCalls); diff != "" {
		t.Errorf("Got unexpected called methods set (-want +got):\n%s", diff)
	}
}

func testAlreadyCompletedSuccessfully(t *testing.T) {
	testConfiguration(
		t,
		mockedClientsConfig{
			redisMockConfig: redisMockConfig{
				getRealisationTask: withValue{
					returnedValue: tasks.RealisationTask{
						TaskStatuses: tasks.RealisationTaskStatuses{NLG: tasks.TaskInfo{Status: tasks.TaskStatusCompletedSuccess}},
					},
				},
			},
		},
		methodsCalls{
			redis: redisMockCalls{getRealisationTask: true},
			rmq:   rmqMockCalls{pingSequencer: true, acknowledgeDelivery: true},
		},
	)
}

func testAlreadyCompletedWithFailure(t *testing.T) {
	testConfiguration(
		t,
		mockedClientsConfig{
			redisMockConfig: redisMockConfig{
				getRealisationTask: withValue{
					returnedValue: tasks.RealisationTask{
						TaskStatuses: tasks.RealisationTaskStatuses{NLG: tasks.TaskInfo{Status: tasks.TaskStatusCompletedFailure}},
					},
				},
			},
		},
		methodsCalls{
			redis: redisMockCalls{getRealisationTask: true},
			rmq:   rmqMockCalls{pingSequencer: true, acknowledgeDelivery: true},
		},
	)
}

func testUserCancelled(t *testing.T) {
	testConfiguration(
		t,
		mockedClientsConfig{
			redisMockConfig: redisMockConfig{
				getJobTask: withValue{returnedValue: tasks.JobTask{UserCanceled: true}},
			},
		},
		methodsCalls{
			redis: redisMockCalls{getRealisationTask: true, getJobTask: true, onTaskCancelled: true},
			rmq:   rmqMockCalls{pingSequencer: true, acknowledgeDelivery: true},
		},
	)
}

func testExceededAttempts(t *testing.T) {
	testConfiguration(
		t,
		mockedClientsConfig{
			redisMockConfig: redisMockConfig{
				getRealisationTask: withValue{
					returnedValue: tasks.RealisationTask{
						TaskStatuses: tasks.RealisationTaskStatuses{NLG: tasks.TaskInfo{Attempts: 3}},
					},
				},
			},
		},
		methodsCalls{
			redis: redisMockCalls{getRealisationTask: true, getJobTask: true, onTaskExceededRetries: true},
			rmq:   rmqMockCalls{pingSequencer: true, acknowledgeDelivery: true},
		},
	)
}

func testCancelledBecauseOfOtherWorkerFailure(t *testing.T) {
	testConfiguration(
		t,
		mockedClientsConfig{
			redisMockConfig: redisMockConfig{
				getJobTask: withValue{
					returnedValue: tasks.JobTask{
						StopDocumentsOnFailure: true,
					},
				},
				getDocTask: withValue{
					returnedValue: tasks.DocumentTaskCached{
						FailedTasks: []string{"some other task"},
					},
				},
			},
		},
		methodsCalls{
			redis: redisMockCalls{getRealisationTask: true, getJobTask: true, getDocTask: true, onTaskCancelled: true},
			rmq:   rmqMockCalls{pingSequencer: true, acknowledgeDelivery: true},
		},
	)
}

func testFailedToUpdateOnTaskStarted(t *testing.T) {
	testConfiguration(
		t,
		mockedClientsConfig{
			redisMockConfig: redisMockConfig{onTaskStarted: failingMethod{fail: true}},
		},
		methodsCalls{
			redis: redisMockCalls{
				getRealisationTask: true, getJobTask: true, onTaskStarted: true,
			},
			rmq: rmqMockCalls{rejectDelivery: true},
		},
	)
}

func testFailedToUpdateOnTaskComplete(t *testing.T) {
	expected := ranPipeline()
	expected.rmq = rmqMockCalls{rejectDelivery: true}
	testConfiguration(
		t,
		mockedClientsConfig{
			redisMockConfig: redisMockConfig{onTaskComplete: failingMethod{fail: true}},
		},
		expected,
	)
}

func testFailedToFetchFromS3(t *testing.T) {
	testConfiguration(
		t,
		mockedClientsConfig{
			s3MockConfig: s3MockConfig{getSpec: withValue{fail: true}},
		},
		methodsCalls{
			redis: redisMockCalls{
				getRealisationTask: true, getJobTask: true, onTaskStarted: true, onTaskFailedWithError: true,
			},
			rmq: rmqMockCalls{pingSequencer: true, acknowledgeDelivery: true},
			s3:  s3MockCalls{getSpec: true},
		},
	)
}

func testPipelineError(t *testing.T) {
	testConfiguration(
		t,
		mockedClientsConfig{
			pipelineMockConfig: pipelineMockConfig{fail: true},
		},
		methodsCalls{
			redis: redisMockCalls{
				getRealisationTask: true, getJobTask: true, getCachedResult: true,
				onTaskStarted: true, onTaskFailedWithError: true,
			},
			rmq:      rmqMockCalls{pingSequencer: true, acknowledgeDelivery: true},
			s3:       s3MockCalls{getSpec: true},
			pipeline: pipelineCall{true},
		},
	)
}

func testRealisationError(t *testing.T) {
	testConfiguration(
		t,
		mockedClientsConfig{
			pipelineMockConfig: pipelineMockConfig{realisationError: `unknown element type "nonsense"`},
		},
		methodsCalls{
			redis: redisMockCalls{
				getRealisationTask: true, getJobTask: true, getCachedResult: true,
				onTaskStarted: true, onTaskFailedWithError: true,
			},
			rmq:      rmqMockCalls{pingSequencer: true, acknowledgeDelivery: true},
			s3:       s3MockCalls{getSpec: true},
			pipeline: pipelineCall{true},
		},
	)
}

func testFailedToUpdateOnTaskFailedWithError(t *testing.T) {
	testConfiguration(
		t,
		mockedClientsConfig{
			pipelineMockConfig: pipelineMockConfig{fail: true},
			redisMockConfig:    redisMockConfig{onTaskFailedWithError: failingMethod{fail: true}},
		},
		methodsCalls{
			redis: redisMockCalls{
				getRealisationTask: true, getJobTask: true, getCachedResult: true,
				onTaskStarted: true, onTaskFailedWithError: true,
			},
			rmq:      rmqMockCalls{rejectDelivery: true},
			s3:       s3MockCalls{getSpec: true},
			pipeline: pipelineCall{true},
		},
	)
}

func testFailedToSaveToS3(t *testing.T) {
	expected := ranPipeline()
	expected.redis.onTaskComplete = false
	expected.redis.onTaskFailedWithError = true
	testConfiguration(
		t,
		mockedClientsConfig{
			s3MockConfig: s3MockConfig{saveResultsFile: failingMethod{fail: true}},
		},
		expected,
	)
}

func testFailedAckDelivery(t *testing.T) {
	testConfiguration(
		t,
		mockedClientsConfig{
			rmqMockConfig: rmqMockConfig{acknowledgeDelivery: failingMethod{fail: true}},
		},
		ranPipeline(),
	)
}

func testFailedPingSequencer(t *testing.T) {
	expected := ranPipeline()
	expected.rmq = rmqMockCalls{pingSequencer: true, rejectDelivery: true}
	testConfiguration(
		t,
		mockedClientsConfig{
			rmqMockConfig: rmqMockConfig{pingSequencer: failingMethod{fail: true}},
		},
		expected,
	)
}

func testGetRealisationTaskFailed(t *testing.T) {
	testConfiguration(
		t,
		mockedClientsConfig{
			redisMockConfig: redisMockConfig{getRealisationTask: withValue{fail: true}},
		},
		methodsCalls{
			redis: redisMockCalls{
				getRealisationTask: true,
			},
			rmq: rmqMockCalls{rejectDelivery: true},
		},
	)
}

func testGetJobTaskFailed(t *testing.T) {
	testConfiguration(
		t,
		mockedClientsConfig{
			redisMockConfig: redisMockConfig{getJobTask: withValue{fail: true}},
		},
		methodsCalls{
			redis: redisMockCalls{
				getRealisationTask: true, getJobTask: true,
			},
			rmq: rmqMockCalls{rejectDelivery: true},
		},
	)
}

func testGetDocTaskFailed(t *testing.T) {
	testConfiguration(
		t,
		mockedClientsConfig{
			redisMockConfig: redisMockConfig{
				getJobTask: withValue{returnedValue: tasks.JobTask{StopDocumentsOnFailure: true}},
				getDocTask: withValue{fail: true},
			},
		},
		methodsCalls{
			redis: redisMockCalls{
				getRealisationTask: true, getJobTask: true, getDocTask: true,
			},
			rmq: rmqMockCalls{rejectDelivery: true},
		},
	)
}

func TestRealisationFlow(t *testing.T) {
	worker, mocks := configureWorker(mockedClientsConfig{})
	worker.processMessage(&amqp.Delivery{Body: []byte(`{"redis_key": "task-1", "work_type": "realise"}`)})

	require.Len(t, mocks.pipeline.requests, 1)
	request := mocks.pipeline.requests[0]
	require.Equal(t, "task-1", request.Tid)
	require.JSONEq(t, defaultSpec, string(request.Spec))

	var saved pipeline.Response
	require.NoError(t, json.Unmarshal([]byte(mocks.s3.saved), &saved))
	require.Equal(t, "task-1", saved.Tid)
	require.Equal(t, "John eats.", saved.Text)

	key := tasks.CacheKey("default", []byte(defaultSpec))
	require.Equal(t, mocks.s3.saved, mocks.redis.stored[key])
}

func TestResultsFileKey(t *testing.T) {
	task := &Task{
		redisKey:        "task-1",
		realisationTask: &tasks.RealisationTask{DocID: "doc-1"},
	}
	require.Equal(t, "processed/documents/doc-1/realisations/task-1/task-1.nlg_results.json", getResultsFileKey(task))
}
