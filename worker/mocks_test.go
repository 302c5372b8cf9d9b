package worker

import (
	"encoding/json"
	"errors"
	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
	"text2phenotype.com/nlg/pipeline"
	"text2phenotype.com/nlg/tasks"
)

type failingMethod struct {
	fail bool
}

type withValue struct {
	fail          bool
	returnedValue interface{}
}

type pipelineMock struct {
	ppln     pipeline.Pipeline
	config   pipelineMockConfig
	calls    pipelineCall
	requests []pipeline.Request
}

type pipelineMockConfig struct {
	// fail closes the response channel without a response.
	fail bool
	// realisationError is reported inside the response.
	realisationError string
}

type pipelineCall struct {
	pipeline bool
}

type redisMock struct {
	config redisMockConfig
	calls  redisMockCalls
	stored map[string]string
}

type redisMockConfig struct {
	getRealisationTask    withValue
	getJobTask            withValue
	getDocTask            withValue
	getCachedResult       withValue
	storeCachedResult     failingMethod
	onTaskCancelled       failingMethod
	onTaskStarted         failingMethod
	onTaskExceededRetries failingMethod
	onTaskFailedWithError failingMethod
	onTaskComplete        failingMethod
}

type redisMockCalls struct {
	getRealisationTask    bool
	getJobTask            bool
	getDocTask            bool
	getCachedResult       bool
	storeCachedResult     bool
	onTaskCancelled       bool
	onTaskStarted         bool
	onTaskExceededRetries bool
	onTaskFailedWithError bool
	onTaskComplete        bool
}

type rmqMock struct {
	config rmqMockConfig
	calls  rmqMockCalls
}

type rmqMockConfig struct {
	pingSequencer       failingMethod
	acknowledgeDelivery failingMethod
}

type rmqMockCalls struct {
	pingSequencer       bool
	acknowledgeDelivery bool
	rejectDelivery      bool
}

type s3Mock struct {
	config s3MockConfig
	calls  s3MockCalls
	saved  string
}

type s3MockConfig struct {
	getSpec         withValue
	saveResultsFile failingMethod
}

type s3MockCalls struct {
	getSpec         bool
	saveResultsFile bool
}

const defaultSpec = `{"type": "clause", "subjects": ["John"], "verb": "eat"}`

func (mock *s3Mock) close() {}

func (mock *rmqMock) close() {}

func (mock *redisMock) close() {}

func getPipelineMock(config pipelineMockConfig) *pipelineMock {
	mock := pipelineMock{config: config}
	mock.ppln = func(request pipeline.Request) <-chan string {
		mock.calls.pipeline = true
		mock.requests = append(mock.requests, request)
		ch := make(chan string, 1)
		defer close(ch)
		if mock.config.fail {
			return ch
		}
		response := pipeline.Response{
			Tid:       request.Tid,
			Text:      "John eats.",
			Sentences: []string{"John eats."},
			Error:     mock.config.realisationError,
		}
		b, _ := json.Marshal(response)
		ch <- string(b)
		return ch
	}
	return &mock
}

func (mock *redisMock) getRealisationTask(redisKey string) (*tasks.RealisationTask, error) {
	mock.calls.getRealisationTask = true
	if mock.config.getRealisationTask.fail {
		return nil, errors.New("failed to get realisation task")
	}
	if task, ok := mock.config.getRealisationTask.returnedValue.(tasks.RealisationTask); ok {
		return &task, nil
	}
	return &tasks.RealisationTask{DocID: "doc-1", JobID: "job-1", SpecFileKey: "specs/doc-1.json"}, nil
}

func (mock *redisMock) getJobTask(task *Task) (*tasks.JobTask, error) {
	mock.calls.getJobTask = true
	if mock.config.getJobTask.fail {
		return nil, errors.New("failed to get job task")
	}
	if jobTask, ok := mock.config.getJobTask.returnedValue.(tasks.JobTask); ok {
		return &jobTask, nil
	}
	return &tasks.JobTask{}, nil
}

func (mock *redisMock) getDocTask(task *Task) (*tasks.DocumentTaskCached, error) {
	mock.calls.getDocTask = true
	if mock.config.getDocTask.fail {
		return nil, errors.New("failed to get doc task")
	}
	if docTask, ok := mock.config.getDocTask.returnedValue.(tasks.DocumentTaskCached); ok {
		return &docTask, nil
	}
	return &tasks.DocumentTaskCached{}, nil
}

func (mock *redisMock) getCachedResult(key string) (string, bool, error) {
	mock.calls.getCachedResult = true
	if mock.config.getCachedResult.fail {
		return "", false, errors.New("failed to read cache")
	}
	if result, ok := mock.config.getCachedResult.returnedValue.(string); ok {
		return result, true, nil
	}
	return "", false, nil
}

func (mock *redisMock) storeCachedResult(key string, result string) error {
	mock.calls.storeCachedResult = true
	if mock.config.storeCachedResult.fail {
		return errors.New("failed to write cache")
	}
	if mock.stored == nil {
		mock.stored = make(map[string]string)
	}
	mock.stored[key] = result
	return nil
}

func (mock *redisMock) onTaskStarted(task *Task) error {
	mock.calls.onTaskStarted = true
	if mock.config.onTaskStarted.fail {
		return errors.New("failed to update realisation task on start")
	}
	return nil
}

func (mock *redisMock) onTaskCancelled(task *Task, errorMessages ...string) error {
	mock.calls.onTaskCancelled = true
	if mock.config.onTaskCancelled.fail {
		return errors.New("failed to update realisation task on cancel")
	}
	return nil
}

func (mock *redisMock) onTaskExceededRetries(task *Task, maxRetries int) error {
	mock.calls.onTaskExceededRetries = true
	if mock.config.onTaskExceededRetries.fail {
		return errors.New("failed to update realisation task on exceeded retries")
	}
	return nil
}

func (mock *redisMock) onTaskFailedWithError(task *Task, err error) error {
	mock.calls.onTaskFailedWithError = true
	if mock.config.onTaskFailedWithError.fail {
		return errors.New("failed to update realisation task on fail with error")
	}
	return nil
}

func (mock *redisMock) onTaskComplete(task *Task) error {
	mock.calls.onTaskComplete = true
	if mock.config.onTaskComplete.fail {
		return errors.New("failed to update realisation task on complete")
	}
	return nil
}

func (mock *rmqMock) rejectDelivery(delivery *amqp.Delivery, nlgLogger *zerolog.Logger) {
	mock.calls.rejectDelivery = true
}

func (mock *rmqMock) getDeliveriesCh() <-chan amqp.Delivery {
	return nil
}

func (mock *rmqMock) getReqChanErrorsCh() <-chan *amqp.Error {
	return nil
}

func (mock *rmqMock) getRespChanErrorsCh() <-chan *amqp.Error {
	return nil
}

func (mock *rmqMock) pingSequencer(task *Task, message Message) error {
	mock.calls.pingSequencer = true
	if mock.config.pingSequencer.fail {
		return errors.New("failed to ping sequencer")
	}
	return nil
}

func (mock *rmqMock) acknowledgeDelivery(delivery *amqp.Delivery) error {
	mock.calls.acknowledgeDelivery = true
	if mock.config.acknowledgeDelivery.fail {
		return errors.New("failed to acknowledge delivery")
	}
	return nil
}

func (mock *s3Mock) getSpec(task *Task) ([]byte, error) {
	mock.calls.getSpec = true
	if mock.config.getSpec.fail {
		return nil, errors.New("mock: failed to load from s3")
	}
	if spec, ok := mock.config.getSpec.returnedValue.([]byte); ok {
		return spec, nil
	}
	return []byte(defaultSpec), nil
}

func (mock *s3Mock) saveResultsFile(task *Task, result string) error {
	mock.calls.saveResultsFile = true
	if mock.config.saveResultsFile.fail {
		return errors.New("failed to upload results")
	}
	mock.saved = result
	return nil
}
