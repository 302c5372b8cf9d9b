package tasks

import (
	"text2phenotype.com/nlg/redis"
)

const RealisationsDB redis.DB = 2

type TaskStatus string

const (
	TaskStatusProcessing       TaskStatus = "processing"
	TaskStatusSubmitted        TaskStatus = "submitted"
	TaskStatusStarted          TaskStatus = "started"
	TaskStatusFailed           TaskStatus = "failed"
	TaskStatusCompletedSuccess TaskStatus = "completed - success"
	TaskStatusCompletedFailure TaskStatus = "completed - failure"
	TaskStatusCanceled         TaskStatus = "canceled"
)

func (s TaskStatus) Complete() bool {
	return s == TaskStatusCompletedSuccess || s == TaskStatusCompletedFailure || s == TaskStatusCanceled
}

func (s TaskStatus) Submitted() bool {
	return s == TaskStatusSubmitted || s == TaskStatusStarted || s == TaskStatusProcessing
}

// RealisationTask asks for one tree spec stored in S3 to be realised.
type RealisationTask struct {
	DocID        string                  `json:"document_id"`
	JobID        string                  `json:"job_id"`
	SpecFileKey  string                  `json:"spec_file_key"`
	TaskStatuses RealisationTaskStatuses `json:"task_statuses"`
}

type RealisationTaskStatuses struct {
	NLG TaskInfo `json:"nlg"`
}

type TaskInfo struct {
	ResultsFileKey string     `json:"results_file_key"`
	StartedAt      *string    `json:"started_at"`
	CompletedAt    *string    `json:"completed_at"`
	Attempts       int        `json:"attempts"`
	Status         TaskStatus `json:"status"`
	Cached         bool       `json:"cached"`
	Dependencies   []string   `json:"dependencies"`
	ErrorMessages  []string   `json:"error_messages"`
}

type RealisationTasks struct {
	client redis.Client
}

func (tasks RealisationTasks) Get(redisKey string) (*RealisationTask, error) {
	var task RealisationTask
	err := tasks.client.GetDocument(redisKey, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (tasks RealisationTasks) Update(redisKey string, updateFunc func(task *RealisationTask)) error {
	var task RealisationTask
	return tasks.client.UpdateDocument(redisKey, &task, func() {
		updateFunc(&task)
	})
}
