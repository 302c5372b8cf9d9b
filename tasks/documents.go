package tasks

import (
	"text2phenotype.com/nlg/redis"
	"sync"
)

const DocumentsDB redis.DB = 0

type DocumentTask struct {
	FailedTasks        []string            `json:"failed_tasks"`
	FailedRealisations map[string][]string `json:"failed_realisations"`
}

type DocumentTaskCached struct {
	DocInfo     map[string]interface{} `json:"document_info,omitempty"`
	FailedTasks []string               `json:"failed_tasks"`
	JobID       string                 `json:"job_id,omitempty"`
	WorkType    string                 `json:"work_type,omitempty"`
}

type DocumentTasks struct {
	client redis.Client
}

func (tasks DocumentTasks) Get(redisKey string) (*DocumentTask, error) {
	var task DocumentTask
	err := tasks.client.GetDocument(redisKey, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (tasks DocumentTasks) GetCached(redisKey string) (*DocumentTaskCached, error) {
	var task DocumentTaskCached
	err := tasks.client.GetDocument(cachedPropertiesKey(redisKey), &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Update changes a document task and mirrors its failed tasks into the
// cached properties document.
func (tasks DocumentTasks) Update(redisKey string, updateFunc func(task *DocumentTask)) (err error) {
	releaseLock, err := tasks.client.Lock(redisKey)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = releaseLock()
			return
		}
		err = releaseLock()
	}()

	original, err := tasks.client.GetRaw(redisKey)
	if err != nil {
		return err
	}
	task, err := decodeDocumentTask(original)
	if err != nil {
		return err
	}
	updateFunc(task)

	cachedKey := cachedPropertiesKey(redisKey)
	cachedOriginal, err := tasks.client.GetRaw(cachedKey)
	if err != nil {
		cachedOriginal = []byte("{}")
	}
	cached := DocumentTaskCached{FailedTasks: task.FailedTasks}

	errChan := make(chan error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		errChan <- tasks.client.MergeDoc(redisKey, original, task)
		wg.Done()
	}()
	go func() {
		errChan <- tasks.client.MergeDoc(cachedKey, cachedOriginal, &cached)
		wg.Done()
	}()
	wg.Wait()
	close(errChan)
	for err = range errChan {
		if err != nil {
			return err
		}
	}
	return nil
}
