package worker

import (
	"fmt"
	"text2phenotype.com/nlg/tasks"
)

type redisTransactions interface {
	getRealisationTask(redisKey string) (*tasks.RealisationTask, error)
	getJobTask(task *Task) (*tasks.JobTask, error)
	getDocTask(task *Task) (*tasks.DocumentTaskCached, error)
	getCachedResult(key string) (string, bool, error)
	storeCachedResult(key string, result string) error
	onTaskStarted(task *Task) error
	onTaskCancelled(task *Task, errorMessages ...string) error
	onTaskExceededRetries(task *Task, maxRetries int) error
	onTaskFailedWithError(task *Task, err error) error
	onTaskComplete(task *Task) error
	close()
}

type redisClientWrapper struct {
	tasksClient *tasks.Client
}

func (wrapper *redisClientWrapper) close() {
	wrapper.tasksClient.Close()
}

func (wrapper *redisClientWrapper) onTaskStarted(task *Task) error {
	return wrapper.tasksClient.Realisations.Update(task.redisKey, func(rt *tasks.RealisationTask) {
		info := &rt.TaskStatuses.NLG
		info.Status = tasks.TaskStatusStarted
		info.Attempts += 1
		info.StartedAt = getFormattedNow()
		info.CompletedAt = nil
	})
}

func (wrapper *redisClientWrapper) onTaskCancelled(task *Task, errorMessages ...string) error {
	return wrapper.tasksClient.Realisations.Update(task.redisKey, func(rt *tasks.RealisationTask) {
		info := &rt.TaskStatuses.NLG
		info.Status = tasks.TaskStatusCanceled
		info.StartedAt = getFormattedNow()
		info.CompletedAt = getFormattedNow()
		info.Attempts += 1
		info.ErrorMessages = append(info.ErrorMessages, errorMessages...)
	})
}

func (wrapper *redisClientWrapper) onTaskExceededRetries(task *Task, maxRetries int) error {
	err := wrapper.tasksClient.Documents.Update(task.realisationTask.DocID, func(docTask *tasks.DocumentTask) {
		docTask.FailedTasks = append(docTask.FailedTasks, senderName)
		docTask.FailedRealisations[task.redisKey] = append(docTask.FailedRealisations[task.redisKey], senderName)
	})
	if err != nil {
		return err
	}
	return wrapper.tasksClient.Realisations.Update(task.redisKey, func(rt *tasks.RealisationTask) {
		info := &rt.TaskStatuses.NLG
		info.Status = tasks.TaskStatusCompletedFailure
		info.StartedAt = getFormattedNow()
		info.CompletedAt = getFormattedNow()
		info.Attempts += 1
		info.ErrorMessages = append(
			info.ErrorMessages,
			fmt.Sprintf(
				"Task has exceeded retries. (Attempts: %d, max retries: %d )",
				info.Attempts,
				maxRetries,
			),
		)
	})
}

func (wrapper *redisClientWrapper) onTaskFailedWithError(task *Task, err error) error {
	return wrapper.tasksClient.Realisations.Update(task.redisKey, func(rt *tasks.RealisationTask) {
		info := &rt.TaskStatuses.NLG
		info.Status = tasks.TaskStatusFailed
		info.CompletedAt = getFormattedNow()
		info.ErrorMessages = append(info.ErrorMessages, err.Error())
	})
}

func (wrapper *redisClientWrapper) onTaskComplete(task *Task) error {
	return wrapper.tasksClient.Realisations.Update(task.redisKey, func(rt *tasks.RealisationTask) {
		info := &rt.TaskStatuses.NLG
		if !info.Status.Complete() {
			info.Status = tasks.TaskStatusCompletedSuccess
		}
		info.CompletedAt = getFormattedNow()
		info.ResultsFileKey = getResultsFileKey(task)
		info.Cached = task.cached
	})
}

func (wrapper *redisClientWrapper) getRealisationTask(redisKey string) (*tasks.RealisationTask, error) {
	return wrapper.tasksClient.Realisations.Get(redisKey)
}

func (wrapper *redisClientWrapper) getJobTask(task *Task) (*tasks.JobTask, error) {
	return wrapper.tasksClient.Jobs.GetCached(task.realisationTask.JobID)
}

func (wrapper *redisClientWrapper) getDocTask(task *Task) (*tasks.DocumentTaskCached, error) {
	return wrapper.tasksClient.Documents.GetCached(task.realisationTask.DocID)
}

func (wrapper *redisClientWrapper) getCachedResult(key string) (string, bool, error) {
	return wrapper.tasksClient.Cache.Get(key)
}

func (wrapper *redisClientWrapper) storeCachedResult(key string, result string) error {
	return wrapper.tasksClient.Cache.Store(key, result)
}
