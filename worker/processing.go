package worker

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
	"text2phenotype.com/nlg/pipeline"
	"text2phenotype.com/nlg/tasks"
	"text2phenotype.com/nlg/utils"
)

const senderName = "nlg"

type Message struct {
	WorkType string `json:"work_type"`
	RedisKey string `json:"redis_key"`
	Sender   string `json:"sender"`
	Version  string `json:"version"`
}

type Task struct {
	delivery        *amqp.Delivery
	realisationTask *tasks.RealisationTask
	message         *Message
	redisKey        string
	nlgLogger       *zerolog.Logger
	// cached is set when the result came from the realisation cache.
	cached bool
}

func (worker *Worker) processMessage(delivery *amqp.Delivery) {
	task, err := worker.createTask(delivery)
	rejectLogger := worker.nlgLogger.With().Str("message_id", delivery.MessageId).Logger()
	if err != nil {
		worker.nlgLogger.Err(err).
			Str("message_id", delivery.MessageId).
			Str("tid", string(delivery.Body)).
			Msg("Failed to create task for delivery")
		worker.rmq.rejectDelivery(delivery, &rejectLogger)
		return
	}
	if err = worker.processTask(task); err != nil {
		worker.rmq.rejectDelivery(delivery, &rejectLogger)
		return
	}
	if err = worker.rmq.pingSequencer(task, *task.message); err != nil {
		task.nlgLogger.Err(err).Msg("Got error while sending message to sequencer queue")
		worker.rmq.rejectDelivery(delivery, &rejectLogger)
		return
	}
	if err = worker.rmq.acknowledgeDelivery(delivery); err != nil {
		task.nlgLogger.Err(err).Msg("Failed to acknowledge delivery")
	}
	task.nlgLogger.Info().Msg("Finished processing RMQ message")
}

func (worker *Worker) createTask(delivery *amqp.Delivery) (*Task, error) {
	var message Message
	err := json.Unmarshal(delivery.Body, &message)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal message, got error %w", err)
	}
	realisationTask, err := worker.redis.getRealisationTask(message.RedisKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query realisation task for message, got error %w", err)
	}
	taskLogger := worker.nlgLogger.With().Str("tid", message.RedisKey).Logger()
	task := Task{
		delivery:        delivery,
		realisationTask: realisationTask,
		redisKey:        message.RedisKey,
		message:         &message,
		nlgLogger:       &taskLogger,
	}
	return &task, nil
}

func (worker *Worker) processTask(task *Task) error {
	shouldPerform, err := worker.shouldPerformTask(task)
	if err != nil {
		task.nlgLogger.Err(err).
			Msg("Got error while trying to decide whether to run task")
		return err
	}
	if !shouldPerform {
		return nil
	}
	if err = worker.redis.onTaskStarted(task); err != nil {
		task.nlgLogger.Err(err).Msg("Failed to update task info")
		return fmt.Errorf("failed to update TaskInfo: %w", err)
	}
	if err = worker.runPipeline(task); err != nil {
		task.nlgLogger.Err(err).Msg("Got error while running pipeline")
		if err = worker.redis.onTaskFailedWithError(task, err); err != nil {
			return err
		}
		return nil
	}
	task.nlgLogger.Info().Bool("cached", task.cached).Msg("Saved results, marking task as complete")
	if err = worker.redis.onTaskComplete(task); err != nil {
		task.nlgLogger.Err(err).Msg("Got error while trying to mark task as complete")
		return err
	}
	return nil
}

func (worker *Worker) runPipeline(task *Task) (err error) {
	defer utils.RecoverWithError(&err)
	task.nlgLogger.Info().Msgf("Processing message from RMQ, attempt # %d", task.realisationTask.TaskStatuses.NLG.Attempts)
	spec, err := worker.s3.getSpec(task)
	if err != nil {
		task.nlgLogger.Err(err).Caller().Msg("Could not fetch tree spec from s3")
		return fmt.Errorf("failed fetch data from s3: %w", err)
	}

	cacheKey := tasks.CacheKey(worker.configuration, spec)
	result, found := worker.cachedResult(task, cacheKey)
	if !found {
		if result, err = worker.realise(task, spec); err != nil {
			return err
		}
		worker.storeResult(task, cacheKey, result)
	}
	task.cached = found

	task.nlgLogger.Info().Msg("Finished pipeline, saving results to s3")
	if err = worker.s3.saveResultsFile(task, result); err != nil {
		task.nlgLogger.Err(err).Msg("Got error while trying to save results")
		return err
	}
	return nil
}

// realise runs the pipeline and fails when the response reports an error.
func (worker *Worker) realise(task *Task, spec []byte) (string, error) {
	request := pipeline.Request{
		Tid:  task.redisKey,
		Spec: spec,
	}
	result, ok := <-worker.ppln(request)
	if !ok {
		task.nlgLogger.Error().Msg("Pipeline channel was closed before returning anything")
		return "", errors.New("pipeline channel was closed before returning anything")
	}
	var response pipeline.Response
	if err := json.Unmarshal([]byte(result), &response); err != nil {
		return "", fmt.Errorf("pipeline returned malformed response: %w", err)
	}
	if response.Error != "" {
		return "", fmt.Errorf("realisation failed: %s", response.Error)
	}
	return result, nil
}

// cachedResult looks up an earlier realisation. Cache failures only cost a
// pipeline run.
func (worker *Worker) cachedResult(task *Task, key string) (string, bool) {
	if !worker.config.CacheEnabled {
		return "", false
	}
	result, found, err := worker.redis.getCachedResult(key)
	if err != nil {
		task.nlgLogger.Warn().Err(err).Str("cache_key", key).Msg("Could not read realisation cache")
		return "", false
	}
	return result, found
}

func (worker *Worker) storeResult(task *Task, key string, result string) {
	if !worker.config.CacheEnabled {
		return
	}
	if err := worker.redis.storeCachedResult(key, result); err != nil {
		task.nlgLogger.Warn().Err(err).Str("cache_key", key).Msg("Could not store realisation in cache")
	}
}

func (worker *Worker) shouldPerformTask(task *Task) (bool, error) {
	taskInfo := task.realisationTask.TaskStatuses.NLG
	taskLogger := task.nlgLogger

	if taskInfo.Status.Complete() {
		taskLogger.Info().Msg("Task is already done. (might indicate issue acking message with RMQ). Sending back to Sequencer.")
		return false, nil
	}
	taskJob, err := worker.redis.getJobTask(task)
	if err != nil {
		taskLogger.Err(err).Msg("Failed to query job task for realisation task")
		return false, err
	}
	if taskJob.UserCanceled {
		taskLogger.Info().Msg("Job was canceled, no need to perform this task. Sending back to Sequencer.")
		err := worker.redis.onTaskCancelled(task)
		return false, err
	}
	if taskJob.StopDocumentsOnFailure {
		docTask, err := worker.redis.getDocTask(task)
		if err != nil {
			return false, err
		}
		if docTask == nil {
			return false, fmt.Errorf("document task not found")
		}
		if len(docTask.FailedTasks) > 0 {
			failedTask := docTask.FailedTasks[0]
			taskLogger.Info().Msgf("Task is not required because the \"%s\" already completed failure "+
				"and document won't be processed successfully. Sending back to Sequencer.", failedTask)
			err := worker.redis.onTaskCancelled(
				task,
				fmt.Sprintf(
					"Task was marked as \"%s\" because of the current document has failed "+
						"in the \"%s\" worker and won't be processed successfully.",
					tasks.TaskStatusCanceled,
					failedTask,
				),
			)
			return false, err
		}
	}
	if taskInfo.Attempts >= worker.config.TaskMaxRetries {
		taskLogger.Info().Msg("NLG task has exceeded retries. Sending back to Sequencer.")
		err = worker.redis.onTaskExceededRetries(task, worker.config.TaskMaxRetries)
		return false, err
	}
	return true, nil
}
