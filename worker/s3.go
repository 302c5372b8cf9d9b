package worker

import (
	"text2phenotype.com/nlg/s3client"
)

const resultsContentType = "application/json"

type s3Transactions interface {
	saveResultsFile(task *Task, result string) error
	getSpec(task *Task) ([]byte, error)
	close()
}

type s3ClientWrapper struct {
	s3Client *s3client.Client
}

func (wrapper *s3ClientWrapper) close() {
	wrapper.s3Client.Close()
}

func (wrapper *s3ClientWrapper) saveResultsFile(task *Task, result string) error {
	_, err := wrapper.s3Client.Upload(result, getResultsFileKey(task), resultsContentType)
	return err
}

func (wrapper *s3ClientWrapper) getSpec(task *Task) ([]byte, error) {
	return wrapper.s3Client.Download(task.realisationTask.SpecFileKey)
}
