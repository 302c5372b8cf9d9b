package tasks

import (
	"encoding/json"
	"fmt"
	"text2phenotype.com/nlg/redis"
)

const CacheDB redis.DB = 3

type Client struct {
	Documents    DocumentTasks
	Realisations RealisationTasks
	Jobs         JobTasks
	Cache        Cache
}

// NewClient is a preferred way for working with TaskInfos
func NewClient() (Client, error) {
	docRedisClient, err := redis.NewClient(DocumentsDB)
	if err != nil {
		return Client{}, err
	}
	jobsRedisClient, err := redis.NewClient(JobsDB)
	if err != nil {
		return Client{}, err
	}
	realisationsRedisClient, err := redis.NewClient(RealisationsDB)
	if err != nil {
		return Client{}, err
	}
	cacheRedisClient, err := redis.NewClient(CacheDB)
	if err != nil {
		return Client{}, err
	}
	cache, err := NewCache(cacheRedisClient)
	if err != nil {
		return Client{}, err
	}
	return Client{
		Documents:    DocumentTasks{client: docRedisClient},
		Jobs:         JobTasks{client: jobsRedisClient},
		Realisations: RealisationTasks{client: realisationsRedisClient},
		Cache:        cache,
	}, nil
}

func (client *Client) Close() {
	_ = client.Realisations.client.Close()
	_ = client.Documents.client.Close()
	_ = client.Jobs.client.Close()
	_ = client.Cache.client.Close()
}

func cachedPropertiesKey(redisKey string) string {
	return fmt.Sprintf("%s-cached-properties", redisKey)
}

func decodeDocumentTask(b []byte) (*DocumentTask, error) {
	var task DocumentTask
	if err := json.Unmarshal(b, &task); err != nil {
		return nil, err
	}
	if task.FailedRealisations == nil {
		task.FailedRealisations = make(map[string][]string)
	}
	return &task, nil
}
