package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/bsm/redislock"
	jsonpatch "github.com/evanphx/json-patch"
	"github.com/go-redis/redis/v8"
	"github.com/kelseyhightower/envconfig"
	"time"
)

type DB int
type ReleaseLock func() error

// ErrNotFound is returned when a key holds no value.
var ErrNotFound = errors.New("redis key not found")

type Client struct {
	client         redis.UniversalClient
	lockExpiration time.Duration
}

var ctx = context.Background()

type Config struct {
	LockExpirationSeconds   int     `envconfig:"NLG_REDIS_LOCK_EXPIRATION" default:"3"`
	Host                    string  `envconfig:"NLG_REDIS_HOST" required:"true"`
	Port                    string  `envconfig:"NLG_REDIS_PORT" required:"true"`
	HASentinelPort          string  `envconfig:"NLG_REDIS_HA_SENTINEL_PORT" default:"26379"`
	HASentinelMasterName    string  `envconfig:"NLG_REDIS_HA_MASTER_NAME" default:"mymaster"`
	Password                string  `envconfig:"NLG_REDIS_AUTH_PASSWORD" default:"0"`
	AuthRequired            bool    `envconfig:"NLG_REDIS_AUTH_REQUIRED" default:"false"`
	HAMode                  bool    `envconfig:"NLG_REDIS_HA_MODE" default:"false"`
	HASentinelSocketTimeout float32 `envconfig:"NLG_REDIS_SOCKET_TIMEOUT" default:"0.5"`
}

func NewClient(db DB) (Client, error) {
	cfg, err := readEnvironment()
	if err != nil {
		return Client{}, err
	}
	var client redis.UniversalClient
	if cfg.HAMode {
		client = CreateClusterClient(cfg, db)
	} else {
		client = CreateClient(cfg, db)
	}
	return Wrap(client, time.Duration(cfg.LockExpirationSeconds)*time.Second), nil
}

// Wrap builds a Client around an existing connection.
func Wrap(client redis.UniversalClient, lockExpiration time.Duration) Client {
	return Client{client: client, lockExpiration: lockExpiration}
}

func CreateClusterClient(cfg *Config, db DB) *redis.ClusterClient {
	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.HASentinelPort)
	timeout := time.Duration(cfg.HASentinelSocketTimeout * float32(time.Second))
	options := redis.FailoverOptions{
		SentinelAddrs: []string{addr},
		ReadTimeout:   timeout,
		WriteTimeout:  timeout,
		MaxRetries:    6,
		DB:            int(db),
		MasterName:    cfg.HASentinelMasterName,
	}
	if cfg.AuthRequired {
		options.Password = cfg.Password
	}
	return redis.NewFailoverClusterClient(&options)
}

func CreateClient(cfg *Config, db DB) *redis.Client {
	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	options := redis.Options{
		Addr:       addr,
		MaxRetries: 6,
		DB:         int(db),
	}
	if cfg.AuthRequired {
		options.Password = cfg.Password
	}
	return redis.NewClient(&options)
}

// GetRaw returns the bytes stored under redisKey or ErrNotFound.
func (client *Client) GetRaw(redisKey string) ([]byte, error) {
	b, err := client.client.Get(ctx, redisKey).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("%s: %w", redisKey, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// GetDocument decodes the JSON document stored under redisKey into doc.
// Fields doc does not declare are ignored.
func (client *Client) GetDocument(redisKey string, doc interface{}) error {
	b, err := client.GetRaw(redisKey)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(b, doc); err != nil {
		return fmt.Errorf("%s: %w", redisKey, err)
	}
	return nil
}

// UpdateDocument reads the document under redisKey into doc while holding
// its lock, calls update and writes the result back. Fields doc does not
// declare are preserved.
func (client *Client) UpdateDocument(redisKey string, doc interface{}, update func()) (err error) {
	releaseLock, err := client.Lock(redisKey)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := releaseLock(); err == nil {
			err = releaseErr
		}
	}()
	original, err := client.GetRaw(redisKey)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(original, doc); err != nil {
		return fmt.Errorf("%s: %w", redisKey, err)
	}
	update()
	return client.MergeDoc(redisKey, original, doc)
}

// MergeDoc stores doc merged over the original document bytes.
func (client *Client) MergeDoc(redisKey string, original []byte, doc interface{}) error {
	merged, err := mergeDocument(original, doc)
	if err != nil {
		return fmt.Errorf("%s: failed to merge document: %w", redisKey, err)
	}
	return client.Set(redisKey, merged, 0)
}

// mergeDocument applies the JSON form of doc to original as a merge patch.
// Keys doc does not declare keep their original values.
func mergeDocument(original []byte, doc interface{}) ([]byte, error) {
	updated, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return jsonpatch.MergePatch(original, updated)
}

func (client *Client) Lock(redisKey string) (ReleaseLock, error) {
	lockCl := redislock.New(client.client)
	str := redislock.LimitRetry(redislock.LinearBackoff(time.Second), 20)
	lockKey := fmt.Sprintf("lock:%s", redisKey)
	lock, err := lockCl.Obtain(ctx, lockKey, client.lockExpiration, &redislock.Options{RetryStrategy: str})
	if err != nil {
		return nil, err
	}
	return func() error {
		return lock.Release(ctx)
	}, nil
}

func (client *Client) SaveDoc(redisKey string, document interface{}) error {
	b, err := json.Marshal(document)
	if err != nil {
		return err
	}
	return client.Set(redisKey, b, 0)
}

// Set stores value under redisKey. A zero ttl keeps it forever.
func (client *Client) Set(redisKey string, value []byte, ttl time.Duration) error {
	return client.client.Set(ctx, redisKey, value, ttl).Err()
}

func (client *Client) Close() error {
	return client.client.Close()
}

func readEnvironment() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
