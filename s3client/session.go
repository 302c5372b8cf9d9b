package s3client

import (
	"errors"
	"fmt"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sts"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

type EnvironmentConfig struct {
	BucketName  string `envconfig:"NLG_STORAGE_CONTAINER_NAME" required:"true"`
	Env         string `envconfig:"NLG_ENV" default:"prod"`
	Region      string `envconfig:"NLG_AWS_REGION_NAME" required:"true"`
	AwsEndpoint string `envconfig:"NLG_AWS_ENDPOINT_URL" default:""`
	AccessKeyID string `envconfig:"NLG_AWS_ACCESS_ID" default:""`
	AccessKey   string `envconfig:"NLG_AWS_ACCESS_KEY" default:""`
}

// sessionHolder hands out the current session and replaces it when a
// caller reports an error.
type sessionHolder struct {
	curr      *session.Session
	requestCh <-chan *session.Session
	errorCh   chan<- error
	closeCh   chan<- struct{}
}

func keepSessionRefreshed(client *Client, sessionCh chan<- *session.Session, errorCh <-chan error, closeCh <-chan struct{}) {
	for {
		select {
		case sessionCh <- client.holder.curr:
			continue
		default:
		}
		select {
		case sessionCh <- client.holder.curr:
		case err := <-errorCh:
			clientLogger.Error().Err(err).Msg("Caught error while using S3 session, trying to refresh it")
			if err = client.acquireNewSession(); err != nil {
				clientLogger.Error().Err(err).Msg("Caught error while refreshing S3 session")
				continue
			}
			clientLogger.Info().Msg("Successfully refreshed session")
		case <-closeCh:
			clientLogger.Info().Msg("Closing client")
			return
		}
	}
}

func (client Client) tryRefreshingSession(err error) (*session.Session, error) {
	var sess *session.Session
	select {
	case client.holder.errorCh <- err:
		sess = <-client.holder.requestCh
	case sess = <-client.holder.requestCh:
	}
	if sess == nil {
		return nil, errors.New("failed to refresh session")
	}
	return sess, nil
}

func (client Client) session() (*session.Session, error) {
	sess := <-client.holder.requestCh
	if sess == nil {
		return nil, errors.New("could not get session")
	}
	return sess, nil
}

func instanceConfig(env EnvironmentConfig) *aws.Config {
	return &aws.Config{
		Region:     aws.String(env.Region),
		MaxRetries: aws.Int(4),
		LogLevel:   aws.LogLevel(aws.LogDebug),
	}
}

// staticConfig uses the credentials from the environment. A custom endpoint
// is honoured outside production only, for local S3 stand-ins.
func staticConfig(env EnvironmentConfig) (*aws.Config, error) {
	creds := credentials.NewStaticCredentials(env.AccessKeyID, env.AccessKey, "")
	if _, err := creds.Get(); err != nil {
		return nil, fmt.Errorf("credentials from environment: %w", err)
	}
	cfg := aws.NewConfig().
		WithRegion(env.Region).
		WithMaxRetries(4).
		WithCredentials(creds).
		WithLogLevel(aws.LogDebug)

	if env.Env != "prod" && len(env.AwsEndpoint) > 0 {
		cfg = cfg.WithEndpoint(env.AwsEndpoint).
			WithS3ForcePathStyle(true)
	}
	return cfg, nil
}

// newVerifiedSession opens a session and checks its identity with STS.
func newVerifiedSession(cfg *aws.Config) (*session.Session, error) {
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, err
	}
	if _, err = sts.New(sess).GetCallerIdentity(&sts.GetCallerIdentityInput{}); err != nil {
		return nil, err
	}
	return sess, nil
}

func (client *Client) acquireNewSession() error {
	sess, err := newVerifiedSession(instanceConfig(client.env))
	if err == nil {
		client.holder.curr = sess
		clientLogger.Info().Msg("S3 session successfully initialized using EC2")
		return nil
	}
	clientLogger.Info().Msg("Could not initialize S3 session using EC2, trying env credentials")
	cfg, err := staticConfig(client.env)
	if err == nil {
		sess, err = newVerifiedSession(cfg)
	}
	if err != nil {
		client.holder.curr = nil
		clientLogger.Error().Err(err).Msg("Could not initialize S3 session")
		return errors.New("could not initialize S3 session")
	}
	client.holder.curr = sess
	clientLogger.Info().Msg("S3 session successfully initialized using env credentials")
	return nil
}

func readEnvironment(errLogger *zerolog.Logger) (EnvironmentConfig, error) {
	var config EnvironmentConfig
	err := envconfig.Process("", &config)
	if err != nil {
		errLogger.Err(err).Msg("Got error while processing environment")
		return config, err
	}
	return config, nil
}
