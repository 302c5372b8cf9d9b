package s3client

import (
	"fmt"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/rs/zerolog"
	"strings"
	"text2phenotype.com/nlg/logger"
)

// Client stores tree specs and realised texts in one bucket.
type Client struct {
	holder     *sessionHolder
	bucketName string
	env        EnvironmentConfig
}

var clientLogger = logger.NewLogger("S3Client")
var sdkLogger = logger.NewLogger("S3-SDK")

func New() (*Client, error) {
	errLogger := clientLogger.With().Caller().Logger()
	env, err := readEnvironment(&errLogger)
	if err != nil {
		clientLogger.Err(err).Msg("Failed to get proper variables from environment")
		return nil, err
	}
	client := Client{
		bucketName: env.BucketName,
		env:        env,
	}
	sessionCh := make(chan *session.Session)
	errorCh := make(chan error)
	closeCh := make(chan struct{}, 1)

	client.holder = &sessionHolder{
		requestCh: sessionCh,
		errorCh:   errorCh,
		closeCh:   closeCh,
	}
	if err := client.acquireNewSession(); err != nil {
		return nil, err
	}
	go keepSessionRefreshed(&client, sessionCh, errorCh, closeCh)
	return &client, nil
}

// Upload stores data under key. contentType may be empty.
func (client Client) Upload(data string, key string, contentType string) (*s3manager.UploadOutput, error) {
	params := &s3manager.UploadInput{
		Bucket: &client.bucketName,
		Key:    &key,
		Body:   strings.NewReader(data),
	}
	if contentType != "" {
		params.ContentType = aws.String(contentType)
	}
	sess, err := client.session()
	if err != nil {
		return nil, err
	}
	output, err := client.upload(sess, params)
	if err == nil {
		return output, nil
	}
	sess, err = client.tryRefreshingSession(err)
	if err != nil {
		return nil, err
	}
	// The reader was consumed by the failed attempt.
	params.Body = strings.NewReader(data)
	return client.upload(sess, params)
}

func (client Client) Download(key string) ([]byte, error) {
	params := &s3.GetObjectInput{
		Bucket: &client.bucketName,
		Key:    &key,
	}
	sess, err := client.session()
	if err != nil {
		return nil, err
	}
	res, err := client.download(sess, params)
	if err == nil {
		return res, nil
	}
	sess, err = client.tryRefreshingSession(err)
	if err != nil {
		return nil, err
	}
	return client.download(sess, params)
}

func (client Client) Close() {
	client.holder.closeCh <- struct{}{}
}

func (client Client) upload(sess *session.Session, params *s3manager.UploadInput) (*s3manager.UploadOutput, error) {
	nlgLogger, sdkLog := requestLoggers(*params.Key, *params.Bucket)
	uploader := s3manager.NewUploader(sess.Copy(&aws.Config{Logger: getLogger(sdkLog)}))
	nlgLogger.Debug().Msg("Uploading the file")
	return uploader.Upload(params)
}

func (client Client) download(sess *session.Session, params *s3.GetObjectInput) ([]byte, error) {
	nlgLogger, sdkLog := requestLoggers(*params.Key, *params.Bucket)
	downloader := s3manager.NewDownloader(sess.Copy(&aws.Config{Logger: getLogger(sdkLog)}))
	buf := aws.NewWriteAtBuffer([]byte{})

	nlgLogger.Debug().Msg("Downloading file")
	size, err := downloader.Download(buf, params)
	if err != nil {
		nlgLogger.Error().Err(err).Msg("Failed to download file")
		return nil, err
	}
	nlgLogger.Debug().Msgf("Downloaded %v bytes", size)
	return buf.Bytes(), nil
}

func requestLoggers(key, bucket string) (zerolog.Logger, zerolog.Logger) {
	return clientLogger.With().Str("key", key).Str("bucket", bucket).Logger(),
		sdkLogger.With().Str("key", key).Str("bucket", bucket).Logger()
}

// s3Logger routes the SDK's debug output into zerolog.
type s3Logger struct {
	nlgLogger zerolog.Logger
}

func getLogger(nlgLogger zerolog.Logger) *s3Logger {
	return &s3Logger{nlgLogger}
}

func (logger *s3Logger) Log(v ...interface{}) {
	logger.nlgLogger.Debug().Msg(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}
