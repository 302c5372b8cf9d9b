package s3client

import (
	"bytes"
	"encoding/json"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestS3Logger(t *testing.T) {
	var buf bytes.Buffer
	l := getLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))
	var _ aws.Logger = l

	l.Log("DEBUG: Request", "s3/GetObject")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "DEBUG: Request s3/GetObject", entry["message"])
	require.Equal(t, "debug", entry["level"])
}

func TestStaticConfig(t *testing.T) {
	env := EnvironmentConfig{
		Region:      "us-east-1",
		Env:         "dev",
		AwsEndpoint: "http://localhost:4566",
		AccessKeyID: "id",
		AccessKey:   "secret",
	}
	cfg, err := staticConfig(env)
	require.NoError(t, err)
	require.Equal(t, "us-east-1", aws.StringValue(cfg.Region))
	require.Equal(t, "http://localhost:4566", aws.StringValue(cfg.Endpoint))
	require.True(t, aws.BoolValue(cfg.S3ForcePathStyle))

	env.Env = "prod"
	cfg, err = staticConfig(env)
	require.NoError(t, err)
	require.Nil(t, cfg.Endpoint)

	env.AccessKeyID = ""
	_, err = staticConfig(env)
	require.Error(t, err)
}
