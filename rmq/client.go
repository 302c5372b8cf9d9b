package rmq

import (
	"fmt"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
	"net/url"
	"text2phenotype.com/nlg/logger"
)

type Config struct {
	Host                    string `envconfig:"NLG_RMQ_HOST" required:"true"`
	Port                    string `envconfig:"NLG_RMQ_PORT" required:"true"`
	Username                string `envconfig:"NLG_RMQ_USERNAME" required:"true"`
	Password                string `envconfig:"NLG_RMQ_PASSWORD" required:"true"`
	Exchange                string `envconfig:"NLG_RMQ_DEFAULT_EXCHANGE" default:"nlg-default-exchange"`
	MaxParallelRequestCount int    `envconfig:"NLG_MQ_MAX_PARALLEL_REQUESTS" default:"5"`
	RealisationTaskQueue    string `envconfig:"NLG_REALISATION_TASK_QUEUE" required:"true"`
	SequencerTaskQueue      string `envconfig:"NLG_SEQUENCER_TASK_QUEUE" required:"true"`
}

// Client consumes realisation tasks on one connection and reports finished
// tasks to the sequencer on another.
type Client struct {
	Deliveries     <-chan amqp.Delivery
	ReqChanErrors  <-chan *amqp.Error
	RespChanErrors <-chan *amqp.Error
	config         Config
	reqConn        *amqp.Connection
	respConn       *amqp.Connection
	respChannel    *amqp.Channel
	nlgLogger      *zerolog.Logger
}

func NewClient() (*Client, error) {
	nlgLogger := logger.NewLogger("RMQ client")
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		nlgLogger.Error().Err(err).Msg("Could not read env config")
		return nil, err
	}

	addr := config.URL()
	respConn, respChannel, err := setup(addr)
	if err != nil {
		return nil, fmt.Errorf("failed connection: %w", err)
	}
	reqConn, reqChannel, err := setup(addr)
	if err != nil {
		_ = respConn.Close()
		return nil, fmt.Errorf("failed connection: %w", err)
	}
	deliveries, err := consume(reqChannel, config)
	if err != nil {
		_ = respConn.Close()
		_ = reqConn.Close()
		return nil, err
	}
	nlgLogger.Info().
		Str("queue", config.RealisationTaskQueue).
		Int("prefetch", config.MaxParallelRequestCount).
		Msg("Consuming realisation tasks")

	return &Client{
		Deliveries:     deliveries,
		ReqChanErrors:  reqChannel.NotifyClose(make(chan *amqp.Error)),
		RespChanErrors: respChannel.NotifyClose(make(chan *amqp.Error)),
		config:         config,
		reqConn:        reqConn,
		respConn:       respConn,
		respChannel:    respChannel,
		nlgLogger:      &nlgLogger,
	}, nil
}

func consume(ch *amqp.Channel, config Config) (<-chan amqp.Delivery, error) {
	q, err := ch.QueueDeclarePassive(
		config.RealisationTaskQueue, // name
		true,                        // durable
		false,                       // delete when unused
		false,                       // exclusive
		false,                       // no-wait
		nil,                         // arguments
	)
	if err != nil {
		return nil, err
	}
	if err := ch.QueueBind(
		config.RealisationTaskQueue,
		config.RealisationTaskQueue,
		config.Exchange,
		false,
		nil); err != nil {
		return nil, err
	}
	if err := ch.Qos(config.MaxParallelRequestCount, 0, false); err != nil {
		return nil, fmt.Errorf("qos: %w", err)
	}
	deliveries, err := ch.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("consume deliveries: %w", err)
	}
	return deliveries, nil
}

func (c *Client) SendMessageToSequencer(msg amqp.Publishing) error {
	c.nlgLogger.Debug().Str("queue", c.config.SequencerTaskQueue).Msg("Publishing to sequencer")
	return c.respChannel.Publish(
		c.config.Exchange,
		c.config.SequencerTaskQueue,
		false,
		false,
		msg)
}

func (c *Client) Close() {
	_ = c.reqConn.Close()
	_ = c.respConn.Close()
}

// URL is the amqp address of the broker, with escaped credentials.
func (config Config) URL() string {
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(config.Username, config.Password),
		Host:   fmt.Sprintf("%s:%s", config.Host, config.Port),
	}
	return u.String()
}

func setup(addr string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(addr)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return conn, ch, nil
}
