package notification

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"gitee.com/flycash/mece-notification/internal/errs"
	"github.com/ecodeclub/ekit/retry"
	"github.com/ecodeclub/mq-api"
	"github.com/gotomicro/ego/core/elog"
)

// HeaderNotificationID 消息头里携带发布 ID 的键
const HeaderNotificationID = "notification_id"

//go:generate mockgen -source=./producer.go -package=evtmocks -destination=./mocks/producer.mock.go MessageProducer
type MessageProducer interface {
	// Produce 发送导出后的通知消息，payload 原样作为消息体，id 同时作为消息 key 和消息头
	Produce(ctx context.Context, id uint64, payload []byte) error
	Close() error
}

// RetryConfig 发送失败时的指数退避重试
type RetryConfig struct {
	InitialInterval time.Duration `yaml:"initialInterval"`
	MaxInterval     time.Duration `yaml:"maxInterval"`
	MaxRetries      int32         `yaml:"maxRetries"`
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     time.Second,
		MaxRetries:      3,
	}
}

// Producer 基于 mq-api 的实现
type Producer struct {
	producer mq.Producer
	topic    string
	retryCfg RetryConfig
	logger   *elog.Component
}

func NewProducer(q mq.MQ, topic string, retryCfg RetryConfig) (*Producer, error) {
	producer, err := q.Producer(topic)
	if err != nil {
		return nil, fmt.Errorf("创建topic %s 的生产者失败: %w", topic, err)
	}
	return &Producer{
		producer: producer,
		topic:    topic,
		retryCfg: retryCfg,
		logger:   elog.DefaultLogger,
	}, nil
}

func (p *Producer) Produce(ctx context.Context, id uint64, payload []byte) error {
	key := formatID(id)
	return produceWithRetry(ctx, p.retryCfg, p.logger, p.topic, func() error {
		_, err := p.producer.Produce(ctx, &mq.Message{
			Topic:  p.topic,
			Key:    []byte(key),
			Header: mq.Header{HeaderNotificationID: key},
			Value:  payload,
		})
		return err
	})
}

func (p *Producer) Close() error {
	return p.producer.Close()
}

func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}

// produceWithRetry 按指数退避重试 produce，直到成功、重试耗尽或者 ctx 结束
func produceWithRetry(ctx context.Context, cfg RetryConfig, logger *elog.Component,
	topic string, produce func() error,
) error {
	strategy, err := retry.NewExponentialBackoffRetryStrategy(cfg.InitialInterval, cfg.MaxInterval, cfg.MaxRetries)
	if err != nil {
		return err
	}
	for {
		err = produce()
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %w", errs.ErrPublishFailed, ctx.Err())
		}
		next, ok := strategy.Next()
		if !ok {
			return fmt.Errorf("%w: %w", errs.ErrPublishFailed, err)
		}
		logger.Warn("发送通知消息失败，准备重试",
			elog.FieldErr(err),
			elog.String("topic", topic),
			elog.Any("next", next))
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", errs.ErrPublishFailed, ctx.Err())
		case <-time.After(next):
		}
	}
}
