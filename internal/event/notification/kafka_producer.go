package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/gotomicro/ego/core/elog"
)

const defaultFlushTimeout = 5 * time.Second

// KafkaProducer 直接使用 confluent kafka 客户端，每条消息都等待投递结果
type KafkaProducer struct {
	producer *kafka.Producer
	topic    string
	retryCfg RetryConfig
	logger   *elog.Component
}

func NewKafkaProducer(producer *kafka.Producer, topic string, retryCfg RetryConfig) *KafkaProducer {
	p := &KafkaProducer{
		producer: producer,
		topic:    topic,
		retryCfg: retryCfg,
		logger:   elog.DefaultLogger,
	}
	go p.drainEvents()
	return p
}

// drainEvents 投递结果走各自的 deliveryChan，Events 里只剩客户端级别的事件
// producer.Close 之后 Events 被关闭，这个 goroutine 随之退出
func (p *KafkaProducer) drainEvents() {
	for e := range p.producer.Events() {
		if kErr, ok := e.(kafka.Error); ok {
			p.logger.Warn("kafka 客户端错误", elog.FieldErr(kErr), elog.String("topic", p.topic))
		}
	}
}

func (p *KafkaProducer) Produce(ctx context.Context, id uint64, payload []byte) error {
	key := []byte(formatID(id))
	return produceWithRetry(ctx, p.retryCfg, p.logger, p.topic, func() error {
		return p.produceOnce(ctx, key, payload)
	})
}

func (p *KafkaProducer) produceOnce(ctx context.Context, key, payload []byte) error {
	deliveryChan := make(chan kafka.Event, 1)
	err := p.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &p.topic,
			Partition: kafka.PartitionAny,
		},
		Key:     key,
		Headers: []kafka.Header{{Key: HeaderNotificationID, Value: key}},
		Value:   payload,
	}, deliveryChan)
	if err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case e := <-deliveryChan:
		msg, ok := e.(*kafka.Message)
		if !ok {
			return fmt.Errorf("未知的投递事件 %v", e)
		}
		return msg.TopicPartition.Error
	}
}

// Close 先把缓冲区里的消息刷出去再关闭客户端
func (p *KafkaProducer) Close() error {
	remaining := p.producer.Flush(int(defaultFlushTimeout / time.Millisecond))
	p.producer.Close()
	if remaining > 0 {
		return fmt.Errorf("关闭 kafka 生产者时仍有 %d 条消息未投递", remaining)
	}
	return nil
}
