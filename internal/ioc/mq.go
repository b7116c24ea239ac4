package ioc

import (
	"context"
	"fmt"
	"time"

	notificationevt "gitee.com/flycash/mece-notification/internal/event/notification"
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/mq-api/memory"
)

const (
	mqTypeMemory = "memory"
	mqTypeKafka  = "kafka"
)

// InitMessageProducer 根据 mq.type 选择实现，默认使用内存实现
func InitMessageProducer(cfg NotificationConfig) notificationevt.MessageProducer {
	type Config struct {
		Type       string `yaml:"type"`
		Addr       string `yaml:"addr"`
		ClientID   string `yaml:"clientId"`
		Partitions int    `yaml:"partitions"`
	}
	mqCfg := Config{
		Type:       mqTypeMemory,
		ClientID:   "mece-notification",
		Partitions: 1,
	}
	if err := unmarshalOptional("mq", &mqCfg); err != nil {
		panic(err)
	}

	switch mqCfg.Type {
	case mqTypeKafka:
		producer, err := kafka.NewProducer(&kafka.ConfigMap{
			"bootstrap.servers": mqCfg.Addr,
			"client.id":         mqCfg.ClientID,
		})
		if err != nil {
			panic(fmt.Sprintf("创建生产者失败: %v", err))
		}
		return notificationevt.NewKafkaProducer(producer, cfg.Topic, cfg.Retry)
	case mqTypeMemory:
		q := initMemoryMQ(cfg.Topic, mqCfg.Partitions)
		producer, err := notificationevt.NewProducer(q, cfg.Topic, cfg.Retry)
		if err != nil {
			panic(err)
		}
		return producer
	default:
		panic(fmt.Sprintf("未知的 mq 类型: %s", mqCfg.Type))
	}
}

func initMemoryMQ(topic string, partitions int) mq.MQ {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	q := memory.NewMQ()
	if err := q.CreateTopic(ctx, topic, partitions); err != nil {
		panic(err)
	}
	return q
}
