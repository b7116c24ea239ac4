package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gitee.com/flycash/mece-notification/internal/domain"
	"gitee.com/flycash/mece-notification/internal/errs"
	notificationevt "gitee.com/flycash/mece-notification/internal/event/notification"
	"github.com/gotomicro/ego/core/elog"
	"github.com/sony/sonyflake"
)

//go:generate mockgen -source=./service.go -destination=./mocks/service.mock.go -package=notificationmocks Service
type Service interface {
	// Submit 导出通知消息并发布给下游
	Submit(ctx context.Context, msg *domain.NotificationMessage) (domain.PublishReceipt, error)
	// Preview 只导出不发布
	Preview(ctx context.Context, msg *domain.NotificationMessage) (string, error)
}

type service struct {
	producer    notificationevt.MessageProducer
	idGenerator *sonyflake.Sonyflake
	topic       string
	logger      *elog.Component
}

func NewService(producer notificationevt.MessageProducer, idGenerator *sonyflake.Sonyflake, topic string) Service {
	return &service{
		producer:    producer,
		idGenerator: idGenerator,
		topic:       topic,
		logger:      elog.DefaultLogger,
	}
}

func (s *service) Submit(ctx context.Context, msg *domain.NotificationMessage) (domain.PublishReceipt, error) {
	if msg == nil {
		return domain.PublishReceipt{}, fmt.Errorf("%w: 通知消息为空", errs.ErrInvalidParameter)
	}
	payload, err := s.Preview(ctx, msg)
	if err != nil {
		return domain.PublishReceipt{}, err
	}
	id, err := s.idGenerator.NextID()
	if err != nil {
		return domain.PublishReceipt{}, fmt.Errorf("%w: %w", errs.ErrIDGenerateFailed, err)
	}

	if err = s.producer.Produce(ctx, id, []byte(payload)); err != nil {
		s.logger.Error("发布通知消息失败",
			elog.FieldErr(err),
			elog.Any("id", id),
			elog.String("topic", s.topic),
			elog.String("source", msg.Source()))
		if !errors.Is(err, errs.ErrPublishFailed) {
			err = fmt.Errorf("%w: %w", errs.ErrPublishFailed, err)
		}
		return domain.PublishReceipt{}, err
	}
	return domain.PublishReceipt{
		ID:          id,
		Topic:       s.topic,
		Payload:     payload,
		PublishedAt: time.Now(),
	}, nil
}

func (s *service) Preview(_ context.Context, msg *domain.NotificationMessage) (string, error) {
	if msg == nil {
		return "", fmt.Errorf("%w: 通知消息为空", errs.ErrInvalidParameter)
	}
	payload, err := msg.Export()
	if err != nil {
		s.logger.Error("导出通知消息失败", elog.FieldErr(err), elog.String("source", msg.Source()))
		return "", err
	}
	return payload, nil
}
