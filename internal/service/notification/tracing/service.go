package tracing

import (
	"context"
	"strconv"
	"strings"

	"gitee.com/flycash/mece-notification/internal/domain"
	notificationsvc "gitee.com/flycash/mece-notification/internal/service/notification"
	"github.com/ecodeclub/ekit/slice"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Service 为通知消息服务添加链路追踪的装饰器
type Service struct {
	svc    notificationsvc.Service
	tracer trace.Tracer
}

// NewService 创建一个新的带有链路追踪的服务
func NewService(svc notificationsvc.Service) *Service {
	return &Service{
		svc:    svc,
		tracer: otel.Tracer("mece-notification/service"),
	}
}

func (s *Service) Submit(ctx context.Context, msg *domain.NotificationMessage) (domain.PublishReceipt, error) {
	ctx, span := s.tracer.Start(ctx, "NotificationService.Submit", trace.WithAttributes(attributes(msg)...))
	defer span.End()

	receipt, err := s.svc.Submit(ctx, msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(
			attribute.String("notification.publishId", strconv.FormatUint(receipt.ID, 10)),
			attribute.String("notification.topic", receipt.Topic),
		)
	}
	return receipt, err
}

func (s *Service) Preview(ctx context.Context, msg *domain.NotificationMessage) (string, error) {
	ctx, span := s.tracer.Start(ctx, "NotificationService.Preview", trace.WithAttributes(attributes(msg)...))
	defer span.End()

	payload, err := s.svc.Preview(ctx, msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return payload, err
}

func attributes(msg *domain.NotificationMessage) []attribute.KeyValue {
	if msg == nil {
		return nil
	}
	return []attribute.KeyValue{
		attribute.String("notification.source", msg.Source()),
		attribute.String("notification.sourceId", msg.SourceID()),
		attribute.String("notification.priority", msg.Priority()),
		attribute.Int("notification.recipients", len(msg.Recipients())),
		attribute.String("notification.languages", strings.Join(languageCodes(msg.Heading()), ",")),
	}
}

func languageCodes(text *domain.MultilingualText) []string {
	if text == nil {
		return nil
	}
	return slice.Map(text.SupportedLanguages(), func(_ int, src domain.Language) string {
		return string(src)
	})
}
