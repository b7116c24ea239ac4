package ioc

import (
	notificationevt "gitee.com/flycash/mece-notification/internal/event/notification"
	notificationsvc "gitee.com/flycash/mece-notification/internal/service/notification"
	"gitee.com/flycash/mece-notification/internal/service/notification/metrics"
	"gitee.com/flycash/mece-notification/internal/service/notification/tracing"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/sonyflake"
)

// InitNotificationService 业务实现外面依次套上指标和链路追踪
func InitNotificationService(
	producer notificationevt.MessageProducer,
	idGenerator *sonyflake.Sonyflake,
	cfg NotificationConfig,
) notificationsvc.Service {
	svc := notificationsvc.NewService(producer, idGenerator, cfg.Topic)
	return tracing.NewService(metrics.NewService(svc, prometheus.DefaultRegisterer))
}
