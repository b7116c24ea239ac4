package metrics

import (
	"context"
	"time"

	"gitee.com/flycash/mece-notification/internal/domain"
	notificationsvc "gitee.com/flycash/mece-notification/internal/service/notification"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	statusSucceeded = "succeeded"
	statusFailed    = "failed"
)

// Service 为通知消息服务添加指标收集的装饰器
type Service struct {
	svc             notificationsvc.Service
	durationSummary *prometheus.SummaryVec
	statusCounter   *prometheus.CounterVec
}

// NewService 创建一个新的带有指标收集的服务
func NewService(svc notificationsvc.Service, reg prometheus.Registerer) *Service {
	durationSummary := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "notification_message_duration_seconds",
			Help:       "通知消息导出/发布耗时统计（秒）",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.95: 0.005, 0.99: 0.001},
			MaxAge:     time.Minute * 5,
		},
		[]string{"method", "status"},
	)

	statusCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_message_total",
			Help: "通知消息导出/发布状态统计",
		},
		[]string{"method", "status"},
	)

	// 注册指标
	reg.MustRegister(durationSummary, statusCounter)

	return &Service{
		svc:             svc,
		durationSummary: durationSummary,
		statusCounter:   statusCounter,
	}
}

func (s *Service) Submit(ctx context.Context, msg *domain.NotificationMessage) (domain.PublishReceipt, error) {
	startTime := time.Now()
	receipt, err := s.svc.Submit(ctx, msg)
	s.observe("submit", startTime, err)
	return receipt, err
}

func (s *Service) Preview(ctx context.Context, msg *domain.NotificationMessage) (string, error) {
	startTime := time.Now()
	payload, err := s.svc.Preview(ctx, msg)
	s.observe("preview", startTime, err)
	return payload, err
}

func (s *Service) observe(method string, startTime time.Time, err error) {
	status := statusSucceeded
	if err != nil {
		status = statusFailed
	}
	s.statusCounter.WithLabelValues(method, status).Inc()
	s.durationSummary.WithLabelValues(method, status).Observe(time.Since(startTime).Seconds())
}
