//go:build wireinject

package ioc

import (
	"gitee.com/flycash/mece-notification/internal/ioc"
	"gitee.com/flycash/mece-notification/internal/web/notification"
	"github.com/google/wire"
)

var (
	BaseSet = wire.NewSet(
		ioc.InitNotificationConfig,
		ioc.InitLanguages,
		ioc.InitTimezone,
		ioc.InitIDGenerator,
		ioc.InitMessageProducer,
	)
	notificationSvcSet = wire.NewSet(
		ioc.InitNotificationService,
		notification.NewHandler,
	)
)

func InitApp() *ioc.App {
	wire.Build(
		// 基础设施
		BaseSet,

		// 通知消息服务
		notificationSvcSet,

		ioc.InitGinServer,
		wire.Struct(new(ioc.App), "*"),
	)
	return new(ioc.App)
}
