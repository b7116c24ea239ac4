package ioc

import (
	notificationevt "gitee.com/flycash/mece-notification/internal/event/notification"
	"github.com/gotomicro/ego/server/egin"
)

type App struct {
	Web      *egin.Component
	Producer notificationevt.MessageProducer
}

// Close 在 ego 停止之后调用，把还没投递的消息刷出去
func (a *App) Close() error {
	if a == nil || a.Producer == nil {
		return nil
	}
	return a.Producer.Close()
}
