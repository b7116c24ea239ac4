package ioc

import (
	"gitee.com/flycash/mece-notification/internal/web/notification"
	"github.com/gotomicro/ego/server/egin"
)

func InitGinServer(handler *notification.Handler) *egin.Component {
	server := egin.Load("server.http").Build()
	handler.PublicRoutes(server.Engine)
	return server
}
