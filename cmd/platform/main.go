package main

import (
	"gitee.com/flycash/mece-notification/cmd/platform/ioc"
	"github.com/gotomicro/ego"
	"github.com/gotomicro/ego/core/elog"
)

func main() {
	var app *ioc.App
	// ego.New 负责解析 --config，必须在初始化依赖之前
	egoApp := ego.New(ego.WithAfterStopClean(func() error {
		return app.Close()
	}))
	app = ioc.InitApp()
	if err := egoApp.Serve(app.Web).Run(); err != nil {
		elog.Panic("startup", elog.Any("err", err))
	}
}
