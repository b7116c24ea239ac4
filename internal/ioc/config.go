package ioc

import (
	"fmt"
	"time"
	// 容器里不一定有时区数据
	_ "time/tzdata"

	"gitee.com/flycash/mece-notification/internal/domain"
	notificationevt "gitee.com/flycash/mece-notification/internal/event/notification"
	"github.com/ecodeclub/ekit/slice"
	"github.com/gotomicro/ego/core/econf"
)

const defaultTopic = "notification_messages"

// NotificationConfig 对应配置中的 notification
type NotificationConfig struct {
	Languages []string                    `yaml:"languages"`
	Timezone  string                      `yaml:"timezone"`
	Topic     string                      `yaml:"topic"`
	Retry     notificationevt.RetryConfig `yaml:"retry"`
}

func InitNotificationConfig() NotificationConfig {
	cfg := NotificationConfig{
		Timezone: "UTC",
		Topic:    defaultTopic,
		Retry:    notificationevt.DefaultRetryConfig(),
	}
	if err := unmarshalOptional("notification", &cfg); err != nil {
		panic(err)
	}
	return cfg
}

func InitLanguages(cfg NotificationConfig) []domain.Language {
	if len(cfg.Languages) == 0 {
		return domain.DefaultLanguages()
	}
	return slice.Map(cfg.Languages, func(_ int, src string) domain.Language {
		return domain.Language(src)
	})
}

func InitTimezone(cfg NotificationConfig) *time.Location {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		panic(fmt.Sprintf("加载时区 %s 失败: %v", cfg.Timezone, err))
	}
	return loc
}

// unmarshalOptional 配置缺失时保留默认值
func unmarshalOptional(key string, cfg any) error {
	if econf.Get(key) == nil {
		return nil
	}
	return econf.UnmarshalKey(key, cfg)
}
