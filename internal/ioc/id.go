package ioc

import (
	"time"

	"github.com/sony/sonyflake"
)

func InitIDGenerator() *sonyflake.Sonyflake {
	type Config struct {
		MachineID uint16 `yaml:"machineId"`
	}
	cfg := Config{MachineID: 1}
	if err := unmarshalOptional("idGenerator", &cfg); err != nil {
		panic(err)
	}
	generator := sonyflake.NewSonyflake(sonyflake.Settings{
		StartTime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		MachineID: func() (uint16, error) {
			return cfg.MachineID, nil
		},
	})
	if generator == nil {
		panic("初始化ID生成器失败")
	}
	return generator
}
