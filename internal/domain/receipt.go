package domain

import "time"

// PublishReceipt 通知消息发布后的回执
type PublishReceipt struct {
	ID          uint64    // 发布ID
	Topic       string    // 目标 topic
	Payload     string    // 实际发送的 JSON
	PublishedAt time.Time // 发布时间
}
