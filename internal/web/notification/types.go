package notification

// SubmitReq 通知消息请求
// 时间使用 RFC 3339；多语言字段形如 {"fi": "...", "en": "..."}。
// 部分字段使用 any，是为了把类型错误原样报告给调用方。
type SubmitReq struct {
	Recipients     []string       `json:"recipients"`
	Source         string         `json:"source"`
	SourceID       any            `json:"sourceId"`
	Priority       any            `json:"priority"`
	Submitted      string         `json:"submitted"`
	Deadline       string         `json:"deadline"`
	Expiration     string         `json:"expiration"`
	Heading        map[string]any `json:"heading"`
	Message        map[string]any `json:"message"`
	LinkText       map[string]any `json:"linkText"`
	LinkURL        map[string]any `json:"linkUrl"`
	AvatarImageURL any            `json:"avatarImageUrl"`
}

type SubmitResp struct {
	ID      uint64 `json:"id,string"`
	Topic   string `json:"topic"`
	Payload string `json:"payload"`
}

type Result struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}
