package domain

import (
	"fmt"
	"time"

	"gitee.com/flycash/mece-notification/internal/errs"
)

const (
	PropertyRecipients     = "recipients"
	PropertyPriority       = "priority"
	PropertyDeadline       = "deadline"
	PropertyExpiration     = "expiration"
	PropertySubmitted      = "submitted"
	PropertySource         = "source"
	PropertySourceID       = "sourceId"
	PropertyHeading        = "heading"
	PropertyMessage        = "message"
	PropertyLinkText       = "linkText"
	PropertyLinkURL        = "linkUrl"
	PropertyAvatarImageURL = "avatarImageUrl"
)

// NotificationMessage 通知消息
// 三个时间字段每次写入都会基于兄弟字段的当前值做校验：
// deadline <= expiration，submitted <= expiration。deadline 可以早于 submitted。
type NotificationMessage struct {
	Message

	deadline   time.Time
	expiration time.Time
	submitted  time.Time

	heading  *MultilingualText
	message  *MultilingualText
	linkText *MultilingualText
	linkURL  *MultilingualText

	avatarImageURL string

	requiredTimezone *time.Location
}

type notificationOptions struct {
	messageOpts []MessageOption
	timezone    *time.Location
	now         func() time.Time
}

type NotificationOption func(o *notificationOptions)

// WithMessageOptions 透传给基础消息
func WithMessageOptions(opts ...MessageOption) NotificationOption {
	return func(o *notificationOptions) {
		o.messageOpts = append(o.messageOpts, opts...)
	}
}

// WithRequiredTimezone 所有时间字段必须使用的时区，默认 UTC
func WithRequiredTimezone(loc *time.Location) NotificationOption {
	return func(o *notificationOptions) {
		o.timezone = loc
	}
}

func WithClock(now func() time.Time) NotificationOption {
	return func(o *notificationOptions) {
		o.now = now
	}
}

func NewNotificationMessage(recipients []string, source string, opts ...NotificationOption) (*NotificationMessage, error) {
	o := notificationOptions{
		timezone: time.UTC,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	base, err := NewMessage(recipients, source, o.messageOpts...)
	if err != nil {
		return nil, err
	}
	now := o.now().In(o.timezone)
	return &NotificationMessage{
		Message:          base,
		deadline:         now,
		expiration:       now,
		submitted:        now,
		requiredTimezone: o.timezone,
	}, nil
}

func (n *NotificationMessage) RequiredTimezone() *time.Location {
	return n.requiredTimezone
}

func (n *NotificationMessage) Deadline() time.Time {
	return n.deadline
}

// SetDeadline deadline 不能晚于 expiration
func (n *NotificationMessage) SetDeadline(deadline time.Time) error {
	if deadline.After(n.expiration) {
		return fmt.Errorf("%w: Deadline can not be after expiration.", errs.ErrInvariantViolation)
	}
	return n.setDateProperty(&n.deadline, deadline, PropertyDeadline)
}

func (n *NotificationMessage) Expiration() time.Time {
	return n.expiration
}

// SetExpiration expiration 不能早于 submitted 和 deadline
func (n *NotificationMessage) SetExpiration(expiration time.Time) error {
	if expiration.Before(n.submitted) {
		return fmt.Errorf("%w: Expiration can not be before submitted.", errs.ErrInvariantViolation)
	}
	if expiration.Before(n.deadline) {
		return fmt.Errorf("%w: Expiration can not be before deadline.", errs.ErrInvariantViolation)
	}
	return n.setDateProperty(&n.expiration, expiration, PropertyExpiration)
}

func (n *NotificationMessage) Submitted() time.Time {
	return n.submitted
}

// SetSubmitted submitted 不能晚于 expiration
func (n *NotificationMessage) SetSubmitted(submitted time.Time) error {
	if submitted.After(n.expiration) {
		return fmt.Errorf("%w: Submitted can not be after expiration.", errs.ErrInvariantViolation)
	}
	return n.setDateProperty(&n.submitted, submitted, PropertySubmitted)
}

// SetSchedule 一次性设置三个时间。
// 按照 expiration 是前移还是后移决定写入顺序，这样只要最终状态合法就一定能写成功；
// 任意一步失败都会恢复原来的值。
func (n *NotificationMessage) SetSchedule(submitted, deadline, expiration time.Time) error {
	oldSubmitted, oldDeadline, oldExpiration := n.submitted, n.deadline, n.expiration

	var steps []func() error
	if !expiration.Before(n.expiration) {
		steps = []func() error{
			func() error { return n.SetExpiration(expiration) },
			func() error { return n.SetSubmitted(submitted) },
			func() error { return n.SetDeadline(deadline) },
		}
	} else {
		steps = []func() error{
			func() error { return n.SetSubmitted(submitted) },
			func() error { return n.SetDeadline(deadline) },
			func() error { return n.SetExpiration(expiration) },
		}
	}
	for _, step := range steps {
		if err := step(); err != nil {
			n.submitted, n.deadline, n.expiration = oldSubmitted, oldDeadline, oldExpiration
			return err
		}
	}
	return nil
}

func (n *NotificationMessage) Heading() *MultilingualText {
	return n.heading
}

func (n *NotificationMessage) SetHeading(heading *MultilingualText) {
	n.heading = heading
}

func (n *NotificationMessage) Body() *MultilingualText {
	return n.message
}

// SetBody 对应导出字段 message
func (n *NotificationMessage) SetBody(message *MultilingualText) {
	n.message = message
}

func (n *NotificationMessage) LinkText() *MultilingualText {
	return n.linkText
}

func (n *NotificationMessage) SetLinkText(linkText *MultilingualText) {
	n.linkText = linkText
}

func (n *NotificationMessage) LinkURL() *MultilingualText {
	return n.linkURL
}

func (n *NotificationMessage) SetLinkURL(linkURL *MultilingualText) {
	n.linkURL = linkURL
}

// Deprecated: 使用 LinkURL
func (n *NotificationMessage) Link() *MultilingualText {
	return n.LinkURL()
}

// Deprecated: 使用 SetLinkURL
func (n *NotificationMessage) SetLink(link *MultilingualText) {
	n.SetLinkURL(link)
}

func (n *NotificationMessage) AvatarImageURL() string {
	return n.avatarImageURL
}

func (n *NotificationMessage) SetAvatarImageURL(avatarImageURL string) {
	n.avatarImageURL = avatarImageURL
}

// SetStringProperty 用于未定型的输入，类型不对时报告实际类型和字段名
func (n *NotificationMessage) SetStringProperty(property string, value any) error {
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w: Given value type '%T' for '%s' property is not a string.",
			errs.ErrInvalidInput, value, property)
	}
	switch property {
	case PropertyAvatarImageURL:
		n.SetAvatarImageURL(str)
		return nil
	case PropertySourceID:
		n.SetSourceID(str)
		return nil
	case PropertySource:
		return n.SetSource(str)
	case PropertyPriority:
		return n.SetPriority(str)
	default:
		return fmt.Errorf("%w: There is no such string property as '%s'", errs.ErrInvalidInput, property)
	}
}

func (n *NotificationMessage) setDateProperty(field *time.Time, value time.Time, property string) error {
	if value.Location().String() != n.requiredTimezone.String() {
		return fmt.Errorf("%w: %s DateTime value must be in timezone %q",
			errs.ErrInvariantViolation, property, n.requiredTimezone.String())
	}
	*field = value
	return nil
}
