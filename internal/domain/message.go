package domain

import (
	"fmt"
	"strings"

	"gitee.com/flycash/mece-notification/internal/errs"
	"github.com/ecodeclub/ekit/slice"
	"github.com/hashicorp/go-multierror"
)

const DefaultPriority = "1"

// Message 基础消息：接收者、优先级、来源
type Message struct {
	recipients []string
	priority   string
	source     string
	sourceID   string
}

type MessageOption func(m *Message)

func WithPriority(priority string) MessageOption {
	return func(m *Message) {
		m.priority = priority
	}
}

func WithSourceID(sourceID string) MessageOption {
	return func(m *Message) {
		m.sourceID = sourceID
	}
}

func NewMessage(recipients []string, source string, opts ...MessageOption) (Message, error) {
	m := Message{
		recipients: recipients,
		priority:   DefaultPriority,
		source:     source,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m, m.Validate()
}

// Validate 一次性返回所有问题
func (m *Message) Validate() error {
	var err error
	if len(m.recipients) == 0 {
		err = multierror.Append(err, fmt.Errorf("%w: Recipients = %v", errs.ErrInvalidInput, m.recipients))
	}
	blank := slice.FilterMap(m.recipients, func(idx int, src string) (int, bool) {
		return idx, strings.TrimSpace(src) == ""
	})
	if len(blank) > 0 {
		err = multierror.Append(err, fmt.Errorf("%w: blank recipients at %v", errs.ErrInvalidInput, blank))
	}
	if strings.TrimSpace(m.source) == "" {
		err = multierror.Append(err, fmt.Errorf("%w: Source = %q", errs.ErrInvalidInput, m.source))
	}
	if m.priority == "" {
		err = multierror.Append(err, fmt.Errorf("%w: Priority = %q", errs.ErrInvalidInput, m.priority))
	}
	return err
}

func (m *Message) Recipients() []string {
	return m.recipients
}

func (m *Message) SetRecipients(recipients []string) error {
	if len(recipients) == 0 {
		return fmt.Errorf("%w: Recipients = %v", errs.ErrInvalidInput, recipients)
	}
	m.recipients = recipients
	return nil
}

func (m *Message) Priority() string {
	return m.priority
}

func (m *Message) SetPriority(priority string) error {
	if priority == "" {
		return fmt.Errorf("%w: Priority = %q", errs.ErrInvalidInput, priority)
	}
	m.priority = priority
	return nil
}

func (m *Message) Source() string {
	return m.source
}

func (m *Message) SetSource(source string) error {
	if strings.TrimSpace(source) == "" {
		return fmt.Errorf("%w: Source = %q", errs.ErrInvalidInput, source)
	}
	m.source = source
	return nil
}

func (m *Message) SourceID() string {
	return m.sourceID
}

func (m *Message) SetSourceID(sourceID string) {
	m.sourceID = sourceID
}
