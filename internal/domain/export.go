package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gitee.com/flycash/mece-notification/internal/errs"
)

// ExportTimeLayout 导出时间格式，秒级精度，固定 Z 后缀
const ExportTimeLayout = "2006-01-02T15:04:05Z"

type valueKind uint8

const (
	kindScalar valueKind = iota + 1
	kindDate
	kindMultilingual
)

type accessor struct {
	kind valueKind
	get  func(n *NotificationMessage) any
}

// exportProperties 导出顺序
var exportProperties = []string{
	PropertyRecipients,
	PropertyPriority,
	PropertyDeadline,
	PropertyExpiration,
	PropertySubmitted,
	PropertySource,
	PropertySourceID,
	PropertyHeading,
	PropertyMessage,
	PropertyLinkText,
	PropertyLinkURL,
	PropertyAvatarImageURL,
}

var accessors = map[string]accessor{
	PropertyRecipients: {kind: kindScalar, get: func(n *NotificationMessage) any { return n.Recipients() }},
	PropertyPriority:   {kind: kindScalar, get: func(n *NotificationMessage) any { return n.Priority() }},
	PropertyDeadline:   {kind: kindDate, get: func(n *NotificationMessage) any { return n.Deadline() }},
	PropertyExpiration: {kind: kindDate, get: func(n *NotificationMessage) any { return n.Expiration() }},
	PropertySubmitted:  {kind: kindDate, get: func(n *NotificationMessage) any { return n.Submitted() }},
	PropertySource:     {kind: kindScalar, get: func(n *NotificationMessage) any { return n.Source() }},
	PropertySourceID:   {kind: kindScalar, get: func(n *NotificationMessage) any { return n.SourceID() }},
	PropertyHeading:    {kind: kindMultilingual, get: func(n *NotificationMessage) any { return n.Heading() }},
	PropertyMessage:    {kind: kindMultilingual, get: func(n *NotificationMessage) any { return n.Body() }},
	PropertyLinkText:   {kind: kindMultilingual, get: func(n *NotificationMessage) any { return n.LinkText() }},
	PropertyLinkURL:    {kind: kindMultilingual, get: func(n *NotificationMessage) any { return n.LinkURL() }},
	PropertyAvatarImageURL: {kind: kindScalar, get: func(n *NotificationMessage) any {
		return n.AvatarImageURL()
	}},
}

// ExportField 导出结果中的一个键值对，Value 为 nil 表示该语言没有设置值
type ExportField struct {
	Key   string
	Value any
}

// ExportMap 按导出顺序返回扁平化后的键值对
func (n *NotificationMessage) ExportMap() ([]ExportField, error) {
	return n.exportFields(exportProperties)
}

// Export 导出为 JSON 字符串，两次调用之间没有修改时结果完全一致
func (n *NotificationMessage) Export() (string, error) {
	fields, err := n.ExportMap()
	if err != nil {
		return "", err
	}
	return encodeFields(fields)
}

func (n *NotificationMessage) exportFields(properties []string) ([]ExportField, error) {
	res := make([]ExportField, 0, len(properties)*4)
	for _, property := range properties {
		acc, ok := accessors[property]
		if !ok {
			return nil, fmt.Errorf("%w: Getter method %q was not found.",
				errs.ErrInternal, "Get"+strings.ToUpper(property[:1])+property[1:])
		}
		value := acc.get(n)
		if isEmptyValue(value) {
			continue
		}
		switch acc.kind {
		case kindScalar:
			res = append(res, ExportField{Key: property, Value: value})
		case kindDate:
			res = append(res, ExportField{Key: property, Value: value.(time.Time).Format(ExportTimeLayout)})
		case kindMultilingual:
			res = append(res, flattenMultilingual(property, value.(*MultilingualText))...)
		default:
			return nil, fmt.Errorf("%w: unknown value kind %d for %q", errs.ErrInternal, acc.kind, property)
		}
	}
	return res, nil
}

// flattenMultilingual 每个语言一个 {property}{CODE} 键，最后是语言中立值：按语言顺序第一个非空的值
func flattenMultilingual(property string, text *MultilingualText) []ExportField {
	languages := text.SupportedLanguages()
	res := make([]ExportField, 0, len(languages)+1)
	neutral := ""
	for _, language := range languages {
		// 遍历的是自身支持的语言，不会出错
		v, ok, _ := text.Value(language)
		var fieldValue any
		if ok {
			fieldValue = v
		}
		res = append(res, ExportField{Key: property + language.Upper(), Value: fieldValue})
		if neutral == "" {
			neutral = v
		}
	}
	return append(res, ExportField{Key: property, Value: neutral})
}

func isEmptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	case time.Time:
		return v.IsZero()
	case *MultilingualText:
		return v == nil
	default:
		return false
	}
}

func encodeFields(fields []ExportField) (string, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := encodeJSON(f.Key)
		if err != nil {
			return "", err
		}
		val, err := encodeJSON(f.Value)
		if err != nil {
			return "", err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.String(), nil
}

// encodeJSON 不转义 HTML 字符，斜杠转义成 \/，和下游消费方的既有格式保持一致
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInternal, err)
	}
	// Encode 会在末尾追加换行
	out := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	return bytes.ReplaceAll(out, []byte("/"), []byte(`\/`)), nil
}
