package domain

import (
	"fmt"
	"maps"
	"strings"

	"gitee.com/flycash/mece-notification/internal/errs"
	"github.com/ecodeclub/ekit/slice"
)

// Language 语言代码，例如 fi、en、sv
type Language string

const (
	LanguageFI Language = "fi"
	LanguageEN Language = "en"
	LanguageSV Language = "sv"
)

// Upper 导出时使用的大写后缀
func (l Language) Upper() string {
	return strings.ToUpper(string(l))
}

// DefaultLanguages 默认支持的语言，顺序决定了导出顺序以及语言中立值的取值优先级
func DefaultLanguages() []Language {
	return []Language{LanguageFI, LanguageEN, LanguageSV}
}

// MultilingualText 多语言文本
// 注意：它会以引用的方式挂到 NotificationMessage 上，挂上去之后再修改，导出结果也会跟着变。
type MultilingualText struct {
	supportedLanguages []Language
	values             map[Language]string
}

type MultilingualTextOption func(t *MultilingualText)

// WithSupportedLanguages 覆盖默认的语言列表
func WithSupportedLanguages(languages ...Language) MultilingualTextOption {
	return func(t *MultilingualText) {
		t.supportedLanguages = languages
	}
}

func NewMultilingualText(opts ...MultilingualTextOption) *MultilingualText {
	t := &MultilingualText{
		supportedLanguages: DefaultLanguages(),
		values:             make(map[Language]string),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewMultilingualTextFromValues 用默认语言创建并批量填充
func NewMultilingualTextFromValues(values map[Language]string) *MultilingualText {
	t := NewMultilingualText()
	t.SetValues(values)
	return t
}

// SetValue 设置某个语言的值，其他语言不受影响
func (t *MultilingualText) SetValue(text string, language Language) error {
	if err := t.checkLanguage(language); err != nil {
		return err
	}
	t.values[language] = text
	return nil
}

// SetRawValue 处理来源于未定型输入（例如 JSON 解码）的值
func (t *MultilingualText) SetRawValue(value any, language Language) error {
	if err := t.checkLanguage(language); err != nil {
		return err
	}
	text, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w: Value must be an string type.", errs.ErrInvalidInput)
	}
	t.values[language] = text
	return nil
}

// Value 返回值以及是否设置过。语言不支持时返回 ErrInvalidInput
func (t *MultilingualText) Value(language Language) (string, bool, error) {
	if err := t.checkLanguage(language); err != nil {
		return "", false, err
	}
	v, ok := t.values[language]
	return v, ok, nil
}

// GetValue 没有设置过的语言返回空字符串，和设置成空字符串无法区分；
// 导出时前者是 null，后者是 ""。需要区分时用 Value 返回的 ok
func (t *MultilingualText) GetValue(language Language) (string, error) {
	v, _, err := t.Value(language)
	return v, err
}

// SetSupportedLanguages 替换语言列表，已有的值不会被清理
func (t *MultilingualText) SetSupportedLanguages(languages []Language) {
	t.supportedLanguages = languages
}

func (t *MultilingualText) SupportedLanguages() []Language {
	return t.supportedLanguages
}

// SetValues 批量替换，不做语言校验
func (t *MultilingualText) SetValues(values map[Language]string) {
	if values == nil {
		values = make(map[Language]string)
	}
	t.values = values
}

func (t *MultilingualText) Values() map[Language]string {
	return t.values
}

// Clone 深拷贝，需要快照语义的调用方自己调用
func (t *MultilingualText) Clone() *MultilingualText {
	return &MultilingualText{
		supportedLanguages: slice.Map(t.supportedLanguages, func(_ int, src Language) Language {
			return src
		}),
		values: maps.Clone(t.values),
	}
}

func (t *MultilingualText) checkLanguage(language Language) error {
	if !slice.Contains(t.supportedLanguages, language) {
		return fmt.Errorf("%w: Language %q is not supported.", errs.ErrInvalidInput, string(language))
	}
	return nil
}
