package domain

import (
	"testing"

	"gitee.com/flycash/mece-notification/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultilingualText_SetGetValue(t *testing.T) {
	t.Parallel()

	for _, lang := range DefaultLanguages() {
		t.Run(string(lang), func(t *testing.T) {
			t.Parallel()
			text := NewMultilingualText()
			require.NoError(t, text.SetValue("arvo-"+string(lang), lang))

			got, err := text.GetValue(lang)
			require.NoError(t, err)
			assert.Equal(t, "arvo-"+string(lang), got)

			// 其他语言不受影响
			for _, other := range DefaultLanguages() {
				if other == lang {
					continue
				}
				v, ok, err := text.Value(other)
				require.NoError(t, err)
				assert.False(t, ok)
				assert.Empty(t, v)
			}
		})
	}
}

func TestMultilingualText_Overwrite(t *testing.T) {
	t.Parallel()
	text := NewMultilingualText()
	require.NoError(t, text.SetValue("first", LanguageEN))
	require.NoError(t, text.SetValue("second", LanguageEN))
	got, err := text.GetValue(LanguageEN)
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestMultilingualText_UnsupportedLanguage(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		text    *MultilingualText
		lang    Language
		wantMsg string
	}{
		{
			name:    "默认语言列表之外",
			text:    NewMultilingualText(),
			lang:    "de",
			wantMsg: `Language "de" is not supported.`,
		},
		{
			name:    "自定义语言列表",
			text:    NewMultilingualText(WithSupportedLanguages(LanguageEN)),
			lang:    LanguageFI,
			wantMsg: `Language "fi" is not supported.`,
		},
		{
			name:    "空语言代码",
			text:    NewMultilingualText(),
			lang:    "",
			wantMsg: `Language "" is not supported.`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.text.SetValue("x", tc.lang)
			assert.ErrorIs(t, err, errs.ErrInvalidInput)
			assert.ErrorContains(t, err, tc.wantMsg)

			err = tc.text.SetRawValue("x", tc.lang)
			assert.ErrorIs(t, err, errs.ErrInvalidInput)

			_, err = tc.text.GetValue(tc.lang)
			assert.ErrorIs(t, err, errs.ErrInvalidInput)
			assert.ErrorContains(t, err, tc.wantMsg)
		})
	}
}

func TestMultilingualText_SetRawValue(t *testing.T) {
	t.Parallel()
	text := NewMultilingualText()

	err := text.SetRawValue(12, LanguageFI)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
	assert.ErrorContains(t, err, "Value must be an string type.")
	_, ok, err := text.Value(LanguageFI)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, text.SetRawValue("Hei", LanguageFI))
	got, err := text.GetValue(LanguageFI)
	require.NoError(t, err)
	assert.Equal(t, "Hei", got)
}

func TestMultilingualText_SupportedLanguages(t *testing.T) {
	t.Parallel()
	text := NewMultilingualText()
	assert.Equal(t, []Language{LanguageFI, LanguageEN, LanguageSV}, text.SupportedLanguages())

	require.NoError(t, text.SetValue("Hej", LanguageSV))
	text.SetSupportedLanguages([]Language{LanguageFI, LanguageEN})

	// 缩小语言列表不会清理已有的值，但是读取会被拒绝
	assert.Equal(t, "Hej", text.Values()[LanguageSV])
	_, err := text.GetValue(LanguageSV)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestMultilingualText_SetValuesBypassesValidation(t *testing.T) {
	t.Parallel()
	text := NewMultilingualText()
	text.SetValues(map[Language]string{LanguageFI: "Moi", "de": "Hallo"})

	assert.Equal(t, map[Language]string{LanguageFI: "Moi", "de": "Hallo"}, text.Values())
	got, err := text.GetValue(LanguageFI)
	require.NoError(t, err)
	assert.Equal(t, "Moi", got)

	text.SetValues(nil)
	assert.Empty(t, text.Values())
	require.NoError(t, text.SetValue("Hello", LanguageEN))
}

func TestMultilingualText_Clone(t *testing.T) {
	t.Parallel()
	text := NewMultilingualTextFromValues(map[Language]string{LanguageFI: "Moi"})
	cloned := text.Clone()

	require.NoError(t, text.SetValue("Hei", LanguageFI))
	got, err := cloned.GetValue(LanguageFI)
	require.NoError(t, err)
	assert.Equal(t, "Moi", got)
	assert.Equal(t, text.SupportedLanguages(), cloned.SupportedLanguages())
}

func TestMultilingualText_UnsetVersusEmpty(t *testing.T) {
	t.Parallel()
	text := NewMultilingualText()
	require.NoError(t, text.SetValue("", LanguageEN))

	// GetValue 对两者都返回空字符串
	for _, lang := range []Language{LanguageEN, LanguageSV} {
		got, err := text.GetValue(lang)
		require.NoError(t, err)
		assert.Empty(t, got)
	}

	_, ok, err := text.Value(LanguageEN)
	require.NoError(t, err)
	assert.True(t, ok)
	_, ok, err = text.Value(LanguageSV)
	require.NoError(t, err)
	assert.False(t, ok)
}
