package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/sto-booking-bot/internal/domain"
)

func options(n int) []domain.Option {
	result := make([]domain.Option, n)
	for i := range result {
		result[i] = domain.Option{Label: string(rune('A' + i)), Payload: "p_" + string(rune('A'+i))}
	}
	return result
}

func TestBuildMarkup_Inline(t *testing.T) {
	markup := BuildMarkup(domain.Prompt{Text: "x", Options: options(5), Columns: 2})

	kb, ok := markup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, kb.InlineKeyboard, 3)
	assert.Len(t, kb.InlineKeyboard[0], 2)
	assert.Len(t, kb.InlineKeyboard[2], 1)

	btn := kb.InlineKeyboard[2][0]
	assert.Equal(t, "E", btn.Text)
	require.NotNil(t, btn.CallbackData)
	assert.Equal(t, "p_E", *btn.CallbackData)
}

func TestBuildMarkup_Contact(t *testing.T) {
	markup := BuildMarkup(domain.Prompt{Text: "phone", RequestContact: true})

	kb, ok := markup.(tgbotapi.ReplyKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, kb.Keyboard, 1)
	assert.True(t, kb.Keyboard[0][0].RequestContact)
	assert.Equal(t, contactButtonText, kb.Keyboard[0][0].Text)
	assert.True(t, kb.OneTimeKeyboard)
}

func TestBuildMarkup_ReplyAndRemove(t *testing.T) {
	markup := BuildMarkup(domain.Prompt{Text: "menu", Options: options(1), ReplyKeyboard: true})
	kb, ok := markup.(tgbotapi.ReplyKeyboardMarkup)
	require.True(t, ok)
	assert.Equal(t, "A", kb.Keyboard[0][0].Text)

	_, ok = BuildMarkup(domain.Prompt{Text: "type", RemoveKeyboard: true}).(tgbotapi.ReplyKeyboardRemove)
	assert.True(t, ok)

	assert.Nil(t, BuildMarkup(domain.Prompt{Text: "plain"}))
}

func TestChunkOptions(t *testing.T) {
	assert.Len(t, chunkOptions(options(4), 0), 4)
	assert.Len(t, chunkOptions(options(8), 4), 2)
	assert.Empty(t, chunkOptions(nil, 3))
}
