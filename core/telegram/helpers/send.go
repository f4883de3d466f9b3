package helpers

import (
	"github.com/m3rciful/namebot/core/telegram/sender"

	tele "gopkg.in/telebot.v4"
)

func markdown(markup []*tele.ReplyMarkup) *tele.SendOptions {
	var rm *tele.ReplyMarkup
	if len(markup) > 0 {
		rm = markup[0]
	}
	return &tele.SendOptions{ParseMode: tele.ModeMarkdown, ReplyMarkup: rm}
}

// SendText sends raw text (no parse mode) to the current recipient.
func SendText(c tele.Context, text string, opts ...*tele.SendOptions) error {
	return sender.Do(BuildContext(c), "send.text", "sendMessage", func() error {
		if len(opts) > 0 && opts[0] != nil {
			return c.Send(text, opts[0])
		}
		return c.Send(text)
	})
}

// SendMD sends a message with Markdown parse mode and optional reply markup.
func SendMD(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	return sender.Do(BuildContext(c), "send.md", "sendMessage", func() error {
		return c.Send(text, markdown(markup))
	})
}

// EditOrSendMD edits the message the update refers to (Markdown) or sends a
// new one when there is nothing to edit.
func EditOrSendMD(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	return sender.Do(BuildContext(c), "edit_or_send.md", "editMessageText", func() error {
		return c.EditOrSend(text, markdown(markup))
	})
}

// Respond answers the pending callback query; text is shown as a toast.
func Respond(c tele.Context, text string) error {
	if c.Callback() == nil {
		return nil
	}
	return sender.Do(BuildContext(c), "callback.answer", "answerCallbackQuery", func() error {
		if text == "" {
			return c.Respond()
		}
		return c.Respond(&tele.CallbackResponse{Text: text})
	})
}

// AnswerQuery replies to an inline query.
func AnswerQuery(c tele.Context, resp *tele.QueryResponse) error {
	return sender.Do(BuildContext(c), "inline.answer", "answerInlineQuery", func() error {
		return c.Answer(resp)
	})
}
