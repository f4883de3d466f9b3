package ui

import tele "gopkg.in/telebot.v4"

// NewSimpleArticleResult creates an ArticleResult with given ID, title and content.
func NewSimpleArticleResult(id, title, text string) *tele.ArticleResult {
	result := &tele.ArticleResult{
		Title: title,
		Text:  text,
	}
	result.SetResultID(id)
	return result
}

// NewArticleResult is NewSimpleArticleResult with a description line and
// explicit message content rendered in the given parse mode.
func NewArticleResult(id, title, description, text string, mode tele.ParseMode) *tele.ArticleResult {
	result := NewSimpleArticleResult(id, title, text)
	result.Description = description
	result.Content = &tele.InputTextMessageContent{Text: text, ParseMode: mode}
	return result
}
