package conversation

import "github.com/m3rciful/namebot/internal/names"

// Message texts use Telegram's legacy Markdown: *bold*, `code`.
const (
	welcomeText = "✨ *Welcome to the Name Generator Bot!* ✨\n\n" +
		"This bot provides culturally-appropriate fake names from countries around the globe. 🌎\n\n" +
		howToText

	howToText = "*📚 How to Use:*\n" +
		"1. Click '🚀 Start Generating Names'.\n" +
		"2. Select a country from the list. 🗺️\n" +
		"3. Choose the desired gender. 🚻\n" +
		"4. Receive *3 unique names* you can click-to-copy! 📝"

	helpText = howToText + "\n\n" +
		"*🔎 Shortcuts:*\n" +
		"• Type a country name (e.g. `germany`) to jump straight to it.\n" +
		"• In any chat, type the bot's username followed by a country and an optional gender " +
		"(e.g. `France female`) to share names inline."

	pageHeader      = "👇 *🗺️ Please select a country (Page %d of %d):*"
	pageMissingText = "🤷 *There is no page %d.* The list has %d pages."

	genderMenuText = "✨ *Country:* %s\n\n*❓ Please select the gender for the names:*"

	resultText = "*Culture:* %s (`%s`)\n" +
		"*Gender:* %s\n" +
		"--- *✅ Here are 3 unique names:* ---\n" +
		"1. %s\n" +
		"2. %s\n" +
		"3. %s"

	searchFoundText   = "🔎 *Countries matching* %s:"
	searchMissingText = "😕 No country matches %s.\nTry another spelling or browse the full list."

	statsHeader   = "📊 *Most requested countries:*"
	statsEmpty    = "📊 No names have been generated yet."
	statsDisabled = "📊 Statistics are disabled: no database is configured."

	// ApologyText is sent when handling a generation request fails.
	ApologyText = "❌ A critical error occurred. The developer has been notified. Please try /start again."
	// ProcessingNotice answers a generation callback before names are produced.
	ProcessingNotice = "✅ Processing your request..."
)

// Button captions.
const (
	btnStart      = "🚀 Start Generating Names"
	btnPrevious   = "⬅️ Previous"
	btnNext       = "Next ➡️"
	btnBack       = "⬅️ Back to Countries"
	btnRegenerate = "➕ Generate 3 More %s"
	btnChange     = "↩️ Change Gender"
	btnBrowse     = "🗺️ Browse all countries"
)

var genderCaptions = map[names.Gender]string{
	names.Male:   "🚹 Male",
	names.Female: "🚺 Female",
	names.Any:    "🚻 Any",
}
