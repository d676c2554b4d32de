package plugin

import (
	"strings"

	"github.com/felixgeelhaar/richfield/internal/editor/sdk"
)

// Emojis maps the picker's shortcodes to the text they insert.
var Emojis = map[string]string{
	"smile":      "\U0001F604",
	"grin":       "\U0001F601",
	"joy":        "\U0001F602",
	"wink":       "\U0001F609",
	"heart":      "❤️",
	"thumbsup":   "\U0001F44D",
	"thumbsdown": "\U0001F44E",
	"tada":       "\U0001F389",
	"rocket":     "\U0001F680",
	"fire":       "\U0001F525",
	"eyes":       "\U0001F440",
	"thinking":   "\U0001F914",
	"check":      "✅",
	"warning":    "⚠️",
	"x":          "❌",
	"sparkles":   "✨",
	"pray":       "\U0001F64F",
	"clap":       "\U0001F44F",
	"100":        "\U0001F4AF",
	"frown":      "\U0001F641",
}

func installEmoji(s sdk.Surface, _ Env) []*sdk.Subscription {
	insert := func(payload any, origin sdk.Surface) bool {
		code, ok := payload.(string)
		if !ok {
			return false
		}
		emoji, ok := Emojis[strings.Trim(strings.ToLower(code), ":")]
		if !ok {
			return false
		}
		return origin.Dispatch(sdk.CommandInsertText, emoji)
	}
	return []*sdk.Subscription{
		s.RegisterCommand(sdk.CommandInsertEmoji, insert, sdk.PriorityEditor),
	}
}
