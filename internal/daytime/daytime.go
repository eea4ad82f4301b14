// Package daytime maps the clock hour to day-period buckets and builds the
// localized strings used to decorate milestone messages.
//
// There are two deliberately separate bucketings: the 4-way Tone picks
// which rephrasing template to use, the 5-way Period picks the greeting
// prefix and the time label. They have different boundaries; do not merge
// them.
package daytime

import (
	"fmt"
	"strings"
)

// Tone is the 4-way bucket that selects a rephrasing template.
type Tone int

const (
	ToneMorning Tone = iota
	ToneNoon
	ToneAfternoon
	ToneEvening // evening and night share one template
)

// ToneFor buckets an hour (0-23) into a rephrasing tone.
func ToneFor(hour int) Tone {
	switch {
	case hour >= 6 && hour < 11:
		return ToneMorning
	case hour >= 11 && hour < 14:
		return ToneNoon
	case hour >= 14 && hour < 18:
		return ToneAfternoon
	default:
		return ToneEvening
	}
}

// Period is the 5-way bucket behind greeting prefixes and time labels.
type Period int

const (
	Morning Period = iota
	Noon
	Afternoon
	Evening
	Night
)

// PeriodFor buckets an hour (0-23) into a greeting period.
func PeriodFor(hour int) Period {
	switch {
	case hour >= 6 && hour < 12:
		return Morning
	case hour >= 12 && hour < 14:
		return Noon
	case hour >= 14 && hour < 18:
		return Afternoon
	case hour >= 18 && hour < 22:
		return Evening
	default:
		return Night
	}
}

// Greeting returns the greeting line prepended to pre-generated messages.
// Night has no greeting.
func (p Period) Greeting() string {
	switch p {
	case Morning:
		return "早安！☀️\n"
	case Noon:
		return "午安！💫\n"
	case Afternoon:
		return "下午好！🌟\n"
	case Evening:
		return "晚上好！🌙\n"
	default:
		return ""
	}
}

// Label returns the period's name as used in time strings.
func (p Period) Label() string {
	switch p {
	case Morning:
		return "早上"
	case Noon:
		return "中午"
	case Afternoon:
		return "下午"
	case Evening:
		return "晚上"
	default:
		return "深夜"
	}
}

// FormatLocalTime renders an hour/minute as a localized label like
// 早上8點 or 晚上8點15分. Hours above 12 drop to the 12-hour clock; hour 0
// displays as 0 (long-standing quirk, kept as is).
func FormatLocalTime(hour, minute int) string {
	displayHour := hour
	if hour > 12 {
		displayHour = hour - 12
	}
	label := PeriodFor(hour).Label()
	if minute == 0 {
		return fmt.Sprintf("%s%d點", label, displayHour)
	}
	return fmt.Sprintf("%s%d點%d分", label, displayHour, minute)
}

// leadingEmoji are the decorative prefixes some messages already start
// with; Decorate skips the greeting for those to avoid doubling up.
var leadingEmoji = []string{"☀️", "💫", "🌟", "🌙", "💪", "🚀", "💝"}

// Decorate prepends the hour's greeting to a finalized message, unless the
// message already opens with a decorative emoji.
func Decorate(message string, hour int) string {
	trimmed := strings.TrimSpace(message)
	for _, e := range leadingEmoji {
		if strings.HasPrefix(trimmed, e) {
			return message
		}
	}
	return PeriodFor(hour).Greeting() + message
}

