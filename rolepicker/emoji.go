package rolepicker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/bwmarrin/discordgo"
)

// EmojiRef is the normalized identity of an emoji: either a literal unicode
// grapheme (ID empty) or a guild custom emoji carrying its snowflake ID.
type EmojiRef struct {
	Name     string
	ID       string
	Animated bool
}

var customEmojiRegex = regexp.MustCompile(`^<(a?):([^:]+):(\d+)>$`)

// ParseEmojiRef interprets the <:name:id> / <a:name:id> custom emoji syntax;
// anything else is treated as a unicode grapheme
func ParseEmojiRef(s string) EmojiRef {
	matches := customEmojiRegex.FindStringSubmatch(s)
	if matches == nil {
		return EmojiRef{Name: s}
	}

	return EmojiRef{
		Name:     matches[2],
		ID:       matches[3],
		Animated: matches[1] == "a",
	}
}

// IsCustom reports whether the ref points at a guild custom emoji
func (e EmojiRef) IsCustom() bool {
	return e.ID != ""
}

// Matches compares the ref against an emoji observed on a reaction event.
// Custom refs match by snowflake ID only; unicode refs match by exact grapheme
// equality and never match a custom emoji, so an ID match always wins over an
// accidental name collision.
func (e EmojiRef) Matches(observed discordgo.Emoji) bool {
	if e.IsCustom() {
		return observed.ID == e.ID
	}

	return observed.ID == "" && observed.Name == e.Name
}

// APIName returns the identifier discord's reaction endpoints expect
func (e EmojiRef) APIName() string {
	if e.IsCustom() {
		return e.Name + ":" + e.ID
	}

	return e.Name
}

// String returns the message-body form of the emoji
func (e EmojiRef) String() string {
	if e.IsCustom() {
		if e.Animated {
			return fmt.Sprintf("<a:%s:%s>", e.Name, e.ID)
		}
		return fmt.Sprintf("<:%s:%s>", e.Name, e.ID)
	}

	return e.Name
}

// MarshalJSON stores the ref in its message-body form, matching the shape the
// picker document has always used
func (e EmojiRef) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(e.String()); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON func
func (e *EmojiRef) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*e = ParseEmojiRef(raw)
	return nil
}

// MatchEntry returns the first configured entry whose emoji matches the
// observed reaction emoji, or nil when none does
func MatchEntry(entries []RoleEntry, observed discordgo.Emoji) *RoleEntry {
	for i := range entries {
		if entries[i].Emoji.Matches(observed) {
			return &entries[i]
		}
	}

	return nil
}
