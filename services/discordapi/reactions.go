package discordapi

// AddReaction adds the bot's own reaction to a message. The emoji parameter is
// the API name: the literal grapheme for unicode emoji, "name:id" for custom.
func AddReaction(session Session, channelID string, messageID string, emoji string) *Error {
	err := session.MessageReactionAdd(channelID, messageID, emoji)

	if err != nil {
		return ParseDiscordError(err)
	}

	return nil
}

// RemoveReaction removes a single user's reaction from a message
func RemoveReaction(session Session, channelID string, messageID string, emoji string, userID string) *Error {
	err := session.MessageReactionRemove(channelID, messageID, emoji, userID)

	if err != nil {
		return ParseDiscordError(err)
	}

	return nil
}

// ClearReactions removes every reaction from a message
func ClearReactions(session Session, channelID string, messageID string) *Error {
	err := session.MessageReactionsRemoveAll(channelID, messageID)

	if err != nil {
		return ParseDiscordError(err)
	}

	return nil
}
