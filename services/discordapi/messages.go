package discordapi

import (
	"github.com/bwmarrin/discordgo"
)

// SendMessage func
func SendMessage(session Session, channelID string, content *string, embed *discordgo.MessageEmbed) (*discordgo.Message, *Error) {
	messageSend := &discordgo.MessageSend{
		Embed: embed,
	}
	if content != nil {
		messageSend.Content = *content
	}

	message, err := session.ChannelMessageSendComplex(channelID, messageSend)

	if err != nil {
		return nil, ParseDiscordError(err)
	}

	return message, nil
}

// EditMessage func
func EditMessage(session Session, channelID string, messageID string, content *string, embed *discordgo.MessageEmbed) (*discordgo.Message, *Error) {
	message, err := session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Content: content,
		Embed:   embed,
		ID:      messageID,
		Channel: channelID,
	})

	if err != nil {
		return nil, ParseDiscordError(err)
	}

	return message, nil
}

// DeleteMessage func
func DeleteMessage(session Session, channelID string, messageID string) *Error {
	err := session.ChannelMessageDelete(channelID, messageID)
	if err != nil {
		return ParseDiscordError(err)
	}

	return nil
}

// SendDM opens (or reuses) a DM channel with the user and sends plain content.
// Users can block DMs, so callers treat failures as best-effort.
func SendDM(session Session, userID string, content string) *Error {
	dmChannel, dmErr := session.UserChannelCreate(userID)
	if dmErr != nil {
		return ParseDiscordError(dmErr)
	}

	_, sErr := SendMessage(session, dmChannel.ID, &content, nil)
	return sErr
}
