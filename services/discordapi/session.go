package discordapi

import "github.com/bwmarrin/discordgo"

// Session is the subset of the Discord client the bot drives. It is satisfied
// by *discordgo.Session and by fakes in tests.
type Session interface {
	GuildMember(guildID, userID string) (*discordgo.Member, error)
	GuildRoles(guildID string) ([]*discordgo.Role, error)
	GuildMemberRoleAdd(guildID, userID, roleID string) error
	GuildMemberRoleRemove(guildID, userID, roleID string) error
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend) (*discordgo.Message, error)
	ChannelMessageEditComplex(edit *discordgo.MessageEdit) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string) error
	MessageReactionAdd(channelID, messageID, emojiID string) error
	MessageReactionRemove(channelID, messageID, emojiID, userID string) error
	MessageReactionsRemoveAll(channelID, messageID string) error
	UserChannelCreate(userID string) (*discordgo.Channel, error)
}
