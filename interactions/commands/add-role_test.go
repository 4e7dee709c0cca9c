package commands

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/moth-works/rolekeeper/configs"
	"gitlab.com/moth-works/rolekeeper/rolepicker"
)

func addRoleMessage(content string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{
		Message: &discordgo.Message{Content: content},
	}
}

func addRoleConfig() configs.Command {
	return configs.Command{Name: "Add Role", MinArgs: 2, MaxArgs: 20}
}

func TestParseAddRoleCommand(t *testing.T) {
	parsed, err := parseAddRoleCommand(addRoleConfig(), addRoleMessage("!addrole 🎮 <@&500> Gaming crew"))
	require.Nil(t, err)

	assert.Equal(t, rolepicker.EmojiRef{Name: "🎮"}, parsed.Params.Emoji)
	assert.Equal(t, "500", parsed.Params.RoleID)
	assert.False(t, parsed.Params.AdminApproval)
	assert.Equal(t, "Gaming crew", parsed.Params.Description)
}

func TestParseAddRoleCommandAdminApprovalFlag(t *testing.T) {
	parsed, err := parseAddRoleCommand(addRoleConfig(), addRoleMessage("!addrole 🛡️ <@&501> admin_approval Keepers of the peace"))
	require.Nil(t, err)

	assert.True(t, parsed.Params.AdminApproval)
	assert.Equal(t, "Keepers of the peace", parsed.Params.Description)
}

func TestParseAddRoleCommandCustomEmoji(t *testing.T) {
	parsed, err := parseAddRoleCommand(addRoleConfig(), addRoleMessage("!addrole <a:party:789> <@&502>"))
	require.Nil(t, err)

	assert.Equal(t, rolepicker.EmojiRef{Name: "party", ID: "789", Animated: true}, parsed.Params.Emoji)
	assert.Empty(t, parsed.Params.Description)
}

func TestParseAddRoleCommandRejectsBadRole(t *testing.T) {
	_, err := parseAddRoleCommand(addRoleConfig(), addRoleMessage("!addrole 🎮 notarole"))
	require.NotNil(t, err)
	assert.Equal(t, "invalid role argument", err.Error())
}

func TestParseAddRoleCommandRejectsTooFewArgs(t *testing.T) {
	_, err := parseAddRoleCommand(addRoleConfig(), addRoleMessage("!addrole 🎮"))
	require.NotNil(t, err)
	assert.Equal(t, "invalid number of arguments", err.Error())
}

func TestParseRemoveRoleCommand(t *testing.T) {
	command := configs.Command{Name: "Remove Role", MinArgs: 1, MaxArgs: 1}

	parsed, err := parseRemoveRoleCommand(command, addRoleMessage("!removerole 🎮"))
	require.Nil(t, err)
	assert.Equal(t, rolepicker.EmojiRef{Name: "🎮"}, parsed.Params.Emoji)
	assert.Empty(t, parsed.Params.RoleID)

	parsed, err = parseRemoveRoleCommand(command, addRoleMessage("!removerole <@&500>"))
	require.Nil(t, err)
	assert.Equal(t, "500", parsed.Params.RoleID)
}

func TestParseRolePickerCommand(t *testing.T) {
	command := configs.Command{Name: "Role Picker", MinArgs: 0, MaxArgs: 1}

	parsed, err := parseRolePickerCommand(command, addRoleMessage("!rolepicker"))
	require.Nil(t, err)
	assert.Empty(t, parsed.Params.ChannelID)

	parsed, err = parseRolePickerCommand(command, addRoleMessage("!rolepicker <#200>"))
	require.Nil(t, err)
	assert.Equal(t, "200", parsed.Params.ChannelID)

	_, err = parseRolePickerCommand(command, addRoleMessage("!rolepicker roles"))
	require.NotNil(t, err)
	assert.Equal(t, "invalid channel argument", err.Error())
}
