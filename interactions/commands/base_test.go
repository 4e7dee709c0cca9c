package commands

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/moth-works/rolekeeper/configs"
)

func testCommands() []configs.Command {
	return []configs.Command{
		{Name: "Role Picker", Long: "rolepicker", Short: "rp", Enabled: true},
		{Name: "Help", Long: "help", Short: "h", Enabled: true},
		{Name: "Mothman", Long: "mothman", Enabled: true},
	}
}

func TestGetCommandByLongAndShortName(t *testing.T) {
	command, err := getCommand(testCommands(), "!", "!rolepicker #roles")
	require.Nil(t, err)
	assert.Equal(t, "Role Picker", command.Name)

	command, err = getCommand(testCommands(), "!", "!rp")
	require.Nil(t, err)
	assert.Equal(t, "Role Picker", command.Name)

	command, err = getCommand(testCommands(), "!", "!RolePicker")
	require.Nil(t, err)
	assert.Equal(t, "Role Picker", command.Name)
}

func TestGetCommandUnknown(t *testing.T) {
	_, err := getCommand(testCommands(), "!", "!sandwich")
	require.NotNil(t, err)
	assert.Equal(t, "invalid command", err.Error())
}

func TestGetCommandBarePrefix(t *testing.T) {
	_, err := getCommand(testCommands(), "!", "!")
	require.NotNil(t, err)
	assert.Equal(t, "not a command", err.Error())
}

func TestGetCommandEmptyShortDoesNotMatchEmptyToken(t *testing.T) {
	// "Mothman" has no short name; a blank token must not resolve to it
	_, err := getCommandConfig(testCommands(), "")
	assert.NotNil(t, err)
}

func TestCheckArgs(t *testing.T) {
	command := configs.Command{MinArgs: 1, MaxArgs: 2}

	message := func(content string) *discordgo.MessageCreate {
		return &discordgo.MessageCreate{
			Message: &discordgo.Message{Content: content},
		}
	}

	assert.NotNil(t, checkArgs(command, message("!cmd")))
	assert.Nil(t, checkArgs(command, message("!cmd one")))
	assert.Nil(t, checkArgs(command, message("!cmd one two")))
	assert.NotNil(t, checkArgs(command, message("!cmd one two three")))
}

func TestCheckArgsUnboundedMax(t *testing.T) {
	command := configs.Command{MinArgs: 0, MaxArgs: 0}

	mc := &discordgo.MessageCreate{
		Message: &discordgo.Message{Content: "!cmd a b c d e f"},
	}

	assert.Nil(t, checkArgs(command, mc))
}
