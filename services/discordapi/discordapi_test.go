package discordapi

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDiscordErrorRESTError(t *testing.T) {
	restErr := &discordgo.RESTError{
		Message: &discordgo.APIErrorMessage{
			Code:    ErrCodeUnknownMessage,
			Message: "Unknown Message",
		},
	}

	parsed := ParseDiscordError(restErr)
	assert.Equal(t, ErrCodeUnknownMessage, parsed.Code)
	assert.Equal(t, "Unknown Message", parsed.Message)
}

func TestParseDiscordErrorPlainError(t *testing.T) {
	parsed := ParseDiscordError(errors.New("connection reset"))
	assert.Equal(t, -1, parsed.Code)
	assert.Equal(t, "connection reset", parsed.Message)
	assert.Equal(t, "connection reset", parsed.Error())
}

func TestMemberHasRole(t *testing.T) {
	member := &discordgo.Member{Roles: []string{"1", "2"}}

	assert.True(t, MemberHasRole(member, "2"))
	assert.False(t, MemberHasRole(member, "3"))
	assert.False(t, MemberHasRole(nil, "1"))
}

func TestIsAdministrator(t *testing.T) {
	guildRoles := []*discordgo.Role{
		{ID: "1", Permissions: discordgo.PermissionSendMessages},
		{ID: "2", Permissions: discordgo.PermissionAdministrator | discordgo.PermissionSendMessages},
	}

	assert.False(t, IsAdministrator(&discordgo.Member{Roles: []string{"1"}}, guildRoles))
	assert.True(t, IsAdministrator(&discordgo.Member{Roles: []string{"1", "2"}}, guildRoles))
	assert.False(t, IsAdministrator(&discordgo.Member{Roles: []string{"9"}}, guildRoles))
	assert.False(t, IsAdministrator(nil, guildRoles))
}

type embedText string

func (e embedText) ConvertToEmbedField() (*discordgo.MessageEmbedField, *Error) {
	return &discordgo.MessageEmbedField{
		Name:  "field",
		Value: string(e),
	}, nil
}

func TestCreateEmbedsPaginatesFields(t *testing.T) {
	var fields []EmbeddableField
	for i := 0; i < MaxEmbedFields+5; i++ {
		fields = append(fields, embedText("value"))
	}

	embeds := CreateEmbeds(EmbeddableParams{Title: "Test"}, fields)

	require.Len(t, embeds, 2)
	assert.Len(t, embeds[0].Fields, MaxEmbedFields)
	assert.Len(t, embeds[1].Fields, 5)
}
