package models

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// GuildRoleList is the cached listing of a guild's roles
type GuildRoleList struct {
	GuildID string            `json:"guild_id"`
	Roles   []*discordgo.Role `json:"roles"`
}

// CacheKey func
func (grl *GuildRoleList) CacheKey(base string, guildID string) string {
	return fmt.Sprintf("%s:%s", base, guildID)
}
