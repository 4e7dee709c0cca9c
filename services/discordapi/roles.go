package discordapi

import "github.com/bwmarrin/discordgo"

// GetGuildRoles func
func GetGuildRoles(session Session, guildID string) ([]*discordgo.Role, *Error) {
	roles, rErr := session.GuildRoles(guildID)

	if rErr != nil {
		return nil, ParseDiscordError(rErr)
	}

	return roles, nil
}

// GetMember func
func GetMember(session Session, guildID string, userID string) (*discordgo.Member, *Error) {
	member, mErr := session.GuildMember(guildID, userID)

	if mErr != nil {
		return nil, ParseDiscordError(mErr)
	}

	return member, nil
}

// AddMemberRole func
func AddMemberRole(session Session, guildID string, userID string, roleID string) *Error {
	err := session.GuildMemberRoleAdd(guildID, userID, roleID)

	if err != nil {
		return ParseDiscordError(err)
	}

	return nil
}

// RemoveMemberRole func
func RemoveMemberRole(session Session, guildID string, userID string, roleID string) *Error {
	err := session.GuildMemberRoleRemove(guildID, userID, roleID)

	if err != nil {
		return ParseDiscordError(err)
	}

	return nil
}

// MemberHasRole reports whether the member currently carries the role
func MemberHasRole(member *discordgo.Member, roleID string) bool {
	if member == nil {
		return false
	}

	for _, r := range member.Roles {
		if r == roleID {
			return true
		}
	}

	return false
}

// IsAdministrator reports whether any of the member's roles carries the
// Administrator permission
func IsAdministrator(member *discordgo.Member, guildRoles []*discordgo.Role) bool {
	if member == nil {
		return false
	}

	for _, memberRole := range member.Roles {
		for _, guildRole := range guildRoles {
			if memberRole == guildRole.ID && (guildRole.Permissions&discordgo.PermissionAdministrator == discordgo.PermissionAdministrator) {
				return true
			}
		}
	}

	return false
}
