package commands

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/bwmarrin/discordgo"
	"gitlab.com/moth-works/rolekeeper/configs"
	"gitlab.com/moth-works/rolekeeper/services/discordapi"
	"gitlab.com/moth-works/rolekeeper/utils/logging"
	"go.uber.org/zap"
)

const (
	statBlockMinTotal    = 72
	statBlockMaxAttempts = 100000
)

var alignments = []string{
	"Lawful Good", "Neutral Good", "Chaotic Good", "Lawful Neutral", "True Neutral",
	"Chaotic Neutral", "Lawful Evil", "Neutral Evil", "Chaotic Evil",
}

var races = []string{
	"Aarakocra", "Aasimar", "Astral Elf", "Autognome", "Bugbear", "Centaur", "Changeling",
	"Custom Lineage", "Deep Gnome", "Dhampir", "Dragonborn", "Duergar", "Dwarf", "Eladrin",
	"Elf", "Fairy", "Firbolg", "Genasi", "Giff", "Githyanki", "Githzerai", "Gnome", "Goblin",
	"Goliath", "Grung", "Hadozee", "Half-Elf", "Half-Orc", "Halfling", "Harengon", "Hexblood",
	"Hobgoblin", "Human", "Kalashtar", "Kender", "Kenku", "Kobold", "Leonin", "Lizardfolk",
	"Locathah", "Loxodon", "Minotaur", "Orc", "Owlin", "Plasmoid", "Reborn", "Satyr",
	"Sea Elf", "Shadar-Kai", "Shifter", "Simic Hybrid", "Tabaxi", "Thri-kreen", "Tiefling",
	"Tortle", "Triton", "Vedalken", "Verdan", "Warforged", "Yuan-ti",
}

var classes = []string{
	"Artificer", "Barbarian", "Bard", "Cleric", "Druid", "Fighter", "Monk",
	"Paladin", "Ranger", "Rogue", "Sorcerer", "Warlock", "Wizard",
}

// DeathSave rolls a d20 death saving throw
func (c *Commands) DeathSave(ctx context.Context, s *discordgo.Session, mc *discordgo.MessageCreate, command configs.Command) {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	roll := rand.Intn(20) + 1
	content := fmt.Sprintf("You rolled a %d: %s", roll, deathSaveResult(roll))

	c.sendPlain(ctx, mc.ChannelID, content)
}

// NewStats rolls a 4d6-drop-lowest stat block, rerolling until the block
// totals at least the minimum
func (c *Commands) NewStats(ctx context.Context, s *discordgo.Session, mc *discordgo.MessageCreate, command configs.Command) {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	stats, attempts := rollStatBlock(rand.Intn, statBlockMinTotal, statBlockMaxAttempts)
	if sumStats(stats) < statBlockMinTotal {
		logger := logging.Logger(logging.AddValues(ctx,
			zap.Int("attempts", attempts),
			zap.String("error_message", "Stat block never reached minimum total, returning last roll"),
		))
		logger.Warn("command_log")
	}

	content := fmt.Sprintf("Rolled in %d attempt(s): `%v` (Total: %d)", attempts, stats, sumStats(stats))
	c.sendPlain(ctx, mc.ChannelID, content)
}

// RandomBuild rolls a random alignment, race and class
func (c *Commands) RandomBuild(ctx context.Context, s *discordgo.Session, mc *discordgo.MessageCreate, command configs.Command) {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	c.deleteInvocation(ctx, mc)

	content := fmt.Sprintf("🐉 Go forth and seek adventure, <@%s>, with your shiny new %s %s %s",
		mc.Author.ID,
		alignments[rand.Intn(len(alignments))],
		races[rand.Intn(len(races))],
		classes[rand.Intn(len(classes))],
	)

	c.sendPlain(ctx, mc.ChannelID, content)
}

// deathSaveResult maps a d20 roll to its death save outcome
func deathSaveResult(roll int) string {
	switch {
	case roll == 20:
		return "🎉 Critical Success! You're Up with 1 HP!"
	case roll == 1:
		return "⚰️ Critical Fail! Death's Shadow falls upon you twice! ⚰️"
	case roll >= 10:
		return "✅ Success! You have gained one Success."
	default:
		return "☠️ Fail! You are one step closer to Death."
	}
}

// rollStat rolls 4d6 and sums the top three. intn must behave like rand.Intn.
func rollStat(intn func(int) int) int {
	rolls := make([]int, 4)
	for i := range rolls {
		rolls[i] = intn(6) + 1
	}

	sort.Sort(sort.Reverse(sort.IntSlice(rolls)))
	return rolls[0] + rolls[1] + rolls[2]
}

// rollStatBlock rolls six stats until the block totals at least minTotal,
// giving up after maxAttempts and returning the last roll
func rollStatBlock(intn func(int) int, minTotal int, maxAttempts int) ([]int, int) {
	var stats []int

	for attempts := 1; attempts <= maxAttempts; attempts++ {
		stats = make([]int, 6)
		for i := range stats {
			stats[i] = rollStat(intn)
		}

		if sumStats(stats) >= minTotal {
			return stats, attempts
		}
	}

	return stats, maxAttempts
}

func sumStats(stats []int) int {
	total := 0
	for _, stat := range stats {
		total += stat
	}

	return total
}

// sendPlain sends a bare text message, logging failures
func (c *Commands) sendPlain(ctx context.Context, channelID string, content string) {
	if _, smErr := discordapi.SendMessage(c.Session, channelID, &content, nil); smErr != nil {
		newCtx := logging.AddValues(ctx, zap.NamedError("error", smErr.Err), zap.String("error_message", smErr.Message), zap.Int("status_code", smErr.Code))
		logger := logging.Logger(newCtx)
		logger.Error("command_log")
	}
}
