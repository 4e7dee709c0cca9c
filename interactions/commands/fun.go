package commands

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/bwmarrin/discordgo"
	"gitlab.com/moth-works/rolekeeper/configs"
	"gitlab.com/moth-works/rolekeeper/rolepicker"
	"gitlab.com/moth-works/rolekeeper/utils/logging"
	"go.uber.org/zap"
)

var bunnyGifs = []string{
	"https://tenor.com/JBF3fq5wKL.gif",
	"https://tenor.com/view/bunny-cute-bun-rabbit-dance-gif-12204421675478327501",
	"https://tenor.com/view/bunny-eating-gif-27018618",
	"https://tenor.com/view/albert-harebrayne-bunny-rabbit-gif-10500821922776666435",
	"https://tenor.com/view/bunny-kissing-dog-bunny-dog-kissing-puppy-gif-10364923600939704626",
}

const mothmanGif = "https://art.ngfiles.com/images/3435000/3435336_codingcanine_thicc-mothman.gif"

// Hello func
func (c *Commands) Hello(ctx context.Context, s *discordgo.Session, mc *discordgo.MessageCreate, command configs.Command) {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))
	c.sendPlain(ctx, mc.ChannelID, "Hello gamer! 🎮")
}

// Dave func
func (c *Commands) Dave(ctx context.Context, s *discordgo.Session, mc *discordgo.MessageCreate, command configs.Command) {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))
	c.sendPlain(ctx, mc.ChannelID, "Now, Dave. I'm afraid I can't do that.")
}

// Mmn func
func (c *Commands) Mmn(ctx context.Context, s *discordgo.Session, mc *discordgo.MessageCreate, command configs.Command) {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))
	c.sendPlain(ctx, mc.ChannelID, "🤓 Eugene 🤓")
}

// Bnuuy posts a random bunny gif
func (c *Commands) Bnuuy(ctx context.Context, s *discordgo.Session, mc *discordgo.MessageCreate, command configs.Command) {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))
	c.sendPlain(ctx, mc.ChannelID, bunnyGifs[rand.Intn(len(bunnyGifs))])
}

// Mothman func
func (c *Commands) Mothman(ctx context.Context, s *discordgo.Session, mc *discordgo.MessageCreate, command configs.Command) {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))
	c.sendPlain(ctx, mc.ChannelID, mothmanGif)
}

// ColorTest lists the embed color names the picker accepts
func (c *Commands) ColorTest(ctx context.Context, s *discordgo.Session, mc *discordgo.MessageCreate, command configs.Command) {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))
	c.sendPlain(ctx, mc.ChannelID, fmt.Sprintf("The color choices are: %s", strings.Join(rolepicker.ColorNames(), ", ")))
}
