package main

import (
	"context"
	"log"
	"os"

	"github.com/bwmarrin/discordgo"
	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
	"gitlab.com/moth-works/rolekeeper/configs"
	"gitlab.com/moth-works/rolekeeper/controllers"
	"gitlab.com/moth-works/rolekeeper/interactions"
	"gitlab.com/moth-works/rolekeeper/rolepicker"
	"gitlab.com/moth-works/rolekeeper/routes"
	"gitlab.com/moth-works/rolekeeper/runners"
	"gitlab.com/moth-works/rolekeeper/utils/cache"
	"gitlab.com/moth-works/rolekeeper/utils/logging"
	"go.uber.org/zap"
)

// Environment struct
type Environment struct {
	Environment  string `env:"ENVIRONMENT,required"`
	DiscordToken string `env:"DISCORD_TOKEN,required"`
	ListenerPort string `env:"LISTENER_PORT,required"`
	ServiceToken string `env:"SERVICE_TOKEN,required"`
	BasePath     string `env:"BASE_PATH"`
}

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment directly")
	}

	environment := Environment{}
	if err := env.Parse(&environment); err != nil {
		log.Fatal("FAILED TO LOAD CONFIG")
	}

	ctx = logging.AddValues(ctx,
		zap.String("scope", logging.GetFuncName()),
		zap.String("env", environment.Environment),
		zap.String("listener_port", environment.ListenerPort),
		zap.String("base_path", environment.BasePath),
	)

	config := configs.GetConfig(ctx, environment.Environment)
	ca := InitCache(ctx, config)

	store := rolepicker.NewStore(config.RolePicker.ConfigPath)
	store.Load(ctx)

	// Instantiate Discord client
	dg, discErr := discordgo.New("Bot " + environment.DiscordToken)
	if discErr != nil {
		ctx = logging.AddValues(ctx, zap.NamedError("error", discErr), zap.String("error_message", "Failed to create Discord client"))
		logger := logging.Logger(ctx)
		logger.Fatal("error_log")
	}

	dg.Identify.Intents = discordgo.MakeIntent(
		discordgo.IntentsGuilds |
			discordgo.IntentsGuildMessages |
			discordgo.IntentsGuildMessageReactions |
			discordgo.IntentsDirectMessages,
	)

	defer dg.Close()

	// Open a websocket connection to Discord and begin listening.
	openErr := dg.Open()
	if openErr != nil {
		ctx = logging.AddValues(ctx, zap.NamedError("error", openErr), zap.String("error_message", "Failed to open Discord web socket"))
		logger := logging.Logger(ctx)
		logger.Fatal("error_log")
	}

	engine := rolepicker.NewEngine(dg, store, ca, config, dg.State.User.ID)

	comm := interactions.Interactions{
		Session: dg,
		Config:  config,
		Cache:   ca,
		Engine:  engine,
		Shutdown: func() {
			logger := logging.Logger(ctx)
			logger.Info("shutdown_log")
			dg.Close()
			os.Exit(0)
		},
	}

	comm.SetupHandlers()

	run := runners.Runners{
		Session: dg,
		Config:  config,
		Cache:   ca,
		Engine:  engine,
	}

	run.StartRunners()

	router := routes.GetRouter(ctx)
	controller := controllers.Controller{
		Config: config,
		Cache:  ca,
		Engine: engine,
	}

	r := routes.Router{
		ServiceToken: environment.ServiceToken,
		Port:         environment.ListenerPort,
		BasePath:     environment.BasePath,
		Controller:   &controller,
	}

	routes.AddRoutes(ctx, router, r)
}

// InitCache initializes the Redis cache. An empty host disables caching and
// the bot runs against the Discord API directly.
func InitCache(ctx context.Context, config *configs.Config) *cache.Cache {
	ctx = logging.AddValues(ctx, zap.String("scope", logging.GetFuncName()))

	if config.Redis.Host == "" {
		logger := logging.Logger(ctx)
		logger.Info("Redis host not configured, running without cache")
		return nil
	}

	pool, err := cache.GetClient(ctx, config.Redis.Host, config.Redis.Port, config.Redis.Pool)

	if err != nil {
		ctx = logging.AddValues(ctx, zap.NamedError("error", err), zap.String("error_message", err.Message))
		logger := logging.Logger(ctx)
		logger.Fatal("error_log")
	}

	return &cache.Cache{
		Client: pool,
	}
}
