package main

import (
	"context"
	"errors"
	"foodbot/internal/adapters/handler"
	"foodbot/internal/adapters/metrics"
	"foodbot/internal/adapters/sender"
	"foodbot/internal/core/domain/command"
	"foodbot/internal/core/service"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/go-telegram/bot/models"

	"github.com/rs/zerolog"

	"github.com/go-telegram/bot"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func main() {
	log.Info().Msg("starting foodbot...")

	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("toml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("bot.log_level", "info")
	viper.SetDefault("handler.timeout", "30s")
	viper.SetDefault("telegram.admin_username", "admin")

	log.Info().Msg("reading config file...")
	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal().Err(err).Msg("could not read config file")
		}
		log.Warn().Msg("no config file found, using defaults and environment")
	}

	var logLevel zerolog.Level

	switch viper.GetString("bot.log_level") {
	case "info":
		logLevel = zerolog.InfoLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	token := viper.GetString("telegram.bot_token")
	if token == "" {
		log.Fatal().Msg("telegram.bot_token not set")
	}

	opts := []bot.Option{
		bot.WithDefaultHandler(noOpHandler),
	}

	b, err := bot.New(token, opts...)
	if err != nil {
		log.Panic().Err(err).Msg("failed initializing telegram bot")
	}

	me, err := b.GetMe(ctx)
	if err != nil {
		log.Panic().Err(err).Msg("failed fetching bot user")
	}

	s := sender.NewTelegram(b)

	authorizer, err := service.NewAuthorizer(s)
	if err != nil {
		log.Panic().Err(err).Msg("failed initializing authorizer")
	}

	chats := service.NewChatRegistry()
	orders := service.NewResolver(chats)

	commandRegistry := &command.Registry{}
	commandRegistry.Register(command.NewStart(orders, s, "/start", true))
	commandRegistry.Register(command.NewStart(orders, s, "/start_order", false))
	commandRegistry.Register(command.NewPlace(orders, s, "/order"))
	commandRegistry.Register(command.NewCancel(orders, s, "/cancel"))
	commandRegistry.Register(command.NewEnd(orders, s, "/end"))
	commandRegistry.Register(command.NewEnd(orders, s, "/end_order"))
	commandRegistry.Register(command.NewView(orders, s, "/view"))
	commandRegistry.Register(command.NewView(orders, s, "/view_orders"))
	commandRegistry.Register(command.NewHelp(s, "/help"))

	handlerTimeout, err := time.ParseDuration(viper.GetString("handler.timeout"))
	if err != nil {
		log.Panic().Err(err).Msg("invalid timeout for handler in config")
	}

	prom := metrics.NewPrometheus(chats.Len)
	if addr := viper.GetString("metrics.listen_addr"); addr != "" {
		go func() {
			if err := prom.Serve(ctx, addr); err != nil {
				log.Error().Err(err).Msg("metrics server stopped")
			}
		}()
	}

	commandHandler := handler.NewCommand(commandRegistry, authorizer, s, prom, me.Username, handlerTimeout)
	callbackHandler := handler.NewCallback(command.NewQuickOrder(orders, s), authorizer, prom, handlerTimeout)

	b.RegisterHandler(bot.HandlerTypeMessageText, "/", bot.MatchTypePrefix, commandHandler.Handle)
	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, callbackHandler.Handle)

	log.Info().
		Str("username", me.Username).
		Strs("commands", commandRegistry.ListCommands()).
		Msg("bot listening")
	b.Start(ctx)
}

func noOpHandler(_ context.Context, _ *bot.Bot, _ *models.Update) {}
