package main

import (
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/bwmarrin/discordgo"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/x-xyz/yieldbot/base/ctx"
	"github.com/x-xyz/yieldbot/base/database/mongoclient"
	"github.com/x-xyz/yieldbot/base/database/redisclient"
	"github.com/x-xyz/yieldbot/base/goroutine"
	"github.com/x-xyz/yieldbot/base/log"
	"github.com/x-xyz/yieldbot/base/metrics"
	bValidator "github.com/x-xyz/yieldbot/base/validator"
	"github.com/x-xyz/yieldbot/domain/keys"
	mmiddleware "github.com/x-xyz/yieldbot/middleware"
	"github.com/x-xyz/yieldbot/service/cache"
	"github.com/x-xyz/yieldbot/service/query"
	"github.com/x-xyz/yieldbot/service/redis"
	"github.com/x-xyz/yieldbot/service/yieldcache"
	"github.com/x-xyz/yieldbot/service/yieldstore"
	auth_middleware "github.com/x-xyz/yieldbot/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/x-xyz/yieldbot/stores/auth/usecase"
	"github.com/x-xyz/yieldbot/stores/bot/delivery/telegram"
	"github.com/x-xyz/yieldbot/stores/bot/notifier"
	botuser_repository "github.com/x-xyz/yieldbot/stores/botuser/repository"
	botuser_usecase "github.com/x-xyz/yieldbot/stores/botuser/usecase"
	hc_delivery "github.com/x-xyz/yieldbot/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/yieldbot/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/yieldbot/stores/healthcheck/usecase"
	yield_delivery "github.com/x-xyz/yieldbot/stores/yield/delivery/http"
)

const (
	restartDelay    = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

func loadConfig() {
	configPath := pflag.String("config", "infra/configs/config.yaml", "path of the yaml config")
	pflag.Parse()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configPath)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	log.SetDebug(viper.GetBool(`debug`))
	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	loadConfig()
	defer log.Sync()

	context := ctx.Background()
	clk := clock.New()

	// init mongo client
	context.Info("init mongo")
	mongoClient := mongoclient.MustConnectMongoClient(mongoclient.Config{
		Uri:                viper.GetString("mongo.uri"),
		AuthDBName:         viper.GetString("mongo.authDBName"),
		DbName:             viper.GetString("mongo.dbName"),
		EnableSSL:          viper.GetBool("mongo.enableSSL"),
		SetSafe:            true,
		PoolSizeMultiplier: 2,
	})
	q := query.New(mongoClient)

	// init fragment cache, redis only when a provider needs it
	context.Info("init fragment cache")
	fragmentProvider, redisCache := newFragmentProvider(fragmentStoreCfg{
		Provider: viper.GetString("cache.fragments.provider"),
		SizeMB:   viper.GetInt("cache.fragments.sizeMB"),
		Redis: func() redis.Service {
			redisCachePool := redisclient.MustConnectRedis(
				viper.GetString("redis_cache.uri"),
				viper.GetString("redis_cache.password"),
				redisclient.RedisParam{
					PoolMultiplier: viper.GetFloat64("redis_cache.poolMultiplier"),
					Retry:          true,
				},
			)
			return redis.New("fragments", metrics.New("redis"), redisCachePool)
		},
	})
	fragments := yieldcache.NewFragments(cache.New(cache.ServiceConfig{
		Pfx:   keys.PfxFragment,
		Cache: fragmentProvider,
	}), telegram.RenderRecord, metrics.New("fragments"))

	// init yield caches
	store := yieldstore.NewClient(&yieldstore.ClientCfg{
		HttpClient: http.Client{},
		Url:        viper.GetString("yieldstore.url"),
		Key:        viper.GetString("yieldstore.key"),
		Rpc:        viper.GetString("yieldstore.rpc"),
		Timeout:    viper.GetDuration("yieldstore.timeout"),
		Metrics:    metrics.New("yieldstore"),
	})
	yields := yieldcache.New(yieldcache.Config{
		Store:          store,
		Fragments:      fragments,
		Clock:          clk,
		Metrics:        metrics.New("yieldcache"),
		TTL:            viper.GetDuration("cache.ttl"),
		TvlFloor:       viper.GetFloat64("cache.tvlFloor"),
		ScopedTvlFloor: viper.GetFloat64("cache.scopedTvlFloor"),
	})
	refreshInterval := viper.GetDuration("cache.refreshInterval")
	if refreshInterval <= 0 {
		refreshInterval = time.Minute
	}
	refresher := yieldcache.NewRefresher(&yieldcache.RefresherCfg{
		Caches:   yields,
		Interval: refreshInterval,
		Clock:    clk,
	})

	// init users
	users := botuser_usecase.New(
		botuser_repository.NewUserRepo(q),
		botuser_repository.NewActionRepo(q),
		clk,
	)
	auth := auth_usecase.New(viper.GetString("auth.jwtSecret"), users, clk)

	// init telegram
	context.Info("init telegram")
	bot, err := tgbotapi.NewBotAPI(viper.GetString("telegram.token"))
	if err != nil {
		context.WithField("err", err).Panic("tgbotapi.NewBotAPI failed")
	}
	notificationTime := viper.GetString("notification.time")
	handler := telegram.NewHandler(telegram.HandlerCfg{
		Bot:              bot,
		Yields:           yields,
		Users:            users,
		Auth:             auth,
		Clock:            clk,
		Metrics:          metrics.New("telegram"),
		FeedbackContact:  viper.GetString("telegram.feedbackContact"),
		NotificationTime: notificationTime,
	})
	server := telegram.NewServer(telegram.ServerCfg{
		Source:      bot,
		PollTimeout: viper.GetInt("telegram.pollTimeout"),
		Workers:     viper.GetInt("telegram.workers"),
	}, handler)

	// init notifier, discord mirroring is optional
	notifierCfg := notifier.Config{
		Bot:     bot,
		Yields:  yields,
		Users:   users,
		Clock:   clk,
		Metrics: metrics.New("notifier"),
		Time:    notificationTime,
		Workers: viper.GetInt("notification.workers"),
	}
	if key, channelId := viper.GetString("discord.botKey"), viper.GetString("discord.channelId"); key != "" && channelId != "" {
		session, err := discordgo.New("Bot " + key)
		if err != nil {
			context.WithField("err", err).Warn("discordgo.New failed, digest mirror disabled")
		} else {
			notifierCfg.Discord = session
			notifierCfg.DiscordChannelId = channelId
		}
	}
	dailyNotifier := notifier.New(notifierCfg)

	// init echo
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware(metrics.New("http"))
	e.Use(middL.AddContext())
	e.Use(middL.ResponseLogger())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(bValidator.Default())

	authMiddleware := auth_middleware.New(auth, users)
	hc_delivery.New(e, hc_usecase.New(hc_repo.New(mongoClient, redisCache), yields))
	yield_delivery.New(e, yields, authMiddleware.Auth(), authMiddleware.IsAdmin())

	runCtx, cancel := ctx.WithCancel(context)
	refresherStopped := goroutine.Supervise(runCtx, "refresher", restartDelay, refresher.Run)
	notifierStopped := goroutine.Supervise(runCtx, "notifier", restartDelay, dailyNotifier.Run)
	serverStopped := goroutine.Supervise(runCtx, "telegram", restartDelay, server.Run)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")

	shutdownCtx, shutdownCancel := ctx.WithTimeout(context, shutdownTimeout)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}

	cancel()
	<-serverStopped
	<-notifierStopped
	<-refresherStopped
	log.Log().Info("bot stopped")
}
