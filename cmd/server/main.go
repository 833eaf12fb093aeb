package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/murmurapp/murmur/app_setting"
	"github.com/murmurapp/murmur/event"
	"github.com/murmurapp/murmur/image_store"
	"github.com/murmurapp/murmur/server"
	"github.com/murmurapp/murmur/server/middlewares"
	"github.com/murmurapp/murmur/server/service"
	"github.com/murmurapp/murmur/utils"
	"github.com/murmurapp/murmur/utils/dotenv"
	appflag "github.com/murmurapp/murmur/utils/flag"
	Logger "github.com/murmurapp/murmur/utils/log"
	gintrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/gin-gonic/gin"
)

func init() {
	if !appflag.ByPassAuth {
		// Middlewares
		middlewares.Setup()
	}

	Logger.Log.Info("api server initialized")
}

func cleanup() {
	utils.CloseProfiler()
	utils.CloseTracer()
	Logger.Log.Info("api server shutdown")
}

func main() {
	defer cleanup()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	setting := app_setting.DefaultServerAppSetting()
	if path := os.Getenv("SERVER_APP_SETTING"); path != "" {
		setting = app_setting.ParseServerAppSetting(path)
	}

	db, err := utils.GetDBConnection()
	if err != nil {
		Logger.Log.Fatal("fail to connect to database: ", err)
	}
	utils.DatabaseSetupAndMigration(db)

	bus := event.NewBus()
	defer bus.Close()

	svc := service.NewService(db, bus, setting)
	svc.Fetcher = service.NewPreviewFetcher(time.Duration(setting.PREVIEW_FETCH_TIMEOUT_SECOND) * time.Second)

	// Optional collaborators: the server runs fine without redis or statsd,
	// just slower and blinder.
	if cache, err := utils.GetRedisLikeCache(); err != nil {
		Logger.Log.Warn("like count cache disabled: ", err)
	} else {
		svc.LikeCache = cache
	}
	if client, err := statsd.New(os.Getenv("DD_AGENT_ADDR")); err != nil {
		Logger.Log.Warn("statsd disabled: ", err)
	} else {
		svc.Statsd = client
	}

	// Enrichment consumes post.created in-process.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := svc.RunEnrichmentWorker(ctx); err != nil {
			Logger.Log.Error("enrichment worker exited: ", err)
		}
	}()

	bucket := setting.IMAGE_BUCKET
	images, err := image_store.NewS3ImageStore(bucket)
	if err != nil {
		Logger.Log.Fatal("fail to setup image store: ", err)
	}

	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()

	router.Use(cors.Default())
	router.Use(gintrace.Middleware(appflag.ServiceName))
	if !appflag.ByPassAuth {
		router.Use(middlewares.JWT())
	}

	srv := server.NewServer(svc, images)
	srv.RegisterRoutes(router)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	Logger.Log.Info("api server starts up")
	router.Run(setting.SERVER_ADDR)
}
