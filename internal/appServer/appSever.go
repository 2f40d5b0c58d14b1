package appServer

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/athletichub/athletichub/config"
	tokenrepo "github.com/athletichub/athletichub/internal/database/redis"
	"github.com/athletichub/athletichub/internal/service"
	"github.com/athletichub/athletichub/internal/transport"
	"github.com/athletichub/athletichub/internal/worker"

	"github.com/athletichub/athletichub/pkg/apiclient"
	"github.com/athletichub/athletichub/pkg/idp"
	"github.com/athletichub/athletichub/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},           // ban on outdate TLS certificate
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags), // os.Stderr can be replaced with ElsasticSearch in the feature
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	// Durable storage for session tokens
	redisClient := redis.NewRedisClient(&cfg.Redis)
	defer redisClient.Close()
	tokenRepo := tokenrepo.NewTokenRepository(redisClient, cfg.Session.TokenKeyPrefix)

	// External collaborators
	identityClient := idp.NewClient(cfg.Identity.BaseURL, cfg.Identity.APIKey, cfg.Identity.Timeout)
	remoteAPI := apiclient.NewClient(cfg.API.BaseURL, cfg.API.Timeout)

	// Initialize services
	sessionService := service.NewSessionService(identityClient, remoteAPI, tokenRepo, cfg.Session.TokenTTL)
	eventService := service.NewEventService(remoteAPI)
	hubService := service.NewHubService(remoteAPI)
	listingService := service.NewListingService(remoteAPI, remoteAPI)
	bookingService := service.NewBookingService(remoteAPI, remoteAPI)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Single subscription point to the identity provider's change stream
	sessionService.Start(ctx)
	logrus.Info("Session store subscribed to auth state stream")

	// Initialize cleanup worker
	cleanupWorker := worker.NewSessionCleanupWorker(sessionService, cfg.Session.CleanupInterval)
	go cleanupWorker.Start(ctx)
	logrus.Info("Session cleanup worker started")

	// Initialize handlers
	pageHandler := transport.NewPageHandler(sessionService, eventService, hubService, listingService, bookingService)
	authHandler := transport.NewAuthHandler(sessionService)
	eventHandler := transport.NewEventHandler(eventService, sessionService)
	hubHandler := transport.NewHubHandler(hubService, listingService, sessionService)
	bookingHandler := transport.NewBookingHandler(bookingService, eventService, hubService, sessionService)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		handler := transport.InitRoutes(cfg, sessionService,
			pageHandler, authHandler, eventHandler, hubHandler, bookingHandler)
		if err := srv.Run(cfg, handler); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}
