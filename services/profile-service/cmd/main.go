package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"

	"github.com/vasapolrittideah/user-profile-api/services/profile-service/internal/config"
	"github.com/vasapolrittideah/user-profile-api/services/profile-service/internal/handler"
	"github.com/vasapolrittideah/user-profile-api/services/profile-service/internal/repository"
	"github.com/vasapolrittideah/user-profile-api/services/profile-service/internal/usecase"
	"github.com/vasapolrittideah/user-profile-api/shared/auth"
	"github.com/vasapolrittideah/user-profile-api/shared/cache"
	"github.com/vasapolrittideah/user-profile-api/shared/database"
	"github.com/vasapolrittideah/user-profile-api/shared/discovery"
	"github.com/vasapolrittideah/user-profile-api/shared/logger"
	"github.com/vasapolrittideah/user-profile-api/shared/utilities"
	"github.com/vasapolrittideah/user-profile-api/shared/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := zerolog.New(os.Stderr)
		l.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(logger.Config{
		Service: cfg.ServiceName,
		Level:   cfg.Log.Level,
		Pretty:  cfg.Log.Pretty,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongo, err := database.NewMongo(ctx, database.MongoConfig{
		URI:            cfg.Mongo.URI,
		Database:       cfg.Mongo.Database,
		ConnectTimeout: cfg.Mongo.ConnectTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	checks := []handler.HealthChecker{mongo}

	var (
		sessionRepo repository.SessionRepository
		redisClient *cache.Redis
	)
	switch cfg.SessionBackend() {
	case config.SessionStoreRedis:
		redisClient, err = cache.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		sessionRepo = repository.NewSessionRedisRepository(redisClient.Client)
		checks = append(checks, redisClient)
	case config.SessionStoreMemory:
		log.Warn().Msg("storing sessions in memory, they will not survive a restart")
		memorySessions := repository.NewInMemorySessionRepository()
		go memorySessions.RunJanitor(ctx, log, cfg.Session.CleanupInterval)
		sessionRepo = memorySessions
	default:
		sessionRepo = repository.NewSessionMongoRepository(ctx, log, mongo.DB)
	}
	log.Info().Str("store", cfg.SessionBackend()).Msg("session store ready")

	profileRepo := repository.NewProfileMongoRepository(ctx, log, mongo.DB)
	jwtAuth := auth.NewJWTAuthenticator(cfg.Session.Issuer, cfg.Session.Issuer)

	profileUsecase := usecase.NewProfileUsecase(profileRepo)
	authUsecase := usecase.NewAuthUsecase(profileRepo, sessionRepo, jwtAuth, cfg.Session)

	v, err := validator.New()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create validator")
	}

	h := handler.NewProfileHTTPHandler(profileUsecase, authUsecase, v, cfg.Session, log, checks...)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           h.Routes(),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting http server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	grpcServer, healthServer := startHealthServer(cfg, log)

	registry := registerService(cfg, log)

	<-ctx.Done()
	log.Info().Msg("shutting down")

	if healthServer != nil {
		healthServer.Shutdown()
	}
	if registry != nil {
		if err := registry.Deregister(); err != nil {
			log.Error().Err(err).Msg("failed to deregister from consul")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shut down http server")
	}
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
	if err := mongo.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to disconnect from mongodb")
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close redis client")
		}
	}
}

// startHealthServer serves the gRPC health protocol when GRPC_HEALTH_ADDR is set.
func startHealthServer(cfg *config.ProfileServiceConfig, log *zerolog.Logger) (*grpc.Server, *health.Server) {
	if cfg.GRPCHealthAddr == "" {
		return nil, nil
	}

	lis, err := net.Listen("tcp", cfg.GRPCHealthAddr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.GRPCHealthAddr).Msg("failed to listen for grpc health")
	}

	grpcServer := grpc.NewServer()
	healthServer := utilities.RegisterHealthServer(grpcServer, cfg.ServiceName)

	go func() {
		log.Info().Str("addr", cfg.GRPCHealthAddr).Msg("starting grpc health server")
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			log.Error().Err(err).Msg("grpc health server failed")
		}
	}()

	return grpcServer, healthServer
}

func registerService(cfg *config.ProfileServiceConfig, log *zerolog.Logger) *discovery.ConsulRegistry {
	if cfg.ConsulAddr == "" {
		return nil
	}

	registry, err := discovery.NewConsulRegistry(cfg.ConsulAddr, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to create consul client")
		return nil
	}

	reg := discovery.Registration{
		Name: cfg.ServiceName,
		Host: cfg.ServiceAdvertiseHost,
		Port: cfg.Port,
	}
	if cfg.GRPCHealthAddr != "" {
		host, port, err := net.SplitHostPort(cfg.GRPCHealthAddr)
		if err != nil {
			log.Error().Err(err).Msg("invalid GRPC_HEALTH_ADDR")
			return nil
		}
		if host == "" {
			host = cfg.ServiceAdvertiseHost
		}
		reg.GRPCHealthAddr = net.JoinHostPort(host, port)
	} else {
		reg.HealthURL = "http://" + net.JoinHostPort(cfg.ServiceAdvertiseHost, strconv.Itoa(cfg.Port)) + "/healthz"
	}

	if err := registry.Register(reg); err != nil {
		log.Error().Err(err).Msg("failed to register with consul")
		return nil
	}

	return registry
}
