package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/fitnesshub/backend/internal/adaptive"
	"github.com/fitnesshub/backend/internal/analytics"
	"github.com/fitnesshub/backend/internal/auth"
	"github.com/fitnesshub/backend/internal/config"
	"github.com/fitnesshub/backend/internal/db"
	"github.com/fitnesshub/backend/internal/fatigue"
	"github.com/fitnesshub/backend/internal/geoip"
	"github.com/fitnesshub/backend/internal/launcher"
	"github.com/fitnesshub/backend/internal/middleware"
	"github.com/fitnesshub/backend/internal/misc"
	"github.com/fitnesshub/backend/internal/nutrition"
	"github.com/fitnesshub/backend/internal/pods"
	"github.com/fitnesshub/backend/internal/telemetry/metrics"
	"github.com/fitnesshub/backend/internal/telemetry/tracing"
	"github.com/fitnesshub/backend/internal/workouts"
)

const (
	defaultLauncherSweepSchedule   = "@every 30m"
	defaultSessionsCleanupSchedule = "@every 8h"
	defaultAnalyticsBufferSize     = 1024
	defaultRateLimitPerMin         = 30
	userTokenIssuer                = "fithub"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client
	cron        *cron.Cron

	authService   *auth.Service
	loginChecker  *auth.LoginChecker
	tokenVerifier *auth.TokenVerifier
	timezones     *geoip.TimezoneResolver

	workoutsRepo     *workouts.Repo
	analyticsRepo    *analytics.Repo
	recorder         *analytics.Recorder
	launcherCache    *launcher.Cache
	predictor        *launcher.Predictor
	cachedPredictor  *launcher.CachedPredictor
	nutritionService *nutrition.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	IpInfoAPIKey            string
	UserTokenSecret         string
	VersionInfo             string
	AdminUsername           string
	AdminPasswordHash       string
	DBUser                  string
	DBPassword              string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		DBUser:         params.DBUser,
		DBPassword:     params.DBPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("fithub", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "fithub-backend", rdb)
	if err != nil {
		return nil, err
	}

	if params.UserTokenSecret == "" {
		return nil, errors.New("user token secret not set")
	}

	authService := auth.NewAuthService(&auth.Admin{
		Username:     params.AdminUsername,
		PasswordHash: params.AdminPasswordHash,
	}, auth.DefaultAdminSessionTTL, rdb)

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   12 * time.Second,
	}

	s := &Server{
		config:      params.Config,
		dbPool:      dbPool,
		redisClient: rdb,
		versionInfo: params.VersionInfo,

		authService:   authService,
		loginChecker:  auth.NewLoginChecker(auth.DefaultAdminSessionTTL, rdb),
		tokenVerifier: auth.NewTokenVerifier(params.UserTokenSecret, userTokenIssuer),
		timezones: geoip.NewTimezoneResolver(
			geoip.NewIPInfoClient(params.IpInfoAPIKey),
			rdb,
			params.Config.Location(),
		),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}
	s.setupDomain(nutrition.NewClient(nutrition.ClientParams{
		BaseURL:     params.Config.OpenFoodFactsBaseURL,
		HTTPClient:  tracedHttpClient,
		CacheSizeMB: params.Config.NutritionCacheSizeMB,
		CacheTTL:    params.Config.NutritionCacheTTL(),
	}))

	if err := s.setupCron(ctx); err != nil {
		return nil, fmt.Errorf("setup cron jobs: %w", err)
	}

	return s, nil
}

// setupDomain wires the repos and services shared by the handlers, the cron
// jobs and the shutdown sequence.
func (s *Server) setupDomain(foodSource *nutrition.Client) {
	bufferSize := s.config.AnalyticsBufferSize
	if bufferSize <= 0 {
		bufferSize = defaultAnalyticsBufferSize
	}

	s.workoutsRepo = workouts.NewRepo(s.dbPool)
	s.analyticsRepo = analytics.NewRepo(s.dbPool)
	s.recorder = analytics.NewRecorder(s.analyticsRepo, bufferSize, s.metricsManager)
	s.launcherCache = launcher.NewCache(s.redisClient, s.config.LauncherCacheTTL())
	s.predictor = launcher.NewPredictor(s.workoutsRepo, s.workoutsRepo)
	s.cachedPredictor = launcher.NewCachedPredictor(s.predictor, s.launcherCache, s.recorder, s.metricsManager)
	s.nutritionService = nutrition.NewService(foodSource, s.recorder, s.metricsManager)
}

func (s *Server) setupCron(ctx context.Context) error {
	sweepSchedule := s.config.LauncherSweepSchedule
	if sweepSchedule == "" {
		sweepSchedule = defaultLauncherSweepSchedule
	}
	cleanupSchedule := s.config.SessionsCleanupSchedule
	if cleanupSchedule == "" {
		cleanupSchedule = defaultSessionsCleanupSchedule
	}

	s.cron = cron.New()
	if _, err := s.cron.AddFunc(sweepSchedule, func() {
		evicted, err := s.launcherCache.Sweep(ctx, time.Now())
		if err != nil {
			log.Errorf("launcher cache sweep: %s", err)
			return
		}
		log.Debugf("launcher cache sweep evicted %d predictions", evicted)
	}); err != nil {
		return fmt.Errorf("launcher sweep job [%s]: %w", sweepSchedule, err)
	}
	if _, err := s.cron.AddFunc(cleanupSchedule, func() {
		removed := s.authService.ScanAndClean(ctx)
		log.Debugf("admin sessions cleanup removed %d sessions", removed)
	}); err != nil {
		return fmt.Errorf("sessions cleanup job [%s]: %w", cleanupSchedule, err)
	}

	return nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)

	loginAllowedPerMin := s.config.LoginRateLimitAllowedPerMin
	if loginAllowedPerMin <= 0 {
		loginAllowedPerMin = defaultRateLimitPerMin
	}
	miscHandler := misc.NewHandler(s.authService, s.versionInfo)
	miscHandler.SetupRoutes(r, reqRateLimiter, s.metricsManager, loginAllowedPerMin)

	workoutsHandler := workouts.NewHandler(workouts.NewService(s.workoutsRepo))
	r.HandleFunc("/api/workouts/sessions", workoutsHandler.HandleLogSession).Methods("POST", "OPTIONS").Name("log-session")
	r.HandleFunc("/api/workouts/templates", workoutsHandler.HandleSaveTemplate).Methods("POST", "OPTIONS").Name("save-template")
	r.HandleFunc("/api/workouts/templates", workoutsHandler.HandleListTemplates).Methods("GET", "OPTIONS").Name("list-templates")

	adaptiveHandler := adaptive.NewHandler(
		adaptive.NewGenerator(
			fatigue.NewScorer(s.workoutsRepo, s.metricsManager),
			s.cachedPredictor.Quiet(),
			s.recorder,
			s.metricsManager,
		),
		s.timezones,
	)
	r.HandleFunc("/api/workouts/adaptive", adaptiveHandler.HandleGet).Methods("GET", "OPTIONS").Name("adaptive-workout")

	launcherHandler := launcher.NewHandler(s.cachedPredictor, s.predictor, s.timezones)
	r.HandleFunc("/api/launcher/prediction", launcherHandler.HandlePrediction).Methods("GET", "OPTIONS").Name("launcher-prediction")
	r.HandleFunc("/api/launcher/alternatives", launcherHandler.HandleAlternatives).Methods("GET", "OPTIONS").Name("launcher-alternatives")

	nutritionAllowedPerMin := s.config.NutritionRateLimitPerMin
	if nutritionAllowedPerMin <= 0 {
		nutritionAllowedPerMin = defaultRateLimitPerMin
	}
	nutritionHandler := nutrition.NewHandler(s.nutritionService)
	nutritionRouter := r.PathPrefix("/api/nutrition").Subrouter()
	nutritionRouter.HandleFunc("/barcode/{code}", nutritionHandler.HandleBarcode).Methods("GET", "OPTIONS").Name("nutrition-barcode")
	nutritionRouter.HandleFunc("/search", nutritionHandler.HandleSearch).Methods("GET", "OPTIONS").Name("nutrition-search")
	nutritionRouter.Use(middleware.RateLimit(reqRateLimiter, "nutrition", nutritionAllowedPerMin, s.metricsManager))

	podsRepo := pods.NewRepo(s.dbPool)
	podsHandler := pods.NewHandler(
		pods.NewService(podsRepo, pods.NewAggregator(podsRepo)),
		s.timezones,
	)
	podsHandler.SetupRoutes(r.PathPrefix("/api/pods").Subrouter())

	analyticsHandler := analytics.NewHandler(s.analyticsRepo)
	r.HandleFunc("/admin/analytics/events/page/{page}/size/{size}", analyticsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-events")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker, s.tokenVerifier)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) Serve(host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{Registry: s.promRegistry},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.cron.Start()
	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	if s.cron != nil {
		<-s.cron.Stop().Done()
		log.Trace("cron jobs stopped ...")
	}

	// in-flight refreshes still write to redis and emit events
	s.cachedPredictor.Wait()
	s.recorder.Close()
	log.Trace("analytics recorder drained ...")

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}
