package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/sngm3741/jobboard/api/internal/config"
	"github.com/sngm3741/jobboard/api/internal/infrastructure/memory"
	mongostore "github.com/sngm3741/jobboard/api/internal/infrastructure/mongo"
	natsevents "github.com/sngm3741/jobboard/api/internal/infrastructure/nats"
	redisguard "github.com/sngm3741/jobboard/api/internal/infrastructure/redis"
	commonhttp "github.com/sngm3741/jobboard/api/internal/interfaces/http/common"
	companyhttp "github.com/sngm3741/jobboard/api/internal/interfaces/http/company"
	publichttp "github.com/sngm3741/jobboard/api/internal/interfaces/http/public"
	seekerhttp "github.com/sngm3741/jobboard/api/internal/interfaces/http/seeker"
	jobsapp "github.com/sngm3741/jobboard/api/internal/jobs/application"
	"github.com/sngm3741/jobboard/api/internal/metrics"
)

// Server は HTTP サーバーのライフサイクルを管理し、Public/Company/Seeker の各ハンドラへ依存注入するコンポジションルート。
type Server struct {
	logger         *zap.Logger
	client         *mongo.Client
	guard          *redisguard.SubmissionGuard
	publisher      *natsevents.Publisher
	sessions       *jobsapp.SessionRegistry
	listingQueries jobsapp.ListingQueryService
	posting        jobsapp.PostingService
	apply          jobsapp.ApplyService
	retrieval      jobsapp.RetrievalService
	jwtConfigs     []config.JWTConfig
	jwtAudience    string
	addr           string
	allowedOrigins []string
	sweepInterval  time.Duration
}

// Handler は ルーティングとミドルウェアを組み立てた http.Handler を返す。
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(s.logger))
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/healthz", s.healthHandler())
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	publichttp.NewHandler(publichttp.Config{
		Logger:   s.logger,
		Queries:  s.listingQueries,
		Sessions: s.sessions,
	}).Register(router)
	companyhttp.NewHandler(companyhttp.Config{
		Logger:    s.logger,
		Posting:   s.posting,
		Retrieval: s.retrieval,
	}).Register(router, s.authMiddleware)
	seekerhttp.NewHandler(seekerhttp.Config{
		Logger:    s.logger,
		Apply:     s.apply,
		Retrieval: s.retrieval,
	}).Register(router, s.authMiddleware)

	return router
}

// Run は HTTP サーバーを起動し、シグナル受信で graceful shutdown する。
func (s *Server) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go s.sessions.Run(ctx, s.sweepInterval, func(removed, live int) {
		metrics.ActiveSessions.Set(float64(live))
		if removed > 0 {
			s.logger.Debug("evicted idle listing sessions", zap.Int("removed", removed), zap.Int("live", live))
		}
	})

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP サーバー起動", zap.String("addr", s.addr))
		errChan <- httpServer.ListenAndServe()
	}()

	err := waitForShutdown(httpServer, errChan, s.logger)
	s.shutdown(context.Background())
	return err
}

// withCORS は許可されたオリジン情報をもとに CORS ヘッダーを付与するミドルウェアを返す。
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" || (!allowAll && len(allowed) > 0 && !originAllowed(origin, allowed)) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PATCH,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type,"+commonhttp.HeaderSession+","+commonhttp.HeaderIdempotencyKey)
			w.Header().Set("Access-Control-Expose-Headers", commonhttp.HeaderSession)
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// originAllowed は指定された Origin が許可リストに含まれるか判定する。
func originAllowed(origin string, allowed map[string]struct{}) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[origin]
	return ok
}

// requestLogger は chi の middleware.Logger 相当を zap で出力する。
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("requestId", middleware.GetReqID(r.Context())))
		})
	}
}

// healthHandler は MongoDB と Redis への疎通確認を行い、インフラ状態のみを返す。
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if s.client != nil {
			if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
				commonhttp.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{
					"status": "degraded",
					"error":  err.Error(),
				})
				return
			}
		}
		if s.guard != nil {
			if err := s.guard.Ping(ctx); err != nil {
				commonhttp.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{
					"status": "degraded",
					"error":  err.Error(),
				})
				return
			}
		}

		commonhttp.WriteJSON(s.logger, w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

// shutdown は外部接続をタイムアウト付きで閉じる。
func (s *Server) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if s.client != nil {
		if err := s.client.Disconnect(shutdownCtx); err != nil {
			s.logger.Warn("MongoDB 切断時にエラー", zap.Error(err))
		}
	}
	if s.guard != nil {
		if err := s.guard.Close(); err != nil {
			s.logger.Warn("Redis 切断時にエラー", zap.Error(err))
		}
	}
	if s.publisher != nil {
		s.publisher.Close()
	}
	_ = s.logger.Sync()
}

// waitForShutdown は ListenAndServe の終了と OS シグナルを監視し、graceful shutdown を実現する。
func waitForShutdown(httpServer *http.Server, errChan <-chan error, logger *zap.Logger) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("サーバーが異常終了", zap.Error(err))
			return err
		}
	case sig := <-sigChan:
		logger.Info("シグナルを受信。サーバー停止処理を開始します。", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			logger.Warn("サーバー停止時にエラー", zap.Error(err))
		}
	}
	return nil
}

// New は Config と Mongo クライアントを受け取り、アプリケーションサービスとハンドラを組み立てた Server を返す。
// client が nil の場合はメモリストアで動作する。
func New(cfg config.Config, client *mongo.Client) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	srv := &Server{
		logger:         logger,
		client:         client,
		sessions:       jobsapp.NewSessionRegistry(cfg.SessionIdleTTL),
		jwtConfigs:     append([]config.JWTConfig(nil), cfg.JWTConfigs...),
		jwtAudience:    cfg.JWTAudience,
		addr:           cfg.Addr,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
		sweepInterval:  cfg.SessionSweepInterval,
	}

	var (
		listings     jobsapp.ListingRepository
		applications jobsapp.ApplicationRepository
	)
	if client != nil {
		db := client.Database(cfg.MongoDatabase)
		listings = mongostore.NewListingRepository(db, cfg.JobCollection)
		applications = mongostore.NewApplicationRepository(db, cfg.ApplicationCollection)
	} else {
		listings = memory.NewListingRepository()
		applications = memory.NewApplicationRepository()
	}

	var guard jobsapp.SubmissionGuard = memory.NewSubmissionGuard(cfg.IdempotencyTTL)
	if cfg.RedisAddr != "" {
		srv.guard = redisguard.New(redisguard.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.IdempotencyTTL,
		})
		guard = srv.guard
	}

	var events jobsapp.ApplicationEvents
	if cfg.NATSURL != "" {
		publisher, err := natsevents.NewPublisher(cfg.NATSURL, cfg.NATSConnTimeout, logger)
		if err != nil {
			logger.Warn("NATS に接続できないため応募イベントを無効化します", zap.Error(err))
		} else {
			srv.publisher = publisher
			events = publisher
		}
	}

	srv.listingQueries = jobsapp.NewListingQueryService(listings, logger)
	srv.posting = jobsapp.NewPostingService(listings, logger)
	srv.retrieval = jobsapp.NewRetrievalService(listings, applications)
	srv.apply = jobsapp.NewApplyService(jobsapp.ApplyServiceConfig{
		Listings:     listings,
		Applications: applications,
		Guard:        guard,
		Events:       events,
		Logger:       logger,
	})

	return srv
}
