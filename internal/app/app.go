// Package app initializes every component of the service.
// app.go is the assembly point: it builds the DB pool, repositories,
// services, handlers and the router, in dependency order.
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"studyflow.app/server/internal/ai"
	"studyflow.app/server/internal/auth"
	"studyflow.app/server/internal/config"
	"studyflow.app/server/internal/db/postgres"
	"studyflow.app/server/internal/db/redisdb"
	"studyflow.app/server/internal/features/accounts"
	"studyflow.app/server/internal/features/chat"
	"studyflow.app/server/internal/features/leaderboard"
	"studyflow.app/server/internal/features/planner"
	"studyflow.app/server/internal/features/profile"
	"studyflow.app/server/internal/features/progression"
	"studyflow.app/server/internal/features/store"
	"studyflow.app/server/internal/httpapi"
	"studyflow.app/server/internal/jobs"
	"studyflow.app/server/internal/storage"
)

// App holds every long-lived component of the service.
type App struct {
	Router    chi.Router
	Scheduler *jobs.Scheduler
	DB        *pgxpool.Pool
	Redis     *redisdb.Client
	Limiter   *httpapi.RateLimiter
}

// New creates and initializes the application.
// Initialization order matters; components depend on each other.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. Database ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := runMigrations(ctx, pool); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// === 2. Redis ===
	rdb, err := redisdb.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	// === 3. Shared infrastructure ===
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	files, err := storage.NewDisk(cfg.UploadsDir, cfg.UploadsBaseURL)
	if err != nil {
		return nil, err
	}

	if cfg.GeminiAPIKey == "" {
		log.Warn("GEMINI_API_KEY is empty, tutor replies will fail")
	}
	generator := ai.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)

	// === 4. Repositories ===
	accountRepo := accounts.NewRepository(pool)
	progressionRepo := progression.NewRepository(pool)
	storeRepo := store.NewRepository(pool)
	chatRepo := chat.NewRepository(pool)
	profileRepo := profile.NewRepository(pool)
	leaderboardRepo := leaderboard.NewRepository(pool)
	plannerRepo := planner.NewRepository(pool)

	// === 5. Services ===
	accountService := accounts.NewService(accountRepo, tokens)
	progressionService := progression.NewService(progressionRepo, rdb, cfg.Location())
	storeService := store.NewService(storeRepo)
	chatService := chat.NewService(chatRepo, generator, cfg.ChatDailyLimit)
	profileService := profile.NewService(profileRepo, files)
	leaderboardService := leaderboard.NewService(leaderboardRepo, rdb, cfg.LeaderboardSize)
	plannerService := planner.NewService(plannerRepo)

	// === 6. Handlers ===
	accountHandler := accounts.NewHandler(accountService)
	progressionHandler := progression.NewHandler(progressionService)
	storeHandler := store.NewHandler(storeService)
	chatHandler := chat.NewHandler(chatService)
	profileHandler := profile.NewHandler(profileService, cfg.UploadsMaxBytes)
	leaderboardHandler := leaderboard.NewHandler(leaderboardService)
	plannerHandler := planner.NewHandler(plannerService)

	// === 7. Router ===
	limiter := httpapi.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)

	r := chi.NewRouter()
	r.Use(httpapi.Recovery)
	r.Use(httpapi.RequestLogger)
	r.Use(httpapi.CORS(cfg.CORSOrigin))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httpapi.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Public auth endpoints. No identity exists yet, so the limiter keys
	// these by remote IP.
	r.Group(func(pub chi.Router) {
		pub.Use(limiter.Middleware)
		accountHandler.RegisterRoutes(pub)
	})

	// Uploaded files, served as-is.
	fileServer := http.StripPrefix(cfg.UploadsBaseURL+"/", http.FileServer(http.Dir(files.Root())))
	r.Get(cfg.UploadsBaseURL+"/*", fileServer.ServeHTTP)

	// Everything under /api requires a valid access token. The limiter sits
	// after auth so the quota follows the user ID, not the client address.
	r.Route("/api", func(api chi.Router) {
		api.Use(httpapi.RequireAuth(tokens))
		api.Use(limiter.Middleware)
		progressionHandler.RegisterRoutes(api)
		storeHandler.RegisterRoutes(api)
		chatHandler.RegisterRoutes(api)
		profileHandler.RegisterRoutes(api)
		leaderboardHandler.RegisterRoutes(api)
		plannerHandler.RegisterRoutes(api)
	})

	// === 8. Job scheduler ===
	scheduler := jobs.NewScheduler(cfg.Location(), leaderboardService, profileRepo, files, cfg.UploadsRetention)

	return &App{
		Router:    r,
		Scheduler: scheduler,
		DB:        pool,
		Redis:     rdb,
		Limiter:   limiter,
	}, nil
}

// runMigrations applies every SQL migration in order.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if err := postgres.EnsureMigrationTable(ctx, pool); err != nil {
		return err
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migration001Profiles},
		{2, migration002Subjects},
		{3, migration003Sessions},
		{4, migration004Tasks},
		{5, migration005Chat},
		{6, migration006Store},
	}

	for _, m := range migrations {
		if err := postgres.ExecMigrationSQL(ctx, pool, m.version, m.sql); err != nil {
			return fmt.Errorf("migration %d: %w", m.version, err)
		}
		log.Infof("Migration %d applied", m.version)
	}

	return nil
}

// SQL migrations are embedded in code to keep deploys to a single binary.

var migration001Profiles = `
CREATE TABLE IF NOT EXISTS profiles (
    id UUID PRIMARY KEY,
    email VARCHAR(255) UNIQUE NOT NULL,
    full_name VARCHAR(255) NOT NULL,
    password_hash VARCHAR(255) NOT NULL,
    avatar_url TEXT,
    xp BIGINT NOT NULL DEFAULT 0,
    lifetime_xp BIGINT NOT NULL DEFAULT 0,
    level INTEGER NOT NULL DEFAULT 1,
    streak INTEGER NOT NULL DEFAULT 0,
    inventory TEXT[] NOT NULL DEFAULT '{}',
    is_pro BOOLEAN NOT NULL DEFAULT FALSE,
    daily_message_count INTEGER NOT NULL DEFAULT 0,
    daily_count_date DATE,
    preferences JSONB NOT NULL DEFAULT '{}',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_profiles_email ON profiles(email);
CREATE INDEX IF NOT EXISTS idx_profiles_lifetime_xp ON profiles(lifetime_xp DESC);
`

var migration002Subjects = `
CREATE TABLE IF NOT EXISTS subjects (
    id UUID PRIMARY KEY,
    user_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
    name VARCHAR(255) NOT NULL,
    color VARCHAR(32) NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_subjects_user_id ON subjects(user_id);
`

var migration003Sessions = `
CREATE TABLE IF NOT EXISTS study_sessions (
    id UUID PRIMARY KEY,
    user_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
    subject_id UUID REFERENCES subjects(id) ON DELETE SET NULL,
    duration_minutes DOUBLE PRECISION NOT NULL,
    started_at TIMESTAMPTZ NOT NULL,
    completed BOOLEAN NOT NULL DEFAULT TRUE
);
CREATE INDEX IF NOT EXISTS idx_sessions_user_started ON study_sessions(user_id, started_at DESC);
`

var migration004Tasks = `
CREATE TABLE IF NOT EXISTS tasks (
    id UUID PRIMARY KEY,
    user_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
    subject_id UUID REFERENCES subjects(id) ON DELETE CASCADE,
    title VARCHAR(500) NOT NULL,
    priority VARCHAR(16) NOT NULL DEFAULT 'medium',
    due_date TIMESTAMPTZ,
    completed BOOLEAN NOT NULL DEFAULT FALSE,
    completed_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_tasks_user_id ON tasks(user_id);
CREATE INDEX IF NOT EXISTS idx_tasks_subject_id ON tasks(subject_id);
`

var migration005Chat = `
CREATE TABLE IF NOT EXISTS chat_messages (
    id UUID PRIMARY KEY,
    user_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
    role VARCHAR(16) NOT NULL,
    content TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_chat_user_created ON chat_messages(user_id, created_at);
`

var migration006Store = `
CREATE TABLE IF NOT EXISTS store_items (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    name VARCHAR(255) UNIQUE NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    price BIGINT NOT NULL,
    rarity VARCHAR(16) NOT NULL DEFAULT 'common',
    image_url TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
INSERT INTO store_items (name, description, price, rarity) VALUES
    ('Midnight Theme', 'A dark indigo look for late-night sessions', 200, 'common'),
    ('Forest Theme', 'Calm greens for deep focus', 200, 'common'),
    ('Focus Fox', 'A fox companion for your dashboard', 500, 'rare'),
    ('Night Owl', 'An owl companion that studies when you do', 500, 'rare'),
    ('Golden Frame', 'A gilded border for your avatar', 1200, 'epic'),
    ('Aurora Theme', 'Animated polar lights background', 2500, 'legendary')
ON CONFLICT (name) DO NOTHING;
`
