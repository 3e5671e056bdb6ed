// Package vaadbayit is the Go client SDK for the residential-community app:
// help requests, disturbance reports with provider assignments, the building
// directory (providers, documents, rules, updates), house-fee payments,
// profiles, and the privileged admin operations. All state lives in the
// remote backend; this package wires the client stack together.
package vaadbayit

import (
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"vaadbayit/config"
	"vaadbayit/logger"
	"vaadbayit/repository"
	"vaadbayit/service"
	"vaadbayit/store"
	"vaadbayit/supabase"
)

// App the fully wired client: auth plus one service per feature area.
type App struct {
	Config *config.Config
	Logger *zap.Logger

	Auth    *supabase.Auth
	Storage *supabase.Storage

	Requests    *service.RequestService
	Assignments *service.AssignmentService
	Providers   *service.ProviderService
	Documents   *service.DocumentService
	Rules       *service.RulesService
	Updates     *service.UpdateService
	Payments    *service.PaymentService
	Profiles    *service.ProfileService
	Admin       *service.AdminService
}

// New builds an App from cfg. Pass config.Load() to read the environment.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		cfg = config.Load()
	}
	if cfg.Supabase.URL == "" {
		return nil, fmt.Errorf("supabase url is required")
	}
	if cfg.Supabase.AnonKey == "" {
		return nil, fmt.Errorf("supabase anon key is required")
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "vaadbayit")
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	var kv store.KV
	if cfg.Redis.Enabled {
		kv = store.NewRedisKV(redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}))
	} else {
		kv = store.NewMemoryKV()
	}

	auth := supabase.NewAuth(cfg.Supabase, kv, log)

	client := supabase.NewClient(cfg.Supabase, log)
	client.SetTokenSource(auth)

	storage := supabase.NewStorage(cfg.Supabase, log)
	storage.SetTokenSource(auth)

	requestsRepo := repository.NewSupabaseRequestsRepo(client)
	assignmentsRepo := repository.NewSupabaseAssignmentsRepo(client)
	providersRepo := repository.NewSupabaseProvidersRepo(client)
	documentsRepo := repository.NewSupabaseDocumentsRepo(client)
	rulesRepo := repository.NewSupabaseRulesRepo(client)
	updatesRepo := repository.NewSupabaseUpdatesRepo(client)
	profilesRepo := repository.NewSupabaseProfilesRepo(client)
	paymentsRepo := repository.NewSupabasePaymentsRepo(client)
	adminRepo := repository.NewSupabaseAdminRepo(client)

	return &App{
		Config:  cfg,
		Logger:  log,
		Auth:    auth,
		Storage: storage,

		Requests:    service.NewRequestService(requestsRepo, auth, log),
		Assignments: service.NewAssignmentService(assignmentsRepo, auth, cfg.Assignments.StrictTransitions, log),
		Providers:   service.NewProviderService(providersRepo, auth, log),
		Documents:   service.NewDocumentService(documentsRepo, storage, auth, log),
		Rules:       service.NewRulesService(rulesRepo, auth, log),
		Updates:     service.NewUpdateService(updatesRepo, auth, log),
		Payments:    service.NewPaymentService(paymentsRepo, profilesRepo, auth, log),
		Profiles:    service.NewProfileService(profilesRepo, auth, log),
		Admin:       service.NewAdminService(adminRepo, log),
	}, nil
}
