package v1

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/semaphore"

	"github.com/bionetlab/stringviz/internal/profile"
	"github.com/bionetlab/stringviz/server/middleware"
	"github.com/bionetlab/stringviz/server/service/network"
	"github.com/bionetlab/stringviz/store"
)

// maxConcurrentBuilds bounds simultaneous graph constructions. Each build is
// synchronous and store-bound; the bound keeps a burst of expansions from
// piling up on the database file.
const maxConcurrentBuilds = 4

type APIV1Service struct {
	Profile        *profile.Profile
	Store          *store.Store
	NetworkService *network.Service

	logger         *slog.Logger
	rateLimiter    *middleware.RateLimiter
	buildSemaphore *semaphore.Weighted
}

// NewAPIV1Service creates the v1 API service.
func NewAPIV1Service(profile *profile.Profile, st *store.Store, logger *slog.Logger) *APIV1Service {
	return &APIV1Service{
		Profile: profile,
		Store:   st,
		NetworkService: network.NewService(st,
			network.WithAliasLimit(profile.AliasCandidateLimit),
		),
		logger:         logger,
		rateLimiter:    middleware.NewRateLimiter(10, 20),
		buildSemaphore: semaphore.NewWeighted(maxConcurrentBuilds),
	}
}

// RegisterRoutes registers the v1 routes with the given Echo instance.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", s.healthz)

	group := e.Group("/api/v1", s.rateLimiter.Middleware())
	group.POST("/resolve", s.resolveIdentifiers)
	group.POST("/network", s.buildNetwork)
	group.POST("/network/export", s.exportNetwork)
	group.GET("/status", s.status)
}
