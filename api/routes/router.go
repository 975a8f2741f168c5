package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fleetline/dispatch-backend/api/controllers"
	"github.com/fleetline/dispatch-backend/api/middleware"
	internalagents "github.com/fleetline/dispatch-backend/internal/agents"
	"github.com/fleetline/dispatch-backend/internal/cascade"
	internaljobs "github.com/fleetline/dispatch-backend/internal/jobs"
	internaloffers "github.com/fleetline/dispatch-backend/internal/offers"
	"github.com/fleetline/dispatch-backend/pkg/config"
	"github.com/fleetline/dispatch-backend/pkg/logger"
	"github.com/fleetline/dispatch-backend/pkg/redis"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Config     *config.Config
	Logger     *logger.Logger
	DBPinger   controllers.Pinger
	Redis      *redis.Client
	AgentsSvc  internalagents.Service
	JobsSvc    internaljobs.Service
	JobsRepo   internaljobs.Repository
	OffersRepo internaloffers.Repository
	CascadeSvc cascade.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	var redisPinger controllers.Pinger
	var idempotencyStore redis.IdempotencyStore
	if deps.Redis != nil {
		redisPinger = deps.Redis
		idempotencyStore = deps.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DBPinger, redisPinger))
	})

	// Coordinator-facing approval link; HTML, not the JSON envelope.
	r.Get("/approve", controllers.ApproveJob(deps.JobsSvc, logg))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Idempotency(idempotencyStore, logg))

		r.Post("/agents/sync", controllers.SyncAgents(deps.AgentsSvc, logg))

		r.Post("/jobs", controllers.CreateJob(deps.JobsSvc, logg))
		r.Get("/jobs/{jobId}", controllers.GetJob(deps.JobsSvc, logg))
		r.Post("/jobs/{jobId}/start-offers", controllers.StartOffers(deps.CascadeSvc, logg))

		r.Get("/offers/{offerId}", controllers.GetOffer(deps.OffersRepo, deps.JobsRepo, logg))
		r.Post("/tick", controllers.Tick(deps.CascadeSvc, logg))
		r.Post("/webhooks/driver-response", controllers.DriverResponse(deps.CascadeSvc, logg))
	})

	return r
}
