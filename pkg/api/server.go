package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/transitrouter/pkg/api/routes"
	"github.com/travigo/transitrouter/pkg/keystations"
	"github.com/travigo/transitrouter/pkg/routejobs"
	"github.com/travigo/transitrouter/pkg/services"
)

// NewApp builds the web API. jobs may be nil when Redis is not configured.
func NewApp(svc *services.Services, jobs *routejobs.Queue, tracker *keystations.Tracker) *fiber.App {
	webApp := fiber.New(fiber.Config{
		UnescapePath: true,
	})
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.PlannerRouter(group.Group("/route"), svc.Engine)
	routes.RouteJobsRouter(group.Group("/route_jobs"), jobs)

	routes.LocationsRouter(group.Group("/locations"), svc.Transport, svc.Autocomplete)
	routes.ProvidersRouter(group.Group("/providers"), svc.Config.HomeProvider, svc.Providers)
	routes.KeyStationsRouter(group.Group("/key_stations"), tracker)
	routes.BlacklistRouter(group.Group("/blacklist"), svc.Blacklist)

	return webApp
}

func SetupServer(listen string, svc *services.Services, jobs *routejobs.Queue, tracker *keystations.Tracker) error {
	return NewApp(svc, jobs, tracker).Listen(listen)
}
