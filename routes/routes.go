package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/euchre-tournament/docs"
	"github.com/Dosada05/euchre-tournament/handlers"
	"github.com/Dosada05/euchre-tournament/middleware"
	"github.com/Dosada05/euchre-tournament/services"
)

type Options struct {
	JWTSecret   string
	CORSOrigins []string
}

// SetupRoutes mounts the JSON API under /api, the websocket feed under /ws
// and the API browser under /swagger. Reads are public; every mutation
// requires an admin token.
func SetupRoutes(
	router chi.Router,
	opts Options,
	authHandler *handlers.AuthHandler,
	tournamentHandler *handlers.TournamentHandler,
	scheduleHandler *handlers.ScheduleHandler,
	gameHandler *handlers.GameHandler,
	standingsHandler *handlers.StandingsHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)

	admin := requireAdmin(opts.JWTSecret)

	router.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)

		r.Route("/tournaments", func(r chi.Router) {
			r.Get("/", tournamentHandler.ListHandler)
			r.With(admin...).Post("/", tournamentHandler.CreateHandler)

			r.Route("/{tournamentID}", func(r chi.Router) {
				r.Get("/", tournamentHandler.GetByIDHandler)
				r.Get("/players", tournamentHandler.ListPlayersHandler)
				r.Get("/teams", tournamentHandler.ListTeamsHandler)
				r.Get("/stages/{stage}/games", scheduleHandler.ListGamesHandler)
				r.Get("/stages/{stage}/standings", standingsHandler.ListHandler)

				r.Group(func(r chi.Router) {
					r.Use(admin...)
					r.Post("/players", tournamentHandler.AddPlayerHandler)
					r.Post("/teams", tournamentHandler.AddTeamHandler)
					r.Post("/stages/{stage}/schedule", scheduleHandler.GenerateHandler)
					r.Post("/stages/{stage}/standings", standingsHandler.TabulateHandler)
				})
			})
		})

		r.Route("/games/{gameID}", func(r chi.Router) {
			r.Get("/", gameHandler.GetByIDHandler)
			r.With(admin...).Put("/score", gameHandler.SubmitScoreHandler)
		})

		r.With(admin...).Put("/standings/{standingID}/rank-adj", standingsHandler.SetRankAdjHandler)
	})
}

func requireAdmin(secret string) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.Authenticate(secret),
		middleware.Authorize(services.AdminRole),
	}
}
