package router

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	httpSwagger "github.com/swaggo/http-swagger"

	mem "zoo-registry/internal/adapters/storage/memory"
	pg "zoo-registry/internal/adapters/storage/postgres"
	_ "zoo-registry/docs"
	"zoo-registry/internal/domain/animals"
	"zoo-registry/internal/domain/zoos"
	"zoo-registry/internal/middleware"
	"zoo-registry/internal/platform/logger"
	"zoo-registry/internal/platform/mail"
	"zoo-registry/internal/ports/auth"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sqlx.DB

	// Opcional: si es nil se usa el Noop.
	Mailer mail.Mailer

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "If-Match", "If-None-Match", "X-Debug-User-ID"},
		ExposedHeaders: []string{"ETag", "Location"},
		MaxAge:         300,
	}))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	log := opts.Logger
	if log == nil {
		log = logger.New(logger.Options{App: "zoo-registry"})
	}

	var (
		zooRepo    zoos.Repository
		animalRepo animals.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err != nil {
				log.Error("postgres unavailable, falling back to in-memory storage", map[string]any{
					"error": err.Error(),
				})
			} else {
				db = opened
			}
		}
	}

	if db != nil {
		zooRepo = pg.NewZoosRepo(db)
		animalRepo = pg.NewAnimalsRepo(db)
	} else {
		// Los repos in-memory comparten el Store: el borrado de un zoo
		// tiene que arrastrar a sus animales también acá.
		store := mem.NewStore()
		zooRepo = store.Zoos()
		animalRepo = store.Animals()
	}

	mailer := opts.Mailer
	if mailer == nil {
		mailer = mail.Noop{}
	}

	// Services por módulo
	zooRead := zoos.NewReadService(zooRepo)
	zooWrite := zoos.NewWriteService(zooRepo, zooRead, mailer, log)
	animalRead := animals.NewReadService(animalRepo)
	animalWrite := animals.NewWriteService(animalRepo, animalRead)

	// Rutas por módulo
	zoos.RegisterRoutes(r, zooRead, zooWrite)
	animals.RegisterRoutes(r, animalRead, animalWrite)

	return r
}
