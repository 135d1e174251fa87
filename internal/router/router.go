package router

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	goredis "github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "pettrackr/docs"
	"pettrackr/internal/adapters/storage/filesystem"
	mem "pettrackr/internal/adapters/storage/memory"
	pg "pettrackr/internal/adapters/storage/postgres"
	rds "pettrackr/internal/adapters/storage/redis"
	"pettrackr/internal/config"
	"pettrackr/internal/domain/feeding"
	"pettrackr/internal/domain/medications"
	"pettrackr/internal/domain/owners"
	"pettrackr/internal/domain/pets"
	"pettrackr/internal/domain/sessions"
	"pettrackr/internal/domain/vetvisits"
	"pettrackr/internal/middleware"
	"pettrackr/internal/platform/logger"
	"pettrackr/internal/seed"
)

const uploadsPrefix = "/uploads"

type Options struct {
	Config *config.Config // nil => config.Default()
	Logger logger.Logger  // nil => nop

	// Opcionales: si vienen, Postgres / Redis. Si no, in-memory.
	DB    *sql.DB
	Redis *goredis.Client

	// Photos reemplaza el store en disco (tests).
	Photos pets.PhotoStore

	// Seed carga las cuentas de demo si no existen.
	Seed bool
}

type repos struct {
	owners   owners.Repository
	pets     pets.Repository
	feeding  feeding.Repository
	meds     medications.Repository
	visits   vetvisits.Repository
	sessions sessions.Repository
}

func NewRouter(opts Options) (http.Handler, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	rp := buildRepos(opts)

	photos := opts.Photos
	var uploadDir string
	if photos == nil {
		fs, err := filesystem.NewPhotoStore(cfg.Upload.Dir, uploadsPrefix)
		if err != nil {
			return nil, fmt.Errorf("photo store: %w", err)
		}
		photos = fs
		uploadDir = fs.Dir()
	}

	// Services por módulo. owners y pets se necesitan mutuamente:
	// pets consulta owners y owners borra en cascada vía pets.
	ownersSvc := owners.NewService(rp.owners, nil)
	petsSvc := pets.NewService(rp.pets, ownersSvc, photos)
	ownersSvc.SetPetRemover(petsSvc)

	feedingSvc := feeding.NewService(rp.feeding)
	medsSvc := medications.NewService(rp.meds)
	visitsSvc := vetvisits.NewService(rp.visits)
	petsSvc.AddDependent(feedingSvc, medsSvc, visitsSvc)

	sessionsSvc := sessions.NewService(rp.sessions, ownersSvc, cfg.Session.TTL)

	if opts.Seed {
		_, err := seed.Run(context.Background(), seed.Services{
			Owners:      ownersSvc,
			Pets:        petsSvc,
			Feeding:     feedingSvc,
			Medications: medsSvc,
			VetVisits:   visitsSvc,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(log))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.SessionAuth(sessionsSvc, cfg.Session.CookieName))
	r.Use(middleware.RequestLogger(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	if uploadDir != "" {
		r.Handle(uploadsPrefix+"/*", http.StripPrefix(uploadsPrefix+"/", http.FileServer(http.Dir(uploadDir))))
	}

	// Rutas públicas
	sessions.RegisterRoutes(r, sessionsSvc, sessions.CookieOptions{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.Secure,
	})
	owners.RegisterPublicRoutes(r, ownersSvc)

	// Todo lo que cuelga de un owner exige sesión del mismo owner
	r.Route("/owners/{ownerId}", func(or chi.Router) {
		or.Use(middleware.RequireAuth)
		or.Use(middleware.RequireOwner("ownerId"))

		owners.RegisterRoutes(or, ownersSvc)
		pets.RegisterRoutes(or, petsSvc, cfg.Upload.MaxBytes,
			func(pr chi.Router) { feeding.RegisterRoutes(pr, feedingSvc) },
			func(pr chi.Router) { medications.RegisterRoutes(pr, medsSvc) },
			func(pr chi.Router) { vetvisits.RegisterRoutes(pr, visitsSvc) },
		)
	})

	return r, nil
}

func buildRepos(opts Options) repos {
	var rp repos

	if db := opts.DB; db != nil {
		rp.owners = pg.NewOwnersRepo(db)
		rp.pets = pg.NewPetsRepo(db)
		rp.feeding = pg.NewFeedingRepo(db)
		rp.meds = pg.NewMedicationsRepo(db)
		rp.visits = pg.NewVetVisitsRepo(db)
	} else {
		rp.owners = mem.NewOwnerRepo()
		rp.pets = mem.NewPetRepo()
		rp.feeding = mem.NewFeedingRepo()
		rp.meds = mem.NewMedicationRepo()
		rp.visits = mem.NewVetVisitRepo()
	}

	if opts.Redis != nil {
		rp.sessions = rds.NewSessionRepo(opts.Redis)
	} else {
		rp.sessions = mem.NewSessionRepo()
	}
	return rp
}
