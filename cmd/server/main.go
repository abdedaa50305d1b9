package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/rami151/laboissimlocal-sub000/internal/config"
	"github.com/rami151/laboissimlocal-sub000/internal/database"
	"github.com/rami151/laboissimlocal-sub000/internal/handler"
	"github.com/rami151/laboissimlocal-sub000/internal/queue"
	"github.com/rami151/laboissimlocal-sub000/internal/repository"
	"github.com/rami151/laboissimlocal-sub000/internal/router"
)

func main() {
	// .env is optional; real environments export variables directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.LoadServer()

	// With DB_HOST set the identity store is MySQL; otherwise the server
	// runs fully in memory with the seeded demo accounts.
	var identities repository.IdentityRepo
	if cfg.DBHost != "" {
		db, err := database.Open(cfg)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		defer db.Close()
		identities = repository.NewMySQLIdentityRepo(db, cfg.BcryptCost)
		log.Printf("identity store: mysql (%s/%s)", cfg.DBHost, cfg.DBName)
	} else {
		identities = repository.NewMemoryIdentityRepo(cfg.BcryptCost)
		log.Printf("identity store: in-memory demo accounts")
	}

	profiles := repository.NewProfileRepo()
	projects := repository.NewProjectRepo()
	publications := repository.NewPublicationRepo()
	files := repository.NewFileRepo()
	content := repository.NewContentRepo()

	// Events are best effort: a nil publisher drops them when no broker is
	// configured, and the consumer only starts when one is.
	var events *queue.Publisher
	if cfg.AMQPURL != "" {
		events = queue.NewPublisher(cfg.AMQPURL)
		go func() {
			if err := queue.StartNotificationConsumer(cfg.AMQPURL); err != nil {
				log.Printf("notification consumer stopped: %v", err)
			}
		}()
	}

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAPI(e, router.Handlers{
		Auth:         handler.NewAuthHandler(cfg, identities, profiles),
		Users:        handler.NewUserHandler(identities, profiles, events),
		Projects:     handler.NewProjectHandler(identities, projects, events),
		Publications: handler.NewPublicationHandler(identities, publications),
		Files:        handler.NewFileHandler(identities, files),
		Content:      handler.NewContentHandler(content),
	}, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
