package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	zero "github.com/rs/zerolog/log"
	"github.com/socialdistribution/node/internal/client"
	"github.com/socialdistribution/node/internal/config"
	db "github.com/socialdistribution/node/internal/db/impl"
	"github.com/socialdistribution/node/internal/federation"
	"github.com/socialdistribution/node/internal/initialization"
	"github.com/socialdistribution/node/internal/queue"
	"github.com/socialdistribution/node/internal/web"

	_ "github.com/mattn/go-sqlite3"
)

func main() {
	zero.Logger = zero.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	config, err := config.ReadConfig()
	if err != nil {
		log.Fatal(err)
	}
	if config.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	d, err := initialization.OpenDB(config.DbUrl)
	if err != nil {
		log.Fatal(err)
	}
	zero.Info().Msg("database connection established")

	if os.Getenv("SETUP") != "" {
		err = initialization.SetupDB(&config, d, config.MigrationsFolder, config.DbUrl)
		if err != nil {
			log.Fatal(err)
		}
	}

	q, err := initialization.InitQueue(&config)
	if err != nil {
		zero.Fatal().Err(err).Msg("unable to open the task queue database")
		os.Exit(1)
	}

	dd := db.New(config, d)
	peerClient := client.New(config.PeerTimeout)
	fed := federation.New(config, dd, peerClient)
	tasks := queue.New(context.Background(), fed, q)

	handler := web.New(&config, dd, fed, tasks)
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	if config.Debug {
		router.Use(middleware.Logger)
	}
	handler.Mount(router)

	s := &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Port),
		Handler: router,
	}

	zero.Info().Uint16("port", config.Port).Str("domain", config.Domain).Msg("started server")
	err = s.ListenAndServe()
	if err != nil {
		log.Fatal(err)
	}
}
