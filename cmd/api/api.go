package main

import (
	"net/http"
	"time"

	"github.com/agrodata/crianza_projection/internal/logger"
	"github.com/agrodata/crianza_projection/internal/predictor"
	"github.com/agrodata/crianza_projection/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type application struct {
	config    config
	store     store.Storage
	predictor *predictor.Service
	appLogger *logger.Logger
}

type config struct {
	addr      string
	modelPath string
	db        dbConfig
}

type dbConfig struct {
	addr         string
	maxOpenConns int
	maxIdleConns int
	maxIdleTime  string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		r.Route("/predict", func(r chi.Router) {
			r.Post("/", app.handlePredict)
			r.Post("/batch", app.handlePredictBatch)
		})
		r.Route("/runs", func(r chi.Router) {
			r.Get("/history", app.handleGetRunHistory)
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 120,
		ReadTimeout:  time.Second * 40,
		IdleTimeout:  time.Minute,
	}

	app.appLogger.Info("Main", "Server started on %s", app.config.addr)
	return srv.ListenAndServe()
}
