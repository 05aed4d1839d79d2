package main

import (
	"context"
	"time"

	"github.com/jhoicas/Bodega-api/internal/bootstrap"
	"github.com/jhoicas/Bodega-api/pkg/config"
	"github.com/jhoicas/Bodega-api/pkg/logger"
)

// Carga los datos de ejemplo en el almacenamiento configurado si el catálogo está vacío.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "bodega-seed"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	c, err := bootstrap.Build(ctx, cfg, log, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer c.Close()

	seeded, err := c.Seeder.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	if !seeded {
		log.Info().Msg("el catálogo ya tiene datos; nada que hacer")
	}
}
