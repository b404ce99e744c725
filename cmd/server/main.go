package main

import (
	"github.com/rs/zerolog/log"

	_ "github.com/lib/pq"

	"github.com/go-fin/ledger-bank/cmd/httpserver"
	"github.com/go-fin/ledger-bank/internal/middleware"
	"github.com/go-fin/ledger-bank/pkg/configpkg"
	"github.com/go-fin/ledger-bank/pkg/dbpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	conn, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to db")
	}

	server, err := httpserver.New(conn, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	if err := server.Engine.Run(config.ServerAddress); err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
