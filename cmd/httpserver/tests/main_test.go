//go:build integration

package tests

import (
	"log"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-fin/ledger-bank/cmd/httpserver"
	"github.com/go-fin/ledger-bank/internal/middleware"
	"github.com/go-fin/ledger-bank/pkg/configpkg"
	"github.com/go-fin/ledger-bank/pkg/dbpkg"

	_ "github.com/lib/pq"
)

var server *httpserver.Server

// TestMain calls testMain and passes the returned exit code to os.Exit(). The reason
// that TestMain is basically a wrapper around testMain is because os.Exit() does not
// respect deferred functions, so this configuration allows for a deferred function.
func TestMain(m *testing.M) {
	os.Exit(testMain(m))
}

func testMain(m *testing.M) int {
	config, err := configpkg.Load("../../../configs")
	if err != nil {
		log.Println("cannot load config:", err)
		return 1
	}

	zerolog.SetGlobalLevel(zerolog.FatalLevel)
	logger := middleware.CreateLogger(config)

	conn, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot setup database")
	}

	gin.SetMode(gin.ReleaseMode)

	server, err = httpserver.New(conn, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}

	return m.Run()
}
