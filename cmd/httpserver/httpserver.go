// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-fin/ledger-bank/internal/accountdelivery"
	"github.com/go-fin/ledger-bank/internal/accountrepo"
	"github.com/go-fin/ledger-bank/internal/accountservice"
	"github.com/go-fin/ledger-bank/internal/ledgerdelivery"
	"github.com/go-fin/ledger-bank/internal/ledgerrepo"
	"github.com/go-fin/ledger-bank/internal/ledgerservice"
	"github.com/go-fin/ledger-bank/internal/middleware"
	"github.com/go-fin/ledger-bank/pkg/configpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	accountRepo := accountrepo.NewRepoPGS(conn)
	ledgerRepo := ledgerrepo.NewRepoPGS(conn)

	accountService := accountservice.New(accountRepo)
	ledgerService := ledgerservice.New(ledgerRepo, accountService)

	accountHandler := accountdelivery.NewHandler(accountService)
	ledgerHandler := ledgerdelivery.NewHandler(ledgerService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/accounts", accountHandler.Create)
	engine.GET("/accounts/:id", accountHandler.Get)
	engine.GET("/accounts", accountHandler.List)
	engine.DELETE("/accounts/:id", accountHandler.Delete)

	engine.POST("/accounts/:id/deposit", ledgerHandler.Deposit)
	engine.POST("/accounts/:id/withdraw", ledgerHandler.Withdraw)
	engine.GET("/accounts/:id/transactions", ledgerHandler.ListTransactions)

	engine.POST("/transfers", ledgerHandler.Transfer)

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
