package api

import (
	"net/http"

	"github.com/banachtech/digicall/payoff"
	"github.com/banachtech/digicall/pricer"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

//go:generate mockgen -package mockapi -destination mock/quoter.go github.com/banachtech/digicall/api Quoter

// Quoter prices a contract. *pricer.Engine satisfies it.
type Quoter interface {
	Quote(opt payoff.Digital, m pricer.Method) (pricer.Quote, error)
}

// Server serves HTTP requests for our digital option pricer.
type Server struct {
	quoter Quoter
	logger zerolog.Logger
	router *gin.Engine
}

// NewServer creates a new HTTP server and set up routing.
func NewServer(quoter Quoter, logger zerolog.Logger) *Server {
	server := &Server{quoter: quoter, logger: logger}

	server.setupRouter()
	return server
}

func (server *Server) setupRouter() {
	router := gin.New()
	router.Use(gin.Recovery(), server.requestID, server.accessLog)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	v1 := router.Group("/v1")
	v1.POST("/pricer", server.pricer)
	server.router = router
}

// Handler exposes the router, e.g. for an http.Server with timeouts.
func (server *Server) Handler() http.Handler {
	return server.router
}

// Start runs the HTTP server on a specific address.
func (server *Server) Start(address string) error {
	return server.router.Run(address)
}

func errorResponse(err error) gin.H {
	return gin.H{"error": err.Error()}
}
