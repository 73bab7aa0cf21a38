// Package app wires the fault-tree analysis engine (fta/builder,
// fta/analyze) behind a gin REST surface, following the teacher's
// app.go shape: a private appServer implementing server.Server, built
// by NewServer from a *config.Config plus a version string.
package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kegliz/fta/internal/config"
	"github.com/kegliz/fta/internal/logger"
	"github.com/kegliz/fta/internal/server/router"
	"github.com/kegliz/fta/internal/store"

	"github.com/kegliz/fta/internal/server"
)

type (
	// ServerOptions configures a new app server (spec §6's external
	// interface as exposed over HTTP, plus ambient version info).
	ServerOptions struct {
		C       *config.Config
		Version string
	}

	appServer struct {
		logger  *logger.Logger
		router  *router.Router
		store   store.Store
		cfg     *config.Config
		version string
	}

	appServerOptions struct {
		logger  *logger.Logger
		router  *router.Router
		store   store.Store
		cfg     *config.Config
		version string
	}
)

// newAppServer creates a new appServer.
func newAppServer(options appServerOptions) *appServer {
	a := &appServer{
		logger:  options.logger,
		router:  options.router,
		store:   options.store,
		cfg:     options.cfg,
		version: options.version,
	}
	a.router.SetRoutes(a.routes())
	return a
}

// Listen implements server.Server.
func (a *appServer) Listen(port int, localOnly bool) error {
	a.logger.Debug().Str("version", a.version).Msg("debug fault-tree analysis server")
	a.logger.Info().
		Int("port", port).
		Bool("localOnly", localOnly).
		Msg("starting fault-tree analysis service")
	return a.router.Start(port, localOnly)
}

// Shutdown implements server.Server.
func (a *appServer) Shutdown(ctx context.Context) error {
	return a.router.Shutdown(ctx)
}

// NewServer builds the REST front-end for the analysis engine: a gin
// router wired to handlers that submit fault-tree models
// (fta/builder), seal/validate them (fta/validate, via Seal), run
// analyses (fta/analyze), and read back stored results
// (internal/store).
func NewServer(options ServerOptions) (server.Server, error) {
	l, r := server.NewLoggerAndRouter(server.EngineOptions{
		Debug: options.C.GetBool("debug"),
	})
	app := newAppServer(appServerOptions{
		logger:  l,
		router:  r,
		store:   store.New(),
		cfg:     options.C,
		version: options.Version,
	})

	return app, nil
}

func (a *appServer) getLoggerFromContext(c *gin.Context) (*logger.Logger, error) {
	if loggerInstance, ok := c.Get("logger"); ok {
		if loggerInstance, ok := loggerInstance.(*logger.Logger); ok {
			return loggerInstance, nil
		}
	}
	err := errors.New("logger not found in context")
	a.logger.Error().Err(err).Send()
	c.String(http.StatusInternalServerError, internalServerErrorMsg)
	return nil, err
}
