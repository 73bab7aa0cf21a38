package app

import (
	"net/http"

	"github.com/kegliz/fta/internal/server/router"
)

func (a *appServer) routes() []*router.Route {
	return []*router.Route{
		{
			Name:        "root",
			Method:      http.MethodGet,
			Pattern:     "/",
			HandlerFunc: a.RootHandler,
		},
		{
			Name:        "health",
			Method:      http.MethodGet,
			Pattern:     "/health",
			HandlerFunc: a.HealthHandler,
		},
		{
			Name:        "api.trees.create",
			Method:      http.MethodPost,
			Pattern:     "/api/trees",
			HandlerFunc: a.CreateTree,
		},
		{
			Name:        "api.trees.get",
			Method:      http.MethodGet,
			Pattern:     "/api/trees/:id",
			HandlerFunc: a.GetTree,
		},
		{
			Name:        "api.trees.analyze",
			Method:      http.MethodPost,
			Pattern:     "/api/trees/:id/analyze",
			HandlerFunc: a.AnalyzeTree,
		},
		{
			Name:        "api.trees.result",
			Method:      http.MethodGet,
			Pattern:     "/api/trees/:id/result",
			HandlerFunc: a.GetResult,
		},
	}
}
