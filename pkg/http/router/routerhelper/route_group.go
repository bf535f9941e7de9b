package routerhelper

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// RouteGroup. httprouter routes sharing a path prefix
type RouteGroup struct {
	router *httprouter.Router
	prefix string
}

func NewRouteGroup(router *httprouter.Router, prefix string) *RouteGroup {
	return &RouteGroup{router: router, prefix: prefix}
}

func (g *RouteGroup) Group(path string) *RouteGroup {
	return NewRouteGroup(g.router, g.prefix+path)
}

func (g *RouteGroup) Handle(method, path string, handle httprouter.Handle) {
	g.router.Handle(method, g.prefix+path, handle)
}

func (g *RouteGroup) GET(path string, handle httprouter.Handle) {
	g.Handle(http.MethodGet, path, handle)
}

func (g *RouteGroup) POST(path string, handle httprouter.Handle) {
	g.Handle(http.MethodPost, path, handle)
}
