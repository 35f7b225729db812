package contracts

import "github.com/julienschmidt/httprouter"

type Handler interface {
	RegisterRoutes(*httprouter.Router)
}

// HandlerFunc adapts a bare registration function to Handler, for
// handlers whose RegisterRoutes needs extra wiring arguments.
type HandlerFunc func(*httprouter.Router)

func (f HandlerFunc) RegisterRoutes(router *httprouter.Router) {
	f(router)
}
