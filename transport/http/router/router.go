package router

import (
	"hostmaster/internal/handlers/accommodation"
	"hostmaster/internal/handlers/auth"
	"hostmaster/internal/handlers/extraservice"
	"hostmaster/internal/handlers/location"
	"hostmaster/internal/handlers/maintenance"
	"hostmaster/internal/handlers/product"
	"hostmaster/internal/handlers/reservation"
	"hostmaster/internal/handlers/review"
	"hostmaster/internal/handlers/room"
	"hostmaster/internal/handlers/roomtype"
	"hostmaster/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth          auth.Handler
	User          user.Handler
	Location      location.Handler
	Accommodation accommodation.Handler
	RoomType      roomtype.Handler
	Room          room.Handler
	ExtraService  extraservice.Handler
	Reservation   reservation.Handler
	Review        review.Handler
	Maintenance   maintenance.Handler
	Product       product.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Location.Router(routerGroup)
		r.DomainHandlers.Accommodation.Router(routerGroup)
		r.DomainHandlers.RoomType.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.ExtraService.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
		r.DomainHandlers.Review.Router(routerGroup)
		r.DomainHandlers.Maintenance.Router(routerGroup)
		r.DomainHandlers.Product.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
