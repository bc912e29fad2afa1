//go:build wireinject
// +build wireinject

package di

import (
	"hostmaster/config"
	"hostmaster/infras/jwt"
	"hostmaster/infras/kafka"
	"hostmaster/infras/mailer"
	"hostmaster/infras/otel"
	"hostmaster/infras/postgres"
	"hostmaster/infras/redis"
	"hostmaster/infras/scheduler"
	"hostmaster/permissions"
	"hostmaster/shared/cache"
	"hostmaster/transport/http"
	"hostmaster/transport/http/middleware"
	"hostmaster/transport/http/router"
	"hostmaster/transport/worker"

	"github.com/google/wire"

	accommodationRepository "hostmaster/internal/domains/accommodation/repository"
	accommodationService "hostmaster/internal/domains/accommodation/service"
	authService "hostmaster/internal/domains/auth/service"
	extraServiceRepository "hostmaster/internal/domains/extraservice/repository"
	extraServiceService "hostmaster/internal/domains/extraservice/service"
	inventoryRepository "hostmaster/internal/domains/inventory/repository"
	inventoryService "hostmaster/internal/domains/inventory/service"
	locationRepository "hostmaster/internal/domains/location/repository"
	locationService "hostmaster/internal/domains/location/service"
	maintenanceRepository "hostmaster/internal/domains/maintenance/repository"
	maintenanceService "hostmaster/internal/domains/maintenance/service"
	notificationService "hostmaster/internal/domains/notification/service"
	productRepository "hostmaster/internal/domains/product/repository"
	productService "hostmaster/internal/domains/product/service"
	reservationRepository "hostmaster/internal/domains/reservation/repository"
	reservationService "hostmaster/internal/domains/reservation/service"
	reviewRepository "hostmaster/internal/domains/review/repository"
	reviewService "hostmaster/internal/domains/review/service"
	roomRepository "hostmaster/internal/domains/room/repository"
	roomService "hostmaster/internal/domains/room/service"
	roomTypeRepository "hostmaster/internal/domains/roomtype/repository"
	roomTypeService "hostmaster/internal/domains/roomtype/service"
	userRepository "hostmaster/internal/domains/user/repository"
	userService "hostmaster/internal/domains/user/service"

	accommodationHandler "hostmaster/internal/handlers/accommodation"
	authHandler "hostmaster/internal/handlers/auth"
	extraServiceHandler "hostmaster/internal/handlers/extraservice"
	locationHandler "hostmaster/internal/handlers/location"
	maintenanceHandler "hostmaster/internal/handlers/maintenance"
	productHandler "hostmaster/internal/handlers/product"
	reservationHandler "hostmaster/internal/handlers/reservation"
	reviewHandler "hostmaster/internal/handlers/review"
	roomHandler "hostmaster/internal/handlers/room"
	roomTypeHandler "hostmaster/internal/handlers/roomtype"
	userHandler "hostmaster/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	mailer.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var policies = wire.NewSet(
	permissions.NewPolicy,
	wire.Bind(new(permissions.Membership), new(accommodationRepository.Member)),
)

var repositories = wire.NewSet(
	userRepository.New,
	locationRepository.New,
	accommodationRepository.New,
	accommodationRepository.NewMember,
	roomTypeRepository.New,
	roomRepository.New,
	inventoryRepository.New,
	extraServiceRepository.New,
	reviewRepository.New,
	reservationRepository.New,
	reservationRepository.NewDetail,
	reservationRepository.NewExtraService,
	maintenanceRepository.New,
	productRepository.New,
	productRepository.NewRoomProduct,
)

var services = wire.NewSet(
	authService.New,
	userService.New,
	locationService.New,
	accommodationService.New,
	roomTypeService.New,
	roomService.New,
	inventoryService.New,
	extraServiceService.New,
	reviewService.New,
	reservationService.New,
	notificationService.New,
	maintenanceService.New,
	productService.New,
	productService.NewRoomStock,
)

var domains = wire.NewSet(
	policies,
	repositories,
	services,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	locationHandler.New,
	accommodationHandler.New,
	roomTypeHandler.New,
	roomHandler.New,
	extraServiceHandler.New,
	reservationHandler.New,
	reviewHandler.New,
	maintenanceHandler.New,
	productHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeWorker() *worker.Worker {
	wire.Build(
		configurations,
		infrastructures,
		reservationRepository.NewDetail,
		notificationService.New,
		scheduler.New,
		worker.New,
	)

	return &worker.Worker{}
}
