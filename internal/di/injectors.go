//go:build wireinject
// +build wireinject

package di

import (
	"fihealth/internal"
	"fihealth/internal/clients"
	"fihealth/internal/controllers"
	"fihealth/internal/fanout"
	"fihealth/internal/providers"
	"fihealth/internal/scheduler"
	"fihealth/internal/services"
	"fihealth/internal/structures"

	"github.com/google/wire"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewRegionStoreProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		clients.NewContextBrokerClient,
		clients.NewMailmanClient,
		clients.NewKeystoneClient,
		clients.NewMonascaClient,
		clients.NewJenkinsClient,
		fanout.NewDispatcher,

		services.NewNotificationService,
		services.NewSubscriptionService,
		services.NewAuthorizationService,
		services.NewRegionService,
		scheduler.NewScheduler,

		controllers.NewIndexController,
		controllers.NewNotificationController,
		controllers.NewSubscriptionController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewHandler,
		internal.NewApp,
	)

	return nil, nil
}
