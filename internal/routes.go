package internal

import (
	"net/http"

	"fihealth/internal/controllers"
	"fihealth/internal/providers"
	"fihealth/internal/structures"
)

func InitRoutes(indexController *controllers.IndexController, notificationController *controllers.NotificationController, subscriptionController *controllers.SubscriptionController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider(conf.App.WebContext)

	routers.Get("/{$}", http.HandlerFunc(indexController.Index))
	routers.Get("/regions", http.HandlerFunc(indexController.Regions))
	routers.Get("/subscribe", http.HandlerFunc(subscriptionController.Subscribe))
	routers.Get("/unsubscribe", http.HandlerFunc(subscriptionController.Unsubscribe))
	routers.Post("/contextbroker/sanity_status", http.HandlerFunc(notificationController.SanityStatus))
	routers.Post("/contextbroker/change_sanity_status", http.HandlerFunc(notificationController.ChangeSanityStatus))
	return routers
}
