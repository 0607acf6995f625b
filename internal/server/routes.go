package server

import (
	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(
	e *echo.Echo,
	cfg config.Config,
	cartH *handler.CartHandler,
	checkoutH *handler.CheckoutHandler,
	orderH *handler.OrderHandler,
	webhookH *handler.WebhookHandler,
) {
	cartH.RegisterRoutes(e, cfg)
	checkoutH.RegisterRoutes(e, cfg)
	orderH.RegisterRoutes(e, cfg)

	//Webhookは署名のみで認証する
	webhookH.RegisterRoutes(e)
}
