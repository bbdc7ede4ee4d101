package server

import (
	"market/internal/config"
	"market/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Newはechoを組み立ててルートを全部登録する。
func New(
	cfg config.Config,
	authH *handler.AuthHandler,
	templateH *handler.TemplateHandler,
	adminTemplateH *handler.AdminTemplateHandler,
	cartH *handler.CartHandler,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	// CORSはフロントのoriginだけ許可
	if cfg.FEURL != "" {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins:     []string{cfg.FEURL},
			AllowCredentials: true,
		}))
	}

	authH.RegisterRoutes(e)
	templateH.RegisterRoutes(e)
	adminTemplateH.RegisterRoutes(e, cfg)
	cartH.RegisterRoutes(e, cfg)

	return e
}
