package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"docvault/internal/auth"
	"docvault/internal/config"
	"docvault/internal/handler"
	"docvault/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	documentHandler *handler.DocumentHandler,
	ingestionHandler *handler.IngestionHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.HTTPErrorHandler = handler.ErrorHandler

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes: session token from the cookie, parsed into auth.Claims.
	// Requests carrying the internal shared secret skip token auth entirely,
	// mirroring the service-to-service callback path.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		TokenLookup: "cookie:" + auth.CookieName,
		Skipper: func(c echo.Context) bool {
			return auth.IsInternal(c, cfg.InternalSecret)
		},
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
	}))

	// No role requirement: any authenticated caller.
	secured.GET("/auth/profile", authHandler.Profile)

	roles := func(required ...model.Role) echo.MiddlewareFunc {
		return auth.RequireRoles(cfg.InternalSecret, required...)
	}

	// User routes
	secured.GET("/users", userHandler.ListUsers, roles(model.RoleAdmin))
	secured.GET("/users/:id", userHandler.GetUser) // self-or-internal check in handler
	secured.PATCH("/users/:id", userHandler.UpdateUser, roles(model.RoleEditor))
	secured.PATCH("/users/:id/role", userHandler.UpdateRole, roles(model.RoleAdmin))
	secured.DELETE("/users/:id", userHandler.DeleteUser, roles(model.RoleAdmin))

	// Document routes
	secured.POST("/documents", documentHandler.Create, roles(model.RoleEditor, model.RoleAdmin))
	secured.GET("/documents", documentHandler.List, roles(model.RoleViewer, model.RoleEditor, model.RoleAdmin))
	secured.PATCH("/documents/updateStatus/:id", documentHandler.UpdateStatus, roles(model.RoleEditor, model.RoleViewer))
	secured.GET("/documents/:id", documentHandler.Get, roles(model.RoleViewer, model.RoleEditor, model.RoleAdmin))
	secured.GET("/documents/:id/status", documentHandler.GetStatus, roles(model.RoleViewer, model.RoleEditor, model.RoleAdmin))
	secured.PATCH("/documents/:id", documentHandler.Update, roles(model.RoleEditor, model.RoleAdmin))
	secured.DELETE("/documents/:id", documentHandler.Delete, roles(model.RoleEditor, model.RoleAdmin))

	// Mock ingestion routes; Start is the endpoint the document workflow
	// posts to, authenticated by the internal secret.
	secured.POST("/ingestion", ingestionHandler.Start)
	secured.GET("/ingestion/:id/status", ingestionHandler.Status)
	secured.GET("/ingestion/:id/reprocess", ingestionHandler.Reprocess)
	secured.GET("/ingestion/:id/embeddings", ingestionHandler.Embeddings)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
