package app

import (
	"context"

	"habit-service/internal/auth/credentials"
	"habit-service/internal/config"
	"habit-service/internal/google"
	"habit-service/internal/habit"
	"habit-service/internal/handler"
	"habit-service/internal/middleware"
	"habit-service/internal/session"
	"habit-service/internal/user"

	"github.com/gin-gonic/gin"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	sessionStore := session.NewRedisStore(infra.Redis.Client)
	credentialService := credentials.NewService(infra.DB)
	profileStore := user.NewStore(infra.DB)
	habitStore := habit.NewStore(infra.DB)
	googleTokenStore := google.NewTokenStore(infra.DB)

	googleProvider, err := google.New(
		ctx,
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
	)
	if err != nil {
		return nil, nil, err
	}

	apiHandler := handler.NewHandler(handler.Deps{
		Sessions:     sessionStore,
		Credentials:  credentialService,
		Profiles:     profileStore,
		Habits:       habitStore,
		GoogleTokens: googleTokenStore,
		GoogleAuth:   googleProvider,
		SiteURL:      cfg.SiteURL,
	})

	authMiddleware := middleware.NewAuthMiddleware(sessionStore)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiHandler.RegisterRoutes(router, middleware.GinRequireAuth(authMiddleware))

	cleanup := func() error {
		if err := infra.Redis.Close(); err != nil {
			return err
		}
		return infra.DB.Close()
	}

	return router, cleanup, nil
}
