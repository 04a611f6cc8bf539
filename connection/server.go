package connection

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"taskflow/config"
	authcontroller "taskflow/controller/auth"
	taskcontroller "taskflow/controller/task"
	usercontroller "taskflow/controller/user"
	"taskflow/controller/response"
	"taskflow/dto"
	"taskflow/logging"
	"taskflow/middleware"
	"taskflow/services"
	"taskflow/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Services bundles what the router needs.
type Services struct {
	Auth      *services.AuthService
	Tasks     *services.TaskService
	Dashboard *services.DashboardService
	Users     *services.UserService
}

// NewServices wires the services over st. captcha may be nil.
func NewServices(cfg *config.Config, st store.Store, captcha services.CaptchaVerifier) (*Services, error) {
	authService, err := services.NewAuthService(st, services.NewTokenService(cfg.JWTSecret, cfg.JWTTTL), captcha, services.AuthConfig{
		AdminInviteToken:    cfg.AdminInviteToken,
		BcryptCost:          cfg.BcryptCost,
		DefaultProfileImage: cfg.DefaultProfileImageURL,
	})
	if err != nil {
		return nil, err
	}
	return &Services{
		Auth:      authService,
		Tasks:     services.NewTaskService(st, st),
		Dashboard: services.NewDashboardService(st),
		Users:     services.NewUserService(st, st),
	}, nil
}

func NewRouter(cfg *config.Config, svc *Services) (*gin.Engine, error) {
	if err := dto.RegisterValidators(); err != nil {
		return nil, err
	}
	response.ExposeErrors(cfg.ExposeErrors)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(), cors.Default())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Api is running!"})
	})
	router.Static("/uploads", cfg.UploadsDir)

	authcontroller.AuthController(router, svc.Auth)
	taskcontroller.TaskController(router, svc.Tasks, svc.Dashboard, svc.Auth)
	usercontroller.UserController(router, svc.Users, svc.Auth)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})
	return router, nil
}

// StartServer opens the store, serves until SIGINT/SIGTERM and then shuts
// down gracefully.
func StartServer(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := OpenStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.StoreTimeout)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			logging.Logger.Errorf("Event ID: STORE_CLOSE_FAILED, Description: %v", err)
		}
	}()

	var captcha services.CaptchaVerifier
	if cfg.CaptchaEnabled() {
		verifier, err := services.NewRecaptchaVerifier(ctx, services.RecaptchaConfig{
			ProjectID:       cfg.RecaptchaProjectID,
			SiteKey:         cfg.RecaptchaSiteKey,
			CredentialsFile: cfg.RecaptchaCredentials,
			MinScore:        cfg.RecaptchaMinScore,
		})
		if err != nil {
			return err
		}
		defer verifier.Close()
		captcha = verifier
	}

	svc, err := NewServices(cfg, st, captcha)
	if err != nil {
		return err
	}
	router, err := NewRouter(cfg, svc)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logging.Logger.Infof("Event ID: SERVER_STARTED, Description: listening on %s with %s store", srv.Addr, cfg.StoreDriver)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logging.Logger.Info("Event ID: SERVER_STOPPING, Description: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
