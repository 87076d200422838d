package router

import (
	"time"

	"github.com/victorolivaresat/bono-go/internal/config"
	"github.com/victorolivaresat/bono-go/internal/handler"
	"github.com/victorolivaresat/bono-go/internal/middleware"
	"github.com/victorolivaresat/bono-go/internal/repository"
	"github.com/victorolivaresat/bono-go/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	tipoBonoRepo := repository.NewTipoBonoRepository(db)
	bonoRepo := repository.NewBonoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	tipoCache := service.NewTipoBonoCache(rdb)
	authSvc := service.NewAuthService(usuarioRepo, bonoRepo, cfg)
	tipoBonoSvc := service.NewTipoBonoService(tipoBonoRepo, bonoRepo, tipoCache)
	bonoSvc := service.NewBonoService(bonoRepo)
	validacionSvc := service.NewValidacionService(bonoRepo, tipoBonoRepo, tipoCache)
	importacionSvc := service.NewImportacionService(bonoRepo, tipoBonoRepo, usuarioRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	bonosH := handler.NewBonosHandler(bonoSvc, validacionSvc, importacionSvc)
	tiposH := handler.NewTiposBonosHandler(tipoBonoSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc, importacionSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Bonos — lectura y validación abiertas a ambos roles
		v1.GET("/bonos", middleware.RequireRole("admin", "user"), bonosH.Listar)
		v1.GET("/bonos/buscar", middleware.RequireRole("admin", "user"), bonosH.Buscar)
		v1.GET("/bonos/:id", middleware.RequireRole("admin", "user"), bonosH.ObtenerPorID)
		v1.POST("/bonos/:id/validar", middleware.RequireRole("admin", "user"), bonosH.Validar)
		// Escritura — solo admin
		bonos := v1.Group("/bonos", middleware.RequireRole("admin"))
		{
			bonos.POST("", bonosH.Crear)
			bonos.PATCH("/:id", bonosH.Actualizar)
			bonos.DELETE("/:id", bonosH.Eliminar)
			bonos.POST("/importar", bonosH.Importar)
			bonos.GET("/plantilla", bonosH.Plantilla)
		}

		v1.GET("/tipos-bonos", middleware.RequireRole("admin", "user"), tiposH.Listar)
		tipos := v1.Group("/tipos-bonos", middleware.RequireRole("admin"))
		{
			tipos.POST("", tiposH.Crear)
			tipos.PATCH("/:id", tiposH.Actualizar)
			tipos.DELETE("/:id", tiposH.Eliminar)
		}

		usuarios := v1.Group("/usuarios", middleware.RequireRole("admin"))
		{
			usuarios.GET("", usuariosH.Listar)
			usuarios.POST("", usuariosH.Crear)
			usuarios.POST("/importar", usuariosH.Importar)
			usuarios.GET("/plantilla", usuariosH.Plantilla)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
