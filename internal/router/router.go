package router

import (
	"time"

	"github.com/santiagozurbrigk/libreria-lowcost/internal/config"
	"github.com/santiagozurbrigk/libreria-lowcost/internal/handler"
	"github.com/santiagozurbrigk/libreria-lowcost/internal/middleware"
	"github.com/santiagozurbrigk/libreria-lowcost/internal/model"
	"github.com/santiagozurbrigk/libreria-lowcost/internal/repository"
	"github.com/santiagozurbrigk/libreria-lowcost/internal/service"
	"github.com/santiagozurbrigk/libreria-lowcost/internal/worker"

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
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMin, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	imagenRepo := repository.NewProductoImagenRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	dispatcher := worker.NewDispatcher(rdb)

	authSvc := service.NewAuthService(usuarioRepo, cfg.JWTSecret, cfg.JWTExpirationHours)
	productoSvc := service.NewProductoService(productoRepo, imagenRepo, pedidoRepo, rdb)
	clienteSvc := service.NewClienteService(clienteRepo)
	pedidoSvc := service.NewPedidoService(pedidoRepo, productoRepo, clienteSvc, dispatcher)
	adminSvc := service.NewAdminService(pedidoRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	pedidosH := handler.NewPedidosHandler(pedidoSvc, clienteRepo)
	adminH := handler.NewAdminHandler(adminSvc)
	healthH := handler.NewHealthHandler(db, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", healthH.Check)

	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	optionalMW := middleware.OptionalAuth(cfg.JWTSecret)
	staffMW := middleware.RequireRole(model.RolAdmin, model.RolEmpleado)
	adminMW := middleware.RequireRole(model.RolAdmin)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.GET("/profile", jwtMW, authH.Perfil)
		auth.POST("/logout", jwtMW, authH.Logout)
	}

	// Catálogo — lectura pública, escritura solo staff
	products := api.Group("/products")
	{
		products.GET("", productosH.Listar)
		products.GET("/search/:barcode", productosH.BuscarPorBarcode)
		products.GET("/:id", productosH.Obtener)

		products.POST("", jwtMW, staffMW, productosH.Crear)
		products.PUT("/:id", jwtMW, staffMW, productosH.Actualizar)
		products.DELETE("/:id", jwtMW, staffMW, productosH.Eliminar)
		products.POST("/:id/images", jwtMW, staffMW, productosH.AgregarImagen)
		products.DELETE("/:id/images/:imageId", jwtMW, staffMW, productosH.EliminarImagen)
	}

	// Pedidos — checkout abierto (con auth opcional), gestión solo staff
	orders := api.Group("/orders")
	{
		orders.POST("", optionalMW, pedidosH.Crear)
		orders.GET("", jwtMW, pedidosH.Listar)
		orders.GET("/:id", jwtMW, pedidosH.Obtener)

		orders.PATCH("/:id", jwtMW, staffMW, pedidosH.Actualizar)
		orders.POST("/:id/reopen", jwtMW, staffMW, pedidosH.Reabrir)
		orders.DELETE("/:id", jwtMW, staffMW, pedidosH.Eliminar)
	}

	// Administración — solo admin
	admin := api.Group("/admin", jwtMW, adminMW)
	{
		admin.GET("/dashboard", adminH.Dashboard)
		admin.GET("/stats/sales", adminH.VentasStats)
		admin.GET("/stats/economic", adminH.EconomicStats)
		admin.GET("/stats/top-products", adminH.TopProductos)
		admin.GET("/stats/top-customers", adminH.TopClientes)

		admin.POST("/users", usuariosH.Crear)
		admin.GET("/users", usuariosH.Listar)
		admin.GET("/users/:id", usuariosH.Obtener)
		admin.PUT("/users/:id", usuariosH.Actualizar)
		admin.DELETE("/users/:id", usuariosH.Eliminar)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
