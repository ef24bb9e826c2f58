package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"tailorhub/internal/cart"
	"tailorhub/internal/config"
	"tailorhub/internal/database"
	"tailorhub/internal/handlers"
	"tailorhub/internal/middleware"
	"tailorhub/internal/storage"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}
	if err := database.EnsureCatalogIndexes(db); err != nil {
		log.Printf("catalog index warning: %v", err)
	}

	cartStore := cart.NewStore(config.AppEnv.RedisAddr, config.AppEnv.RedisPassword, config.AppEnv.CartTTL)

	imageStore, err := storage.NewMinioStore(
		config.AppEnv.MinioEndpoint,
		config.AppEnv.MinioAccessKey,
		config.AppEnv.MinioSecretKey,
		config.AppEnv.MinioBucket,
		config.AppEnv.PublicMediaURL,
		config.AppEnv.MinioUseSSL,
	)
	if err != nil {
		log.Fatal("image store:", err)
	}

	r := gin.Default()

	r.POST("/auth/register", handlers.Register(db))
	r.POST("/auth/register/tailor", handlers.RegisterTailor(db))
	r.POST("/auth/login", handlers.Login(
		db,
		config.AppEnv.JWTSecret,
		config.AppEnv.AccessTokenTTL,
		config.AppEnv.RefreshTokenTTL,
	))
	r.POST("/auth/refresh", handlers.Refresh(
		db,
		config.AppEnv.JWTSecret,
		config.AppEnv.AccessTokenTTL,
		config.AppEnv.RefreshTokenTTL,
	))
	r.POST("/auth/logout", handlers.Logout(db))
	r.POST("/admin/login", handlers.AdminLogin(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))

	r.GET("/designs", handlers.GetDesigns(db))
	r.GET("/fabrics", handlers.GetFabrics(db))
	r.GET("/categories", handlers.GetCategories(db))

	r.GET("/cart", handlers.GetCart(cartStore))
	r.POST("/cart/items", handlers.AddCartLine(db, cartStore))
	r.DELETE("/cart/items/:index", handlers.RemoveCartLine(cartStore))
	r.DELETE("/cart", handlers.ClearCart(cartStore))

	me := r.Group("/me")
	me.Use(middleware.AuthGuard(config.AppEnv.JWTSecret))
	{
		me.GET("", handlers.GetMe(db))
		me.PUT("", handlers.UpdateMe(db))
		me.PUT("/password", handlers.ChangePassword(db))
	}

	r.POST("/orders", middleware.CustomerAuth(config.AppEnv.JWTSecret), handlers.Checkout(db, cartStore))
	r.GET("/orders/mine", middleware.CustomerAuth(config.AppEnv.JWTSecret), handlers.GetMyOrders(db))

	tailor := r.Group("/tailor/api")
	tailor.Use(middleware.TailorAuth(config.AppEnv.JWTSecret))
	{
		tailor.GET("/orders", handlers.GetTailorOrders(db))
		tailor.GET("/orders/pending", handlers.GetTailorPendingOrders(db))
		tailor.GET("/orders/completed", handlers.GetTailorCompletedOrders(db))
		tailor.PUT("/orders/:id/status", handlers.TailorUpdateOrderStatus(db))
		tailor.GET("/stats", handlers.GetTailorStats(db))
		tailor.POST("/uploads", handlers.UploadImage(imageStore))
	}

	admin := r.Group("/admin/api")
	admin.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
	{
		admin.GET("/me", func(c *gin.Context) {
			c.JSON(200, gin.H{"ok": true})
		})

		admin.GET("/designs", handlers.GetAllDesigns(db))
		admin.POST("/designs", handlers.CreateDesign(db))
		admin.PUT("/designs/:id", handlers.UpdateDesign(db))
		admin.DELETE("/designs/:id", handlers.DeleteDesign(db))

		admin.GET("/fabrics", handlers.GetAllFabrics(db))
		admin.POST("/fabrics", handlers.CreateFabric(db))
		admin.PUT("/fabrics/:id", handlers.UpdateFabric(db))
		admin.DELETE("/fabrics/:id", handlers.DeleteFabric(db))

		admin.GET("/categories", handlers.GetAllCategories(db))
		admin.POST("/categories", handlers.CreateCategory(db))
		admin.PUT("/categories/:id", handlers.UpdateCategory(db))
		admin.DELETE("/categories/:id", handlers.DeleteCategory(db))

		admin.GET("/orders", handlers.GetAllOrders(db))
		admin.PUT("/orders/:id/tailor", handlers.AssignTailor(db))
		admin.PUT("/orders/:id/status", handlers.AdminUpdateOrderStatus(db))
		admin.DELETE("/orders/:id", handlers.DeleteOrder(db))

		admin.GET("/customers", handlers.GetAllCustomers(db))
		admin.GET("/tailors", handlers.GetAllTailors(db))
		admin.PUT("/users/:id", handlers.AdminUpdateUser(db))
		admin.DELETE("/users/:id", handlers.AdminDeleteUser(db))

		admin.GET("/stats", handlers.GetAdminStats(db))
		admin.POST("/uploads", handlers.UploadImage(imageStore))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
