package main

import (
	"log"
	"os"

	"cee-backend/db"
	_ "cee-backend/docs"
	"cee-backend/routes"
	"cee-backend/utils"

	"github.com/gin-gonic/gin"
)

// @title API Colombia en España
// @version 1.0
// @description API del portal Colombia en España: leads, anunciantes, anuncios, blog y facturación por suscripción.
// @host localhost:8080
// @BasePath /
// @SecurityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Introduce el JWT con el prefijo Bearer: Bearer <JWT>
func main() {

	gin.SetMode(gin.ReleaseMode)

	db.InitDB()
	db.InitRedis()

	if err := utils.InitCloudinary(); err != nil {
		log.Printf("Aviso: la inicialización de Cloudinary falló: %v", err)
		log.Println("La subida de imágenes no funcionará correctamente.")
	}

	r := routes.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Error al arrancar el servidor:", err)
	}
}
