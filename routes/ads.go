package routes

import (
	"cee-backend/handlers/ads"
	"cee-backend/middleware"

	"github.com/gin-gonic/gin"
)

func AdvertisementsRoutes(r *gin.Engine) {
	adRoutes := r.Group("/advertisements")
	{
		adRoutes.GET("/", ads.GetApprovedAdvertisements)
		adRoutes.POST("/", middleware.AnuncianteAuth(), ads.CreateAdvertisement)
		adRoutes.GET("/mine", middleware.AnuncianteAuth(), ads.GetMyAdvertisements)
		adRoutes.GET("/pending", middleware.AdminAuth(), ads.GetPendingAdvertisements)
		adRoutes.PUT("/:id/status", middleware.AdminAuth(), ads.UpdateAdvertisementStatus)
		adRoutes.DELETE("/:id", middleware.JWTAuth(), ads.DeleteAdvertisement)
	}
}
