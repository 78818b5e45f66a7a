package routes

import (
	"cee-backend/handlers/blog"
	"cee-backend/middleware"

	"github.com/gin-gonic/gin"
)

func BlogRoutes(r *gin.Engine) {
	blogRoutes := r.Group("/blog")
	{
		blogRoutes.GET("/", blog.GetPublishedPosts)
		blogRoutes.GET("/:slug", blog.GetPostBySlug)
		blogRoutes.POST("/", middleware.AdminAuth(), blog.CreateBlogPost)
		blogRoutes.PUT("/:id", middleware.AdminAuth(), blog.UpdateBlogPost)
		blogRoutes.DELETE("/:id", middleware.AdminAuth(), blog.DeleteBlogPost)
	}
}
