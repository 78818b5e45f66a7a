package blog

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"cee-backend/db"
	"cee-backend/models"
	"cee-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

// slugify genera el slug de una entrada a partir del título
func slugify(title string) string {
	slug := strings.ToLower(title)
	replacer := strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n", "ü", "u")
	slug = replacer.Replace(slug)
	slug = slugCleaner.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// @Summary Create a blog post
// @Description Create a new blog post (admin only)
// @Tags blog
// @Accept mpfd
// @Produce json
// @Param post formData models.BlogPostCreate true "Post information"
// @Param cover formData file false "Cover image"
// @Security BearerAuth
// @Success 201 {object} map[string]interface{} "message: Post created successfully, id: post ID, slug: post slug"
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 409 {object} map[string]string "error: A post with this slug already exists"
// @Router /blog [post]
func CreateBlogPost(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input models.BlogPostCreate
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	slug := slugify(input.Title)

	var existing models.BlogPost
	if err := db.DB.First(&existing, "slug = ?", slug).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A post with this slug already exists"})
		return
	}

	coverURL := ""
	if file, err := c.FormFile("cover"); err == nil {
		url, err := utils.UploadImage(file, "blog")
		if err != nil {
			utils.LogErrorWithUser(userID, err, "Error al subir la portada en CreateBlogPost")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		coverURL = url
	}

	post := models.BlogPost{
		AuthorID:      userID.(string),
		Title:         input.Title,
		Slug:          slug,
		Excerpt:       input.Excerpt,
		Content:       input.Content,
		CoverImageURL: coverURL,
		Published:     input.Published,
	}
	if input.Published {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := db.DB.Create(&post).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error al crear la entrada en CreateBlogPost")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating the post"})
		return
	}

	utils.LogSuccessWithUser(userID, "Entrada del blog creada en CreateBlogPost")
	c.JSON(http.StatusCreated, gin.H{
		"message": "Post created successfully",
		"id":      post.ID,
		"slug":    post.Slug,
	})
}

// @Summary Public blog feed
// @Description Return published blog posts, newest first
// @Tags blog
// @Produce json
// @Success 200 {array} models.BlogPost
// @Router /blog [get]
func GetPublishedPosts(c *gin.Context) {
	var posts []models.BlogPost
	if err := db.DB.Where("published = ?", true).Order("published_at DESC").Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching posts"})
		return
	}

	c.JSON(http.StatusOK, posts)
}

// @Summary Get a blog post by slug
// @Description Return a published blog post by its slug
// @Tags blog
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} models.BlogPost
// @Failure 404 {object} map[string]string "error: Post not found"
// @Router /blog/{slug} [get]
func GetPostBySlug(c *gin.Context) {
	slug := c.Param("slug")

	var post models.BlogPost
	if err := db.DB.First(&post, "slug = ? AND published = ?", slug, true).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, post)
}

// @Summary Update a blog post
// @Description Update a blog post (admin only)
// @Tags blog
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param post body models.BlogPostUpdate true "Post fields"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Post updated successfully"
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 404 {object} map[string]string "error: Post not found"
// @Router /blog/{id} [put]
func UpdateBlogPost(c *gin.Context) {
	postID := c.Param("id")
	if _, err := uuid.Parse(postID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var input models.BlogPostUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var post models.BlogPost
	if err := db.DB.First(&post, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	updates := map[string]interface{}{}
	if input.Title != "" {
		updates["title"] = input.Title
		updates["slug"] = slugify(input.Title)
	}
	if input.Excerpt != "" {
		updates["excerpt"] = input.Excerpt
	}
	if input.Content != "" {
		updates["content"] = input.Content
	}
	if input.Published != nil {
		updates["published"] = *input.Published
		if *input.Published && post.PublishedAt == nil {
			updates["published_at"] = time.Now()
		}
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := db.DB.Model(&post).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating the post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post updated successfully"})
}

// @Summary Delete a blog post
// @Description Delete a blog post (admin only)
// @Tags blog
// @Produce json
// @Param id path string true "Post ID"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Post deleted"
// @Failure 404 {object} map[string]string "error: Post not found"
// @Router /blog/{id} [delete]
func DeleteBlogPost(c *gin.Context) {
	postID := c.Param("id")
	if _, err := uuid.Parse(postID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var post models.BlogPost
	if err := db.DB.First(&post, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if err := db.DB.Delete(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting the post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}
