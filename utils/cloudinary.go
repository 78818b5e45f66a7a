package utils

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var cld *cloudinary.Cloudinary

// InitCloudinary inicializa la conexión a Cloudinary
func InitCloudinary() error {
	var err error

	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return fmt.Errorf("las variables de entorno de Cloudinary no están definidas")
	}

	cld, err = cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return fmt.Errorf("error al inicializar Cloudinary: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = cld.Admin.Ping(ctx)
	if err != nil {
		return fmt.Errorf("error al verificar la conexión a Cloudinary: %v", err)
	}

	LogSuccess("Cloudinary inicializado y conexión verificada")
	return nil
}

func boolPointer(b bool) *bool {
	return &b
}

// isValidImageType verifica que la extensión del archivo esté soportada
func isValidImageType(filename string) bool {
	validExtensions := []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
	lowerFilename := strings.ToLower(filename)

	for _, ext := range validExtensions {
		if strings.HasSuffix(lowerFilename, ext) {
			return true
		}
	}
	return false
}

// UploadImage sube una imagen a Cloudinary en la carpeta indicada
// (anuncios, blog, negocios) y devuelve la URL segura.
func UploadImage(file *multipart.FileHeader, folder string) (string, error) {
	if cld == nil {
		return "", fmt.Errorf("cloudinary no está inicializado")
	}

	if !isValidImageType(file.Filename) {
		return "", fmt.Errorf("formato de imagen no soportado, use JPG, PNG, GIF o WEBP")
	}

	// 10MB máximo
	if file.Size > 10*1024*1024 {
		return "", fmt.Errorf("imagen demasiado grande, máximo 10MB")
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("error al abrir el archivo: %v", err)
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := cld.Upload.Upload(ctx, src, uploader.UploadParams{
		Folder:         "colombiaenespana/" + folder,
		UniqueFilename: boolPointer(true),
		Overwrite:      boolPointer(false),
	})
	if err != nil {
		return "", fmt.Errorf("error al subir la imagen: %v", err)
	}

	return result.SecureURL, nil
}
