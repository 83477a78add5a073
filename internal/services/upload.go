package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"mementa_back_end/internal/database"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// Limites de taille : 10 Mo pour les photos clients, 5 Mo pour le logo
const (
	MaxPhotoSize int64 = 10 << 20
	MaxLogoSize  int64 = 5 << 20
)

// Types d'images acceptés et extensions correspondantes
var allowedImageTypes = map[string][]string{
	"image/jpeg": {".jpg", ".jpeg"},
	"image/png":  {".png"},
	"image/webp": {".webp"},
}

// ValidateImageFile contrôle un fichier avant tout appel réseau :
// nom sans traversée de chemin, taille bornée, MIME autorisé et
// extension cohérente avec le MIME déclaré.
func ValidateImageFile(fileName, contentType string, size, maxSize int64) error {
	if fileName == "" {
		return fmt.Errorf("nom de fichier manquant")
	}
	if strings.Contains(fileName, "..") || strings.ContainsAny(fileName, `/\`) {
		return fmt.Errorf("nom de fichier invalide")
	}
	if size <= 0 {
		return fmt.Errorf("fichier vide")
	}
	if size > maxSize {
		return fmt.Errorf("fichier trop volumineux (max %d Mo)", maxSize>>20)
	}

	exts, ok := allowedImageTypes[strings.ToLower(contentType)]
	if !ok {
		return fmt.Errorf("type de fichier non autorisé (JPEG, PNG ou WebP attendu)")
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	for _, allowed := range exts {
		if ext == allowed {
			return nil
		}
	}
	return fmt.Errorf("l'extension %s ne correspond pas au type %s", ext, contentType)
}

// UploadCustomerPhoto valide puis envoie une photo de personnalisation
// vers MinIO sous un nom aléatoire. Retourne l'URL publique.
// Pas de retry : en cas d'échec, le client doit re-sélectionner le fichier.
func UploadCustomerPhoto(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	contentType := fileHeader.Header.Get("Content-Type")
	if err := ValidateImageFile(fileHeader.Filename, contentType, fileHeader.Size, MaxPhotoSize); err != nil {
		return "", err
	}
	return putObject(ctx, os.Getenv("MINIO_BUCKET_PHOTOS"), "photos", fileHeader, contentType)
}

// UploadLogo valide puis envoie le logo de la boutique (limite 5 Mo)
func UploadLogo(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	contentType := fileHeader.Header.Get("Content-Type")
	if err := ValidateImageFile(fileHeader.Filename, contentType, fileHeader.Size, MaxLogoSize); err != nil {
		return "", err
	}
	return putObject(ctx, os.Getenv("MINIO_BUCKET_BRANDING"), "logo", fileHeader, contentType)
}

func putObject(ctx context.Context, bucket, namespace string, fileHeader *multipart.FileHeader, contentType string) (string, error) {
	if bucket == "" {
		return "", fmt.Errorf("bucket MinIO non configuré")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("erreur ouverture fichier: %v", err)
	}
	defer file.Close()

	// Nom aléatoire pour éviter collisions et écrasements
	objectName := fmt.Sprintf("%s/%s%s", namespace, uuid.NewString(), strings.ToLower(filepath.Ext(fileHeader.Filename)))

	_, err = database.MinIO.PutObject(ctx, bucket, objectName, file, fileHeader.Size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("erreur upload MinIO: %v", err)
	}

	return PublicObjectURL(bucket, objectName), nil
}

// PublicObjectURL construit l'URL publique d'un objet
// (à adapter selon le reverse proxy)
func PublicObjectURL(bucket, objectName string) string {
	publicBase := os.Getenv("MINIO_PUBLIC_URL")
	if publicBase == "" {
		publicBase = fmt.Sprintf("http://%s", os.Getenv("MINIO_ENDPOINT"))
	}
	return fmt.Sprintf("%s/%s/%s", publicBase, bucket, objectName)
}
