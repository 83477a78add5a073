package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateImageFileAccepted(t *testing.T) {
	assert.NoError(t, ValidateImageFile("chat.jpg", "image/jpeg", 1024, MaxPhotoSize))
	assert.NoError(t, ValidateImageFile("chat.jpeg", "image/jpeg", 1024, MaxPhotoSize))
	assert.NoError(t, ValidateImageFile("logo.png", "image/png", 1024, MaxLogoSize))
	assert.NoError(t, ValidateImageFile("photo.webp", "image/webp", 1024, MaxPhotoSize))

	// MIME insensible à la casse
	assert.NoError(t, ValidateImageFile("CHAT.JPG", "IMAGE/JPEG", 1024, MaxPhotoSize))
}

func TestValidateImageFileRejectsWrongType(t *testing.T) {
	assert.Error(t, ValidateImageFile("doc.pdf", "application/pdf", 1024, MaxPhotoSize))
	assert.Error(t, ValidateImageFile("anim.gif", "image/gif", 1024, MaxPhotoSize))
	assert.Error(t, ValidateImageFile("script.js", "text/javascript", 1024, MaxPhotoSize))
}

func TestValidateImageFileRejectsOversize(t *testing.T) {
	// 12 Mo > limite photo de 10 Mo
	assert.Error(t, ValidateImageFile("grand.jpg", "image/jpeg", 12<<20, MaxPhotoSize))
	// 6 Mo > limite logo de 5 Mo
	assert.Error(t, ValidateImageFile("logo.png", "image/png", 6<<20, MaxLogoSize))
	// Pile à la limite : accepté
	assert.NoError(t, ValidateImageFile("limite.jpg", "image/jpeg", MaxPhotoSize, MaxPhotoSize))
	// Fichier vide : refusé
	assert.Error(t, ValidateImageFile("vide.jpg", "image/jpeg", 0, MaxPhotoSize))
}

func TestValidateImageFileRejectsExtensionMismatch(t *testing.T) {
	// Extension .png avec MIME jpeg : incohérent
	assert.Error(t, ValidateImageFile("photo.png", "image/jpeg", 1024, MaxPhotoSize))
	assert.Error(t, ValidateImageFile("photo.jpg", "image/png", 1024, MaxPhotoSize))
	// Pas d'extension du tout
	assert.Error(t, ValidateImageFile("photo", "image/jpeg", 1024, MaxPhotoSize))
}

func TestValidateImageFileRejectsPathTraversal(t *testing.T) {
	assert.Error(t, ValidateImageFile("../../etc/passwd.jpg", "image/jpeg", 1024, MaxPhotoSize))
	assert.Error(t, ValidateImageFile("..%2fphoto.jpg", "image/jpeg", 1024, MaxPhotoSize))
	assert.Error(t, ValidateImageFile("dossier/photo.jpg", "image/jpeg", 1024, MaxPhotoSize))
	assert.Error(t, ValidateImageFile(`dossier\photo.jpg`, "image/jpeg", 1024, MaxPhotoSize))
	assert.Error(t, ValidateImageFile("", "image/jpeg", 1024, MaxPhotoSize))
}
