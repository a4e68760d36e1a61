package controllers

import (
	"net/http"

	"art-gallery-service/middleware"
	"art-gallery-service/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ArtPictureController struct {
	catalogService *services.CatalogService
}

func NewArtPictureController(catalogService *services.CatalogService) *ArtPictureController {
	return &ArtPictureController{catalogService: catalogService}
}

// List returns the catalog; non-staff callers only see available pictures.
func (ac *ArtPictureController) List(ctx *gin.Context) {
	pictures, svcErr := ac.catalogService.ListPictures(ctx.Request.Context(), middleware.IsStaff(ctx))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"art_pictures": pictures})
}

func (ac *ArtPictureController) Get(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid art picture ID format"})
		return
	}

	picture, svcErr := ac.catalogService.GetPicture(ctx.Request.Context(), id, middleware.IsStaff(ctx))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"art_picture": picture})
}

func (ac *ArtPictureController) Create(ctx *gin.Context) {
	var req services.ArtPictureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	picture, svcErr := ac.catalogService.CreatePicture(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"art_picture": picture})
}

func (ac *ArtPictureController) Update(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid art picture ID format"})
		return
	}

	var req services.ArtPictureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	picture, svcErr := ac.catalogService.UpdatePicture(ctx.Request.Context(), id, &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"art_picture": picture})
}

func (ac *ArtPictureController) Delete(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid art picture ID format"})
		return
	}

	if svcErr := ac.catalogService.DeletePicture(ctx.Request.Context(), id); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": "Art picture deleted"})
}
