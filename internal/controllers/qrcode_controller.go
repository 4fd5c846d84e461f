package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"storefront-be/internal/service"
)

type QRCodeController struct {
	catalogService service.CatalogService
	frontendURL    string
}

func NewQRCodeController(catalogService service.CatalogService, frontendURL string) *QRCodeController {
	return &QRCodeController{
		catalogService: catalogService,
		frontendURL:    frontendURL,
	}
}

// ProductQRCode handles GET /api/products/:id/qrcode - renders a QR code
// linking to the product page on the storefront, for share/print use.
func (qc *QRCodeController) ProductQRCode(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	// Only mint codes for products that exist
	if _, err := qc.catalogService.Get(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	productURL := fmt.Sprintf("%s/products/%d", qc.frontendURL, id)

	// 256x256 pixels, medium error recovery
	qrCode, err := qrcode.New(productURL, qrcode.Medium)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
		return
	}

	pngData, err := qrCode.PNG(256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code image"})
		return
	}

	c.Header("Content-Disposition", "inline; filename=qrcode.png")
	c.Data(http.StatusOK, "image/png", pngData)
}
