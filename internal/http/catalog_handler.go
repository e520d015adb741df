package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stylebot/internal/catalog"
	"stylebot/internal/faq"
)

// CatalogHandler sirve el catalogo de productos y las FAQs.
type CatalogHandler struct {
	logger  *zap.Logger
	catalog catalog.Provider
}

func NewCatalogHandler(logger *zap.Logger, provider catalog.Provider) *CatalogHandler {
	return &CatalogHandler{logger: logger, catalog: provider}
}

// ListProducts maneja GET /catalog/products. El query param filtra por
// keywords; sin el devuelve el catalogo hasta el tope de resultados.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.catalog.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		h.logger.Error("catalog search failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not search catalog"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// ListFAQ maneja GET /faq.
func (h *CatalogHandler) ListFAQ(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"faqs":    faq.Entries(),
		"contact": faq.Contact(),
	})
}

// Healthz maneja GET /healthz.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
