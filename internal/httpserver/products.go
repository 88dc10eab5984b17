package httpserver

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"techmobile/internal/domain"
	catalogsvc "techmobile/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

func listProductsHandler(svc catalogService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.List(c.Request.Context(), c.Query("category"))
		if err != nil {
			logger.Printf("list products: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
			return
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, products)
	}
}

// createProductHandler accepts the admin product form: multipart with either
// an uploaded image file or an image URL field.
func createProductHandler(svc catalogService, uploads imageSaver, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		imageURL := strings.TrimSpace(c.PostForm("image"))
		if fh, err := c.FormFile("image"); err == nil && fh != nil {
			if uploads == nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Uploads not configured"})
				return
			}
			url, err := uploads.Save(fh)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to create product", "error": err.Error()})
				return
			}
			imageURL = url
		}

		in, err := createInputFromForm(c, imageURL)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to create product", "error": err.Error()})
			return
		}

		created, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			logger.Printf("create product: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to create product", "error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func createInputFromForm(c *gin.Context, imageURL string) (catalogsvc.CreateInput, error) {
	price, err := parseCents(c.PostForm("priceCents"), true)
	if err != nil {
		return catalogsvc.CreateInput{}, err
	}

	in := catalogsvc.CreateInput{
		Title:       c.PostForm("title"),
		Brand:       c.PostForm("brand"),
		Category:    c.PostForm("category"),
		PriceCents:  *price,
		Image:       imageURL,
		Description: c.PostForm("description"),
	}

	original, err := parseCents(c.PostForm("originalPriceCents"), false)
	if err != nil {
		return catalogsvc.CreateInput{}, err
	}
	in.OriginalPriceCents = original

	specs := domain.ProductSpecs{
		Storage: strings.TrimSpace(c.PostForm("storage")),
		RAM:     strings.TrimSpace(c.PostForm("ram")),
		Camera:  strings.TrimSpace(c.PostForm("camera")),
		Battery: strings.TrimSpace(c.PostForm("battery")),
	}
	if specs != (domain.ProductSpecs{}) {
		in.Specs = &specs
	}

	if raw := strings.TrimSpace(c.PostForm("badges")); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				in.Badges = append(in.Badges, b)
			}
		}
	}

	return in, nil
}

func parseCents(raw string, required bool) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if required {
			return nil, errInvalidPrice
		}
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return nil, errInvalidPrice
	}
	return &v, nil
}
