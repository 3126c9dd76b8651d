package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	catalogdomain "github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	checkoutdomain "github.com/Apurer/go-gin-storefront/internal/domains/checkout/domain"
)

// CatalogAPI serves the static product list.
type CatalogAPI struct {
	repo catalogports.Repository
}

func NewCatalogAPI(repo catalogports.Repository) CatalogAPI {
	return CatalogAPI{repo: repo}
}

// Get /v1/products
// Lists the catalog in display order
func (api *CatalogAPI) ListProducts(c *gin.Context) {
	products, err := api.repo.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	result := make([]Product, 0, len(products))
	for _, p := range products {
		result = append(result, fromDomainProduct(p))
	}
	c.JSON(http.StatusOK, result)
}

func fromDomainProduct(p catalogdomain.Product) Product {
	return Product{
		Id:         p.ID,
		Name:       p.Name,
		Price:      p.Price,
		PriceLabel: checkoutdomain.FormatPrice(p.Price),
		Img:        p.Img,
	}
}
