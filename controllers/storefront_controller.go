package controllers

import (
	"net/http"
	"os"
	"strings"

	"storefront-service/models"
	"storefront-service/repository"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type StorefrontController struct {
	catalog   repository.CatalogRepository
	carts     repository.CartRepository
	checkout  services.CheckoutService
	uploadDir string
	logger    *zap.Logger
}

func NewStorefrontController(
	catalog repository.CatalogRepository,
	carts repository.CartRepository,
	checkout services.CheckoutService,
	uploadDir string,
	logger *zap.Logger,
) *StorefrontController {
	return &StorefrontController{
		catalog:   catalog,
		carts:     carts,
		checkout:  checkout,
		uploadDir: uploadDir,
		logger:    logger,
	}
}

// Index renders the storefront: catalog, cart contents, cart total and item
// count.
func (sc *StorefrontController) Index(c *gin.Context) {
	products, err := sc.catalog.Load(c.Request.Context())
	if err != nil {
		c.String(repository.StatusFor(err), err.Error())
		return
	}

	cart, err := sc.carts.Load(c.Request.Context())
	if err != nil {
		c.String(repository.StatusFor(err), err.Error())
		return
	}

	itemCount := 0
	for _, line := range cart {
		itemCount += line.Quantity
	}

	c.HTML(http.StatusOK, "index.html", models.StorefrontView{
		Products:    products,
		Cart:        cart,
		TotalAmount: services.CartTotal(cart, sc.logger),
		ItemCount:   itemCount,
	})
}

// AddToCart adds a product to the cart, or bumps its quantity when already
// present.
func (sc *StorefrontController) AddToCart(c *gin.Context) {
	var req models.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	line := models.CartLine{
		ProductName:     req.ProductName,
		OriginalPrice:   req.OriginalPrice,
		DiscountedPrice: req.DiscountedPrice,
		Quantity:        req.Quantity,
	}

	_, incremented, err := sc.carts.AddOrIncrement(c.Request.Context(), line)
	if err != nil {
		sc.logger.Error("add to cart failed", zap.String("product_name", req.ProductName), zap.Error(err))
		c.JSON(repository.StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	message := "Product added to the cart."
	if incremented {
		message = "Product quantity updated in the cart."
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// Payment creates a payment link for a single product and redirects the buyer
// to the gateway checkout page.
func (sc *StorefrontController) Payment(c *gin.Context) {
	form := models.SinglePaymentForm{
		ProductName:  c.PostForm("product_name"),
		CurrentPrice: c.PostForm("current_price"),
		Buyer:        buyerFromForm(c),
	}

	url, svcErr := sc.checkout.PayProduct(c.Request.Context(), form)
	if svcErr != nil {
		c.String(svcErr.StatusCode, svcErr.Message)
		return
	}
	c.Redirect(http.StatusFound, url)
}

// Checkout creates a payment link for the whole cart and redirects the buyer
// to the gateway checkout page.
func (sc *StorefrontController) Checkout(c *gin.Context) {
	url, svcErr := sc.checkout.CheckoutCart(c.Request.Context(), buyerFromForm(c))
	if svcErr != nil {
		c.String(svcErr.StatusCode, svcErr.Message)
		return
	}
	c.Redirect(http.StatusFound, url)
}

// CheckUploads lists the files in the upload directory. Diagnostic only.
func (sc *StorefrontController) CheckUploads(c *gin.Context) {
	entries, err := os.ReadDir(sc.uploadDir)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	c.String(http.StatusOK, "Files in uploads: "+strings.Join(names, ", "))
}

func buyerFromForm(c *gin.Context) models.Buyer {
	return models.Buyer{
		Name:  c.PostForm("buyerName"),
		Email: c.PostForm("buyerEmail"),
		Phone: c.PostForm("buyerPhone"),
	}
}
