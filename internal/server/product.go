package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rfernando-oulu/eComSync/internal/hypermedia"
	productdomain "github.com/rfernando-oulu/eComSync/internal/product/domain"
	"github.com/rfernando-oulu/eComSync/pkg/form"
)

type createProductRequest struct {
	Name            string     `json:"name" binding:"required,max=64"`
	Description     string     `json:"description" binding:"max=256"`
	ManufacturerID  *flexInt   `json:"manufacturerId" binding:"required"`
	SKU             string     `json:"sku" binding:"required,max=64"`
	Quantity        *flexInt   `json:"quantity" binding:"required"`
	Image           string     `json:"image" binding:"max=256"`
	Price           *flexFloat `json:"price"`
	Width           *flexFloat `json:"width"`
	DateAdded       *flexTime  `json:"date_added"`
	SelectedOptions []flexInt  `json:"selectedOptions"`
}

type updateProductRequest struct {
	Name        string     `json:"name_update" binding:"required,max=64"`
	Description string     `json:"description_update" binding:"max=256"`
	SKU         string     `json:"sku_update" binding:"required,max=64"`
	Quantity    *flexInt   `json:"quantity_update" binding:"required"`
	Image       string     `json:"image_update" binding:"max=256"`
	Price       *flexFloat `json:"price_update"`
	Width       *flexFloat `json:"width_update"`
}

type productItemResponse struct {
	productdomain.Response
	hypermedia.Meta
}

type productDetailResponse struct {
	productdomain.DetailResponse
	hypermedia.Meta
}

func productUpdateSchema() *hypermedia.Schema {
	return hypermedia.ObjectSchema("name_update", "sku_update", "quantity_update").
		Prop("name_update", "string", "Product's name").
		Prop("description_update", "string", "Product's description").
		Prop("sku_update", "string", "Stock keeping unit").
		Prop("quantity_update", "integer", "Units in stock").
		Prop("image_update", "string", "Product's image").
		Prop("price_update", "number", "Unit price").
		Prop("width_update", "number", "Frame width")
}

func (s *Server) ListProducts(c *gin.Context) {
	f, err := parseFormQuery(c, form.Short)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	items, err := s.productSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	products := make([]productItemResponse, 0, len(items))
	for i := range items {
		products = append(products, productItemResponse{
			Response: productdomain.ToResponse(&items[i], f),
			Meta:     hypermedia.Meta{Controls: hypermedia.Self(productPath(items[i].ID))},
		})
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (s *Server) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	optionIDs := make([]int64, 0, len(req.SelectedOptions))
	for _, id := range req.SelectedOptions {
		optionIDs = append(optionIDs, int64(id))
	}

	ctx := c.Request.Context()
	p, err := s.productSvc.Create(ctx, productdomain.CreateRequest{
		Name:           strings.TrimSpace(req.Name),
		Description:    strings.TrimSpace(req.Description),
		ManufacturerID: int64(*req.ManufacturerID),
		SKU:            strings.TrimSpace(req.SKU),
		Quantity:       int64(*req.Quantity),
		Image:          strings.TrimSpace(req.Image),
		Price:          floatOrZero(req.Price),
		Width:          floatOrZero(req.Width),
		DateAdded:      timeOrNil(req.DateAdded),
		OptionIDs:      optionIDs,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.RecordCatalogWrite(ctx, "product", "create")
	created(c, productPath(p.ID), "Product Added Successfully", p.ID)
}

func (s *Server) GetProduct(c *gin.Context) {
	f, err := parseFormQuery(c, form.Long)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	p := productFromContext(c)
	detail, err := s.productSvc.Detail(c.Request.Context(), p.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	href := productPath(p.ID)
	body := productDetailResponse{
		DetailResponse: productdomain.ToDetailResponse(detail, f),
		Meta:           hypermedia.NewMeta(""),
	}
	body.AddControl("self", href, hypermedia.Control{})
	body.AddControl("collection", productCollectionPath, hypermedia.Control{Method: http.MethodGet})
	body.AddControlPut("Edit this product", href, productUpdateSchema())
	body.AddControlDelete("Delete this product", href)

	c.JSON(http.StatusOK, body)
}

func (s *Server) UpdateProduct(c *gin.Context) {
	var req updateProductRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	p := productFromContext(c)
	if _, err := s.productSvc.Update(ctx, p.ID, productdomain.UpdateRequest{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		SKU:         strings.TrimSpace(req.SKU),
		Quantity:    int64(*req.Quantity),
		Image:       strings.TrimSpace(req.Image),
		Price:       floatOrZero(req.Price),
		Width:       floatOrZero(req.Width),
	}); err != nil {
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.RecordCatalogWrite(ctx, "product", "update")
	ok(c, "Product Updated Successfully")
}

func (s *Server) DeleteProduct(c *gin.Context) {
	ctx := c.Request.Context()
	p := productFromContext(c)
	if err := s.productSvc.Delete(ctx, p.ID); err != nil {
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.RecordCatalogWrite(ctx, "product", "delete")
	ok(c, "Product Deleted Successfully")
}

func isProductValidationError(err error) bool {
	switch {
	case errors.Is(err, productdomain.ErrInvalidName),
		errors.Is(err, productdomain.ErrInvalidSKU),
		errors.Is(err, productdomain.ErrInvalidQuantity),
		errors.Is(err, productdomain.ErrInvalidPrice),
		errors.Is(err, productdomain.ErrInvalidWidth),
		errors.Is(err, productdomain.ErrUnknownManufacturer),
		errors.Is(err, productdomain.ErrUnknownOption):
		return true
	default:
		return false
	}
}
