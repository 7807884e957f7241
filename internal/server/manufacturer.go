package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rfernando-oulu/eComSync/internal/hypermedia"
	manufacturerdomain "github.com/rfernando-oulu/eComSync/internal/manufacturer/domain"
	"github.com/rfernando-oulu/eComSync/pkg/form"
)

const (
	manufacturerCollectionPath = "/api/manufacturer/"
	productCollectionPath      = "/api/product/"
)

type createManufacturerRequest struct {
	Name        string `json:"name" binding:"required,max=64"`
	Image       string `json:"image" binding:"required,max=256"`
	Description string `json:"description" binding:"required,max=256"`
}

type updateManufacturerRequest struct {
	Name        string `json:"name_update" binding:"required,max=64"`
	Image       string `json:"image_update" binding:"max=256"`
	Description string `json:"description_update" binding:"max=256"`
}

type manufacturerCollectionResponse struct {
	hypermedia.Meta
	Items []manufacturerItemResponse `json:"items"`
}

type manufacturerItemResponse struct {
	manufacturerdomain.Response
	hypermedia.Meta
}

type manufacturerDetail struct {
	manufacturerdomain.Response
	hypermedia.Meta
	Products []manufacturerProduct `json:"products"`
}

type manufacturerProduct struct {
	ID   int64  `json:"product_id"`
	Name string `json:"product_name"`
	hypermedia.Meta
}

func manufacturerPath(id int64) string {
	return manufacturerCollectionPath + strconv.FormatInt(id, 10)
}

func productPath(id int64) string {
	return productCollectionPath + strconv.FormatInt(id, 10)
}

func (s *Server) ListManufacturers(c *gin.Context) {
	f, err := parseFormQuery(c, form.Long)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	items, err := s.manufacturerSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	body := manufacturerCollectionResponse{
		Meta:  hypermedia.NewMeta(""),
		Items: make([]manufacturerItemResponse, 0, len(items)),
	}
	body.AddNamespace(hypermedia.StorageNamespace, hypermedia.LinkRelations)
	body.AddManufacturerCollection(manufacturerCollectionPath)

	for i := range items {
		item := manufacturerItemResponse{
			Response: manufacturerdomain.ToResponse(&items[i], f),
			Meta:     hypermedia.NewMeta(""),
		}
		item.AddManufacturer(manufacturerPath(items[i].ID))
		body.Items = append(body.Items, item)
	}

	c.JSON(http.StatusOK, body)
}

func (s *Server) CreateManufacturer(c *gin.Context) {
	var req createManufacturerRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	m, err := s.manufacturerSvc.Create(ctx, manufacturerdomain.CreateRequest{
		Name:        strings.TrimSpace(req.Name),
		Image:       strings.TrimSpace(req.Image),
		Description: strings.TrimSpace(req.Description),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.RecordCatalogWrite(ctx, "manufacturer", "create")
	created(c, manufacturerPath(m.ID), "Manufacturer Added Successfully", m.ID)
}

func (s *Server) GetManufacturer(c *gin.Context) {
	m := manufacturerFromContext(c)

	products, err := s.manufacturerSvc.Products(c.Request.Context(), m.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	detail := manufacturerDetail{
		Response: manufacturerdomain.ToDetailResponse(m),
		Meta:     hypermedia.Meta{Controls: hypermedia.Self(manufacturerPath(m.ID))},
		Products: make([]manufacturerProduct, 0, len(products)),
	}
	for _, p := range products {
		entry := manufacturerProduct{ID: p.ID, Name: p.Name, Meta: hypermedia.NewMeta("")}
		entry.AddControl("self", productPath(p.ID), hypermedia.Control{
			Method: http.MethodGet,
			Title:  "View product",
		})
		detail.Products = append(detail.Products, entry)
	}

	c.JSON(http.StatusOK, gin.H{"manufacturer": []manufacturerDetail{detail}})
}

func (s *Server) UpdateManufacturer(c *gin.Context) {
	var req updateManufacturerRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	m := manufacturerFromContext(c)
	if _, err := s.manufacturerSvc.Update(ctx, m.ID, manufacturerdomain.UpdateRequest{
		Name:        strings.TrimSpace(req.Name),
		Image:       strings.TrimSpace(req.Image),
		Description: strings.TrimSpace(req.Description),
	}); err != nil {
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.RecordCatalogWrite(ctx, "manufacturer", "update")
	ok(c, "Manufacturer Updated Successfully")
}

func (s *Server) DeleteManufacturer(c *gin.Context) {
	ctx := c.Request.Context()
	m := manufacturerFromContext(c)
	if err := s.manufacturerSvc.Delete(ctx, m.ID); err != nil {
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.RecordCatalogWrite(ctx, "manufacturer", "delete")
	ok(c, "Manufacturer Deleted Successfully")
}
