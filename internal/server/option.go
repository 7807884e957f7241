package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	optiondomain "github.com/rfernando-oulu/eComSync/internal/option/domain"
)

const optionCollectionPath = "/api/option/"

type createOptionRequest struct {
	Name  string `json:"name" binding:"required,max=64"`
	Image string `json:"image" binding:"max=256"`
}

type updateOptionRequest struct {
	Name  *string `json:"name_update" binding:"omitempty,max=64"`
	Image *string `json:"image_update" binding:"omitempty,max=256"`
}

func (s *Server) ListOptions(c *gin.Context) {
	items, err := s.optionSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	options := make([]optiondomain.Response, 0, len(items))
	for i := range items {
		options = append(options, optiondomain.ToResponse(&items[i]))
	}

	c.JSON(http.StatusOK, gin.H{"options": options})
}

func (s *Server) CreateOption(c *gin.Context) {
	var req createOptionRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	o, err := s.optionSvc.Create(ctx, optiondomain.CreateRequest{
		Name:  strings.TrimSpace(req.Name),
		Image: strings.TrimSpace(req.Image),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.RecordCatalogWrite(ctx, "option", "create")
	created(c, optionCollectionPath+strconv.FormatInt(o.ID, 10), "Option Added Successfully", o.ID)
}

func (s *Server) UpdateOption(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req updateOptionRequest
	if err := bindJSON(c, &req); err != nil {
		AbortWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	if _, err := s.optionSvc.Update(ctx, id, optiondomain.UpdateRequest{
		Name:  trimmedOrNil(req.Name),
		Image: trimmedOrNil(req.Image),
	}); err != nil {
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.RecordCatalogWrite(ctx, "option", "update")
	ok(c, "Option Updated Successfully")
}

func (s *Server) DeleteOption(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := s.optionSvc.Delete(ctx, id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.obsMetrics.RecordCatalogWrite(ctx, "option", "delete")
	ok(c, "Option Deleted Successfully")
}

func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	return &trimmed
}
