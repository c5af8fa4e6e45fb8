package items

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func RegisterRoutes(pub, admin gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	pub.GET("/categories", h.ListCategories)
	pub.GET("/categories/:code/items", h.ListItems)
	admin.POST("/categories/:code/items", h.CreateItem)
	admin.DELETE("/items/:item_id", h.DeleteItem)
}

// ListCategories godoc
// @Summary  List categories
// @Tags     items
// @Produce  json
// @Success  200 {array} CategoryResponse
// @Router   /categories [get]
func (h *Handler) ListCategories(c *gin.Context) {
	res, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListItems godoc
// @Summary  List items of a category with their loan state
// @Tags     items
// @Produce  json
// @Param    code path string true "category code"
// @Success  200 {object} ListItemsResult
// @Failure  404 {object} errorDTO
// @Router   /categories/{code}/items [get]
func (h *Handler) ListItems(c *gin.Context) {
	res, err := h.svc.ListItems(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.CreateItem(c.Request.Context(), c.Param("code"), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) DeleteItem(c *gin.Context) {
	if err := h.svc.DeleteItem(c.Request.Context(), c.Param("item_id")); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ---------- helpers ----------

func respondErr(c *gin.Context, err error) {
	status := ToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[ERROR] items: %s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, errorFromErr(err))
}

type errorDTO struct {
	Error struct {
		Code    Code   `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func errorBody(code Code, msg string) errorDTO {
	var e errorDTO
	e.Error.Code = code
	e.Error.Message = msg
	return e
}

func errorFromErr(err error) errorDTO {
	var api *APIError
	if errors.As(err, &api) {
		return errorBody(api.Code, api.Message)
	}
	return errorBody(CodeInternal, "internal error")
}
