package favorites

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

// RegisterRoutes mounts the holder-facing routes on pub; the credential-free
// delete goes on admin.
func RegisterRoutes(pub, admin gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	pub.GET("/favorites", h.List)
	pub.GET("/favorites/:list_id", h.Get)
	pub.POST("/favorites", h.Create)
	pub.PUT("/favorites/:list_id", h.Update)
	pub.DELETE("/favorites/:list_id", h.Delete)
	admin.DELETE("/admin/favorites/:list_id", h.ForceDelete)
}

// List godoc
// @Summary  List saved item lists
// @Tags     favorites
// @Produce  json
// @Success  200 {object} ListListsResult
// @Router   /favorites [get]
func (h *Handler) List(c *gin.Context) {
	res, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Get godoc
// @Summary  One list with the loan state of its items
// @Tags     favorites
// @Produce  json
// @Param    list_id path string true "list id"
// @Success  200 {object} ListDetail
// @Failure  404 {object} errorDTO
// @Router   /favorites/{list_id} [get]
func (h *Handler) Get(c *gin.Context) {
	res, err := h.svc.Get(c.Request.Context(), c.Param("list_id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Create godoc
// @Summary  Save an item list for a holder
// @Tags     favorites
// @Accept   json
// @Produce  json
// @Param    body body CreateListRequest true "list"
// @Success  201 {object} ListSummary
// @Failure  401 {object} errorDTO
// @Failure  409 {object} errorDTO
// @Router   /favorites [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Header("Location", "/favorites/"+res.ListID)
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.Update(c.Request.Context(), c.Param("list_id"), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Delete(c *gin.Context) {
	var req DeleteListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "invalid json"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), c.Param("list_id"), req.HolderPassword); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ForceDelete(c *gin.Context) {
	if err := h.svc.ForceDelete(c.Request.Context(), c.Param("list_id")); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ---------- helpers ----------

func respondErr(c *gin.Context, err error) {
	status := ToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[ERROR] favorites: %s %s: %v", c.Request.Method, c.FullPath(), err)
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

// internal errors never leak driver text
func errorFromErr(err error) errorDTO {
	var api *APIError
	if errors.As(err, &api) {
		return errorBody(api.Code, api.Message)
	}
	return errorBody(CodeInternal, "internal error")
}
