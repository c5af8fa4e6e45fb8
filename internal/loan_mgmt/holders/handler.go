package holders

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

// RegisterRoutes mounts reads on pub and writes on admin.
func RegisterRoutes(pub, admin gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}
	pub.GET("/holders", h.List)
	pub.GET("/holders/:holder_id", h.Get)
	admin.POST("/holders", h.Create)
	admin.DELETE("/holders/:holder_id", h.Delete)
}

// List godoc
// @Summary  List holders
// @Tags     holders
// @Produce  json
// @Success  200 {object} ListHoldersResult
// @Router   /holders [get]
func (h *Handler) List(c *gin.Context) {
	res, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Get(c *gin.Context) {
	res, err := h.svc.Get(c.Request.Context(), c.Param("holder_id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Create godoc
// @Summary  Register a holder (admin)
// @Tags     holders
// @Accept   json
// @Produce  json
// @Param    body body CreateHolderRequest true "holder"
// @Success  201 {object} HolderResponse
// @Failure  409 {object} errorDTO
// @Security Bearer
// @Router   /holders [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateHolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Header("Location", "/holders/"+res.HolderID)
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("holder_id")); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ---------- helpers ----------

func respondErr(c *gin.Context, err error) {
	status := ToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[ERROR] holders: %s %s: %v", c.Request.Method, c.FullPath(), err)
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
