package loans

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"loantracker-backend/internal/history"
)

type Handler struct{ svc *Service }

// RegisterRoutes mounts the loan log. Deletions go on admin.
func RegisterRoutes(pub, admin gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	pub.GET("/history", h.ListHistory)
	pub.GET("/history/active", h.ListActive)
	pub.POST("/history", h.CreateLoan)

	// 返却
	pub.PUT("/history/return-multiple", h.ReturnMultiple)
	pub.PUT("/history/:record_id/return", h.ReturnOne)

	admin.DELETE("/history/:record_id", h.DeleteRecord)
	admin.DELETE("/history", h.DeleteAll)
}

// ---------- handlers ----------

// ListHistory godoc
// @Summary  Full loan log
// @Tags     history
// @Produce  json
// @Success  200 {array} history.LoanRecord
// @Router   /history [get]
func (h *Handler) ListHistory(c *gin.Context) {
	res, err := h.svc.History(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListActive godoc
// @Summary  Active loans grouped by transaction
// @Tags     history
// @Produce  json
// @Success  200 {array} history.LoanGroup
// @Router   /history/active [get]
func (h *Handler) ListActive(c *gin.Context) {
	res, err := h.svc.ActiveGroups(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// CreateLoan godoc
// @Summary  Lend items to a holder
// @Tags     history
// @Accept   json
// @Produce  json
// @Param    body body history.LoanRequest true "loan"
// @Success  201 {object} history.LoanResult
// @Failure  400,401,404,409 {object} errorDTO
// @Router   /history [post]
func (h *Handler) CreateLoan(c *gin.Context) {
	var req history.LoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.CreateLoan(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// ReturnMultiple godoc
// @Summary  Return a set of records of one holder
// @Tags     history
// @Accept   json
// @Produce  json
// @Param    body body ReturnMultipleRequest true "records"
// @Success  200 {object} history.ReturnResult
// @Failure  400,401,404,409 {object} errorDTO
// @Router   /history/return-multiple [put]
func (h *Handler) ReturnMultiple(c *gin.Context) {
	var req ReturnMultipleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.ReturnRecords(c.Request.Context(), req.RecordIDs, req.HolderPassword)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ReturnOne(c *gin.Context) {
	var req ReturnOneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "invalid json"))
		return
	}
	res, err := h.svc.ReturnRecords(c.Request.Context(), []string{c.Param("record_id")}, req.HolderPassword)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) DeleteRecord(c *gin.Context) {
	if err := h.svc.DeleteRecord(c.Request.Context(), c.Param("record_id")); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) DeleteAll(c *gin.Context) {
	res, err := h.svc.DeleteAll(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ---------- helpers ----------

func respondErr(c *gin.Context, err error) {
	status := ToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[ERROR] loans: %s %s: %v", c.Request.Method, c.FullPath(), err)
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
