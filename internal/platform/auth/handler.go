package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type code string

const (
	codeInvalidArgument code = "INVALID_ARGUMENT"
	codeUnauthorized    code = "UNAUTHORIZED"
	codeForbidden       code = "FORBIDDEN"
	codeNotFound        code = "NOT_FOUND"
	codeConflict        code = "CONFLICT"
	codeInternal        code = "INTERNAL"
)

type errorDTO struct {
	Error struct {
		Code    code   `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func errorBody(c code, msg string) errorDTO {
	var e errorDTO
	e.Error.Code = c
	e.Error.Message = msg
	return e
}

type AuthHandler struct{ svc AuthService }

// RegisterRoutes mounts login on pub and account management on admin.
func RegisterRoutes(pub, admin gin.IRoutes, svc AuthService) {
	h := &AuthHandler{svc: svc}
	pub.POST("/auth/login", h.Login)
	admin.POST("/auth/register", h.Register)
	admin.DELETE("/auth/accounts/:id", h.DeleteAccount)
}

type LoginRequest struct {
	ID       string `json:"id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// Login godoc
// @Summary  Issue an admin token
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body LoginRequest true "credentials"
// @Success  200 {object} LoginResponse
// @Failure  401 {object} errorDTO
// @Router   /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(codeInvalidArgument, "invalid json"))
		return
	}

	token, err := h.svc.Login(c.Request.Context(), req.ID, req.Password)
	if err != nil {
		if !errors.Is(err, ErrInvalidCredentials) {
			log.Printf("[ERROR] auth: login %s: %v", req.ID, err)
		}
		c.JSON(http.StatusUnauthorized, errorBody(codeUnauthorized, "invalid id or password"))
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: token, Message: "Login successful"})
}

type RegisterRequest struct {
	ID       string  `json:"id" binding:"required"`
	Password string  `json:"password" binding:"required"`
	Role     *string `json:"role,omitempty"` // 未指定なら user
}

// Register godoc
// @Summary  Create an account (admin)
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body RegisterRequest true "account"
// @Success  201
// @Failure  409 {object} errorDTO
// @Security Bearer
// @Router   /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(codeInvalidArgument, "invalid json"))
		return
	}

	role := RoleUser
	if req.Role != nil && *req.Role != "" {
		role = *req.Role
	}

	err := h.svc.Register(c.Request.Context(), req.ID, req.Password, role)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"message": "registered"})
	case errors.Is(err, ErrAlreadyExists):
		c.JSON(http.StatusConflict, errorBody(codeConflict, "id already exists"))
	case errors.Is(err, ErrInvalidRole), errors.Is(err, ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, errorBody(codeInvalidArgument, err.Error()))
	default:
		log.Printf("[ERROR] auth: register %s: %v", req.ID, err)
		c.JSON(http.StatusInternalServerError, errorBody(codeInternal, "register failed"))
	}
}

func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, errorBody(codeNotFound, "account not found"))
	default:
		log.Printf("[ERROR] auth: delete %s: %v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, errorBody(codeInternal, "delete failed"))
	}
}
