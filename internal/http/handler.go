package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"polygon-service/internal/http/middleware"
	"polygon-service/internal/service"
)

type Handler struct {
	polygonService *service.PolygonService
	markerService  *service.MarkerService
	userService    *service.UserService
	log            zerolog.Logger
}

func NewHandler(
	polygonService *service.PolygonService,
	markerService *service.MarkerService,
	userService *service.UserService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		polygonService: polygonService,
		markerService:  markerService,
		userService:    userService,
		log:            log,
	}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	api := r.Group("/api")
	{
		api.POST("/polygon", h.createPolygon)
		api.GET("/polygons", h.listPolygons)
		api.GET("/polygons/email", h.listPolygonsByEmail)
		api.GET("/polygons/tag", h.listPolygonsByTag)
		api.PUT("/polygon/:id", h.updatePolygon)
		api.PUT("/polygon/:id/like", h.likePolygon)
		api.PUT("/polygon/:id/review", h.reviewPolygon)
		api.DELETE("/polygon/:id", h.deletePolygon)

		api.POST("/marker", h.createMarker)
		api.GET("/markers", h.listMarkers)

		api.POST("/signup", h.signUp)
		api.POST("/signin", h.signIn)
		api.GET("/user", h.getUser)
		api.GET("/users", h.listUsers)

		protected := api.Group("")
		protected.Use(authMiddleware)
		protected.GET("/me", h.me)
	}
}

// Polygon handlers

func (h *Handler) createPolygon(c *gin.Context) {
	var req struct {
		Coordinates [][][]float64 `json:"coordinates"`
		Description string        `json:"description"`
		Color       *string       `json:"color"`
		Area        *float64      `json:"area"`
		Date        string        `json:"date"`
		Reviews     []string      `json:"reviews"`
		Likes       *int64        `json:"likes"`
		Name        string        `json:"name"`
		Email       string        `json:"email"`
		Tag         *string       `json:"tag"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("error saving data", err))
		return
	}

	polygon, err := h.polygonService.Create(c.Request.Context(), service.CreatePolygonInput{
		Coordinates: req.Coordinates,
		Description: req.Description,
		Color:       req.Color,
		Area:        req.Area,
		Date:        req.Date,
		Reviews:     req.Reviews,
		Likes:       req.Likes,
		Name:        req.Name,
		Email:       req.Email,
		Tag:         req.Tag,
	})
	if err != nil {
		h.handleError(c, "error saving data", err)
		return
	}

	c.JSON(http.StatusCreated, polygon)
}

func (h *Handler) listPolygons(c *gin.Context) {
	polygons, err := h.polygonService.List(c.Request.Context())
	if err != nil {
		h.handleError(c, "error fetching data", err)
		return
	}

	c.JSON(http.StatusOK, polygons)
}

func (h *Handler) updatePolygon(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, messageResponse("invalid polygon id"))
		return
	}

	var req struct {
		Coordinates [][][]float64 `json:"coordinates"`
		Description *string       `json:"description"`
		Color       *string       `json:"color"`
		Area        *float64      `json:"area"`
		Date        *string       `json:"date"`
		Reviews     []string      `json:"reviews"`
		Likes       *int64        `json:"likes"`
		Name        *string       `json:"name"`
		Email       *string       `json:"email"`
		Tag         *string       `json:"tag"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("error updating data", err))
		return
	}

	polygon, err := h.polygonService.Update(c.Request.Context(), id, service.UpdatePolygonInput{
		Coordinates: req.Coordinates,
		Description: req.Description,
		Color:       req.Color,
		Area:        req.Area,
		Date:        req.Date,
		Reviews:     req.Reviews,
		Likes:       req.Likes,
		Name:        req.Name,
		Email:       req.Email,
		Tag:         req.Tag,
	})
	if err != nil {
		h.handleError(c, "error updating data", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "polygon updated successfully",
		"polygon": polygon,
	})
}

func (h *Handler) likePolygon(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, messageResponse("invalid polygon id"))
		return
	}

	likes, err := h.polygonService.Like(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, "error updating likes", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

func (h *Handler) reviewPolygon(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, messageResponse("invalid polygon id"))
		return
	}

	var req struct {
		Review string `json:"review"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("error updating reviews", err))
		return
	}

	reviews, err := h.polygonService.AddReview(c.Request.Context(), id, req.Review)
	if err != nil {
		h.handleError(c, "error updating reviews", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

func (h *Handler) deletePolygon(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, messageResponse("invalid polygon id"))
		return
	}

	polygon, err := h.polygonService.Delete(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, "error deleting polygon", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "polygon deleted successfully",
		"deletedPolygon": polygon,
	})
}

func (h *Handler) listPolygonsByEmail(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		c.JSON(http.StatusBadRequest, messageResponse("email is required"))
		return
	}

	polygons, err := h.polygonService.ListByEmail(c.Request.Context(), email)
	if err != nil {
		h.handleError(c, "error fetching polygons", err)
		return
	}

	c.JSON(http.StatusOK, polygons)
}

func (h *Handler) listPolygonsByTag(c *gin.Context) {
	tag := strings.TrimSpace(c.Query("tag"))
	if tag == "" {
		c.JSON(http.StatusBadRequest, messageResponse("tag is required"))
		return
	}

	polygons, err := h.polygonService.ListByTag(c.Request.Context(), tag)
	if err != nil {
		h.handleError(c, "error fetching polygons", err)
		return
	}

	c.JSON(http.StatusOK, polygons)
}

// Marker handlers

func (h *Handler) createMarker(c *gin.Context) {
	var req struct {
		Coordinates []float64 `json:"coordinates"`
		Description string    `json:"description"`
		Date        string    `json:"date"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("error saving marker data", err))
		return
	}

	marker, err := h.markerService.Create(c.Request.Context(), service.CreateMarkerInput{
		Coordinates: req.Coordinates,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		h.handleError(c, "error saving marker data", err)
		return
	}

	c.JSON(http.StatusCreated, marker)
}

func (h *Handler) listMarkers(c *gin.Context) {
	markers, err := h.markerService.List(c.Request.Context())
	if err != nil {
		h.handleError(c, "error fetching markers", err)
		return
	}

	c.JSON(http.StatusOK, markers)
}

// Account handlers

func (h *Handler) signUp(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		Password    string `json:"password"`
		DateOfBirth string `json:"dateOfBirth"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("error during signup", err))
		return
	}

	profile, err := h.userService.SignUp(c.Request.Context(), service.SignUpInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		h.handleError(c, "error during signup", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "signup successful",
		"person":  profile,
	})
}

func (h *Handler) signIn(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("error during sign in", err))
		return
	}

	token, err := h.userService.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.handleError(c, "error during sign in", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "sign in successful",
		"token":   token,
	})
}

func (h *Handler) getUser(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		c.JSON(http.StatusBadRequest, messageResponse("email is required"))
		return
	}

	profile, err := h.userService.GetByEmail(c.Request.Context(), email)
	if err != nil {
		h.handleError(c, "error fetching user details", err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		h.handleError(c, "error fetching users", err)
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *Handler) me(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, messageResponse("missing principal"))
		return
	}

	profile, err := h.userService.GetByID(c.Request.Context(), principal.UserID)
	if err != nil {
		h.handleError(c, "error fetching user details", err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// handleError maps service failures onto the HTTP error taxonomy:
// invalid input and credentials are client errors, missing records are
// 404, everything else is an infrastructure fault. The credential case
// carries no detail string so sign-in failures stay indistinguishable.
func (h *Handler) handleError(c *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, messageResponse(service.ErrInvalidCredentials.Error()))
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, messageResponse(service.ErrEmailTaken.Error()))
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(message, err))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(message, err))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse(message, err))
	}
}

func messageResponse(message string) gin.H {
	return gin.H{"message": message}
}

func errorResponse(message string, err error) gin.H {
	return gin.H{
		"message": message,
		"error":   err.Error(),
	}
}
