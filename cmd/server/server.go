package main

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dottie-backend/internal/analysis"
	"dottie-backend/internal/auth"
	"dottie-backend/internal/graph"
	"dottie-backend/internal/rules"
	"dottie-backend/internal/users"
	"dottie-backend/pkg/apperrors"
)

// analyzerService is the analysis orchestrator surface the handlers need
type analyzerService interface {
	AnalyzeDescription(ctx context.Context, description string) ([]graph.ConditionMatch, error)
	AnalyzeObservation(ctx context.Context, obs analysis.Observation) (*analysis.Result, error)
}

// contentStore serves the educational content lookup
type contentStore interface {
	QueryEducationalContentByCondition(ctx context.Context, condition string) ([]graph.ContentRef, error)
}

// userStore is the account storage surface
type userStore interface {
	Create(ctx context.Context, user users.User) error
	GetByEmail(ctx context.Context, email string) (*users.User, error)
	UpdatePassword(ctx context.Context, email, hashedPassword string) error
	Delete(ctx context.Context, email string) error
}

// tokenService issues and resolves bearer tokens
type tokenService interface {
	IssueToken(email string) (string, error)
	ResolveSubject(token string) (string, error)
}

type server struct {
	analyzer analyzerService
	content  contentStore
	users    userStore
	tokens   tokenService
	logger   *zap.Logger
}

func newServer(analyzer analyzerService, content contentStore, userStore userStore, tokens tokenService, log *zap.Logger) *server {
	return &server{
		analyzer: analyzer,
		content:  content,
		users:    userStore,
		tokens:   tokens,
		logger:   log,
	}
}

// registerRoutes mounts every endpoint on the router
func (s *server) registerRoutes(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	symptoms := router.Group("/symptoms")
	{
		symptoms.POST("/analyze", s.handleAnalyze)
		symptoms.POST("/check", s.handleCheck)
		symptoms.POST("/identify", s.handleIdentify)
	}

	content := router.Group("/content")
	{
		content.POST("/get_content", s.handleGetContent)
	}

	userRoutes := router.Group("/users")
	{
		userRoutes.POST("/register", s.handleRegister)
		userRoutes.POST("/login", s.handleLogin)
		userRoutes.PUT("/update", s.handleUpdateUser)
		userRoutes.DELETE("/delete", s.handleDeleteUser)
	}
}

// analyzeRequest covers both entry modes: a free-text description, or a
// structured cycle observation.
type analyzeRequest struct {
	Description   string   `json:"description"`
	Symptoms      []string `json:"symptoms"`
	CycleLength   int      `json:"cycle_length"`
	CycleDuration int      `json:"cycle_duration"`
	MissedPeriods int      `json:"missed_periods"`
	Age           int      `json:"age"`
}

func (s *server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	if req.Description != "" {
		matches, err := s.analyzer.AnalyzeDescription(ctx, req.Description)
		if err != nil {
			s.fail(c, "Failed to analyze description", err)
			return
		}
		c.JSON(http.StatusOK, matches)
		return
	}

	result, err := s.analyzer.AnalyzeObservation(ctx, analysis.Observation{
		CycleLength:   req.CycleLength,
		CycleDuration: req.CycleDuration,
		Symptoms:      req.Symptoms,
		MissedPeriods: req.MissedPeriods,
		Age:           req.Age,
	})
	if err != nil {
		s.fail(c, "Failed to analyze observation", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// cycleRequest binds the length and duration through pointers so a zero
// value, which the rules classify, is not confused with a missing field.
type cycleRequest struct {
	CycleLength   *int     `json:"cycle_length" binding:"required"`
	CycleDuration *int     `json:"cycle_duration" binding:"required"`
	Symptoms      []string `json:"symptoms"`
	MissedPeriods int      `json:"missed_periods"`
}

func (s *server) handleCheck(c *gin.Context) {
	var req cycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := rules.ClassifyCycle(rules.Observation{
		CycleLength:   *req.CycleLength,
		CycleDuration: *req.CycleDuration,
		Symptoms:      req.Symptoms,
		MissedPeriods: req.MissedPeriods,
	})

	c.JSON(http.StatusOK, gin.H{
		"status":         result.Status,
		"recommendation": result.Recommendation,
	})
}

func (s *server) handleIdentify(c *gin.Context) {
	var req cycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := rules.ClassifyCycle(rules.Observation{
		CycleLength:   *req.CycleLength,
		CycleDuration: *req.CycleDuration,
		Symptoms:      req.Symptoms,
		MissedPeriods: req.MissedPeriods,
	})

	c.JSON(http.StatusOK, result)
}

func (s *server) handleGetContent(c *gin.Context) {
	var req struct {
		Condition string `json:"condition" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	refs, err := s.content.QueryEducationalContentByCondition(c.Request.Context(), req.Condition)
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No educational content found for the given condition"})
			return
		}
		s.fail(c, "Failed to fetch educational content", err)
		return
	}

	c.JSON(http.StatusOK, refs)
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (s *server) handleRegister(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		s.fail(c, "Failed to hash password", err)
		return
	}

	if err := s.users.Create(ctx, users.User{Email: req.Email, HashedPassword: hashed}); err != nil {
		if apperrors.Is(err, apperrors.KindValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email is already registered"})
			return
		}
		s.fail(c, "Failed to register user", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "User registered successfully"})
}

func (s *server) handleLogin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := s.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil && !apperrors.Is(err, apperrors.KindNotFound) {
		s.fail(c, "Failed to look up user", err)
		return
	}
	if user == nil || !auth.CheckPassword(req.Password, user.HashedPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := s.tokens.IssueToken(user.Email)
	if err != nil {
		s.fail(c, "Failed to issue token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (s *server) handleUpdateUser(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required,email"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subject, ok := s.authenticate(c)
	if !ok {
		return
	}
	if subject != req.Email {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to update this user"})
		return
	}

	if req.NewPassword != "" {
		hashed, err := auth.HashPassword(req.NewPassword)
		if err != nil {
			s.fail(c, "Failed to hash password", err)
			return
		}
		if err := s.users.UpdatePassword(c.Request.Context(), req.Email, hashed); err != nil {
			s.fail(c, "Failed to update user", err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"msg": "User updated successfully"})
}

func (s *server) handleDeleteUser(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email query parameter is required"})
		return
	}

	subject, ok := s.authenticate(c)
	if !ok {
		return
	}
	if subject != email {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to delete this user"})
		return
	}

	if err := s.users.Delete(c.Request.Context(), email); err != nil {
		s.fail(c, "Failed to delete user", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "User deleted successfully"})
}

// authenticate resolves the bearer token to a registered user's email. It
// writes the error response itself and reports success via the bool.
func (s *server) authenticate(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing bearer token"})
		return "", false
	}

	subject, err := s.tokens.ResolveSubject(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
		return "", false
	}

	// The token must still map to an existing account
	if _, err := s.users.GetByEmail(c.Request.Context(), subject); err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
			return "", false
		}
		s.fail(c, "Failed to look up user", err)
		return "", false
	}

	return subject, true
}

// fail logs the error and writes the status its kind maps to. Anything
// unclassified is a 500.
func (s *server) fail(c *gin.Context, msg string, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(msg, zap.Error(err))
	}
	c.JSON(status, gin.H{"error": msg})
}
