package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"clipshare/pkg/auth"
	"clipshare/pkg/gateway"
	"clipshare/pkg/models"
	"clipshare/pkg/store"
)

type Handler struct {
	users   *store.UserStore
	clips   *store.ClipStore
	auth    *auth.Manager
	gateway gateway.Gateway
}

func New(users *store.UserStore, clips *store.ClipStore, am *auth.Manager, gw gateway.Gateway) *Handler {
	return &Handler{users: users, clips: clips, auth: am, gateway: gw}
}

// Routes registers every route on r.
func (h *Handler) Routes(r *gin.Engine) {
	r.GET("/", h.Index)
	r.GET("/register", h.Register)
	r.POST("/register", h.Register)
	r.GET("/login", h.Login)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)
	r.GET("/upload", h.Upload)
	r.POST("/upload", h.Upload)
	r.POST("/delete/:id", h.Delete)
	r.POST("/api/token", h.APIToken)
}

type Credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Index(c *gin.Context) {
	clips, err := h.clips.ListByRecency()
	if err != nil {
		logrus.WithError(err).Error("Failed to list clips")
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}
	user, _ := h.auth.CurrentUser(c)
	c.HTML(http.StatusOK, "index.html", gin.H{
		"clips":   clips,
		"user":    user,
		"flashes": auth.Flashes(c),
	})
}

func (h *Handler) Register(c *gin.Context) {
	if c.Request.Method == http.MethodGet {
		c.HTML(http.StatusOK, "register.html", gin.H{"flashes": auth.Flashes(c)})
		return
	}

	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	if username == "" || password == "" {
		auth.Flash(c, "Username and password are required")
		c.Redirect(http.StatusFound, "/register")
		return
	}

	if _, err := h.users.Create(username, password); err != nil {
		if errors.Is(err, store.ErrDuplicateUsername) {
			auth.Flash(c, "Username already exists")
			c.Redirect(http.StatusFound, "/register")
			return
		}
		logrus.WithError(err).WithField("username", username).Error("Failed to create user")
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	logrus.WithField("username", username).Info("User registered")
	c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) Login(c *gin.Context) {
	if c.Request.Method == http.MethodGet {
		c.HTML(http.StatusOK, "login.html", gin.H{"flashes": auth.Flashes(c)})
		return
	}

	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	// Unknown user and wrong password produce the same outcome on purpose.
	user, err := h.users.FindByUsername(username)
	if err != nil || !h.users.Verify(user, password) {
		logrus.WithField("username", username).Warn("Login failed")
		auth.Flash(c, "Invalid username or password")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if err := h.auth.LogIn(c, user); err != nil {
		logrus.WithError(err).Error("Failed to save session")
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) Logout(c *gin.Context) {
	if _, ok := h.auth.RequireAuth(c); !ok {
		return
	}
	if err := h.auth.LogOut(c); err != nil {
		logrus.WithError(err).Error("Failed to clear session")
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) Upload(c *gin.Context) {
	user, ok := h.auth.RequireAuth(c)
	if !ok {
		return
	}

	if c.Request.Method == http.MethodGet {
		c.HTML(http.StatusOK, "upload.html", gin.H{
			"user":    user,
			"flashes": auth.Flashes(c),
		})
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	game := strings.TrimSpace(c.PostForm("game"))
	if title == "" || game == "" {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Title and game are required"})
		return
	}

	fileHeader, err := c.FormFile("video")
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "No video file sent"})
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Failed to read uploaded file"})
		return
	}
	defer src.Close()

	result, err := h.gateway.Upload(c.Request.Context(), src, fileHeader.Filename)
	if err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Warn("Gateway upload failed")
		c.JSON(http.StatusOK, gin.H{"success": false, "message": fmt.Sprintf("Upload failed: %s", err)})
		return
	}

	clip := models.Clip{
		Title:    title,
		Game:     game,
		VideoURL: result.SecureURL,
		PublicID: result.PublicID,
		UserID:   user.ID,
	}
	if err := h.clips.Create(&clip); err != nil {
		logrus.WithError(err).Error("Failed to save clip")
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Failed to save clip"})
		return
	}

	logrus.WithFields(logrus.Fields{"clip_id": clip.ID, "user_id": user.ID}).Info("Clip uploaded")
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Upload successful"})
}

func (h *Handler) Delete(c *gin.Context) {
	user, ok := h.auth.RequireAuth(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, "Not found")
		return
	}

	clip, err := h.clips.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, store.ErrClipNotFound) {
			c.String(http.StatusNotFound, "Not found")
			return
		}
		logrus.WithError(err).Error("Failed to load clip")
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	if clip.UserID != user.ID {
		auth.Flash(c, "You do not have permission to delete this clip")
		c.Redirect(http.StatusFound, "/")
		return
	}

	// The local record goes away even when the remote destroy fails; the
	// failure is only reported.
	if err := h.gateway.Destroy(c.Request.Context(), clip.PublicID); err != nil {
		logrus.WithError(err).WithField("public_id", clip.PublicID).Warn("Gateway destroy failed")
		auth.Flash(c, fmt.Sprintf("Error deleting clip from media host: %s", err))
	} else {
		auth.Flash(c, "Clip deleted")
	}

	if err := h.clips.Delete(clip); err != nil {
		logrus.WithError(err).Error("Failed to delete clip")
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	logrus.WithFields(logrus.Fields{"clip_id": clip.ID, "user_id": user.ID}).Info("Clip deleted")
	c.Redirect(http.StatusFound, "/")
}

// APIToken exchanges credentials for a bearer token usable on /upload by
// programmatic clients.
func (h *Handler) APIToken(c *gin.Context) {
	var creds Credentials
	if err := c.BindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := h.users.FindByUsername(creds.Username)
	if err != nil || !h.users.Verify(user, creds.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	token, err := h.auth.GenerateToken(user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
