package auth

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"clipshare/pkg/models"
	"clipshare/pkg/store"
)

const userKey = "user_id"

// Identity is the capability an authenticated principal exposes to the
// session layer.
type Identity interface {
	IdentityID() uint
}

// Manager binds an authenticated identity to a request, either through the
// signed session cookie set at login or through a bearer token minted by
// GenerateJWT.
type Manager struct {
	users  *store.UserStore
	secret []byte
}

func NewManager(users *store.UserStore, secret []byte) *Manager {
	return &Manager{users: users, secret: secret}
}

func (m *Manager) LogIn(c *gin.Context, id Identity) error {
	s := sessions.Default(c)
	s.Set(userKey, id.IdentityID())
	return s.Save()
}

func (m *Manager) LogOut(c *gin.Context) error {
	s := sessions.Default(c)
	s.Delete(userKey)
	return s.Save()
}

func (m *Manager) CurrentUser(c *gin.Context) (*models.User, bool) {
	s := sessions.Default(c)
	if v := s.Get(userKey); v != nil {
		if id, ok := v.(uint); ok {
			if user, err := m.users.FindByID(id); err == nil {
				return user, true
			}
		}
	}

	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		claims, err := ValidateJWT(m.secret, strings.TrimPrefix(header, "Bearer "))
		if err == nil {
			if user, err := m.users.FindByUsername(claims.Username); err == nil {
				return user, true
			}
		}
	}

	return nil, false
}

// RequireAuth is called at the top of protected handlers. When no identity is
// bound it redirects to the login page and reports false; the handler must
// return without writing anything further.
func (m *Manager) RequireAuth(c *gin.Context) (*models.User, bool) {
	if user, ok := m.CurrentUser(c); ok {
		return user, true
	}
	c.Redirect(http.StatusFound, "/login")
	return nil, false
}

func (m *Manager) GenerateToken(username string) (string, error) {
	return GenerateJWT(m.secret, username)
}

// Flash queues a one-shot message for the next rendered page.
func Flash(c *gin.Context, msg string) {
	s := sessions.Default(c)
	s.AddFlash(msg)
	_ = s.Save()
}

// Flashes drains queued flash messages.
func Flashes(c *gin.Context) []string {
	s := sessions.Default(c)
	raw := s.Flashes()
	if len(raw) > 0 {
		_ = s.Save()
	}
	msgs := make([]string, 0, len(raw))
	for _, f := range raw {
		if m, ok := f.(string); ok {
			msgs = append(msgs, m)
		}
	}
	return msgs
}
