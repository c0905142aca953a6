package main

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"clipshare/cmd/config"
	"clipshare/pkg/auth"
	"clipshare/pkg/database"
	"clipshare/pkg/gateway"
	"clipshare/pkg/handlers"
	"clipshare/pkg/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("Failed to load config: ", err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		logrus.Fatal("Failed to open database: ", err)
	}
	defer db.Close()

	users := store.NewUserStore(db)
	clips := store.NewClipStore(db)

	if err := database.Seed(users, cfg); err != nil {
		logrus.Fatal("Failed to seed database: ", err)
	}

	gw, err := gateway.New(cfg)
	if err != nil {
		logrus.Fatal("Failed to configure media gateway: ", err)
	}

	authMgr := auth.NewManager(users, []byte(cfg.SecretKey))
	h := handlers.New(users, clips, authMgr, gw)

	// Set up Gin router
	r := gin.Default()
	r.Use(sessions.Sessions("clipshare_session", cookie.NewStore([]byte(cfg.SecretKey))))
	r.LoadHTMLGlob("web/templates/*.html")
	r.Static("/static", "web/static")
	h.Routes(r)

	// Start the server
	logrus.Info("Listening on ", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		logrus.Fatal(err)
	}
}
