package main

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"

	"clubbot/internal/api/handler"
	"clubbot/internal/api/middleware"
	"clubbot/internal/api/websocket"
	"clubbot/internal/bot"
	"clubbot/internal/config"
	"clubbot/internal/model"
	"clubbot/internal/permission"
	"clubbot/internal/service"
	"clubbot/internal/store"

	"github.com/gin-gonic/gin"
)

const jwtSecretFile = ".jwt_secret"

func resolveJWTSecret(cfg config.Config) string {
	if cfg.JWTSecret != "" {
		return cfg.JWTSecret
	}

	secretBytes, err := os.ReadFile(jwtSecretFile)
	if err != nil {
		if os.IsNotExist(err) {
			log.Println("JWT secret file not found, generating a new one...")
			newSecret, err := generateRandomString(32)
			if err != nil {
				log.Fatalf("failed to generate JWT secret: %v", err)
			}
			if err := os.WriteFile(jwtSecretFile, []byte(newSecret), 0600); err != nil {
				log.Fatalf("failed to write JWT secret to file: %v", err)
			}
			log.Printf("Generated and saved new JWT secret to %s", jwtSecretFile)
			return newSecret
		}
		log.Fatalf("failed to read JWT secret file: %v", err)
	}
	return string(secretBytes)
}

func generateRandomString(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// seedInitialAccount creates the first HR dashboard account on an empty
// database.
func seedInitialAccount(st *store.Store) {
	count, err := st.AccountCount()
	if err != nil {
		log.Fatalf("failed to count accounts: %v", err)
	}
	if count > 0 {
		return
	}

	account := model.Account{
		Username: "admin",
		Password: "admin123",
		Role:     model.AccountRoleHR,
	}
	if err := st.CreateAccount(&account); err != nil {
		log.Fatalf("failed to create initial account: %v", err)
	}
	log.Println("Created initial HR account. Password: 'admin123'")
}

func setupRouter(st *store.Store, jwtSecret string, contributions *service.ContributionService, roles *service.RoleService, moderation *service.ModerationService) http.Handler {
	router := gin.Default()
	router.Use(middleware.CORSMiddleware())

	public := router.Group("/api/v1")
	{
		public.POST("/login", handler.Login(st, jwtSecret))
	}

	auth := router.Group("/api/v1")
	auth.Use(middleware.AuthMiddleware(st, jwtSecret))
	{
		// Contributions
		auth.GET("/contributions", middleware.RequireHR(), handler.ListContributions(contributions))
		auth.GET("/contributions/pending", middleware.RequireHR(), handler.PendingContributions(contributions))
		auth.POST("/contributions", handler.SubmitContribution(contributions))
		auth.POST("/contributions/:id/approve", middleware.RequireHR(), handler.ApproveContribution(contributions))
		auth.POST("/contributions/:id/reject", middleware.RequireHR(), handler.RejectContribution(contributions))

		// Club roles
		auth.GET("/roles", middleware.RequireHR(), handler.ListRoles(roles))
		auth.POST("/roles", middleware.RequireHR(), handler.CreateRole(roles))
		auth.DELETE("/roles/:id", middleware.RequireHR(), handler.DeleteRole(roles))
		auth.GET("/roles/:id/members", middleware.RequireHR(), handler.RoleMembers(roles))
		auth.POST("/roles/:id/members", middleware.RequireHR(), handler.AssignRole(roles))
		auth.DELETE("/roles/:id/members/:userID", middleware.RequireHR(), handler.RemoveRole(roles))
		auth.GET("/members/:userID/roles", middleware.RequireHR(), handler.MemberRoles(roles))

		// Moderation
		auth.GET("/guilds/:guildID/members/:userID/warnings", middleware.RequireStaff(), handler.ListWarnings(moderation))
		auth.POST("/guilds/:guildID/warnings", middleware.RequireStaff(), handler.WarnMember(moderation))
		auth.DELETE("/guilds/:guildID/members/:userID/warnings", middleware.RequireStaff(), handler.ClearWarnings(moderation))
		auth.GET("/guilds/:guildID/modlogs", middleware.RequireStaff(), handler.ListModerationLogs(moderation))
		auth.GET("/modlogs/:id", middleware.RequireStaff(), handler.GetModerationLog(moderation))

		// Accounts
		auth.PUT("/accounts/change-password", handler.ChangePassword(st))
		auth.GET("/accounts", middleware.RequireHR(), handler.ListAccounts(st))
		auth.POST("/accounts", middleware.RequireHR(), handler.CreateAccount(st))
	}

	ws := router.Group("/ws")
	ws.Use(middleware.AuthMiddleware(st, jwtSecret))
	{
		ws.GET("/modlog", middleware.RequireStaff(), func(c *gin.Context) {
			websocket.ModLogFeed(c, moderation)
		})
	}

	return router
}

func main() {
	log.Println("club bot starting")

	cfg := config.Load()
	jwtSecret := resolveJWTSecret(cfg)

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	seedInitialAccount(st)

	contributions := service.NewContributionService(st)
	roles := service.NewRoleService(st)
	moderation := service.NewModerationService(st)
	gate := permission.NewGate(cfg.HRRoleName, cfg.StaffRoleName)

	if cfg.BotToken != "" {
		botHandler, err := bot.NewHandler(cfg, gate, contributions, roles, moderation)
		if err != nil {
			log.Fatalf("failed to initialize bot: %v", err)
		}
		go botHandler.Start()
		log.Println("Bot started.")
	} else {
		log.Println("BOT_TOKEN not configured. Skipping bot initialization.")
	}

	router := setupRouter(st, jwtSecret, contributions, roles, moderation)
	log.Printf("Dashboard listening on %s", cfg.ListenAddr)

	if err := http.ListenAndServe(cfg.ListenAddr, router); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
