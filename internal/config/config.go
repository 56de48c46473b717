package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const defaultDatabasePath = "club_bot.db"

// Config holds everything loaded from the environment at startup. It is
// constructed once in main and passed down; packages never read env vars
// themselves.
type Config struct {
	BotToken       string
	HRRoleName     string
	StaffRoleName  string
	DatabasePath   string
	ListenAddr     string
	GuildID        int64
	LogChatID      int64
	AnnounceChatID int64
	JWTSecret      string
}

// Load reads the environment (and an optional .env file in the working
// directory) into a Config. Missing values fall back to defaults; the JWT
// secret is resolved separately in main.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		BotToken:       getEnv("BOT_TOKEN", ""),
		HRRoleName:     getEnv("HR_ROLE_NAME", "HR"),
		StaffRoleName:  getEnv("STAFF_ROLE_NAME", "Staff"),
		DatabasePath:   getEnv("DATABASE_PATH", defaultDatabasePath),
		ListenAddr:     getEnv("LISTEN_ADDR", ":9090"),
		GuildID:        getInt64("GUILD_ID"),
		LogChatID:      getInt64("LOG_CHAT_ID"),
		AnnounceChatID: getInt64("ANNOUNCE_CHAT_ID"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
	}
}

func getEnv(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func getInt64(name string) int64 {
	value := os.Getenv(name)
	if value == "" {
		return 0
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
