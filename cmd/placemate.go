package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/kataras/muxie"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/exp/slog"

	"github.com/placemate/placemate/api"
	"github.com/placemate/placemate/auth"
	"github.com/placemate/placemate/chat"
	"github.com/placemate/placemate/models"
	"github.com/placemate/placemate/util"
)

type Config struct {
	Listen     string   `toml:"listen"`
	ClientURLs []string `toml:"client_urls"`

	DbURI string `toml:"db_uri" required:"true"`
}

var (
	// Default config values
	config = Config{
		Listen: "0.0.0.0:5000",
	}
)

// @title			PlaceMate API
// @version		1.0
// @description	Backend API for PlaceMate, the campus placement and discussion platform
// @license.name	AGPL-3.0
// @license.url	https://www.gnu.org/licenses/agpl-3.0.en.html
// @BasePath		/
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: placemate <config-file>")
		os.Exit(1)
	}

	// secrets come from the environment, everything else from the config file
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Error("failed to load .env", "err", err)
		os.Exit(1)
	}

	err := loadConfig(os.Args[1])
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	err = util.ConnectDb(config.DbURI)
	if err != nil {
		slog.Error("failed to connect to db", "err", err)
		os.Exit(1)
	}
	db := util.GetDb()
	err = db.AutoMigrate(&models.User{}, &models.Question{}, &models.Reply{}, &models.QuestionVote{}, &models.ReplyVote{}, &models.Message{})
	if err != nil {
		slog.Error("AutoMigrate failed", "err", err)
		os.Exit(1)
	}

	mux := muxie.NewMux()
	authMiddleware, err := auth.NewMiddleware(os.Getenv("JWT_SECRET"))
	if err != nil {
		slog.Error("failed to create authentication middleware", "err", err)
		os.Exit(1)
	}

	mux.Use(util.NewLoggerMiddleware, util.NewCorsMiddleware(config.ClientURLs, true))

	authChain := muxie.Pre(authMiddleware.Handler)
	authOptionalChain := muxie.Pre(authMiddleware.NonBlockingHandler)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "PlaceMate backend is running")
	})

	// forum
	mux.Handle("/forum/questions", muxie.Methods().
		Handle("GET", authOptionalChain.ForFunc(api.GetQuestionsHandler)).
		Handle("POST", authChain.ForFunc(api.PostQuestionHandler)))
	mux.Handle("/forum/questions/:id", muxie.Methods().
		Handle("GET", authOptionalChain.ForFunc(api.GetQuestionHandler)).
		Handle("PUT", authChain.ForFunc(api.PutQuestionHandler)).
		Handle("DELETE", authChain.ForFunc(api.DelQuestionHandler)))
	mux.Handle("/forum/questions/:id/replies", authChain.ForFunc(api.PostReplyHandler))
	mux.Handle("/forum/replies/:id", muxie.Methods().
		Handle("PUT", authChain.ForFunc(api.PutReplyHandler)).
		Handle("DELETE", authChain.ForFunc(api.DelReplyHandler)))

	// vote toggles
	mux.Handle("/forum/questions/:id/upvote", authChain.ForFunc(api.QuestionVoteHandler))
	mux.Handle("/forum/replies/:id/upvote", authChain.ForFunc(api.ReplyVoteHandler))

	// direct messages
	hub := chat.NewHub()
	mux.Handle("/messages", authChain.ForFunc(api.PostMessageHandler(hub)))
	mux.Handle("/messages/users", authChain.ForFunc(api.GetChatUsersHandler))
	mux.Handle("/messages/:userId", authChain.ForFunc(api.GetConversationHandler))
	mux.Handle("/ws", chat.ServeWs(hub, authMiddleware))

	// profile
	mux.Handle("/me", authChain.ForFunc(api.GetMeHandler))
	mux.Handle("/profile", authChain.ForFunc(api.ProfileSetupHandler))

	// video calls
	mux.Handle("/meetings/token", authChain.ForFunc(api.MeetingTokenHandler(os.Getenv("JITSI_APP_ID"), os.Getenv("JITSI_SECRET"))))

	// external proxies
	mux.Handle("/jobs", authOptionalChain.ForFunc(api.GetJobsHandler))
	mux.Handle("/chatbot", authChain.ForFunc(api.ChatbotHandler(os.Getenv("HF_API_KEY"))))

	go hub.Run()

	slog.Info("listening at", "address", config.Listen)
	err = http.ListenAndServe(config.Listen, mux)
	if err != nil {
		slog.Error("failed to serve", "err", err)
	}
}

func loadConfig(path string) (err error) {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}

	err = toml.NewDecoder(file).Decode(&config)
	if err != nil {
		return fmt.Errorf("failed to decode config file: %w", err)
	}

	err = file.Close()
	if err != nil {
		return fmt.Errorf("failed to close config file: %w", err)
	}

	return nil
}
