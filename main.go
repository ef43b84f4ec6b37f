package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/Durjoy96/magiccraft-teammate-finder/ai"
	"github.com/Durjoy96/magiccraft-teammate-finder/config"
	"github.com/Durjoy96/magiccraft-teammate-finder/logger"
	"github.com/Durjoy96/magiccraft-teammate-finder/routes"
	"github.com/Durjoy96/magiccraft-teammate-finder/services"
	"github.com/Durjoy96/magiccraft-teammate-finder/socket"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogJSON, cfg.LogDebug)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	ctx := context.Background()

	// Initialize DynamoDB client and service
	zlog.Info("initializing DynamoDB client", zap.String("region", cfg.AWSRegion))
	dynamoClient := services.InitializeDynamoDBClient(cfg.AWSRegion)
	dynamoService := &services.DynamoService{Client: dynamoClient}

	// Initialize the Gemini client for smart matching, bios and the assistant
	aiClient, err := ai.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		zlog.Fatal("failed to initialize Gemini client", zap.Error(err))
	}
	zlog.Info("Gemini client ready", zap.String("model", aiClient.Model()))

	// Socket.io server for pushing new chat messages to team rooms
	ioServer := socket.NewServer(zlog)
	go func() {
		if err := ioServer.Serve(); err != nil {
			zlog.Error("socket.io server stopped", zap.Error(err))
		}
	}()
	defer ioServer.Close()

	// Initialize services
	userProfileService := &services.UserProfileService{Dynamo: dynamoService, Logger: zlog}
	searchService := &services.SearchService{Dynamo: dynamoService, Logger: zlog}
	teamService := &services.TeamService{Dynamo: dynamoService, Profiles: userProfileService, Logger: zlog}
	chatService := &services.ChatService{Dynamo: dynamoService, Profiles: userProfileService, Broadcast: ioServer, Logger: zlog}
	ranker := ai.NewRanker(aiClient, zlog)
	matchService := &services.MatchService{Profiles: userProfileService, Search: searchService, Ranker: ranker, Logger: zlog}
	bioComposer := ai.NewBioComposer(aiClient, zlog)
	assistant := ai.NewAssistant(aiClient, zlog)

	s3Service, err := services.NewS3Service(ctx, cfg.AWSRegion, cfg.S3Bucket)
	if err != nil {
		zlog.Fatal("failed to initialize S3 service", zap.Error(err))
	}

	// Initialize the router
	r := mux.NewRouter()

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to MagicCraft Teammate Finder")
	}).Methods("GET")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}).Methods("GET")

	r.Handle("/socket.io/", ioServer)

	// Register routes
	routes.RegisterUserProfileRoutes(r, userProfileService, zlog)
	routes.RegisterSearchRoutes(r, searchService, zlog)
	routes.RegisterAIRoutes(r, matchService, userProfileService, chatService, bioComposer, assistant, cfg.AIRateLimitPerMinute, zlog)
	routes.RegisterTeamRoutes(r, teamService, zlog)
	routes.RegisterChatRoutes(r, chatService, zlog)
	routes.RegisterS3Routes(r, s3Service, zlog)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-User-ID"},
		AllowCredentials: true,
	}).Handler(r)

	zlog.Info("starting server", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, corsHandler); err != nil {
		zlog.Fatal("server exited", zap.Error(err))
	}
}
