// Command-line interface for querying the course assistant from a terminal.
package main

import (
	"beedu/beedu/config"
	"beedu/beedu/controllers"
	"beedu/beedu/services/llm"
	"beedu/beedu/services/rag"
	"beedu/beedu/services/vectorstore"
	"beedu/beedu/sources/storage"
	"beedu/beedu/utils/logging"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

func main() {
	logging.InitLogger()
	cfg := config.LoadConfig()

	args := os.Args[1:]
	if len(args) < 2 {
		usage()
		os.Exit(1)
	}
	question := strings.TrimSpace(strings.Join(args[1:], " "))
	if question == "" {
		usage()
		os.Exit(1)
	}

	settings, err := rag.LoadSettings(cfg.RAGConfigPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load rag settings:", err)
		os.Exit(1)
	}

	client := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)

	source := vectorstore.FileSource(cfg.IndexPath)
	if cfg.MinIOEndpoint != "" {
		minioClient, err := storage.NewMinIOClient(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, "minio client error:", err)
			os.Exit(1)
		}
		source = minioClient.FetchIndex
	}
	store := vectorstore.NewStore(source, client)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	switch args[0] {
	case "search":
		passages, err := store.Search(ctx, question, settings.TopK)
		if err != nil {
			logging.ErrorLogger.Error("search failed", zap.Error(err))
			fmt.Fprintln(os.Stderr, "search failed:", err)
			os.Exit(1)
		}
		if len(passages) == 0 {
			fmt.Println("no matching passages")
			return
		}
		for i, p := range passages {
			fmt.Printf("%d. [%.4f] %s\n", i+1, p.Score, p.ID)
			if p.Source != "" {
				fmt.Println("   source:", p.Source)
			}
			fmt.Println("  ", strings.ReplaceAll(p.Text, "\n", "\n   "))
			fmt.Println()
		}

	case "ask":
		ctrl := controllers.NewChatController(store, client, settings, nil, nil)
		result, err := ctrl.Ask(ctx, question)
		if err != nil {
			fmt.Fprintln(os.Stderr, "ask failed:", err)
			os.Exit(1)
		}
		if result.Error != "" {
			fmt.Fprintln(os.Stderr, "ask failed:", result.Error)
			os.Exit(1)
		}
		fmt.Println(result.Answer)

	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("beedu CLI usage:")
	fmt.Println("  beedu ask \"question\"      # Run the full retrieve-then-answer pipeline")
	fmt.Println("  beedu search \"question\"   # Show the top matching passages")
}
