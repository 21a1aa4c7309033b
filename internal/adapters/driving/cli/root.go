// Package cli wires the cobra command tree over the core services.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mentorlab/tutor-cli/internal/adapters/driven/config/file"
	"github.com/mentorlab/tutor-cli/internal/adapters/driven/embedding/ollama"
	"github.com/mentorlab/tutor-cli/internal/adapters/driven/embedding/openai"
	"github.com/mentorlab/tutor-cli/internal/adapters/driven/speech/whisper"
	"github.com/mentorlab/tutor-cli/internal/adapters/driven/storage/sqlite"
	"github.com/mentorlab/tutor-cli/internal/core/ports/driven"
	"github.com/mentorlab/tutor-cli/internal/core/ports/driving"
	"github.com/mentorlab/tutor-cli/internal/core/services"
	"github.com/mentorlab/tutor-cli/internal/indexers/image"
	"github.com/mentorlab/tutor-cli/internal/indexers/pdfdoc"
	"github.com/mentorlab/tutor-cli/internal/indexers/text"
	"github.com/mentorlab/tutor-cli/internal/indexers/video"
	"github.com/mentorlab/tutor-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose   bool
	configDir string
)

// Wired services, built once in initServices. Tests inject fakes.
var (
	configStore      driven.ConfigStore
	ingestService    driving.Ingestor
	retrievalService driving.Retriever
	assistantService driving.Assistant
)

var rootCmd = &cobra.Command{
	Use:   "tutor",
	Short: "Adaptive learning assistant over your own study materials",
	Long: `tutor indexes your study materials (text, JSON, PDF, images and
video) into an in-process vector index and answers programming
questions adaptively, tracking your level and knowledge gaps as you go.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		return initServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.tutor)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initServices builds the adapter stack and core services. It is a
// no-op when services were already provided (by tests).
func initServices() error {
	if ingestService != nil {
		return nil
	}

	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	configStore = store

	embedder, err := buildEmbedder()
	if err != nil {
		return err
	}

	language := configStore.GetString("speech.language")
	if language == "" {
		language = "en"
	}
	engines := buildSpeechEngines(language)

	indexers := []driving.Indexer{
		text.NewIndexer(embedder),
		pdfdoc.NewIndexer(embedder),
		image.NewIndexer(embedder),
		video.NewIndexer(embedder, language, engines...),
	}
	ingestService = services.NewIngestService(indexers...)
	retrievalService = services.NewRetrievalService(indexers...)

	var profiles driven.ProfileStore
	if store, err := sqlite.NewProfileStore(dataDir()); err != nil {
		logger.Warn("profile persistence disabled: %v", err)
	} else {
		profiles = store
	}

	assistantService = services.NewAssistantService(
		services.NewDifficultyService(),
		services.NewContentService(),
		retrievalService,
		profiles,
	)
	return nil
}

// buildEmbedder selects the embedding provider from config; ollama is
// the local-first default.
func buildEmbedder() (driven.EmbeddingService, error) {
	switch provider := configStore.GetString("embedding.provider"); provider {
	case "", "ollama":
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL: configStore.GetString("embedding.url"),
			Model:   configStore.GetString("embedding.model"),
		}), nil
	case "openai":
		apiKey := configStore.GetString("embedding.api_key")
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		svc, err := openai.NewEmbeddingService(openai.Config{
			APIKey:  apiKey,
			BaseURL: configStore.GetString("embedding.url"),
			Model:   configStore.GetString("embedding.model"),
		})
		if err != nil {
			return nil, fmt.Errorf("configuring openai embeddings: %w", err)
		}
		return svc, nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", provider)
	}
}

// buildSpeechEngines assembles the transcription chain: the primary
// language first, then a language-agnostic fallback when a secondary
// language is configured. No configured URL means no engines, and
// videos are indexed with a placeholder transcript.
func buildSpeechEngines(language string) []driven.SpeechEngine {
	url := configStore.GetString("speech.url")
	if url == "" {
		return nil
	}

	engines := []driven.SpeechEngine{
		whisper.NewEngine(whisper.Config{
			BaseURL:  url,
			APIKey:   configStore.GetString("speech.api_key"),
			Model:    configStore.GetString("speech.model"),
			Language: language,
		}),
	}
	if secondary := configStore.GetString("speech.secondary_language"); secondary != "" && secondary != language {
		engines = append(engines, whisper.NewEngine(whisper.Config{
			BaseURL:  url,
			APIKey:   configStore.GetString("speech.api_key"),
			Model:    configStore.GetString("speech.model"),
			Language: secondary,
		}))
	}
	return engines
}

func dataDir() string {
	if configDir != "" {
		return filepath.Join(configDir, "data")
	}
	return ""
}
