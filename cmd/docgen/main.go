package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"docgen/internal/chunker"
	"docgen/internal/config"
	"docgen/internal/embedding"
	"docgen/internal/helper"
	"docgen/internal/llm"
	"docgen/internal/models"
	"docgen/internal/parser"
	"docgen/internal/prompt"
	"docgen/internal/service"
	"docgen/internal/vectorstore"
	"docgen/internal/vectorstore/chromemdb"
	"docgen/internal/vectorstore/pgvector"
	"docgen/internal/vectorstore/pinecone"
)

var cfgPath string

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Local development secrets; missing .env is fine.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:          "docgen",
		Short:        "Ingest documents and generate structured artifacts from them",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "./configs/config.yaml", "path to config file")
	root.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	root.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if v, _ := cmd.Flags().GetBool("verbose"); v {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	}
	root.AddCommand(ingestCmd(), generateCmd(), queryCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func ingestCmd() *cobra.Command {
	var file, namespace, format, docID string
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Parse, chunk, embed, and index a source document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			pipeline, closeFn, err := buildPipeline(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			report, err := pipeline.Ingest(cmd.Context(), service.IngestRequest{
				DocumentID: docID,
				Namespace:  namespace,
				Data:       data,
				FormatHint: format,
			})
			if err != nil {
				return err
			}
			fmt.Printf("ingested %s into namespace %q: %d segments, %d chunks, %d indexed\n",
				report.DocumentID, report.Namespace, report.Segments, report.Chunks, report.Indexed)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "path to the source document")
	cmd.Flags().StringVar(&namespace, "namespace", "ns-1", "vector index namespace")
	cmd.Flags().StringVar(&format, "format", "", "declared document format hint")
	cmd.Flags().StringVar(&docID, "id", "", "document id (generated when empty)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func generateCmd() *cobra.Command {
	var useCase, namespace, instruction, outDir string
	var topK int
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a structured artifact from indexed context",
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc, err := models.ParseUseCase(useCase)
			if err != nil {
				return err
			}
			pipeline, closeFn, err := buildPipeline(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			artifact, err := pipeline.Generate(cmd.Context(), models.GenerationRequest{
				UseCase:     uc,
				Namespace:   namespace,
				Instruction: instruction,
				TopK:        topK,
			})
			if err != nil {
				return err
			}
			name := fmt.Sprintf("%s-%d%s", uc, time.Now().Unix(), uc.FileExtension())
			path, err := helper.WriteArtifact(outDir, name, artifact.Data)
			if err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&useCase, "use-case", "", "artifact type: checksheet or work_instruction")
	cmd.Flags().StringVar(&namespace, "namespace", "ns-1", "vector index namespace")
	cmd.Flags().StringVar(&instruction, "instruction", "", "extra instruction for the model")
	cmd.Flags().StringVar(&outDir, "out", "./artifacts", "output directory")
	cmd.Flags().IntVar(&topK, "top-k", 0, "retrieval depth (0 uses config)")
	_ = cmd.MarkFlagRequired("use-case")
	return cmd
}

func queryCmd() *cobra.Command {
	var namespace string
	var topK int
	cmd := &cobra.Command{
		Use:   "query <text>",
		Short: "Inspect retrieval results for a query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline, closeFn, err := buildPipeline(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			results, err := pipeline.Query(cmd.Context(), args[0], namespace, topK)
			if err != nil {
				return err
			}
			for _, r := range results {
				id := r.RecordID
				if len(id) > 12 {
					id = id[:12]
				}
				fmt.Printf("%.4f  %s  %s\n", r.Score, id, r.Text)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&namespace, "namespace", "ns-1", "vector index namespace")
	cmd.Flags().IntVar(&topK, "top-k", 5, "number of results")
	return cmd
}

func buildPipeline(cmd *cobra.Command) (*service.Pipeline, func(), error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return nil, nil, err
	}
	store, closeFn, err := buildStore(cmd, cfg)
	if err != nil {
		return nil, nil, err
	}
	generator, err := buildGenerator(cfg)
	if err != nil {
		closeFn()
		return nil, nil, err
	}

	pipeline := service.New(
		parser.New(),
		chunker.New(chunker.WithMaxChars(cfg.Chunker.MaxChars)),
		embedder,
		store,
		generator,
		prompt.New(prompt.WithContextBudget(cfg.Prompt.ContextBudgetChars)),
		service.Options{Workers: cfg.Ingest.Workers, TopK: cfg.Retriever.TopK},
	)
	return pipeline, closeFn, nil
}

func buildEmbedder(cfg *config.Config) (embedding.Embedder, error) {
	switch cfg.Embedder.Type {
	case "titan":
		if cfg.Embedder.Titan == nil {
			return nil, errors.New("embedder type titan requires a titan section")
		}
		return embedding.NewTitanEmbedder(cfg.Embedder.Titan, keyFromEnv(cfg.Embedder.Titan.APIKeyEnv))
	case "openai":
		if cfg.Embedder.OpenAI == nil {
			return nil, errors.New("embedder type openai requires an openai section")
		}
		return embedding.NewOpenAIEmbedder(cfg.Embedder.OpenAI, keyFromEnv(cfg.Embedder.OpenAI.APIKeyEnv))
	}
	return nil, fmt.Errorf("unknown embedder type: %q", cfg.Embedder.Type)
}

func buildStore(cmd *cobra.Command, cfg *config.Config) (vectorstore.Store, func(), error) {
	noop := func() {}
	switch cfg.VectorStore.Type {
	case "pinecone":
		if cfg.VectorStore.Pinecone == nil {
			return nil, nil, errors.New("vector store type pinecone requires a pinecone section")
		}
		store, err := pinecone.NewStore(cfg.VectorStore.Pinecone, keyFromEnv(cfg.VectorStore.Pinecone.APIKeyEnv))
		return store, noop, err
	case "chromem":
		if cfg.VectorStore.Chromem == nil {
			return nil, nil, errors.New("vector store type chromem requires a chromem section")
		}
		store, err := chromemdb.NewStore(cfg.VectorStore.Chromem.Path, cfg.VectorStore.Chromem.InMemory)
		return store, noop, err
	case "pgvector":
		if cfg.VectorStore.PGVector == nil {
			return nil, nil, errors.New("vector store type pgvector requires a pgvector section")
		}
		sqldb := pgvector.Connect(cfg.VectorStore.PGVector.DSN, keyFromEnv(cfg.VectorStore.PGVector.PasswordEnv))
		store := pgvector.NewStore(sqldb, cfg.VectorStore.PGVector.Debug)
		if err := store.Init(cmd.Context()); err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown vector store type: %q", cfg.VectorStore.Type)
}

func buildGenerator(cfg *config.Config) (llm.Generator, error) {
	switch cfg.Generator.Type {
	case "claude":
		if cfg.Generator.Claude == nil {
			return nil, errors.New("generator type claude requires a claude section")
		}
		return llm.NewClaudeGenerator(cfg.Generator.Claude, keyFromEnv(cfg.Generator.Claude.APIKeyEnv))
	case "openai":
		if cfg.Generator.OpenAI == nil {
			return nil, errors.New("generator type openai requires an openai section")
		}
		return llm.NewOpenAIGenerator(cfg.Generator.OpenAI, keyFromEnv(cfg.Generator.OpenAI.APIKeyEnv), llm.DefaultMaxTokens)
	}
	return nil, fmt.Errorf("unknown generator type: %q", cfg.Generator.Type)
}

func keyFromEnv(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}
