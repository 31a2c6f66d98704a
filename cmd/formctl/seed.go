package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/promotora-credito/app-cadastro/internal/logging"
	"github.com/promotora-credito/app-cadastro/internal/models"
	"github.com/promotora-credito/app-cadastro/internal/redisclient"
	"github.com/promotora-credito/app-cadastro/internal/services"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var seedOpts struct {
	mongoURI   string
	database   string
	collection string
	redisURI   string
	dryRun     bool
	timeout    time.Duration
}

var seedCmd = &cobra.Command{
	Use:   "seed [file...]",
	Short: "Publish section definitions to MongoDB",
	Long: `Validates the files and upserts every section into the form sections
collection. When --redis is given the cached sections of each form are
invalidated so the API picks up the change immediately.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSeed,
}

func init() {
	f := seedCmd.Flags()
	f.StringVar(&seedOpts.mongoURI, "mongo-uri", envOr("MONGODB_URI", "mongodb://localhost:27017"), "MongoDB connection URI")
	f.StringVar(&seedOpts.database, "database", envOr("MONGODB_DATABASE", "cadastro"), "MongoDB database")
	f.StringVar(&seedOpts.collection, "collection", envOr("MONGODB_FORM_SECTIONS_COLLECTION", "form_sections"), "Form sections collection")
	f.StringVar(&seedOpts.redisURI, "redis", os.Getenv("REDIS_URI"), "Redis address whose section cache is invalidated")
	f.BoolVar(&seedOpts.dryRun, "dry-run", false, "Validate only, write nothing")
	f.DurationVar(&seedOpts.timeout, "timeout", 30*time.Second, "Overall timeout")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func runSeed(cmd *cobra.Command, args []string) error {
	files, err := expandFiles(args)
	if err != nil {
		return err
	}

	// Validate everything before the first write
	var sections []models.FormSection
	for _, path := range files {
		file, err := loadSectionsFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		sections = append(sections, file.Sections...)
	}

	out := cmd.OutOrStdout()
	if seedOpts.dryRun {
		fmt.Fprintf(out, "%d sections are valid, nothing written\n", len(sections))
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), seedOpts.timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(seedOpts.mongoURI))
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	defer client.Disconnect(context.Background())

	repo := services.NewMongoSectionRepository(client.Database(seedOpts.database).Collection(seedOpts.collection))

	var cache services.Cache
	if seedOpts.redisURI != "" {
		rdb := redis.NewClient(&redis.Options{Addr: seedOpts.redisURI, Password: os.Getenv("REDIS_PASSWORD")})
		defer rdb.Close()
		cache = redisclient.NewClient(rdb)
	}

	fields := services.NewFieldConfigService(repo, cache, 0, logging.Logger.Named("formctl"))
	for _, s := range sections {
		req := models.UpsertSectionRequest{Title: s.Title, Prefix: s.Prefix, Fields: s.Fields}
		if _, err := fields.Upsert(ctx, s.FormKey, s.Section, req); err != nil {
			return fmt.Errorf("failed to seed %s/%s: %w", s.FormKey, s.Section, err)
		}
		logging.Logger.Debug("section seeded", zap.String("form_key", s.FormKey), zap.String("section", string(s.Section)))
		fmt.Fprintf(out, "seeded %s/%s (%d fields)\n", s.FormKey, s.Section, len(s.Fields))
	}
	return nil
}
