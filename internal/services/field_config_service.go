package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/promotora-credito/app-cadastro/internal/formengine"
	"github.com/promotora-credito/app-cadastro/internal/logging"
	"github.com/promotora-credito/app-cadastro/internal/models"
	"github.com/promotora-credito/app-cadastro/internal/observability"
	"github.com/promotora-credito/app-cadastro/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// SectionRepository persists form section definitions
type SectionRepository interface {
	FindByFormKey(ctx context.Context, formKey string) ([]models.FormSection, error)
	Upsert(ctx context.Context, section models.FormSection) error
	Delete(ctx context.Context, formKey string, section models.SectionID) (bool, error)
}

// MongoSectionRepository stores one document per (form_key, section)
type MongoSectionRepository struct {
	collection *mongo.Collection
}

// NewMongoSectionRepository creates a repository over collection
func NewMongoSectionRepository(collection *mongo.Collection) *MongoSectionRepository {
	return &MongoSectionRepository{collection: collection}
}

// FindByFormKey returns the configured sections of a form key
func (r *MongoSectionRepository) FindByFormKey(ctx context.Context, formKey string) ([]models.FormSection, error) {
	ctx, span := utils.TraceDatabase(ctx, "find", r.collection.Name(), "form_key")
	defer span.End()

	cursor, err := r.collection.Find(ctx, bson.M{"form_key": formKey})
	if err != nil {
		return nil, fmt.Errorf("failed to query sections: %w", err)
	}
	defer cursor.Close(ctx)

	var sections []models.FormSection
	if err := cursor.All(ctx, &sections); err != nil {
		return nil, fmt.Errorf("failed to decode sections: %w", err)
	}
	return sections, nil
}

// Upsert replaces the definition of one section
func (r *MongoSectionRepository) Upsert(ctx context.Context, section models.FormSection) error {
	ctx, span := utils.TraceDatabase(ctx, "upsert", r.collection.Name(), "form_key_section")
	defer span.End()

	filter := bson.M{"form_key": section.FormKey, "section": section.Section}
	_, err := r.collection.ReplaceOne(ctx, filter, section, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert section: %w", err)
	}
	return nil
}

// Delete removes one section definition
func (r *MongoSectionRepository) Delete(ctx context.Context, formKey string, section models.SectionID) (bool, error) {
	ctx, span := utils.TraceDatabase(ctx, "delete", r.collection.Name(), "form_key_section")
	defer span.End()

	res, err := r.collection.DeleteOne(ctx, bson.M{"form_key": formKey, "section": section})
	if err != nil {
		return false, fmt.Errorf("failed to delete section: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// FieldConfigService resolves the sections of a form: stored sections
// replace the built-in default of the same tab.
type FieldConfigService struct {
	repo   SectionRepository
	cache  Cache
	ttl    time.Duration
	logger *logging.SafeLogger
}

// NewFieldConfigService creates the field configuration service. repo and cache may be nil.
func NewFieldConfigService(repo SectionRepository, cache Cache, ttl time.Duration, logger *logging.SafeLogger) *FieldConfigService {
	return &FieldConfigService{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

func sectionsCacheKey(formKey string) string {
	return "form:sections:" + formKey
}

// Sections returns the sections of formKey in tab order. A form with no
// configuration and no defaults is not an error: the list is empty and an
// info notification explains it.
func (s *FieldConfigService) Sections(ctx context.Context, formKey string) ([]models.FormSection, models.Notifications, error) {
	var notes models.Notifications
	logger := s.logger.With(zap.String("form_key", formKey))

	if cached, ok := s.fromCache(ctx, formKey); ok {
		observability.CacheHits.WithLabelValues("form_sections").Inc()
		return cached, notes, nil
	}

	var stored []models.FormSection
	if s.repo != nil {
		found, err := s.repo.FindByFormKey(ctx, formKey)
		if err != nil {
			logger.Error("failed to load stored sections, using defaults", zap.Error(err))
			notes.Warning("Field configuration is unavailable, showing the default fields")
		} else {
			stored = found
		}
	}

	defaults, err := formengine.DefaultSections(formKey)
	switch {
	case errors.Is(err, models.ErrSectionsNotFound):
		if len(stored) == 0 {
			logger.Info("no field configuration for form")
			notes.Info("No fields are configured for this form")
			return []models.FormSection{}, notes, nil
		}
	case err != nil:
		return nil, notes, err
	}

	// A stored section replaces its default tab only; the other tabs keep
	// their built-in rules
	sections := append(defaults, stored...)
	sections = orderSections(sections)
	s.toCache(ctx, formKey, sections)
	return sections, notes, nil
}

// orderSections sorts definitions by tab order and drops unknown ids
func orderSections(sections []models.FormSection) []models.FormSection {
	byID := make(map[models.SectionID]models.FormSection, len(sections))
	for _, sec := range sections {
		byID[sec.Section] = sec
	}
	out := make([]models.FormSection, 0, len(sections))
	for _, id := range append(append([]models.SectionID{}, models.DefaultSectionOrder...), models.SectionDocumentos) {
		if sec, ok := byID[id]; ok {
			out = append(out, sec)
		}
	}
	return out
}

// Upsert stores a section after resolving it, so unsupported types are rejected
func (s *FieldConfigService) Upsert(ctx context.Context, formKey string, id models.SectionID, req models.UpsertSectionRequest) (*models.FormSection, error) {
	if !models.IsValidSectionID(id) {
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownSection, id)
	}
	now := time.Now().UTC()
	section := models.FormSection{
		FormKey:   formKey,
		Section:   id,
		Title:     req.Title,
		Prefix:    req.Prefix,
		Fields:    req.Fields,
		UpdatedAt: &now,
	}
	resolved, err := formengine.NewSection(section)
	if err != nil {
		return nil, err
	}
	section.Fields = resolved.Definition().Fields

	if s.repo == nil {
		return nil, errors.New("field configuration store is not available")
	}
	if err := s.repo.Upsert(ctx, section); err != nil {
		return nil, err
	}
	s.invalidate(ctx, formKey)

	s.logger.Info("form section updated",
		zap.String("form_key", formKey),
		zap.String("section", string(id)),
		zap.Int("fields", len(section.Fields)))
	return &section, nil
}

// Delete removes a stored section; the form falls back to defaults when none remain
func (s *FieldConfigService) Delete(ctx context.Context, formKey string, id models.SectionID) error {
	if s.repo == nil {
		return errors.New("field configuration store is not available")
	}
	deleted, err := s.repo.Delete(ctx, formKey, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: %s/%s", models.ErrSectionsNotFound, formKey, id)
	}
	s.invalidate(ctx, formKey)
	return nil
}

func (s *FieldConfigService) fromCache(ctx context.Context, formKey string) ([]models.FormSection, bool) {
	if s.cache == nil {
		return nil, false
	}
	key := sectionsCacheKey(formKey)
	ctx, span := utils.TraceCache(ctx, "get", key)
	defer span.End()

	raw, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var sections []models.FormSection
	if err := json.Unmarshal([]byte(raw), &sections); err != nil {
		return nil, false
	}
	return sections, true
}

func (s *FieldConfigService) toCache(ctx context.Context, formKey string, sections []models.FormSection) {
	if s.cache == nil || s.ttl <= 0 {
		return
	}
	key := sectionsCacheKey(formKey)
	ctx, span := utils.TraceCache(ctx, "set", key, utils.CacheTTL(s.ttl))
	defer span.End()

	data, err := json.Marshal(sections)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.logger.Warn("failed to cache sections", zap.String("key", key), zap.Error(err))
	}
}

func (s *FieldConfigService) invalidate(ctx context.Context, formKey string) {
	if s.cache == nil {
		return
	}
	key := sectionsCacheKey(formKey)
	ctx, span := utils.TraceCache(ctx, "delete", key)
	defer span.End()

	if err := s.cache.Del(ctx, key).Err(); err != nil {
		s.logger.Warn("failed to invalidate sections cache", zap.String("key", key), zap.Error(err))
	}
}
