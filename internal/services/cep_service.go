package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/promotora-credito/app-cadastro/internal/logging"
	"github.com/promotora-credito/app-cadastro/internal/models"
	"github.com/promotora-credito/app-cadastro/internal/observability"
	"github.com/promotora-credito/app-cadastro/internal/utils"
	"github.com/promotora-credito/app-cadastro/internal/utils/httpclient"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const cepService = "viacep"

// CEPService resolves postal codes into addresses through ViaCEP
type CEPService struct {
	baseURL string
	pool    *httpclient.HTTPClientPool
	cache   Cache
	ttl     time.Duration
	limiter *RateLimiter
	retry   RetryConfig
	logger  *logging.SafeLogger
}

// NewCEPService creates a CEP lookup service. cache may be nil.
func NewCEPService(baseURL string, pool *httpclient.HTTPClientPool, cache Cache, ttl time.Duration, limiter *RateLimiter, logger *logging.SafeLogger) *CEPService {
	return &CEPService{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		pool:    pool,
		cache:   cache,
		ttl:     ttl,
		limiter: limiter,
		retry:   DefaultRetryConfig(),
		logger:  logger,
	}
}

func cepCacheKey(digits string) string {
	return "cep:" + digits
}

// Lookup returns the address of a CEP. A CEP the service does not know
// yields models.ErrCEPNotFound.
func (s *CEPService) Lookup(ctx context.Context, cep string) (*models.Address, error) {
	if !utils.ValidateCEP(cep) {
		observability.CEPLookups.WithLabelValues("invalid").Inc()
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidCEP, cep)
	}
	digits := utils.OnlyDigits(cep)
	logger := s.logger.With(zap.String("cep", digits))

	if address, ok := s.fromCache(ctx, digits); ok {
		observability.CacheHits.WithLabelValues("cep_lookup").Inc()
		observability.CEPLookups.WithLabelValues("cache_hit").Inc()
		return address, nil
	}

	if !s.limiter.Allow("cep_lookup") {
		observability.CEPLookups.WithLabelValues("rate_limited").Inc()
		return nil, models.ErrRateLimited
	}

	var payload models.ViaCEPResponse
	err := withRetry(ctx, s.retry, s.logger, "cep_lookup", func() error {
		return s.fetch(ctx, digits, &payload)
	})
	if err != nil {
		observability.CEPLookups.WithLabelValues("error").Inc()
		logger.Warn("cep lookup failed", zap.Error(err))
		return nil, err
	}

	if payload.NotFound() {
		observability.CEPLookups.WithLabelValues("not_found").Inc()
		return nil, fmt.Errorf("%w: %s", models.ErrCEPNotFound, utils.FormatCEP(digits))
	}

	address := payload.ToAddress()
	if address.CEP == "" {
		address.CEP = utils.FormatCEP(digits)
	}
	observability.CEPLookups.WithLabelValues("found").Inc()
	s.toCache(ctx, digits, &address)

	logger.Debug("cep resolved", zap.String("cidade", address.Cidade), zap.String("uf", address.UF))
	return &address, nil
}

func (s *CEPService) fetch(ctx context.Context, digits string, out *models.ViaCEPResponse) error {
	ctx, span := utils.TraceExternalService(ctx, cepService, "lookup")
	defer span.End()
	start := time.Now()
	status := "error"
	defer func() {
		observability.ExternalCalls.WithLabelValues(cepService, "lookup", status).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s/json/", s.baseURL, digits), nil)
	if err != nil {
		return fmt.Errorf("failed to create cep request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.pool.Do(req)
	if err != nil {
		utils.RecordErrorInSpan(span, err, attribute.String("cep", digits))
		return fmt.Errorf("failed to call cep service: %w", err)
	}
	defer resp.Body.Close()
	status = fmt.Sprintf("%d", resp.StatusCode)

	// ViaCEP answers 400 for malformed codes, which ValidateCEP already rules out
	if resp.StatusCode == http.StatusBadRequest {
		out.Erro = true
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		return &APIError{Service: cepService, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode cep response: %w", err)
	}
	return nil
}

func (s *CEPService) fromCache(ctx context.Context, digits string) (*models.Address, bool) {
	if s.cache == nil {
		return nil, false
	}
	key := cepCacheKey(digits)
	ctx, span := utils.TraceCache(ctx, "get", key)
	defer span.End()

	raw, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var address models.Address
	if err := json.Unmarshal([]byte(raw), &address); err != nil {
		s.logger.Warn("discarding corrupt cep cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &address, true
}

func (s *CEPService) toCache(ctx context.Context, digits string, address *models.Address) {
	if s.cache == nil || s.ttl <= 0 {
		return
	}
	key := cepCacheKey(digits)
	ctx, span := utils.TraceCache(ctx, "set", key, utils.CacheTTL(s.ttl))
	defer span.End()

	data, err := json.Marshal(address)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.logger.Warn("failed to cache cep", zap.String("key", key), zap.Error(err))
	}
}

// IsLookupMiss reports errors that leave the address untouched with an error notification
func IsLookupMiss(err error) bool {
	return errors.Is(err, models.ErrCEPNotFound) || errors.Is(err, models.ErrInvalidCEP)
}
