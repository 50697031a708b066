package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/greenspoon/backend/config"
	"github.com/greenspoon/backend/internal/apperr"
	"github.com/greenspoon/backend/internal/model"
	"github.com/greenspoon/backend/internal/validation"
)

// NutritionFacts is the enrichment result: a nutrient snapshot plus the
// locally known labels the provider's classification resolved to.
type NutritionFacts struct {
	Calories  int
	Nutrients model.NutrientSet
	Labels    []model.Label
}

// LabelSource yields the locally known label set.
type LabelSource interface {
	Labels(ctx context.Context) ([]model.Label, error)
}

// NutritionService calls the Edamam nutrition-details API and maps its
// output onto the controlled label taxonomy. A single failure surfaces
// immediately; there is no retry.
type NutritionService struct {
	apiURL string
	appID  string
	appKey string
	client *http.Client
	labels LabelSource
	cache  *redis.Client
	log    *logrus.Logger
}

const nutritionCacheTTL = 24 * time.Hour

// NewNutritionService creates a NutritionService. cache may be nil, in
// which case every call goes to the provider.
func NewNutritionService(cfg *config.Config, labels LabelSource, cache *redis.Client, log *logrus.Logger) *NutritionService {
	return &NutritionService{
		apiURL: cfg.EdamamURL,
		appID:  cfg.EdamamAppID,
		appKey: cfg.EdamamAppKey,
		client: &http.Client{Timeout: 30 * time.Second},
		labels: labels,
		cache:  cache,
		log:    log,
	}
}

type edamamNutrient struct {
	Label    string  `json:"label"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

type edamamResponse struct {
	Calories       int                       `json:"calories"`
	TotalNutrients map[string]edamamNutrient `json:"totalNutrients"`
	DietLabels     []string                  `json:"dietLabels"`
	HealthLabels   []string                  `json:"healthLabels"`
}

// Enrich classifies the ingredient list. The calorie ceiling and the label
// mapping run even on cached provider responses.
func (s *NutritionService) Enrich(ctx context.Context, ingredients []string) (*NutritionFacts, error) {
	raw, err := s.fetch(ctx, ingredients)
	if err != nil {
		return nil, err
	}

	var resp edamamResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, apperr.Enrichment(apperr.RecipeEnrichFailed, err)
	}

	if err := validation.CheckCalories(resp.Calories); err != nil {
		// Policy failure of the enrichment pipeline, not a client input
		// error: keep the calorie message, classify as enrichment.
		return nil, apperr.Enrichment(err.Error(), nil)
	}

	labels, err := s.resolveLabels(ctx, resp.DietLabels, resp.HealthLabels)
	if err != nil {
		return nil, err
	}

	return &NutritionFacts{
		Calories: resp.Calories,
		Labels:   labels,
		Nutrients: model.NutrientSet{
			Protein: model.Nutrient(resp.TotalNutrients["PROCNT"]),
			Carb:    model.Nutrient(resp.TotalNutrients["CHOCDF"]),
			Fat:     model.Nutrient(resp.TotalNutrients["FAT"]),
			Fiber:   model.Nutrient(resp.TotalNutrients["FIBER"]),
		},
	}, nil
}

// fetch returns the raw provider response, reading through the cache when
// one is configured. Cache failures fall through to the API.
func (s *NutritionService) fetch(ctx context.Context, ingredients []string) ([]byte, error) {
	key := cacheKey(ingredients)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key).Bytes(); err == nil {
			return cached, nil
		}
	}

	body, err := json.Marshal(map[string][]string{"ingr": ingredients})
	if err != nil {
		return nil, apperr.Enrichment(apperr.RecipeEnrichFailed, err)
	}

	endpoint, err := url.Parse(s.apiURL)
	if err != nil {
		return nil, apperr.Enrichment(apperr.RecipeEnrichFailed, err)
	}
	params := url.Values{}
	params.Set("app_id", s.appID)
	params.Set("app_key", s.appKey)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, apperr.Enrichment(apperr.RecipeEnrichFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.WithError(err).Error("nutrition API request failed")
		return nil, apperr.Enrichment(apperr.RecipeEnrichFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Enrichment(apperr.RecipeEnrichFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.log.WithField("status", resp.StatusCode).Error("nutrition API rejected request")
		return nil, apperr.Enrichment(apperr.RecipeEnrichFailed, fmt.Errorf("nutrition API status %d", resp.StatusCode))
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, raw, nutritionCacheTTL).Err(); err != nil {
			s.log.WithError(err).Warn("failed to cache nutrition response")
		}
	}

	return raw, nil
}

func cacheKey(ingredients []string) string {
	serialized, _ := json.Marshal(ingredients)
	sum := sha256.Sum256(serialized)
	return "nutrition:" + hex.EncodeToString(sum[:])
}

// resolveLabels maps provider label names onto the local Label set by exact
// name match; unknown provider labels are dropped.
func (s *NutritionService) resolveLabels(ctx context.Context, dietLabels, healthLabels []string) ([]model.Label, error) {
	known, err := s.labels.Labels(ctx)
	if err != nil {
		return nil, err
	}

	provided := make(map[string]bool, len(dietLabels)+len(healthLabels))
	for _, name := range dietLabels {
		provided[name] = true
	}
	for _, name := range healthLabels {
		provided[name] = true
	}

	var resolved []model.Label
	for _, label := range known {
		if provided[label.Name] {
			resolved = append(resolved, label)
		}
	}
	return resolved, nil
}
