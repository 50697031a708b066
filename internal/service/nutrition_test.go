package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenspoon/backend/config"
	"github.com/greenspoon/backend/internal/apperr"
	"github.com/greenspoon/backend/internal/model"
)

type fakeLabels struct {
	labels []model.Label
}

func (f *fakeLabels) Labels(_ context.Context) ([]model.Label, error) {
	return f.labels, nil
}

func newNutritionService(t *testing.T, handler http.HandlerFunc, labels []model.Label) *NutritionService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := &config.Config{
		EdamamURL:    server.URL,
		EdamamAppID:  "test-id",
		EdamamAppKey: "test-key",
	}
	return NewNutritionService(cfg, &fakeLabels{labels: labels}, nil, log)
}

func edamamPayload(calories int, dietLabels, healthLabels []string) []byte {
	payload, _ := json.Marshal(map[string]interface{}{
		"calories": calories,
		"totalNutrients": map[string]interface{}{
			"PROCNT": map[string]interface{}{"label": "Protein", "quantity": 12.5, "unit": "g"},
			"CHOCDF": map[string]interface{}{"label": "Carbs", "quantity": 40.0, "unit": "g"},
			"FAT":    map[string]interface{}{"label": "Fat", "quantity": 9.1, "unit": "g"},
			"FIBER":  map[string]interface{}{"label": "Fiber", "quantity": 3.2, "unit": "g"},
		},
		"dietLabels":   dietLabels,
		"healthLabels": healthLabels,
	})
	return payload
}

func TestNutritionEnrichMapsResponse(t *testing.T) {
	known := []model.Label{
		{Name: "Balanced", Type: model.LabelTypeDiet},
		{Name: "Vegan", Type: model.LabelTypeHealth},
		{Name: "Low-Fat", Type: model.LabelTypeDiet},
	}

	var gotBody map[string][]string
	var gotQuery map[string]string
	svc := newNutritionService(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"app_id":  r.URL.Query().Get("app_id"),
			"app_key": r.URL.Query().Get("app_key"),
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write(edamamPayload(560, []string{"Balanced"}, []string{"Vegan", "Unknown-Label"}))
	}, known)

	facts, err := svc.Enrich(context.Background(), []string{"1 cup rice", "100g tofu"})
	require.NoError(t, err)

	assert.Equal(t, []string{"1 cup rice", "100g tofu"}, gotBody["ingr"])
	assert.Equal(t, "test-id", gotQuery["app_id"])
	assert.Equal(t, "test-key", gotQuery["app_key"])

	assert.Equal(t, 560, facts.Calories)
	assert.Equal(t, "Protein", facts.Nutrients.Protein.Label)
	assert.InDelta(t, 12.5, facts.Nutrients.Protein.Quantity, 0.001)
	assert.Equal(t, "g", facts.Nutrients.Fiber.Unit)

	// Only labels known locally survive; the unknown provider label is
	// dropped silently.
	require.Len(t, facts.Labels, 2)
	names := []string{facts.Labels[0].Name, facts.Labels[1].Name}
	assert.ElementsMatch(t, []string{"Balanced", "Vegan"}, names)
}

func TestNutritionEnrichRejectsCalorieCeiling(t *testing.T) {
	svc := newNutritionService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(edamamPayload(750, nil, nil))
	}, nil)

	_, err := svc.Enrich(context.Background(), []string{"a whole cake"})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindEnrichment))
	assert.EqualError(t, err, "Your recipe is too high in calories: 750 kcal. Maximum value: 700 kcal.")
}

func TestNutritionEnrichProviderRejection(t *testing.T) {
	svc := newNutritionService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, nil)

	_, err := svc.Enrich(context.Background(), []string{"???"})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindEnrichment))
	assert.EqualError(t, err, "Unfortunately, we are unable to process your recipe. Check the units or possible typos and try again")
}

func TestNutritionEnrichMalformedResponse(t *testing.T) {
	svc := newNutritionService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}, nil)

	_, err := svc.Enrich(context.Background(), []string{"1 cup rice"})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindEnrichment))
}
