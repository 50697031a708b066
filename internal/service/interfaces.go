package service

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"
)

// Enricher derives nutrition facts and labels for an ingredient list.
type Enricher interface {
	Enrich(ctx context.Context, ingredients []string) (*NutritionFacts, error)
}

// ImageStore is the narrow contract to the stored-image provider.
type ImageStore interface {
	Save(ctx context.Context, file *multipart.FileHeader, folder string, id uuid.UUID) (string, error)
	Delete(ctx context.Context, imageID string) error
}
