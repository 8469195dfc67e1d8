package api

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/InsulaLabs/counsel/models"
)

const (
	minEvaluationText = 2
	maxEvaluationText = 200
)

func (a *API) ListEvaluations(ctx context.Context, params models.EvaluationListParams) (*models.List[models.Evaluation], error) {
	return fetch[models.List[models.Evaluation]](ctx, a, "/evaluations/list", params)
}

func (a *API) ListEvaluationData(ctx context.Context, params models.EvaluationDataParams) (*models.List[models.EvaluationDatum], error) {
	if params.EvaluationID <= 0 {
		return nil, ErrInvalidID
	}
	return fetch[models.List[models.EvaluationDatum]](ctx, a, "/evaluations/data/list", params)
}

// CreateEvaluation creates an evaluation with its items. Unset publish
// status means unpublished.
func (a *API) CreateEvaluation(ctx context.Context, params models.CreateEvaluationParams) (*models.BaseResult, error) {
	if err := validateEvaluation(&params); err != nil {
		return nil, err
	}
	return a.exec(ctx, "/evaluations/create", params)
}

func validateEvaluation(params *models.CreateEvaluationParams) error {
	if !textLengthOK(params.Name) {
		return ErrEvaluationName
	}
	if len(params.Items) == 0 {
		return ErrEvaluationItems
	}
	for i, item := range params.Items {
		if !textLengthOK(item.Title) {
			return fmt.Errorf("item %d: %w", i, ErrEvaluationItemTitle)
		}
	}
	if params.PublishStatus == "" {
		params.PublishStatus = models.Unpublished
	}
	return nil
}

// lengths are counted in characters, not bytes
func textLengthOK(s string) bool {
	n := utf8.RuneCountInString(s)
	return n >= minEvaluationText && n <= maxEvaluationText
}
