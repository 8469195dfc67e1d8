package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/InsulaLabs/counsel/client"
	"github.com/InsulaLabs/counsel/models"
)

func (a *API) ListQuestionnaires(ctx context.Context, params models.QuestionnaireListParams) (*models.List[models.Questionnaire], error) {
	return fetch[models.List[models.Questionnaire]](ctx, a, "/questionnaires/list", params)
}

func (a *API) DeleteQuestionnaire(ctx context.Context, id int64) (*models.BaseResult, error) {
	return a.deleteByID(ctx, "/questionnaires/delete", id)
}

// ListFAQs unwraps the FAQ list, which the backend nests in a second
// envelope inside data. A single envelope is accepted as well.
func (a *API) ListFAQs(ctx context.Context, params models.FAQListParams) (*models.List[models.FAQ], error) {
	var raw json.RawMessage
	if _, err := a.client.Post(ctx, "/faqs/list", params, &raw); err != nil {
		return nil, err
	}

	var inner models.Envelope
	if err := json.Unmarshal(raw, &inner); err == nil && inner.HasData() {
		if inner.Code != 0 && inner.Code != http.StatusOK {
			return nil, &client.APIError{
				StatusCode: http.StatusOK,
				Code:       inner.Code,
				Message:    inner.Message,
				RequestID:  inner.RID,
				Structured: true,
			}
		}
		raw = inner.Data
	}

	var out models.List[models.FAQ]
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			a.logger.Error("Failed to decode faq list", "error", err)
			return nil, fmt.Errorf("failed to decode faq list: %w", err)
		}
	}
	return &out, nil
}

func (a *API) CreateFAQ(ctx context.Context, params models.FAQParams) (*models.BaseResult, error) {
	if strings.TrimSpace(params.Question) == "" {
		return nil, ErrQuestionRequired
	}
	params.ID = 0
	return a.exec(ctx, "/faqs/create", params)
}

func (a *API) EditFAQ(ctx context.Context, params models.FAQParams) (*models.BaseResult, error) {
	if params.ID <= 0 {
		return nil, ErrInvalidID
	}
	return a.exec(ctx, "/faqs/edit", params)
}

func (a *API) ToggleFAQStatus(ctx context.Context, params models.ToggleFAQStatusParams) (*models.BaseResult, error) {
	if params.ID <= 0 {
		return nil, ErrInvalidID
	}
	return a.exec(ctx, "/faqs/toggle-status", params)
}

func (a *API) DeleteFAQ(ctx context.Context, id int64) (*models.BaseResult, error) {
	return a.deleteByID(ctx, "/faqs/delete", id)
}

func (a *API) ListConsultationOrders(ctx context.Context, params models.ConsultationOrderListParams) (*models.List[models.ConsultationOrder], error) {
	return fetch[models.List[models.ConsultationOrder]](ctx, a, "/orders/consultation/list", params)
}

func (a *API) ListFeedback(ctx context.Context, page models.Page) (*models.List[models.Feedback], error) {
	return fetch[models.List[models.Feedback]](ctx, a, "/feedback/list", page)
}
