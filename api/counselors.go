package api

import (
	"context"
	"strings"

	"github.com/InsulaLabs/counsel/client"
	"github.com/InsulaLabs/counsel/models"
	"github.com/InsulaLabs/counsel/upload"
)

const ImportCounselorsPath = "/counselors/import-excel"

func (a *API) ListCounselors(ctx context.Context, params models.CounselorListParams) (*models.List[models.Counselor], error) {
	return fetch[models.List[models.Counselor]](ctx, a, "/counselors/list", params)
}

func (a *API) CreateCounselor(ctx context.Context, params models.CounselorParams) (*models.BaseResult, error) {
	if strings.TrimSpace(params.CounselorName) == "" {
		return nil, ErrCounselorNameRequired
	}
	params.ID = 0
	return a.exec(ctx, "/counselors/create", params)
}

func (a *API) EditCounselor(ctx context.Context, params models.CounselorParams) (*models.BaseResult, error) {
	if params.ID <= 0 {
		return nil, ErrInvalidID
	}
	return a.exec(ctx, "/counselors/edit", params)
}

func (a *API) DeleteCounselor(ctx context.Context, id int64) (*models.BaseResult, error) {
	return a.deleteByID(ctx, "/counselors/delete", id)
}

func (a *API) ToggleCounselorStatus(ctx context.Context, params models.ToggleCounselorStatusParams) (*models.BaseResult, error) {
	if params.ID <= 0 {
		return nil, ErrInvalidID
	}
	return a.exec(ctx, "/counselors/toggle-status", params)
}

func (a *API) ListCounselingDurations(ctx context.Context, params models.CounselingDurationListParams) (*models.List[models.CounselingDuration], error) {
	return fetch[models.List[models.CounselingDuration]](ctx, a, "/counselors/duration/list", params)
}

func (a *API) CreateCounselingDuration(ctx context.Context, params models.CreateCounselingDurationParams) (*models.BaseResult, error) {
	if params.CounselorID <= 0 {
		return nil, ErrInvalidID
	}
	return a.exec(ctx, "/counselors/duration/create", params)
}

func (a *API) AuditCounselingDuration(ctx context.Context, params models.AuditCounselingDurationParams) (*models.BaseResult, error) {
	if params.ID <= 0 {
		return nil, ErrInvalidID
	}
	return a.exec(ctx, "/counselors/duration/audit", params)
}

// SearchCities is the only GET of the backend; the keyword travels in the
// query string.
func (a *API) SearchCities(ctx context.Context, keyword string) (*models.CityList, error) {
	var out models.CityList
	if _, err := a.client.Get(ctx, "/counselors/cities", &out, client.WithQuery("keyword", keyword)); err != nil {
		return nil, err
	}
	return &out, nil
}

// ImportCounselors uploads a counselor spreadsheet. A rejected sheet is an
// Outcome of kind upload.KindRejected, not an error.
func (a *API) ImportCounselors(ctx context.Context, file upload.File, opts ...upload.CallOption) (*upload.Outcome[models.ImportResult], error) {
	if a.uploader == nil {
		return nil, ErrUploaderMissing
	}
	return upload.Upload[models.ImportResult](ctx, a.uploader, ImportCounselorsPath, upload.Fields{"file": file}, opts...)
}
