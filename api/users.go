package api

import (
	"context"
	"strconv"

	"github.com/InsulaLabs/counsel/client"
	"github.com/InsulaLabs/counsel/models"
)

// AdminProfile returns the signed-in operator with UserID derived from ID.
func (a *API) AdminProfile(ctx context.Context) (*models.AdminProfile, error) {
	profile, err := fetch[models.AdminProfile](ctx, a, "/admin/detail", nil)
	if err != nil {
		return nil, err
	}
	profile.UserID = strconv.FormatInt(profile.ID, 10)
	return profile, nil
}

func (a *API) ListUsers(ctx context.Context, params models.UserListParams) (*models.List[models.User], error) {
	return fetch[models.List[models.User]](ctx, a, "/users/list", params)
}

func (a *API) EnableUser(ctx context.Context, userID int64) (*models.BaseResult, error) {
	if userID <= 0 {
		return nil, ErrInvalidID
	}
	return a.exec(ctx, "/users/enable", empty, client.WithQuery("user_id", userID))
}

func (a *API) DisableUser(ctx context.Context, userID int64) (*models.BaseResult, error) {
	if userID <= 0 {
		return nil, ErrInvalidID
	}
	return a.exec(ctx, "/users/disable", empty, client.WithQuery("user_id", userID))
}

// ExportUsers asks the backend for a spreadsheet of the matching users and
// returns where to download it.
func (a *API) ExportUsers(ctx context.Context, params models.UserExportParams) (*models.UserExport, error) {
	return fetch[models.UserExport](ctx, a, "/users/export", params)
}
