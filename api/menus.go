package api

import (
	"context"

	"github.com/InsulaLabs/counsel/models"
)

func (a *API) MenuTree(ctx context.Context) ([]models.Menu, error) {
	out, err := fetch[[]models.Menu](ctx, a, "/menu/tree", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

func (a *API) ListMenus(ctx context.Context) ([]models.Menu, error) {
	out, err := fetch[[]models.Menu](ctx, a, "/menu/list", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

func (a *API) CreateMenu(ctx context.Context, menu models.Menu) (*models.BaseResult, error) {
	menu.ID = 0
	return a.exec(ctx, "/menu/create", menu)
}

func (a *API) EditMenu(ctx context.Context, menu models.Menu) (*models.BaseResult, error) {
	if menu.ID <= 0 {
		return nil, ErrInvalidID
	}
	return a.exec(ctx, "/menu/edit", menu)
}

func (a *API) DeleteMenu(ctx context.Context, id int64) (*models.BaseResult, error) {
	return a.deleteByID(ctx, "/menu/delete", id)
}

func (a *API) ListIndustries(ctx context.Context) ([]models.Industry, error) {
	out, err := fetch[[]models.Industry](ctx, a, "/industry/list", nil)
	if err != nil {
		return nil, err
	}
	return *out, nil
}
