package api

import (
	"context"
	"strings"

	"github.com/InsulaLabs/counsel/models"
)

func (a *API) ListCompanies(ctx context.Context, params models.CompanyListParams) (*models.List[models.Company], error) {
	return fetch[models.List[models.Company]](ctx, a, "/companies/list", params)
}

func (a *API) CreateCompany(ctx context.Context, params models.CreateCompanyParams) (*models.BaseResult, error) {
	if strings.TrimSpace(params.CompanyName) == "" {
		return nil, ErrCompanyNameRequired
	}
	return a.exec(ctx, "/companies/create", params)
}

func (a *API) EditCompany(ctx context.Context, params models.UpdateCompanyParams) (*models.BaseResult, error) {
	if params.ID <= 0 {
		return nil, ErrInvalidID
	}
	return a.exec(ctx, "/companies/edit", params)
}

func (a *API) DeleteCompany(ctx context.Context, id int64) (*models.BaseResult, error) {
	return a.deleteByID(ctx, "/companies/delete", id)
}

func (a *API) ListRecharges(ctx context.Context, params models.RechargeListParams) (*models.List[models.Recharge], error) {
	if params.CompanyID <= 0 {
		return nil, ErrInvalidID
	}
	return fetch[models.List[models.Recharge]](ctx, a, "/companies/recharge/list", params)
}

func (a *API) CreateRecharge(ctx context.Context, params models.CreateRechargeParams) (*models.BaseResult, error) {
	if params.CompanyID <= 0 {
		return nil, ErrInvalidID
	}
	return a.exec(ctx, "/companies/recharge/create", params)
}
