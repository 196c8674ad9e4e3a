package server

import (
	"context"
	"encoding/json"

	"github.com/sig-0/fipeval/types"
)

type (
	resolvePlateDelegate   func(context.Context, string) (*types.ResolvedVehicle, error)
	resolveHistoryDelegate func(context.Context, string, int) (*types.HistoryResult, error)
	payloadDelegate        func(context.Context) (json.RawMessage, error)
	depreciationDelegate   func(context.Context, string) (json.RawMessage, error)
	brandsDelegate         func(context.Context, types.BrandsQuery) (json.RawMessage, error)
	modelsDelegate         func(context.Context, types.ModelsQuery) (json.RawMessage, error)
	fipeByCodeDelegate     func(context.Context, types.FipeCode, int) (json.RawMessage, error)
)

type mockResolver struct {
	resolvePlateFn   resolvePlateDelegate
	resolveHistoryFn resolveHistoryDelegate
}

func (m *mockResolver) ResolvePlate(ctx context.Context, plate string) (*types.ResolvedVehicle, error) {
	if m.resolvePlateFn != nil {
		return m.resolvePlateFn(ctx, plate)
	}

	return nil, nil
}

func (m *mockResolver) ResolveHistory(ctx context.Context, code string, window int) (*types.HistoryResult, error) {
	if m.resolveHistoryFn != nil {
		return m.resolveHistoryFn(ctx, code, window)
	}

	return nil, nil
}

type mockRegistry struct {
	quotasFn       payloadDelegate
	depreciationFn depreciationDelegate
	fuelsFn        payloadDelegate
	brandsFn       brandsDelegate
	modelsFn       modelsDelegate
	fipeByCodeFn   fipeByCodeDelegate
}

func (m *mockRegistry) Quotas(ctx context.Context) (json.RawMessage, error) {
	if m.quotasFn != nil {
		return m.quotasFn(ctx)
	}

	return nil, nil
}

func (m *mockRegistry) Depreciation(ctx context.Context, token string) (json.RawMessage, error) {
	if m.depreciationFn != nil {
		return m.depreciationFn(ctx, token)
	}

	return nil, nil
}

func (m *mockRegistry) Fuels(ctx context.Context) (json.RawMessage, error) {
	if m.fuelsFn != nil {
		return m.fuelsFn(ctx)
	}

	return nil, nil
}

func (m *mockRegistry) Brands(ctx context.Context, query types.BrandsQuery) (json.RawMessage, error) {
	if m.brandsFn != nil {
		return m.brandsFn(ctx, query)
	}

	return nil, nil
}

func (m *mockRegistry) Models(ctx context.Context, query types.ModelsQuery) (json.RawMessage, error) {
	if m.modelsFn != nil {
		return m.modelsFn(ctx, query)
	}

	return nil, nil
}

func (m *mockRegistry) FipeByCode(ctx context.Context, code types.FipeCode, year int) (json.RawMessage, error) {
	if m.fipeByCodeFn != nil {
		return m.fipeByCodeFn(ctx, code, year)
	}

	return nil, nil
}
