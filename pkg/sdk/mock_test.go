package searchtools

import (
	"context"

	"github.com/kailas-cloud/searchtools/internal/domain/envelope"
	"github.com/kailas-cloud/searchtools/internal/domain/search/request"
	healthuc "github.com/kailas-cloud/searchtools/internal/usecase/health"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn      func(ctx context.Context, index string, req *request.Request) envelope.Envelope
	areaNamesFn   func(ctx context.Context) envelope.Envelope
	indexStatsFn  func(ctx context.Context, index string) envelope.Envelope
	listIndexesFn func(ctx context.Context, limit, offset int) envelope.Envelope
}

func (m *mockSearchUC) Search(ctx context.Context, index string, req *request.Request) envelope.Envelope {
	return m.searchFn(ctx, index, req)
}

func (m *mockSearchUC) AreaNames(ctx context.Context) envelope.Envelope {
	return m.areaNamesFn(ctx)
}

func (m *mockSearchUC) IndexStats(ctx context.Context, index string) envelope.Envelope {
	return m.indexStatsFn(ctx, index)
}

func (m *mockSearchUC) ListIndexes(ctx context.Context, limit, offset int) envelope.Envelope {
	return m.listIndexesFn(ctx, limit, offset)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report {
	return m.report
}
