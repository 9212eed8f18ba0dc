package app

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/treesim/domain"
)

type stubService struct {
	response *domain.CompareResponse
	err      error
	gotReq   *domain.CompareRequest
}

func (s *stubService) Compare(_ context.Context, req *domain.CompareRequest) (*domain.CompareResponse, error) {
	s.gotReq = req
	return s.response, s.err
}

type stubFormatter struct {
	err    error
	wrote  bool
	format domain.OutputFormat
}

func (f *stubFormatter) Format(*domain.CompareResponse, domain.OutputFormat) (string, error) {
	return "", nil
}

func (f *stubFormatter) Write(_ *domain.CompareResponse, format domain.OutputFormat, w io.Writer) error {
	f.wrote = true
	f.format = format
	return f.err
}

type stubConfigLoader struct {
	base *domain.CompareRequest
	err  error
}

func (l *stubConfigLoader) LoadConfig(string) (*domain.CompareRequest, error) {
	return l.base, l.err
}

func (l *stubConfigLoader) MergeConfig(base, req *domain.CompareRequest) *domain.CompareRequest {
	merged := *base
	merged.PathA = req.PathA
	merged.PathB = req.PathB
	merged.OutputWriter = req.OutputWriter
	return &merged
}

func validRequest() domain.CompareRequest {
	req := domain.DefaultCompareRequest()
	req.PathA = "a.json"
	req.PathB = "b.json"
	req.OutputWriter = &strings.Builder{}
	return req
}

func TestCompareUseCase_Execute(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		svc := &stubService{response: &domain.CompareResponse{}}
		fmtr := &stubFormatter{}
		uc := NewCompareUseCase(svc, fmtr, nil)

		req := validRequest()
		req.OutputFormat = domain.OutputFormatJSON

		require.NoError(t, uc.Execute(context.Background(), req))
		assert.True(t, fmtr.wrote)
		assert.Equal(t, domain.OutputFormatJSON, fmtr.format)
		assert.Equal(t, "a.json", svc.gotReq.PathA)
	})

	t.Run("invalid request is rejected before the service runs", func(t *testing.T) {
		svc := &stubService{response: &domain.CompareResponse{}}
		uc := NewCompareUseCase(svc, &stubFormatter{}, nil)

		req := validRequest()
		req.PathB = ""

		require.Error(t, uc.Execute(context.Background(), req))
		assert.Nil(t, svc.gotReq)
	})

	t.Run("missing output writer", func(t *testing.T) {
		uc := NewCompareUseCase(&stubService{}, &stubFormatter{}, nil)

		req := validRequest()
		req.OutputWriter = nil

		err := uc.Execute(context.Background(), req)
		require.Error(t, err)
		assert.True(t, domain.IsInvalidArgument(err))
	})

	t.Run("service failure propagates", func(t *testing.T) {
		svcErr := errors.New("boom")
		uc := NewCompareUseCase(&stubService{err: svcErr}, &stubFormatter{}, nil)

		err := uc.Execute(context.Background(), validRequest())
		require.Error(t, err)
		assert.ErrorIs(t, err, svcErr)
	})

	t.Run("formatter failure propagates", func(t *testing.T) {
		fmtErr := errors.New("bad pipe")
		uc := NewCompareUseCase(&stubService{response: &domain.CompareResponse{}}, &stubFormatter{err: fmtErr}, nil)

		err := uc.Execute(context.Background(), validRequest())
		require.Error(t, err)
		assert.ErrorIs(t, err, fmtErr)
	})
}

func TestCompareUseCase_LoadRequest(t *testing.T) {
	t.Run("no loader passes the request through", func(t *testing.T) {
		uc := NewCompareUseCase(&stubService{}, &stubFormatter{}, nil)

		req := validRequest()
		got, err := uc.LoadRequest(req)
		require.NoError(t, err)
		assert.Equal(t, req.PathA, got.PathA)
	})

	t.Run("loader base is merged under the request", func(t *testing.T) {
		base := domain.DefaultCompareRequest()
		base.Depth = 7
		uc := NewCompareUseCase(&stubService{}, &stubFormatter{}, &stubConfigLoader{base: &base})

		got, err := uc.LoadRequest(validRequest())
		require.NoError(t, err)
		assert.Equal(t, 7, got.Depth)
		assert.Equal(t, "a.json", got.PathA)
	})

	t.Run("loader failure propagates", func(t *testing.T) {
		cfgErr := errors.New("bad config")
		uc := NewCompareUseCase(&stubService{}, &stubFormatter{}, &stubConfigLoader{err: cfgErr})

		_, err := uc.LoadRequest(validRequest())
		assert.ErrorIs(t, err, cfgErr)
	})
}

func TestCompareUseCaseBuilder(t *testing.T) {
	t.Run("requires a service", func(t *testing.T) {
		_, err := NewCompareUseCaseBuilder().WithFormatter(&stubFormatter{}).Build()
		assert.Error(t, err)
	})

	t.Run("requires a formatter", func(t *testing.T) {
		_, err := NewCompareUseCaseBuilder().WithService(&stubService{}).Build()
		assert.Error(t, err)
	})

	t.Run("config loader is optional", func(t *testing.T) {
		uc, err := NewCompareUseCaseBuilder().
			WithService(&stubService{}).
			WithFormatter(&stubFormatter{}).
			Build()
		require.NoError(t, err)
		assert.NotNil(t, uc)
	})
}
