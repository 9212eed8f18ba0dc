package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/ludo-technologies/treesim/domain"
	"github.com/ludo-technologies/treesim/internal/analyzer"
	"github.com/ludo-technologies/treesim/internal/encoder"
	"github.com/ludo-technologies/treesim/internal/tree"
)

// CompareServiceImpl implements the domain.CompareService interface
type CompareServiceImpl struct {
	reader   *TreeReaderImpl
	progress domain.ProgressReporter
}

// NewCompareService creates a new compare service.
// progress can be nil - the service can work without progress reporting
func NewCompareService(progress domain.ProgressReporter) *CompareServiceImpl {
	if progress == nil {
		progress = NewNoOpProgressReporter()
	}
	return &CompareServiceImpl{
		reader:   NewTreeReader(),
		progress: progress,
	}
}

// Compare performs tree comparison based on the request
func (s *CompareServiceImpl) Compare(ctx context.Context, req *domain.CompareRequest) (*domain.CompareResponse, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}
	if req == nil {
		return nil, fmt.Errorf("compare request cannot be nil")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	startTime := time.Now()

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	enc, err := s.buildEncoder(req)
	if err != nil {
		return nil, err
	}
	dist := buildDistance(req.Distance)

	pairs, warnings, err := s.resolvePairs(req)
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return nil, domain.NewInvalidArgumentError("no tree file pairs to compare")
	}

	response := &domain.CompareResponse{
		Unordered:   req.Unordered,
		Averaged:    req.Averaged,
		Warnings:    warnings,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}

	s.progress.StartProgress(len(pairs))
	defer s.progress.FinishProgress()

	for i, pair := range pairs {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("comparison cancelled: %w", ctx.Err())
		}
		s.progress.UpdateProgress(pair.fileA, i, len(pairs))

		result, err := s.comparePair(ctx, pair, enc, dist, req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("comparison cancelled: %w", ctx.Err())
			}
			response.Errors = append(response.Errors, fmt.Sprintf("%s vs %s: %v", pair.fileA, pair.fileB, err))
			continue
		}
		response.Results = append(response.Results, *result)
	}

	response.Summary = summarize(response.Results)
	response.Duration = time.Since(startTime).Milliseconds()
	return response, nil
}

// treePair is one unit of comparison work
type treePair struct {
	fileA string
	fileB string
}

// resolvePairs maps the two request paths onto comparison pairs: two
// files form one pair, two directories pair their tree files by relative
// path. Files present on only one side become warnings.
func (s *CompareServiceImpl) resolvePairs(req *domain.CompareRequest) ([]treePair, []string, error) {
	infoA, err := os.Stat(req.PathA)
	if err != nil {
		return nil, nil, domain.NewFileNotFoundError(req.PathA, err)
	}
	infoB, err := os.Stat(req.PathB)
	if err != nil {
		return nil, nil, domain.NewFileNotFoundError(req.PathB, err)
	}

	if infoA.IsDir() != infoB.IsDir() {
		return nil, nil, domain.NewInvalidArgumentError("inputs must both be files or both be directories")
	}

	if !infoA.IsDir() {
		return []treePair{{fileA: req.PathA, fileB: req.PathB}}, nil, nil
	}

	filesA, err := s.reader.CollectTreeFiles([]string{req.PathA}, true, req.IncludePatterns, req.ExcludePatterns)
	if err != nil {
		return nil, nil, err
	}
	filesB, err := s.reader.CollectTreeFiles([]string{req.PathB}, true, req.IncludePatterns, req.ExcludePatterns)
	if err != nil {
		return nil, nil, err
	}

	relB := make(map[string]string, len(filesB))
	for _, f := range filesB {
		rel, err := filepath.Rel(req.PathB, f)
		if err != nil {
			continue
		}
		relB[rel] = f
	}

	var pairs []treePair
	var warnings []string
	matched := make(map[string]bool)
	for _, f := range filesA {
		rel, err := filepath.Rel(req.PathA, f)
		if err != nil {
			continue
		}
		if other, ok := relB[rel]; ok {
			pairs = append(pairs, treePair{fileA: f, fileB: other})
			matched[rel] = true
		} else {
			warnings = append(warnings, fmt.Sprintf("no counterpart for %s", f))
		}
	}
	for rel, f := range relB {
		if !matched[rel] {
			warnings = append(warnings, fmt.Sprintf("no counterpart for %s", f))
		}
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].fileA < pairs[j].fileA })
	sort.Strings(warnings)
	return pairs, warnings, nil
}

// comparePair loads and scores a single pair of trees
func (s *CompareServiceImpl) comparePair(ctx context.Context, pair treePair, enc domain.Encoder, dist domain.EmbeddingDistance, req *domain.CompareRequest) (*domain.CompareResult, error) {
	ta, err := s.reader.LoadTree(pair.fileA)
	if err != nil {
		return nil, err
	}
	tb, err := s.reader.LoadTree(pair.fileB)
	if err != nil {
		return nil, err
	}

	result := &domain.CompareResult{
		FileA: pair.fileA,
		FileB: pair.fileB,
		SizeA: ta.Size(),
		SizeB: tb.Size(),
	}
	result.MaxDepth = ta.MaxDepth()
	if d := tb.MaxDepth(); d > result.MaxDepth {
		result.MaxDepth = d
	}

	opts := analyzer.Options{
		Normalize:  req.Normalize,
		Unordered:  req.Unordered,
		UseContext: req.UseContext,
		Depth:      req.Depth,
	}

	if !req.Averaged {
		score, err := analyzer.Compare(ctx, ta, tb, enc, dist, opts)
		if err != nil {
			return nil, err
		}
		result.Distance = score
		return result, nil
	}

	scores, err := s.depthScores(ctx, ta, tb, enc, dist, opts)
	if err != nil {
		return nil, err
	}

	total := 0.0
	for _, ds := range scores {
		total += ds.Distance
	}
	result.Distance = total / float64(len(scores))
	result.DepthScores = scores
	return result, nil
}

// depthScores computes the normalized distance at every truncation depth.
// Each depth rebuilds its own cost table, so the computations share
// nothing and run on a bounded worker pool.
func (s *CompareServiceImpl) depthScores(ctx context.Context, ta, tb *tree.Tree, enc domain.Encoder, dist domain.EmbeddingDistance, opts analyzer.Options) ([]domain.DepthScore, error) {
	depths, err := analyzer.AveragedDepths(ta, tb, opts.Depth)
	if err != nil {
		return nil, err
	}

	scores := make([]domain.DepthScore, len(depths))
	errChan := make(chan error, len(depths))
	semaphore := make(chan struct{}, runtime.NumCPU())

	var wg sync.WaitGroup
	for i, k := range depths {
		wg.Add(1)
		go func(i, k int) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			select {
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			default:
			}

			perDepth := opts
			perDepth.Normalize = true
			perDepth.Depth = k
			score, err := analyzer.Compare(ctx, ta, tb, enc, dist, perDepth)
			if err != nil {
				errChan <- err
				return
			}
			scores[i] = domain.DepthScore{Depth: k, Distance: score}
		}(i, k)
	}
	wg.Wait()
	close(errChan)

	if err := <-errChan; err != nil {
		return nil, err
	}
	return scores, nil
}

// buildEncoder constructs the encoder capability from the request
func (s *CompareServiceImpl) buildEncoder(req *domain.CompareRequest) (domain.Encoder, error) {
	switch req.Encoder {
	case domain.EncoderOpenAI:
		envVar := req.APIKeyEnvVar
		if envVar == "" {
			envVar = "OPENAI_API_KEY"
		}
		key := os.Getenv(envVar)
		if key == "" {
			return nil, domain.NewConfigError(fmt.Sprintf("environment variable %s is not set", envVar), nil)
		}
		return encoder.NewOpenAI(key, req.Model), nil
	case domain.EncoderLexical:
		return encoder.NewLexical(req.Dimensions), nil
	default:
		return nil, domain.NewInvalidArgumentError("unknown encoder: " + string(req.Encoder))
	}
}

func buildDistance(d domain.DistanceType) domain.EmbeddingDistance {
	if d == domain.DistanceEuclidean {
		return encoder.Euclidean
	}
	return encoder.Cosine
}

func summarize(results []domain.CompareResult) domain.CompareSummary {
	summary := domain.CompareSummary{TotalPairs: len(results)}
	if len(results) == 0 {
		return summary
	}

	summary.MinDistance = results[0].Distance
	summary.MaxDistance = results[0].Distance
	total := 0.0
	for _, r := range results {
		total += r.Distance
		if r.Distance < summary.MinDistance {
			summary.MinDistance = r.Distance
		}
		if r.Distance > summary.MaxDistance {
			summary.MaxDistance = r.Distance
		}
	}
	summary.AverageDistance = total / float64(len(results))
	return summary
}
