package predictor

import (
	"github.com/agrodata/crianza_projection/internal/crianza/types"
	"github.com/agrodata/crianza_projection/internal/logger"
)

// Service validates requests, derives features and invokes the estimator.
type Service struct {
	cfg       Config
	estimator Estimator
	appLogger *logger.Logger
}

// BatchResult is the outcome for one request of a batch. Result i depends
// only on request i; a rejected row never takes its neighbours down.
type BatchResult struct {
	Result *PredictionResult `json:"result,omitempty"`
	Err    error             `json:"-"`
}

func NewService(cfg Config, estimator Estimator, appLogger *logger.Logger) *Service {
	return &Service{cfg: cfg, estimator: estimator, appLogger: appLogger}
}

// Predict validates one request and returns the estimator's point estimate
// tagged with the model's provenance.
func (s *Service) Predict(req PredictionRequest) (*PredictionResult, error) {
	const component = "Predictor"

	if s.estimator == nil {
		return nil, &types.EstimatorUnavailableError{Reason: "no estimator configured"}
	}

	if err := s.cfg.Validate(req); err != nil {
		s.appLogger.Debug(component, "Request rejected: error=%v", err)
		return nil, err
	}

	features, err := DeriveFeatures(req)
	if err != nil {
		return nil, err
	}

	estimate, err := s.estimator.Predict(features)
	if err != nil {
		return nil, err
	}

	return &PredictionResult{
		Request:                 req,
		EstimatedDailyGainGrams: estimate,
		Provenance:              s.estimator.Name(),
	}, nil
}

// PredictMany is the order-preserving batch form. Rows are independent: the
// result slice has one entry per request, in request order, and batch
// invocation is equivalent to per-row invocation.
func (s *Service) PredictMany(reqs []PredictionRequest) []BatchResult {
	results := make([]BatchResult, len(reqs))
	for i, req := range reqs {
		result, err := s.Predict(req)
		results[i] = BatchResult{Result: result, Err: err}
	}
	return results
}
