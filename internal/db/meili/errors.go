package meili

import (
	"errors"
	"time"

	"github.com/meilisearch/meilisearch-go"

	"github.com/kailas-cloud/searchtools/internal/db"
	"github.com/kailas-cloud/searchtools/internal/metrics"
)

// classify wraps an SDK error into a *db.Error carrying the failure kind.
func classify(op, index string, err error) error {
	if err == nil {
		return nil
	}
	e := &db.Error{Op: op, Index: index, Kind: db.KindOf(err), Err: err}

	var me *meilisearch.Error
	if errors.As(err, &me) {
		switch me.ErrCode {
		case meilisearch.MeilisearchApiError, meilisearch.MeilisearchApiErrorWithoutMessage:
			e.Kind = db.KindRequest
			e.Code = me.MeilisearchApiError.Code
		case meilisearch.MeilisearchCommunicationError, meilisearch.MeilisearchTimeoutError:
			e.Kind = db.KindCommunication
		default:
			// Max retries and unknown SDK codes keep whatever KindOf found on the cause chain.
		}
	}
	return e
}

func observe(op, index string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
		metrics.EngineErrorsTotal.WithLabelValues(op, db.KindOf(err).String()).Inc()
	}
	metrics.EngineRequestsTotal.WithLabelValues(op, index, status).Inc()
	metrics.EngineRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
