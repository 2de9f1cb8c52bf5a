// Package scan drives the life cycle of one analysis request. A request
// moves Idle → Submitting → Succeeded/Failed; submissions are strictly
// serialized, and a completed scan triggers an explicit, awaited refresh
// of the statistics snapshot and the first history page.
package scan

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/finshield/console/internal/gateway"
	"github.com/finshield/console/internal/history"
	"github.com/finshield/console/internal/localstore"
	"github.com/finshield/console/internal/logging"
	"github.com/finshield/console/internal/model"
	"github.com/finshield/console/internal/notify"
)

// State is the per-request submission state.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// EndpointForMedia maps a declared media type to its upload endpoint. The
// orchestrator trusts the reported type; a mismatch with the actual
// content is the service's responsibility to reject.
func EndpointForMedia(mediaType string) (string, error) {
	switch {
	case strings.HasPrefix(mediaType, "image/"):
		return "/analyze-image", nil
	case strings.HasPrefix(mediaType, "audio/"):
		return "/analyze-audio", nil
	case strings.HasPrefix(mediaType, "video/"):
		return "/analyze-video", nil
	}
	return "", fmt.Errorf("unsupported media type %q", mediaType)
}

// Orchestrator owns one scan request at a time. Safe for concurrent use;
// a second submit while one is in flight is refused.
type Orchestrator struct {
	mu         sync.Mutex
	state      State
	result     *model.AnalysisResult
	errMessage string

	gw       *gateway.Gateway
	history  *history.Store
	notifier *notify.Center
	cache    *localstore.Store
	logger   logging.Logger
}

// NewOrchestrator wires the orchestrator to its collaborators. cache may
// be nil; the local side-list is presentation-only.
func NewOrchestrator(gw *gateway.Gateway, hist *history.Store, notifier *notify.Center, cache *localstore.Store, logger logging.Logger) *Orchestrator {
	return &Orchestrator{
		gw:       gw,
		history:  hist,
		notifier: notifier,
		cache:    cache,
		logger:   logger.With(logging.Field{Key: "component", Value: "scan"}),
	}
}

// State returns the current submission state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Result returns the active result, or nil.
func (o *Orchestrator) Result() *model.AnalysisResult {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.result
}

// ErrorMessage returns the failure message shown in the inline error
// panel, or "".
func (o *Orchestrator) ErrorMessage() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.errMessage
}

// Reset discards the previous result and returns to Idle. Called whenever
// the user switches scan mode, clears the input, or attaches a new file.
// A submission in flight is not interrupted; the request still completes
// against the stores, which is benign since replacement is idempotent.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == StateSubmitting {
		return
	}
	o.state = StateIdle
	o.result = nil
	o.errMessage = ""
}

// begin moves Idle/Succeeded/Failed → Submitting. Returns false when a
// submission is already in flight; the UI disables controls while
// submitting, but the orchestrator short-circuits redundant submits too.
func (o *Orchestrator) begin() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == StateSubmitting {
		return false
	}
	o.state = StateSubmitting
	o.result = nil
	o.errMessage = ""
	return true
}

// SubmitText sends a JSON-bodied text analysis. Blank input is a no-op.
// The call blocks until the downstream refresh completes; callers run it
// off the interface loop.
func (o *Orchestrator) SubmitText(ctx context.Context, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	if !o.begin() {
		o.logger.Debug("submit refused, already submitting")
		return
	}

	env := o.gw.Post(ctx, "/analyze", map[string]string{"text": text})
	o.finish(ctx, env)
}

// SubmitFile uploads content to the endpoint selected from the declared
// media type.
func (o *Orchestrator) SubmitFile(ctx context.Context, filename, mediaType string, content io.Reader) {
	endpoint, err := EndpointForMedia(mediaType)
	if err != nil {
		o.mu.Lock()
		if o.state != StateSubmitting {
			o.state = StateFailed
			o.errMessage = "Unsupported file type. Upload an image, audio or video file."
		}
		o.mu.Unlock()
		o.notifier.Error("Unsupported file type")
		return
	}
	if !o.begin() {
		o.logger.Debug("submit refused, already submitting")
		return
	}

	env := o.gw.Upload(ctx, endpoint, filename, content)
	o.finish(ctx, env)
}

// finish resolves the Submitting state from the gateway envelope.
func (o *Orchestrator) finish(ctx context.Context, env *model.Envelope) {
	if !env.Success {
		o.fail(env.Message)
		return
	}

	var result model.AnalysisResult
	if err := env.Decode(&result); err != nil {
		o.fail("Invalid analysis response")
		return
	}
	if result.RiskScore == nil {
		// 2xx without the risk field is a service-contract violation,
		// surfaced exactly like any other failure.
		o.logger.Error("analysis response missing risk score")
		o.fail("Invalid analysis response")
		return
	}

	o.mu.Lock()
	o.state = StateSucceeded
	o.result = &result
	o.errMessage = ""
	o.mu.Unlock()

	o.logger.Info("scan complete",
		logging.Field{Key: "scan_type", Value: result.ScanType},
		logging.Field{Key: "risk_score", Value: *result.RiskScore},
		logging.Field{Key: "severity", Value: result.Severity})
	o.notifier.Success("Scan complete")
	o.cacheResult(&result)

	// Awaited downstream refresh: filter back to "all", stats and page 1
	// re-fetched before the submission reports done.
	o.history.RefreshAfterScan(ctx)
}

func (o *Orchestrator) fail(message string) {
	o.mu.Lock()
	o.state = StateFailed
	o.errMessage = message
	o.result = nil
	o.mu.Unlock()

	o.logger.Warn("scan failed", logging.Field{Key: "message", Value: message})
	o.notifier.Error("Analysis failed: " + message)
}

// cacheResult appends the completed scan to the local side-list. Failures
// are logged and ignored; the server history stays authoritative.
func (o *Orchestrator) cacheResult(result *model.AnalysisResult) {
	if o.cache == nil || result.ID == "" {
		return
	}
	rec := model.ScanRecord{
		ID:           result.ID,
		ScanType:     result.ScanType,
		InputPreview: result.InputPreview,
		RiskScore:    *result.RiskScore,
		Severity:     result.Severity,
		CreatedAt:    result.Timestamp,
	}
	if err := o.cache.CacheScan(rec); err != nil {
		o.logger.Warn("caching scan locally failed", logging.Field{Key: "error", Value: err.Error()})
	}
}
