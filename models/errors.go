package models

import "fmt"

// Stage names a pipeline stage in error messages.
type Stage string

const (
	StageValidate   Stage = "validate"
	StageFetch      Stage = "fetch"
	StageExtract    Stage = "extract"
	StageResearch   Stage = "research"
	StageSynthesize Stage = "synthesize"
	StageRender     Stage = "render"
)

// ValidationError reports a malformed or ineligible input. It is raised
// before any stage runs.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Network error kinds.
const (
	NetworkTimeout    = "timeout"
	NetworkDNS        = "dns"
	NetworkRateLimit  = "rate_limit"
	NetworkHTTPStatus = "http_status"
	NetworkTransport  = "transport"
)

// NetworkError is surfaced by the fetch layer. The pipeline does not retry it.
type NetworkError struct {
	Kind       string
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("network %s fetching %s (status %d): %v", e.Kind, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("network %s fetching %s: %v", e.Kind, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// SynthesisError wraps any failure inside research or content synthesis
// with the title of the product being processed.
type SynthesisError struct {
	Stage Stage
	Title string
	Err   error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("%s failed for %q: %v", e.Stage, e.Title, e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }

// PipelineError is the uniform wrapper for a failed pipeline stage.
type PipelineError struct {
	Stage Stage
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("pipeline stage %s: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error { return e.Err }
