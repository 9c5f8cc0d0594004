package models

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestErrorWrapping(t *testing.T) {
	netErr := &NetworkError{Kind: NetworkTimeout, URL: "https://www.ebay.com/itm/1", Err: context.DeadlineExceeded}
	synth := &SynthesisError{Stage: StageResearch, Title: "Widget Pro", Err: netErr}
	err := fmt.Errorf("run: %w", &PipelineError{Stage: StageResearch, Err: synth})

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("errors.Is did not reach the root cause")
	}
	var got *NetworkError
	if !errors.As(err, &got) || got.Kind != NetworkTimeout {
		t.Errorf("errors.As(NetworkError) = %+v", got)
	}

	want := `run: pipeline stage research: research failed for "Widget Pro": network timeout fetching https://www.ebay.com/itm/1: context deadline exceeded`
	if err.Error() != want {
		t.Errorf("Error() = %q\nwant      %q", err.Error(), want)
	}
}

func TestNetworkError_StatusMessage(t *testing.T) {
	err := &NetworkError{Kind: NetworkRateLimit, URL: "u", StatusCode: 429, Err: errors.New("429 Too Many Requests")}
	want := "network rate_limit fetching u (status 429): 429 Too Many Requests"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "product code", Value: "ab", Reason: "too short"}
	if err.Error() != `invalid product code "ab": too short` {
		t.Errorf("Error() = %q", err.Error())
	}
}
