package app

import (
	"errors"
	"fmt"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/listing-optimizer/models"
)

func TestExitError(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		code  int
		stage models.Stage
	}{
		{"validation", &models.ValidationError{Field: "listing URL", Value: "x", Reason: "bad"}, ExitValidation, models.StageValidate},
		{"network", &models.NetworkError{Kind: models.NetworkDNS, URL: "u", Err: errors.New("no host")}, ExitFailure, models.StageFetch},
		{"pipeline", &models.PipelineError{Stage: models.StageRender, Err: errors.New("boom")}, ExitFailure, models.StageRender},
		{"wrapped synthesis", fmt.Errorf("outer: %w", &models.SynthesisError{Stage: models.StageResearch, Err: errors.New("x")}), ExitFailure, models.StageResearch},
		{"plain", errors.New("plain"), ExitFailure, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FailedStage(tt.err); got != tt.stage {
				t.Errorf("FailedStage() = %q, want %q", got, tt.stage)
			}
			var exit cli.ExitCoder
			if !errors.As(ExitError(tt.err), &exit) {
				t.Fatal("ExitError() is not a cli.ExitCoder")
			}
			if exit.ExitCode() != tt.code {
				t.Errorf("ExitCode() = %d, want %d", exit.ExitCode(), tt.code)
			}
		})
	}
}
