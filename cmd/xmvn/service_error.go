// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mkoncek/xmvn/internal/config"
	"github.com/mkoncek/xmvn/internal/issue"
	"github.com/mkoncek/xmvn/pkg/deployer"
	"github.com/mkoncek/xmvn/pkg/install"
	"github.com/mkoncek/xmvn/pkg/repository"
)

const (
	opLoadConfig = "load configuration"
	opLoadRules  = "load packaging rules"
	opLoadPlan   = "load reactor plan"
)

// ServiceError is an error that carries optional rendering information for
// the CLI layer. Always create via newServiceError.
type ServiceError struct {
	// Err is the underlying error (must not be nil).
	Err error
	// IssueID is the optional issue catalog ID for rendering help text.
	IssueID issue.Id
	// StyledMessage is the optional pre-rendered styled error text.
	StyledMessage string
}

// newServiceError creates a ServiceError with a nil-Err panic guard.
func newServiceError(err error, issueID issue.Id, styledMessage string) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{
		Err:           err,
		IssueID:       issueID,
		StyledMessage: styledMessage,
	}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// classifyError maps a failure to an issue catalog ID and returns a styled
// message for CLI rendering.
func classifyError(err error, verbose bool) (issueID issue.Id, styledMsg string) {
	switch {
	case errors.Is(err, deployer.ErrCorruptPlan):
		issueID = issue.PlanCorruptId
	case errors.Is(err, repository.ErrRepositoryCycle):
		issueID = issue.RepositoryCycleId
	case errors.Is(err, repository.ErrUnknownRepository):
		issueID = issue.RepositoryNotFoundId
	case errors.Is(err, install.ErrRepositoryResolution):
		issueID = issue.ArtifactNotFoundId
	case errors.Is(err, install.ErrDuplicateArtifact):
		issueID = issue.DuplicateArtifactId
	case errors.Is(err, config.ErrInvalidConfig):
		issueID = issue.ConfigLoadFailedId
	case errors.Is(err, os.ErrPermission):
		issueID = issue.PermissionDeniedId
	case errors.Is(err, os.ErrNotExist):
		issueID = issue.FileNotFoundId
	default:
		var ae *issue.ActionableError
		if errors.As(err, &ae) {
			switch ae.Operation {
			case opLoadConfig:
				issueID = issue.ConfigLoadFailedId
			case opLoadRules:
				issueID = issue.RulesParseErrorId
			}
		}
	}

	return issueID, fmt.Sprintf("\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose))
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// renderServiceError renders a ServiceError in the CLI layer.
// It prints any styled message first, then the optional issue help section.
func renderServiceError(stderr io.Writer, svcErr *ServiceError, style config.ColorScheme) {
	if svcErr == nil {
		return
	}

	if svcErr.StyledMessage != "" {
		fmt.Fprint(stderr, svcErr.StyledMessage)
	}

	if svcErr.IssueID == 0 {
		return
	}

	if catalogEntry := issue.Get(svcErr.IssueID); catalogEntry != nil {
		rendered, renderErr := catalogEntry.Render(string(style))
		if renderErr != nil {
			slog.Warn("failed to render issue catalog entry", "issueID", svcErr.IssueID, "error", renderErr)
		} else {
			fmt.Fprint(stderr, rendered)
		}
	}
}
