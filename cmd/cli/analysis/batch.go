package analysis

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/temirov/fsaudit/internal/statements"
	"github.com/temirov/fsaudit/internal/ui"
)

const (
	documentsUnavailableTemplateConstant = "none of the %d statement documents could be processed"
	documentFailureLineTemplateConstant  = "%s\n"
)

type documentOutcome[Result any] struct {
	documentPath string
	result       Result
	failure      error
}

// processDocuments loads and processes every document with at most concurrency
// workers. Outcomes keep the order of documentPaths. Per-document failures are
// recorded in the outcome; only cancellation aborts the batch.
func processDocuments[Result any](executionContext context.Context, loader *statements.Loader, documentPaths []string, concurrency int, process func(model statements.Model) (Result, error)) ([]documentOutcome[Result], error) {
	if executionContext == nil {
		executionContext = context.Background()
	}

	outcomes := make([]documentOutcome[Result], len(documentPaths))
	group, groupContext := errgroup.WithContext(executionContext)
	group.SetLimit(sanitizeConcurrency(concurrency))

	for documentIndex, documentPath := range documentPaths {
		documentIndex, documentPath := documentIndex, documentPath
		group.Go(func() error {
			if contextError := groupContext.Err(); contextError != nil {
				return contextError
			}

			outcome := documentOutcome[Result]{documentPath: documentPath}
			model, loadError := loader.LoadFile(documentPath)
			if loadError != nil {
				outcome.failure = loadError
				outcomes[documentIndex] = outcome
				return nil
			}

			outcome.result, outcome.failure = process(model)
			outcomes[documentIndex] = outcome
			return nil
		})
	}

	if waitError := group.Wait(); waitError != nil {
		return nil, waitError
	}
	return outcomes, nil
}

// reportFailures notifies the observer and the error writer about failed
// documents and returns how many failed.
func reportFailures[Result any](outcomes []documentOutcome[Result], observer ui.DocumentEventObserver, errorWriter io.Writer) (int, error) {
	formatter := ui.DocumentEventFormatter{}
	failedCount := 0
	for _, outcome := range outcomes {
		if outcome.failure == nil {
			continue
		}
		failedCount++
		observer.DocumentFailed(outcome.documentPath, outcome.failure)
		fmt.Fprintf(errorWriter, documentFailureLineTemplateConstant, formatter.BuildFailureMessage(outcome.documentPath, outcome.failure))
	}

	if len(outcomes) > 0 && failedCount == len(outcomes) {
		return failedCount, fmt.Errorf(documentsUnavailableTemplateConstant, len(outcomes))
	}
	return failedCount, nil
}
