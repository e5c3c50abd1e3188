// Package analyzer turns an audience and a piece of Instagram content into an
// AI-generated effectiveness report.
package analyzer

import (
	"context"
	"fmt"

	"github.com/BerylCAtieno/smm-content-analyzer/internal/models"
)

// Requester is the single capability the rest of the app needs from an AI
// provider. Implementations make exactly one attempt per call and never
// return a partial report.
type Requester interface {
	SubmitForAnalysis(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisReport, error)
}

// RequesterFunc adapts a plain function to Requester.
type RequesterFunc func(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisReport, error)

func (f RequesterFunc) SubmitForAnalysis(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisReport, error) {
	return f(ctx, req)
}

type ErrorKind string

const (
	KindTransport ErrorKind = "transport"
	KindProvider  ErrorKind = "provider"
	KindParse     ErrorKind = "parse"
)

type RequestError struct {
	Kind ErrorKind
	Err  error
}

func (e *RequestError) Error() string {
	switch e.Kind {
	case KindTransport:
		return fmt.Sprintf("gagal menghubungi layanan AI: %v", e.Err)
	case KindProvider:
		return fmt.Sprintf("layanan AI menolak permintaan: %v", e.Err)
	case KindParse:
		return fmt.Sprintf("respons AI tidak sesuai format: %v", e.Err)
	}
	return e.Err.Error()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func transportError(err error) error {
	return &RequestError{Kind: KindTransport, Err: err}
}

func providerError(format string, args ...any) error {
	return &RequestError{Kind: KindProvider, Err: fmt.Errorf(format, args...)}
}

func parseError(err error) error {
	return &RequestError{Kind: KindParse, Err: err}
}
