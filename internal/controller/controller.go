// Package controller holds the form state and drives validate → request →
// display for a single session.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/BerylCAtieno/smm-content-analyzer/internal/analyzer"
	"github.com/BerylCAtieno/smm-content-analyzer/internal/models"
	"github.com/BerylCAtieno/smm-content-analyzer/internal/validator"
	"go.uber.org/zap"
)

const (
	genericFailure = "Waduh, sepertinya ada sedikit kendala saat analisa. Tenang, coba lagi beberapa saat ya, semangat!"
	failureFormat  = "Aduh! %s Mungkin coba refresh halaman atau cek koneksi internetmu. Jangan patah semangat!"
)

var errNoReport = errors.New("layanan AI tidak mengembalikan laporan")

// ErrBusy is returned by SubmitIfIdle while a request is in flight.
var ErrBusy = errors.New("analysis already in progress")

// FailureMessage turns a request failure into the message shown to the user.
func FailureMessage(err error) string {
	detail := genericFailure
	if err != nil && err.Error() != "" {
		detail = err.Error()
	}
	return fmt.Sprintf(failureFormat, detail)
}

// Controller is safe for concurrent use. Submit never rejects a submit while
// loading; presentations either disable submitting while View.IsLoading is
// true or use SubmitIfIdle.
type Controller struct {
	requester analyzer.Requester
	logger    *zap.Logger

	mu       sync.Mutex
	audience models.TargetAudience
	content  models.InstagramContent
	state    State
	seq      uint64
}

func New(requester analyzer.Requester, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		requester: requester,
		logger:    logger,
		audience:  models.DefaultAudience(),
		content:   models.DefaultContent(),
		state:     Idle{},
	}
}

// SetAudienceField handles an edit of one audience field. The current
// report or error is kept until the next submit.
func (c *Controller) SetAudienceField(field models.AudienceField, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.audience.Set(field, value)
}

func (c *Controller) SetContentField(field models.ContentField, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.content.Set(field, value)
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return newView(c.state, c.seq, c.audience, c.content)
}

// Submit validates the current fields synchronously. On failure the
// controller moves to Failed and the *validator.ValidationError is returned.
// Otherwise it moves to Submitting and the request runs in the background;
// the returned Submission reports its outcome.
//
// Every submit, valid or not, supersedes any request still in flight.
// The request is not cancelled when ctx is; only values are inherited.
func (c *Controller) Submit(ctx context.Context) (*Submission, error) {
	return c.submit(ctx, false)
}

// SubmitIfIdle behaves like Submit but returns ErrBusy, leaving the state
// untouched, while a request is in flight.
func (c *Controller) SubmitIfIdle(ctx context.Context) (*Submission, error) {
	return c.submit(ctx, true)
}

func (c *Controller) submit(ctx context.Context, onlyIfIdle bool) (*Submission, error) {
	c.mu.Lock()

	if _, loading := c.state.(Submitting); loading && onlyIfIdle {
		c.mu.Unlock()
		return nil, ErrBusy
	}

	audience, content := c.audience, c.content
	if err := validator.Validate(audience, content); err != nil {
		c.seq++
		c.state = Failed{Message: err.Error(), Err: err}
		c.mu.Unlock()
		c.logger.Info("submission rejected by validation", zap.Error(err))
		return nil, err
	}

	c.seq++
	seq := c.seq
	c.state = Submitting{Seq: seq}
	c.mu.Unlock()

	c.logger.Info("submission started",
		zap.Uint64("seq", seq),
		zap.String("location", audience.Location),
		zap.Bool("has_link", content.Link != ""),
	)

	sub := &Submission{Seq: seq, done: make(chan struct{})}
	req := models.AnalysisRequest{Audience: audience, Content: content}
	go c.run(context.WithoutCancel(ctx), sub, req)
	return sub, nil
}

func (c *Controller) run(ctx context.Context, sub *Submission, req models.AnalysisRequest) {
	report, err := c.requester.SubmitForAnalysis(ctx, req)
	if err == nil && report == nil {
		err = errNoReport
	}
	if err != nil {
		report = nil
	}

	c.complete(sub.Seq, report, err)

	sub.report, sub.err = report, err
	close(sub.done)
}

func (c *Controller) complete(seq uint64, report *models.AnalysisReport, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		c.logger.Warn("discarding stale analysis result",
			zap.Uint64("seq", seq),
			zap.Uint64("latest_seq", c.seq),
			zap.Bool("failed", err != nil),
		)
		return
	}

	if err != nil {
		c.state = Failed{Message: FailureMessage(err), Err: err}
		c.logger.Error("analysis failed", zap.Uint64("seq", seq), zap.Error(err))
		return
	}

	c.state = Displaying{Report: report}
	c.logger.Info("analysis completed",
		zap.Uint64("seq", seq),
		zap.String("likelihood", report.PurchaseInfluence.Likelihood),
		zap.Int("suggestions", len(report.Suggestions)),
	)
}

// Submission tracks one in-flight request.
type Submission struct {
	Seq uint64

	done   chan struct{}
	report *models.AnalysisReport
	err    error
}

// Done is closed once the request has finished.
func (s *Submission) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the request finishes or ctx is done. Giving up on ctx
// does not stop the request.
func (s *Submission) Wait(ctx context.Context) (*models.AnalysisReport, error) {
	select {
	case <-s.done:
		return s.report, s.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Report and Err block until the request has finished.
func (s *Submission) Report() *models.AnalysisReport {
	<-s.done
	return s.report
}

func (s *Submission) Err() error {
	<-s.done
	return s.err
}
