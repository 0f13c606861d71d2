package intake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/async"
	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/email"
	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/email/templates"
	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/logger"
	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/sanitizer"
	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/sheets"
	"github.com/Meciahacks/mindful-reach-clinic-01260/pkg/validator"
)

// Stage is a step of one dispatch.
type Stage string

const (
	StageReceived    Stage = "received"
	StageNormalizing Stage = "normalizing"
	StageRendering   Stage = "rendering"
	StageDispatching Stage = "dispatching"
	StageCompleted   Stage = "completed"
	StageRejected    Stage = "rejected"
	StageFailed      Stage = "failed"
)

// Result is a completed dispatch whose primary channel succeeded.
type Result struct {
	Record   Record
	Primary  ChannelID
	Outcomes []Outcome
}

// PrimaryOutcome returns the outcome of the primary channel.
func (r *Result) PrimaryOutcome() Outcome {
	for _, o := range r.Outcomes {
		if o.Channel == r.Primary {
			return o
		}
	}
	return Outcome{Channel: r.Primary}
}

// MessageID is the first provider message id among successful outcomes,
// primary first.
func (r *Result) MessageID() string {
	if id := r.PrimaryOutcome().Receipt.MessageID; id != "" {
		return id
	}
	for _, o := range r.Outcomes {
		if o.OK && o.Receipt.MessageID != "" {
			return o.Receipt.MessageID
		}
	}
	return ""
}

// RowsAppended sums appended spreadsheet rows.
func (r *Result) RowsAppended() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.OK {
			n += o.Receipt.RowsAppended
		}
	}
	return n
}

// Failed returns the non-OK outcomes.
func (r *Result) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if !o.OK {
			out = append(out, o)
		}
	}
	return out
}

// Dispatcher runs normalize, render and fan-out for each submission.
// It holds only read-only state and is safe for concurrent use.
type Dispatcher struct {
	channels  []Channel
	primary   ChannelID
	render    RenderOptions
	normalize []NormalizeOption
	log       *slog.Logger
	now       func() time.Time
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithPrimary sets the must-succeed channel. It must be one of the channels.
func WithPrimary(id ChannelID) DispatcherOption {
	return func(d *Dispatcher) { d.primary = id }
}

// WithRenderOptions sets branding and time zone for the notification.
func WithRenderOptions(o RenderOptions) DispatcherOption {
	return func(d *Dispatcher) { d.render = o }
}

// WithNormalizeOptions passes options to NormalizeAt.
func WithNormalizeOptions(opts ...NormalizeOption) DispatcherOption {
	return func(d *Dispatcher) { d.normalize = append(d.normalize, opts...) }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if l != nil {
			d.log = l
		}
	}
}

// WithClock sets the source of the fallback submission time.
func WithClock(now func() time.Time) DispatcherOption {
	return func(d *Dispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

// NewDispatcher creates a Dispatcher over channels, in dispatch order.
func NewDispatcher(channels []Channel, opts ...DispatcherOption) (*Dispatcher, error) {
	if len(channels) == 0 {
		return nil, ErrNoChannels
	}
	d := &Dispatcher{
		channels: channels,
		log:      slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}

	ids := make([]ChannelID, len(channels))
	for i, ch := range channels {
		ids[i] = ch.ID()
	}
	primary, err := Config{PrimaryChannel: string(d.primary)}.Primary(ids)
	if err != nil {
		return nil, err
	}
	d.primary = primary
	return d, nil
}

// Primary returns the must-succeed channel.
func (d *Dispatcher) Primary() ChannelID { return d.primary }

// Channels returns the enabled channel ids in dispatch order.
func (d *Dispatcher) Channels() []ChannelID {
	ids := make([]ChannelID, len(d.channels))
	for i, ch := range d.channels {
		ids[i] = ch.ID()
	}
	return ids
}

// Ready reports whether the primary channel is configured.
func (d *Dispatcher) Ready(context.Context) error {
	for _, ch := range d.channels {
		if ch.ID() == d.primary {
			return ch.Ready()
		}
	}
	return &ConfigError{Channel: d.primary, Err: errors.New("channel not enabled")}
}

// Dispatch normalizes raw, renders it once and sends it to every channel
// concurrently, waiting for all of them.
//
// Validation failures are returned as is and no channel runs. Channel sends
// use a context detached from ctx cancellation, so a client disconnect does
// not abort deliveries already under way. If the primary channel fails the
// error is an *AggregateFailure; secondary failures are only logged and
// reported in Result.Outcomes.
func (d *Dispatcher) Dispatch(ctx context.Context, raw map[string]any) (*Result, error) {
	d.stage(ctx, StageReceived)

	d.stage(ctx, StageNormalizing)
	rec, err := NormalizeAt(raw, d.now(), d.normalize...)
	if err != nil {
		d.log.LogAttrs(ctx, slog.LevelWarn, "submission rejected",
			logger.Stage(string(StageRejected)),
			logger.Error(err),
			slog.Any("fields", validator.ExtractValidationErrors(err).Fields()),
			logger.Component("intake"),
		)
		return nil, err
	}

	d.stage(ctx, StageRendering)
	html, err := Render(ctx, rec, d.render)
	if err != nil {
		return nil, fmt.Errorf("render notification: %w", err)
	}

	d.stage(ctx, StageDispatching)
	outcomes := d.fanOut(ctx, rec, html)

	res := &Result{Record: rec, Primary: d.primary, Outcomes: outcomes}
	d.logOutcomes(ctx, rec, outcomes)

	if primary := res.PrimaryOutcome(); !primary.OK {
		failed := res.Failed()
		errs := make([]error, len(failed))
		for i, o := range failed {
			errs[i] = o.Err
		}
		d.log.LogAttrs(ctx, slog.LevelError, "submission failed",
			logger.Stage(string(StageFailed)),
			logger.Channel(string(d.primary)),
			logger.Errors(errs...),
			logger.Component("intake"),
		)
		return nil, &AggregateFailure{Primary: d.primary, Err: primary.Err, Outcomes: outcomes}
	}

	d.log.LogAttrs(ctx, slog.LevelInfo, "submission dispatched",
		logger.Stage(string(StageCompleted)),
		logger.Channel(string(d.primary)),
		slog.Int("failed_channels", len(res.Failed())),
		logger.Component("intake"),
	)
	return res, nil
}

func (d *Dispatcher) fanOut(ctx context.Context, rec Record, html string) []Outcome {
	sendCtx := context.WithoutCancel(ctx)
	started := time.Now()

	futures := make([]*async.Future[Outcome], len(d.channels))
	for i, ch := range d.channels {
		futures[i] = async.Async(sendCtx, ch, func(ctx context.Context, ch Channel) (Outcome, error) {
			start := time.Now()
			receipt, err := ch.Send(ctx, rec, html)
			out := Outcome{Channel: ch.ID(), Receipt: receipt, Duration: time.Since(start)}
			if err != nil {
				out.Err = asChannelError(ch.ID(), err)
				return out, nil
			}
			out.OK = true
			return out, nil
		})
	}

	settled := async.Settle(futures...)
	outcomes := make([]Outcome, len(settled))
	for i, s := range settled {
		if s.Err != nil {
			outcomes[i] = Outcome{
				Channel:  d.channels[i].ID(),
				Err:      &TransportError{Channel: d.channels[i].ID(), Err: s.Err},
				Duration: time.Since(started),
			}
			continue
		}
		outcomes[i] = s.Value
	}
	return outcomes
}

func (d *Dispatcher) logOutcomes(ctx context.Context, rec Record, outcomes []Outcome) {
	for _, o := range outcomes {
		attrs := []slog.Attr{
			logger.Channel(string(o.Channel)),
			logger.Duration(o.Duration),
			slog.Bool("primary", o.Channel == d.primary),
			slog.String("submitter", sanitizer.MaskEmail(rec.Email)),
			logger.Component("intake"),
		}
		if o.OK {
			attrs = append(attrs, logger.MessageID(o.Receipt.MessageID))
			d.log.LogAttrs(ctx, slog.LevelInfo, "channel delivered", attrs...)
			continue
		}

		attrs = append(attrs, logger.Error(o.Err))
		if detail := providerDetail(o.Err); detail != nil {
			attrs = append(attrs, slog.Any("provider_response", detail))
		}
		d.log.LogAttrs(ctx, slog.LevelError, "channel failed", attrs...)
	}
}

// providerDetail digs the provider response out of err for logging.
func providerDetail(err error) slog.LogValuer {
	var mailErr *email.APIError
	if errors.As(err, &mailErr) {
		return mailErr
	}
	var sheetErr *sheets.APIError
	if errors.As(err, &sheetErr) {
		return sheetErr
	}
	return nil
}

func (d *Dispatcher) stage(ctx context.Context, s Stage) {
	d.log.LogAttrs(ctx, slog.LevelDebug, "dispatch stage", logger.Stage(string(s)), logger.Component("intake"))
}

// TestEmailSubject is the subject of the configuration-test email.
func TestEmailSubject(brand string) string {
	if brand == "" {
		brand = "Unveiled Echo"
	}
	return brand + " - Email Configuration Test"
}

// SendTestEmail sends the configuration-test email to to through the primary
// channel when it is an email channel, otherwise the first enabled one.
func (d *Dispatcher) SendTestEmail(ctx context.Context, to string) (Receipt, error) {
	if !isEmail(to) {
		return Receipt{}, ErrInvalidEmail
	}

	mailer := d.mailer()
	if mailer == nil {
		return Receipt{}, ErrNoEmailChannel
	}

	html, err := templates.Render(ctx, TestEmail(d.render.Brand))
	if err != nil {
		return Receipt{}, fmt.Errorf("render test email: %w", err)
	}

	receipt, err := mailer.SendTest(context.WithoutCancel(ctx), to, TestEmailSubject(d.render.Brand), html)
	if err != nil {
		d.log.LogAttrs(ctx, slog.LevelError, "test email failed",
			logger.Channel(string(mailer.ID())),
			logger.Error(err),
			logger.Component("intake"),
		)
		return Receipt{}, asChannelError(mailer.ID(), err)
	}

	d.log.LogAttrs(ctx, slog.LevelInfo, "test email sent",
		logger.Channel(string(mailer.ID())),
		logger.MessageID(receipt.MessageID),
		logger.Component("intake"),
	)
	return receipt, nil
}

func (d *Dispatcher) mailer() Mailer {
	var first Mailer
	for _, ch := range d.channels {
		m, ok := ch.(Mailer)
		if !ok {
			continue
		}
		if ch.ID() == d.primary {
			return m
		}
		if first == nil {
			first = m
		}
	}
	return first
}
