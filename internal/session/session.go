package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/AlexZav1327/currency-converter/internal/apperrors"
	"github.com/AlexZav1327/currency-converter/internal/converter"
	"github.com/AlexZav1327/currency-converter/internal/currency"
	"github.com/AlexZav1327/currency-converter/internal/format"
	"github.com/AlexZav1327/currency-converter/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

const (
	DefaultDebounce = 300 * time.Millisecond
	defaultAmount   = "1"

	msgInvalidInput = "Invalid amount or currency selection."
	msgTransport    = "Network error while contacting the rate provider."
	msgProvider     = "API error: "
	msgFailed       = "Conversion failed: "
)

type Converter interface {
	Convert(ctx context.Context, request models.ConversionRequest) (models.ConversionResult, error)
}

// Renderer receives every state change. Render is called with the session lock
// held, so it must not call back into the Session.
type Renderer interface {
	Render(view View)
}

type View struct {
	SessionID  uuid.UUID
	AmountText string
	From       string
	To         string
	Busy       bool
	Result     *models.ConversionResult
	RateLine   string
	FromAmount string
	ToAmount   string
	Error      string
	UpdatedAt  time.Time
}

type Option func(s *Session)

func WithDebounce(delay time.Duration) Option {
	return func(s *Session) {
		s.delay = delay
	}
}

func WithLanguage(tag language.Tag) Option {
	return func(s *Session) {
		s.tag = tag
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

func WithLogger(log *logrus.Logger) Option {
	return func(s *Session) {
		s.log = log.WithField("module", "session")
	}
}

// Session owns the state a converter front end needs: the amount field, the two
// selections, the displayed result and the single pending or in-flight conversion.
// Only the conversion dispatched last may update the view.
type Session struct {
	mu sync.Mutex
	wg sync.WaitGroup

	workflow Converter
	renderer Renderer
	log      *logrus.Entry
	delay    time.Duration
	tag      language.Tag
	now      func() time.Time

	view   View
	seq    uint64
	timer  *time.Timer
	cancel context.CancelFunc
	closed bool
}

func New(workflow Converter, renderer Renderer, opts ...Option) *Session {
	s := &Session{
		workflow: workflow,
		renderer: renderer,
		log:      logrus.StandardLogger().WithField("module", "session"),
		delay:    DefaultDebounce,
		tag:      language.English,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.view = View{
		SessionID:  uuid.New(),
		AmountText: defaultAmount,
		From:       currency.DefaultFrom,
		To:         currency.DefaultTo,
	}
	s.log = s.log.WithField("session", s.view.SessionID.String())

	return s
}

// View returns a snapshot of the current state.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot()
}

// Start runs the initial conversion of the default selection.
func (s *Session) Start() {
	s.Convert()
}

// SetAmount records an edit of the amount field and converts once edits pause
// for the debounce delay.
func (s *Session) SetAmount(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.view.AmountText = text
	token := s.supersede()
	s.hideResult()

	s.timer = time.AfterFunc(s.delay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.closed || token != s.seq {
			return
		}

		s.timer = nil
		s.dispatch(token)
	})

	s.render()
}

func (s *Session) SetFrom(code string) {
	s.mutateAndConvert(func() { s.view.From = code })
}

func (s *Session) SetTo(code string) {
	s.mutateAndConvert(func() { s.view.To = code })
}

// Swap exchanges the selections, leaves the amount alone and converts.
func (s *Session) Swap() {
	s.mutateAndConvert(func() {
		swapped := converter.Swap(models.ConversionRequest{From: s.view.From, To: s.view.To})
		s.view.From, s.view.To = swapped.From, swapped.To
	})
}

// Convert dispatches a conversion of the current state right away.
func (s *Session) Convert() {
	s.mutateAndConvert(func() {})
}

// Clear empties the amount, hides result and error and drops pending work.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.supersede()
	s.view.AmountText = ""
	s.hideResult()
	s.view.Error = ""
	s.render()
}

// Close cancels pending and in-flight work and waits for it to finish.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.supersede()
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Session) mutateAndConvert(mutate func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	mutate()

	token := s.supersede()
	s.dispatch(token)
}

// supersede invalidates whatever is pending or in flight and returns the new token.
// Callers hold s.mu.
func (s *Session) supersede() uint64 {
	s.seq++

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	s.view.Busy = false

	return s.seq
}

// dispatch starts the conversion identified by token. Callers hold s.mu.
func (s *Session) dispatch(token uint64) {
	s.view.Error = ""
	s.hideResult()

	request, err := converter.ParseRequest(s.view.AmountText, s.view.From, s.view.To)
	if err != nil {
		s.showError(err)
		s.render()

		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.view.Busy = true
	s.render()

	s.wg.Add(1)

	go func() {
		defer s.wg.Done()
		defer cancel()

		result, err := s.workflow.Convert(ctx, request)

		s.mu.Lock()
		defer s.mu.Unlock()

		if token != s.seq {
			s.log.Debugf("discarding superseded conversion #%d", token)

			return
		}

		s.cancel = nil
		s.view.Busy = false

		if err != nil {
			s.showError(err)
		} else {
			s.showResult(request, result)
		}

		s.render()
	}()
}

func (s *Session) showResult(request models.ConversionRequest, result models.ConversionResult) {
	s.view.Result = &result
	s.view.RateLine = format.RateLine(request.From, request.To, result.Rate)
	s.view.FromAmount = format.Amount(request.Amount, request.From, s.tag)
	s.view.ToAmount = format.Amount(result.ConvertedAmount, request.To, s.tag)
}

func (s *Session) showError(err error) {
	s.hideResult()
	s.view.Error = Message(err)
	s.log.WithError(err).Debug("conversion failed")
}

func (s *Session) hideResult() {
	s.view.Result = nil
	s.view.RateLine = ""
	s.view.FromAmount = ""
	s.view.ToAmount = ""
}

func (s *Session) snapshot() View {
	view := s.view
	if view.Result != nil {
		result := *view.Result
		view.Result = &result
	}

	return view
}

func (s *Session) render() {
	s.view.UpdatedAt = s.now()

	if s.renderer != nil {
		s.renderer.Render(s.snapshot())
	}
}

// Message turns a conversion failure into the text shown to the user.
func Message(err error) string {
	var providerErr *apperrors.ProviderError

	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		return msgInvalidInput
	case errors.As(err, &providerErr):
		return msgProvider + providerErr.Message
	case errors.Is(err, apperrors.ErrTransport):
		return msgTransport
	default:
		return msgFailed + err.Error()
	}
}

