package rates

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AlexZav1327/currency-converter/internal/apperrors"
	xrserver "github.com/AlexZav1327/currency-converter/internal/xr-server"
	xrservice "github.com/AlexZav1327/currency-converter/internal/xr-service"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RatesTestSuite struct {
	suite.Suite
	stub *httptest.Server
	log  *logrus.Logger
}

func (s *RatesTestSuite) SetupSuite() {
	s.log = logrus.StandardLogger()
	s.stub = httptest.NewServer(xrserver.NewRouter(xrservice.New(s.log), s.log))
}

func (s *RatesTestSuite) TearDownSuite() {
	s.stub.Close()
}

func TestRatesTestSuite(t *testing.T) {
	suite.Run(t, new(RatesTestSuite))
}

func (s *RatesTestSuite) provider(kind, baseURL, key string) Provider {
	s.T().Helper()

	p, err := New(Settings{Kind: kind, BaseURL: baseURL, APIKey: key, Timeout: time.Second}, s.log)
	s.Require().NoError(err)
	s.Require().Equal(kind, p.Name())

	return p
}

func (s *RatesTestSuite) TestAdaptersAgainstStub() {
	cases := []struct {
		name          string
		provider      Provider
		wantRate      bool
		wantConverted bool
	}{
		{"pair", s.provider(KindPair, s.stub.URL+"/v6", "key"), true, true},
		{"amount", s.provider(KindAmount, s.stub.URL+"/fastforex", ""), true, true},
		{"lookup", s.provider(KindLookup, s.stub.URL+"/host", ""), true, true},
		{"latest", s.provider(KindLatest, s.stub.URL+"/v6/key", ""), true, false},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			quote, err := tc.provider.FetchRate(context.Background(), "USD", "PHP", 100)
			s.Require().NoError(err)

			if tc.wantRate {
				s.Require().NotNil(quote.Rate)
				s.Require().InDelta(56.5, *quote.Rate, 1e-9)
			}

			if tc.wantConverted {
				s.Require().NotNil(quote.Converted)
				s.Require().InDelta(5650.0, *quote.Converted, 1e-9)
			} else {
				s.Require().Nil(quote.Converted)
			}
		})
	}
}

func (s *RatesTestSuite) TestProviderErrors() {
	cases := []struct {
		name     string
		provider Provider
		message  string
	}{
		{"pair invalid key", s.provider(KindPair, s.stub.URL+"/v6", xrserver.InvalidKey), "invalid-key"},
		{"latest invalid key", s.provider(KindLatest, s.stub.URL+"/v6/"+xrserver.InvalidKey, ""), "invalid-key"},
		{"amount invalid key", s.provider(KindAmount, s.stub.URL+"/fastforex", xrserver.InvalidKey), "Invalid API key"},
		{
			"lookup invalid key", s.provider(KindLookup, s.stub.URL+"/host", xrserver.InvalidKey),
			"You have supplied an invalid API Access Key.",
		},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := tc.provider.FetchRate(context.Background(), "USD", "PHP", 1)

			var providerErr *apperrors.ProviderError
			s.Require().True(errors.As(err, &providerErr), "%v", err)
			s.Require().Equal(tc.message, providerErr.Message)
			s.Require().Equal(apperrors.KindProvider, apperrors.Kind(err))
		})
	}
}

func (s *RatesTestSuite) TestUnknownKind() {
	_, err := New(Settings{Kind: "carrier-pigeon"}, s.log)
	s.Require().True(errors.Is(err, ErrUnknownKind))
}

func fakeProvider(t *testing.T, kind string, status int, body string) Provider {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	p, err := New(Settings{Kind: kind, BaseURL: srv.URL, APIKey: "k", Timeout: time.Second}, logrus.StandardLogger())
	require.NoError(t, err)

	return p
}

func TestServerErrorIsTransport(t *testing.T) {
	p := fakeProvider(t, KindPair, http.StatusInternalServerError, `{"result":"error"}`)

	_, err := p.FetchRate(context.Background(), "USD", "PHP", 1)

	var transportErr *apperrors.TransportError
	require.True(t, errors.As(err, &transportErr))
	require.Equal(t, http.StatusInternalServerError, transportErr.Status)
	require.True(t, errors.Is(err, apperrors.ErrTransport))
}

func TestErrorPayloadWithSuccessStatus(t *testing.T) {
	p := fakeProvider(t, KindPair, http.StatusOK, `{"result":"error","error-type":"invalid-key"}`)

	_, err := p.FetchRate(context.Background(), "USD", "PHP", 1)

	var providerErr *apperrors.ProviderError
	require.True(t, errors.As(err, &providerErr))
	require.Equal(t, "invalid-key", providerErr.Message)
}

func TestMalformedBodies(t *testing.T) {
	cases := []struct {
		kind string
		body string
	}{
		{KindPair, `not json`},
		{KindPair, `{"result":"maybe"}`},
		{KindAmount, `{"base":"USD"}`},
		{KindAmount, `{"result":"5650"}`},
		{KindLookup, `{"result":"error"}`},
		{KindLatest, `{"base":"USD"}`},
		{KindLatest, `{"rates":{"EUR":0.9}}`},
	}

	for _, tc := range cases {
		p := fakeProvider(t, tc.kind, http.StatusOK, tc.body)

		_, err := p.FetchRate(context.Background(), "USD", "PHP", 1)
		require.True(t, errors.Is(err, apperrors.ErrMalformedResponse), "%s %s: %v", tc.kind, tc.body, err)
	}
}

func TestPartialPayloadsPassThrough(t *testing.T) {
	p := fakeProvider(t, KindAmount, http.StatusOK, `{"result":{"PHP":5650}}`)

	quote, err := p.FetchRate(context.Background(), "USD", "PHP", 100)
	require.NoError(t, err)
	require.Nil(t, quote.Rate)
	require.NotNil(t, quote.Converted)
	require.Equal(t, 5650.0, *quote.Converted)

	p = fakeProvider(t, KindLookup, http.StatusOK, `{"info":{"quote":0.5}}`)

	quote, err = p.FetchRate(context.Background(), "USD", "PHP", 100)
	require.NoError(t, err)
	require.Nil(t, quote.Converted)
	require.Equal(t, 0.5, *quote.Rate)
}

func TestNetworkFailureIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	p, err := New(Settings{Kind: KindLookup, BaseURL: url, Timeout: time.Second}, logrus.StandardLogger())
	require.NoError(t, err)

	_, err = p.FetchRate(context.Background(), "USD", "PHP", 1)

	var transportErr *apperrors.TransportError
	require.True(t, errors.As(err, &transportErr))
	require.Zero(t, transportErr.Status)
	require.Error(t, transportErr.Cause)
}

func TestClientTimeoutIsTransportTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(block)

	p, err := New(Settings{Kind: KindPair, BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, logrus.StandardLogger())
	require.NoError(t, err)

	_, err = p.FetchRate(context.Background(), "USD", "PHP", 1)

	var transportErr *apperrors.TransportError
	require.True(t, errors.As(err, &transportErr))
	require.Zero(t, transportErr.Status)
	require.True(t, transportErr.Timeout())
}

func TestSuccessfulFetchIsObservedAsSuccess(t *testing.T) {
	log := logrus.StandardLogger()
	stub := httptest.NewServer(xrserver.NewRouter(xrservice.New(log), log))
	defer stub.Close()

	p, err := New(Settings{Kind: KindPair, BaseURL: stub.URL + "/v6", APIKey: "key", Timeout: time.Second}, log)
	require.NoError(t, err)

	before := sampleCount(t, KindPair, outcomeSuccess)

	_, err = p.FetchRate(context.Background(), "USD", "PHP", 1)
	require.NoError(t, err)

	require.Equal(t, before+1, sampleCount(t, KindPair, outcomeSuccess))
}

func sampleCount(t *testing.T, provider, outcome string) uint64 {
	t.Helper()

	metric, ok := providerMetrics.duration.WithLabelValues(provider, outcome).(prometheus.Metric)
	require.True(t, ok)

	var m dto.Metric
	require.NoError(t, metric.Write(&m))

	return m.GetHistogram().GetSampleCount()
}

func TestDeadlineIsTransportTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(block)

	p, err := New(Settings{Kind: KindPair, BaseURL: srv.URL, Timeout: 5 * time.Second}, logrus.StandardLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = p.FetchRate(ctx, "USD", "PHP", 1)

	var transportErr *apperrors.TransportError
	require.True(t, errors.As(err, &transportErr))
	require.True(t, transportErr.Timeout())
}
