package yahoo_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/guttosm/cycleradar/internal/domain/models"
	"github.com/guttosm/cycleradar/internal/provider/yahoo"
)

const chartOK = `{"chart":{"result":[{"meta":{"currency":"USD","shortName":"SPDR Gold","regularMarketPrice":105.5,"previousClose":100,"fiftyTwoWeekHigh":120,"fiftyTwoWeekLow":80},
"indicators":{"quote":[{"close":[98.1,null,99.2,100]}]}}],"error":null}}`

func newServer(t *testing.T, status int, body string, check func(r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchSeries_Success(t *testing.T) {
	t.Parallel()

	// Arrange: a server that verifies path, query and headers
	srv := newServer(t, http.StatusOK, chartOK, func(r *http.Request) {
		require.Equal(t, "/v8/finance/chart/GLD", r.URL.Path)
		require.Equal(t, "1d", r.URL.Query().Get("interval"))
		require.Equal(t, "3mo", r.URL.Query().Get("range"))
		require.Equal(t, "test-agent", r.Header.Get("User-Agent"))
	})
	c := yahoo.NewClient(yahoo.WithBaseURL(srv.URL+"/"), yahoo.WithRange("3mo"), yahoo.WithUserAgent("test-agent"))

	// Act
	raw, err := c.FetchSeries(t.Context(), "GLD")

	// Assert
	require.NoError(t, err)
	require.Len(t, raw.Closes, 4)
	require.False(t, raw.Closes[1].Valid)
	require.Equal(t, 100.0, raw.Closes[3].Float64)
	require.NotNil(t, raw.Meta)
	require.Equal(t, 105.5, raw.Meta.RegularMarketPrice.Float64)
	require.Equal(t, 100.0, raw.Meta.PreviousClose.Float64)
	require.Equal(t, "USD", raw.Meta.Currency.String)
	require.Equal(t, "SPDR Gold", raw.Meta.DisplayName.String)
}

func TestFetchSeries_MissingMetaFieldsStayNull(t *testing.T) {
	t.Parallel()

	body := `{"chart":{"result":[{"meta":{"longName":"Long Name Only"},"indicators":{"quote":[{"close":[]}]}}]}}`
	srv := newServer(t, http.StatusOK, body, nil)
	c := yahoo.NewClient(yahoo.WithBaseURL(srv.URL))

	raw, err := c.FetchSeries(t.Context(), "XME")
	require.NoError(t, err)
	require.NotNil(t, raw.Closes)
	require.Empty(t, raw.Closes)
	require.False(t, raw.Meta.RegularMarketPrice.Valid)
	require.False(t, raw.Meta.FiftyTwoWeekHigh.Valid)
	require.Equal(t, "Long Name Only", raw.Meta.DisplayName.String)
}

func TestFetchSeries_MalformedFieldsDegradeToNull(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		body   string
		assert func(t *testing.T, raw *models.RawSeries)
	}{
		{
			name: "non-numeric previous close",
			body: `{"chart":{"result":[{"meta":{"previousClose":"n/a","regularMarketPrice":101},"indicators":{"quote":[{"close":[99,100]}]}}]}}`,
			assert: func(t *testing.T, raw *models.RawSeries) {
				require.False(t, raw.Meta.PreviousClose.Valid)
				require.Equal(t, 101.0, raw.Meta.RegularMarketPrice.Float64)
				require.Len(t, raw.Closes, 2)
			},
		},
		{
			name: "string inside close array",
			body: `{"chart":{"result":[{"meta":{},"indicators":{"quote":[{"close":[1,"x",3,null]}]}}]}}`,
			assert: func(t *testing.T, raw *models.RawSeries) {
				require.Len(t, raw.Closes, 4)
				require.Equal(t, 1.0, raw.Closes[0].Float64)
				require.False(t, raw.Closes[1].Valid)
				require.Equal(t, 3.0, raw.Closes[2].Float64)
				require.False(t, raw.Closes[3].Valid)
			},
		},
		{
			name: "numeric short name falls back to long name",
			body: `{"chart":{"result":[{"meta":{"shortName":42,"longName":"Gold Trust","currency":{}},"indicators":{"quote":[{"close":[]}]}}]}}`,
			assert: func(t *testing.T, raw *models.RawSeries) {
				require.Equal(t, "Gold Trust", raw.Meta.DisplayName.String)
				require.False(t, raw.Meta.Currency.Valid)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			srv := newServer(t, http.StatusOK, tc.body, nil)
			c := yahoo.NewClient(yahoo.WithBaseURL(srv.URL))

			raw, err := c.FetchSeries(t.Context(), "GLD")
			require.NoError(t, err)
			tc.assert(t, raw)
		})
	}
}

func TestFetchSeries_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom", want: models.ErrTransport},
		{name: "rate limited", status: http.StatusTooManyRequests, body: "Edge: Too Many Requests", want: models.ErrTransport},
		{name: "html body", status: http.StatusOK, body: "<html></html>", want: models.ErrInputShape},
		{name: "provider error", status: http.StatusOK, body: `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`, want: models.ErrInputShape},
		{name: "empty result", status: http.StatusOK, body: `{"chart":{"result":[]}}`, want: models.ErrInputShape},
		{name: "no quote block", status: http.StatusOK, body: `{"chart":{"result":[{"meta":{},"indicators":{"quote":[]}}]}}`, want: models.ErrInputShape},
		{name: "close array missing", status: http.StatusOK, body: `{"chart":{"result":[{"meta":{},"indicators":{"quote":[{}]}}]}}`, want: models.ErrInputShape},
		{name: "bad json", status: http.StatusOK, body: `{"chart":`, want: models.ErrInputShape},
		{name: "close is not an array", status: http.StatusOK, body: `{"chart":{"result":[{"meta":{},"indicators":{"quote":[{"close":"x"}]}}]}}`, want: models.ErrInputShape},
		{name: "chart missing", status: http.StatusOK, body: `{"quoteResponse":{}}`, want: models.ErrInputShape},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			srv := newServer(t, tc.status, tc.body, nil)
			c := yahoo.NewClient(yahoo.WithBaseURL(srv.URL))

			raw, err := c.FetchSeries(t.Context(), "GLD")
			require.Nil(t, raw)
			require.Truef(t, errors.Is(err, tc.want), "want %v, got %v", tc.want, err)
		})
	}
}

type failingDoer struct{}

func (failingDoer) Do(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func TestFetchSeries_NetworkFailureIsTransport(t *testing.T) {
	t.Parallel()

	c := yahoo.NewClient(yahoo.WithHTTPClient(failingDoer{}))
	_, err := c.FetchSeries(t.Context(), "GLD")
	require.ErrorIs(t, err, models.ErrTransport)
	require.True(t, strings.Contains(err.Error(), "GLD"))
}

func TestFetchProfile_CompanyAndFund(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		body  string
		check func(t *testing.T, p *models.QuoteProfile)
	}{
		{
			name: "company",
			body: `{"quoteSummary":{"result":[{"summaryProfile":{"longBusinessSummary":"Oil major.","sector":"Energy","industry":"Oil & Gas"},
"price":{"shortName":"Exxon","currencySymbol":"$","regularMarketPrice":{"raw":110.1,"fmt":"110.10"},"marketCap":{"raw":1,"fmt":"450B"}},
"summaryDetail":{"trailingPE":{"fmt":"13.2"},"dividendYield":{"fmt":"3.4%"},"fiftyTwoWeekHigh":{"fmt":"123.75"},"fiftyTwoWeekLow":{"fmt":"97.80"}}}]}}`,
			check: func(t *testing.T, p *models.QuoteProfile) {
				require.Equal(t, "Exxon", p.Name)
				require.Equal(t, "Energy", p.Sector)
				require.Equal(t, "450B", p.MarketCap)
				require.Equal(t, "13.2", p.PERatio)
				require.Equal(t, "3.4%", p.DividendYield)
				require.Equal(t, "110.10", p.CurrentPrice)
				require.False(t, p.Unavailable)
			},
		},
		{
			name: "fund without summary profile",
			body: `{"quoteSummary":{"result":[{"assetProfile":{"longBusinessSummary":"Gold trust."},
"price":{"longName":"SPDR Gold Trust"},"summaryDetail":{"totalAssets":{"fmt":"60B"},"yield":{"fmt":"0.00%"}}}]}}`,
			check: func(t *testing.T, p *models.QuoteProfile) {
				require.Equal(t, "SPDR Gold Trust", p.Name)
				require.Equal(t, "Gold trust.", p.Description)
				require.Equal(t, "ETF/Fund", p.Sector)
				require.Equal(t, "60B", p.MarketCap)
				require.Equal(t, "0.00%", p.DividendYield)
				require.Equal(t, models.Placeholder, p.PERatio)
				require.Equal(t, models.Placeholder, p.CurrentPrice)
				require.Equal(t, "$", p.Currency)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			srv := newServer(t, http.StatusOK, tc.body, func(r *http.Request) {
				require.Equal(t, "summaryProfile,summaryDetail,price,assetProfile", r.URL.Query().Get("modules"))
			})
			c := yahoo.NewClient(yahoo.WithBaseURL(srv.URL))
			p, err := c.FetchProfile(t.Context(), "XOM")
			require.NoError(t, err)
			tc.check(t, p)
		})
	}
}

func TestFetchProfile_EmptyResult(t *testing.T) {
	t.Parallel()

	srv := newServer(t, http.StatusOK, `{"quoteSummary":{"result":[]}}`, nil)
	c := yahoo.NewClient(yahoo.WithBaseURL(srv.URL))
	_, err := c.FetchProfile(t.Context(), "XOM")
	require.ErrorIs(t, err, models.ErrInputShape)
}
