package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"scrapers/tools/internal/config"
	"scrapers/tools/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	estoniaJSON  = `{"name":{"common":"Estonia","official":"Republic of Estonia"},"capital":["Tallinn"],"flags":{"png":"https://flagcdn.com/w320/ee.png","svg":"https://flagcdn.com/ee.svg"}}`
	colombiaJSON = `{"name":{"common":"Colombia","official":"Republic of Colombia"},"capital":["Bogotá"],"flags":{"png":"https://flagcdn.com/w320/co.png","svg":"https://flagcdn.com/co.svg"}}`
	macaoJSON    = `{"name":{"common":"Macau","official":"Macao Special Administrative Region"},"capital":[],"flags":{"png":"https://flagcdn.com/w320/mo.png","svg":"https://flagcdn.com/mo.svg"}}`
)

type recordedRequest struct {
	path  string
	query url.Values
}

type apiStub struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   int
	body     string
}

func (s *apiStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, recordedRequest{path: r.URL.EscapedPath(), query: r.URL.Query()})
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(s.status)
	_, _ = w.Write([]byte(s.body))
}

func (s *apiStub) last(t *testing.T) recordedRequest {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.requests)
	return s.requests[len(s.requests)-1]
}

type recordingPrinter struct {
	printed [][]domain.Country
}

func (p *recordingPrinter) Print(countries []domain.Country) error {
	p.printed = append(p.printed, countries)
	return nil
}

func newTestCountryClient(t *testing.T, stub *apiStub) (CountryClient, *recordingPrinter) {
	t.Helper()

	server := httptest.NewServer(stub)
	t.Cleanup(server.Close)

	printer := &recordingPrinter{}
	client := NewCountryClient(config.CountriesConfig{
		BaseURL: server.URL + "/v3.1",
		Timeout: 5,
		Fields:  []string{"name", "capital", "flags"},
	}, printer)
	t.Cleanup(func() { _ = client.Close() })

	return client, printer
}

func TestCountryClient_ByCode_SingleObject(t *testing.T) {
	stub := &apiStub{status: http.StatusOK, body: colombiaJSON}
	client, printer := newTestCountryClient(t, stub)

	ok := client.ByCode(context.Background(), "col")
	require.True(t, ok)

	req := stub.last(t)
	assert.Equal(t, "/v3.1/alpha/col", req.path)
	assert.Equal(t, "name,capital,flags", req.query.Get("fields"))

	require.Len(t, printer.printed, 1)
	require.Len(t, printer.printed[0], 1)
	assert.Equal(t, "Colombia", printer.printed[0][0].Name.Common)
}

func TestCountryClient_ArrayResponse(t *testing.T) {
	stub := &apiStub{status: http.StatusOK, body: "[" + estoniaJSON + "," + colombiaJSON + "," + macaoJSON + "]"}
	client, printer := newTestCountryClient(t, stub)

	require.True(t, client.ByRegion(context.Background(), "europe"))

	require.Len(t, printer.printed, 1)
	assert.Len(t, printer.printed[0], 3)
	assert.Equal(t, "/v3.1/region/europe", stub.last(t).path)
}

func TestCountryClient_StatusMapping(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		body     string
		expected bool
	}{
		{name: "non-empty array", status: http.StatusOK, body: "[" + estoniaJSON + "]", expected: true},
		{name: "empty array", status: http.StatusOK, body: "[]", expected: false},
		{name: "not found", status: http.StatusNotFound, body: `{"status":404,"message":"Not Found"}`, expected: false},
		{name: "server error", status: http.StatusInternalServerError, body: "oops", expected: false},
		{name: "invalid json", status: http.StatusOK, body: "<html>maintenance</html>", expected: false},
		{name: "truncated json", status: http.StatusOK, body: `[{"name":`, expected: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &apiStub{status: tc.status, body: tc.body}
			client, printer := newTestCountryClient(t, stub)

			assert.Equal(t, tc.expected, client.ByName(context.Background(), "estonia"))
			if tc.expected {
				assert.Len(t, printer.printed, 1)
			} else {
				assert.Empty(t, printer.printed)
			}
		})
	}
}

func TestCountryClient_LookupErrors(t *testing.T) {
	t.Run("no data", func(t *testing.T) {
		client, _ := newTestCountryClient(t, &apiStub{status: http.StatusOK, body: "[]"})
		_, err := client.Lookup(context.Background(), queryAll())
		assert.ErrorIs(t, err, ErrNoData)
	})

	t.Run("status", func(t *testing.T) {
		client, _ := newTestCountryClient(t, &apiStub{status: http.StatusNotFound, body: "Not Found"})
		_, err := client.Lookup(context.Background(), queryName("atlantis"))

		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusNotFound, statusErr.Code)
		assert.Equal(t, "Not Found", statusErr.Body)
	})

	t.Run("decode", func(t *testing.T) {
		client, _ := newTestCountryClient(t, &apiStub{status: http.StatusOK, body: "not json"})
		_, err := client.Lookup(context.Background(), queryAll())

		var decodeErr *DecodeError
		assert.ErrorAs(t, err, &decodeErr)
	})

	t.Run("transport", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		baseURL := server.URL
		server.Close()

		client := NewCountryClient(config.CountriesConfig{BaseURL: baseURL, Timeout: 1, Fields: []string{"name"}}, &recordingPrinter{})
		defer client.Close()

		_, err := client.Lookup(context.Background(), queryAll())
		assert.ErrorIs(t, err, ErrTransport)
		assert.False(t, client.All(context.Background()))
	})
}

func TestCountryClient_ParamsDoNotLeakBetweenCalls(t *testing.T) {
	stub := &apiStub{status: http.StatusOK, body: "[" + estoniaJSON + "]"}
	client, _ := newTestCountryClient(t, stub)
	ctx := context.Background()

	require.True(t, client.ByFullName(ctx, "Germany"))
	fullName := stub.last(t)
	assert.Equal(t, "/v3.1/name/Germany", fullName.path)
	assert.Equal(t, "true", fullName.query.Get("fullText"))

	require.True(t, client.ByName(ctx, "Peru"))
	name := stub.last(t)
	assert.Equal(t, "/v3.1/name/Peru", name.path)
	assert.False(t, name.query.Has("fullText"))
	assert.Equal(t, "name,capital,flags", name.query.Get("fields"))

	require.True(t, client.ByCodes(ctx, "170", "pe"))
	codes := stub.last(t)
	assert.Equal(t, "/v3.1/alpha", codes.path)
	assert.Equal(t, "170,pe", codes.query.Get("codes"))
	assert.False(t, codes.query.Has("fullText"))

	require.True(t, client.ByCurrency(ctx, "cop"))
	assert.False(t, stub.last(t).query.Has("codes"))
}

func TestCountryClient_EntryPointPaths(t *testing.T) {
	stub := &apiStub{status: http.StatusOK, body: "[" + estoniaJSON + "]"}
	client, _ := newTestCountryClient(t, stub)
	ctx := context.Background()

	cases := []struct {
		call func() bool
		path string
	}{
		{call: func() bool { return client.All(ctx) }, path: "/v3.1/all"},
		{call: func() bool { return client.ByName(ctx, "deutschland") }, path: "/v3.1/name/deutschland"},
		{call: func() bool { return client.ByCode(ctx, "col") }, path: "/v3.1/alpha/col"},
		{call: func() bool { return client.ByCurrency(ctx, "cop") }, path: "/v3.1/currency/cop"},
		{call: func() bool { return client.ByDemonym(ctx, "peruvian") }, path: "/v3.1/demonym/peruvian"},
		{call: func() bool { return client.ByLanguage(ctx, "spanish") }, path: "/v3.1/lang/spanish"},
		{call: func() bool { return client.ByCapital(ctx, "tallinn") }, path: "/v3.1/capital/tallinn"},
		{call: func() bool { return client.ByRegion(ctx, "europe") }, path: "/v3.1/region/europe"},
		{call: func() bool { return client.BySubregion(ctx, "Northern Europe") }, path: "/v3.1/subregion/Northern%20Europe"},
		{call: func() bool { return client.ByTranslation(ctx, "germany") }, path: "/v3.1/translation/germany"},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			require.True(t, tc.call())
			assert.Equal(t, tc.path, stub.last(t).path)
		})
	}
}
