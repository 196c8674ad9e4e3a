package brasilapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sig-0/fipeval/types"
)

const testFipeCode = types.FipeCode("001004-9")

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return srv
}

func TestClient_ReferenceTables(t *testing.T) {
	t.Parallel()

	t.Run("valid listing", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, tablesPath, r.URL.Path)

			_, _ = w.Write([]byte(`[
				{"codigo": 301, "mes": "janeiro/2024 "},
				{"codigo": "300", "mes": "dezembro/2023"},
				{"codigo": 0, "mes": "bogus"},
				{"codigo": "abc", "mes": "bogus"}
			]`))
		})

		tables, err := NewClient(srv.URL).ReferenceTables(context.Background())
		require.NoError(t, err)

		assert.Equal(t, []types.ReferenceTable{
			{Code: 301, PeriodLabel: "janeiro/2024"},
			{Code: 300, PeriodLabel: "dezembro/2023"},
		}, tables)
	})

	t.Run("empty listing", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		})

		_, err := NewClient(srv.URL).ReferenceTables(context.Background())

		assert.ErrorIs(t, err, errNoTables)
	})

	t.Run("upstream failure", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := NewClient(srv.URL).ReferenceTables(context.Background())

		assert.Error(t, err)
	})
}

func TestClient_Price(t *testing.T) {
	t.Parallel()

	t.Run("current table, array response", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, pricePath+testFipeCode.String(), r.URL.Path)
			assert.Empty(t, r.URL.Query().Get("tabela_referencia"))

			_, _ = w.Write([]byte(`[{
				"valor": "R$ 6.022,00",
				"marca": "Acura",
				"modelo": "Integra GS 1.8",
				"anoModelo": 1992,
				"combustivel": "Gasolina",
				"codigoFipe": "038003-2",
				"mesReferencia": "junho de 2021 "
			}]`))
		})

		quote, err := NewClient(srv.URL).Price(context.Background(), testFipeCode, 0)
		require.NoError(t, err)

		assert.Equal(t, &types.PriceQuote{
			FipeCode:       "038003-2",
			ReferenceMonth: "junho de 2021",
			FormattedValue: "R$ 6.022,00",
			Brand:          "Acura",
			Model:          "Integra GS 1.8",
			Fuel:           "Gasolina",
			YearModel:      1992,
		}, quote)
	})

	t.Run("pinned table, object response", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "271", r.URL.Query().Get("tabela_referencia"))

			_, _ = w.Write([]byte(`{"valor": 6022.5, "mes_referencia": "maio de 2021"}`))
		})

		quote, err := NewClient(srv.URL).Price(context.Background(), testFipeCode, 271)
		require.NoError(t, err)

		assert.Equal(t, testFipeCode, quote.FipeCode)
		assert.Equal(t, "maio de 2021", quote.ReferenceMonth)
		assert.Equal(t, "R$ 6.022,50", quote.FormattedValue)
	})

	t.Run("empty array", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		})

		_, err := NewClient(srv.URL).Price(context.Background(), testFipeCode, 0)

		assert.ErrorIs(t, err, errNoPrice)
	})

	t.Run("missing value", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[{"marca": "Acura"}]`))
		})

		_, err := NewClient(srv.URL).Price(context.Background(), testFipeCode, 0)

		assert.ErrorIs(t, err, errNoPrice)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message": "Código fipe inválido"}`))
		})

		_, err := NewClient(srv.URL).Price(context.Background(), testFipeCode, 0)

		assert.Error(t, err)
	})
}
