package api

import (
	"encoding/json"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"text2phenotype.com/nlg/pipeline"
	"text2phenotype.com/nlg/types"
)

func newRequest(t *testing.T) *Request {
	ppln, err := pipeline.New(pipeline.Params{Configuration: types.DefaultConfiguration()})
	require.NoError(t, err)
	return &Request{Pipeline: ppln, AllowedOrigins: []string{"https://reports.example.com"}}
}

func serve(handler http.Handler, method, body string, headers map[string]string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, RealisePath, strings.NewReader(body))
	for k, v := range headers {
		r.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	return w
}

func TestProcessData(t *testing.T) {
	handler := newRequest(t).Handler()

	t.Run("realise", func(t *testing.T) {
		w := serve(handler, http.MethodPost, `{"type": "clause", "subjects": ["Mary"], "verb": "chase", "objects": ["George"]}`,
			map[string]string{TidHeader: "req-7"})
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var response pipeline.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Equal(t, "req-7", response.Tid)
		require.Equal(t, "Mary chases George.", response.Text)
	})

	t.Run("default tid", func(t *testing.T) {
		w := serve(handler, http.MethodPost, `{"type": "clause", "subjects": ["John"], "verb": "eat"}`, nil)
		var response pipeline.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Equal(t, defaultTid, response.Tid)
	})

	t.Run("unknown element", func(t *testing.T) {
		w := serve(handler, http.MethodPost, `{"type": "nonsense"}`, nil)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		require.Contains(t, w.Body.String(), `unknown element type`)
	})

	t.Run("not json", func(t *testing.T) {
		w := serve(handler, http.MethodPost, `the dog chases the cat`, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("method", func(t *testing.T) {
		w := serve(handler, http.MethodGet, "", nil)
		require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})

	t.Run("cors", func(t *testing.T) {
		w := serve(handler, http.MethodPost, `{"type": "clause", "subjects": ["John"], "verb": "eat"}`,
			map[string]string{"Origin": "https://reports.example.com"})
		require.Equal(t, "https://reports.example.com", w.Header().Get("Access-Control-Allow-Origin"))

		w = serve(handler, http.MethodPost, `{"type": "clause", "subjects": ["John"], "verb": "eat"}`,
			map[string]string{"Origin": "https://elsewhere.example.com"})
		require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}
