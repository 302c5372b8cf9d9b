package api

import (
	"encoding/json"
	"github.com/rs/cors"
	"io/ioutil"
	"net/http"
	"text2phenotype.com/nlg/pipeline"
)

const (
	RealisePath = "/realise"
	TidHeader   = "X-Request-Id"
	defaultTid  = "api"
	// maxSpecSize bounds request bodies.
	maxSpecSize = 4 << 20
)

type Request struct {
	Pipeline pipeline.Pipeline
	// AllowedOrigins are passed to the CORS handler; empty allows any origin.
	AllowedOrigins []string
}

// Handler serves POST /realise behind CORS.
func (req *Request) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(RealisePath, req.ProcessData)
	return cors.New(cors.Options{
		AllowedOrigins: req.AllowedOrigins,
		AllowedMethods: []string{http.MethodPost},
		AllowedHeaders: []string{"Content-Type", TidHeader},
	}).Handler(mux)
}

func (req *Request) ProcessData(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	logger := makeRequestLogger(r)

	if r.Method != http.MethodPost {
		logger.Err(nil).Int("status", http.StatusMethodNotAllowed).Msg("Only 'POST' method is allowed here")
		http.Error(w, "", http.StatusMethodNotAllowed)
		return
	}

	spec, err := ioutil.ReadAll(http.MaxBytesReader(w, r.Body, maxSpecSize))
	if err != nil {
		logger.Err(err).Int("status", http.StatusBadRequest).Msg("Could not read request body")
		http.Error(w, "", http.StatusBadRequest)
		return
	}
	if !json.Valid(spec) {
		logger.Error().Int("status", http.StatusBadRequest).Msg("Request body is not a JSON document")
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	request := pipeline.Request{
		Tid:  r.Header.Get(TidHeader),
		Spec: spec,
	}
	if request.Tid == "" {
		request.Tid = defaultTid
	}
	logger.Info().Str("tid", request.Tid).Msg("Starting pipeline for request from API")
	resp, ok := <-req.Pipeline(request)
	if !ok {
		logger.Error().Int("status", http.StatusInternalServerError).Msg("Pipeline returned no response")
		http.Error(w, "", http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	var response pipeline.Response
	if err = json.Unmarshal([]byte(resp), &response); err != nil || response.Error != "" {
		status = http.StatusUnprocessableEntity
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(resp))
	logger.Info().Int("status", status).Msg("Finished processing request")
}
