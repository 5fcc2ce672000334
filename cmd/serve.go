package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/chordseq/constants"
	"github.com/jsphweid/chordseq/logger"
	"github.com/jsphweid/chordseq/model"
	"github.com/jsphweid/chordseq/pattern"
	"github.com/jsphweid/chordseq/pitch"
	"github.com/jsphweid/chordseq/progression"
	"github.com/jsphweid/chordseq/sequence"
	"github.com/jsphweid/chordseq/timeline"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

const sentryFlushTimeout = 2 * time.Second

var servePort string

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "port to listen on (defaults to CHORDSEQ_PORT or 8080)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves expansions over HTTP",
	Long:  `Serves POST /expand, GET /progressions and GET /presets.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port := servePort
		if port == "" {
			port = constants.GetPort()
		}
		return serve(port)
	},
}

func initSentry() func() {
	dsn := constants.GetSentryDSN()
	if dsn == "" {
		logger.Info("Sentry not configured", nil)
		return func() {}
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: constants.GetEnvironment(),
	}); err != nil {
		logger.Warn("Failed to initialize Sentry", logger.Fields{"error": err.Error()})
		return func() {}
	}
	return func() { sentry.Flush(sentryFlushTimeout) }
}

func serve(port string) error {
	flush := initSentry()
	defer flush()

	catalog, err := progression.Load(constants.GetProgressionsPath())
	if err != nil {
		return err
	}

	logger.Info("Starting server", logger.Fields{"port": port, "progressions": catalog.Len()})
	return http.ListenAndServe(":"+port, NewHandler(catalog))
}

// NewHandler is the router with CORS applied, as served.
func NewHandler(catalog *progression.Catalog) http.Handler {
	return cors.Default().Handler(NewRouter(catalog))
}

// NewRouter wires the HTTP API around a progression catalog.
func NewRouter(catalog *progression.Catalog) *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/expand", func(w http.ResponseWriter, r *http.Request) {
		HandleExpand(w, r, catalog)
	}).Methods("POST")
	router.HandleFunc("/progressions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, catalog.Progressions)
	}).Methods("GET")
	router.HandleFunc("/presets", handlePresets).Methods("GET")
	return router
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Could not encode response", err, nil)
	}
}

func handlePresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.PresetsResponse{
		Patterns:  pattern.StepKinds(),
		Durations: pattern.DurationKinds(),
	})
}

func HandleExpand(w http.ResponseWriter, r *http.Request, catalog *progression.Catalog) {
	requestID := uuid.New().String()
	w.Header().Set("X-Request-Id", requestID)
	fields := logger.Fields{"request_id": requestID, "path": r.URL.Path}

	var input model.ExpandRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		logger.Warn("Could not decode request body", fields)
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "Could not decode request body: " + err.Error()})
		return
	}

	res, err := expandRequest(input, catalog)
	if err != nil {
		fields["error"] = err.Error()
		logger.Warn("Rejected expand request", fields)
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}
	res.RequestId = requestID

	fields["events"] = len(res.Events)
	logger.Info("Expanded sequence", fields)
	writeJSON(w, http.StatusOK, res)
}

var errNoChords = errors.New("either chords or progression is required")

func expandRequest(input model.ExpandRequestBody, catalog *progression.Catalog) (model.ExpandResponse, error) {
	var res model.ExpandResponse

	chords := input.Chords
	if len(chords) == 0 {
		if input.Progression == nil {
			return res, errNoChords
		}
		p, err := catalog.Get(*input.Progression)
		if err != nil {
			return res, err
		}
		chords = p.Chords
	}

	bars := input.Bars
	if bars == 0 {
		bars = len(chords)
	}
	tl, err := timeline.New(chords, bars)
	if err != nil {
		return res, err
	}

	steps, durations := input.Pattern, input.Durations
	if steps == "" {
		steps = pattern.DefaultSteps
	}
	if durations == "" {
		durations = pattern.DefaultDurations
	}
	tmpl, err := pattern.FromPreset(pattern.CommonTime, steps, durations)
	if err != nil {
		return res, err
	}

	subdivision := input.Subdivision
	if subdivision == 0 {
		subdivision = sequence.DefaultSubdivision
	}
	events, err := sequence.Default().Expand(tl, tmpl, subdivision)
	if err != nil {
		return res, fmt.Errorf("could not expand %v: %w", tl.Chords(), err)
	}

	res.Chords = tl.Chords()
	res.Events = events
	if input.WithNames {
		res.Names, err = sequence.Render(events, pitch.Converter{})
		if err != nil {
			return res, err
		}
	}
	return res, nil
}
