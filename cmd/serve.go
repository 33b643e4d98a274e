package cmd

import (
	"context"
	"encoding/json"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/jsphweid/voicelead/chord"
	"github.com/jsphweid/voicelead/config"
	"github.com/jsphweid/voicelead/constants"
	"github.com/jsphweid/voicelead/graph"
	"github.com/jsphweid/voicelead/leading"
	"github.com/jsphweid/voicelead/model"
)

const (
	codeInvalidRequest = "INVALID_REQUEST"
	sentryFlushTimeout = 2 * time.Second
	maxRequestBytes    = 1 << 20
)

var addr string

// arrangements are memoized per positions setting and shared by requests
var generators = map[chord.Positions]*chord.Generator{
	chord.PositionsAll:    chord.NewGenerator(chord.PositionsAll),
	chord.PositionsClose:  chord.NewGenerator(chord.PositionsClose),
	chord.PositionsSpread: chord.NewGenerator(chord.PositionsSpread),
}

// handler logs go here; serve swaps in the command's logger
var serverLog = log.Default()

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (default $VOICELEAD_ADDR or :8080)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves voicings over HTTP",
	Long:  `Serves POST /voicings, GET /standards and GET /health.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if addr == "" {
			addr = constants.GetAddr()
		}
		return serve(cmd.Context(), addr)
	},
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/voicings", HandleVoicings).Methods(http.MethodPost)
	router.HandleFunc("/standards", HandleStandards).Methods(http.MethodGet)
	router.HandleFunc("/health", HandleHealth).Methods(http.MethodGet)
	return cors.Default().Handler(router)
}

func writeJSONResponse(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		serverLog.Error("could not write response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	writeJSONResponse(w, status, model.ErrorResponse{Error: err.Error(), Code: code})
}

func statusFor(code leading.Code) int {
	switch code {
	case leading.CodeInvalidChord, leading.CodeInvalidRange, leading.CodeEmptyProgression:
		return http.StatusBadRequest
	case leading.CodeNoFeasibleVoicing, leading.CodeNoFeasibleVoiceLeading:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func progression(input model.VoicingsRequestBody) ([]chord.Chord, error) {
	if len(input.Chords) > 0 {
		return chord.ParseAll(input.Chords)
	}
	return chord.ParseChart(input.Chart)
}

func HandleVoicings(w http.ResponseWriter, r *http.Request) {
	var input model.VoicingsRequestBody
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, errors.Wrap(err, "could not decode request body"))
		return
	}

	pitchRange := constants.DefaultRange
	if input.Range != nil {
		var err error
		if pitchRange, err = config.RangeFromSlice(input.Range); err != nil {
			writeError(w, http.StatusBadRequest, string(leading.CodeInvalidRange), err)
			return
		}
	}

	positions := chord.PositionsSpread
	if input.Positions != "" {
		var err error
		if positions, err = chord.ParsePositions(input.Positions); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequest, err)
			return
		}
	}

	chords, err := progression(input)
	if err != nil {
		writeError(w, http.StatusBadRequest, string(leading.ErrorCode(err)), err)
		return
	}

	opts := leading.Options{Generator: generators[positions], Logger: serverLog}
	if input.AllowHolds {
		opts.Policy = graph.AllowHolds{}
	}

	sol, err := leading.SolveChords(chords, pitchRange, opts)
	if err != nil {
		code := leading.ErrorCode(err)
		status := statusFor(code)
		if !leading.IsUserError(err) {
			sentry.CaptureException(err)
			serverLog.Error("solve failed", "err", err)
		}
		writeError(w, status, string(code), err)
		return
	}

	writeJSONResponse(w, http.StatusOK, model.VoicingsResponse{
		Id:    uuid.NewString(),
		Cost:  sol.Result.Cost,
		Steps: sol.Result.Steps,
	})
}

func HandleStandards(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, standards())
}

func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func serve(ctx context.Context, addr string) error {
	serverLog = loggerFromContext(ctx)

	if dsn := constants.GetSentryDSN(); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			serverLog.Warn("could not initialize sentry", "err", err)
		} else {
			defer sentry.Flush(sentryFlushTimeout)
		}
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{Addr: addr, Handler: NewRouter(), ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() {
		serverLog.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		sentry.CaptureException(err)
		return err
	case <-ctx.Done():
	}

	serverLog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
