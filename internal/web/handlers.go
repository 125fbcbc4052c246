package web

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kbenson/cecredit/internal/logging"
	"github.com/kbenson/cecredit/internal/report"
	"github.com/kbenson/cecredit/internal/store"
)

// generateResponse wraps the report with the archive id, when a run store
// is configured.
type generateResponse struct {
	RunID  string         `json:"runId,omitempty"`
	Report *report.Report `json:"report"`
}

// handleGenerateReport accepts a multipart form with the attendance export
// and optional overrides, runs the pipeline, and returns the report.
//
// Form fields:
//
//	export              the attendance export file (required)
//	seed                a YAML seed document (optional)
//	meeting_title       session settings, each overriding the seed's
//	scheduled_start     absence and the service defaults
//	scheduled_end
//	business_end
//	max_credit
//	grace_minutes
//	certificate_column
//	format              "json" (default) or "csv"
func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Report.MaxUploadSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		writeError(w, r, http.StatusBadRequest, "file too large or invalid form")
		return
	}

	file, header, err := r.FormFile("export")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "no export file provided")
		return
	}
	defer file.Close()

	blob, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "failed to read export file")
		return
	}

	seed, err := s.readSeed(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	opts, err := s.optionsFromForm(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	rep, err := report.Generate(blob, seed, opts)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var csvBody bytes.Buffer
	if err := rep.WriteCSV(&csvBody); err != nil {
		writeError(w, r, http.StatusInternalServerError, "failed to render report")
		return
	}

	var runID string
	if s.runs != nil {
		id, err := s.runs.SaveRun(r.Context(), rep, csvBody.Bytes())
		if err != nil {
			// The caller still gets the report; only history is lost.
			logging.FromContext(r.Context()).Warn("failed to archive run", "error", err)
		} else {
			runID = id.String()
			logging.ForRun(r.Context(), runID).Info("report archived",
				"file", header.Filename,
				"rows", len(rep.Rows),
				"skips", len(rep.Skips),
			)
		}
	}

	if r.FormValue("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="report.csv"`)
		w.Write(csvBody.Bytes())
		return
	}

	writeJSON(w, r, generateResponse{RunID: runID, Report: rep})
}

// readSeed decodes the optional seed form file.
func (s *Server) readSeed(r *http.Request) (*report.Seed, error) {
	file, _, err := r.FormFile("seed")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("invalid seed file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file")
	}
	seed, err := report.ParseSeed(data)
	if err != nil {
		return nil, err
	}
	return seed, nil
}

// optionsFromForm builds pipeline options from service defaults plus the
// request's override fields.
func (s *Server) optionsFromForm(r *http.Request) (report.Options, error) {
	grace := s.cfg.Report.GraceMinutes
	opts := report.Options{
		MeetingTitle:   r.FormValue("meeting_title"),
		MaxCredit:      s.cfg.Report.MaxCredit,
		GraceMinutes:   &grace,
		ScheduledStart: r.FormValue("scheduled_start"),
		ScheduledEnd:   r.FormValue("scheduled_end"),
		BusinessEnd:    r.FormValue("business_end"),
		CertColumn:     r.FormValue("certificate_column"),
	}

	if v := r.FormValue("max_credit"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return opts, fmt.Errorf("invalid max_credit %q", v)
		}
		opts.MaxCredit = f
	}
	if v := r.FormValue("grace_minutes"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return opts, fmt.Errorf("invalid grace_minutes %q", v)
		}
		opts.GraceMinutes = &n
	}

	return opts, nil
}

// handleListRuns returns recent archived runs, newest first.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		writeError(w, r, http.StatusServiceUnavailable, "run archive not configured")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, r, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	runs, err := s.runs.ListRuns(r.Context(), limit)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "failed to list runs")
		return
	}
	if runs == nil {
		runs = []store.RunSummary{}
	}
	writeJSON(w, r, runs)
}

// handleGetRun returns one archived run with its report document.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, ok := s.fetchRun(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, run)
}

// handleGetRunCSV re-downloads the stored CSV of an archived run.
func (s *Server) handleGetRunCSV(w http.ResponseWriter, r *http.Request) {
	run, ok := s.fetchRun(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="report.csv"`)
	w.Write(run.CSV)
}

// fetchRun resolves the runID path parameter against the archive, writing
// the error response itself when the lookup fails.
func (s *Server) fetchRun(w http.ResponseWriter, r *http.Request) (*store.Run, bool) {
	if s.runs == nil {
		writeError(w, r, http.StatusServiceUnavailable, "run archive not configured")
		return nil, false
	}

	id, err := uuid.Parse(chi.URLParam(r, "runID"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid run id")
		return nil, false
	}

	run, err := s.runs.GetRun(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "run not found")
		return nil, false
	}
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "failed to fetch run")
		return nil, false
	}
	return run, true
}

// handleHealth answers liveness probes.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, map[string]string{"status": "ok"})
}
