package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vaibhaw-/MediDemo/internal/medidemo/catalog"
	"github.com/vaibhaw-/MediDemo/internal/medidemo/logger"
	"github.com/vaibhaw-/MediDemo/internal/medidemo/validation"
)

const maxLineBytes = 1 << 20

// Options names the run's endpoints for the summary and sets optional side files.
type Options struct {
	InputName  string
	OutputName string
	RejectFile string
	RunLog     string
}

// Outcome is one line of batch output.
type Outcome struct {
	RequestID string     `json:"request_id"`
	ID        string     `json:"id,omitempty"`
	Op        string     `json:"op"`
	Result    any        `json:"result,omitempty"`
	Error     *ErrorBody `json:"error,omitempty"`
}

type ErrorBody struct {
	Kind    string `json:"kind"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Rejection is written to the reject file for lines that are not valid requests.
type Rejection struct {
	RequestID string `json:"request_id"`
	Line      int    `json:"line"`
	Reason    string `json:"reason"`
	Raw       string `json:"raw"`
}

type RunSummary struct {
	Timestamp      string         `json:"timestamp"`
	Input          string         `json:"input"`
	Output         string         `json:"output"`
	RejectFile     string         `json:"reject_file,omitempty"`
	RawCount       int            `json:"raw_count"`
	EvaluatedCount int            `json:"evaluated_count"`
	InvalidCount   int            `json:"invalid_count"`
	RejectedCount  int            `json:"rejected_count"`
	ByOp           map[string]int `json:"by_op"`
}

// writeNDJSON writes v as a single JSON line.
func writeNDJSON(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal record to JSON: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

func appendRunLog(path string, summary RunSummary) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	return writeNDJSON(f, summary)
}

// openRejectFile opens the reject file if configured, returns nil if not configured
func openRejectFile(path string) (io.WriteCloser, error) {
	if path == "" {
		return nil, nil
	}
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}

// toOutcome converts an evaluation into its output record.
func toOutcome(req Request, result any, err error) Outcome {
	out := Outcome{RequestID: uuid.NewString(), ID: req.ID, Op: req.Op}
	if err == nil {
		out.Result = result
		return out
	}
	if ve, ok := validation.As(err); ok {
		out.Error = &ErrorBody{Kind: "validation", Field: ve.Field, Message: ve.Reason}
		return out
	}
	if errors.Is(err, ErrUnsupportedOp) {
		out.Error = &ErrorBody{Kind: "unsupported_op", Message: err.Error()}
		return out
	}
	out.Error = &ErrorBody{Kind: "internal", Message: err.Error()}
	return out
}

// encodeOutcome marshals o. A result JSON cannot represent becomes an
// internal error outcome so one bad line does not end the run.
func encodeOutcome(o Outcome) (Outcome, []byte, error) {
	data, err := json.Marshal(o)
	if err == nil {
		return o, data, nil
	}
	o.Result = nil
	o.Error = &ErrorBody{Kind: "internal", Message: fmt.Sprintf("encode result: %v", err)}
	data, err = json.Marshal(o)
	if err != nil {
		return o, nil, fmt.Errorf("failed to marshal outcome: %w", err)
	}
	return o, data, nil
}

type batchResult struct {
	rawCount       int
	evaluatedCount int
	invalidCount   int
	rejectedCount  int
	byOp           map[string]int
}

// processLine decodes and evaluates a single input line.
func processLine(lineNo int, line string, c *catalog.Catalog, out io.Writer, reject io.Writer, res *batchResult, log *zap.SugaredLogger) error {
	var req Request
	dec := json.NewDecoder(strings.NewReader(line))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		res.rejectedCount++
		log.Debugw("rejecting line", "line_number", lineNo, "err", err.Error())
		if reject == nil {
			return nil
		}
		rej := Rejection{RequestID: uuid.NewString(), Line: lineNo, Reason: err.Error(), Raw: line}
		if err := writeNDJSON(reject, rej); err != nil {
			return fmt.Errorf("write reject: %w", err)
		}
		return nil
	}

	result, err := Evaluate(c, req)
	outcome, data, err := encodeOutcome(toOutcome(req, result, err))
	if err != nil {
		return err
	}
	if outcome.Error != nil {
		res.invalidCount++
		log.Debugw("request failed",
			"line_number", lineNo,
			"op", req.Op,
			"kind", outcome.Error.Kind,
			"message", outcome.Error.Message)
	} else {
		res.evaluatedCount++
	}
	res.byOp[req.Op]++

	if _, err := fmt.Fprintln(out, string(data)); err != nil {
		return fmt.Errorf("write outcome: %w", err)
	}
	return nil
}

// RunBatch reads NDJSON requests from in and writes one NDJSON outcome per
// request to out. Lines that do not decode as a Request go to the reject
// file, if one is configured. Blank lines are ignored.
func RunBatch(ctx context.Context, c *catalog.Catalog, in io.Reader, out io.Writer, opts Options) error {
	log := logger.L()
	log.Infow("starting batch run",
		"input", opts.InputName,
		"output", opts.OutputName,
		"reject_file", opts.RejectFile,
		"catalog", c.Source)

	rejectFile, err := openRejectFile(opts.RejectFile)
	if err != nil {
		log.Errorw("failed to open reject file",
			"path", opts.RejectFile,
			"err", err.Error())
		return fmt.Errorf("open reject file: %w", err)
	}
	var reject io.Writer
	if rejectFile != nil {
		defer rejectFile.Close()
		reject = rejectFile
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	res := batchResult{byOp: map[string]int{}}
	startTime := time.Now()
	lineNo := 0

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		res.rawCount++
		if res.rawCount%1000 == 0 {
			log.Infow("processing progress",
				"lines_processed", res.rawCount,
				"evaluated_count", res.evaluatedCount,
				"invalid_count", res.invalidCount,
				"rejected_count", res.rejectedCount)
		}

		if err := processLine(lineNo, line, c, out, reject, &res, log); err != nil {
			log.Errorw("failed to process line",
				"line_number", lineNo,
				"err", err.Error())
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		log.Errorw("scanner error", "err", err.Error())
		return fmt.Errorf("scan input: %w", err)
	}

	if opts.RunLog != "" {
		summary := RunSummary{
			Timestamp:      time.Now().UTC().Format(time.RFC3339Nano),
			Input:          opts.InputName,
			Output:         opts.OutputName,
			RejectFile:     opts.RejectFile,
			RawCount:       res.rawCount,
			EvaluatedCount: res.evaluatedCount,
			InvalidCount:   res.invalidCount,
			RejectedCount:  res.rejectedCount,
			ByOp:           res.byOp,
		}
		if err := appendRunLog(opts.RunLog, summary); err != nil {
			log.Errorw("failed to write run log",
				"path", opts.RunLog,
				"err", err.Error())
		} else {
			log.Debugw("wrote run summary", "path", opts.RunLog)
		}
	}

	log.Infow("completed batch run",
		"duration", time.Since(startTime),
		"lines_processed", res.rawCount,
		"evaluated_count", res.evaluatedCount,
		"invalid_count", res.invalidCount,
		"rejected_count", res.rejectedCount)
	return nil
}
