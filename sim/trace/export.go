package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// entry is one JSONL line. Exactly one of the pointer fields is set.
type entry struct {
	Kind   string        `json:"kind"`
	Level  TraceLevel    `json:"level,omitempty"`
	Step   *StepRecord   `json:"step,omitempty"`
	Action *ActionRecord `json:"action,omitempty"`
}

const (
	kindHeader = "header"
	kindStep   = "step"
	kindAction = "action"
)

// WriteJSONL writes the trace to path, one JSON object per line.
// A ".zst" suffix selects zstd compression.
func WriteJSONL(path string, st *SimulationTrace) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating trace file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing trace file: %w", cerr)
		}
	}()

	if !strings.HasSuffix(path, ".zst") {
		return Encode(f, st)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("creating zstd encoder: %w", err)
	}
	if err := Encode(enc, st); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

// Encode writes the trace as JSONL to w. Steps are written in order, each
// followed by the actions recorded for it.
func Encode(w io.Writer, st *SimulationTrace) error {
	bw := bufio.NewWriterSize(w, 128*1024)
	je := json.NewEncoder(bw)
	if err := je.Encode(entry{Kind: kindHeader, Level: st.Config.Level}); err != nil {
		return fmt.Errorf("encoding trace header: %w", err)
	}
	ai := 0
	for i := range st.Steps {
		if err := je.Encode(entry{Kind: kindStep, Step: &st.Steps[i]}); err != nil {
			return fmt.Errorf("encoding step %d: %w", st.Steps[i].Step, err)
		}
		for ai < len(st.Actions) && st.Actions[ai].Step <= st.Steps[i].Step {
			if err := je.Encode(entry{Kind: kindAction, Action: &st.Actions[ai]}); err != nil {
				return fmt.Errorf("encoding action at step %d: %w", st.Actions[ai].Step, err)
			}
			ai++
		}
	}
	for ; ai < len(st.Actions); ai++ {
		if err := je.Encode(entry{Kind: kindAction, Action: &st.Actions[ai]}); err != nil {
			return fmt.Errorf("encoding action at step %d: %w", st.Actions[ai].Step, err)
		}
	}
	return bw.Flush()
}

// ReadJSONL loads a trace written by WriteJSONL.
func ReadJSONL(path string) (*SimulationTrace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trace file: %w", err)
	}
	defer f.Close()

	if !strings.HasSuffix(path, ".zst") {
		return Decode(f)
	}
	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	defer dec.Close()
	return Decode(dec)
}

// Decode reads a JSONL trace from r.
func Decode(r io.Reader) (*SimulationTrace, error) {
	st := NewSimulationTrace(TraceConfig{})
	jd := json.NewDecoder(bufio.NewReader(r))
	for line := 1; ; line++ {
		var e entry
		if err := jd.Decode(&e); err == io.EOF {
			return st, nil
		} else if err != nil {
			return nil, fmt.Errorf("decoding trace line %d: %w", line, err)
		}
		switch {
		case e.Kind == kindHeader:
			st.Config.Level = e.Level
		case e.Kind == kindStep && e.Step != nil:
			st.RecordStep(*e.Step)
		case e.Kind == kindAction && e.Action != nil:
			st.RecordAction(*e.Action)
		default:
			return nil, fmt.Errorf("decoding trace line %d: unknown entry kind %q", line, e.Kind)
		}
	}
}
