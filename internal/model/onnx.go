package model

import (
	"fmt"
	"os"
	"sync"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	ort "github.com/yalue/onnxruntime_go"
)

// Default model artifact locations, relative to the working directory.
// Produced by the training pipeline's ONNX export step.
const (
	DefaultModelPath     = "models/ner/model.onnx"
	DefaultTokenizerPath = "models/ner/tokenizer.json"
)

// ONNXConfig configures an ONNX-backed Scorer.
type ONNXConfig struct {
	ModelPath     string
	TokenizerPath string
	// NumTags is the tag vocabulary size the emission head was trained
	// with; emission rows are validated against it.
	NumTags int
}

// ONNXScorer runs a transformer NER model via ONNX Runtime and a
// wordpiece tokenizer to produce emission and transition matrices.
//
// Loading is lazy: the first Score call initializes the runtime,
// tokenizer and session. A failed load is remembered and surfaced as
// ErrNotLoaded on every subsequent call so the dispatcher can fall back
// without retry storms. The session is guarded by a mutex; ONNX Runtime
// sessions are not safely reentrant with shared bound tensors.
type ONNXScorer struct {
	cfg ONNXConfig

	mu       sync.Mutex
	loadOnce sync.Once
	loadErr  error
	tk       *tokenizer.Tokenizer
	session  *ort.DynamicAdvancedSession
}

// NewONNXScorer creates a scorer with lazy initialization. Missing
// config fields fall back to defaults.
func NewONNXScorer(cfg ONNXConfig) *ONNXScorer {
	if cfg.ModelPath == "" {
		cfg.ModelPath = DefaultModelPath
	}
	if cfg.TokenizerPath == "" {
		cfg.TokenizerPath = DefaultTokenizerPath
	}
	return &ONNXScorer{cfg: cfg}
}

func (s *ONNXScorer) load() {
	if _, err := os.Stat(s.cfg.TokenizerPath); err != nil {
		s.loadErr = fmt.Errorf("tokenizer not found at %s: %w", s.cfg.TokenizerPath, err)
		return
	}
	if _, err := os.Stat(s.cfg.ModelPath); err != nil {
		s.loadErr = fmt.Errorf("model not found at %s: %w", s.cfg.ModelPath, err)
		return
	}

	tk, err := pretrained.FromFile(s.cfg.TokenizerPath)
	if err != nil {
		s.loadErr = fmt.Errorf("loading tokenizer: %w", err)
		return
	}

	if !ort.IsInitialized() {
		if path := os.Getenv("ZANTETSU_ORT_LIB"); path != "" {
			ort.SetSharedLibraryPath(path)
		}
		if err := ort.InitializeEnvironment(); err != nil {
			s.loadErr = fmt.Errorf("initializing onnxruntime: %w", err)
			return
		}
	}

	session, err := ort.NewDynamicAdvancedSession(
		s.cfg.ModelPath,
		[]string{"input_ids", "attention_mask"},
		[]string{"emissions", "transitions"},
		nil,
	)
	if err != nil {
		s.loadErr = fmt.Errorf("creating session: %w", err)
		return
	}

	s.tk = tk
	s.session = session
}

// Score tokenizes input with the wordpiece tokenizer and runs the ONNX
// session, returning emission scores per wordpiece, the learned
// transition matrix, and wordpiece byte offsets.
func (s *ONNXScorer) Score(input string) (*Scores, error) {
	s.loadOnce.Do(s.load)
	if s.loadErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotLoaded, s.loadErr)
	}

	encoding, err := s.tk.EncodeSingle(input, true)
	if err != nil {
		return nil, fmt.Errorf("tokenizing: %w", err)
	}
	ids := encoding.GetIds()
	if len(ids) == 0 {
		return nil, fmt.Errorf("tokenizer produced no tokens")
	}

	seqLen := len(ids)
	inputIDs := make([]int64, seqLen)
	attention := make([]int64, seqLen)
	for i, id := range ids {
		inputIDs[i] = int64(id)
		attention[i] = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idsTensor, err := ort.NewTensor(ort.NewShape(1, int64(seqLen)), inputIDs)
	if err != nil {
		return nil, fmt.Errorf("creating input tensor: %w", err)
	}
	defer idsTensor.Destroy()

	maskTensor, err := ort.NewTensor(ort.NewShape(1, int64(seqLen)), attention)
	if err != nil {
		return nil, fmt.Errorf("creating mask tensor: %w", err)
	}
	defer maskTensor.Destroy()

	outputs := []ort.Value{nil, nil}
	if err := s.session.Run([]ort.Value{idsTensor, maskTensor}, outputs); err != nil {
		return nil, fmt.Errorf("running inference: %w", err)
	}
	defer func() {
		for _, out := range outputs {
			if out != nil {
				out.Destroy()
			}
		}
	}()

	emissionTensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("emissions output is not a float32 tensor")
	}
	transitionTensor, ok := outputs[1].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("transitions output is not a float32 tensor")
	}

	numTags := s.cfg.NumTags
	emFlat := emissionTensor.GetData()
	if len(emFlat) != seqLen*numTags {
		return nil, fmt.Errorf("%w: emission tensor has %d values, want %d",
			ErrNotLoaded, len(emFlat), seqLen*numTags)
	}
	emissions := make([][]float32, seqLen)
	for i := 0; i < seqLen; i++ {
		row := make([]float32, numTags)
		copy(row, emFlat[i*numTags:(i+1)*numTags])
		emissions[i] = row
	}

	trFlat := transitionTensor.GetData()
	if len(trFlat) != numTags*numTags {
		return nil, fmt.Errorf("%w: transition tensor has %d values, want %d",
			ErrNotLoaded, len(trFlat), numTags*numTags)
	}
	transitions := make([][]float32, numTags)
	for i := 0; i < numTags; i++ {
		row := make([]float32, numTags)
		copy(row, trFlat[i*numTags:(i+1)*numTags])
		transitions[i] = row
	}

	rawOffsets := encoding.GetOffsets()
	offsets := make([]TokenSpan, seqLen)
	for i := 0; i < seqLen && i < len(rawOffsets); i++ {
		offsets[i] = TokenSpan{Start: rawOffsets[i][0], End: rawOffsets[i][1]}
	}

	return &Scores{
		Emissions:   emissions,
		Transitions: transitions,
		Offsets:     offsets,
	}, nil
}

// Close releases the ONNX session. Safe to call before the lazy load ran.
func (s *ONNXScorer) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session != nil {
		s.session.Destroy()
		s.session = nil
	}
	return nil
}
