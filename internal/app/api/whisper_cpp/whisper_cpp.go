package whisper_cpp

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
	"github.com/go-audio/wav"
	"go.uber.org/zap"
)

// LocalTranscriber runs whisper.cpp inference in-process. The model weights
// are loaded exactly once at construction and shared by every Transcript
// call; each call gets a fresh inference context from the same model.
type LocalTranscriber struct {
	model     whisper.Model
	modelName string
}

// NewLocalTranscriber ensures the weights for modelName are cached under
// modelDir, downloading them on first use, then loads the model.
func NewLocalTranscriber(modelName, modelDir string, logger *zap.Logger) (*LocalTranscriber, error) {
	modelPath, err := NewDownloader(logger).EnsureModel(context.Background(), modelName, modelDir)
	if err != nil {
		return nil, err
	}

	log.Printf("loading whisper model %q from %s\n", modelName, modelPath)
	start := time.Now()
	model, err := whisper.New(modelPath)
	if err != nil {
		return nil, fmt.Errorf("load whisper model %q: %w", modelName, err)
	}
	log.Printf("model loaded in %.2fs\n", time.Since(start).Seconds())

	return &LocalTranscriber{model: model, modelName: modelName}, nil
}

// Close releases the loaded model.
func (lt *LocalTranscriber) Close() error {
	return lt.model.Close()
}

// Transcript converts one 16kHz mono WAV file to text. The language is
// detected automatically; segment texts are joined with single spaces.
func (lt *LocalTranscriber) Transcript(inputFilePath string) (string, error) {
	samples, err := decodeWavFile(inputFilePath)
	if err != nil {
		return "", err
	}

	wctx, err := lt.model.NewContext()
	if err != nil {
		return "", fmt.Errorf("new whisper context: %w", err)
	}
	if err := wctx.SetLanguage("auto"); err != nil {
		return "", fmt.Errorf("set language: %w", err)
	}
	wctx.SetThreads(uint(runtime.NumCPU()))

	if err := wctx.Process(samples, nil, nil, nil); err != nil {
		return "", fmt.Errorf("whisper inference: %w", err)
	}

	var text strings.Builder
	for {
		segment, err := wctx.NextSegment()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read segment: %w", err)
		}
		if text.Len() > 0 {
			text.WriteString(" ")
		}
		text.WriteString(strings.TrimSpace(segment.Text))
	}
	return text.String(), nil
}

// decodeWavFile reads a WAV file into float32 samples. The engine requires
// 16kHz mono input, which is what the audio converter produces.
func decodeWavFile(path string) ([]float32, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	dec := wav.NewDecoder(fh)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	if dec.SampleRate != whisper.SampleRate {
		return nil, fmt.Errorf("unsupported sample rate: %d", dec.SampleRate)
	}
	if dec.NumChans != 1 {
		return nil, fmt.Errorf("unsupported number of channels: %d", dec.NumChans)
	}
	return buf.AsFloat32Buffer().Data, nil
}
