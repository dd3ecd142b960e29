// Package converter drives a batch run: walk an input directory, decode
// every M4A file to an intermediate WAV, transcribe it and persist the text.
package converter

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"memo-whisper/internal/app/api"
	"memo-whisper/internal/app/audio"
	"memo-whisper/internal/app/model"
	"memo-whisper/internal/app/repository"
	"memo-whisper/internal/app/util/files"
)

// RunInfo identifies the engine configuration a batch runs with; it is
// recorded verbatim on every ledger row the run produces.
type RunInfo struct {
	Engine string
	Model  string
}

// RunTally is the outcome of one batch: files that ended up with a
// transcript (including ones skipped because the transcript already
// existed) and files that failed.
type RunTally struct {
	Processed int
	Errors    int
}

type Converter struct {
	transcriber api.Transcriber
	db          repository.TranscriptionDAO
	info        RunInfo
	runID       string
}

func NewConverter(transcriber api.Transcriber, transcriptionDAO repository.TranscriptionDAO, info RunInfo) *Converter {
	return &Converter{
		transcriber: transcriber,
		db:          transcriptionDAO,
		info:        info,
		runID:       uuid.NewString(),
	}
}

func (c *Converter) Close() error {
	return c.db.Close()
}

// Run processes every M4A file directly inside inputDir, writing one .txt
// transcript per file into outputDir. An existing transcript is kept as is
// and counted as processed without touching the engine. One file failing
// never stops the batch; the failure is logged, recorded and counted.
func (c *Converter) Run(inputDir string, outputDir string) (RunTally, error) {
	var tally RunTally

	if !files.DirExists(inputDir) {
		return tally, fmt.Errorf("input directory does not exist: %s", inputDir)
	}
	if err := files.EnsureDir(outputDir); err != nil {
		return tally, err
	}

	absOutputDir, err := filepath.Abs(outputDir)
	if err != nil {
		absOutputDir = outputDir
	}
	fmt.Printf("Writing transcripts to '%s'\n", absOutputDir)

	fileInfos, err := files.ListDir(inputDir)
	if err != nil {
		return tally, err
	}

	for _, file := range fileInfos {
		if !file.Regular || !files.HasExt(file.Name, ".m4a") {
			fmt.Printf("Skipping non-M4A entry '%s'\n", file.Name)
			continue
		}

		outputPath := outputPathFor(outputDir, file.Name)
		if files.Exists(outputPath) {
			fmt.Printf("Transcript for '%s' already exists, skipping...\n", file.Name)
			tally.Processed++
			continue
		}

		fmt.Printf("Processing file '%s'\n", file.Name)
		if err := c.processFile(file, outputPath); err != nil {
			log.Printf("failed to transcribe '%s': %v\n", file.Name, err)
			tally.Errors++
			continue
		}
		tally.Processed++
	}

	c.printSummary(tally)
	return tally, nil
}

// outputPathFor maps an input file name to its transcript location: same
// base name with a .txt extension, inside outputDir.
func outputPathFor(outputDir string, fileName string) string {
	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	return filepath.Join(outputDir, base+".txt")
}

// processFile runs the convert-transcribe-persist pipeline for one file.
// The intermediate WAV is removed before returning, whatever the outcome.
func (c *Converter) processFile(file model.FileInfo, outputPath string) error {
	wavPath, err := audio.ConvertToWav(file.FullPath)
	if err != nil {
		c.record(file, "", 0, "", err)
		return err
	}
	defer func() {
		if removeErr := os.Remove(wavPath); removeErr != nil && !os.IsNotExist(removeErr) {
			log.Printf("failed to remove temporary wav '%s': %v\n", wavPath, removeErr)
		}
	}()

	// Duration is advisory ledger metadata, not a processing requirement.
	duration, err := audio.GetAudioDuration(wavPath)
	if err != nil {
		log.Printf("could not determine duration of '%s': %v\n", file.Name, err)
		duration = 0
	}

	start := time.Now()
	text, err := c.transcriber.Transcript(wavPath)
	if err != nil {
		err = fmt.Errorf("transcription error: %w", err)
		c.record(file, "", duration, "", err)
		return err
	}
	elapsed := time.Since(start)

	if err := os.WriteFile(outputPath, []byte(text), 0o644); err != nil {
		err = fmt.Errorf("write transcript: %w", err)
		c.record(file, "", duration, "", err)
		return err
	}

	c.record(file, outputPath, duration, text, nil)
	fmt.Printf("Transcription completed for '%s' in %s\n", file.Name, elapsed.Round(time.Millisecond))
	return nil
}

// record appends one row to the history ledger. Ledger failures are logged
// and otherwise ignored: history is an audit trail, not part of the batch
// outcome.
func (c *Converter) record(file model.FileInfo, outputPath string, duration int, text string, cause error) {
	transcription := model.Transcription{
		RunID:         c.runID,
		InputDir:      filepath.Dir(file.FullPath),
		FileName:      file.Name,
		OutputFile:    outputPath,
		Engine:        c.info.Engine,
		Model:         c.info.Model,
		AudioDuration: duration,
		Text:          text,
		CreatedAt:     time.Now(),
	}
	if cause != nil {
		transcription.HasError = true
		transcription.ErrorMessage = cause.Error()
	}
	if err := c.db.Record(transcription); err != nil {
		log.Printf("failed to record transcription history: %v\n", err)
	}
}

func (c *Converter) printSummary(tally RunTally) {
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("Batch finished")
	fmt.Printf("M4A files processed: %d\n", tally.Processed)
	fmt.Printf("Files with errors or not transcribed: %d\n", tally.Errors)
}
