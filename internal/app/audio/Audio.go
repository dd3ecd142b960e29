package audio

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrFFmpegNotFound reports that the ffmpeg binary could not be resolved on PATH.
var ErrFFmpegNotFound = errors.New("ffmpeg binary not found in PATH")

// TempWavPath returns the deterministic location of the intermediate WAV for
// inputPath: same directory, base name prefixed with "temp_", extension
// replaced with ".wav".
func TempWavPath(inputPath string) string {
	base := filepath.Base(inputPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(inputPath), "temp_"+name+".wav")
}

// ConvertToWav decodes inputPath into a 16kHz mono PCM WAV at TempWavPath.
// The produced file is owned by the caller, who must remove it when done.
// A partially written output is removed before returning an error.
func ConvertToWav(inputPath string) (string, error) {
	ffmpeg, err := exec.LookPath("ffmpeg")
	if err != nil {
		return "", ErrFFmpegNotFound
	}

	outputPath := TempWavPath(inputPath)
	log.Printf("converting to 16kHz wav: %s\n", inputPath)

	cmd := exec.Command(ffmpeg, "-y", "-i", inputPath, "-vn", "-acodec", "pcm_s16le", "-ar", "16000", "-ac", "1", outputPath)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if removeErr := os.Remove(outputPath); removeErr != nil && !os.IsNotExist(removeErr) {
			log.Printf("failed to remove partial wav '%s': %v\n", outputPath, removeErr)
		}
		return "", fmt.Errorf("FFmpeg error: %v, stderr: %s", err, stderr.String())
	}

	return outputPath, nil
}

// GetAudioDuration probes filePath with ffprobe and returns the rounded
// duration in seconds.
func GetAudioDuration(filePath string) (int, error) {
	cmd := exec.Command("ffprobe", "-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, err
	}
	durationFloat, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, err
	}
	return int(math.Round(durationFloat)), nil
}
