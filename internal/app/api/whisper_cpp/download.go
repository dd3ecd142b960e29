package whisper_cpp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"go.uber.org/zap"

	"memo-whisper/internal/app/util/files"
)

// modelHostURL is the upstream host of the ggml model weights.
const modelHostURL = "https://huggingface.co/ggerganov/whisper.cpp/resolve/main"

const downloadTimeout = 30 * time.Minute

// Downloader fetches ggml model weights into a local cache directory.
type Downloader struct {
	BaseURL string
	Client  *http.Client
	logger  *zap.Logger
}

func NewDownloader(logger *zap.Logger) *Downloader {
	return &Downloader{
		BaseURL: modelHostURL,
		Client:  &http.Client{Timeout: downloadTimeout},
		logger:  logger,
	}
}

// EnsureModel returns the local path of the weights for the named model,
// downloading them into modelDir on first use. A cached file is trusted
// as-is; weights are fetched at most once per model name.
func (d *Downloader) EnsureModel(ctx context.Context, name, modelDir string) (string, error) {
	if !IsValidModel(name) {
		return "", fmt.Errorf("unknown whisper model %q, valid models: %s", name, describeModels())
	}

	modelPath := filepath.Join(modelDir, ModelFileName(name))
	if files.Exists(modelPath) {
		d.logger.Debug("model weights already cached",
			zap.String("model", name), zap.String("path", modelPath))
		return modelPath, nil
	}

	if err := files.EnsureDir(modelDir); err != nil {
		return "", err
	}

	url := d.BaseURL + "/" + ModelFileName(name)
	d.logger.Info("downloading model weights",
		zap.String("model", name), zap.String("url", url))

	if err := d.download(ctx, url, modelPath); err != nil {
		return "", fmt.Errorf("download model %q: %w", name, err)
	}
	return modelPath, nil
}

func (d *Downloader) download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := d.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	// Write to a .part name first so a file at dest is always complete.
	partPath := dest + ".part"
	out, err := os.Create(partPath)
	if err != nil {
		return err
	}

	copyErr := copyWithProgress(out, resp.Body, resp.ContentLength, filepath.Base(dest))
	if closeErr := out.Close(); copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		os.Remove(partPath)
		return copyErr
	}
	return os.Rename(partPath, dest)
}

func copyWithProgress(dst io.Writer, src io.Reader, total int64, name string) error {
	if total <= 0 {
		_, err := io.Copy(dst, src)
		return err
	}

	progress := mpb.New(mpb.WithOutput(os.Stderr), mpb.WithRefreshRate(180*time.Millisecond))
	bar := progress.AddBar(total,
		mpb.PrependDecorators(
			decor.Name(name+" ", decor.WC{W: len(name) + 1, C: decor.DindentRight}),
			decor.CountersKibiByte("% .2f / % .2f"),
		),
		mpb.AppendDecorators(decor.Percentage()),
	)

	reader := bar.ProxyReader(src)
	_, err := io.Copy(dst, reader)
	reader.Close()
	if err != nil {
		bar.Abort(true)
	}
	progress.Wait()
	return err
}
