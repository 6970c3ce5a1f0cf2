package printing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultBinaryPath   = "wkhtmltopdf"
	defaultTimeout      = 30 * time.Second
	defaultDPI          = 96
	defaultImageQuality = 94
)

// WkhtmltopdfConfig configures the wkhtmltopdf renderer, the fallback
// engine for hosts where running Chrome is not an option.
type WkhtmltopdfConfig struct {
	// BinaryPath locates wkhtmltopdf; empty searches PATH.
	BinaryPath     string
	DefaultTimeout time.Duration
	// TempDir receives the per-render input and output files.
	TempDir string
	// EnableJavaScript is off by default; the document templates are static.
	EnableJavaScript bool
	JavaScriptDelay  int // milliseconds, only with EnableJavaScript
	DPI              int
	ImageQuality     int // 0-100
	Logger           *zap.Logger
}

// WkhtmltopdfRenderer shells out to the wkhtmltopdf binary per render.
type WkhtmltopdfRenderer struct {
	cfg *WkhtmltopdfConfig
	log *zap.Logger
}

func NewWkhtmltopdfRenderer(cfg *WkhtmltopdfConfig) (*WkhtmltopdfRenderer, error) {
	if cfg == nil {
		cfg = &WkhtmltopdfConfig{}
	}
	if cfg.BinaryPath == "" {
		cfg.BinaryPath = defaultBinaryPath
	}
	if cfg.DefaultTimeout <= 0 {
		cfg.DefaultTimeout = defaultTimeout
	}
	if cfg.TempDir == "" {
		cfg.TempDir = os.TempDir()
	}
	if cfg.DPI == 0 {
		cfg.DPI = defaultDPI
	}
	if cfg.ImageQuality == 0 {
		cfg.ImageQuality = defaultImageQuality
	}

	resolved, err := resolveBinary(cfg.BinaryPath)
	if err != nil {
		return nil, NewRenderError(ErrCodeBinaryNotFound,
			fmt.Sprintf("wkhtmltopdf binary not found: %s", cfg.BinaryPath), err)
	}
	cfg.BinaryPath = resolved

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &WkhtmltopdfRenderer{cfg: cfg, log: log}, nil
}

func resolveBinary(path string) (string, error) {
	if filepath.IsAbs(path) {
		if _, err := os.Stat(path); err != nil {
			return "", err
		}
		return path, nil
	}
	return exec.LookPath(path)
}

func (r *WkhtmltopdfRenderer) Render(ctx context.Context, req *RenderRequest) (*RenderResult, error) {
	if req == nil {
		return nil, NewRenderError(ErrCodeInvalidHTML, "render request is nil", nil)
	}
	if strings.TrimSpace(req.HTML) == "" {
		return nil, NewRenderError(ErrCodeInvalidHTML, "HTML content is empty", nil)
	}
	if !req.PaperSize.IsValid() {
		return nil, NewRenderError(ErrCodeInvalidPaperSize, "invalid paper size: "+string(req.PaperSize), nil)
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = r.cfg.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	htmlPath, err := r.writeTempHTML(req.HTML, "print-*.html")
	if err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "failed to write input HTML", err)
	}
	defer os.Remove(htmlPath)

	pdfFile, err := os.CreateTemp(r.cfg.TempDir, "output-*.pdf")
	if err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "failed to create output file", err)
	}
	pdfPath := pdfFile.Name()
	pdfFile.Close()
	defer os.Remove(pdfPath)

	args, cleanup := r.commandArgs(req, htmlPath, pdfPath)
	defer cleanup()

	r.log.Debug("executing wkhtmltopdf",
		zap.String("binary", r.cfg.BinaryPath),
		zap.Strings("args", args))

	started := time.Now()
	cmd := exec.CommandContext(ctx, r.cfg.BinaryPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			return nil, NewRenderError(ErrCodeRenderTimeout,
				fmt.Sprintf("PDF rendering timed out after %v", timeout), err)
		case errors.Is(ctx.Err(), context.Canceled):
			return nil, NewRenderError(ErrCodeRenderTimeout, "PDF rendering was cancelled", err)
		}
		r.log.Error("wkhtmltopdf failed", zap.Error(err), zap.String("stderr", stderr.String()))
		return nil, NewRenderError(ErrCodeRenderFailed,
			"wkhtmltopdf execution failed: "+stderr.String(), err)
	}

	pdf, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "failed to read generated PDF", err)
	}
	if len(pdf) == 0 {
		return nil, NewRenderError(ErrCodeRenderFailed, "generated PDF is empty", nil)
	}

	result := &RenderResult{
		PDFData:        pdf,
		PageCount:      estimatePageCount(pdf),
		RenderDuration: time.Since(started),
	}

	r.log.Info("PDF rendered",
		zap.Int("bytes", len(result.PDFData)),
		zap.Int("pages", result.PageCount),
		zap.Duration("duration", result.RenderDuration))

	return result, nil
}

func (r *WkhtmltopdfRenderer) Close() error { return nil }

// commandArgs builds the wkhtmltopdf invocation. The returned cleanup
// removes the header/footer temp files once the command has run.
func (r *WkhtmltopdfRenderer) commandArgs(req *RenderRequest, htmlPath, pdfPath string) ([]string, func()) {
	args := []string{
		"--quiet",
		"--encoding", "UTF-8",
		"--dpi", strconv.Itoa(r.cfg.DPI),
		"--image-quality", strconv.Itoa(r.cfg.ImageQuality),
		"--page-size", pageSizeArg(req.PaperSize),
		"--orientation", orientationArg(req.Orientation),
		"--margin-top", fmt.Sprintf("%dmm", req.Margins.Top),
		"--margin-right", fmt.Sprintf("%dmm", req.Margins.Right),
		"--margin-bottom", fmt.Sprintf("%dmm", req.Margins.Bottom),
		"--margin-left", fmt.Sprintf("%dmm", req.Margins.Left),
	}

	if r.cfg.EnableJavaScript {
		args = append(args, "--enable-javascript")
		if r.cfg.JavaScriptDelay > 0 {
			args = append(args, "--javascript-delay", strconv.Itoa(r.cfg.JavaScriptDelay))
		}
	} else {
		args = append(args, "--disable-javascript")
	}

	if req.EnableLocalFileAccess {
		args = append(args, "--enable-local-file-access")
	} else {
		args = append(args, "--disable-local-file-access")
	}

	if req.Title != "" {
		args = append(args, "--title", req.Title)
	}

	var temps []string
	for _, hf := range []struct {
		html    string
		flag    string
		pattern string
	}{
		{req.HeaderHTML, "--header-html", "header-*.html"},
		{req.FooterHTML, "--footer-html", "footer-*.html"},
	} {
		if hf.html == "" {
			continue
		}
		path, err := r.writeTempHTML(hf.html, hf.pattern)
		if err != nil {
			r.log.Warn("failed to stage page chrome", zap.String("flag", hf.flag), zap.Error(err))
			continue
		}
		args = append(args, hf.flag, path)
		temps = append(temps, path)
	}

	args = append(args, htmlPath, pdfPath)

	return args, func() {
		for _, p := range temps {
			os.Remove(p)
		}
	}
}

func pageSizeArg(size PaperSize) string {
	switch size {
	case PaperSizeA5:
		return "A5"
	case PaperSizeLetter:
		return "Letter"
	default:
		return "A4"
	}
}

func orientationArg(o Orientation) string {
	if o == OrientationLandscape {
		return "Landscape"
	}
	return "Portrait"
}

func (r *WkhtmltopdfRenderer) writeTempHTML(html, pattern string) (string, error) {
	f, err := os.CreateTemp(r.cfg.TempDir, pattern)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := f.WriteString(html); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// estimatePageCount counts page objects in the PDF body. "/Type /Pages"
// parent nodes also match the page marker, so they are subtracted out.
func estimatePageCount(pdf []byte) int {
	pages := bytes.Count(pdf, []byte("/Type /Page")) - bytes.Count(pdf, []byte("/Type /Pages"))
	return max(pages, 1)
}

var _ PDFRenderer = (*WkhtmltopdfRenderer)(nil)
