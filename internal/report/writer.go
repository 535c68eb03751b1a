package report

import (
	"bytes"
	"fmt"
	"ftm-analyzer/internal/analysis"
	"ftm-analyzer/internal/models"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

const (
	FigureFile   = "ftm_analysis.png"
	TimelineFile = "ai_decision_timeline.png"
	ReportFile   = "ftm_summary_report.txt"
)

// Renderer is the only side-effecting step of a run.
type Renderer interface {
	Render(result analysis.Result, advisory models.Advisory) (Artifacts, error)
}

type Artifacts struct {
	FigurePath   string `json:"figure_path"`
	TimelinePath string `json:"timeline_path"`
	ReportPath   string `json:"report_path"`
}

func (a Artifacts) Paths() []string {
	return []string{a.FigurePath, a.TimelinePath, a.ReportPath}
}

type OutputWriteError struct {
	Path string
	Err  error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *OutputWriteError) Unwrap() error {
	return e.Err
}

type FileRenderer struct {
	outputDir string
	now       func() time.Time
	logger    zerolog.Logger
}

var _ Renderer = (*FileRenderer)(nil)

func NewFileRenderer(outputDir string, logger zerolog.Logger) *FileRenderer {
	return &FileRenderer{
		outputDir: outputDir,
		now:       time.Now,
		logger:    logger,
	}
}

// WithClock replaces the clock used for the report's Generated line.
func (r *FileRenderer) WithClock(now func() time.Time) *FileRenderer {
	r.now = now
	return r
}

func (r *FileRenderer) Render(result analysis.Result, advisory models.Advisory) (Artifacts, error) {
	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return Artifacts{}, &OutputWriteError{Path: r.outputDir, Err: err}
	}

	artifacts := Artifacts{
		FigurePath:   filepath.Join(r.outputDir, FigureFile),
		TimelinePath: filepath.Join(r.outputDir, TimelineFile),
		ReportPath:   filepath.Join(r.outputDir, ReportFile),
	}

	figure, err := RenderFigure(BuildFigure(result))
	if err != nil {
		return Artifacts{}, fmt.Errorf("failed to render analysis figure: %w", err)
	}
	size, err := writePNG(artifacts.FigurePath, figure)
	if err != nil {
		return Artifacts{}, err
	}
	r.logger.Info().Str("path", artifacts.FigurePath).Str("size", humanize.Bytes(size)).Msg("saved visualization")

	timeline, err := RenderTimeline(BuildTimeline(result))
	if err != nil {
		return Artifacts{}, fmt.Errorf("failed to render decision timeline: %w", err)
	}
	size, err = writePNG(artifacts.TimelinePath, timeline)
	if err != nil {
		return Artifacts{}, err
	}
	r.logger.Info().Str("path", artifacts.TimelinePath).Str("size", humanize.Bytes(size)).Msg("saved AI decision timeline")

	var text bytes.Buffer
	if err := WriteReport(&text, result, advisory, r.now()); err != nil {
		return Artifacts{}, fmt.Errorf("failed to build summary report: %w", err)
	}
	if err := os.WriteFile(artifacts.ReportPath, text.Bytes(), 0o644); err != nil {
		return Artifacts{}, &OutputWriteError{Path: artifacts.ReportPath, Err: err}
	}
	r.logger.Info().Str("path", artifacts.ReportPath).Str("size", humanize.Bytes(uint64(text.Len()))).Msg("saved summary report")

	return artifacts, nil
}

func writePNG(path string, img image.Image) (uint64, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return 0, fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return 0, &OutputWriteError{Path: path, Err: err}
	}
	return uint64(buf.Len()), nil
}
