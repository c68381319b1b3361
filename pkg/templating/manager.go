package templating

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/CTAG07/Bestiary/pkg/animals"
	"github.com/natefinch/atomic"
)

// TemplateManager owns a page template loaded from disk and the card layout
// used to fill it. It renders record collections into complete pages.
type TemplateManager struct {
	logger       *slog.Logger
	config       *TemplateConfig
	layout       Layout
	templatePath string
	page         string
}

// NewTemplateManager creates a TemplateManager for the template file at
// templatePath. It resolves the configured layout and performs an initial
// Refresh, so a missing or unreadable template fails here.
func NewTemplateManager(logger *slog.Logger, config *TemplateConfig, templatePath string) (*TemplateManager, error) {
	if config == nil {
		def := DefaultConfig()
		config = &def
	}
	tm := &TemplateManager{
		logger:       logger,
		templatePath: templatePath,
	}
	if err := tm.SetConfig(config); err != nil {
		return nil, err
	}
	if err := tm.Refresh(); err != nil {
		return nil, err
	}

	logger.Debug("Template manager initialized", "template", templatePath, "fields", len(tm.layout))
	return tm, nil
}

// SetConfig applies a new configuration, re-resolving the card layout. The
// previous configuration stays active if the new layout is invalid.
func (tm *TemplateManager) SetConfig(config *TemplateConfig) error {
	layout, err := LayoutByName(config.Layout, config.Fields)
	if err != nil {
		return fmt.Errorf("failed to resolve card layout: %w", err)
	}
	tm.config = config
	tm.layout = layout
	return nil
}

// Refresh reloads the page template from the filesystem.
func (tm *TemplateManager) Refresh() error {
	data, err := os.ReadFile(tm.templatePath)
	if err != nil {
		return fmt.Errorf("failed to read template file: %w", err)
	}
	tm.page = string(data)
	if !strings.Contains(tm.page, tm.config.placeholder()) {
		tm.logger.Warn("Template does not contain the placeholder", "template", tm.templatePath, "placeholder", tm.config.placeholder())
	}
	return nil
}

// Render writes the page for records to w. Without the placeholder the
// template is written unchanged, or ErrPlaceholderMissing is returned in
// strict mode and nothing is written.
func (tm *TemplateManager) Render(w io.Writer, records []animals.Record) error {
	page, err := tm.RenderString(records)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, page)
	return err
}

// RenderString is Render returning the page as a string.
func (tm *TemplateManager) RenderString(records []animals.Record) (string, error) {
	page, found := Assemble(tm.page, tm.layout.Render(records, tm.config.EscapeHTML), tm.config.placeholder())
	if !found {
		if tm.config.StrictPlaceholder {
			return "", fmt.Errorf("%w: %s", ErrPlaceholderMissing, tm.templatePath)
		}
		tm.logger.Warn("Placeholder not found, writing template unchanged", "placeholder", tm.config.placeholder())
	}
	return page, nil
}

// WritePage renders records and atomically replaces the file at path with
// the result. On any error the existing file is left as it was.
func (tm *TemplateManager) WritePage(path string, records []animals.Record) error {
	page, err := tm.RenderString(records)
	if err != nil {
		return err
	}
	if err = atomic.WriteFile(path, strings.NewReader(page)); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	tm.logger.Info("Wrote page", "path", path, "cards", len(records), "bytes", len(page))
	return nil
}

// GetConfig returns a copy of the current configuration.
func (tm *TemplateManager) GetConfig() TemplateConfig {
	return *tm.config
}

// GetLayout returns a copy of the resolved card layout.
func (tm *TemplateManager) GetLayout() Layout {
	return append(Layout(nil), tm.layout...)
}

// GetTemplatePath returns the path the page template is loaded from.
func (tm *TemplateManager) GetTemplatePath() string {
	return tm.templatePath
}
