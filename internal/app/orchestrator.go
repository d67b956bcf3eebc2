package app

import (
	"context"
	"fmt"
	"os"

	"github.com/quantmind-br/unpakr/internal/config"
	"github.com/quantmind-br/unpakr/internal/domain"
	"github.com/quantmind-br/unpakr/internal/extract"
	"github.com/quantmind-br/unpakr/internal/utils"
	"github.com/schollz/progressbar/v3"
)

// Orchestrator wires configuration, logging and the extraction service
// behind the CLI commands.
type Orchestrator struct {
	config  *config.Config
	logger  *utils.Logger
	service *extract.Service
	bar     *progressbar.ProgressBar
}

// OrchestratorOptions contains options for creating an orchestrator
type OrchestratorOptions struct {
	Config   *config.Config
	Verbose  bool
	Progress bool
}

// NewOrchestrator creates a new orchestrator with the given configuration
func NewOrchestrator(opts OrchestratorOptions) (*Orchestrator, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logLevel := cfg.Logging.Level
	logFormat := cfg.Logging.Format
	if opts.Verbose {
		logLevel = "debug"
	}

	logger := utils.NewLogger(utils.LoggerOptions{
		Level:   logLevel,
		Format:  logFormat,
		Verbose: opts.Verbose,
	})

	o := &Orchestrator{
		config: cfg,
		logger: logger,
	}

	// Progress output and verbose logging would fight over stderr
	var onExtract func(string)
	if opts.Progress && !opts.Verbose {
		o.bar = utils.NewProgressBar(-1, utils.DescExtracting)
		onExtract = func(string) {
			_ = o.bar.Add(1)
		}
	}

	o.service = extract.NewService(extract.ServiceOptions{
		Logger:    logger,
		OnExtract: onExtract,
	})

	return o, nil
}

// ExtractFile runs the top-level dispatch for a single archive file,
// recursing into the result when configured to.
func (o *Orchestrator) ExtractFile(ctx context.Context, path string) (domain.WalkStats, error) {
	if !utils.PathExists(path) {
		return domain.WalkStats{}, domain.NewExtractError(domain.OpOpen, path, domain.ErrNotFound)
	}

	defer o.finishBar()
	return o.service.Extract(ctx, path, domain.Options{
		Dest:        utils.ExpandPath(o.config.Output.Directory),
		Recursive:   o.config.Extract.Recursive,
		Delete:      o.config.Extract.Delete,
		CreateDir:   o.config.Extract.CreateDir,
		GzCreateDir: o.config.Extract.GzCreateDir,
		MaxDepth:    o.config.Extract.MaxDepth,
	})
}

// WalkDir runs the tree walker over an existing directory
func (o *Orchestrator) WalkDir(ctx context.Context, dir string) (domain.WalkStats, error) {
	if !utils.IsDir(dir) {
		return domain.WalkStats{}, fmt.Errorf("not a directory: %s", dir)
	}

	defer o.finishBar()
	return o.service.WalkTree(ctx, dir, domain.WalkOptions{
		Delete:      o.config.Extract.Delete,
		CreateDir:   o.config.Extract.CreateDir,
		GzCreateDir: o.config.Extract.GzCreateDir,
		MaxDepth:    o.config.Extract.MaxDepth,
	})
}

func (o *Orchestrator) finishBar() {
	if o.bar != nil {
		_ = o.bar.Finish()
		fmt.Fprintln(os.Stderr)
	}
}
