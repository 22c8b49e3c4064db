package lsp

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/conduit-lang/propls/internal/values"
	"github.com/conduit-lang/propls/internal/watch"
)

// loadRules returns the built-in values rules, merged with the rules of path
// when set.
func loadRules(path string) (*values.RulesManager, error) {
	rules := values.Default()
	if path == "" {
		return rules, nil
	}
	custom, err := values.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load values rules: %w", err)
	}
	return rules.Merge(custom), nil
}

// startWatcher reloads catalog and rules files when they change and refreshes
// the diagnostics of open documents.
func (s *Server) startWatcher(ctx context.Context) error {
	files := append([]string(nil), s.opts.CatalogPaths...)
	if s.opts.RulesPath != "" {
		files = append(files, s.opts.RulesPath)
	}
	if len(files) == 0 {
		return nil
	}

	watcher, err := watch.NewFileWatcher(files, watch.DefaultDebounce, s.logger.Named("watch"), func(changed []string) error {
		return s.reload(ctx, changed)
	})
	if err != nil {
		return err
	}
	if err := watcher.Start(); err != nil {
		_ = watcher.Stop()
		return err
	}
	s.watcher = watcher
	return nil
}

// reload drops the cached state of the changed files. A rules file that fails
// to load keeps the previous rules; the rest of the batch is still applied and
// the error returned afterwards.
func (s *Server) reload(ctx context.Context, changed []string) error {
	var rulesErr error
	for _, path := range changed {
		if path == s.opts.RulesPath {
			rules, err := loadRules(path)
			if err != nil {
				s.logger.Warn("keeping previous values rules", zap.String("path", path), zap.Error(err))
				rulesErr = err
				continue
			}
			s.api.SetRules(rules)
			s.logger.Info("values rules reloaded", zap.String("path", path))
			continue
		}
		s.store.Invalidate(path)
		s.logger.Info("catalog reloaded", zap.String("path", path))
	}

	s.republishDiagnostics(ctx)
	return rulesErr
}
