// Package commands implements program subcommands.
package commands

import (
	"context"
	"errors"
	"fmt"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"csssel/config"
	"csssel/recipe"
	"csssel/selector"
	"csssel/state"
)

// outputFormat returns format requested on command line or configured one.
func outputFormat(cmd *cli.Command, env *state.LocalEnv) (config.OutputFmt, error) {
	if !cmd.IsSet("format") {
		if env.Cfg != nil {
			return env.Cfg.Output.Format, nil
		}
		return config.OutputFmtText, nil
	}
	return config.ParseOutputFmt(cmd.String("format"))
}

func sortRequested(cmd *cli.Command, env *state.LocalEnv) bool {
	if cmd.IsSet("sort") || env.Cfg == nil {
		return cmd.Bool("sort")
	}
	return env.Cfg.Output.Sort
}

// loadAndBuild reads recipe and builds its selectors. Broken entries are
// logged, the rest is returned together with combined error.
func loadAndBuild(env *state.LocalEnv, log *zap.Logger, path string) (*recipe.Book, []recipe.Named, error) {
	book, err := recipe.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	named, err := book.Build(env.Builder(), log)
	for _, e := range multierr.Errors(err) {
		log.Warn("Unable to build selector", zap.Error(e))
	}
	if env.Debug {
		for _, n := range named {
			log.Debug("Selector structure", zap.String("name", n.Name), zap.String("tree", selector.Dump(n.Selector)))
		}
	}
	return book, named, err
}

// Build builds selectors described by recipe and writes them out.
func Build(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("build")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no recipe has been specified")
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	format, err := outputFormat(cmd, env)
	if err != nil {
		return err
	}

	book, named, buildErr := loadAndBuild(env, log, src)
	if named == nil && buildErr != nil {
		return buildErr
	}
	if sortRequested(cmd, env) {
		recipe.SortNamed(named)
	}

	out, dst, err := openDestination(cmd.Args().Get(1))
	if err != nil {
		return err
	}
	defer func() {
		if er := out.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close '%s': %w", dst, er))
		}
	}()

	log.Info("Writing selectors", zap.Int("count", len(named)), zap.Stringer("format", format), zap.String("file", dst))
	if err := writeBuilt(out, book, named, format); err != nil {
		return fmt.Errorf("unable to write selectors: %w", err)
	}
	if buildErr != nil {
		return fmt.Errorf("%d recipe entries failed: %w", len(multierr.Errors(buildErr)), buildErr)
	}
	return nil
}
