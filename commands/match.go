package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"csssel/config"
	"csssel/match"
	"csssel/recipe"
	"csssel/state"
)

// Match builds selectors described by recipe and runs them against HTML
// document.
func Match(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("match")

	src, page := cmd.Args().Get(0), cmd.Args().Get(1)
	if len(src) == 0 || len(page) == 0 {
		return errors.New("both recipe and html document must be specified")
	}

	format, err := outputFormat(cmd, env)
	if err != nil {
		return err
	}
	if format == config.OutputFmtCss {
		return fmt.Errorf("output format '%s' is not supported for match results", format)
	}
	nodes := cmd.Bool("nodes")
	if !cmd.IsSet("nodes") && env.Cfg != nil {
		nodes = env.Cfg.Output.Nodes
	}

	_, named, buildErr := loadAndBuild(env, log, src)
	if named == nil && buildErr != nil {
		return buildErr
	}
	if sortRequested(cmd, env) {
		recipe.SortNamed(named)
	}

	f, err := os.Open(page)
	if err != nil {
		return fmt.Errorf("unable to open html document: %w", err)
	}
	defer f.Close()

	doc, err := match.NewDocument(f, log)
	if err != nil {
		return err
	}
	results, matchErr := doc.MatchAll(named)
	for _, e := range multierr.Errors(matchErr) {
		log.Warn("Unable to match selector", zap.Error(e))
	}

	out, dst, err := openDestination(cmd.Args().Get(2))
	if err != nil {
		return err
	}
	defer func() {
		if er := out.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close '%s': %w", dst, er))
		}
	}()

	if err := writeMatched(out, results, format, nodes); err != nil {
		return fmt.Errorf("unable to write match results: %w", err)
	}
	if failed := multierr.Combine(buildErr, matchErr); failed != nil {
		return fmt.Errorf("%d selectors failed: %w", len(multierr.Errors(failed)), failed)
	}
	return nil
}
