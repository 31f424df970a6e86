package commands

import (
	"context"
	"fmt"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"csssel/config"
	"csssel/state"
)

// DumpConfig outputs either default or actual configuration.
func DumpConfig(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	var (
		data []byte
		kind string
	)
	if cmd.Bool("default") || env.Cfg == nil {
		kind = "default"
		data, err = config.Prepare()
	} else {
		kind = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	out, dst, err := openDestination(cmd.Args().Get(0))
	if err != nil {
		return err
	}
	defer out.Close()

	env.Log.Info("Outputing configuration", zap.String("state", kind), zap.String("file", dst))

	if _, err = out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
