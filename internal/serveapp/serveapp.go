// internal/serveapp/serveapp.go
package serveapp

import (
	"context"
	"io"
	"net"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"mitoseqfix/internal/appcore"
	"mitoseqfix/internal/clibase"
	"mitoseqfix/internal/logger"
	"mitoseqfix/internal/metrics"
	"mitoseqfix/internal/server"
)

const name = "mitoseqfix-serve"

// Listen opens the service listener; tests replace it.
var Listen = func(addr string) (net.Listener, error) { return net.Listen("tcp", addr) }

type options struct {
	common clibase.Common
}

// RunContext serves the repair API until ctx is cancelled.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	var o options
	cmd := clibase.NewCommand(name+" [flags]", "Serve the repair REST API",
		clibase.Long(name, "sequence repair over HTTP"), stdout, stderr)
	cmd.Example = "  mitoseqfix-serve --addr :8080 --cors-origin http://localhost:3000\n" +
		"  MITOSEQFIX_INFERENCE_BACKEND=http MITOSEQFIX_INFERENCE_URL=http://gpu:9000/predict mitoseqfix-serve"

	fs := cmd.Flags()
	clibase.Register(fs, &o.common)
	o.common.String(fs, "addr", "server.addr", "a", "listen address")
	o.common.StringSlice(fs, "cors-origin", "server.cors_origins", "", "allowed CORS origin (repeatable, '*' for any)")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return run(cmd, &o, stdout)
	}
	cmd.SetContext(parent)
	return clibase.Execute(cmd, argv, stderr)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func run(cmd *cobra.Command, o *options, stdout io.Writer) error {
	if o.common.Version {
		return clibase.PrintVersion(stdout, name)
	}
	cfg, err := o.common.LoadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	log := clibase.NewLogger(cfg.Log, cmd.ErrOrStderr())
	ctx := logger.ContextWithLogger(cmd.Context(), log)

	m := metrics.New()
	rep, err := appcore.NewRepairer(cfg, log, m)
	if err != nil {
		return clibase.Usage(err)
	}

	gin.SetMode(gin.ReleaseMode)
	ln, err := Listen(cfg.Server.Addr)
	if err != nil {
		return err
	}
	log.Info("repair service configured", "backend", cfg.Inference.Backend,
		"window", cfg.Window.Size, "overlap", cfg.Window.Overlap)
	return server.New(cfg.Server, rep, log, m).ServeListener(ctx, ln)
}
