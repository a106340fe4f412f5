package distro

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"google.golang.org/grpc/grpclog"

	"github.com/pysugar/cisample/errors"
	"github.com/pysugar/cisample/http/extensions"
	"github.com/pysugar/cisample/http/server"
	"github.com/pysugar/cisample/platform"
	"github.com/pysugar/cisample/task"
)

var serveCmd = newServeCmd()

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   `serve [-p 3000]`,
		Short: "Start the greeting server",
		Long: `
Start the greeting server. Every request is answered with "Hello from CI sample app".

Start on $PORT (default 3000): cisample serve
Start on a given port: cisample serve --port=8080
Expose metrics and health on a second port: cisample serve --admin-port=9090
`,
		RunE:         RunServe,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("port", "p", platform.GetPortString(), "listen port, defaults to $PORT or 3000")
	cmd.Flags().String("host", platform.GetHost(), "listen host, empty for all interfaces")
	cmd.Flags().Int("admin-port", platform.GetAdminPort(), "metrics and health port, 0 disables the admin listener")
	cmd.Flags().Bool("proxy-protocol", false, "accept PROXY protocol headers on the listen port")
	cmd.Flags().Duration("shutdown-timeout", 10*time.Second, "time to wait for in-flight requests on shutdown")
	cmd.Flags().BoolP("verbose", "V", platform.GetVerbose(), "Verbose mode")
	return cmd
}

func RunServe(cmd *cobra.Command, args []string) error {
	rawPort, _ := cmd.Flags().GetString("port")
	host, _ := cmd.Flags().GetString("host")
	adminPort, _ := cmd.Flags().GetInt("admin-port")
	proxyProtocol, _ := cmd.Flags().GetBool("proxy-protocol")
	shutdownTimeout, _ := cmd.Flags().GetDuration("shutdown-timeout")
	verbose, _ := cmd.Flags().GetBool("verbose")

	port, err := server.ParsePort(rawPort)
	if err != nil {
		return err
	}

	if verbose {
		grpclog.SetLoggerV2(grpclog.NewLoggerV2(os.Stdout, os.Stdout, os.Stderr))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := extensions.NewMetrics(registry)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Host:          host,
		Port:          port,
		ProxyProtocol: proxyProtocol,
		Verbose:       verbose,
	}, server.WithMetrics(metrics))
	if err := srv.Listen(); err != nil {
		return err
	}

	tasks := []func() error{srv.Serve}

	var admin *server.Admin
	if adminPort > 0 {
		admin = server.NewAdmin(net.JoinHostPort(host, strconv.Itoa(adminPort)), registry, verbose)
		if err := admin.Listen(); err != nil {
			_ = srv.Close()
			return err
		}
		tasks = append(tasks, admin.Serve)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := task.Run(ctx, tasks...)
	if errors.Is(runErr, context.Canceled) {
		log.Printf("Received shutdown signal, stopping server")
		runErr = nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var adminErr error
	if admin != nil {
		adminErr = admin.Shutdown(shutdownCtx)
	}
	if err := errors.Multi(errors.ErrShutdown, runErr, srv.Shutdown(shutdownCtx), adminErr); err != nil {
		return err
	}
	log.Printf("Server stopped")
	return nil
}
