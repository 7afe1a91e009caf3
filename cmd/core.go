package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"

	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"github.com/spf13/cobra"
	"github.com/syncpointhq/src2dw/config"
	"github.com/syncpointhq/src2dw/pkg/apiservice"
	"github.com/syncpointhq/src2dw/pkg/coreinterfaces"
	"github.com/syncpointhq/src2dw/pkg/metrics"
	"github.com/syncpointhq/src2dw/replicate"
	"github.com/syncpointhq/src2dw/state"
	"github.com/thediveo/enumflag"
	"go.uber.org/zap"
)

type RunMode enumflag.Flag

const (
	RunModeSync RunMode = iota
	RunModeDebug
	RunModeSchemaOnly
)

var RunModeIds = map[RunMode][]string{
	RunModeSync:       {"sync"},
	RunModeDebug:      {"debug"},
	RunModeSchemaOnly: {"schema-only"},
}

// runFlags are the flags every connector command shares.
type runFlags struct {
	configurationFile string
	stateFile         string
	apiAddr           string
	startServer       bool
	logFile           string
	logLevel          string

	mode RunMode
}

func (flags *runFlags) register(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolP("help", "", false, "help for this command")
	cmd.Flags().Var(enumflag.New(&flags.mode, "mode", RunModeIds, enumflag.EnumCaseInsensitive),
		"mode", "run mode: sync, debug, schema-only")
	cmd.Flags().StringVarP(&flags.configurationFile, "configuration", "c", "",
		"path of the configuration.json holding connector secrets and parameters")
	cmd.Flags().StringVar(&flags.stateFile, "state", "state.json",
		"path of the state.json holding the checkpoint cursor")
	cmd.Flags().StringVar(&flags.apiAddr, "api.addr", "0.0.0.0:8185", "API service address")
	cmd.Flags().BoolVar(&flags.startServer, "api.start", false, "start the API service while syncing")
	cmd.Flags().StringVar(&flags.logFile, "log.file", "", "log file path")
	cmd.Flags().StringVar(&flags.logLevel, "log.level", "info", "log level")
}

func (flags *runFlags) initLogger() {
	logger, props, err := log.InitLogger(&log.Config{
		Level: flags.logLevel,
		File:  log.FileLogConfig{Filename: flags.logFile},
	})
	if err != nil {
		panic(err)
	}
	log.ReplaceGlobals(logger, props)
}

// newConnectorCmd builds the cobra command that runs one connector.
func newConnectorCmd(name, short string, connector coreinterfaces.Connector) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   name,
		Short: short,
		Run: func(_ *cobra.Command, _ []string) {
			flags.initLogger()
			runWithServer(flags.startServer && flags.mode == RunModeSync, flags.apiAddr, func() {
				if err := runConnector(name, connector, flags); err != nil {
					apiservice.GlobalInstance.APIInfo.SetGlobalFatalError(err)
					log.Error("Error running connector", zap.String("connector", name), zap.Error(err))
				}
			})
		},
	}

	flags.register(cmd)
	return cmd
}

// runConnector performs one pass in the selected mode.
func runConnector(name string, connector coreinterfaces.Connector, flags *runFlags) error {
	conf := config.Configuration{}
	if flags.configurationFile != "" {
		var err error
		if conf, err = config.LoadFile(flags.configurationFile); err != nil {
			return errors.Trace(err)
		}
	}

	store := state.NewFileStore(flags.stateFile)
	sink := replicate.NewDebugSink()
	sess := replicate.NewSession(name, connector, conf, store, sink)

	if flags.mode == RunModeSchemaOnly {
		tables, err := sess.ResolveSchema()
		if err != nil {
			return errors.Trace(err)
		}
		out, err := json.MarshalIndent(tables, "", "    ")
		if err != nil {
			return errors.Trace(err)
		}
		fmt.Println(string(out))
		return nil
	}

	tables, err := sess.ResolveSchema()
	if err != nil {
		return errors.Trace(err)
	}
	for _, table := range tables {
		apiservice.GlobalInstance.APIInfo.SetTableStage(table.Table, apiservice.TableStageExtracting)
	}

	if err := sess.Run(context.Background()); err != nil {
		for _, table := range tables {
			apiservice.GlobalInstance.APIInfo.SetTableFatalError(table.Table, err)
			metrics.AddCounter(metrics.ErrorCounter, 1, table.Table)
		}
		return errors.Trace(err)
	}

	for _, table := range tables {
		apiservice.GlobalInstance.APIInfo.SetTableStage(table.Table, apiservice.TableStageFinished)
	}

	if flags.mode == RunModeDebug {
		sink.Render(os.Stdout)
	}
	return nil
}

func runWithServer(startServer bool, addr string, body func()) {
	if !startServer {
		body()
		return
	}

	l, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal("Start API service failed", zap.Error(err))
		return
	}

	log.Info("API service started", zap.String("address", addr))

	go func() {
		body()
	}()

	apiservice.GlobalInstance.Serve(l)
}
