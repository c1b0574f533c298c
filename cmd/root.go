package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/medireach/storefront/internal/addressbook"
	"github.com/medireach/storefront/internal/api"
	"github.com/medireach/storefront/internal/checkout"
	"github.com/medireach/storefront/internal/factories"
	"github.com/medireach/storefront/internal/logger"
	"github.com/medireach/storefront/internal/models"
	"github.com/medireach/storefront/internal/output"
	"github.com/medireach/storefront/internal/session"
	"github.com/medireach/storefront/internal/storage"
	"github.com/medireach/storefront/internal/tracking"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "medireach",
	Short: "Pharmacy delivery storefront client",
	Long: `medireach is the Medi-Reach storefront client: browse the medicine
catalog, manage saved delivery addresses, place orders, and track deliveries
with a simulated courier feed.`,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.json)")
	rootCmd.PersistentFlags().Bool("demo", false, "Run against seeded demo data instead of the backend")
	rootCmd.PersistentFlags().String("backend-url", "http://localhost:5000/api", "Backend API base URL")
	rootCmd.PersistentFlags().String("data-file", "medireach.json", "Path of the local storefront state file")
	rootCmd.PersistentFlags().String("output-type", "console", "Tracking event sink: console, json, kafka, postgres, parquet")
	rootCmd.PersistentFlags().Bool("kafka-enabled", false, "Enable Kafka output")
	rootCmd.PersistentFlags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")

	viper.BindPFlag("demo_mode", rootCmd.PersistentFlags().Lookup("demo"))
	viper.BindPFlag("backend_url", rootCmd.PersistentFlags().Lookup("backend-url"))
	viper.BindPFlag("data_file", rootCmd.PersistentFlags().Lookup("data-file"))
	viper.BindPFlag("output_type", rootCmd.PersistentFlags().Lookup("output-type"))
	viper.BindPFlag("kafka_enabled", rootCmd.PersistentFlags().Lookup("kafka-enabled"))
	viper.BindPFlag("kafka_broker_list", rootCmd.PersistentFlags().Lookup("kafka-broker-list"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
	viper.AutomaticEnv()
}

// app wires the storefront components together for one command invocation.
type app struct {
	cfg      *models.Config
	log      *zap.Logger
	kv       storage.KV
	session  *session.Store
	client   *api.Client
	book     *addressbook.Store
	binding  *addressbook.Binding
	flow     *checkout.Flow
	engine   *tracking.Engine
	resolver *tracking.Resolver
	demo     *factories.DemoStore
	sink     output.Destination
}

func loadApp() (*app, error) {
	cfg, err := models.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("error building logger: %w", err)
	}

	sink, err := output.NewDestination(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating tracking sink: %w", err)
	}

	kv := storage.NewFileStore(cfg.DataFile)
	sess := session.NewStore(kv)
	binding := addressbook.NewBinding(kv)

	a := &app{
		cfg:     cfg,
		log:     log,
		kv:      kv,
		session: sess,
		client:  api.NewClient(cfg, sess, log),
		book:    addressbook.NewStore(kv),
		binding: binding,
		flow:    checkout.NewFlow(binding, sink, rand.New(rand.NewSource(time.Now().UnixNano())), log),
		engine:  tracking.NewEngine(cfg, sink, log),
		sink:    sink,
	}

	if cfg.DemoMode {
		a.demo = factories.NewDemoStore(cfg.DemoSeed)
		a.resolver = tracking.NewResolver(a.demo, binding)
	} else {
		a.resolver = tracking.NewResolver(a.client, binding)
	}
	return a, nil
}

func (a *app) close() {
	if err := a.sink.Close(); err != nil {
		a.log.Warn("failed to close tracking sink", zap.Error(err))
	}
	_ = a.log.Sync()
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
