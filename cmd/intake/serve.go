package main

import (
	"encoding/base64"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/ledscape/intake"
	httpadapter "github.com/ledscape/intake/pkg/adapters/http"
	"github.com/ledscape/intake/pkg/adapters/logsink"
	"github.com/ledscape/intake/pkg/adapters/memory"
	redisadapter "github.com/ledscape/intake/pkg/adapters/redis"
	"github.com/ledscape/intake/pkg/persistence/middleware"
	"github.com/ledscape/intake/pkg/ports"
)

// sessionKeyEnv names the environment variable holding a base64-encoded
// 32-byte key. When set, sessions are encrypted at rest.
const sessionKeyEnv = "INTAKE_SESSION_KEY"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the chat webhook server",
	Long: `Starts the intake assistant as an HTTP webhook. Sessions live in memory by
default; point --redis at a server to share them across instances.`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")
		redisAddr, _ := cmd.Flags().GetString("redis")
		redisPassword, _ := cmd.Flags().GetString("redis-password")
		redisDB, _ := cmd.Flags().GetInt("redis-db")
		sessionTTL, _ := cmd.Flags().GetDuration("session-ttl")
		maskPII, _ := cmd.Flags().GetBool("mask-pii")

		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		logger := newLogger(cmd)

		opts := []intake.Option{
			intake.WithConfig(cfg),
			intake.WithLogger(logger),
			intake.WithRecorder(logsink.NewRecorder(logger)),
			intake.WithNotifier(logsink.NewNotifier(logger)),
			intake.WithMetrics(prometheus.DefaultRegisterer),
		}

		var store ports.SessionStore = memory.NewStore()
		if redisAddr != "" {
			client := backend.NewClient(&backend.Options{
				Addr:     redisAddr,
				Password: redisPassword,
				DB:       redisDB,
			})
			var storeOpts []redisadapter.Option
			if sessionTTL > 0 {
				storeOpts = append(storeOpts, redisadapter.WithTTL(sessionTTL))
			}
			store = redisadapter.NewFromClient(client, storeOpts...)
			opts = append(opts, intake.WithDistributedLocker(redisadapter.NewLocker(client, "intake:lock:")))
			logger.Info("using redis session store", "addr", redisAddr, "ttl", sessionTTL)
		}

		var mws []middleware.Middleware
		if maskPII {
			mws = append(mws, middleware.NewPIIMiddleware())
		}
		if encoded := os.Getenv(sessionKeyEnv); encoded != "" {
			key, err := base64.StdEncoding.DecodeString(encoded)
			if err != nil || len(key) != 32 {
				fmt.Printf("Error: %s must be a base64-encoded 32-byte key\n", sessionKeyEnv)
				os.Exit(1)
			}
			mws = append(mws, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key}))
			logger.Info("session encryption enabled")
		}
		opts = append(opts, intake.WithStore(middleware.Chain(store, mws...)))

		assistant, err := intake.New(opts...)
		if err != nil {
			fmt.Printf("Error initializing intake: %v\n", err)
			os.Exit(1)
		}

		handler := httpadapter.NewHandler(assistant.Router(), assistant.Sessions(), httpadapter.WithLogger(logger))
		handler.Handle("/metrics", promhttp.Handler())

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("starting intake server", "addr", ":"+port)
		if err := httpadapter.ListenAndServe(ctx, ":"+port, handler, logger); err != nil {
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address (host:port) for shared session storage")
	serveCmd.Flags().String("redis-password", "", "Redis password")
	serveCmd.Flags().Int("redis-db", 0, "Redis database number")
	serveCmd.Flags().Duration("session-ttl", 24*time.Hour, "Idle session expiry when using Redis (0 disables)")
	serveCmd.Flags().Bool("mask-pii", false, "Mask contact details in finished sessions at rest")
}
