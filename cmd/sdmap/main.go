package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ecomapper/sdmap/internal/server"
)

// Options defines all CLI flags and env vars for the sdmap server.
// Flags: --host, --port, --data-dir, --config
// Env vars: SERVICE_HOST, SERVICE_PORT, SERVICE_DATA_DIR, SERVICE_CONFIG
type Options struct {
	Host    string `doc:"Host to bind to" default:"0.0.0.0"`
	Port    int    `doc:"Port to listen on" short:"p" default:"8086"`
	DataDir string `doc:"Directory with the raster export and training database" default:".data"`
	Config  string `doc:"Optional YAML settings file"`
}

func serverConfig(opts *Options) server.Config {
	return server.Config{
		Host:       opts.Host,
		Port:       fmt.Sprintf("%d", opts.Port),
		DataDir:    opts.DataDir,
		ConfigFile: opts.Config,
	}
}

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, opts *Options) {
		hooks.OnStart(func() {
			srv, err := server.New(serverConfig(opts))
			if err != nil {
				log.Fatalf("Startup error: %v", err)
			}
			defer srv.Close()

			addr := fmt.Sprintf("%s:%d", opts.Host, opts.Port)
			displayHost := opts.Host
			if displayHost == "0.0.0.0" {
				displayHost = "localhost"
			}
			baseURL := fmt.Sprintf("http://%s:%d", displayHost, opts.Port)

			fmt.Println()
			fmt.Printf("sdmap server starting...\n")
			fmt.Printf("  Server:  %s\n", baseURL)
			fmt.Printf("  Data:    %s\n", opts.DataDir)
			fmt.Println()
			fmt.Printf("  Viewer:  %s/viewer\n", baseURL)
			fmt.Printf("  Map:     %s/map\n", baseURL)
			fmt.Printf("  Docs:    %s/docs\n", baseURL)
			fmt.Println()

			if err := http.ListenAndServe(addr, srv); err != nil {
				log.Fatalf("Server error: %v", err)
			}
		})
	})

	cli.Root().Use = "sdmap"
	cli.Root().Short = "Interactive map renderer for species distribution model output"
	cli.Root().Version = "0.1.0"

	// render subcommand: write the map document to a file
	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render the map document to an HTML file",
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, opts *Options) {
			model, err := server.LoadModel(serverConfig(opts))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading model data: %v\n", err)
				os.Exit(1)
			}

			out, _ := cmd.Flags().GetString("output")
			band, _ := cmd.Flags().GetInt("band")

			f, err := os.Create(out)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", out, err)
				os.Exit(1)
			}
			defer f.Close()

			if err := model.RenderMap(f, band); err != nil {
				fmt.Fprintf(os.Stderr, "Error rendering map: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Map written to %s\n", out)
		}),
	}
	renderCmd.Flags().StringP("output", "o", "map.html", "Output HTML file")
	renderCmd.Flags().Int("band", 0, "1-based band index (0 uses the configured default)")
	cli.Root().AddCommand(renderCmd)

	// spec subcommand: export OpenAPI spec
	specCmd := &cobra.Command{
		Use:   "spec",
		Short: "Export OpenAPI spec (YAML)",
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, opts *Options) {
			srv, err := server.New(serverConfig(opts))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			defer srv.Close()

			output, err := yaml.Marshal(srv.OpenAPI())
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error marshaling spec: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(output))
		}),
	}
	cli.Root().AddCommand(specCmd)

	cli.Run()
}
