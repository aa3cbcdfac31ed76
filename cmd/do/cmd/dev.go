package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

// devOptions configures the air hot-reload loop around cmd/server.
type devOptions struct {
	appPort   int
	proxyPort int
}

func DevCmd() *cobra.Command {
	opts := devOptions{}

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Run the server under air with live reload",
		Long: `Rebuilds the server when Go, templ, CSS, YAML or SQL files change.
Blog posts under content/ are not rebuild triggers: the server watches
them itself and reloads posts in place.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDev(opts)
		},
	}
	cmd.Flags().IntVar(&opts.appPort, "port", 8090, "port the server listens on")
	cmd.Flags().IntVar(&opts.proxyPort, "proxy-port", 8080, "port of air's live-reload proxy")
	return cmd
}

func runDev(opts devOptions) error {
	airPath, err := exec.LookPath("air")
	if err != nil {
		fmt.Println("Missing binary: air")
		fmt.Println("Install with:")
		fmt.Println("  go install github.com/air-verse/air@latest")
		return fmt.Errorf("air not found")
	}

	fmt.Println("Building bin/do...")
	build := exec.Command("go", "build", "-o", "bin/do", "./cmd/do")
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	err = build.Run()
	if err != nil {
		return fmt.Errorf("failed to build do: %w", err)
	}

	fmt.Printf("Serving on http://localhost:%d (live reload)\n", opts.proxyPort)
	return syscall.Exec(airPath, append([]string{"air"}, airArgs(opts)...), devEnv(os.Environ(), opts))
}

// airArgs configures air entirely from flags, so the repo needs no .air.toml.
func airArgs(opts devOptions) []string {
	excludeDirs := []string{"bin", "tmp", "data", "dist", "node_modules", "content", "_examples"}
	excludeFiles := []string{"_templ.go$", "_test.go$", `output\.css$`}
	includeExt := []string{"go", "templ", "css", "yaml", "sql"}

	return []string{
		"-c", "/dev/null",
		"-root", ".",
		"-build.cmd", "./bin/do gen && go build -o ./tmp/main ./cmd/server",
		"-build.bin", "./tmp/main",
		"-build.delay", "100",
		"-build.exclude_dir", strings.Join(excludeDirs, ","),
		"-build.exclude_regex", strings.Join(excludeFiles, "|"),
		"-build.include_ext", strings.Join(includeExt, ","),
		"-build.kill_delay", "500ms",
		"-build.send_interrupt", "true",
		"-proxy.enabled", "true",
		"-proxy.proxy_port", strconv.Itoa(opts.proxyPort),
		"-proxy.app_port", strconv.Itoa(opts.appPort),
	}
}

// devEnv pins the server's port and turns on the content watcher, replacing
// any values inherited from the shell.
func devEnv(base []string, opts devOptions) []string {
	set := map[string]string{
		"PORT":          strconv.Itoa(opts.appPort),
		"WATCH_CONTENT": "true",
	}

	env := make([]string, 0, len(base)+len(set))
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if _, ok := set[key]; ok {
			continue
		}
		env = append(env, kv)
	}
	for _, key := range []string{"PORT", "WATCH_CONTENT"} {
		env = append(env, key+"="+set[key])
	}
	return env
}
