package util

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hmmnet/hmmnet/lib/hits"
	"github.com/hmmnet/hmmnet/lib/pipeline"
	"github.com/hmmnet/hmmnet/rpc/common"
	"github.com/hmmnet/hmmnet/rpc/transport"
	"github.com/hmmnet/hmmnet/rpc/transport/tcp"
	"github.com/hmmnet/hmmnet/rpc/transport/unix"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupClientFlags adds common daemon connection flags to a command
func SetupClientFlags(cmd *cobra.Command) {
	key := "endpoint"
	cmd.PersistentFlags().String(key, common.DefaultEndpoint, WrapString("The address of the search daemon"))

	key = "timeout"
	cmd.PersistentFlags().Int(key, 30, WrapString("The timeout in seconds for each blocking read or write"))

	key = "transport"
	cmd.PersistentFlags().String(key, "tcp", WrapString("The transport to use: tcp or unix"))

	key = "transport-write-buffer"
	cmd.PersistentFlags().Int(key, 0, WrapString("The size of the socket write buffer in KB (0 leaves the OS default)"))

	key = "transport-read-buffer"
	cmd.PersistentFlags().Int(key, 0, WrapString("The size of the socket read buffer in KB (0 leaves the OS default)"))

	key = "transport-tcp-nodelay"
	cmd.PersistentFlags().Bool(key, true, WrapString("Whether to enable TCP_NODELAY (only for tcp)"))

	key = "transport-tcp-keepalive"
	cmd.PersistentFlags().Int(key, 0, WrapString("The keepalive interval in seconds (only for tcp)"))

	key = "transport-tcp-linger"
	cmd.PersistentFlags().Int(key, 0, WrapString("The linger time in seconds (only for tcp)"))

	key = "opt"
	cmd.PersistentFlags().StringArray(key, nil, WrapString("A pipeline option as key=value (repeatable), e.g. --opt E=0.001 --opt nobias"))

	key = "export"
	cmd.PersistentFlags().String(key, "", WrapString("Optional path to export the results to (msgpack)"))

	key = "compress"
	cmd.PersistentFlags().Bool(key, false, WrapString("Compress the exported results with zstd"))

	key = "no-history"
	cmd.PersistentFlags().Bool(key, false, WrapString("Do not record this search in the local history"))
}

// InitClientConfig initializes configuration from environment variables
func InitClientConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("hmmnet")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// GetClientConfig reads client configuration from viper
func GetClientConfig() common.ClientConfig {
	conf := common.DefaultClientConfig()
	conf.Endpoint = viper.GetString("endpoint")
	conf.TimeoutSecond = viper.GetInt("timeout")
	conf.Socket = common.SocketConf{
		WriteBufferSize: viper.GetInt("transport-write-buffer") * 1024,
		ReadBufferSize:  viper.GetInt("transport-read-buffer") * 1024,
	}
	conf.TCP = common.TCPConf{
		TCPNoDelay:      viper.GetBool("transport-tcp-nodelay"),
		TCPKeepAliveSec: viper.GetInt("transport-tcp-keepalive"),
		TCPLingerSec:    viper.GetInt("transport-tcp-linger"),
	}
	return conf
}

// GetTransport creates a transport based on configuration
func GetTransport() (transport.IClientTransport, error) {
	switch viper.GetString("transport") {
	case "tcp", "":
		return tcp.NewTCPClientTransport(), nil
	case "unix":
		return unix.NewUnixClientTransport(), nil
	default:
		return nil, fmt.Errorf("invalid transport %s", viper.GetString("transport"))
	}
}

// GetPipelineConfig builds the pipeline configuration from the repeatable
// --opt key=value flags.
func GetPipelineConfig() (pipeline.Config, error) {
	cfg := pipeline.DefaultConfig()
	for _, opt := range viper.GetStringSlice("opt") {
		key, value, _ := strings.Cut(opt, "=")
		if err := cfg.Set(key, value); err != nil {
			return cfg, err
		}
	}
	return cfg, cfg.Validate()
}

// DefaultHistoryPath returns the location of the local search history.
func DefaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".hmmnet", "history.db")
	}
	return filepath.Join(home, ".hmmnet", "history.db")
}

// PrintHits renders the reported hits of a result collection as a table.
func PrintHits(w io.Writer, th *hits.TopHits) {
	fmt.Fprintf(w, "Searched %d sequences, %d models (Z=%g set by %s)\n",
		th.NSeqs, th.NModels, th.Z, th.ZSetBy)
	fmt.Fprintf(w, "Hits: %d total, %d reported, %d included\n\n",
		th.Len(), th.NReported, th.NIncluded)

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TARGET\tSCORE\tBIAS\tE-VALUE\tDOMAINS")
	for _, h := range th.Hits() {
		if !h.Reported() {
			continue
		}
		name := h.Name
		if name == "" {
			name = fmt.Sprintf("#%d", h.SeqIdx)
		}
		fmt.Fprintf(tw, "%s\t%.1f\t%.1f\t%.2g\t%d\n",
			name, h.Score, h.Bias(), h.Evalue, len(h.Domains))
	}
	tw.Flush()
}

// ExportHits writes the result collection to path when set.
func ExportHits(th *hits.TopHits, path string, compress bool) error {
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return th.Write(f, compress)
}
