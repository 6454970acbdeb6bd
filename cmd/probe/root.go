package probe

import (
	"encoding/csv"
	"fmt"
	cmdUtil "github.com/ValentinKolb/wlconn/cmd/util"
	"github.com/ValentinKolb/wlconn/lib/display"
	vm "github.com/VictoriaMetrics/metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"os"
	"sort"
	"strconv"
	"time"
)

var (
	ProbeCmd = &cobra.Command{
		Use:   "probe",
		Short: "Measure repeated connect attempts",
		Long: `Run many independent connect attempts against the display and report latency
percentiles and failures per error kind. Every connection is closed right after it is
established. An inherited WAYLAND_SOCKET is ignored, since it can only be adopted once.`,
		Args:    cobra.NoArgs,
		PreRunE: processProbeConfig,
		RunE:    run,
	}
	probeCount   = 1000
	probeThreads = 4
	probeCSV     = ""
)

func init() {
	cmdUtil.SetupDisplayFlags(ProbeCmd)

	key := "count"
	ProbeCmd.Flags().Int(key, 1000, cmdUtil.WrapString("Total number of connect attempts"))
	key = "threads"
	ProbeCmd.Flags().Int(key, 4, cmdUtil.WrapString("Number of goroutines making attempts in parallel"))
	key = "csv"
	ProbeCmd.Flags().String(key, "", cmdUtil.WrapString("Optional path to save every attempt as CSV"))
	key = "metrics"
	ProbeCmd.Flags().Bool(key, false, cmdUtil.WrapString("Print the connect metrics in Prometheus text format afterwards"))
}

func processProbeConfig(_ *cobra.Command, _ []string) error {
	probeCount = viper.GetInt("count")
	probeThreads = viper.GetInt("threads")
	probeCSV = viper.GetString("csv")

	if probeCount < 1 {
		return fmt.Errorf("count must be positive, got %d", probeCount)
	}
	if probeThreads < 1 {
		return fmt.Errorf("threads must be positive, got %d", probeThreads)
	}
	return nil
}

func run(_ *cobra.Command, _ []string) error {
	conf := cmdUtil.LoadDisplayConfig()
	if conf.HasSocket {
		cmdUtil.Logger.Warningf("ignoring inherited %s=%d", display.EnvSocket, conf.Socket)
		conf.HasSocket = false
	}
	name := cmdUtil.DisplayName()

	path, err := display.EndpointPath(conf, name)
	if err != nil {
		return err
	}

	fmt.Printf("Probing %s with %d attempts on %d threads\n\n", path, probeCount, probeThreads)

	result := Run(display.NewConnector(conf), name, probeCount, probeThreads)
	printResult(result)

	if probeCSV != "" {
		if err := writeCSV(probeCSV, result); err != nil {
			return err
		}
		fmt.Printf("\nResults written to %s\n", probeCSV)
	}

	if viper.GetBool("metrics") {
		fmt.Println()
		vm.WritePrometheus(os.Stdout, false)
	}
	return nil
}

func printResult(r *Result) {
	fmt.Printf("%-12s %d\n", "attempts", r.Timer.Count())
	fmt.Printf("%-12s %d\n", "succeeded", r.Succeeded())

	ps := r.Timer.Percentiles([]float64{0.5, 0.9, 0.99})
	fmt.Printf("%-12s %s\n", "min", time.Duration(r.Timer.Min()))
	fmt.Printf("%-12s %s\n", "mean", time.Duration(r.Timer.Mean()))
	fmt.Printf("%-12s %s\n", "p50", time.Duration(ps[0]))
	fmt.Printf("%-12s %s\n", "p90", time.Duration(ps[1]))
	fmt.Printf("%-12s %s\n", "p99", time.Duration(ps[2]))
	fmt.Printf("%-12s %s\n", "max", time.Duration(r.Timer.Max()))

	failures := r.Failures()
	if len(failures) == 0 {
		return
	}

	kinds := make([]display.Kind, 0, len(failures))
	for kind := range failures {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	fmt.Println("\nFailures:")
	for _, kind := range kinds {
		fmt.Printf("  %-38s %d\n", kind, failures[kind])
	}
}

func writeCSV(path string, r *Result) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"attempt", "duration_us", "error_kind"}); err != nil {
		return err
	}

	for i, a := range r.Attempts {
		kind := ""
		if a.Err != nil {
			kind = display.KindOf(a.Err).String()
		}
		row := []string{strconv.Itoa(i), strconv.FormatInt(a.Duration.Microseconds(), 10), kind}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
