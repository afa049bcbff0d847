package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/satlab/incsat/internal/parsers"
	"github.com/satlab/incsat/sat"
)

var log = logrus.New()

var (
	flagTimeout    time.Duration
	flagEnumerate  bool
	flagMaxModels  int
	flagGzipped    bool
	flagCPUProfile bool
	flagMemProfile bool
)

var rootCmd = &cobra.Command{
	Use:   "incsat <instance.cnf>",
	Short: "Incremental CDCL SAT solver",
	Long: "incsat solves or enumerates the models of a DIMACS CNF instance " +
		"using an incremental CDCL solver.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return run(args[0])
	},
}

func init() {
	rootCmd.Flags().DurationVar(&flagTimeout, "timeout", -1, "wall-clock budget (negative = unbounded)")
	rootCmd.Flags().BoolVar(&flagEnumerate, "all", false, "enumerate all models instead of stopping at the first")
	rootCmd.Flags().IntVar(&flagMaxModels, "max_models", 0, "stop enumeration after this many models (0 = no limit)")
	rootCmd.Flags().BoolVar(&flagGzipped, "gzip", false, "treat the instance file as gzip-compressed")
	rootCmd.Flags().BoolVar(&flagCPUProfile, "cpuprof", false, "save pprof CPU profile in cpuprof")
	rootCmd.Flags().BoolVar(&flagMemProfile, "memprof", false, "save pprof memory profile in memprof")
}

func run(instanceFile string) error {
	if flagCPUProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			return err
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	s := sat.NewDefaultSolver()
	defer s.Close()

	if err := parsers.LoadDIMACS(instanceFile, flagGzipped, s); err != nil {
		return fmt.Errorf("could not parse instance: %w", err)
	}

	fmt.Printf("c variables:  %d\n", s.NumVariables())
	fmt.Printf("c clauses:    %d\n", s.NumConstraints())

	start := time.Now()
	if flagEnumerate {
		count, reason, err := s.Enumerate(flagTimeout, false, flagMaxModels)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)
		fmt.Printf("c time (sec): %f\n", elapsed.Seconds())
		fmt.Printf("c models:     %d\n", count)
		fmt.Printf("c status:     %s\n", reason)
	} else {
		result, err := s.Solve(flagTimeout)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)
		fmt.Printf("c time (sec): %f\n", elapsed.Seconds())
		fmt.Printf("c conflicts:  %d (%.2f /sec)\n", s.TotalConflicts, float64(s.TotalConflicts)/elapsed.Seconds())
		fmt.Printf("c status:     %s\n", result)

		if result == sat.ResultSat {
			model, err := s.Model()
			if err != nil {
				return err
			}
			fmt.Print("v")
			for _, l := range model {
				fmt.Printf(" %d", l)
			}
			fmt.Println(" 0")
		}
	}

	log.WithFields(logrus.Fields{
		"iterations": s.TotalIterations,
		"conflicts":  s.TotalConflicts,
		"restarts":   s.TotalRestarts,
		"learnts":    s.NumLearnts(),
	}).Info("search finished")

	if flagMemProfile {
		f, err := os.Create("memprof")
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return err
		}
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
