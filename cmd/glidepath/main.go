// Command glidepath runs retirement drawdown projections from a plan file.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"strings"

	"github.com/khoward/glidepath/internal/calculation"
	"github.com/khoward/glidepath/internal/compare"
	"github.com/khoward/glidepath/internal/config"
	"github.com/khoward/glidepath/internal/domain"
	"github.com/khoward/glidepath/internal/output"
	"github.com/spf13/cobra"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "glidepath %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

var rootCmd = &cobra.Command{
	Use:   "glidepath",
	Short: "Retirement drawdown and tax projection CLI",
	Long:  "Year-by-year retirement projections with federal, state, and Medicare tax modeling",
}

func newEngine(cmd *cobra.Command) *calculation.ProjectionEngine {
	engine := calculation.NewProjectionEngine()
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		engine.Logger = simpleCLILogger{}
		engine.Debug = true
	}
	return engine
}

func loadPlan(filename string) *config.PlanFile {
	parser := config.NewInputParser()
	plan, err := parser.LoadFromFile(filename)
	if err != nil {
		log.Fatal(err)
	}
	return plan
}

func writeReport(cmd *cobra.Command, records []domain.ProjectionRecord) {
	outputFormat, _ := cmd.Flags().GetString("format")
	formatter, err := output.NewFormatter(outputFormat)
	if err != nil {
		log.Fatal(err)
	}

	summary := calculation.CalculateSummary(records)
	data, err := formatter.Format(&output.ReportData{Records: records, Summary: summary})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(string(data))
}

var projectCmd = &cobra.Command{
	Use:   "project [plan-file]",
	Short: "Run a year-by-year projection for the base plan",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		plan := loadPlan(args[0])

		params := plan.Base
		if scenarioName, _ := cmd.Flags().GetString("scenario"); scenarioName != "" {
			overrides, ok := plan.Scenarios[scenarioName]
			if !ok {
				log.Fatalf("scenario %q not found in %s", scenarioName, args[0])
			}
			params = plan.Base.Merge(overrides)
		}

		engine := newEngine(cmd)
		records, err := engine.GenerateProjections(&params)
		if err != nil {
			log.Fatal(err)
		}

		writeReport(cmd, records)
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [plan-file]",
	Short: "Compare the base plan against its named scenarios",
	Long: `Compare the base plan against alternative scenarios defined in the plan file.

Examples:
  glidepath compare plan.yaml
  glidepath compare plan.yaml --with convert_200k,lean_budget
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		plan := loadPlan(args[0])

		scenarios := plan.Scenarios
		if withStr, _ := cmd.Flags().GetString("with"); withStr != "" {
			scenarios = make(map[string]domain.ParameterOverrides)
			for _, name := range strings.Split(withStr, ",") {
				name = strings.TrimSpace(name)
				if name == "" {
					continue
				}
				overrides, ok := plan.Scenarios[name]
				if !ok {
					log.Fatalf("scenario %q not found in %s", name, args[0])
				}
				scenarios[name] = overrides
			}
		}
		if len(scenarios) == 0 {
			log.Fatal("plan file defines no scenarios to compare")
		}

		compareEngine := compare.NewEngine(newEngine(cmd))
		set, err := compareEngine.CompareScenarios(context.Background(), plan.Base, scenarios)
		if err != nil {
			log.Fatalf("Comparison failed: %v", err)
		}

		fmt.Print(string(output.FormatComparison(set)))
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary [plan-file]",
	Short: "Print only the plan summary, without the year-by-year table",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		plan := loadPlan(args[0])

		engine := newEngine(cmd)
		records, err := engine.GenerateProjections(&plan.Base)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Print(string(output.FormatSummary(calculation.CalculateSummary(records))))
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [plan-file]",
	Short: "Validate a plan file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		loadPlan(args[0])
		fmt.Printf("Plan file %s is valid\n", args[0])
	},
}

var heirCmd = &cobra.Command{
	Use:   "heir [plan-file]",
	Short: "Value the estate for the plan's heirs without running a projection",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		plan := loadPlan(args[0])
		params := plan.Base

		balances := domain.AccountBalances{
			AfterTax:      params.AfterTaxBalance,
			AfterTaxBasis: params.AfterTaxBasis,
			IRA:           params.IRABalance,
			Roth:          params.RothBalance,
		}

		simple := calculation.SimpleHeirValue(balances, params.Heirs)
		even := calculation.EstateDistributionValue(balances, params.Heirs,
			calculation.DistributeEven, calculation.InheritedIRAWindow, params.Calc.DiscountRate)
		lump := calculation.EstateDistributionValue(balances, params.Heirs,
			calculation.DistributeLump, calculation.InheritedIRAWindow, params.Calc.DiscountRate)

		fmt.Println("ESTATE VALUATION")
		fmt.Printf("Gross estate:              %s\n", output.FormatCurrency(balances.Total()))
		fmt.Printf("Simple after-tax value:    %s\n", output.FormatCurrency(simple))
		fmt.Printf("Distributed (even, PV):    %s\n", output.FormatCurrency(even))
		fmt.Printf("Distributed (lump, PV):    %s\n", output.FormatCurrency(lump))
	},
}

func init() {
	projectCmd.Flags().StringP("format", "f", "console", "Output format (console, csv, json)")
	projectCmd.Flags().String("scenario", "", "Run a named scenario from the plan file instead of the base")
	projectCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	compareCmd.Flags().String("with", "", "Comma-separated scenario names to compare (default: all)")
	compareCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	summaryCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(heirCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
