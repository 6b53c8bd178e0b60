package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/finsift/internal/cli"
	"github.com/Veraticus/finsift/internal/common"
	"github.com/Veraticus/finsift/internal/model"
	"github.com/Veraticus/finsift/internal/ofx"
	"github.com/Veraticus/finsift/internal/ruleset"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [file.ofx...]",
		Short: "Classify transactions from OFX/QFX files",
		Long: `Parses one or more OFX/QFX statement files and classifies every
transaction against the configured rule file, printing per-transaction
results and a per-category summary.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runClassify,
	}

	cmd.Flags().Bool("verbose", false, "print the matched condition for each transaction")

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	rulesPath := viper.GetString("rules.file")
	if rulesPath == "" {
		return fmt.Errorf("no rule file configured; pass --rules or set rules.file")
	}

	builder, err := ruleset.ParseFile(rulesPath)
	if err != nil {
		return err
	}

	clf, err := builder.Build()
	if err != nil {
		return err
	}
	common.LogInfo("rules loaded", common.Fields{
		"file":  rulesPath,
		"count": len(clf.Rules()),
	})

	parser := ofx.NewParser()
	var transactions []model.Transaction

	for _, path := range args {
		f, openErr := os.Open(path)
		if openErr != nil {
			return fmt.Errorf("failed to open %s: %w", path, openErr)
		}

		txns, parseErr := parser.ParseFile(cmd.Context(), f)
		_ = f.Close()
		if parseErr != nil {
			return fmt.Errorf("failed to parse %s: %w", path, parseErr)
		}

		transactions = append(transactions, txns...)
	}

	if len(transactions) == 0 {
		cmd.Println(cli.WarningStyle.Render("No transactions found in input files"))
		return nil
	}

	bar := progressbar.NewOptions(len(transactions),
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Classifying transactions..."),
	)

	results := make([]model.ClassificationResult, 0, len(transactions))
	for _, txn := range transactions {
		result, classifyErr := clf.Classify(txn)
		if classifyErr != nil {
			return classifyErr
		}
		results = append(results, result)
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	cmd.Println()

	verbose, _ := cmd.Flags().GetBool("verbose")
	printResults(cmd, transactions, results, verbose)

	return nil
}

func printResults(cmd *cobra.Command, txns []model.Transaction, results []model.ClassificationResult, verbose bool) {
	cmd.Println(cli.TitleStyle.Render("Classification results"))

	counts := make(map[string]int)
	totals := make(map[string]float64)

	for i, result := range results {
		counts[result.Category]++
		totals[result.Category] += txns[i].Amount

		line := fmt.Sprintf("%-40.40s %10.2f  %s",
			txns[i].Description, txns[i].Amount, result.Category)
		if result.Confidence > 0 {
			cmd.Println(cli.SuccessStyle.Render(line))
		} else {
			cmd.Println(cli.WarningStyle.Render(line))
		}

		if verbose && len(result.MatchedConditions) > 0 {
			for _, desc := range result.MatchedConditions {
				cmd.Println(cli.SubtleStyle.Render("    matched: " + desc))
			}
		}
	}

	categories := make([]string, 0, len(counts))
	for category := range counts {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	cmd.Println()
	cmd.Println(cli.BoldStyle.Render("Summary by category"))
	for _, category := range categories {
		cmd.Printf("  %-30s %4d transactions %12.2f\n",
			category, counts[category], totals[category])
	}
}
