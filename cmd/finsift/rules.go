package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/finsift/internal/cli"
	"github.com/Veraticus/finsift/internal/ruleset"
)

func rulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Show the configured classification rules",
		Long:  `Loads the configured rule file and prints every rule in priority order.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			cmd.Println(cli.TitleStyle.Render("Classification rules"))
			cmd.Print(clf.DescribeRules())
			cmd.Println(cli.SubtleStyle.Render(fmt.Sprintf("%d rules loaded from %s", len(clf.Rules()), rulesPath)))

			return nil
		},
	}
}
