package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"github.com/tbxark/docform/config"
	"github.com/tbxark/docform/docx"
	"github.com/tbxark/docform/render"
	"github.com/tbxark/docform/validation"
	"gopkg.in/yaml.v3"
)

func newRenderCmd(configPath *string) *cobra.Command {
	var valuesPath, outPath string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the template once from a YAML file of values",
		Long: `Fills the configured template with values read from a YAML mapping of field key to
answer, without going through a chat. Useful to check a template.

Example:
  formbot render --values invoice.yml --out invoice.docx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			sch, err := cfg.Schema()
			if err != nil {
				return err
			}
			data, err := os.ReadFile(valuesPath)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", valuesPath, err)
			}
			values := map[string]string{}
			if err := yaml.Unmarshal(data, &values); err != nil {
				return fmt.Errorf("failed to parse %s: %w", valuesPath, err)
			}

			out := cmd.OutOrStdout()
			keys := make([]string, 0, len(values))
			for key := range values {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				if _, _, ok := sch.Lookup(key); !ok {
					_, _ = fmt.Fprintf(out, "unknown %s\n", key)
				}
			}
			for _, field := range sch.Fields() {
				raw, ok := values[field.Key]
				if !ok {
					_, _ = fmt.Fprintf(out, "missing %s\n", field.Key)
					continue
				}
				if v := validation.Validate(field.Type, raw); !v.Accepted {
					_, _ = fmt.Fprintf(out, "invalid %s: %s\n", field.Key, v.Message)
				}
			}

			engine := render.NewEngine(docx.NewSource(cfg.Template.Path))
			stats, err := engine.Render(cmd.Context(), render.NewPlaceholderMap(sch.Keys(), values), outPath)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "wrote %s (%d of %d paragraphs changed), display name %q\n",
				outPath, stats.Changed, stats.Paragraphs, cfg.Namer().DisplayName(values))
			return nil
		},
	}
	cmd.Flags().StringVar(&valuesPath, "values", "", "YAML file mapping field keys to values")
	cmd.Flags().StringVar(&outPath, "out", "out.docx", "output document path")
	_ = cmd.MarkFlagRequired("values")
	return cmd
}
