// Command fml2scene converts FML floor-plan projects into SceneScript files
// and inspects existing SceneScript output.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"fml2scene/internal/common/config"
	"fml2scene/internal/common/logging"
	"fml2scene/internal/converter/mapper"
	"fml2scene/internal/converter/models"
	"fml2scene/internal/converter/scenescript"
	"fml2scene/internal/converter/storage"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const appName = "fml2scene"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Convert FML floor plans to SceneScript",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Init(appName, logLevel)
			logging.Logger.SetOutput(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (JSON or YAML)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(convertCmd(&configPath), inspectCmd())
	return cmd
}

// ============================================================
// convert
// ============================================================

type convertFlags struct {
	input         string
	out           string
	format        string
	snap          float64
	labelComments bool
}

func convertCmd(configPath *string) *cobra.Command {
	var f convertFlags

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert an FML project JSON file",
		Long: `Convert reads an FML project, prints or writes the SceneScript commands,
and writes metadata and diagnostics next to the scripts when --out is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFile(*configPath)
			if err != nil {
				return err
			}
			opts := cfg.ConverterOptions()
			if cmd.Flags().Changed("snap") {
				opts.SnapValue = f.snap
			}
			if cmd.Flags().Changed("label-comments") {
				opts.EmitLabelComments = f.labelComments
			}
			return runConvert(cmd.OutOrStdout(), f, opts)
		},
	}

	cmd.Flags().StringVarP(&f.input, "input", "i", "", "FML project JSON file ('-' for stdin)")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Output directory; prints to stdout when empty")
	cmd.Flags().StringVar(&f.format, "format", "json", "Metadata and diagnostics format (json, yaml)")
	cmd.Flags().Float64Var(&f.snap, "snap", 0, "Snap converted coordinates to this step in meters (0 = off)")
	cmd.Flags().BoolVar(&f.labelComments, "label-comments", false, "Emit '#' comment lines for labels")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runConvert(w io.Writer, f convertFlags, opts mapper.Options) error {
	format, err := storage.ParseFormat(f.format)
	if err != nil {
		return err
	}
	if opts.SnapValue < 0 {
		return fmt.Errorf("snap must not be negative, got %v", opts.SnapValue)
	}

	p, err := readProject(f.input)
	if err != nil {
		return err
	}

	res, err := mapper.New(opts).Convert(p)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	runID := uuid.NewString()
	log := logging.Logger.WithFields(logrus.Fields{
		"run_id":      runID,
		"designs":     len(res.Designs),
		"diagnostics": res.Summary.Total,
	})

	if f.out == "" {
		if res.CommandText != "" {
			fmt.Fprintln(w, res.CommandText)
		}
		log.Info("Conversion finished")
		if res.Summary.Total > 0 {
			log.Warn(res.Report)
		}
		return nil
	}

	files, err := storage.NewFileStorage(f.out, format).WriteResult(runID, res)
	if err != nil {
		return err
	}
	for _, path := range files {
		fmt.Fprintln(w, path)
	}
	log.Info("Conversion written")
	if res.Summary.Total > 0 {
		log.Warn(res.Report)
	}
	return nil
}

func readProject(path string) (*models.Project, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	var p models.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		if fields := models.FieldErrors(err); len(fields) > 0 {
			msgs := make([]string, 0, len(fields))
			for _, fe := range fields {
				msgs = append(msgs, fe.Field+" ("+fe.Tag+")")
			}
			return nil, fmt.Errorf("invalid project: %s", strings.Join(msgs, ", "))
		}
		return nil, fmt.Errorf("invalid project: %w", err)
	}
	return &p, nil
}

// ============================================================
// inspect
// ============================================================

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.scenescript.txt>",
		Short: "Count the commands of a SceneScript file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			lines, err := scenescript.ParseScript(f)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			counts := scenescript.Count(lines)
			out := cmd.OutOrStdout()
			for _, name := range scenescript.Commands {
				if n := counts[name]; n > 0 {
					fmt.Fprintf(out, "%-18s %d\n", name, n)
				}
			}
			fmt.Fprintf(out, "%-18s %d\n", "total", len(lines))
			return nil
		},
	}
}
