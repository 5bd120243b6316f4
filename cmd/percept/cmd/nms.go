package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/percept-vision/percept/postprocess"
)

// detectionsFile is the JSON layout accepted by the nms command.
type detectionsFile struct {
	Boxes     [][4]float32 `json:"boxes"`
	Scores    []float32    `json:"scores"`
	Threshold *float32     `json:"threshold,omitempty"`
}

type nmsResult struct {
	Keep      []int   `json:"keep"`
	Count     int     `json:"count"`
	Threshold float32 `json:"threshold"`
}

var nmsCmd = &cobra.Command{
	Use:   "nms [flags] FILE",
	Short: "Run non-maximum suppression over scored boxes",
	Long: `Read detection boxes and scores from a JSON file and print the indices
of boxes kept by greedy non-maximum suppression.

The input file holds corner-form boxes and parallel scores:
  {"boxes": [[0,0,10,10], [1,1,11,11]], "scores": [0.9, 0.8]}

An optional "threshold" field in the file overrides the configured IoU
threshold; the --iou-threshold flag overrides both.

Examples:
  percept nms detections.json
  percept nms detections.json --iou-threshold 0.3 --format text`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read detections file: %w", err)
		}

		var input detectionsFile
		if err := json.Unmarshal(data, &input); err != nil {
			return fmt.Errorf("failed to parse detections file: %w", err)
		}
		if len(input.Boxes) != len(input.Scores) {
			return fmt.Errorf("boxes and scores length mismatch: %d vs %d", len(input.Boxes), len(input.Scores))
		}

		threshold := float32(cfg.Postprocess.IoUThreshold)
		if input.Threshold != nil {
			threshold = *input.Threshold
		}
		if cmd.Flags().Changed("iou-threshold") {
			t, _ := cmd.Flags().GetFloat32("iou-threshold")
			threshold = t
		}
		if threshold < 0 || threshold > 1 {
			return fmt.Errorf("iou threshold out of range: %g", threshold)
		}

		boxes := make([]postprocess.Box, len(input.Boxes))
		for i, b := range input.Boxes {
			boxes[i] = postprocess.NewBox(b[0], b[1], b[2], b[3])
		}

		keep := postprocess.NMS(boxes, input.Scores, threshold)
		if keep == nil {
			keep = []int{}
		}

		slog.Debug("suppression complete", "boxes", len(boxes), "kept", len(keep), "threshold", threshold)

		format := cfg.Output.Format
		if format == "" || cmd.Flags().Changed("format") {
			format, _ = cmd.Flags().GetString("format")
		}
		outFile, _ := cmd.Flags().GetString("output")
		if outFile == "" && cfg.Output.File != "" && !cmd.Flags().Changed("output") {
			outFile = cfg.Output.File
		}

		var out string
		switch format {
		case "json":
			encoded, err := json.MarshalIndent(nmsResult{Keep: keep, Count: len(keep), Threshold: threshold}, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode result: %w", err)
			}
			out = string(encoded) + "\n"
		case "text":
			parts := make([]string, len(keep))
			for i, idx := range keep {
				parts[i] = fmt.Sprintf("%d", idx)
			}
			out = strings.Join(parts, "\n")
			if len(parts) > 0 {
				out += "\n"
			}
		default:
			return fmt.Errorf("invalid output format: %s (must be json or text)", format)
		}

		if outFile != "" {
			return os.WriteFile(outFile, []byte(out), 0o644)
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(nmsCmd)
	nmsCmd.Flags().Float32("iou-threshold", postprocess.DefaultIoUThreshold, "IoU threshold above which boxes are suppressed")
	nmsCmd.Flags().StringP("format", "f", "json", "output format (json, text)")
	nmsCmd.Flags().StringP("output", "o", "", "write result to file instead of stdout")
}
